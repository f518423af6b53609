//go:build chanlog_strip

package engine

// stripped is set by the chanlog_strip build tag. The normal view then drops
// Log, Warning and Assert messages; the critical view stays.
const stripped = true
