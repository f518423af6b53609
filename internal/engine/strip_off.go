//go:build !chanlog_strip

package engine

const stripped = false
