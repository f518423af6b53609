// Package channel implements the channel registry: named, independently
// toggleable message categories.
//
// Назначение: name<->id bijection (id 0 reserved for "no channel"), tri-state
// enabled overrides resolved against a registry-wide default, colour tags for
// decorated prefixes and change notifications.
// Не делает: форматирования и подавления сообщений (see internal/format and
// internal/suppress).
package channel
