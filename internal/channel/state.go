package channel

import (
	"fmt"
	"strings"
)

// ID identifies a channel for the lifetime of a Registry. Zero means "no channel".
type ID uint32

// None is the reserved "no channel" id.
const None ID = 0

// IsValid reports whether id refers to a real channel slot.
func (id ID) IsValid() bool { return id != None }

// State is the per-channel enabled override.
type State uint8

const (
	// Default follows Registry.AllEnabledByDefault.
	Default State = iota
	// ForceEnabled keeps the channel visible regardless of the default.
	ForceEnabled
	// ForceDisabled hides the channel regardless of the default.
	ForceDisabled
)

func (s State) String() string {
	switch s {
	case Default:
		return "default"
	case ForceEnabled:
		return "enabled"
	case ForceDisabled:
		return "disabled"
	}
	return "unknown"
}

// ParseState converts a string to a State.
func ParseState(s string) (State, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return Default, nil
	case "enabled", "on", "true":
		return ForceEnabled, nil
	case "disabled", "off", "false":
		return ForceDisabled, nil
	default:
		return Default, fmt.Errorf("invalid channel state: %q (expected: default|enabled|disabled)", s)
	}
}

// Resolve returns the effective enabled flag for the given registry default.
func (s State) Resolve(allEnabledByDefault bool) bool {
	switch s {
	case ForceEnabled:
		return true
	case ForceDisabled:
		return false
	default:
		return allEnabledByDefault
	}
}

// Channel is a snapshot of one registered channel.
type Channel struct {
	ID    ID
	Name  string
	State State
	Color string
	// Enabled is State resolved against the registry default at snapshot time.
	Enabled bool
}

// IsNone reports whether c is the "no channel" sentinel.
func (c Channel) IsNone() bool { return c.ID == None }
