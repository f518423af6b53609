package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a message. Values are ordered; later
// constants are more severe.
type Severity uint8

const (
	// SevLog is for informational messages.
	SevLog Severity = iota
	// SevWarning is for warnings.
	SevWarning
	SevError
	// SevAssert is used by failed Assert/Ensure/Guard checks.
	SevAssert
	SevException
)

func (s Severity) String() string {
	switch s {
	case SevLog:
		return "LOG"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	case SevAssert:
		return "ASSERT"
	case SevException:
		return "EXCEPTION"
	}
	return "UNKNOWN"
}

// ParseSeverity converts a string to a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOG", "INFO":
		return SevLog, nil
	case "WARNING", "WARN":
		return SevWarning, nil
	case "ERROR":
		return SevError, nil
	case "ASSERT":
		return SevAssert, nil
	case "EXCEPTION":
		return SevException, nil
	default:
		return SevLog, fmt.Errorf("invalid severity: %q (expected: log|warning|error|assert|exception)", s)
	}
}

// IsErrorLike reports whether s should be surfaced as an error by sinks that
// only know warning/error levels.
func (s Severity) IsErrorLike() bool { return s >= SevError }
