package sink

import (
	"fmt"
	"strings"
	"sync/atomic"

	"chanlog/internal/diag"
)

// Sink receives composed messages from the engine. Implementations must be
// goroutine-safe.
type Sink interface {
	// Emit delivers a visible message.
	Emit(m diag.Message)
	// EmitSuppressed delivers a message hidden by its channel tags.
	EmitSuppressed(m diag.Message)
}

// Form selects which text of a message a sink writes.
type Form uint8

const (
	FormDecorated Form = iota // styled text after layout
	FormPlain                 // markup-free text
)

// String returns the string representation of Form.
func (f Form) String() string {
	switch f {
	case FormDecorated:
		return "decorated"
	case FormPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParseForm converts a string to Form.
func ParseForm(s string) (Form, error) {
	switch strings.ToLower(s) {
	case "decorated", "":
		return FormDecorated, nil
	case "plain":
		return FormPlain, nil
	default:
		return FormDecorated, fmt.Errorf("invalid sink form: %q (expected: decorated|plain)", s)
	}
}

func (f Form) pick(m *diag.Message) string {
	if f == FormPlain {
		return m.Plain
	}
	return m.Decorated
}

var globalSeq uint64

// NextSeq returns a monotonically increasing sequence number.
func NextSeq() uint64 {
	return atomic.AddUint64(&globalSeq, 1)
}

// Func adapts plain functions to Sink. Nil fields drop the message.
type Func struct {
	OnEmit       func(diag.Message)
	OnSuppressed func(diag.Message)
}

func (f Func) Emit(m diag.Message) {
	if f.OnEmit != nil {
		f.OnEmit(m)
	}
}

func (f Func) EmitSuppressed(m diag.Message) {
	if f.OnSuppressed != nil {
		f.OnSuppressed(m)
	}
}
