package sink

import (
	"io"

	"chanlog/internal/diag"
)

// MultiSink fans out messages to multiple sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink creates a new MultiSink that emits to all provided sinks.
// Nil sinks are skipped.
func NewMultiSink(sinks ...Sink) *MultiSink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return &MultiSink{sinks: out}
}

// Emit sends the message to all underlying sinks.
func (m *MultiSink) Emit(msg diag.Message) {
	for _, s := range m.sinks {
		s.Emit(msg)
	}
}

// EmitSuppressed sends the suppressed message to all underlying sinks.
func (m *MultiSink) EmitSuppressed(msg diag.Message) {
	for _, s := range m.sinks {
		s.EmitSuppressed(msg)
	}
}

// Close closes all underlying sinks that implement io.Closer.
func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		c, ok := s.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
