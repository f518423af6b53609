package sink

import (
	"io"
	"strings"
	"sync"

	"chanlog/internal/diag"
)

// StreamSink writes messages immediately to an io.Writer.
type StreamSink struct {
	mu       sync.Mutex
	w        io.Writer
	form     Form
	min      diag.Severity
	severity bool
	hidden   bool
}

// StreamOption configures a StreamSink.
type StreamOption func(*StreamSink)

// WithForm selects the written text.
func WithForm(f Form) StreamOption { return func(s *StreamSink) { s.form = f } }

// WithMinSeverity drops messages below min.
func WithMinSeverity(min diag.Severity) StreamOption {
	return func(s *StreamSink) { s.min = min }
}

// WithSeverityTag prefixes each line with "[SEVERITY] " for non-Log messages.
func WithSeverityTag() StreamOption { return func(s *StreamSink) { s.severity = true } }

// WithSuppressed also writes suppressed messages, marked "(hidden) ".
func WithSuppressed() StreamOption { return func(s *StreamSink) { s.hidden = true } }

// NewStreamSink creates a new StreamSink.
func NewStreamSink(w io.Writer, opts ...StreamOption) *StreamSink {
	s := &StreamSink{w: w}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Emit writes a message to the output.
func (s *StreamSink) Emit(m diag.Message) {
	s.write(&m, "")
}

// EmitSuppressed writes the message only when WithSuppressed was given.
func (s *StreamSink) EmitSuppressed(m diag.Message) {
	if !s.hidden {
		return
	}
	s.write(&m, "(hidden) ")
}

func (s *StreamSink) write(m *diag.Message, marker string) {
	if s.w == nil || m.Severity < s.min {
		return
	}
	var sb strings.Builder
	sb.WriteString(marker)
	if s.severity && m.Severity != diag.SevLog {
		sb.WriteString("[")
		sb.WriteString(m.Severity.String())
		sb.WriteString("] ")
	}
	text := s.form.pick(m)
	sb.WriteString(text)
	if !strings.HasSuffix(text, "\n") {
		sb.WriteByte('\n')
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Best-effort write - a broken console must not disrupt the caller
	if _, err := io.WriteString(s.w, sb.String()); err != nil {
		_ = err
	}
}

// Flush ensures all buffered data is written.
func (s *StreamSink) Flush() error {
	if flusher, ok := s.w.(interface{ Flush() error }); ok {
		return flusher.Flush()
	}
	return nil
}

// Close flushes and closes the writer if it implements io.Closer.
func (s *StreamSink) Close() error {
	if err := s.Flush(); err != nil {
		return err
	}
	if closer, ok := s.w.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
