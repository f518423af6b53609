package diag

import "chanlog/internal/channel"

// Message is one composed diagnostic on its way to a sink.
type Message struct {
	Severity Severity
	// Plain is the markup-free text, Decorated the styled text after layout.
	Plain     string
	Decorated string
	Channel1  channel.ID
	Channel2  channel.ID
	// Context is an optional caller-supplied object reference.
	Context any
	// StackTrace is set for suppressed messages and failed checks.
	StackTrace string
}

// HasChannel reports whether the message was logged on at least one channel.
func (m Message) HasChannel() bool {
	return m.Channel1.IsValid() || m.Channel2.IsValid()
}
