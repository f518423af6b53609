package sink

import "chanlog/internal/diag"

// nopSink drops everything.
type nopSink struct{}

// Emit does nothing.
func (nopSink) Emit(diag.Message) {}

// EmitSuppressed does nothing.
func (nopSink) EmitSuppressed(diag.Message) {}

// Nop is the package-level singleton nop sink.
var Nop Sink = nopSink{}
