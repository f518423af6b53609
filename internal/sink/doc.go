// Package sink provides the delivery side of the diagnostics engine.
//
// The engine makes exactly two outward calls, Sink.Emit for visible messages
// and Sink.EmitSuppressed for messages hidden by disabled channels.
//
// # Architecture
//
// The package provides several sink implementations:
//
//   - Nop: drops everything
//   - StreamSink: immediate write to an io.Writer (console, file)
//   - RingSink: circular buffer, the "alternate console" for hidden messages
//   - MultiSink: combines multiple sinks
//   - Collector: bag-backed capture used by tests and CLI summaries
//   - Func: adapter over plain callbacks
//
// FileSink is the append-to-file helper with per-path session tracking and
// ClearPolicy (OnSessionStart, Now, Never); FileSink.For turns it into a Sink.
//
// # Context Propagation
//
//	ctx = sink.WithSink(ctx, s)
//	s := sink.FromContext(ctx)
package sink
