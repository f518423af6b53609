// Package engine is the diagnostics facade: Log, Warning, Error, Assert,
// Ensure and Guard on optional channels, routed through the formatter, the
// suppression gate and a sink.
//
// # Pipeline
//
//  1. stripped builds (-tags chanlog_strip) drop Log, Warning and Assert
//     calls of the normal view before any formatting
//  2. values are rendered to a plain and a decorated text
//  3. channel prefixes are added; explicit channels hide the message when
//     none is enabled, otherwise leading "[tag]" groups decide
//  4. visible messages go to Sink.Emit and become LastMessage; hidden ones
//     go to Sink.EmitSuppressed with a stack trace and to OnSuppressed
//     observers
//
// Ensure and Guard remember failing call sites by their stack text and report
// each site once per engine.
//
// # Views
//
// Engine.Critical shares all state with its engine but is never stripped. In
// normal builds it renders with the large font layout when UseLargeFont is
// set; in stripped builds it adds CriticalPrefix and, with
// AlwaysIncludeInBuilds, also appends to CriticalLogFile.
//
// All methods are safe for concurrent use.
package engine
