// Package diag defines the message model shared by the engine and its sinks.
//
// # Purpose
//
//   - Severity – ordered enum (Log, Warning, Error, Assert, Exception) defined
//     in severity.go.
//   - Message – one composed diagnostic: severity, the plain and decorated
//     forms, up to two channels, an optional context object and, for
//     suppressed messages and failed checks, the captured stack text.
//   - DedupCache – the set of failure sites already reported by Ensure/Guard.
//     A site is identified by its captured stack text; entries are never
//     pruned except by an explicit Reset.
//   - Bag – a capped collection of messages with sorting and deduplication,
//     used by collecting sinks and the CLI summaries.
//
// # Scope
//
// Package diag does not format values or decide visibility. Rendering lives
// in internal/format, suppression in internal/suppress and delivery in
// internal/sink.
//
// # Stack text
//
// CaptureStack renders runtime.Callers output as "function\n\tfile:line"
// pairs. The text is stable for a given call chain, which is what makes it
// usable as a dedup key. CleanStack removes frames matching configured
// substrings (typically the engine's own frames) before the text is shown to
// MessageSuppressed observers.
package diag
