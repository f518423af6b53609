// Package stopwatch implements nestable named interval timers.
//
// A Forest keeps running root stopwatches in start order; each root may hold
// running and finished children. Finishing a root finishes everything below
// it, deepest first, and hands the resulting tree to the Logger:
//
//	Load . . . 1.25 s
//	   Parse . . . 0.8 s
//	      Lex . . . 0.4 s
//
// Misuse (finishing what is not running, duplicate root names) is reported
// through Logger.Warning and never fails.
package stopwatch
