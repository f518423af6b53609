package engine

import (
	"errors"
	"fmt"

	"chanlog/internal/diag"
	"chanlog/internal/format"
)

const (
	assertFailed = "Assertion failed."
	ensureFailed = "Ensure failed."
	guardFailed  = "Guard failed."
)

// ErrGuardFailed is returned by GuardErr when no constructor is given.
var ErrGuardFailed = errors.New("guard failed")

// Assert reports args at Assert severity when cond is false. Every failure is
// reported.
func (e *Engine) Assert(cond bool, args ...any) {
	if !cond {
		e.fail("", "", nil, assertFailed, args)
	}
}

// AssertOn is Assert on channel ch.
func (e *Engine) AssertOn(ch string, cond bool, args ...any) {
	if !cond {
		e.fail(ch, "", nil, assertFailed, args)
	}
}

// Ensure returns cond. The first failure at each call site is reported at
// Assert severity; later failures there are silent.
func (e *Engine) Ensure(cond bool, args ...any) bool {
	if !cond {
		e.fail("", "", e.c.ensures, ensureFailed, args)
	}
	return cond
}

// EnsureOn is Ensure on channel ch.
func (e *Engine) EnsureOn(ch string, cond bool, args ...any) bool {
	if !cond {
		e.fail(ch, "", e.c.ensures, ensureFailed, args)
	}
	return cond
}

// Guard returns true when cond is false, for early returns:
//
//	if eng.Guard(p != nil) {
//		return
//	}
//
// Reporting is deduplicated per call site like Ensure.
func (e *Engine) Guard(cond bool, args ...any) bool {
	if !cond {
		e.fail("", "", e.c.guards, guardFailed, args)
	}
	return !cond
}

// GuardOn is Guard on channel ch.
func (e *Engine) GuardOn(ch string, cond bool, args ...any) bool {
	if !cond {
		e.fail(ch, "", e.c.guards, guardFailed, args)
	}
	return !cond
}

// AssertOn2 is Assert on two channels.
func (e *Engine) AssertOn2(ch1, ch2 string, cond bool, args ...any) {
	if !cond {
		e.fail(ch1, ch2, nil, assertFailed, args)
	}
}

func (e *Engine) EnsureOn2(ch1, ch2 string, cond bool, args ...any) bool {
	if !cond {
		e.fail(ch1, ch2, e.c.ensures, ensureFailed, args)
	}
	return cond
}

func (e *Engine) GuardOn2(ch1, ch2 string, cond bool, args ...any) bool {
	if !cond {
		e.fail(ch1, ch2, e.c.guards, guardFailed, args)
	}
	return !cond
}

// fail reports a failed check. With a cache, the captured call stack is the
// site key and only its first failure is emitted.
func (e *Engine) fail(ch1, ch2 string, cache *diag.DedupCache, fallback string, args []any) {
	if e.skip(diag.SevAssert) {
		return
	}
	stack := diag.CaptureStack(1)
	if cache != nil && !cache.First(stack) {
		return
	}
	values, c := splitArgs(args)
	s := e.c.snapshot()
	body := format.Same(fallback)
	if len(values) > 0 {
		body = s.compose(values)
	}
	e.emit(s, request{
		sev:   diag.SevAssert,
		ch1:   ch1,
		ch2:   ch2,
		body:  body,
		call:  c,
		stack: diag.CleanStack(stack, s.hidden),
	})
}

// GuardErr returns nil when cond holds and the error built by newErr from
// args otherwise. A nil newErr yields ErrGuardFailed, annotated with args.
// Failures are never deduplicated.
func GuardErr(cond bool, newErr func(args ...any) error, args ...any) error {
	if cond {
		return nil
	}
	if newErr != nil {
		if err := newErr(args...); err != nil {
			return err
		}
	}
	if len(args) == 0 {
		return ErrGuardFailed
	}
	return fmt.Errorf("%w: %s", ErrGuardFailed, fmt.Sprint(args...))
}

// MustGuard panics with the GuardErr error when cond is false.
func MustGuard(cond bool, newErr func(args ...any) error, args ...any) {
	if err := GuardErr(cond, newErr, args...); err != nil {
		panic(err)
	}
}
