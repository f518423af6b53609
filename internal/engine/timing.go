package engine

import (
	"time"

	"chanlog/internal/diag"
	"chanlog/internal/format"
	"chanlog/internal/stopwatch"
	"chanlog/internal/tracker"
)

// stopwatchLog routes stopwatch reports and warnings through the engine.
type stopwatchLog struct{ e *Engine }

func (l stopwatchLog) Report(r stopwatch.Result) {
	e := l.e
	if e.skip(diag.SevLog) {
		return
	}
	s := e.c.snapshot()
	numeric := s.fmt.Options().Colors.Numeric
	st := s.fmt.Styler()
	body := format.Text{
		Plain:     r.String(),
		Decorated: r.Render(func(secs string) string { return st.Paint(numeric, secs) }),
	}
	e.emit(s, request{sev: diag.SevLog, body: body})
}

func (l stopwatchLog) Warning(msg string) { l.e.internalWarning(msg) }

// trackerLog routes value changes and tracker failures through the engine.
type trackerLog struct{ e *Engine }

// Changed logs "<name> = <value>".
func (l trackerLog) Changed(name string, v any) {
	e := l.e
	if e.skip(diag.SevLog) {
		return
	}
	s := e.c.snapshot()
	body := format.Same(name + " = ").Concat(s.fmt.FormatAny(v, true))
	e.emit(s, request{sev: diag.SevLog, body: body})
}

func (l trackerLog) Warning(msg string) { l.e.internalWarning(msg) }

func (e *Engine) internalWarning(msg string) {
	if e.skip(diag.SevWarning) {
		return
	}
	s := e.c.snapshot()
	e.emit(s, request{sev: diag.SevWarning, body: s.fmt.Message(msg)})
}

// Stopwatches returns the stopwatch forest of e.
func (e *Engine) Stopwatches() *stopwatch.Forest { return e.c.watches }

// StartStopwatch starts a root stopwatch; an empty name picks "Stopwatch N".
func (e *Engine) StartStopwatch(name string) string { return e.c.watches.Start(name) }

// StartSubStopwatch nests a stopwatch under the deepest running one.
func (e *Engine) StartSubStopwatch(name string) string { return e.c.watches.StartSub(name) }

// StartSubStopwatchUnder nests name under parent, starting parent if needed.
func (e *Engine) StartSubStopwatchUnder(parent, name string) string {
	return e.c.watches.StartSubUnder(parent, name)
}

func (e *Engine) FinishSubStopwatch() { e.c.watches.FinishSub() }

func (e *Engine) FinishSubStopwatchUnder(parent string) { e.c.watches.FinishSubUnder(parent) }

func (e *Engine) FinishSubStopwatchNamed(parent, name string) {
	e.c.watches.FinishSubNamed(parent, name)
}

// FinishStopwatch finishes the latest root and logs its report.
func (e *Engine) FinishStopwatch() { e.c.watches.Finish() }

func (e *Engine) FinishStopwatchNamed(name string) { e.c.watches.FinishNamed(name) }

// FinishAllStopwatches finishes and logs every running stopwatch.
func (e *Engine) FinishAllStopwatches() { e.c.watches.FinishAll() }

// Trackers returns the per-frame tracker set of e.
func (e *Engine) Trackers() *tracker.Set { return e.c.trackers }

// LogChanges logs t whenever its value changes between ticks.
func (e *Engine) LogChanges(t tracker.Target, pauseOnChange bool) {
	if e.skip(diag.SevLog) {
		return
	}
	e.c.trackers.Watch(t, pauseOnChange)
}

func (e *Engine) CancelLogChanges(t tracker.Target) { e.c.trackers.CancelWatch(t) }

// ClearTrackedValues removes every change watcher.
func (e *Engine) ClearTrackedValues() { e.c.trackers.Clear() }

// DisplayOnScreen adds t to the on-screen readouts.
func (e *Engine) DisplayOnScreen(t tracker.Target) {
	if e.skip(diag.SevLog) {
		return
	}
	e.c.trackers.Display(t)
}

func (e *Engine) CancelDisplayOnScreen(t tracker.Target) { e.c.trackers.CancelDisplay(t) }

// DisplayButton adds an on-screen button running action when clicked.
func (e *Engine) DisplayButton(label string, action func()) {
	if e.skip(diag.SevLog) {
		return
	}
	e.c.trackers.DisplayButton(label, action)
}

func (e *Engine) CancelDisplayButton(label string) { e.c.trackers.CancelButton(label) }

func (e *Engine) ShowFPS() { e.c.trackers.ShowFPS() }

func (e *Engine) HideFPS() { e.c.trackers.HideFPS() }

// ClearDisplayedOnScreen removes every readout and button.
func (e *Engine) ClearDisplayedOnScreen() { e.c.trackers.ClearDisplayed() }

// SetPauser installs the hook called by pause-on-change watchers.
func (e *Engine) SetPauser(p tracker.Pauser) { e.c.trackers.SetPauser(p) }

// Tick advances trackers by one frame of duration dt.
func (e *Engine) Tick(dt time.Duration) { e.c.trackers.Tick(dt) }
