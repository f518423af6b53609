package tracker

import (
	"fmt"
	"sync"
	"time"
)

// Logger receives change notifications and tracker failures.
type Logger interface {
	Changed(name string, value any)
	Warning(msg string)
}

// Pauser is notified when a watcher registered with pause-on-change sees a
// new value.
type Pauser interface {
	Pause(name string)
}

// Renderer turns a value into the text used for change detection and display.
type Renderer func(v any) string

// ErrorText is shown for a target whose getter failed.
const ErrorText = "<error>"

// Entry is the current state of one on-screen item.
type Entry struct {
	Label  string
	Text   string
	Button bool
	Failed bool
}

type watcher struct {
	target Target
	last   string
	pause  bool
	failed bool
}

type displayer struct {
	target Target
	text   string
	failed bool

	button bool
	action func()
}

// Set owns every registered watcher and displayer. It is polled by Tick.
type Set struct {
	tick      sync.Mutex // serializes Tick
	mu        sync.Mutex
	log       Logger
	pauser    Pauser
	render    Renderer
	watched   []*watcher
	displayed []*displayer
	fps       *FPSCounter
}

type nopLogger struct{}

func (nopLogger) Changed(string, any) {}
func (nopLogger) Warning(string)      {}

// New creates an empty set. A nil render falls back to fmt.Sprint.
func New(log Logger, render Renderer) *Set {
	if log == nil {
		log = nopLogger{}
	}
	if render == nil {
		render = func(v any) string { return fmt.Sprint(v) }
	}
	return &Set{log: log, render: render, fps: NewFPSCounter()}
}

// SetPauser installs the pause hook; nil removes it.
func (s *Set) SetPauser(p Pauser) {
	s.mu.Lock()
	s.pauser = p
	s.mu.Unlock()
}

// SetRenderer replaces the value renderer. Nil is ignored.
func (s *Set) SetRenderer(r Renderer) {
	if r == nil {
		return
	}
	s.mu.Lock()
	s.render = r
	s.mu.Unlock()
}

type event struct {
	name    string
	value   any
	warning string
	pause   bool
}

func (s *Set) flush(events []event) {
	s.mu.Lock()
	log, pauser := s.log, s.pauser
	s.mu.Unlock()
	for _, e := range events {
		if e.warning != "" {
			log.Warning(e.warning)
			continue
		}
		log.Changed(e.name, e.value)
		if e.pause && pauser != nil {
			pauser.Pause(e.name)
		}
	}
}

func failure(t Target, r any) event {
	return event{warning: fmt.Sprintf("tracker %q failed: %v", t.Name, r)}
}

// Watch registers t for change logging. Registering the same target twice is
// a no-op and returns false. The current value becomes the baseline.
func (s *Set) Watch(t Target, pauseOnChange bool) bool {
	if s.IsWatched(t) {
		return false
	}
	w := &watcher{target: t, pause: pauseOnChange}
	v, ok := t.read()

	s.mu.Lock()
	for _, other := range s.watched {
		if other.target.Equals(t) {
			s.mu.Unlock()
			return false
		}
	}
	var events []event
	if ok {
		w.last = s.render(v)
	} else {
		w.last, w.failed = ErrorText, true
		events = append(events, failure(t, v))
	}
	s.watched = append(s.watched, w)
	s.mu.Unlock()
	s.flush(events)
	return true
}

// CancelWatch removes the watcher for t.
func (s *Set) CancelWatch(t Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.watched) - 1; i >= 0; i-- {
		if s.watched[i].target.Equals(t) {
			s.watched = append(s.watched[:i], s.watched[i+1:]...)
			return true
		}
	}
	return false
}

// IsWatched reports whether t is registered for change logging.
func (s *Set) IsWatched(t Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.watched {
		if w.target.Equals(t) {
			return true
		}
	}
	return false
}

// Clear removes every watcher.
func (s *Set) Clear() {
	s.mu.Lock()
	s.watched = nil
	s.mu.Unlock()
}

// Display registers t as an on-screen value readout.
func (s *Set) Display(t Target) bool {
	if s.IsDisplayed(t) {
		return false
	}
	d := &displayer{target: t}
	v, ok := t.read()

	s.mu.Lock()
	if s.displayIndex(isReadout(t)) >= 0 {
		s.mu.Unlock()
		return false
	}
	var events []event
	if ok {
		d.text = s.render(v)
	} else {
		d.text, d.failed = ErrorText, true
		events = append(events, failure(t, v))
	}
	s.displayed = append(s.displayed, d)
	s.mu.Unlock()
	s.flush(events)
	return true
}

func isReadout(t Target) func(*displayer) bool {
	return func(d *displayer) bool { return !d.button && d.target.Equals(t) }
}

// CancelDisplay removes the readout for t.
func (s *Set) CancelDisplay(t Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeDisplayed(isReadout(t))
}

// DisplayButton registers a clickable button. Labels identify buttons.
func (s *Set) DisplayButton(label string, action func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.displayIndex(isButton(label)) >= 0 {
		return false
	}
	s.displayed = append(s.displayed, &displayer{
		target: Expr("button:"+label, label, nil),
		text:   label,
		button: true,
		action: action,
	})
	return true
}

// CancelButton removes the button with label.
func (s *Set) CancelButton(label string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeDisplayed(isButton(label))
}

func isButton(label string) func(*displayer) bool {
	return func(d *displayer) bool { return d.button && d.target.Name == label }
}

// Click runs the action of the button with label. A panicking action is
// reported as a warning.
func (s *Set) Click(label string) bool {
	s.mu.Lock()
	i := s.displayIndex(isButton(label))
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	action := s.displayed[i].action
	s.mu.Unlock()
	if action == nil {
		return true
	}
	var events []event
	func() {
		defer func() {
			if r := recover(); r != nil {
				events = append(events, event{warning: fmt.Sprintf("button %q failed: %v", label, r)})
			}
		}()
		action()
	}()
	s.flush(events)
	return true
}

// IsDisplayed reports whether t is shown as a readout.
func (s *Set) IsDisplayed(t Target) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayIndex(isReadout(t)) >= 0
}

// ClearDisplayed removes every readout and button.
func (s *Set) ClearDisplayed() {
	s.mu.Lock()
	s.displayed = nil
	s.mu.Unlock()
}

func (s *Set) displayIndex(match func(*displayer) bool) int {
	for i := len(s.displayed) - 1; i >= 0; i-- {
		if match(s.displayed[i]) {
			return i
		}
	}
	return -1
}

func (s *Set) removeDisplayed(match func(*displayer) bool) bool {
	i := s.displayIndex(match)
	if i < 0 {
		return false
	}
	s.displayed = append(s.displayed[:i], s.displayed[i+1:]...)
	return true
}

var fpsTarget = Expr("chanlog.fps", "FPS", nil)

// ShowFPS displays the frame rate measured from Tick durations.
func (s *Set) ShowFPS() bool {
	t := fpsTarget
	t.get = func() any { return s.FPS() }
	return s.Display(t)
}

// HideFPS removes the frame rate readout.
func (s *Set) HideFPS() bool { return s.CancelDisplay(fpsTarget) }

// FPS returns the current averaged frame rate.
func (s *Set) FPS() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fps.FPS()
}

// Tick advances one frame of dt: the FPS counter is updated, every watcher is
// re-read and every readout refreshed. A failing getter affects only its own
// tracker and is reported once until it recovers.
func (s *Set) Tick(dt time.Duration) {
	s.tick.Lock()
	defer s.tick.Unlock()

	s.mu.Lock()
	s.fps.Update(dt)
	watched := append([]*watcher(nil), s.watched...)
	displayed := append([]*displayer(nil), s.displayed...)
	render := s.render
	s.mu.Unlock()

	var events []event
	for _, w := range watched {
		v, ok := w.target.read()
		if !ok {
			if !w.failed {
				w.failed = true
				events = append(events, failure(w.target, v))
			}
			continue
		}
		w.failed = false
		text := render(v)
		if text == w.last {
			continue
		}
		w.last = text
		events = append(events, event{name: w.target.Name, value: v, pause: w.pause})
	}
	for _, d := range displayed {
		if d.button {
			continue
		}
		v, ok := d.target.read()
		s.mu.Lock()
		if !ok {
			d.text = ErrorText
			if !d.failed {
				d.failed = true
				events = append(events, failure(d.target, v))
			}
		} else {
			d.text, d.failed = render(v), false
		}
		s.mu.Unlock()
	}
	s.flush(events)
}

// Entries returns the on-screen items in registration order.
func (s *Set) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Entry, len(s.displayed))
	for i, d := range s.displayed {
		out[i] = Entry{Label: d.target.Name, Text: d.text, Button: d.button, Failed: d.failed}
	}
	return out
}

// Len returns the number of watchers and on-screen items.
func (s *Set) Len() (watched, displayed int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.watched), len(s.displayed)
}
