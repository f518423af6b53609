package engine

import (
	"strings"

	"chanlog/internal/diag"
	"chanlog/internal/format"
	"chanlog/internal/sink"
)

// request is one composed message before channel resolution.
type request struct {
	sev      diag.Severity
	ch1, ch2 string
	body     format.Text
	call     call
	stack    string
}

// skip reports whether sev is dropped by the current build in this view.
func (e *Engine) skip(sev diag.Severity) bool {
	if !e.c.stripped || e.critical {
		return false
	}
	return sev == diag.SevLog || sev == diag.SevWarning || sev == diag.SevAssert
}

// compose renders the logged values: a single string is highlighted as
// message text, several values are joined.
func (s snapshot) compose(values []any) format.Text {
	switch len(values) {
	case 0:
		return s.fmt.Message(nil)
	case 1:
		if str, ok := values[0].(string); ok {
			return s.fmt.Highlight(str)
		}
		return s.fmt.Message(values[0])
	}
	return s.fmt.Join(values...)
}

func (e *Engine) log(sev diag.Severity, ch1, ch2 string, args []any) {
	if e.skip(sev) {
		return
	}
	values, c := splitArgs(args)
	s := e.c.snapshot()
	e.emit(s, request{sev: sev, ch1: ch1, ch2: ch2, body: s.compose(values), call: c})
}

func (e *Engine) logf(sev diag.Severity, ch1, ch2, pattern string, args []any) {
	if e.skip(sev) {
		return
	}
	values, c := splitArgs(args)
	s := e.c.snapshot()
	e.emit(s, request{sev: sev, ch1: ch1, ch2: ch2, body: s.fmt.Sprintf(pattern, values...), call: c})
}

// emit resolves channels, decides visibility and hands the message to the sink.
// Messages on explicit channels are hidden when none of them is enabled;
// messages without channels are judged by their leading tags.
func (e *Engine) emit(s snapshot, r request) {
	ch1 := s.reg.GetOrCreate(r.ch1)
	ch2 := s.reg.GetOrCreate(r.ch2)

	var hidden bool
	if ch1.IsNone() && ch2.IsNone() {
		hidden = s.gate.ShouldHide(r.body.Plain)
	} else {
		hidden = !s.reg.IsEitherEnabled(ch1.ID, ch2.ID)
	}

	text := s.fmt.WithPrefixes(ch1, ch2, r.body)
	layout := s.cfg.Layout
	if e.critical {
		switch {
		case e.c.stripped && s.cfg.IncludeCriticalPrefixInBuilds:
			text = format.Same(CriticalPrefix).Concat(text)
		case !e.c.stripped && s.cfg.UseLargeFont:
			layout = format.LayoutLargeFont
		}
	}

	m := diag.Message{
		Severity:   r.sev,
		Plain:      text.Plain,
		Decorated:  s.fmt.Layout(text, layout),
		Channel1:   ch1.ID,
		Channel2:   ch2.ID,
		Context:    r.call.ctx,
		StackTrace: r.stack,
	}

	if hidden {
		if m.StackTrace == "" {
			m.StackTrace = diag.CleanStack(diag.CaptureStack(0), s.hidden)
		}
		s.sink.EmitSuppressed(m)
		e.c.notify(m)
		return
	}

	e.c.lastMu.Lock()
	e.c.lastText, e.c.lastCtx = m.Plain, m.Context
	e.c.lastMu.Unlock()
	s.sink.Emit(m)

	if e.critical && e.c.stripped && s.cfg.AlwaysIncludeInBuilds {
		e.toCriticalFile(s, m)
	}
}

func (e *Engine) toCriticalFile(s snapshot, m diag.Message) {
	text := m.Plain
	if !strings.HasPrefix(text, CriticalPrefix) {
		text = CriticalPrefix + text
	}
	stack := m.StackTrace
	if stack == "" {
		stack = diag.CleanStack(diag.CaptureStack(1), s.hidden)
	}
	if stack != "" {
		text += "\n" + strings.TrimSuffix(stack, "\n")
	}
	// best-effort: the sink already has the message
	_ = s.files.Append(text, CriticalLogFile, sink.OnSessionStart)
}
