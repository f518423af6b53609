package engine

import "chanlog/internal/diag"

// Log writes args at Log severity. A single string is the message text,
// several values are joined; Option values among args are applied, not shown.
func (e *Engine) Log(args ...any) { e.log(diag.SevLog, "", "", args) }

// LogOn writes args on channel ch.
func (e *Engine) LogOn(ch string, args ...any) { e.log(diag.SevLog, ch, "", args) }

// LogOn2 writes args on two channels; it is shown if either is enabled.
func (e *Engine) LogOn2(ch1, ch2 string, args ...any) { e.log(diag.SevLog, ch1, ch2, args) }

// Warning writes args at Warning severity.
func (e *Engine) Warning(args ...any) { e.log(diag.SevWarning, "", "", args) }

func (e *Engine) WarningOn(ch string, args ...any) { e.log(diag.SevWarning, ch, "", args) }

func (e *Engine) WarningOn2(ch1, ch2 string, args ...any) { e.log(diag.SevWarning, ch1, ch2, args) }

// Error writes args at Error severity.
func (e *Engine) Error(args ...any) { e.log(diag.SevError, "", "", args) }

func (e *Engine) ErrorOn(ch string, args ...any) { e.log(diag.SevError, ch, "", args) }

func (e *Engine) ErrorOn2(ch1, ch2 string, args ...any) { e.log(diag.SevError, ch1, ch2, args) }

// Logf writes a message built from positional "{0}" placeholders.
func (e *Engine) Logf(format string, args ...any) { e.logf(diag.SevLog, "", "", format, args) }

func (e *Engine) LogfOn(ch, format string, args ...any) { e.logf(diag.SevLog, ch, "", format, args) }

func (e *Engine) Warningf(format string, args ...any) { e.logf(diag.SevWarning, "", "", format, args) }

func (e *Engine) WarningfOn(ch, format string, args ...any) {
	e.logf(diag.SevWarning, ch, "", format, args)
}

func (e *Engine) Errorf(format string, args ...any) { e.logf(diag.SevError, "", "", format, args) }

func (e *Engine) ErrorfOn(ch, format string, args ...any) { e.logf(diag.SevError, ch, "", format, args) }

// Exception writes err at Exception severity. A nil err logs the null token.
func (e *Engine) Exception(err error, opts ...Option) {
	args := make([]any, 0, len(opts)+1)
	args = append(args, err)
	for _, o := range opts {
		args = append(args, o)
	}
	e.log(diag.SevException, "", "", args)
}
