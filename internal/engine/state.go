package engine

import (
	"reflect"

	"chanlog/internal/diag"
	"chanlog/internal/format"
)

// Inspectable lists the fields LogState prints.
type Inspectable interface {
	Fields() []format.NamedValue
}

// StateNamer overrides the title LogState uses instead of the type name.
type StateNamer interface {
	StateName() string
}

// LogState writes "<Type> state: a=1, b=2" for target, one field per line
// when the one-line form is too long. WithFields limits the listed fields.
// A panicking Fields renders the error placeholder.
func (e *Engine) LogState(target Inspectable, opts ...Option) {
	e.logState("", target, opts)
}

// LogStateOn is LogState on channel ch.
func (e *Engine) LogStateOn(ch string, target Inspectable, opts ...Option) {
	e.logState(ch, target, opts)
}

func (e *Engine) logState(ch string, target Inspectable, opts []Option) {
	if e.skip(diag.SevLog) {
		return
	}
	var c call
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	s := e.c.snapshot()
	e.emit(s, request{sev: diag.SevLog, ch1: ch, body: stateText(s.fmt, target, c.fields), call: c})
}

func stateText(f *format.Formatter, target Inspectable, only []string) format.Text {
	if target == nil || isNilPointer(target) {
		return f.Message(nil)
	}
	title := stateTitle(target)
	fields, ok := safeFields(target)
	if !ok {
		return format.Same(title + " state: " + format.ErrorPlaceholder)
	}
	if len(only) > 0 {
		fields = filterFields(fields, only)
	}
	return f.Entries(title, fields)
}

func safeFields(target Inspectable) (fields []format.NamedValue, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			fields, ok = nil, false
		}
	}()
	return target.Fields(), true
}

func filterFields(fields []format.NamedValue, only []string) []format.NamedValue {
	keep := make(map[string]struct{}, len(only))
	for _, n := range only {
		keep[n] = struct{}{}
	}
	out := fields[:0:0]
	for _, fv := range fields {
		if _, ok := keep[fv.Name]; ok {
			out = append(out, fv)
		}
	}
	return out
}

// stateTitle is StateName when provided, else the bare type name.
func stateTitle(target Inspectable) (title string) {
	if n, ok := target.(StateNamer); ok {
		defer func() {
			if r := recover(); r != nil {
				title = typeName(target)
			}
		}()
		return n.StateName()
	}
	return typeName(target)
}

func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() != "" {
		return t.Name()
	}
	return t.String()
}

func isNilPointer(v any) bool {
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
