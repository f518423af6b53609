package format

import (
	"strconv"
	"strings"

	"chanlog/internal/channel"
)

// Layout applies l to the decorated form of t and returns the text handed to sinks.
func (f *Formatter) Layout(t Text, l Layout) string {
	switch l {
	case LayoutLargeFont:
		return f.st.Large(f.opt.LargeFontSize, t.Decorated)
	case LayoutAuto:
		if strings.Contains(t.Plain, "\n") {
			return t.Decorated + "\n"
		}
		return f.st.Large(f.opt.LargeFontSize, t.Decorated)
	default:
		return t.Decorated + "\n"
	}
}

// Tag renders the bracketed channel tag "[name]".
func (f *Formatter) Tag(ch channel.Channel) Text {
	tag := "[" + ch.Name + "]"
	return Text{Plain: tag, Decorated: f.st.Paint(ch.Color, tag)}
}

// WithPrefix prepends "[name] ". The "no channel" sentinel leaves t unchanged.
func (f *Formatter) WithPrefix(ch channel.Channel, t Text) Text {
	if ch.IsNone() {
		return t
	}
	return f.Tag(ch).Concat(Same(" ")).Concat(t)
}

// WithPrefixes prepends "[name1][name2] ", skipping sentinel channels.
func (f *Formatter) WithPrefixes(ch1, ch2 channel.Channel, t Text) Text {
	switch {
	case ch1.IsNone():
		return f.WithPrefix(ch2, t)
	case ch2.IsNone():
		return f.WithPrefix(ch1, t)
	}
	return f.Tag(ch1).Concat(f.Tag(ch2)).Concat(Same(" ")).Concat(t)
}

// Message renders a single logged value: strings are the message text itself
// and are not quoted.
func (f *Formatter) Message(v any) Text {
	return f.Format(Of(v), false)
}

// Join renders several logged values. A leading string is message text: it
// is highlighted and glued to the values that follow. The values are not
// quoted and go on separate lines unless the one-line form fits in
// MaxLineLength and no part spans lines.
func (f *Formatter) Join(values ...any) Text {
	switch len(values) {
	case 0:
		return Text{}
	case 1:
		return f.Message(values[0])
	}
	var lead Text
	if s, ok := values[0].(string); ok {
		lead = f.Highlight(s)
		values = values[1:]
	}
	parts := make([]Text, len(values))
	for i, v := range values {
		parts[i] = f.Format(Of(v), false)
	}
	return lead.Concat(f.joinParts(parts, "\n", len(lead.Plain)))
}

// joinParts joins parts with the entry separator, or with long when a part
// spans lines or the line would exceed MaxLineLength. used is the length of
// the text written in front of the parts.
func (f *Formatter) joinParts(parts []Text, long string, used int) Text {
	sep := f.opt.EntrySeparator
	total := used + len(sep)*(len(parts)-1)
	for _, p := range parts {
		total += len(p.Plain)
		if strings.Contains(p.Plain, "\n") {
			sep = long
		}
	}
	if total > f.opt.MaxLineLength {
		sep = long
	}
	var b textBuilder
	for i, p := range parts {
		if i > 0 {
			b.same(sep)
		}
		b.text(p)
	}
	return b.Text()
}

// Entries renders "<title> state: a=1, b=2", switching to one entry per line
// when the one-line form is too long.
func (f *Formatter) Entries(title string, fields []NamedValue) Text {
	parts := make([]Text, len(fields))
	for i, fv := range fields {
		parts[i] = f.NameValue(fv.Name, fv.Value)
	}
	var hb textBuilder
	f.verbatim(&hb, title)
	hb.same(" state:")
	head := hb.Text()
	if len(parts) == 0 {
		return head
	}
	body := f.joinParts(parts, "\n", 0)
	if strings.Contains(body.Plain, "\n") {
		return head.Concat(Same("\n")).Concat(body)
	}
	return head.Concat(Same(" ")).Concat(body)
}

// NameValue renders "name=value" with the configured separator.
func (f *Formatter) NameValue(name string, v any) Text {
	var b textBuilder
	sep := f.opt.NameValueSeparator
	f.verbatim(&b, name)
	b.styled(sep, f.st.Paint(f.opt.Colors.Separator, sep))
	f.write(&b, Of(v), true)
	return b.Text()
}

// Sprintf substitutes positional {N} placeholders with args rendered by the
// formatter. "{{" and "}}" are literal braces; placeholders with an
// out-of-range or malformed index are kept verbatim.
func (f *Formatter) Sprintf(format string, args ...any) Text {
	rendered := make([]Text, len(args))
	done := make([]bool, len(args))
	var b textBuilder
	for i := 0; i < len(format); i++ {
		c := format[i]
		switch {
		case c == '{' && i+1 < len(format) && format[i+1] == '{':
			b.same("{")
			i++
		case c == '}' && i+1 < len(format) && format[i+1] == '}':
			b.same("}")
			i++
		case c == '{':
			end := strings.IndexByte(format[i:], '}')
			if end < 0 {
				b.same(format[i:])
				return b.Text()
			}
			spec := format[i+1 : i+end]
			if colon := strings.IndexAny(spec, ":,"); colon >= 0 {
				spec = spec[:colon]
			}
			n, err := strconv.Atoi(strings.TrimSpace(spec))
			if err != nil || n < 0 || n >= len(args) {
				b.same(format[i : i+end+1])
			} else {
				if !done[n] {
					rendered[n] = f.Message(args[n])
					done[n] = true
				}
				b.text(rendered[n])
			}
			i += end
		default:
			next := strings.IndexAny(format[i:], "{}")
			if next < 0 {
				f.verbatim(&b, format[i:])
				return b.Text()
			}
			if next == 0 {
				// lone '}'
				next = 1
			}
			f.verbatim(&b, format[i:i+next])
			i += next - 1
		}
	}
	return b.Text()
}
