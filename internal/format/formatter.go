package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Colors maps value roles to colour tags.
type Colors struct {
	True      string
	False     string
	String    string
	Numeric   string
	Separator string
}

// DefaultColors is the built-in role palette.
var DefaultColors = Colors{
	True:      "green",
	False:     "red",
	String:    "orange",
	Numeric:   "cyan",
	Separator: "grey",
}

// Layout selects how a composed message is presented in decorated form.
type Layout uint8

const (
	// LayoutClean appends a trailing newline so consoles show a one-line preview.
	LayoutClean Layout = iota
	// LayoutLargeFont renders the whole message in the large font.
	LayoutLargeFont
	// LayoutAuto uses the large font for single-line messages only.
	LayoutAuto
)

func (l Layout) String() string {
	switch l {
	case LayoutClean:
		return "clean"
	case LayoutLargeFont:
		return "large"
	case LayoutAuto:
		return "auto"
	}
	return "unknown"
}

// ParseLayout converts a string to a Layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "clean":
		return LayoutClean, nil
	case "large", "largefont", "large_font":
		return LayoutLargeFont, nil
	case "auto":
		return LayoutAuto, nil
	default:
		return LayoutClean, fmt.Errorf("invalid layout: %q (expected: clean|large|auto)", s)
	}
}

// Options configures a Formatter.
type Options struct {
	Styler             Styler
	Colors             Colors
	Colorize           bool
	MaxLineLength      int
	NameValueSeparator string
	EntrySeparator     string
	LargeFontSize      int
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{
		Styler:             RichText{},
		Colors:             DefaultColors,
		Colorize:           true,
		MaxLineLength:      175,
		NameValueSeparator: "=",
		EntrySeparator:     ", ",
		LargeFontSize:      23,
	}
}

// Formatter renders Values into Text. It is immutable and safe for concurrent use.
type Formatter struct {
	opt Options
	st  Styler
}

var defaultPlain = New(Options{Styler: None{}})

// New returns a Formatter. Zero option fields take their defaults, except
// Colorize: a zero Options renders undecorated text.
func New(opt Options) *Formatter {
	def := DefaultOptions()
	if opt.Styler == nil {
		opt.Styler = def.Styler
	}
	if opt.Colors == (Colors{}) {
		opt.Colors = def.Colors
	}
	if opt.MaxLineLength <= 0 {
		opt.MaxLineLength = def.MaxLineLength
	}
	if opt.NameValueSeparator == "" {
		opt.NameValueSeparator = def.NameValueSeparator
	}
	if opt.EntrySeparator == "" {
		opt.EntrySeparator = def.EntrySeparator
	}
	if opt.LargeFontSize <= 0 {
		opt.LargeFontSize = def.LargeFontSize
	}
	st := opt.Styler
	if !opt.Colorize {
		st = None{}
	}
	return &Formatter{opt: opt, st: st}
}

// Default returns a Formatter with DefaultOptions.
func Default() *Formatter { return New(DefaultOptions()) }

// Options returns the effective configuration.
func (f *Formatter) Options() Options { return f.opt }

// Styler returns the styler used for decorated output.
func (f *Formatter) Styler() Styler { return f.st }

// Strip removes the active styler's markup.
func (f *Formatter) Strip(s string) string { return f.st.Strip(s) }

// Format renders v. quoteStrings wraps top-level strings in double quotes;
// strings nested in collections are always quoted.
func (f *Formatter) Format(v Value, quoteStrings bool) Text {
	var b textBuilder
	f.write(&b, v, quoteStrings)
	return b.Text()
}

// FormatAny is Format(Of(v), quoteStrings).
func (f *Formatter) FormatAny(v any, quoteStrings bool) Text {
	return f.Format(Of(v), quoteStrings)
}

func (f *Formatter) write(b *textBuilder, v Value, quote bool) {
	switch x := v.(type) {
	case nil, nullValue:
		b.styled("null", f.st.Paint(f.opt.Colors.False, "null"))
	case String:
		f.writeString(b, string(x), quote)
	case Bool:
		if x {
			b.styled("True", f.st.Paint(f.opt.Colors.True, "True"))
		} else {
			b.styled("False", f.st.Paint(f.opt.Colors.False, "False"))
		}
	case Int:
		f.number(b, formatInt(int64(x)))
	case Uint:
		f.number(b, formatUint(uint64(x)))
	case Float:
		f.number(b, formatFloat(float64(x)))
	case Vector:
		b.same("(")
		for i, c := range x {
			if i > 0 {
				b.same(", ")
			}
			f.number(b, formatFloat(c))
		}
		b.same(")")
	case List:
		parts := make([]Text, len(x))
		for i, item := range x {
			parts[i] = f.Format(item, true)
		}
		b.text(f.collection(parts))
	case Map:
		parts := make([]Text, len(x))
		for i, e := range x {
			var eb textBuilder
			f.write(&eb, e.Key, true)
			eb.styled(":", f.st.Paint(f.opt.Colors.Separator, ":"))
			eb.same(" ")
			f.write(&eb, e.Value, true)
			parts[i] = eb.Text()
		}
		b.text(f.collection(parts))
	case Raw:
		b.text(Text(x))
	case Opaque:
		f.writeOpaque(b, x.V)
	default:
		b.same(fmt.Sprint(v))
	}
}

func (f *Formatter) writeString(b *textBuilder, s string, quote bool) {
	if s == "" {
		b.styled(`""`, f.st.Paint(f.opt.Colors.String, `""`))
		return
	}
	if f.st.StartsWithMarkup(s) || !quote || s[0] == '"' || s[0] == '\'' {
		f.verbatim(b, s)
		return
	}
	q := `"` + s + `"`
	b.styled(`"`+f.st.Strip(s)+`"`, f.st.Paint(f.opt.Colors.String, q))
}

// verbatim writes user text: its markup stays in the decorated form and is
// removed from the plain one.
func (f *Formatter) verbatim(b *textBuilder, s string) {
	b.styled(f.st.Strip(s), s)
}

func (f *Formatter) writeOpaque(b *textBuilder, v any) {
	defer func() {
		if r := recover(); r != nil {
			b.same(ErrorPlaceholder)
		}
	}()
	s := fmt.Sprint(v)
	b.same(f.st.Strip(s))
}

func (f *Formatter) number(b *textBuilder, s string) {
	b.styled(s, f.st.Paint(f.opt.Colors.Numeric, s))
}

// collection joins rendered elements with ", " or, when the one-line plain
// form is longer than MaxLineLength, with ",\n".
func (f *Formatter) collection(parts []Text) Text {
	if len(parts) == 0 {
		return Same("[]")
	}
	sep := ", "
	total := 2 + 2*(len(parts)-1)
	for _, p := range parts {
		total += len(p.Plain)
	}
	if total > f.opt.MaxLineLength {
		sep = ",\n"
	}
	var b textBuilder
	b.same("[")
	for i, p := range parts {
		if i > 0 {
			b.same(sep)
		}
		b.text(p)
	}
	b.same("]")
	return b.Text()
}

// ErrorPlaceholder replaces values whose rendering failed.
const ErrorPlaceholder = "<error>"

const cachedInts = 1000

var smallInts = func() [cachedInts + 1]string {
	var t [cachedInts + 1]string
	for i := range t {
		t[i] = strconv.Itoa(i)
	}
	return t
}()

func formatInt(n int64) string {
	switch {
	case n >= 0 && n <= cachedInts:
		return smallInts[n]
	case n < 0 && n >= -cachedInts:
		return "-" + smallInts[-n]
	}
	return strconv.FormatInt(n, 10)
}

func formatUint(n uint64) string {
	if n <= cachedInts {
		return smallInts[n]
	}
	return strconv.FormatUint(n, 10)
}

// formatFloat renders integral values without a fraction and everything else
// with at most three decimals.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return formatInt(int64(v))
	}
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" {
		return "0"
	}
	return s
}
