package format

import (
	"math"
	"strconv"
	"strings"
	"testing"

	"chanlog/internal/channel"
)

func TestFormatScalars(t *testing.T) {
	f := Default()
	tests := []struct {
		name  string
		v     Value
		quote bool
		plain string
		deco  string
	}{
		{"null", Null, false, "null", "<color=red>null</color>"},
		{"empty string", String(""), false, `""`, `<color=orange>""</color>`},
		{"empty string quoted", String(""), true, `""`, `<color=orange>""</color>`},
		{"string unquoted", String("hi"), false, "hi", "hi"},
		{"string quoted", String("hi"), true, `"hi"`, `<color=orange>"hi"</color>`},
		{"already quoted", String(`"x"`), true, `"x"`, `"x"`},
		{"apostrophe", String("'x'"), true, "'x'", "'x'"},
		{"already decorated", String("<b>bold</b>"), true, "bold", "<b>bold</b>"},
		{"angle brackets are not markup", String("<none>"), true, `"<none>"`, `<color=orange>"<none>"</color>`},
		{"markup inside quoted text", String("a <b>bold</b> word"), true, `"a bold word"`, `<color=orange>"a <b>bold</b> word"</color>`},
		{"markup inside message text", String("a <i>x</i>"), false, "a x", "a <i>x</i>"},
		{"true", Bool(true), false, "True", "<color=green>True</color>"},
		{"false", Bool(false), false, "False", "<color=red>False</color>"},
		{"small int", Int(42), false, "42", "<color=cyan>42</color>"},
		{"negative int", Int(-5), false, "-5", "<color=cyan>-5</color>"},
		{"large int", Int(123456), false, "123456", "<color=cyan>123456</color>"},
		{"uint", Uint(1000), false, "1000", "<color=cyan>1000</color>"},
		{"integral float", Float(3), false, "3", "<color=cyan>3</color>"},
		{"fraction", Float(2.5), false, "2.5", "<color=cyan>2.5</color>"},
		{"three decimals", Float(1.23456), false, "1.235", "<color=cyan>1.235</color>"},
		{"tiny negative", Float(-0.0001), false, "0", "<color=cyan>0</color>"},
		{"nan", Float(math.NaN()), false, "NaN", "<color=cyan>NaN</color>"},
		{"inf", Float(math.Inf(1)), false, "Infinity", "<color=cyan>Infinity</color>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := f.Format(tt.v, tt.quote)
			if got.Plain != tt.plain {
				t.Errorf("plain = %q, want %q", got.Plain, tt.plain)
			}
			if got.Decorated != tt.deco {
				t.Errorf("decorated = %q, want %q", got.Decorated, tt.deco)
			}
		})
	}
}

func TestCachedIntsMatchNaive(t *testing.T) {
	for i := -1000; i <= 1000; i++ {
		want := strconv.Itoa(i)
		if got := formatInt(int64(i)); got != want {
			t.Fatalf("formatInt(%d) = %q, want %q", i, got, want)
		}
	}
}

func TestFormatVector(t *testing.T) {
	f := Default()
	got := f.Format(Vec(1, 2.5, 3), false)
	if got.Plain != "(1, 2.5, 3)" {
		t.Errorf("plain = %q", got.Plain)
	}
	want := "(<color=cyan>1</color>, <color=cyan>2.5</color>, <color=cyan>3</color>)"
	if got.Decorated != want {
		t.Errorf("decorated = %q, want %q", got.Decorated, want)
	}
	if p := f.FormatAny([3]float32{0, 1, 0}, false).Plain; p != "(0, 1, 0)" {
		t.Errorf("array vector = %q", p)
	}
}

func TestFormatCollections(t *testing.T) {
	f := Default()
	tests := []struct {
		name  string
		in    any
		plain string
	}{
		{"short list", []int{1, 2, 3}, "[1, 2, 3]"},
		{"empty list", []string{}, "[]"},
		{"nil slice", []int(nil), "[]"},
		{"strings quoted", []string{"a", "b"}, `["a", "b"]`},
		{"nested", [][]int{{1}, {2, 3}}, "[[1], [2, 3]]"},
		{"string map", map[string]int{"b": 2, "a": 1}, `["a": 1, "b": 2]`},
		{"int map numeric order", map[int]string{10: "x", 2: "y"}, `[2: "y", 10: "x"]`},
		{"nil pointer", (*int)(nil), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatAny(tt.in, false).Plain; got != tt.plain {
				t.Errorf("plain = %q, want %q", got, tt.plain)
			}
		})
	}
}

func TestCollectionLineSplitting(t *testing.T) {
	f := Default()
	items := make([]string, 50)
	for i := range items {
		items[i] = strings.Repeat("x", 20)
	}
	got := f.FormatAny(items, false)
	if !strings.Contains(got.Plain, ",\n") {
		t.Fatalf("long list should split lines: %q", got.Plain[:40])
	}
	if strings.Count(got.Plain, "\n") != 49 {
		t.Errorf("expected 49 line breaks, got %d", strings.Count(got.Plain, "\n"))
	}
	if strings.Count(got.Decorated, ",\n") != 49 {
		t.Errorf("decorated form should split the same way")
	}

	narrow := New(Options{Colorize: true, MaxLineLength: 9})
	if p := narrow.FormatAny([]int{1, 2, 3}, false).Plain; p != "[1, 2, 3]" {
		t.Errorf("exactly at limit should stay on one line: %q", p)
	}
	if p := narrow.FormatAny([]int{1, 2, 3, 4}, false).Plain; p != "[1,\n2,\n3,\n4]" {
		t.Errorf("over limit should split: %q", p)
	}
}

func TestColorizeOff(t *testing.T) {
	f := New(Options{Colorize: false})
	got := f.FormatAny([]any{true, "s", 1.5, nil}, false)
	if got.Plain != got.Decorated {
		t.Errorf("colorize off: decorated %q != plain %q", got.Decorated, got.Plain)
	}
	if got.Plain != `[True, "s", 1.5, null]` {
		t.Errorf("plain = %q", got.Plain)
	}
}

func TestWithPrefix(t *testing.T) {
	f := Default()
	r := channel.NewRegistry()
	audio := r.GetOrCreate("Audio")
	net := r.GetOrCreate("Net")
	msg := Same("hello")

	got := f.WithPrefix(audio, msg)
	if got.Plain != "[Audio] hello" {
		t.Errorf("plain = %q", got.Plain)
	}
	if got.Decorated != "<color="+audio.Color+">[Audio]</color> hello" {
		t.Errorf("decorated = %q", got.Decorated)
	}
	if same := f.WithPrefix(channel.Channel{}, msg); same != msg {
		t.Errorf("none channel changed text: %+v", same)
	}
	both := f.WithPrefixes(audio, net, msg)
	if both.Plain != "[Audio][Net] hello" {
		t.Errorf("two prefixes plain = %q", both.Plain)
	}
	if one := f.WithPrefixes(channel.Channel{}, net, msg); one.Plain != "[Net] hello" {
		t.Errorf("sentinel first prefix plain = %q", one.Plain)
	}
}

func TestJoin(t *testing.T) {
	f := Default()
	long := strings.Repeat("y", 200)
	tests := []struct {
		name   string
		values []any
		want   string
	}{
		{"single value", []any{"single"}, "single"},
		{"leading text", []any{"count: ", 3}, "count: 3"},
		{"leading text glued", []any{"hp", 10}, "hp10"},
		{"leading text with several values", []any{"got ", 1, true, "s"}, "got 1, True, s"},
		{"values only", []any{1, "a", nil}, "1, a, null"},
		{"collections keep quotes", []any{2, []string{"x"}}, `2, ["x"]`},
		{"long values split", []any{1, long}, "1\n" + long},
		{"leading text counts toward the limit", []any{strings.Repeat("p", 173), 1, 2}, strings.Repeat("p", 173) + "1\n2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Join(tt.values...).Plain; got != tt.want {
				t.Errorf("Join(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
	lead := f.Join("x = ", 5)
	if lead.Decorated != "x <color=grey>=</color> <color=cyan>5</color>" {
		t.Errorf("leading text should be highlighted: %q", lead.Decorated)
	}
}

func TestEntries(t *testing.T) {
	f := Default()
	got := f.Entries("Player", []NamedValue{{"hp", 10}, {"name", "Bob"}})
	if got.Plain != `Player state: hp=10, name="Bob"` {
		t.Errorf("plain = %q", got.Plain)
	}
	if !strings.Contains(got.Decorated, "<color=grey>=</color>") {
		t.Errorf("separator not decorated: %q", got.Decorated)
	}
	long := f.Entries("Big", []NamedValue{{"a", strings.Repeat("z", 100)}, {"b", strings.Repeat("z", 100)}})
	if !strings.HasPrefix(long.Plain, "Big state:\na=") {
		t.Errorf("long entries should go one per line: %q", long.Plain[:20])
	}
	if empty := f.Entries("Empty", nil); empty.Plain != "Empty state:" {
		t.Errorf("empty = %q", empty.Plain)
	}
}

func TestSprintf(t *testing.T) {
	f := Default()
	tests := []struct {
		name   string
		format string
		args   []any
		plain  string
	}{
		{"positional", "x={0}, y={1}", []any{1, "s"}, "x=1, y=s"},
		{"reorder and repeat", "{1}{0}{1}", []any{"a", "b"}, "bab"},
		{"escaped braces", "{{lit}}", nil, "{lit}"},
		{"out of range kept", "{5}", []any{1}, "{5}"},
		{"malformed kept", "{x} {", []any{1}, "{x} {"},
		{"format suffix ignored", "{0:0.00}", []any{2.5}, "2.5"},
		{"utf8 literal", "привет {0}", []any{true}, "привет True"},
		{"collection arg", "v={0}", []any{[]int{1, 2}}, "v=[1, 2]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Sprintf(tt.format, tt.args...).Plain; got != tt.plain {
				t.Errorf("Sprintf(%q) = %q, want %q", tt.format, got, tt.plain)
			}
		})
	}
	got := f.Sprintf("n={0}", 7)
	if got.Decorated != "n=<color=cyan>7</color>" {
		t.Errorf("decorated = %q", got.Decorated)
	}
}

func TestHighlight(t *testing.T) {
	f := Default()
	got := f.Highlight("count = 5 and ok: true")
	if got.Plain != "count = 5 and ok: true" {
		t.Errorf("plain changed: %q", got.Plain)
	}
	want := "count <color=grey>=</color> <color=cyan>5</color> and ok<color=grey>:</color> <color=green>true</color>"
	if got.Decorated != want {
		t.Errorf("decorated = %q\nwant        %q", got.Decorated, want)
	}

	tests := []struct {
		name string
		in   string
		deco string
	}{
		{"identifier digits", "v2 x", "v2 x"},
		{"quoted", `say "hi"`, `say <color=orange>"hi"</color>`},
		{"unterminated quote", `say "hi`, `say "hi`},
		{"char", "c 'x'", "c <color=orange>'x'</color>"},
		{"negative", "t -3.5", "t <color=cyan>-3.5</color>"},
		{"null word", "got null", "got <color=red>null</color>"},
		{"markup passes through", "<color=red>x</color> 5", "<color=red>x</color> 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.Highlight(tt.in).Decorated; got != tt.deco {
				t.Errorf("Highlight(%q) = %q, want %q", tt.in, got, tt.deco)
			}
		})
	}

	long := strings.Repeat("1 ", maxHighlightLength)
	if got := f.Highlight(long); got.Decorated != long {
		t.Error("texts over the highlight limit must pass through")
	}
}

func TestLayout(t *testing.T) {
	f := Default()
	one := Same("one line")
	two := Same("two\nlines")
	if got := f.Layout(one, LayoutClean); got != "one line\n" {
		t.Errorf("clean = %q", got)
	}
	if got := f.Layout(one, LayoutLargeFont); got != "<size=23>one line</size>" {
		t.Errorf("large = %q", got)
	}
	if got := f.Layout(two, LayoutAuto); got != "two\nlines\n" {
		t.Errorf("auto multi-line = %q", got)
	}
	if got := f.Layout(one, LayoutAuto); got != "<size=23>one line</size>" {
		t.Errorf("auto single line = %q", got)
	}
}

func TestParseLayoutAndStyler(t *testing.T) {
	if l, err := ParseLayout("LARGE"); err != nil || l != LayoutLargeFont {
		t.Errorf("ParseLayout(LARGE) = %v, %v", l, err)
	}
	if _, err := ParseLayout("huge"); err == nil {
		t.Error("expected error for unknown layout")
	}
	for _, name := range []string{"rich", "ansi", "plain"} {
		st, err := ParseStyler(name)
		if err != nil {
			t.Fatalf("ParseStyler(%q): %v", name, err)
		}
		if st.Name() != name {
			t.Errorf("ParseStyler(%q).Name() = %q", name, st.Name())
		}
	}
	if _, err := ParseStyler("html"); err == nil {
		t.Error("expected error for unknown style")
	}
}

type point struct{ x, y int }

func (p point) ChanlogValue() Value { return List{Int(p.x), Int(p.y)} }

func TestValuer(t *testing.T) {
	if got := Default().FormatAny(point{1, 2}, false).Plain; got != "[1, 2]" {
		t.Errorf("Valuer plain = %q", got)
	}
}
