package format_test

import (
	"math"
	"strings"
	"testing"

	"chanlog/internal/format"
	"chanlog/internal/testkit"
)

func TestPlainMatchesStrippedDecorated(t *testing.T) {
	values := []any{
		nil,
		"",
		"plain words",
		`"quoted"`,
		"<color=red>pre-decorated</color>",
		"a <b>bold</b> word",
		"<none>",
		"<<b>b>nested",
		"esc \x1b[31mred\x1b[0m inside",
		[]string{"x<i>y</i>"},
		[]string{"<none>"},
		true,
		false,
		0,
		-1000,
		1001,
		uint8(7),
		3.25,
		math.NaN(),
		[2]float64{1, -2},
		[4]float32{1, 2, 3, 4.5},
		[]int{},
		[]string{"a", "b", ""},
		[]any{nil, 1.5, []int{1}},
		map[string]any{"k": "v", "n": nil},
		struct{ A int }{A: 1},
		make([]string, 60),
	}
	stylers := []format.Styler{format.RichText{}, format.ANSI{}, format.None{}}
	for _, st := range stylers {
		f := format.New(format.Options{Styler: st, Colorize: true})
		t.Run(st.Name(), func(t *testing.T) {
			for _, v := range values {
				for _, quote := range []bool{false, true} {
					if err := testkit.CheckTextInvariants(st, f.FormatAny(v, quote)); err != nil {
						t.Errorf("value %#v quote=%v: %v", v, quote, err)
					}
				}
			}
			composed := []format.Text{
				f.Join("a", 2, nil),
				f.Sprintf("{0} and {1}", 1, []string{"x"}),
				f.Entries("T", []format.NamedValue{{Name: "a", Value: 1}}),
				f.Highlight("x = 5, ok: true, s: \"str\""),
				f.NameValue("n", 3.5),
				f.NameValue("<b>n</b>", "v<i>w</i>"),
				f.Sprintf("<b>{0}</b> of {1}", 1, "a<i>b</i>"),
				f.Entries("<color=red>T</color>", []format.NamedValue{{Name: "s", Value: "q<b>r</b>"}}),
				f.Highlight("n = <b>5</b>"),
				f.Join("lead <b>x</b> ", 2, "s<i>t</i>"),
			}
			for i, txt := range composed {
				if err := testkit.CheckTextInvariants(st, txt); err != nil {
					t.Errorf("composed %d: %v", i, err)
				}
			}
		})
	}
}

func TestLongCollectionsBreakLines(t *testing.T) {
	f := format.Default()
	items := make([]string, 50)
	for i := range items {
		items[i] = strings.Repeat("w", 30)
	}
	out := f.FormatAny(items, false).Plain
	if err := testkit.CheckLineWidth(out, 175); err != nil {
		t.Fatal(err)
	}
	short := f.FormatAny([]int{1, 2, 3}, false).Plain
	if short != "[1, 2, 3]" {
		t.Errorf("short = %q", short)
	}
}
