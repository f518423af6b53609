package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"chanlog/internal/tracker"
)

func plainLines(s string) []string {
	return strings.Split(ansi.Strip(s), "\n")
}

func TestRenderRows(t *testing.T) {
	p := New("Trackers")
	out := p.Render([]tracker.Entry{
		{Label: "speed", Text: "12.5"},
		{Label: "target", Text: tracker.ErrorText, Failed: true},
		{Label: "Respawn", Text: "Respawn", Button: true},
	})
	lines := plainLines(out)
	// border, title, three rows, border
	if len(lines) != 6 {
		t.Fatalf("got %d lines:\n%s", len(lines), ansi.Strip(out))
	}
	checks := []struct {
		line int
		want string
	}{
		{1, "Trackers"},
		{2, "speed  12.5"},
		{3, "target <error>"},
		{4, "[ Respawn ]"},
	}
	for _, c := range checks {
		if !strings.Contains(lines[c.line], c.want) {
			t.Errorf("line %d = %q, want it to contain %q", c.line, lines[c.line], c.want)
		}
	}
	width := ansi.StringWidth(lines[0])
	if width != DefaultWidth {
		t.Errorf("panel width = %d, want %d", width, DefaultWidth)
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != width {
			t.Errorf("line %d width = %d, want %d", i, w, width)
		}
	}
}

func TestRenderTruncates(t *testing.T) {
	p := New("")
	p.Width = 24
	out := p.Render([]tracker.Entry{
		{Label: strings.Repeat("L", 30), Text: strings.Repeat("v", 40)},
		{Label: "multi", Text: "a\nb"},
	})
	lines := plainLines(out)
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), ansi.Strip(out))
	}
	// 20 inner cells: a 10 cell label, a space and a 9 cell value
	if !strings.Contains(lines[1], "│ LLLLLLL... vvvvvv... │") {
		t.Errorf("long row not truncated: %q", lines[1])
	}
	if !strings.Contains(lines[2], "a b") {
		t.Errorf("multi-line value should be flattened: %q", lines[2])
	}
	for i, l := range lines {
		if w := ansi.StringWidth(l); w != 24 {
			t.Errorf("line %d width = %d, want 24", i, w)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly", 7, "exactly"},
		{"overflowing", 8, "overf..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, ""},
		{"日本語テキスト", 7, "日本..."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := truncate(tt.in, tt.width)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
			if w := ansi.StringWidth(got); w > tt.width {
				t.Errorf("width %d exceeds %d", w, tt.width)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	out := ansi.Strip(New("").Render(nil))
	if !strings.Contains(out, emptyText) {
		t.Errorf("empty panel = %q", out)
	}
}

func TestNextFocus(t *testing.T) {
	entries := []tracker.Entry{
		{Label: "a", Button: true},
		{Label: "speed"},
		{Label: "b", Button: true},
		{Label: "c", Button: true},
	}
	tests := []struct {
		current string
		delta   int
		want    string
	}{
		{"", 1, "a"},
		{"a", 1, "b"},
		{"c", 1, "a"},
		{"a", -1, "c"},
		{"speed", 1, "a"},
		{"b", 0, "b"},
	}
	for _, tt := range tests {
		t.Run(tt.current, func(t *testing.T) {
			if got := NextFocus(entries, tt.current, tt.delta); got != tt.want {
				t.Errorf("NextFocus(%q, %d) = %q, want %q", tt.current, tt.delta, got, tt.want)
			}
		})
	}
	if NextFocus(entries[1:2], "x", 1) != "" {
		t.Error("no buttons should give no focus")
	}
}
