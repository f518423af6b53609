package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"chanlog/internal/tracker"
)

// DefaultWidth is the panel width used when Panel.Width is zero.
const DefaultWidth = 48

const (
	frameWidth    = 4 // border + horizontal padding
	minInnerWidth = 12
	minLabelWidth = 4
	emptyText     = "(nothing displayed)"
)

// Styles are the lipgloss styles of the panel parts.
type Styles struct {
	Frame   lipgloss.Style
	Title   lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Failed  lipgloss.Style
	Button  lipgloss.Style
	Focused lipgloss.Style
}

// DefaultStyles returns the built-in look.
func DefaultStyles() Styles {
	return Styles{
		Frame:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1),
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		Label:   lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Value:   lipgloss.NewStyle(),
		Failed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		Button:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Focused: lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Reverse(true),
	}
}

// Panel renders tracker entries as a framed table: one readout per line,
// buttons as "[ label ]" rows.
type Panel struct {
	Title  string
	Width  int
	Styles Styles
	// Focus is the label of the highlighted button.
	Focus string
}

// New returns a panel with the default size and styles.
func New(title string) *Panel {
	return &Panel{Title: title, Width: DefaultWidth, Styles: DefaultStyles()}
}

func (p *Panel) innerWidth() int {
	w := p.Width
	if w <= 0 {
		w = DefaultWidth
	}
	w -= frameWidth
	if w < minInnerWidth {
		w = minInnerWidth
	}
	return w
}

// Render draws entries. Every content row has the same display width.
func (p *Panel) Render(entries []tracker.Entry) string {
	inner := p.innerWidth()
	labelW := labelWidth(entries, inner)

	rows := make([]string, 0, len(entries)+1)
	if p.Title != "" {
		rows = append(rows, p.Styles.Title.Render(fit(p.Title, inner)))
	}
	for _, e := range entries {
		if e.Button {
			rows = append(rows, p.button(e, inner))
			continue
		}
		rows = append(rows, p.readout(e, labelW, inner))
	}
	if len(entries) == 0 {
		rows = append(rows, p.Styles.Value.Render(fit(emptyText, inner)))
	}
	return p.Styles.Frame.Render(strings.Join(rows, "\n"))
}

func (p *Panel) readout(e tracker.Entry, labelW, inner int) string {
	valueW := inner - labelW - 1
	value := fit(oneLine(e.Text), valueW)
	style := p.Styles.Value
	if e.Failed {
		style = p.Styles.Failed
	}
	return p.Styles.Label.Render(fit(e.Label, labelW)) + " " + style.Render(value)
}

func (p *Panel) button(e tracker.Entry, inner int) string {
	style := p.Styles.Button
	if e.Label == p.Focus {
		style = p.Styles.Focused
	}
	return style.Render(fit("[ "+e.Label+" ]", inner))
}

// labelWidth is the widest readout label, capped at half of the row.
func labelWidth(entries []tracker.Entry, inner int) int {
	w := minLabelWidth
	for _, e := range entries {
		if e.Button {
			continue
		}
		if lw := runewidth.StringWidth(e.Label); lw > w {
			w = lw
		}
	}
	if limit := inner / 2; w > limit {
		w = limit
	}
	return w
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

// fit truncates s to width cells and pads it with spaces to exactly width.
func fit(s string, width int) string {
	return runewidth.FillRight(truncate(s, width), width)
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// Buttons returns the button labels in display order.
func Buttons(entries []tracker.Entry) []string {
	var out []string
	for _, e := range entries {
		if e.Button {
			out = append(out, e.Label)
		}
	}
	return out
}

// NextFocus moves focus delta buttons away from current, wrapping around. An
// unknown current starts from the first button; no buttons yields "".
func NextFocus(entries []tracker.Entry, current string, delta int) string {
	labels := Buttons(entries)
	if len(labels) == 0 {
		return ""
	}
	i := -1
	for j, l := range labels {
		if l == current {
			i = j
			break
		}
	}
	if i < 0 {
		return labels[0]
	}
	n := len(labels)
	return labels[((i+delta)%n+n)%n]
}
