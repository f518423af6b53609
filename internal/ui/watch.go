package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"chanlog/internal/engine"
	"chanlog/internal/overlay"
	"chanlog/internal/sink"
)

// DefaultInterval is one frame at 60 FPS.
const DefaultInterval = time.Second / 60

// WatchOptions configures NewWatchModel.
type WatchOptions struct {
	Title string
	// Interval between frames; zero uses DefaultInterval.
	Interval time.Duration
	// MaxFrames stops the program after that many frames; zero runs until quit.
	MaxFrames int
	// Console, when set, is shown below the panel (last Tail records).
	Console *sink.RingSink
	Tail    int
	// OnFrame runs before every engine tick, with the frame number.
	OnFrame func(frame int)
}

type frameMsg time.Time

// pauser stops the frame loop when a pause-on-change watcher fires.
type pauser struct {
	paused bool
	by     string
}

func (p *pauser) Pause(name string) {
	p.paused = true
	p.by = name
}

// WatchModel is a Bubble Tea model that ticks an engine once per frame and
// renders its on-screen trackers.
type WatchModel struct {
	opt     WatchOptions
	eng     *engine.Engine
	panel   *overlay.Panel
	spinner spinner.Model
	pause   *pauser
	last    time.Time
	frames  int
	width   int
	done    bool
}

// NewWatchModel returns the model for e. It installs itself as the engine's pauser.
func NewWatchModel(e *engine.Engine, opt WatchOptions) *WatchModel {
	if opt.Interval <= 0 {
		opt.Interval = DefaultInterval
	}
	if opt.Tail <= 0 {
		opt.Tail = 8
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &WatchModel{
		opt:     opt,
		eng:     e,
		panel:   overlay.New("On screen"),
		spinner: sp,
		pause:   &pauser{},
		width:   80,
	}
	e.SetPauser(m.pause)
	return m
}

// Frames returns the number of frames ticked so far.
func (m *WatchModel) Frames() int { return m.frames }

// Paused reports whether the frame loop is stopped and which tracker stopped it.
func (m *WatchModel) Paused() (bool, string) { return m.pause.paused, m.pause.by }

func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.nextFrame())
}

func (m *WatchModel) nextFrame() tea.Cmd {
	return tea.Tick(m.opt.Interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		return m, m.frame(time.Time(msg))
	case tea.KeyMsg:
		return m, m.key(msg)
	case spinner.TickMsg:
		if m.done || m.pause.paused {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.panel.Width = min(msg.Width, overlay.DefaultWidth*2)
		}
		return m, nil
	}
	return m, nil
}

func (m *WatchModel) frame(now time.Time) tea.Cmd {
	if m.done || m.pause.paused {
		return nil
	}
	dt := m.opt.Interval
	if !m.last.IsZero() {
		dt = now.Sub(m.last)
	}
	m.last = now
	m.frames++
	if m.opt.OnFrame != nil {
		m.opt.OnFrame(m.frames)
	}
	m.eng.Tick(dt)
	if m.opt.MaxFrames > 0 && m.frames >= m.opt.MaxFrames {
		m.done = true
		return tea.Quit
	}
	if m.pause.paused {
		return nil
	}
	return m.nextFrame()
}

func (m *WatchModel) key(msg tea.KeyMsg) tea.Cmd {
	entries := m.eng.Trackers().Entries()
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.done = true
		return tea.Quit
	case "tab", "down":
		m.panel.Focus = overlay.NextFocus(entries, m.panel.Focus, 1)
	case "shift+tab", "up":
		m.panel.Focus = overlay.NextFocus(entries, m.panel.Focus, -1)
	case "enter", " ", "space":
		if m.panel.Focus != "" {
			m.eng.Trackers().Click(m.panel.Focus)
		}
	case "p":
		if m.pause.paused {
			m.pause.paused, m.pause.by = false, ""
			m.last = time.Time{}
			return tea.Batch(m.spinner.Tick, m.nextFrame())
		}
		m.pause.paused, m.pause.by = true, "user"
	}
	return nil
}

func (m *WatchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := fmt.Sprintf("%s (frame %d)", m.opt.Title, m.frames)
	switch {
	case m.done:
		header = "done: " + header
	case m.pause.paused:
		header = fmt.Sprintf("paused by %s: %s", m.pause.by, header)
	default:
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")
	b.WriteString(m.panel.Render(m.eng.Trackers().Entries()))
	b.WriteString("\n")

	if m.opt.Console != nil {
		records := m.opt.Console.Snapshot()
		if len(records) > m.opt.Tail {
			records = records[len(records)-m.opt.Tail:]
		}
		hidden := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		for _, r := range records {
			line := truncate(firstLine(r.Plain), m.width-2)
			if r.Suppressed {
				line = hidden.Render(line)
			}
			b.WriteString("  " + line + "\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(hintStyle.Render("tab: focus  enter: click  p: pause  q: quit"))
	b.WriteString("\n")
	return b.String()
}

var hintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

// RunWatch runs the model on the terminal until it quits.
func RunWatch(m *WatchModel, opts ...tea.ProgramOption) error {
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("watch UI failed: %w", err)
	}
	return nil
}
