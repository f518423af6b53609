package engine

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"chanlog/internal/diag"
	"chanlog/internal/format"
	"chanlog/internal/sink"
	"chanlog/internal/tracker"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestEngine(t *testing.T) (*Engine, *sink.Collector) {
	t.Helper()
	col := sink.NewCollector(10000)
	e := New(Config{
		Sink:         col,
		Files:        sink.NewFileSink(t.TempDir()),
		UseLargeFont: true,
	})
	return e, col
}

func plains(ms []diag.Message) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Plain
	}
	return out
}

func TestLogForms(t *testing.T) {
	tests := []struct {
		name string
		log  func(e *Engine)
		want string
	}{
		{"string", func(e *Engine) { e.Log("hello") }, "hello"},
		{"nil", func(e *Engine) { e.Log(nil) }, "null"},
		{"no args", func(e *Engine) { e.Log() }, "null"},
		{"number", func(e *Engine) { e.Log(2.5) }, "2.5"},
		{"several values", func(e *Engine) { e.Log("hp: ", 1, true, "ok") }, "hp: 1, True, ok"},
		{"values without text", func(e *Engine) { e.Log(1, "a") }, "1, a"},
		{"channel", func(e *Engine) { e.LogOn("Audio", "x") }, "[Audio] x"},
		{"two channels", func(e *Engine) { e.LogOn2("Audio", "UI", "x") }, "[Audio][UI] x"},
		{"empty channel name", func(e *Engine) { e.LogOn("", "x") }, "x"},
		{"placeholders", func(e *Engine) { e.Logf("{0} + {1}", 1, 2) }, "1 + 2"},
		{"placeholders on channel", func(e *Engine) { e.LogfOn("Net", "{0}ms", 12) }, "[Net] 12ms"},
		{"options are not rendered", func(e *Engine) { e.Log("x", WithContext(1)) }, "x"},
		{"exception", func(e *Engine) { e.Exception(errors.New("disk full")) }, "disk full"},
		{"nil exception", func(e *Engine) { e.Exception(nil) }, "null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, col := newTestEngine(t)
			tt.log(e)
			got := plains(col.Emitted())
			if len(got) != 1 || got[0] != tt.want {
				t.Errorf("emitted %q, want [%q]", got, tt.want)
			}
		})
	}
}

func TestSeverities(t *testing.T) {
	e, col := newTestEngine(t)
	e.Log("l")
	e.Warning("w")
	e.WarningOn("C", "w")
	e.Warningf("{0}", "w")
	e.Error("e")
	e.ErrorOn2("C", "D", "e")
	e.Errorf("e")
	e.Exception(errors.New("x"))

	want := []diag.Severity{
		diag.SevLog, diag.SevWarning, diag.SevWarning, diag.SevWarning,
		diag.SevError, diag.SevError, diag.SevError, diag.SevException,
	}
	got := col.Emitted()
	if len(got) != len(want) {
		t.Fatalf("emitted %d messages, want %d", len(got), len(want))
	}
	for i, m := range got {
		if m.Severity != want[i] {
			t.Errorf("message %d severity = %v, want %v", i, m.Severity, want[i])
		}
	}
}

func TestDecoratedLayout(t *testing.T) {
	e, col := newTestEngine(t)
	e.Log("plain")
	e.SetLayout(format.LayoutLargeFont)
	e.Log("big")
	got := col.Emitted()
	if got[0].Decorated != "plain\n" {
		t.Errorf("clean layout = %q", got[0].Decorated)
	}
	if got[1].Decorated != "big" {
		t.Errorf("large layout with plain styler = %q", got[1].Decorated)
	}

	rich := format.DefaultOptions()
	e.SetFormat(rich)
	e.SetLayout(format.LayoutClean)
	e.Log(true)
	last := col.Emitted()[2]
	if last.Plain != "True" || last.Decorated != "<color=green>True</color>\n" {
		t.Errorf("rich message = %+v", last)
	}
}

func TestChannelSuppression(t *testing.T) {
	e, col := newTestEngine(t)
	var observed []diag.Message
	cancel := e.OnSuppressed(func(m diag.Message) { observed = append(observed, m) })

	e.LogOn("Audio", "first")
	e.DisableChannel("Audio")
	e.LogOn("Audio", "second", WithContext("ctx"))
	e.Log("[Audio] tagged")
	e.Log("[Unknown] shown")
	e.LogOn2("Audio", "UI", "either")

	if got := plains(col.Emitted()); strings.Join(got, "|") != "[Audio] first|[Unknown] shown|[Audio][UI] either" {
		t.Errorf("emitted = %q", got)
	}
	hidden := col.Suppressed()
	if got := plains(hidden); strings.Join(got, "|") != "[Audio] second|[Audio] tagged" {
		t.Errorf("suppressed = %q", got)
	}
	if hidden[0].Context != "ctx" || hidden[0].StackTrace == "" {
		t.Errorf("suppressed message lost context or stack: %+v", hidden[0])
	}
	if strings.Contains(hidden[0].StackTrace, "(*Engine)") {
		t.Errorf("engine frames not hidden:\n%s", hidden[0].StackTrace)
	}
	if !strings.Contains(hidden[0].StackTrace, "TestChannelSuppression") {
		t.Errorf("caller frame missing:\n%s", hidden[0].StackTrace)
	}
	if len(observed) != 2 {
		t.Errorf("observers saw %d messages, want 2", len(observed))
	}
	if text, _ := e.LastMessage(); text != "[Audio][UI] either" {
		t.Errorf("LastMessage = %q", text)
	}

	cancel()
	e.LogOn("Audio", "third")
	if len(observed) != 2 {
		t.Error("cancelled observer still notified")
	}
	e.EnableChannel("Audio")
	if !e.IsChannelEnabled("Audio") {
		t.Error("EnableChannel had no effect")
	}
}

func TestLastMessageContext(t *testing.T) {
	e, _ := newTestEngine(t)
	owner := &struct{ n int }{1}
	e.Warning("careful", WithContext(owner))
	text, ctx := e.LastMessage()
	if text != "careful" || ctx != owner {
		t.Errorf("LastMessage = %q, %v", text, ctx)
	}
}

func TestCriticalView(t *testing.T) {
	e, col := newTestEngine(t)
	crit := e.Critical()
	if !crit.IsCritical() || e.IsCritical() {
		t.Fatal("IsCritical mismatch")
	}
	crit.Log("boom")
	m := col.Emitted()[0]
	if m.Plain != "boom" || m.Decorated != "boom" {
		t.Errorf("critical in normal build = %+v", m)
	}

	cfg := e.Config()
	cfg.UseLargeFont = false
	e.Configure(cfg)
	crit.Log("small")
	if got := col.Emitted()[1].Decorated; got != "small\n" {
		t.Errorf("critical without large font = %q", got)
	}
}

func TestStrippedBuild(t *testing.T) {
	dir := t.TempDir()
	col := sink.NewCollector(100)
	e := New(Config{
		Sink:                          col,
		Files:                         sink.NewFileSink(dir),
		AlwaysIncludeInBuilds:         true,
		IncludeCriticalPrefixInBuilds: true,
	})
	e.c.stripped = true

	e.Log("dropped")
	e.Warning("dropped")
	e.Assert(false)
	if e.Ensure(false) {
		t.Error("Ensure must return its condition in stripped builds")
	}
	if !e.Guard(false) {
		t.Error("Guard must report failure in stripped builds")
	}
	e.Error("kept")
	e.Critical().Log("boom")

	if got := plains(col.Emitted()); strings.Join(got, "|") != "kept|Critical!!\nboom" {
		t.Errorf("emitted = %q", got)
	}
	data, err := os.ReadFile(filepath.Join(dir, CriticalLogFile))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "Critical!!\nboom\n") || !strings.Contains(string(data), "TestStrippedBuild") {
		t.Errorf("critical log file = %q", data)
	}
}

func TestLogState(t *testing.T) {
	e, col := newTestEngine(t)
	e.LogState(point{X: 1, Y: 2})
	e.LogState(&point{X: 3, Y: 4}, WithFields("Y"))
	e.LogState(named{})
	e.LogState(broken{})
	e.LogStateOn("Phys", point{})
	var nilPoint *point
	e.LogState(nilPoint)

	want := []string{
		"point state: X=1, Y=2",
		"point state: Y=4",
		"Player state: HP=10",
		"broken state: <error>",
		"[Phys] point state: X=0, Y=0",
		"null",
	}
	got := plains(col.Emitted())
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got  %q\nwant %q", got, want)
	}
}

type point struct{ X, Y int }

func (p point) Fields() []format.NamedValue {
	return []format.NamedValue{{Name: "X", Value: p.X}, {Name: "Y", Value: p.Y}}
}

type named struct{}

func (named) Fields() []format.NamedValue { return []format.NamedValue{{Name: "HP", Value: 10}} }
func (named) StateName() string           { return "Player" }

type broken struct{}

func (broken) Fields() []format.NamedValue { panic("no fields") }

func TestStopwatchReports(t *testing.T) {
	clk := &testClock{now: time.Unix(0, 0)}
	col := sink.NewCollector(100)
	e := New(Config{Sink: col, Clock: clk.Now})

	e.StartStopwatch("load")
	e.StartSubStopwatch("parse")
	clk.now = clk.now.Add(250 * time.Millisecond)
	e.FinishSubStopwatch()
	e.FinishStopwatch()
	e.FinishStopwatch()

	got := col.Emitted()
	if len(got) != 2 {
		t.Fatalf("emitted %q", plains(got))
	}
	if got[0].Plain != "load . . . 0.25 s\n   parse . . . 0.25 s" || got[0].Severity != diag.SevLog {
		t.Errorf("report = %+v", got[0])
	}
	if got[1].Severity != diag.SevWarning || !strings.Contains(got[1].Plain, "no stopwatches were running") {
		t.Errorf("warning = %+v", got[1])
	}

	e.SetFormat(format.DefaultOptions())
	e.StartStopwatch("x")
	e.FinishStopwatch()
	if d := col.Emitted()[2].Decorated; d != "x . . . <color=cyan>0</color> s\n" {
		t.Errorf("decorated report = %q", d)
	}
}

func TestTrackersLogChanges(t *testing.T) {
	e, col := newTestEngine(t)
	hp := 10
	target := tracker.Member(nil, "hp", func() any { return hp })
	e.LogChanges(target, false)
	e.LogChanges(target, false)
	e.DisplayOnScreen(target)
	e.DisplayButton("Heal", func() { hp = 100 })

	e.Tick(16 * time.Millisecond)
	hp = 7
	e.Tick(16 * time.Millisecond)
	if !e.Trackers().Click("Heal") {
		t.Fatal("button not registered")
	}
	e.Tick(16 * time.Millisecond)

	if got := plains(col.Emitted()); strings.Join(got, "|") != "hp = 7|hp = 100" {
		t.Errorf("emitted = %q", got)
	}
	entries := e.Trackers().Entries()
	if len(entries) != 2 || entries[0].Text != "100" {
		t.Errorf("entries = %+v", entries)
	}

	e.CancelLogChanges(target)
	e.CancelDisplayOnScreen(target)
	e.CancelDisplayButton("Heal")
	if w, d := e.Trackers().Len(); w != 0 || d != 0 {
		t.Errorf("trackers left: %d watched, %d displayed", w, d)
	}
}

func TestAppendToFile(t *testing.T) {
	e, _ := newTestEngine(t)
	if err := e.AppendToFile("one", "session", sink.OnSessionStart); err != nil {
		t.Fatal(err)
	}
	if err := e.AppendToFile("two", "session", sink.OnSessionStart); err != nil {
		t.Fatal(err)
	}
	path := e.LogFilePath("session")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "one\ntwo" {
		t.Errorf("log = %q", data)
	}
	if err := e.ClearLogFile("session", false); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file still present: %v", err)
	}
}

func TestReset(t *testing.T) {
	e, col := newTestEngine(t)
	e.DisableChannel("A")
	for i := 0; i < 3; i++ {
		if i == 2 {
			e.Reset()
		}
		e.Ensure(false)
	}
	if text, _ := e.LastMessage(); text != "Ensure failed." {
		t.Errorf("LastMessage after reset = %q", text)
	}
	if n := len(col.Emitted()); n != 2 {
		t.Errorf("Ensure reports = %d, want 2 (one before and one after Reset)", n)
	}
	if !e.IsChannelEnabled("A") {
		t.Error("channel override survived Reset")
	}
}

func TestDefaultIsShared(t *testing.T) {
	if Default() != Default() {
		t.Error("Default should return one engine")
	}
}
