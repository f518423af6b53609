package diag

import (
	"strings"
	"testing"
)

func TestSeverityRoundTrip(t *testing.T) {
	for _, s := range []Severity{SevLog, SevWarning, SevError, SevAssert, SevException} {
		got, err := ParseSeverity(strings.ToLower(s.String()))
		if err != nil {
			t.Fatalf("ParseSeverity(%q): %v", s.String(), err)
		}
		if got != s {
			t.Errorf("round trip %v -> %v", s, got)
		}
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Error("expected error for unknown severity")
	}
	if Severity(99).String() != "UNKNOWN" {
		t.Error("out of range severity should print UNKNOWN")
	}
}

func TestDedupCache(t *testing.T) {
	c := NewDedupCache()
	if !c.First("a") {
		t.Fatal("first sighting should report true")
	}
	if c.First("a") {
		t.Error("second sighting should report false")
	}
	if !c.First("b") {
		t.Error("distinct key should report true")
	}
	if c.Len() != 2 || !c.Seen("a") {
		t.Errorf("Len=%d Seen(a)=%v", c.Len(), c.Seen("a"))
	}
	c.Reset()
	if c.Seen("a") || !c.First("a") {
		t.Error("Reset should forget sites")
	}

	var nilCache *DedupCache
	if !nilCache.First("x") || nilCache.Len() != 0 {
		t.Error("nil cache should never deduplicate")
	}
}

func captureHere() string { return CaptureStack(0) }

func TestCaptureStackStablePerSite(t *testing.T) {
	var stacks []string
	for i := 0; i < 3; i++ {
		stacks = append(stacks, captureHere())
	}
	if stacks[0] == "" {
		t.Fatal("empty stack")
	}
	if stacks[0] != stacks[1] || stacks[1] != stacks[2] {
		t.Error("same call site should produce identical stack text")
	}
	other := captureHere()
	if other == stacks[0] {
		t.Error("different call site should produce different stack text")
	}
	if !strings.HasPrefix(stacks[0], "chanlog/internal/diag.captureHere\n\t") {
		t.Errorf("first frame should be the caller, got %q", strings.SplitN(stacks[0], "\n", 2)[0])
	}
}

func TestCleanStack(t *testing.T) {
	stack := "chanlog/internal/engine.(*Engine).Ensure\n\t/src/engine/check.go:10\n" +
		"main.run\n\t/src/main.go:5\n" +
		"runtime.goexit\n\t/go/src/runtime/asm_amd64.s:1700\n"
	got := CleanStack(stack, []string{"internal/engine.", "runtime.goexit"})
	want := "main.run\n\t/src/main.go:5\n"
	if got != want {
		t.Errorf("CleanStack = %q, want %q", got, want)
	}
	if CleanStack(stack, nil) != stack {
		t.Error("no hidden rows should leave the stack unchanged")
	}
}

func TestBag(t *testing.T) {
	b := NewBag(3)
	b.Add(Message{Severity: SevLog, Plain: "a"})
	b.Add(Message{Severity: SevError, Plain: "b"})
	b.Add(Message{Severity: SevLog, Plain: "a"})
	if b.Add(Message{Severity: SevWarning, Plain: "d"}) {
		t.Error("Add past cap should fail")
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Error("expected errors and warnings")
	}
	if b.Count(SevLog) != 2 {
		t.Errorf("Count(SevLog) = %d", b.Count(SevLog))
	}
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Dedup left %d items", b.Len())
	}
	b.Sort()
	if b.Items()[0].Severity != SevError {
		t.Errorf("Sort should put errors first, got %v", b.Items()[0].Severity)
	}
	other := NewBag(5)
	other.Add(Message{Plain: "x"})
	other.Add(Message{Plain: "y"})
	b.Merge(other)
	if b.Len() != 4 || b.Cap() < 4 {
		t.Errorf("Merge: Len=%d Cap=%d", b.Len(), b.Cap())
	}
}
