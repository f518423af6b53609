package prof

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	opt := Options{
		CPU:   filepath.Join(dir, "cpu.out"),
		Mem:   filepath.Join(dir, "mem.out"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	if !opt.Enabled() {
		t.Fatal("Enabled() = false")
	}
	s, err := Start(opt)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Errorf("second Stop: %v", err)
	}
	for _, p := range []string{opt.CPU, opt.Mem, opt.Trace} {
		info, err := os.Stat(p)
		if err != nil {
			t.Errorf("%s: %v", p, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", p)
		}
	}
}

func TestStartFailsCleanly(t *testing.T) {
	bad := filepath.Join(t.TempDir(), "missing", "cpu.out")
	if _, err := Start(Options{CPU: bad}); err == nil {
		t.Fatal("expected error for an uncreatable path")
	}
	// nothing is left running, so a new CPU profile can start
	s, err := Start(Options{CPU: filepath.Join(t.TempDir(), "cpu.out")})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Stop(); err != nil {
		t.Fatal(err)
	}
	if (Options{}).Enabled() {
		t.Error("empty options should be disabled")
	}
}
