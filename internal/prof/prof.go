package prof

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Options names the output files; empty paths disable that profile.
type Options struct {
	CPU   string
	Mem   string
	Trace string
}

// Enabled reports whether any profile is requested.
func (o Options) Enabled() bool { return o.CPU != "" || o.Mem != "" || o.Trace != "" }

// Session is a running set of profiles started by Start.
type Session struct {
	opt       Options
	cpuFile   *os.File
	traceFile *os.File
}

// Start begins CPU profiling and runtime tracing as requested by opt. The heap
// profile is written by Stop. On error nothing is left running.
func Start(opt Options) (*Session, error) {
	s := &Session{opt: opt}
	if opt.CPU != "" {
		f, err := os.Create(opt.CPU)
		if err != nil {
			return nil, fmt.Errorf("failed to create CPU profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to start CPU profile: %w", err)
		}
		s.cpuFile = f
	}
	if opt.Trace != "" {
		f, err := os.Create(opt.Trace)
		if err != nil {
			s.stopCPU()
			return nil, fmt.Errorf("failed to create trace file: %w", err)
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			s.stopCPU()
			return nil, fmt.Errorf("failed to start trace: %w", err)
		}
		s.traceFile = f
	}
	return s, nil
}

func (s *Session) stopCPU() error {
	if s.cpuFile == nil {
		return nil
	}
	pprof.StopCPUProfile()
	err := s.cpuFile.Close()
	s.cpuFile = nil
	return err
}

func (s *Session) stopTrace() error {
	if s.traceFile == nil {
		return nil
	}
	trace.Stop()
	err := s.traceFile.Close()
	s.traceFile = nil
	return err
}

// Stop ends the running profiles and writes the heap profile. It is safe to
// call more than once.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}
	errs := []error{s.stopCPU(), s.stopTrace()}
	if s.opt.Mem != "" {
		errs = append(errs, writeMem(s.opt.Mem))
		s.opt.Mem = ""
	}
	return errors.Join(errs...)
}

func writeMem(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create heap profile: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		return fmt.Errorf("failed to write heap profile: %w", err)
	}
	return nil
}
