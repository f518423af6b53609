package main

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"chanlog/internal/diag"
	"chanlog/internal/prof"
	"chanlog/internal/sink"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bench [flags]",
		Short: "Emit messages from concurrent workers and report throughput",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	cmd.Flags().Int("workers", 8, "concurrent callers")
	cmd.Flags().Int("messages", 1000, "messages per worker")
	cmd.Flags().Int("channels", 4, "channels to spread messages over; every second one is disabled")
	cmd.Flags().String("cpuprofile", "", "write a CPU profile to this file")
	cmd.Flags().String("memprofile", "", "write a heap profile to this file")
	cmd.Flags().String("trace", "", "write a runtime trace to this file")
	return cmd
}

type benchCounts struct {
	shown  atomic.Int64
	hidden atomic.Int64
}

func runBench(cmd *cobra.Command, args []string) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	workers, err := cmd.Flags().GetInt("workers")
	if err != nil {
		return fmt.Errorf("failed to get workers flag: %w", err)
	}
	messages, err := cmd.Flags().GetInt("messages")
	if err != nil {
		return fmt.Errorf("failed to get messages flag: %w", err)
	}
	channels, err := cmd.Flags().GetInt("channels")
	if err != nil {
		return fmt.Errorf("failed to get channels flag: %w", err)
	}
	if workers <= 0 || messages <= 0 || channels <= 0 {
		return fmt.Errorf("workers, messages and channels must be positive")
	}
	var profOpts prof.Options
	if profOpts.CPU, err = cmd.Flags().GetString("cpuprofile"); err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	if profOpts.Mem, err = cmd.Flags().GetString("memprofile"); err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	if profOpts.Trace, err = cmd.Flags().GetString("trace"); err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	profiles, err := prof.Start(profOpts)
	if err != nil {
		return err
	}
	defer func() {
		if err := profiles.Stop(); err != nil {
			printNote(cmd.ErrOrStderr(), noteWarning, err.Error())
		}
	}()

	e := s.eng
	names := make([]string, channels)
	for i := range names {
		names[i] = "Bench" + strconv.Itoa(i+1)
		e.Channels().SetEnabled(names[i], i%2 == 0)
	}

	var counts benchCounts
	e.SetSink(sink.Func{
		OnEmit:       func(diag.Message) { counts.shown.Add(1) },
		OnSuppressed: func(diag.Message) { counts.hidden.Add(1) },
	})

	e.StartStopwatch("bench")
	e.StartSubStopwatch("emit")
	start := time.Now()
	g, ctx := errgroup.WithContext(cmd.Context())
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := 0; i < messages; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				e.LogfOn(names[(w+i)%channels], "worker {0} message {1}", w, i)
			}
			return nil
		})
	}
	err = g.Wait()
	elapsed := time.Since(start)
	e.FinishSubStopwatch()

	e.StartSubStopwatch("checks")
	g, _ = errgroup.WithContext(cmd.Context())
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < messages; i++ {
				e.Ensure(i >= 0, "unreachable")
			}
			return nil
		})
	}
	_ = g.Wait()
	e.FinishSubStopwatch()

	s.restoreOutput(cmd)
	e.FinishStopwatch()
	if err != nil {
		return fmt.Errorf("bench interrupted: %w", err)
	}

	total := counts.shown.Load() + counts.hidden.Load()
	rate := float64(total) / max(elapsed.Seconds(), 1e-9)
	printNote(cmd.ErrOrStderr(), noteInfo, fmt.Sprintf("%d messages (%d shown, %d hidden) in %s, %.0f msg/s",
		total, counts.shown.Load(), counts.hidden.Load(), elapsed.Round(time.Microsecond), rate))
	return nil
}
