package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"chanlog/internal/format"
	"chanlog/internal/overlay"
	"chanlog/internal/sink"
	"chanlog/internal/tracker"
	"chanlog/internal/ui"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags]",
		Short: "Drive frame trackers on a simulated object",
		Args:  cobra.NoArgs,
		RunE:  runWatch,
	}
	cmd.Flags().String("ui", "auto", "interactive UI (auto|on|off)")
	cmd.Flags().Int("frames", 0, "stop after this many frames (0: until quit, 120 without UI)")
	cmd.Flags().Int("fps", 60, "frame rate")
	cmd.Flags().Bool("pause", false, "pause when the boost state changes")
	return cmd
}

// ship is the simulated object behind the demo trackers.
type ship struct {
	Position [2]int
	Velocity [2]int
	Fuel     float64
	Boosting bool
}

func newShip() *ship { return &ship{Velocity: [2]int{1, 0}, Fuel: 100} }

// step advances one frame; boosting burns fuel and doubles the speed.
func (s *ship) step(frame int) {
	speed := 1
	if s.Boosting && s.Fuel > 0 {
		speed = 2
		s.Fuel = max(0, s.Fuel-0.5)
		if s.Fuel == 0 {
			s.Boosting = false
		}
	}
	s.Position[0] = (s.Position[0] + s.Velocity[0]*speed) % 1000
	if frame%30 == 0 {
		s.Velocity[1] = -s.Velocity[1] + 1
	}
	s.Position[1] += s.Velocity[1]
}

func (s *ship) Fields() []format.NamedValue {
	return []format.NamedValue{
		{Name: "Position", Value: s.Position},
		{Name: "Velocity", Value: s.Velocity},
		{Name: "Fuel", Value: s.Fuel},
		{Name: "Boosting", Value: s.Boosting},
	}
}

func (s *ship) StateName() string { return "Ship" }

func runWatch(cmd *cobra.Command, args []string) error {
	sess, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	frames, err := cmd.Flags().GetInt("frames")
	if err != nil {
		return fmt.Errorf("failed to get frames flag: %w", err)
	}
	fps, err := cmd.Flags().GetInt("fps")
	if err != nil {
		return fmt.Errorf("failed to get fps flag: %w", err)
	}
	pause, err := cmd.Flags().GetBool("pause")
	if err != nil {
		return fmt.Errorf("failed to get pause flag: %w", err)
	}
	mode, err := readSwitch("ui", uiStr)
	if err != nil {
		return err
	}
	if fps <= 0 {
		return fmt.Errorf("invalid --fps value %d (must be positive)", fps)
	}
	interval := time.Second / time.Duration(fps)

	e := sess.eng
	s := newShip()
	e.DisplayOnScreen(tracker.Member(s, "Position", func() any { return s.Position }))
	e.DisplayOnScreen(tracker.Member(s, "Fuel", func() any { return s.Fuel }))
	e.ShowFPS()
	e.LogChanges(tracker.Member(s, "Boosting", func() any { return s.Boosting }), pause)
	e.DisplayButton("Boost", func() { s.Boosting = !s.Boosting })
	e.DisplayButton("Refuel", func() { s.Fuel = 100 })

	e.StartStopwatch("watch")
	defer func() {
		e.FinishStopwatch()
		e.LogState(s)
	}()

	if !mode.enabled(cmd.OutOrStdout()) {
		if frames <= 0 {
			frames = 120
		}
		for i := 1; i <= frames; i++ {
			// boost for the middle third so the change log has something to show
			if i == frames/3 || i == 2*frames/3 {
				e.Trackers().Click("Boost")
			}
			s.step(i)
			e.Tick(interval)
		}
		fmt.Fprintln(cmd.OutOrStdout(), overlay.New("On screen").Render(e.Trackers().Entries()))
		return nil
	}

	// the terminal belongs to the UI; messages go to the console pane meanwhile
	ring := sink.NewRingSink(64)
	e.SetSink(ring)
	defer sess.restoreOutput(cmd)

	m := ui.NewWatchModel(e, ui.WatchOptions{
		Title:     "chanlog watch",
		Interval:  interval,
		MaxFrames: frames,
		Console:   ring,
		OnFrame:   s.step,
	})
	return ui.RunWatch(m)
}
