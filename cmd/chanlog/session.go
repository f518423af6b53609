package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"chanlog/internal/config"
	"chanlog/internal/engine"
	"chanlog/internal/sink"
)

const configFileName = config.FileName

// switchMode is the value of an auto|on|off flag. Auto follows whether the
// output is a terminal.
type switchMode string

const (
	modeAuto switchMode = "auto"
	modeOn   switchMode = "on"
	modeOff  switchMode = "off"
)

func readSwitch(flag, value string) (switchMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return modeAuto, nil
	case "on":
		return modeOn, nil
	case "off":
		return modeOff, nil
	default:
		return "", fmt.Errorf("invalid --%s value %q (expected auto|on|off)", flag, value)
	}
}

func (m switchMode) enabled(w io.Writer) bool {
	switch m {
	case modeOn:
		return true
	case modeOff:
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

// session is the per-invocation state shared by subcommands.
type session struct {
	eng        *engine.Engine
	settings   config.Settings
	configPath string
	color      bool
}

type sessionKey struct{}

func sessionFrom(cmd *cobra.Command) (*session, error) {
	if s, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
		return s, nil
	}
	return nil, errors.New("session is not initialized")
}

// setupSession reads the global flags and the settings file and attaches an
// engine writing to the command's stdout.
func setupSession(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	configPath, err := flags.GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	colorStr, err := flags.GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	style, err := flags.GetString("style")
	if err != nil {
		return fmt.Errorf("failed to get style flag: %w", err)
	}
	mode, err := readSwitch("color", colorStr)
	if err != nil {
		return err
	}

	var settings config.Settings
	if configPath != "" {
		settings, err = config.Load(configPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		settings, configPath, err = config.Discover(wd)
		if errors.Is(err, config.ErrNotFound) {
			err = nil
		}
	}
	if err != nil {
		return err
	}
	// the flag wins over the file only when given explicitly
	if !settings.IsDefined("style") || flags.Changed("style") {
		settings.Style = style
	}

	useColor := mode.enabled(cmd.OutOrStdout())
	color.NoColor = !useColor
	settings.Colorize = settings.Colorize && useColor

	form := sink.FormPlain
	if settings.Colorize {
		form = sink.FormDecorated
	}
	stream := sink.NewStreamSink(cmd.OutOrStdout(), sink.WithForm(form), sink.WithSeverityTag())
	cfg := engine.DefaultConfig()
	cfg.Sink = stream
	e := engine.New(cfg)
	if err := settings.Apply(e); err != nil {
		return fmt.Errorf("failed to apply settings: %w", err)
	}

	s := &session{eng: e, settings: settings, configPath: configPath, color: useColor}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = sink.WithSink(ctx, stream)
	cmd.SetContext(context.WithValue(ctx, sessionKey{}, s))
	return nil
}

// output is the session stream of cmd plus extra destinations for one command.
func output(cmd *cobra.Command, extra ...sink.Sink) sink.Sink {
	base := sink.FromContext(cmd.Context())
	return sink.NewMultiSink(append([]sink.Sink{base}, extra...)...)
}

// restoreOutput points the engine back at the session stream.
func (s *session) restoreOutput(cmd *cobra.Command) {
	s.eng.SetSink(sink.FromContext(cmd.Context()))
}

type noteKind int

const (
	noteInfo noteKind = iota
	noteWarning
	noteError
)

var noteColors = map[noteKind]*color.Color{
	noteInfo:    color.New(color.FgCyan, color.Bold),
	noteWarning: color.New(color.FgYellow, color.Bold),
	noteError:   color.New(color.FgRed, color.Bold),
}

var noteWords = map[noteKind]string{
	noteInfo:    "note",
	noteWarning: "warning",
	noteError:   "error",
}

// printNote writes an operational message of the CLI itself.
func printNote(w io.Writer, kind noteKind, msg string) {
	fmt.Fprintf(w, "%s: %s\n", noteColors[kind].Sprint(noteWords[kind]), msg)
}
