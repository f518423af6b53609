package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"chanlog/internal/diag"
	"chanlog/internal/sink"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [text...]",
		Short: "Run texts through the channel gate and the formatter",
		Long: `Each argument (or each stdin line when no arguments are given) is logged as one message.
Messages on disabled channels, or matching the bracket rules when no channel is given, are hidden.`,
		RunE: runCheck,
	}
	cmd.Flags().StringP("channel", "c", "", "first channel of the messages")
	cmd.Flags().String("channel2", "", "second channel of the messages")
	cmd.Flags().String("severity", "log", "message severity (log|warning|error)")
	cmd.Flags().StringSlice("enable", nil, "channels to force on")
	cmd.Flags().StringSlice("disable", nil, "channels to force off")
	cmd.Flags().Bool("hidden", false, "also print hidden messages")
	cmd.Flags().Bool("strict", false, "exit with an error when any message is hidden")
	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	ch1, err := cmd.Flags().GetString("channel")
	if err != nil {
		return fmt.Errorf("failed to get channel flag: %w", err)
	}
	ch2, err := cmd.Flags().GetString("channel2")
	if err != nil {
		return fmt.Errorf("failed to get channel2 flag: %w", err)
	}
	sevStr, err := cmd.Flags().GetString("severity")
	if err != nil {
		return fmt.Errorf("failed to get severity flag: %w", err)
	}
	enable, err := cmd.Flags().GetStringSlice("enable")
	if err != nil {
		return fmt.Errorf("failed to get enable flag: %w", err)
	}
	disable, err := cmd.Flags().GetStringSlice("disable")
	if err != nil {
		return fmt.Errorf("failed to get disable flag: %w", err)
	}
	showHidden, err := cmd.Flags().GetBool("hidden")
	if err != nil {
		return fmt.Errorf("failed to get hidden flag: %w", err)
	}
	strict, err := cmd.Flags().GetBool("strict")
	if err != nil {
		return fmt.Errorf("failed to get strict flag: %w", err)
	}

	log, err := severityLogger(s, sevStr)
	if err != nil {
		return err
	}
	for _, name := range enable {
		s.eng.EnableChannel(name)
	}
	for _, name := range disable {
		s.eng.DisableChannel(name)
	}

	texts := args
	if len(texts) == 0 {
		if texts, err = readLines(cmd); err != nil {
			return err
		}
	}

	counts := sink.NewCollector(len(texts))
	extra := []sink.Sink{counts}
	if showHidden {
		hidden := sink.NewStreamSink(cmd.OutOrStdout(), sink.WithForm(sink.FormPlain), sink.WithSuppressed(), sink.WithSeverityTag())
		extra = append(extra, sink.Func{OnSuppressed: hidden.EmitSuppressed})
	}
	s.eng.SetSink(output(cmd, extra...))

	for _, text := range texts {
		log(ch1, ch2, text)
	}

	shown, hidden := len(counts.Emitted()), len(counts.Suppressed())
	printNote(cmd.ErrOrStderr(), noteInfo, fmt.Sprintf("%d shown, %d hidden", shown, hidden))
	if strict && hidden > 0 {
		return fmt.Errorf("%d message(s) hidden", hidden)
	}
	return nil
}

func severityLogger(s *session, value string) (func(ch1, ch2 string, args ...any), error) {
	sev, err := diag.ParseSeverity(value)
	if err != nil {
		return nil, err
	}
	switch sev {
	case diag.SevLog:
		return s.eng.LogOn2, nil
	case diag.SevWarning:
		return s.eng.WarningOn2, nil
	case diag.SevError:
		return s.eng.ErrorOn2, nil
	default:
		return nil, fmt.Errorf("unsupported severity %q (expected log|warning|error)", value)
	}
}

func readLines(cmd *cobra.Command) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(cmd.InOrStdin())
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return lines, nil
}
