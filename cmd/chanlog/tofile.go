package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chanlog/internal/diag"
	"chanlog/internal/sink"
)

func newToFileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tofile [flags] [path]",
		Short: "Append stdin to a log file",
		Long: `Append stdin to a log file. A bare name is placed in the log directory and gets a .log
extension; an empty path writes ` + sink.DefaultFileName + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runToFile,
	}
	cmd.Flags().String("policy", "session", "when to clear the file (session|now|never)")
	cmd.Flags().Bool("clear", false, "remove the file instead of writing")
	cmd.Flags().Bool("backup", true, "keep a -prev copy when clearing")
	cmd.Flags().Bool("print-path", false, "print the resolved file path")
	cmd.Flags().Bool("echo", false, "also print the appended text")
	return cmd
}

func runToFile(cmd *cobra.Command, args []string) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	policyStr, err := cmd.Flags().GetString("policy")
	if err != nil {
		return fmt.Errorf("failed to get policy flag: %w", err)
	}
	remove, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return fmt.Errorf("failed to get clear flag: %w", err)
	}
	backup, err := cmd.Flags().GetBool("backup")
	if err != nil {
		return fmt.Errorf("failed to get backup flag: %w", err)
	}
	printPath, err := cmd.Flags().GetBool("print-path")
	if err != nil {
		return fmt.Errorf("failed to get print-path flag: %w", err)
	}
	echo, err := cmd.Flags().GetBool("echo")
	if err != nil {
		return fmt.Errorf("failed to get echo flag: %w", err)
	}
	if printPath {
		fmt.Fprintln(cmd.OutOrStdout(), s.eng.LogFilePath(path))
	}

	if remove {
		return s.eng.ClearLogFile(path, backup)
	}
	policy, err := sink.ParseClearPolicy(policyStr)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	text := strings.TrimRight(string(data), "\r\n")
	if err := s.eng.AppendToFile(text, path, policy); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.eng.LogFilePath(path), err)
	}
	if echo {
		sink.FromContext(cmd.Context()).Emit(diag.Message{Severity: diag.SevLog, Plain: text, Decorated: text})
	}
	return nil
}
