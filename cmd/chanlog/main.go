package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"chanlog/internal/version"
)

// newRootCmd builds the command tree. Every call returns fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chanlog",
		Short:         "Channel-filtered diagnostics toolkit",
		Long:          `chanlog runs messages through the channel gate and formatter, appends to log files and drives frame trackers`,
		Version:       version.Info(false),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupSession(cmd)
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")

	// Глобальные флаги
	root.PersistentFlags().String("config", "", "settings file (default: nearest "+configFileName+")")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().String("style", "ansi", "markup of decorated output (rich|ansi|plain)")

	root.AddCommand(newCheckCmd())
	root.AddCommand(newToFileCmd())
	root.AddCommand(newWatchCmd())
	root.AddCommand(newBenchCmd())
	root.AddCommand(newSettingsCmd())
	root.AddCommand(newVersionCmd())
	return root
}

// main executes the root command and exits with status 1 on error.
func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		printNote(root.ErrOrStderr(), noteError, err.Error())
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
