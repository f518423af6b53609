package main

import (
	"github.com/spf13/cobra"
)

func newSettingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settings",
		Short: "Print the effective settings as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := sessionFrom(cmd)
			if err != nil {
				return err
			}
			if s.configPath != "" {
				printNote(cmd.ErrOrStderr(), noteInfo, "loaded "+s.configPath)
			} else {
				printNote(cmd.ErrOrStderr(), noteInfo, "no "+configFileName+" found, showing defaults")
			}
			return s.settings.Encode(cmd.OutOrStdout())
		},
	}
}
