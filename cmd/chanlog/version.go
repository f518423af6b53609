package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"chanlog/internal/version"
)

type versionInfo struct {
	Version   string
	GitCommit string
	BuildDate string
}

type versionOptions struct {
	format   string
	showHash bool
	showDate bool
}

type versionPayload struct {
	Tool      string `json:"tool"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var (
		format   string
		showHash bool
		showDate bool
		showFull bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show chanlog build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := versionOptions{
				format:   strings.ToLower(format),
				showHash: showHash || showFull,
				showDate: showDate || showFull,
			}
			switch opts.format {
			case "pretty", "json":
				// supported
			default:
				return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
			}

			info := collectVersionInfo()
			if opts.format == "json" {
				return renderVersionJSON(cmd.OutOrStdout(), info, opts)
			}
			colored := false
			if s, err := sessionFrom(cmd); err == nil {
				colored = s.color
			}
			renderVersionPretty(cmd.OutOrStdout(), info, opts, colored)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showHash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&showDate, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&showFull, "full", false, "show every recorded bit of build metadata")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func collectVersionInfo() versionInfo {
	v := strings.TrimSpace(version.Version)
	if v == "" {
		v = "dev"
	}
	return versionInfo{
		Version:   v,
		GitCommit: strings.TrimSpace(version.GitCommit),
		BuildDate: strings.TrimSpace(version.BuildDate),
	}
}

func renderVersionPretty(out io.Writer, info versionInfo, opts versionOptions, colored bool) {
	v := info.Version
	if colored {
		v = version.Colored()
	}
	fmt.Fprintf(out, "chanlog %s\n", v)
	if opts.showHash {
		fmt.Fprintf(out, "commit: %s\n", valueOrUnknown(info.GitCommit))
	}
	if opts.showDate {
		fmt.Fprintf(out, "built:  %s\n", valueOrUnknown(info.BuildDate))
	}
}

func renderVersionJSON(out io.Writer, info versionInfo, opts versionOptions) error {
	payload := versionPayload{
		Tool:    "chanlog",
		Version: info.Version,
	}
	if opts.showHash {
		payload.GitCommit = valueOrUnknown(info.GitCommit)
	}
	if opts.showDate {
		payload.BuildDate = valueOrUnknown(info.BuildDate)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}

func valueOrUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
