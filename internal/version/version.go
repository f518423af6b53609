package version

import (
	"strings"

	"github.com/fatih/color"
)

// Version information for the chanlog CLI.
// These variables can be overridden at build time via -ldflags.

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored returns Version with major, minor and patch painted. Colouring
// follows color.NoColor.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// Info is the one-line description printed by "chanlog version".
func Info(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var b strings.Builder
	b.WriteString("chanlog ")
	b.WriteString(v)
	if GitCommit != "" {
		b.WriteString(" (")
		b.WriteString(GitCommit)
		b.WriteString(")")
	}
	if BuildDate != "" {
		b.WriteString(" built ")
		b.WriteString(BuildDate)
	}
	return b.String()
}
