// Package version carries the build metadata of the ctfmt tools.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// Overridden at build time via -ldflags "-X ctfmt/internal/version.Version=...".
var (
	// Version is the semantic version of the tools.
	Version = "0.1.0-dev"
	// GitCommit is an optional git commit hash.
	GitCommit = ""
	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var partColors = []*color.Color{
	color.New(color.FgYellow, color.Bold),
	color.New(color.FgGreen, color.Bold),
	color.New(color.FgBlue, color.Bold),
}

// Colored paints major, minor and patch like the rest of the CLI output.
// Color is disabled by fatih/color when the output is not a terminal.
func Colored() string {
	core, suffix, _ := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	for i, p := range parts {
		parts[i] = partColors[i%len(partColors)].Sprint(p)
	}
	out := strings.Join(parts, ".")
	if suffix != "" {
		out += "-" + suffix
	}
	return out
}

// String is the one-line version string: version, commit and date when set.
func String() string {
	var sb strings.Builder
	sb.WriteString("ctfmt ")
	sb.WriteString(Colored())
	if GitCommit != "" {
		sb.WriteString(" (")
		sb.WriteString(GitCommit)
		sb.WriteString(")")
	}
	if BuildDate != "" {
		sb.WriteString(" built ")
		sb.WriteString(BuildDate)
	}
	return sb.String()
}
