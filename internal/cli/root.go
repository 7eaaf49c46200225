// Package cli provides the cobra command structure for linemark.
package cli

import (
	"errors"

	"github.com/spf13/cobra"
)

// ErrNoMatch is returned by match when the cursor has no bracket pair.
// main turns it into ExitNoMatch without printing it.
var ErrNoMatch = errors.New("no matching bracket")

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoMatch = 2
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are the persistent flags shared by every subcommand.
// Flags that were not given leave the config layers below untouched.
type globalFlags struct {
	configPath string
	logLevel   string
	theme      string
	language   string
	adjacency  string
	color      string

	// noCurLine is bound by view's --no-current-line.
	noCurLine bool
}

// NewRootCommand creates the root linemark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "linemark",
		Short: "Rule-based line annotation and bracket matching for source files",
		Long: `linemark annotates source text line by line with an ordered table of
regular-expression rules, tracks /* */ comments across lines, and finds the
bracket matching the one next to a cursor.

Configuration is read from .linemark.toml or .linemark.yaml in the current
directory (or --config), then LINEMARK_* environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "path to config file (.toml, .yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&flags.theme, "theme", "", "color theme: default, dark")
	pf.StringVar(&flags.language, "language", "", "rule table to use instead of detecting one")
	pf.StringVar(&flags.adjacency, "adjacency", "", `bracket adjacency: "after" or "either"`)
	pf.StringVar(&flags.color, "color", "auto", "colorize output: auto, always, never")

	rootCmd.AddCommand(newAnnotateCommand(flags))
	rootCmd.AddCommand(newMatchCommand(flags))
	rootCmd.AddCommand(newWatchCommand(flags))
	rootCmd.AddCommand(newViewCommand(flags))
	rootCmd.AddCommand(newLanguagesCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
