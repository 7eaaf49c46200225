// Package main is the entry point for the linemark CLI.
package main

import (
	"errors"
	"os"

	"github.com/dshills/linemark/internal/cli"
	"github.com/dshills/linemark/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	rootCmd := cli.NewRootCommand(cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, cli.ErrNoMatch) {
			return cli.ExitNoMatch
		}
		logging.Default().Error("command failed", logging.FieldError, err)
		return cli.ExitError
	}
	return cli.ExitSuccess
}
