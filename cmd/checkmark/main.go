// Package main is the entry point for the checkmark CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/checkmark/internal/cli"
	"github.com/yaklabco/checkmark/internal/logging"

	// Import rules package to register built-in rules via init().
	_ "github.com/yaklabco/checkmark/pkg/lint/rules"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	// ErrIssuesFound only selects the exit code.
	if err != nil && !errors.Is(err, cli.ErrIssuesFound) {
		logging.Default().Error("command failed", logging.FieldError, err)
	}

	return cli.ExitCode(err)
}
