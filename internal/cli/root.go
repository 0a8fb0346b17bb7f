// Package cli provides the Cobra command structure for checkmark.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root checkmark command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "checkmark",
		Short: "Check Markdown files for formatting, links, spelling, grammar and style",
		Long: `checkmark checks Markdown documents and reports every problem it finds
as one list of issues with exact positions and suggested fixes.

The check command runs the format, link, grammar, spelling and lint passes
in that order. The grammar pass runs only when SAPLING_API_KEY is set.
Each pass is also available as its own command.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if flags.debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags.register(rootCmd)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	rootCmd.AddCommand(newCheckCommand(flags))
	for _, spec := range singlePassCommands {
		rootCmd.AddCommand(newPassCommand(flags, spec))
	}
	rootCmd.AddCommand(newFmtCommand(flags))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newGenerateConfigCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
