package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/configloader"
	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/pkg/check"
	"github.com/yaklabco/checkmark/pkg/reporter"
	"github.com/yaklabco/checkmark/pkg/runner"
)

// errNoGrammarKey is returned by the grammar command without a credential.
var errNoGrammarKey = errors.New("SAPLING_API_KEY is not set; the grammar pass needs a credential")

// passCommand describes a command that runs a single pass.
type passCommand struct {
	use       string
	short     string
	selection check.Selection
}

//nolint:gochecknoglobals // Read-only command table.
var singlePassCommands = []passCommand{
	{use: "lint", short: "Run the lint rules", selection: check.Selection{Lint: true}},
	{use: "linkcheck", short: "Check that links resolve", selection: check.Selection{Link: true}},
	{use: "spellcheck", short: "Check spelling", selection: check.Selection{Spelling: true}},
	{use: "grammar", short: "Check grammar with the remote service", selection: check.Selection{Grammar: true}},
}

const checkLongDescription = `Run every pass over Markdown files.

By default, checks all .md and .markdown files in the current directory
and subdirectories. Specify paths to check specific files or directories.

Examples:
  checkmark check                     # Check current directory
  checkmark check docs/ README.md     # Check selected paths
  checkmark check --format json       # Output as JSON for CI
  checkmark check --exclude "vendor/**"`

func newCheckCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Run all passes",
		Long:  checkLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, args, flags, check.AllPasses(), false)
		},
	}
}

func newPassCommand(flags *globalFlags, spec passCommand) *cobra.Command {
	return &cobra.Command{
		Use:   spec.use + " [paths...]",
		Short: spec.short,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChecks(cmd, args, flags, spec.selection, spec.selection.Grammar)
		},
	}
}

// session is the state every checking command starts from.
type session struct {
	ctx     context.Context
	loaded  *configloader.LoadResult
	workDir string
}

// newSession loads configuration and logs its warnings.
func newSession(cmd *cobra.Command, flags *globalFlags) (*session, error) {
	return newSessionWith(cmd, flags, flags.overrides(cmd))
}

func newSessionWith(cmd *cobra.Command, flags *globalFlags, overrides *configloader.Overrides) (*session, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	workDir, err := os.Getwd()
	if err != nil {
		return nil, runtimeError(fmt.Errorf("get working directory: %w", err))
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
		Overrides:    overrides,
	})
	if err != nil {
		return nil, usageError(fmt.Errorf("load configuration: %w", err))
	}

	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if loaded.Path != "" {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.Path)
	}

	return &session{ctx: ctx, loaded: loaded, workDir: workDir}, nil
}

func (s *session) runnerOptions(paths []string) runner.Options {
	cfg := s.loaded.Config
	return runner.Options{
		Paths:        paths,
		WorkingDir:   s.workDir,
		Extensions:   runner.DefaultExtensions(),
		ExcludeGlobs: cfg.Global.Exclude,
		Jobs:         cfg.Jobs,
	}
}

func runChecks(cmd *cobra.Command, args []string, flags *globalFlags, sel check.Selection, requireGrammar bool) error {
	sess, err := newSession(cmd, flags)
	if err != nil {
		return err
	}
	ctx := sess.ctx
	cfg := sess.loaded.Config

	if requireGrammar && sess.loaded.GrammarKey == "" {
		return usageError(errNoGrammarKey)
	}

	format, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	checker, err := check.Build(ctx, check.BuildOptions{
		Config:     cfg,
		Selection:  sel,
		GrammarKey: sess.loaded.GrammarKey,
	})
	if err != nil {
		return usageError(fmt.Errorf("set up checks: %w", err))
	}

	logger := logging.FromContext(ctx)
	logger.Debug("starting run", logging.FieldPass, checker.PassNames(), logging.FieldJobs, cfg.Jobs)

	result, err := runner.New(checker).Run(ctx, sess.runnerOptions(args))
	if err != nil {
		return runtimeError(fmt.Errorf("run failed: %w", err))
	}

	logger.Debug("run finished",
		logging.FieldFilesChecked, result.Stats.FilesChecked,
		logging.FieldFilesWithIssues, result.Stats.FilesWithIssues,
		logging.FieldIssuesTotal, result.Stats.IssuesTotal,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       flags.color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
	})
	if err != nil {
		return usageError(err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return runtimeError(fmt.Errorf("report results: %w", err))
	}

	return resultError(result)
}
