package cli

import (
	"context"
	"fmt"
	"sync"

	"github.com/spf13/cobra"

	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/pkg/format"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/reporter"
	"github.com/yaklabco/checkmark/pkg/runner"
)

type fmtFlags struct {
	check bool
	write bool
	diff  bool
}

const fmtLongDescription = `Format Markdown files.

Without flags, files are rewritten in place. With --check, nothing is
written and every file that would change is reported as a Format issue.
--diff prints a unified diff of the changes in either mode.

Examples:
  checkmark fmt                   # Format files in place
  checkmark fmt --check           # Report unformatted files (CI)
  checkmark fmt --check --diff    # Report and show what would change`

func newFmtCommand(flags *globalFlags) *cobra.Command {
	fflags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format Markdown files",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, flags, fflags)
		},
	}

	cmd.Flags().BoolVar(&fflags.check, "check", false, "report files that need formatting without writing")
	cmd.Flags().BoolVar(&fflags.write, "write", false, "write formatted files even if the config enables check")
	cmd.Flags().BoolVar(&fflags.diff, "diff", false, "print a unified diff of formatting changes")
	cmd.MarkFlagsMutuallyExclusive("check", "write")

	return cmd
}

// fmtChecker adapts format.Checker to runner.FileChecker and keeps every
// result for the diff output.
type fmtChecker struct {
	checker *format.Checker
	write   bool

	mu      sync.Mutex
	results map[string]format.Result
}

func (c *fmtChecker) CheckFile(ctx context.Context, path string) ([]issue.Issue, error) {
	var (
		res     format.Result
		written bool
		err     error
	)
	if c.write {
		res, written, err = c.checker.WriteFile(ctx, path)
	} else {
		res, err = c.checker.FormatFile(ctx, path)
	}
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.results[path] = res
	c.mu.Unlock()

	if c.write {
		if written {
			logging.FromContext(ctx).Info("formatted", logging.FieldPath, path)
		}
		return nil, nil
	}
	return res.Issues(), nil
}

// ordered returns the kept results in the order of outcomes.
func (c *fmtChecker) ordered(outcomes []runner.FileOutcome) []format.Result {
	results := make([]format.Result, 0, len(outcomes))
	for _, outcome := range outcomes {
		if res, ok := c.results[outcome.Path]; ok {
			results = append(results, res)
		}
	}
	return results
}

func runFmt(cmd *cobra.Command, args []string, flags *globalFlags, fflags *fmtFlags) error {
	overrides := flags.overrides(cmd)
	overrides.FmtCheck = fflags.check
	overrides.FmtShowDiff = fflags.diff

	sess, err := newSessionWith(cmd, flags, overrides)
	if err != nil {
		return err
	}
	ctx := sess.ctx
	cfg := sess.loaded.Config

	checkOnly := cfg.Fmt.Check && !fflags.write

	outputFormat, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return usageError(err)
	}

	fc := &fmtChecker{
		checker: format.NewChecker(nil),
		write:   !checkOnly,
		results: make(map[string]format.Result),
	}

	result, err := runner.New(fc).Run(ctx, sess.runnerOptions(args))
	if err != nil {
		return runtimeError(fmt.Errorf("run failed: %w", err))
	}

	if cfg.Fmt.ShowDiff {
		diffs := reporter.NewDiffReporter(reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Color:       flags.color,
			ShowSummary: true,
		})
		if _, err := diffs.Report(fc.ordered(result.Files)); err != nil {
			return runtimeError(fmt.Errorf("report diffs: %w", err))
		}
	}

	if checkOnly || result.HasErrors() {
		rep, err := reporter.New(reporter.Options{
			Writer:      cmd.OutOrStdout(),
			Format:      outputFormat,
			Color:       flags.color,
			ShowContext: false,
			ShowSummary: true,
		})
		if err != nil {
			return usageError(err)
		}
		if _, err := rep.Report(ctx, result); err != nil {
			return runtimeError(fmt.Errorf("report results: %w", err))
		}
	}

	return resultError(result)
}
