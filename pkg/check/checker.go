package check

import (
	"context"
	"time"

	"github.com/yaklabco/checkmark/internal/logging"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/lint"
)

// Passes holds one optional implementation per pipeline stage. A nil pass
// is not run.
type Passes struct {
	Format   Pass
	Link     Pass
	Grammar  Pass
	Spelling Pass
	Lint     Pass
}

// Options configure a Checker.
type Options struct {
	Passes Passes

	// GrammarAvailable enables the grammar pass. It is false when the
	// grammar credential is absent.
	GrammarAvailable bool

	// Parser parses documents loaded by CheckFile.
	Parser lint.Parser
}

// Checker runs the passes of one file in fixed order.
type Checker struct {
	passes []Pass
	parser lint.Parser
}

// New creates a Checker. The pass order is format, link, grammar,
// spelling, lint.
func New(opts Options) *Checker {
	ordered := []Pass{opts.Passes.Format, opts.Passes.Link}
	if opts.GrammarAvailable {
		ordered = append(ordered, opts.Passes.Grammar)
	}
	ordered = append(ordered, opts.Passes.Spelling, opts.Passes.Lint)

	c := &Checker{parser: opts.Parser}
	for _, p := range ordered {
		if p != nil {
			c.passes = append(c.passes, p)
		}
	}
	return c
}

// PassNames returns the active passes in run order.
func (c *Checker) PassNames() []string {
	names := make([]string, 0, len(c.passes))
	for _, p := range c.passes {
		names = append(names, p.Name())
	}
	return names
}

// Check runs every active pass on doc and concatenates their issues in pass
// order. The first failing pass aborts the check with a *PassError and no
// issues.
func (c *Checker) Check(ctx context.Context, doc *Document) ([]issue.Issue, error) {
	ctx = logging.WithFields(ctx, logging.FieldPath, doc.Path)

	var issues []issue.Issue
	for _, pass := range c.passes {
		passCtx := logging.WithFields(ctx, logging.FieldPass, pass.Name())
		logger := logging.FromContext(passCtx)

		started := time.Now()
		logger.Debug("pass started")

		found, err := pass.Run(passCtx, doc)
		if err != nil {
			return nil, &PassError{Pass: pass.Name(), Err: err}
		}

		logger.Debug("pass finished",
			logging.FieldCount, len(found),
			logging.FieldDuration, time.Since(started),
		)
		issues = append(issues, found...)
	}
	return issues, nil
}

// CheckFile loads path and checks it.
func (c *Checker) CheckFile(ctx context.Context, path string) ([]issue.Issue, error) {
	doc, err := LoadDocument(ctx, path, c.parser)
	if err != nil {
		return nil, err
	}
	return c.Check(ctx, doc)
}
