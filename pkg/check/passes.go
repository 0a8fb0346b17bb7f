package check

import (
	"context"
	"fmt"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/format"
	"github.com/yaklabco/checkmark/pkg/grammar"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/links"
	"github.com/yaklabco/checkmark/pkg/spelling"
)

// Pass names, in pipeline order.
const (
	PassFormat   = "format"
	PassLink     = "link"
	PassGrammar  = "grammar"
	PassSpelling = "spelling"
	PassLint     = "lint"
)

// Pass is one analysis stage.
type Pass interface {
	Name() string
	Run(ctx context.Context, doc *Document) ([]issue.Issue, error)
}

// FormatPass reports formatting drift.
type FormatPass struct {
	Checker *format.Checker
}

func (p *FormatPass) Name() string { return PassFormat }

func (p *FormatPass) Run(ctx context.Context, doc *Document) ([]issue.Issue, error) {
	return p.Checker.Check(ctx, doc.Path, doc.Content)
}

// Resolver checks collected links.
type Resolver interface {
	Resolve(ctx context.Context, docPath string, coll *links.Collection) ([]links.Result, error)
}

// LinkPass reports unreachable links.
type LinkPass struct {
	Collector *links.Collector
	Resolver  Resolver
}

func (p *LinkPass) Name() string { return PassLink }

func (p *LinkPass) Run(ctx context.Context, doc *Document) ([]issue.Issue, error) {
	snapshot, err := doc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	coll := p.Collector.Collect(snapshot)
	if coll.Len() == 0 {
		return nil, nil
	}

	results, err := p.Resolver.Resolve(ctx, doc.Path, coll)
	if err != nil {
		return nil, err
	}

	var issues []issue.Issue
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		issues = append(issues, issue.New(issue.CategoryLink, doc.Path).
			Message(fmt.Sprintf("Link %q is unreachable: %s", r.Link.URI, r.Reason())).
			PushFix(`Fix the link, or exclude it via "ignore_wildcards" in the "[link_checker]" config section`).
			Position(r.Link.Position).
			Build())
	}
	return issues, nil
}

// GrammarPass reports prose the grammar service would rewrite.
type GrammarPass struct {
	Checker *grammar.Checker
}

func (p *GrammarPass) Name() string { return PassGrammar }

func (p *GrammarPass) Run(ctx context.Context, doc *Document) ([]issue.Issue, error) {
	snapshot, err := doc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return p.Checker.Check(ctx, snapshot)
}

// SpellingPass reports unknown words.
type SpellingPass struct {
	Checker *spelling.Checker
}

func (p *SpellingPass) Name() string { return PassSpelling }

func (p *SpellingPass) Run(ctx context.Context, doc *Document) ([]issue.Issue, error) {
	snapshot, err := doc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return p.Checker.Check(ctx, snapshot)
}

// LintPass runs the rule engine.
type LintPass struct {
	Engine *lint.Engine
	Config *config.Config
}

func (p *LintPass) Name() string { return PassLint }

func (p *LintPass) Run(ctx context.Context, doc *Document) ([]issue.Issue, error) {
	snapshot, err := doc.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	violations, err := p.Engine.LintSnapshot(ctx, snapshot, p.Config)
	if err != nil {
		return nil, err
	}
	return issue.FromViolations(doc.Path, violations), nil
}
