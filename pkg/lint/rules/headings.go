package rules

import (
	"bytes"
	"fmt"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

const headingsReference = "See Markdown headings reference: https://www.markdownguide.org/basic-syntax/#headings"

// HeadingIncrementRule checks that heading levels increment by one.
type HeadingIncrementRule struct {
	lint.BaseRule
}

// NewHeadingIncrementRule creates a new heading increment rule.
func NewHeadingIncrementRule() *HeadingIncrementRule {
	return &HeadingIncrementRule{
		BaseRule: lint.NewBaseRule(
			"MD001",
			"heading-increment",
			"Heading levels should only increment by one level at a time",
			[]string{"headings"},
			false,
		),
	}
}

// Apply checks that heading levels increment by at most one.
func (r *HeadingIncrementRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation
	var prevLevel int

	for _, heading := range ctx.Headings() {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}

		level := heading.HeadingLevel()
		if level == 0 {
			continue
		}

		// First heading can be any level.
		if prevLevel > 0 && level > prevLevel+1 {
			violations = append(violations, r.Violation().
				Message(fmt.Sprintf("Heading level jumped from H%d to H%d", prevLevel, level)).
				PushFix(fmt.Sprintf("Use H%d instead", prevLevel+1)).
				PushFix(headingsReference).
				Position(heading.Position()).
				Build())
		}

		prevLevel = level
	}

	return violations, nil
}

// HeadingStyleRule enforces the heading style selected by [style] headings.
type HeadingStyleRule struct {
	lint.BaseRule
}

// NewHeadingStyleRule creates a new heading style rule.
func NewHeadingStyleRule() *HeadingStyleRule {
	return &HeadingStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD003",
			"heading-style",
			"Heading style should be consistent",
			[]string{"headings", "style"},
			true,
		),
	}
}

//nolint:gochecknoglobals // Read-only rule definition.
var headingConsistency = consistencyCheck[config.HeadingStyle]{
	Consistent: config.HeadingConsistent,
	Singular:   "heading",
	Plural:     "headings",
	Option:     "headings",
	Flag:       "--style-headings",
	Reference:  headingsReference,
	Display:    displayHeadingStyle,
}

func displayHeadingStyle(style config.HeadingStyle) string {
	switch style {
	case config.HeadingATX:
		return "ATX"
	case config.HeadingSetext:
		return "SetExt"
	default:
		return string(style)
	}
}

// headingStyleOf classifies a heading by its source text: an ATX heading
// starts with its hash run, a setext heading with its content.
func headingStyleOf(heading *mdast.Node) (config.HeadingStyle, bool) {
	text := heading.Text()
	if len(text) == 0 {
		return "", false
	}
	if text[0] == '#' {
		return config.HeadingATX, true
	}
	return config.HeadingSetext, true
}

// Apply flags headings whose style differs from the target style.
func (r *HeadingStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var observed []observation[config.HeadingStyle]

	for _, heading := range ctx.Headings() {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}
		if style, ok := headingStyleOf(heading); ok {
			observed = append(observed, observation[config.HeadingStyle]{
				Position: heading.Position(),
				Style:    style,
			})
		}
	}

	return headingConsistency.evaluate(r.Violation(), ctx.Config.Style.Headings, observed), nil
}

// NoMissingSpaceATXRule checks for missing space after hash on ATX headings.
type NoMissingSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMissingSpaceATXRule creates a new no-missing-space-atx rule.
func NewNoMissingSpaceATXRule() *NoMissingSpaceATXRule {
	return &NoMissingSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD018",
			"no-missing-space-atx",
			"No space after hash on ATX style heading",
			[]string{"atx", "headings", "spaces"},
			true,
		),
	}
}

// Apply scans raw lines, since "#Heading" is a paragraph to the parser.
func (r *NoMissingSpaceATXRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	return scanATXLines(ctx, func(lineStart int, prefix atxPrefix) (lint.Violation, bool) {
		if prefix.spaces > 0 || prefix.rest == 0 || prefix.rest == '#' {
			return lint.Violation{}, false
		}

		start := lineStart + prefix.indent
		return r.Violation().
			Message("No space after hash on atx style heading").
			PushFix("Separate the heading text from the hash character by a single space").
			Position(ctx.PositionAt(start, start+prefix.hashes)).
			Build(), true
	})
}

// NoMultipleSpaceATXRule checks for multiple spaces after hash on ATX headings.
type NoMultipleSpaceATXRule struct {
	lint.BaseRule
}

// NewNoMultipleSpaceATXRule creates a new no-multiple-space-atx rule.
func NewNoMultipleSpaceATXRule() *NoMultipleSpaceATXRule {
	return &NoMultipleSpaceATXRule{
		BaseRule: lint.NewBaseRule(
			"MD019",
			"no-multiple-space-atx",
			"Multiple spaces after hash on ATX style heading",
			[]string{"atx", "headings", "spaces"},
			true,
		),
	}
}

// Apply scans raw lines, since the parser drops the extra whitespace.
// The violation spans the hash run and all whitespace after it.
func (r *NoMultipleSpaceATXRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	return scanATXLines(ctx, func(lineStart int, prefix atxPrefix) (lint.Violation, bool) {
		if prefix.spaces < 2 || prefix.rest == 0 {
			return lint.Violation{}, false
		}

		start := lineStart + prefix.indent
		return r.Violation().
			Message("Multiple spaces after hash on atx style heading").
			PushFix("Separate the heading text from the hash character by a single space").
			Position(ctx.PositionAt(start, start+prefix.hashes+prefix.spaces)).
			Build(), true
	})
}

// atxPrefix describes the opening of a line that starts like an ATX heading.
type atxPrefix struct {
	indent int  // leading spaces, at most three
	hashes int  // length of the hash run, 1-6
	spaces int  // spaces and tabs after the hash run
	rest   byte // first byte after the whitespace, 0 at end of line
}

// parseATXPrefix reports whether line opens with an ATX hash run.
func parseATXPrefix(line []byte) (atxPrefix, bool) {
	var prefix atxPrefix

	for prefix.indent < len(line) && prefix.indent < 4 && line[prefix.indent] == ' ' {
		prefix.indent++
	}
	if prefix.indent > 3 {
		return prefix, false
	}

	rest := line[prefix.indent:]
	for prefix.hashes < len(rest) && rest[prefix.hashes] == '#' {
		prefix.hashes++
	}
	if prefix.hashes == 0 || prefix.hashes > 6 {
		return prefix, false
	}

	rest = rest[prefix.hashes:]
	trimmed := bytes.TrimLeft(rest, " \t")
	prefix.spaces = len(rest) - len(trimmed)
	if len(trimmed) > 0 {
		prefix.rest = trimmed[0]
	}
	return prefix, true
}

// scanATXLines calls check for every line outside code and HTML blocks that
// opens with an ATX hash run.
func scanATXLines(
	ctx *lint.RuleContext,
	check func(lineStart int, prefix atxPrefix) (lint.Violation, bool),
) ([]lint.Violation, error) {
	if ctx.File == nil {
		return nil, nil
	}

	skip := lint.LinesCoveredBy(ctx.File, ctx.CodeBlocks(), ctx.HTMLBlocks())

	var violations []lint.Violation
	for lineNum := 1; lineNum <= ctx.File.LineCount(); lineNum++ {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}
		if skip[lineNum] {
			continue
		}

		prefix, ok := parseATXPrefix(ctx.File.LineContent(lineNum))
		if !ok {
			continue
		}
		if v, found := check(lint.LineStart(ctx.File, lineNum), prefix); found {
			violations = append(violations, v)
		}
	}

	return violations, nil
}
