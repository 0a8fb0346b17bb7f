package rules

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yaklabco/checkmark/pkg/langdetect"
	"github.com/yaklabco/checkmark/pkg/lint"
)

// CodeBlockLanguageRule checks that fenced code blocks have a language specified.
type CodeBlockLanguageRule struct {
	lint.BaseRule
}

// NewCodeBlockLanguageRule creates a new code block language rule.
func NewCodeBlockLanguageRule() *CodeBlockLanguageRule {
	return &CodeBlockLanguageRule{
		BaseRule: lint.NewBaseRule(
			"MD040",
			"fenced-code-language",
			"Fenced code blocks should have a language specified",
			[]string{"code", "language"},
			false,
		),
	}
}

// Apply flags the opening fence of every fenced code block without an info
// string and suggests a language detected from the block content.
func (r *CodeBlockLanguageRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var violations []lint.Violation

	for _, block := range ctx.CodeBlocks() {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}

		attrs := block.CodeBlockAttrs()
		if attrs == nil || attrs.Indented || strings.TrimSpace(attrs.Info) != "" {
			continue
		}

		fence, body := splitFence(block.Text())

		builder := r.Violation().
			Message("Fenced code blocks should have a language specified")
		if lang, ok := langdetect.Suggest(body); ok {
			builder = builder.PushFix(fmt.Sprintf("Add a language identifier after the opening fence, e.g. \"%s\"", lang))
		} else {
			builder = builder.PushFix("Add a language identifier after the opening fence")
		}

		violations = append(violations, builder.
			PushFix("See Markdown code blocks reference: https://www.markdownguide.org/extended-syntax/#syntax-highlighting").
			Position(ctx.PositionAt(block.Span.Start, block.Span.Start+fence)).
			Build())
	}

	return violations, nil
}

// splitFence returns the length of the opening fence line and the block
// content between the fences.
func splitFence(text []byte) (int, []byte) {
	first, rest, found := bytes.Cut(text, []byte("\n"))
	fence := len(bytes.TrimRight(first, " \t\r"))
	if !found {
		return fence, nil
	}

	// Drop the closing fence when present.
	if idx := bytes.LastIndexByte(rest, '\n'); idx >= 0 {
		last := bytes.TrimSpace(rest[idx+1:])
		if len(last) > 0 && (last[0] == '`' || last[0] == '~') {
			rest = rest[:idx]
		}
	} else if trimmed := bytes.TrimSpace(rest); len(trimmed) > 0 && (trimmed[0] == '`' || trimmed[0] == '~') {
		rest = nil
	}

	return fence, rest
}
