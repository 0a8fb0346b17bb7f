package rules

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// InlineHTMLRule restricts raw HTML to the elements listed in
// [lint] allowed_html_tags.
type InlineHTMLRule struct {
	lint.BaseRule
}

// NewInlineHTMLRule creates a new inline HTML rule.
func NewInlineHTMLRule() *InlineHTMLRule {
	return &InlineHTMLRule{
		BaseRule: lint.NewBaseRule(
			"MD033",
			"no-inline-html",
			"Inline HTML",
			[]string{"html"},
			false,
		),
	}
}

// Apply checks HTML blocks and inline HTML in source order.
func (r *InlineHTMLRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	allowed := make(map[string]bool, len(ctx.Config.Lint.AllowedHTMLTags))
	for _, tag := range ctx.Config.Lint.AllowedHTMLTags {
		allowed[strings.ToLower(strings.TrimSpace(tag))] = true
	}

	nodes := slices.Concat(ctx.HTMLBlocks(), ctx.HTMLInlines())
	slices.SortStableFunc(nodes, func(a, b *mdast.Node) int {
		return cmp.Compare(a.Span.Start, b.Span.Start)
	})

	var violations []lint.Violation
	for _, node := range nodes {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}

		text := node.Text()
		tag := lint.ExtractHTMLTagName(text)
		if tag == "" || allowed[tag] {
			continue
		}

		violations = append(violations, r.Violation().
			Message(fmt.Sprintf("Inline HTML element %q is not allowed", tag)).
			PushFix("Replace the HTML element with the equivalent Markdown syntax").
			PushFix("Alternatively, you can allow this element via either \"allowed_html_tags\" option "+
				"from the \"[lint]\" section in config file or via \"--allowed-html-tags\" CLI option").
			Position(ctx.PositionAt(node.Span.Start, node.Span.Start+openingTagLen(text))).
			Build())
	}

	return violations, nil
}

// openingTagLen returns the length of the first tag in text, stopping at the
// end of the first line when the tag is not closed there.
func openingTagLen(text []byte) int {
	line := text
	if idx := bytes.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	if idx := bytes.IndexByte(line, '>'); idx >= 0 {
		return idx + 1
	}
	return len(bytes.TrimRight(line, " \t\r"))
}
