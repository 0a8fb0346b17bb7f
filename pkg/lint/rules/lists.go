package rules

import (
	"fmt"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// UnorderedListStyleRule enforces the bullet marker selected by
// [style] unordered_lists.
type UnorderedListStyleRule struct {
	lint.BaseRule
}

// NewUnorderedListStyleRule creates a new unordered list style rule.
func NewUnorderedListStyleRule() *UnorderedListStyleRule {
	return &UnorderedListStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD004",
			"ul-style",
			"Unordered list style should be consistent",
			[]string{"bullet", "ul"},
			true,
		),
	}
}

//nolint:gochecknoglobals // Read-only rule definition.
var unorderedListConsistency = consistencyCheck[config.UnorderedListStyle]{
	Consistent: config.UnorderedListConsistent,
	Singular:   "unordered list",
	Plural:     "unordered lists",
	Option:     "unordered_lists",
	Flag:       "--style-unordered-lists",
	Reference:  "See Markdown lists reference: https://www.markdownguide.org/basic-syntax/#unordered-lists",
	Display:    func(s config.UnorderedListStyle) string { return string(s) },
}

func bulletStyle(marker byte) (config.UnorderedListStyle, bool) {
	switch marker {
	case '-':
		return config.UnorderedListDash, true
	case '*':
		return config.UnorderedListAsterisk, true
	case '+':
		return config.UnorderedListPlus, true
	default:
		return "", false
	}
}

// Apply flags the marker of every unordered list item whose style differs
// from the target style. Items are visited in source order, so nested lists
// are interleaved with their parents.
func (r *UnorderedListStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var observed []observation[config.UnorderedListStyle]

	for _, item := range ctx.Nodes(mdast.NodeListItem) {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}

		list := item.Parent
		if attrs := list.ListAttrs(); attrs == nil || attrs.Ordered {
			continue
		}

		if obs, ok := observeBullet(ctx, item, list); ok {
			observed = append(observed, obs)
		}
	}

	return unorderedListConsistency.evaluate(r.Violation(), ctx.Config.Style.UnorderedLists, observed), nil
}

// observeBullet reads the marker at the start of the item. When the item
// could not be located in the source, the list's marker and a zero-width
// position are used instead.
func observeBullet(ctx *lint.RuleContext, item, list *mdast.Node) (observation[config.UnorderedListStyle], bool) {
	if text := item.Text(); len(text) > 0 {
		if style, ok := bulletStyle(text[0]); ok {
			return observation[config.UnorderedListStyle]{
				Position: ctx.PositionAt(item.Span.Start, item.Span.Start+1),
				Style:    style,
			}, true
		}
	}

	marker := list.ListAttrs().BulletMarker
	if marker == "" {
		return observation[config.UnorderedListStyle]{}, false
	}
	style, ok := bulletStyle(marker[0])
	return observation[config.UnorderedListStyle]{Position: item.Position(), Style: style}, ok
}
