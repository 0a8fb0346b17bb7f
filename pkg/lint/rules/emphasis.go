package rules

import (
	"fmt"

	"github.com/yaklabco/checkmark/pkg/config"
	"github.com/yaklabco/checkmark/pkg/lint"
)

// StrongStyleRule enforces the delimiter selected by [style] bold.
type StrongStyleRule struct {
	lint.BaseRule
}

// NewStrongStyleRule creates a new strong style rule.
func NewStrongStyleRule() *StrongStyleRule {
	return &StrongStyleRule{
		BaseRule: lint.NewBaseRule(
			"MD050",
			"strong-style",
			"Strong style should be consistent",
			[]string{"emphasis"},
			true,
		),
	}
}

//nolint:gochecknoglobals // Read-only rule definition.
var boldConsistency = consistencyCheck[config.BoldStyle]{
	Consistent: config.BoldConsistent,
	Singular:   "bold",
	Plural:     "bold",
	Option:     "bold",
	Flag:       "--style-bold",
	Reference:  "See Markdown bold reference: https://www.markdownguide.org/basic-syntax/#bold",
	Display:    func(s config.BoldStyle) string { return string(s) },
}

// Apply flags strong spans whose delimiter differs from the target style.
func (r *StrongStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Violation, error) {
	var observed []observation[config.BoldStyle]

	for _, strong := range ctx.Strong() {
		if ctx.Cancelled() {
			return nil, fmt.Errorf("rule cancelled: %w", ctx.Err())
		}

		var style config.BoldStyle
		switch strong.Delimiter() {
		case '*':
			style = config.BoldAsterisk
		case '_':
			style = config.BoldUnderscore
		default:
			continue
		}

		observed = append(observed, observation[config.BoldStyle]{
			Position: strong.Position(),
			Style:    style,
		})
	}

	return boldConsistency.evaluate(r.Violation(), ctx.Config.Style.Bold, observed), nil
}
