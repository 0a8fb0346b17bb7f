package rules

import (
	"fmt"

	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// observation is the style of one qualifying node.
type observation[S ~string] struct {
	Position mdast.Position
	Style    S
}

// consistencyCheck evaluates one style family. The two passes over the
// observations are kept separate: the first picks the target style, the
// second flags every node that deviates from it.
type consistencyCheck[S ~string] struct {
	// Consistent is the configuration value that requests inference.
	Consistent S

	// Singular and Plural name the element in messages ("heading",
	// "headings").
	Singular string
	Plural   string

	// Option is the [style] key and Flag the CLI flag that pin the style.
	Option string
	Flag   string

	// Reference is the last fix suggestion.
	Reference string

	// Display renders an observed style for messages.
	Display func(S) string
}

// target returns the style every observation should have. In consistent
// mode it is the style of the first observation; ok is false when there is
// nothing to infer from.
func (c consistencyCheck[S]) target(configured S, observed []observation[S]) (S, bool) {
	if configured != c.Consistent {
		return configured, true
	}
	if len(observed) == 0 {
		var zero S
		return zero, false
	}
	return observed[0].Style, true
}

// evaluate returns a violation for every observation whose style differs
// from the target, in the order of observed.
func (c consistencyCheck[S]) evaluate(
	base lint.ViolationBuilder,
	configured S,
	observed []observation[S],
) []lint.Violation {
	preferred, ok := c.target(configured, observed)
	if !ok {
		return nil
	}

	var violations []lint.Violation
	for _, obs := range observed {
		if obs.Style == preferred {
			continue
		}

		var msg string
		if configured == c.Consistent {
			msg = fmt.Sprintf("Inconsistent %s style. First %s in this file is %q, but this one is %q",
				c.Plural, c.Singular, c.Display(preferred), c.Display(obs.Style))
		} else {
			msg = fmt.Sprintf("Wrong %s style. Expected %q, got %q",
				c.Singular, string(configured), c.Display(obs.Style))
		}

		violations = append(violations, base.
			Message(msg).
			PushFix(fmt.Sprintf("Change %s style to %q", c.Singular, c.Display(preferred))).
			PushFix(fmt.Sprintf("Alternatively, you can enforce specific %s style via either %q option "+
				"from the \"[style]\" section in config file or via %q CLI option", c.Singular, c.Option, c.Flag)).
			PushFix(c.Reference).
			Position(obs.Position).
			Build())
	}

	return violations
}
