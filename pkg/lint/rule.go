// Package lint provides the rule engine, violations, and registry for checkmark.
package lint

// Rule defines the interface that all lint rules must implement.
type Rule interface {
	// Code returns the unique identifier for this rule (e.g., "MD001").
	Code() string

	// Name returns the human-readable name of the rule.
	Name() string

	// Description returns a one-line description of what the rule checks.
	Description() string

	// Tags returns categorization tags for this rule (e.g., ["headings"]).
	Tags() []string

	// FmtFixable reports whether the formatter resolves this rule's violations.
	FmtFixable() bool

	// Apply executes the rule and returns violations in ascending source
	// order.
	//
	// Rules must:
	//   - be deterministic and side-effect free,
	//   - respect context cancellation,
	//   - return an error only for internal failures, not violations,
	//   - emit a best-effort, possibly zero-width, position when a span
	//     cannot be located precisely.
	Apply(ctx *RuleContext) ([]Violation, error)
}
