package lint

// BaseRule provides the metadata half of the Rule interface.
// Embed this in rule implementations and implement Apply.
//
// Fields are unexported to avoid stutter and name collisions with interface methods.
type BaseRule struct {
	code       string
	name       string
	desc       string
	tags       []string
	fmtFixable bool
}

// NewBaseRule creates a BaseRule with the given properties.
func NewBaseRule(code, name, desc string, tags []string, fmtFixable bool) BaseRule {
	return BaseRule{
		code:       code,
		name:       name,
		desc:       desc,
		tags:       tags,
		fmtFixable: fmtFixable,
	}
}

// Code returns the unique identifier for this rule.
func (r *BaseRule) Code() string {
	return r.code
}

// Name returns the human-readable name of the rule.
func (r *BaseRule) Name() string {
	return r.name
}

// Description returns what the rule checks.
func (r *BaseRule) Description() string {
	return r.desc
}

// Tags returns categorization tags for this rule.
func (r *BaseRule) Tags() []string {
	return r.tags
}

// FmtFixable reports whether the formatter resolves this rule's violations.
func (r *BaseRule) FmtFixable() bool {
	return r.fmtFixable
}

// Violation returns a builder preset with the rule's code, documentation
// link and fixability.
func (r *BaseRule) Violation() ViolationBuilder {
	return NewViolation().
		Code(r.code).
		DocLink(DocLink(r.code)).
		FmtFixable(r.fmtFixable)
}
