package lint

import (
	"slices"
	"strings"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// docBaseURL is the root of the rule reference documentation.
const docBaseURL = "https://github.com/DavidAnson/markdownlint/blob/v0.32.1/doc/"

// DocLink returns the documentation URL for a rule code.
func DocLink(code string) string {
	return docBaseURL + strings.ToLower(code) + ".md"
}

// Violation is one problem found by a rule. Values are immutable once
// returned from ViolationBuilder.Build.
type Violation struct {
	// Code is the stable rule identifier (e.g., "MD003").
	Code string

	// DocLink points at the rule documentation.
	DocLink string

	// Message is the human-readable description of the problem.
	Message string

	// Position locates the offending source text.
	Position mdast.Position

	// Fixes are suggestions in the order they should be shown.
	Fixes []string

	// FmtFixable is true when the formatter resolves this problem.
	FmtFixable bool
}

// Equal reports whether v and other are field-wise equal.
func (v Violation) Equal(other Violation) bool {
	return v.Code == other.Code &&
		v.DocLink == other.DocLink &&
		v.Message == other.Message &&
		v.Position == other.Position &&
		v.FmtFixable == other.FmtFixable &&
		slices.Equal(v.Fixes, other.Fixes)
}

// ViolationBuilder accumulates Violation fields. Every method returns an
// updated copy, so a partially configured builder can be shared and
// extended independently.
//
//	v := lint.NewViolation().
//	    Code("MD019").
//	    Message("Multiple spaces after hash on atx style heading").
//	    PushFix("Separate the heading text from the hash character by a single space").
//	    Position(pos).
//	    Build()
type ViolationBuilder struct {
	v Violation
}

// NewViolation starts an empty builder.
func NewViolation() ViolationBuilder {
	return ViolationBuilder{}
}

// Code sets the rule code.
func (b ViolationBuilder) Code(code string) ViolationBuilder {
	b.v.Code = code
	return b
}

// DocLink sets the documentation link.
func (b ViolationBuilder) DocLink(link string) ViolationBuilder {
	b.v.DocLink = link
	return b
}

// Message sets the message.
func (b ViolationBuilder) Message(msg string) ViolationBuilder {
	b.v.Message = msg
	return b
}

// PushFix appends a fix suggestion.
func (b ViolationBuilder) PushFix(fix string) ViolationBuilder {
	b.v.Fixes = append(slices.Clip(b.v.Fixes), fix)
	return b
}

// FmtFixable sets the fmt-fixable flag.
func (b ViolationBuilder) FmtFixable(fixable bool) ViolationBuilder {
	b.v.FmtFixable = fixable
	return b
}

// Position sets the source position.
func (b ViolationBuilder) Position(pos mdast.Position) ViolationBuilder {
	b.v.Position = pos
	return b
}

// Build returns the Violation. The result shares no memory with the builder.
func (b ViolationBuilder) Build() Violation {
	v := b.v
	v.Fixes = slices.Clone(b.v.Fixes)
	return v
}
