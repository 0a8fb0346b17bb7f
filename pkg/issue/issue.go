// Package issue defines the externally visible report unit shared by every
// checking pass.
package issue

import (
	"slices"

	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Category names the pass that produced an issue.
type Category string

const (
	CategoryFormat   Category = "Format"
	CategoryLink     Category = "Link"
	CategoryGrammar  Category = "Grammar"
	CategorySpelling Category = "Spelling"
	CategoryReview   Category = "Review"
	CategoryLint     Category = "Lint"
)

// Severity ranks an issue.
type Severity string

const (
	SeverityWarning Severity = "Warning"
	SeverityHelp    Severity = "Help"
	SeverityNote    Severity = "Note"
	SeverityError   Severity = "Error"
)

// Issue is one reported problem. Rows and columns are 1-based; offsets are
// 0-based byte offsets with an exclusive end.
type Issue struct {
	Category    Category `json:"category"`
	Severity    Severity `json:"severity"`
	FilePath    string   `json:"file_path"`
	RowStart    int      `json:"row_num_start"`
	RowEnd      int      `json:"row_num_end"`
	ColStart    int      `json:"col_num_start"`
	ColEnd      int      `json:"col_num_end"`
	OffsetStart int      `json:"offset_start"`
	OffsetEnd   int      `json:"offset_end"`
	Message     string   `json:"message"`
	Fixes       []string `json:"fixes,omitempty"`
}

// Position returns the issue location as an mdast.Position.
func (i Issue) Position() mdast.Position {
	return mdast.Position{
		StartLine:   i.RowStart,
		StartColumn: i.ColStart,
		EndLine:     i.RowEnd,
		EndColumn:   i.ColEnd,
		StartOffset: i.OffsetStart,
		EndOffset:   i.OffsetEnd,
	}
}

// Builder accumulates Issue fields. Every method returns an updated copy.
type Builder struct {
	i Issue
}

// New starts a builder for an issue of the given category in path.
// Severity defaults to Warning.
func New(category Category, path string) Builder {
	return Builder{i: Issue{Category: category, Severity: SeverityWarning, FilePath: path}}
}

// Severity sets the severity.
func (b Builder) Severity(s Severity) Builder {
	b.i.Severity = s
	return b
}

// Message sets the message.
func (b Builder) Message(msg string) Builder {
	b.i.Message = msg
	return b
}

// PushFix appends a fix suggestion.
func (b Builder) PushFix(fix string) Builder {
	b.i.Fixes = append(slices.Clip(b.i.Fixes), fix)
	return b
}

// Fixes appends several fix suggestions in order.
func (b Builder) Fixes(fixes ...string) Builder {
	b.i.Fixes = append(slices.Clip(b.i.Fixes), fixes...)
	return b
}

// Position copies rows, columns and offsets from pos.
func (b Builder) Position(pos mdast.Position) Builder {
	b.i.RowStart = pos.StartLine
	b.i.RowEnd = pos.EndLine
	b.i.ColStart = pos.StartColumn
	b.i.ColEnd = pos.EndColumn
	b.i.OffsetStart = pos.StartOffset
	b.i.OffsetEnd = pos.EndOffset
	return b
}

// Offsets overrides only the byte offsets, keeping rows and columns.
func (b Builder) Offsets(start, end int) Builder {
	b.i.OffsetStart = start
	b.i.OffsetEnd = end
	return b
}

// Build returns the Issue.
func (b Builder) Build() Issue {
	out := b.i
	out.Fixes = slices.Clone(b.i.Fixes)
	return out
}

// FromViolation converts a lint violation into a Lint issue. The message is
// prefixed with the rule code and the documentation link is appended as the
// last fix.
func FromViolation(path string, v lint.Violation) Issue {
	b := New(CategoryLint, path).
		Message(v.Code + " - " + v.Message).
		Fixes(v.Fixes...).
		Position(v.Position)
	if v.DocLink != "" {
		b = b.PushFix("See the rule documentation: " + v.DocLink)
	}
	return b.Build()
}

// FromViolations converts violations in order.
func FromViolations(path string, violations []lint.Violation) []Issue {
	if len(violations) == 0 {
		return nil
	}
	out := make([]Issue, 0, len(violations))
	for _, v := range violations {
		out = append(out, FromViolation(path, v))
	}
	return out
}
