package format

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/yuin/goldmark"

	"github.com/yaklabco/checkmark/pkg/fsutil"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

const (
	// Message is the text of the format issue.
	Message = "File has a wrong formatting"

	// Fix is the only fix of the format issue.
	Fix = "Try auto-formatting a file with '--autoformat' flag"
)

// Checker compares documents with their formatted form.
type Checker struct {
	formatter Formatter
	md        goldmark.Markdown
}

// NewChecker creates a checker. A nil formatter selects RoundTrip.
func NewChecker(formatter Formatter) *Checker {
	if formatter == nil {
		formatter = NewRoundTrip()
	}
	return &Checker{formatter: formatter, md: newRenderer()}
}

// Check returns a single issue spanning the whole file when formatting
// would change it.
func (c *Checker) Check(ctx context.Context, path string, content []byte) ([]issue.Issue, error) {
	formatted, err := c.formatter.Format(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", path, err)
	}
	return Result{Path: path, Original: content, Formatted: formatted}.Issues(), nil
}

// Result describes one formatted file.
type Result struct {
	Path      string
	Original  []byte
	Formatted []byte
}

// Changed reports whether formatting changes the file.
func (r Result) Changed() bool {
	return !bytes.Equal(r.Original, r.Formatted)
}

// Issues returns the whole-file format issue, or nil when nothing changes.
func (r Result) Issues() []issue.Issue {
	if !r.Changed() {
		return nil
	}
	whole := mdast.NewFileSnapshot(r.Path, r.Original).PositionAt(0, len(r.Original))
	return []issue.Issue{
		issue.New(issue.CategoryFormat, r.Path).
			Message(Message).
			PushFix(Fix).
			Position(whole).
			Build(),
	}
}

// Diff returns a unified diff from the original to the formatted content.
func (r Result) Diff() (string, error) {
	if !r.Changed() {
		return "", nil
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(r.Original)),
		B:        difflib.SplitLines(string(r.Formatted)),
		FromFile: "a/" + r.Path,
		ToFile:   "b/" + r.Path,
		Context:  3,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", r.Path, err)
	}
	return diff, nil
}

// FormatFile reads and formats path without writing.
func (c *Checker) FormatFile(ctx context.Context, path string) (Result, error) {
	result, _, err := c.formatFile(ctx, path)
	return result, err
}

// ErrModified is returned by WriteFile when the file changed on disk while
// it was being formatted.
var ErrModified = fsutil.ErrModified

// WriteFile formats path in place. It returns whether the file changed.
// The file is left untouched with ErrContentChanged when the formatted
// document would not render the same as the original.
func (c *Checker) WriteFile(ctx context.Context, path string) (Result, bool, error) {
	result, info, err := c.formatFile(ctx, path)
	if err != nil {
		return Result{}, false, err
	}
	if !result.Changed() {
		return result, false, nil
	}

	same, err := renderedEqual(c.md, result.Original, result.Formatted)
	if err != nil {
		return Result{}, false, fmt.Errorf("verify %s: %w", path, err)
	}
	if !same {
		return Result{}, false, fmt.Errorf("write %s: %w", path, ErrContentChanged)
	}

	written, err := fsutil.Replace(ctx, info, result.Formatted)
	if err != nil {
		return Result{}, false, fmt.Errorf("write %s: %w", path, err)
	}
	return result, written, nil
}

func (c *Checker) formatFile(ctx context.Context, path string) (Result, *fsutil.FileInfo, error) {
	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return Result{}, nil, err
	}
	formatted, err := c.formatter.Format(ctx, content)
	if err != nil {
		return Result{}, nil, fmt.Errorf("format %s: %w", path, err)
	}
	return Result{Path: path, Original: content, Formatted: formatted}, info, nil
}
