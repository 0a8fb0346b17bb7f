package reporter

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/yaklabco/checkmark/internal/ui/pretty"
	"github.com/yaklabco/checkmark/pkg/format"
)

// DiffReporter writes formatter changes as git-style unified diffs.
type DiffReporter struct {
	styles      *pretty.Styles
	out         io.Writer
	showSummary bool
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}
	return &DiffReporter{
		styles:      pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		out:         opts.Writer,
		showSummary: opts.ShowSummary,
	}
}

// Report writes a diff for every changed result and returns the number of
// changed files.
func (r *DiffReporter) Report(results []format.Result) (int, error) {
	var filesWithDiffs, totalAdditions, totalDeletions int

	for _, res := range results {
		if !res.Changed() {
			continue
		}

		diff, err := res.Diff()
		if err != nil {
			return filesWithDiffs, err
		}

		additions, deletions := countChanges(diff)
		filesWithDiffs++
		totalAdditions += additions
		totalDeletions += deletions

		displayPath := relativePath(res.Path)
		header := fmt.Sprintf("diff --git a/%s b/%s", displayPath, displayPath)
		fmt.Fprintln(r.out, r.styles.DiffHeader.Render(header))
		fmt.Fprint(r.out, r.styles.FormatDiff(diff))
		fmt.Fprintln(r.out) // Blank line between files
	}

	if filesWithDiffs > 0 && r.showSummary {
		r.writeSummary(filesWithDiffs, totalAdditions, totalDeletions)
	}

	return filesWithDiffs, nil
}

// countChanges counts added and removed lines, ignoring file headers.
func countChanges(diff string) (int, int) {
	var additions, deletions int
	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			additions++
		case strings.HasPrefix(line, "-"):
			deletions++
		}
	}
	return additions, deletions
}

// relativePath converts an absolute path to a relative path from the current directory.
// If the relative path would require too many "../" traversals, use the basename instead.
func relativePath(path string) string {
	if !filepath.IsAbs(path) {
		return path
	}
	cwd, err := os.Getwd()
	if err != nil {
		return filepath.Base(path)
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil {
		return filepath.Base(path)
	}
	if strings.Count(rel, "..") > 2 {
		return filepath.Base(path)
	}
	return rel
}

// writeSummary writes a summary line at the end.
func (r *DiffReporter) writeSummary(files, additions, deletions int) {
	parts := []string{fmt.Sprintf("%d %s changed", files, plural(files, "file", "files"))}

	if additions > 0 {
		parts = append(parts, r.styles.DiffAdd.Render(
			fmt.Sprintf("%d %s(+)", additions, plural(additions, "insertion", "insertions"))))
	}
	if deletions > 0 {
		parts = append(parts, r.styles.DiffRemove.Render(
			fmt.Sprintf("%d %s(-)", deletions, plural(deletions, "deletion", "deletions"))))
	}

	fmt.Fprintln(r.out, strings.Join(parts, ", "))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
