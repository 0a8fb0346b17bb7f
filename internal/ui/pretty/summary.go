package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/runner"
)

const (
	wordFile  = "file"
	wordFiles = "files"
)

// summaryCategories fixes the order of the per-category breakdown.
//
//nolint:gochecknoglobals // read-only table
var summaryCategories = []issue.Category{
	issue.CategoryFormat,
	issue.CategoryLink,
	issue.CategoryGrammar,
	issue.CategorySpelling,
	issue.CategoryReview,
	issue.CategoryLint,
}

// FormatSummaryOneLine formats run statistics as a single line.
// Example: "5 issues (1 Link, 4 Lint) in 2 files, 1 file failed".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var parts []string

	if stats.IssuesTotal == 0 {
		parts = append(parts, s.Success.Render("No issues found")+
			s.Dim.Render(fmt.Sprintf(" (%d %s checked)", stats.FilesChecked, plural(stats.FilesChecked, wordFile, wordFiles))))
	} else {
		var byCategory []string
		for _, category := range summaryCategories {
			if n := stats.IssuesByCategory[category]; n > 0 {
				byCategory = append(byCategory, fmt.Sprintf("%d %s", n, category))
			}
		}

		parts = append(parts, fmt.Sprintf("%s (%s) in %d %s",
			s.Failure.Render(fmt.Sprintf("%d %s", stats.IssuesTotal, plural(stats.IssuesTotal, "issue", "issues"))),
			strings.Join(byCategory, ", "),
			stats.FilesWithIssues,
			plural(stats.FilesWithIssues, wordFile, wordFiles),
		))
	}

	if stats.FilesErrored > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s failed",
			stats.FilesErrored, plural(stats.FilesErrored, wordFile, wordFiles))))
	}

	return strings.Join(parts, ", ") + "\n"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
