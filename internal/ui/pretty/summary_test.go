package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/checkmark/internal/ui/pretty"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean run",
			stats: runner.Stats{FilesChecked: 3},
			want:  "No issues found (3 files checked)\n",
		},
		{
			name:  "single file clean",
			stats: runner.Stats{FilesChecked: 1},
			want:  "No issues found (1 file checked)\n",
		},
		{
			name: "issues by category",
			stats: runner.Stats{
				FilesChecked:    4,
				FilesWithIssues: 2,
				IssuesTotal:     5,
				IssuesByCategory: map[issue.Category]int{
					issue.CategoryLint: 4,
					issue.CategoryLink: 1,
				},
			},
			want: "5 issues (1 Link, 4 Lint) in 2 files\n",
		},
		{
			name: "single issue with failure",
			stats: runner.Stats{
				FilesChecked:     2,
				FilesWithIssues:  1,
				FilesErrored:     1,
				IssuesTotal:      1,
				IssuesByCategory: map[issue.Category]int{issue.CategorySpelling: 1},
			},
			want: "1 issue (1 Spelling) in 1 file, 1 file failed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
