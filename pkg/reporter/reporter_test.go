package reporter_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/format"
	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/reporter"
	"github.com/yaklabco/checkmark/pkg/runner"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    reporter.Format
		wantErr bool
	}{
		{name: "empty defaults to text", input: "", want: reporter.FormatText},
		{name: "text", input: "text", want: reporter.FormatText},
		{name: "json", input: "json", want: reporter.FormatJSON},
		{name: "case insensitive", input: "JSON", want: reporter.FormatJSON},
		{name: "unknown format", input: "xml", wantErr: true},
		{name: "sarif is not offered", input: "sarif", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := reporter.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, reporter.Formats(), got)
		})
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		format  reporter.Format
		wantErr bool
	}{
		{name: "text reporter", format: reporter.FormatText},
		{name: "json reporter", format: reporter.FormatJSON},
		{name: "empty defaults to text", format: ""},
		{name: "unknown format", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			rep, err := reporter.New(reporter.Options{Writer: &buf, Format: tt.format})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, rep)
		})
	}
}

// sampleResult builds a two-file result; the first file exists on disk so
// the text reporter can show source context.
func sampleResult(t *testing.T) *runner.Result {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "readme.md")
	require.NoError(t, os.WriteFile(path, []byte("# This is a headr\n"), 0o600))

	spelling := issue.New(issue.CategorySpelling, path).
		Message(`Word "headr" is unknown or miss-spelled`).
		PushFix(`Consider changing "headr" to "head"`).
		Build()
	spelling.RowStart, spelling.RowEnd, spelling.ColStart, spelling.ColEnd = 1, 1, 3, 18
	spelling.OffsetStart, spelling.OffsetEnd = 12, 17

	return &runner.Result{
		Files: []runner.FileOutcome{
			{Path: path, Issues: []issue.Issue{spelling}},
			{Path: filepath.Join(dir, "broken.md"), Error: errors.New("link pass failed: boom")},
		},
		Stats: runner.Stats{
			FilesDiscovered:  2,
			FilesChecked:     1,
			FilesErrored:     1,
			FilesWithIssues:  1,
			IssuesTotal:      1,
			IssuesByCategory: map[issue.Category]int{issue.CategorySpelling: 1},
			IssuesBySeverity: map[issue.Severity]int{issue.SeverityWarning: 1},
		},
	}
}

func TestTextReporter_Report(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{
		Writer:      &buf,
		Color:       "never",
		ShowContext: true,
		ShowSummary: true,
		Width:       80,
	})

	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	assert.Contains(t, out, "readme.md (1 issue)")
	assert.Contains(t, out, `readme.md:1:3  warning  [Spelling]  Word "headr" is unknown or miss-spelled`)
	assert.Contains(t, out, "    # This is a headr\n      ^\n")
	assert.Contains(t, out, `- Consider changing "headr" to "head"`)
	assert.Contains(t, out, "broken.md: error: link pass failed: boom")
	assert.Contains(t, out, "1 issue (1 Spelling) in 1 file, 1 file failed")
}

func TestTextReporter_NoContext(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", Width: 80})

	_, err := rep.Report(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "^")
}

func TestTextReporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewTextReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	n, err := rep.Report(context.Background(), &runner.Result{})
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, "No files to check.\n", buf.String())
}

func TestJSONReporter_Report(t *testing.T) {
	result := sampleResult(t)

	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf})

	n, err := rep.Report(context.Background(), result)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	var out reporter.JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	require.Len(t, out.Files, 2)
	require.Len(t, out.Files[0].Issues, 1)
	assert.Equal(t, result.Files[0].Issues[0], out.Files[0].Issues[0])
	assert.Empty(t, out.Files[1].Issues)
	assert.Equal(t, "link pass failed: boom", out.Files[1].Error)
	assert.Equal(t, 1, out.Summary.TotalIssues)
	assert.Equal(t, 1, out.Summary.FilesErrored)
	assert.Equal(t, map[string]int{"Spelling": 1}, out.Summary.ByCategory)
	assert.Equal(t, map[string]int{"Warning": 1}, out.Summary.BySeverity)

	assert.Contains(t, buf.String(), `"row_num_start": 1`)
}

func TestJSONReporter_Compact(t *testing.T) {
	var buf bytes.Buffer
	rep := reporter.NewJSONReporter(reporter.Options{Writer: &buf, Compact: true})

	_, err := rep.Report(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), `"files":[]`)
}

func TestDiffReporter_Report(t *testing.T) {
	results := []format.Result{
		{Path: "same.md", Original: []byte("a\n"), Formatted: []byte("a\n")},
		{Path: "docs/x.md", Original: []byte("# T\n*  item\n"), Formatted: []byte("# T\n- item\n")},
	}

	var buf bytes.Buffer
	rep := reporter.NewDiffReporter(reporter.Options{Writer: &buf, Color: "never", ShowSummary: true})

	n, err := rep.Report(results)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	out := buf.String()
	assert.Contains(t, out, "diff --git a/docs/x.md b/docs/x.md\n")
	assert.Contains(t, out, "--- a/docs/x.md\n")
	assert.Contains(t, out, "+++ b/docs/x.md\n")
	assert.Contains(t, out, "-*  item\n")
	assert.Contains(t, out, "+- item\n")
	assert.NotContains(t, out, "same.md")
	assert.True(t, strings.HasSuffix(out, "1 file changed, 1 insertion(+), 1 deletion(-)\n"))
}
