package runner_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/issue"
	"github.com/yaklabco/checkmark/pkg/runner"
)

// stubChecker returns one issue per file unless the file is listed in fail.
type stubChecker struct {
	fail  map[string]error
	calls atomic.Int32

	mu       sync.Mutex
	inFlight int
	peak     int
}

func (c *stubChecker) CheckFile(_ context.Context, path string) ([]issue.Issue, error) {
	c.calls.Add(1)

	c.mu.Lock()
	c.inFlight++
	c.peak = max(c.peak, c.inFlight)
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.inFlight--
		c.mu.Unlock()
	}()

	if err, ok := c.fail[filepath.Base(path)]; ok {
		return nil, err
	}
	if filepath.Base(path) == "clean.md" {
		return nil, nil
	}
	return []issue.Issue{
		issue.New(issue.CategorySpelling, path).Message("word").Build(),
		issue.New(issue.CategoryLint, path).Severity(issue.SeverityError).Message("rule").Build(),
	}, nil
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "a.md", "b.md", "clean.md", "docs/c.md", "docs/broken.md")

	boom := errors.New("boom")
	checker := &stubChecker{fail: map[string]error{"broken.md": boom}}

	result, err := runner.New(checker).Run(context.Background(), runner.Options{WorkingDir: dir, Jobs: 3})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b.md", "clean.md", "docs/broken.md", "docs/c.md"},
		relPaths(t, dir, outcomePaths(result)))

	assert.Equal(t, runner.Stats{
		FilesDiscovered: 5,
		FilesChecked:    4,
		FilesErrored:    1,
		FilesWithIssues: 3,
		IssuesTotal:     6,
		IssuesByCategory: map[issue.Category]int{
			issue.CategorySpelling: 3,
			issue.CategoryLint:     3,
		},
		IssuesBySeverity: map[issue.Severity]int{
			issue.SeverityWarning: 3,
			issue.SeverityError:   3,
		},
	}, result.Stats)

	assert.True(t, result.HasIssues())
	assert.True(t, result.HasErrors())
	assert.Len(t, result.Issues(), 6)
	require.ErrorIs(t, result.Files[3].Error, boom)
	assert.LessOrEqual(t, checker.peak, 3)
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	checker := &stubChecker{}
	result, err := runner.New(checker).Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	require.NoError(t, err)

	assert.Empty(t, result.Files)
	assert.False(t, result.HasIssues())
	assert.Zero(t, checker.calls.Load())
}

func TestRunner_RunFiles_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := runner.New(&stubChecker{}).RunFiles(ctx, []string{"a.md", "b.md"}, 1)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, result)
}

func TestResult_NilSafe(t *testing.T) {
	t.Parallel()

	var result *runner.Result
	assert.False(t, result.HasIssues())
	assert.False(t, result.HasErrors())
	assert.Nil(t, result.Issues())
}

func outcomePaths(result *runner.Result) []string {
	out := make([]string, 0, len(result.Files))
	for _, f := range result.Files {
		out = append(out, f.Path)
	}
	return out
}
