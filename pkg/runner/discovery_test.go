package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/checkmark/pkg/runner"
)

// writeTree creates files (relative to dir) with placeholder content.
func writeTree(t *testing.T, dir string, files ...string) {
	t.Helper()

	for _, f := range files {
		path := filepath.Join(dir, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("# Doc\n"), 0o644))
	}
}

// relPaths converts discovered absolute paths back to slash paths under dir.
func relPaths(t *testing.T, dir string, files []string) []string {
	t.Helper()

	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	tree := []string{
		"readme.md",
		"notes.txt",
		"docs/guide.md",
		"docs/api.markdown",
		"docs/draft.wip.md",
		"vendor/pkg/doc.md",
		"node_modules/lib/readme.md",
		".hidden/secret.md",
		".dotfile.md",
		"src/main.go",
	}

	tests := []struct {
		name     string
		opts     runner.Options
		expected []string
	}{
		{
			name: "directory walk skips hidden entries and other extensions",
			opts: runner.Options{Paths: []string{"."}},
			expected: []string{
				"docs/api.markdown", "docs/draft.wip.md", "docs/guide.md",
				"node_modules/lib/readme.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name: "default path is the working directory",
			opts: runner.Options{},
			expected: []string{
				"docs/api.markdown", "docs/draft.wip.md", "docs/guide.md",
				"node_modules/lib/readme.md", "readme.md", "vendor/pkg/doc.md",
			},
		},
		{
			name:     "exclude directories",
			opts:     runner.Options{ExcludeGlobs: []string{"vendor/**", "node_modules/**", "docs/**"}},
			expected: []string{"readme.md"},
		},
		{
			name:     "exclude by base name",
			opts:     runner.Options{Paths: []string{"docs"}, ExcludeGlobs: []string{"*.wip.md"}},
			expected: []string{"docs/api.markdown", "docs/guide.md"},
		},
		{
			name:     "include restricts",
			opts:     runner.Options{IncludeGlobs: []string{"docs/**"}},
			expected: []string{"docs/api.markdown", "docs/draft.wip.md", "docs/guide.md"},
		},
		{
			name:     "custom extensions",
			opts:     runner.Options{Paths: []string{"."}, Extensions: []string{".txt"}},
			expected: []string{"notes.txt"},
		},
		{
			name:     "explicit file and overlapping directory are deduplicated",
			opts:     runner.Options{Paths: []string{"docs/guide.md", "docs", "docs/guide.md"}},
			expected: []string{"docs/api.markdown", "docs/draft.wip.md", "docs/guide.md"},
		},
		{
			name:     "explicit non-markdown file is ignored",
			opts:     runner.Options{Paths: []string{"notes.txt"}},
			expected: []string{},
		},
	}

	dir := t.TempDir()
	writeTree(t, dir, tree...)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := tc.opts
			opts.WorkingDir = dir

			files, err := runner.Discover(context.Background(), opts)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, relPaths(t, dir, files))
		})
	}
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, "readme.md")

	_, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"missing"},
		WorkingDir: dir,
	})
	require.Error(t, err)

	_, err = runner.Discover(context.Background(), runner.Options{
		WorkingDir:   dir,
		ExcludeGlobs: []string{"[unclosed"},
	})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDiscover_DirectorySymlinks(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks require privileges on windows")
	}

	dir := t.TempDir()
	external := t.TempDir()
	writeTree(t, dir, "readme.md")
	writeTree(t, external, "linked.md")
	require.NoError(t, os.Symlink(external, filepath.Join(dir, "ext")))

	files, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir})
	require.NoError(t, err)
	assert.Len(t, files, 1)

	files, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, FollowSymlinks: true})
	require.NoError(t, err)
	assert.Len(t, files, 2)
}

func TestDefaultExtensions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{".md", ".markdown"}, runner.DefaultExtensions())
}
