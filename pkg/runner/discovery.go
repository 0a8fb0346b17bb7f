package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover expands opts.Paths into the Markdown files to check. Directories
// are walked recursively, skipping hidden entries and excluded directories.
// Explicit file arguments are subject to the same extension and glob
// filters. The result holds absolute paths, sorted and without duplicates.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	m, err := newMatcher(opts.IncludeGlobs, opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	d := &discoverer{
		workDir:        workDir,
		extensions:     opts.Extensions,
		matcher:        m,
		followSymlinks: opts.FollowSymlinks,
		seen:           make(map[string]struct{}),
	}

	for _, input := range opts.Paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		abs := filepath.Clean(input)
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}

		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}
		if !info.IsDir() {
			d.consider(abs)
			continue
		}
		if err := d.walk(ctx, abs); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// discoverer accumulates matching files across several input paths.
type discoverer struct {
	workDir        string
	extensions     []string
	matcher        *matcher
	followSymlinks bool

	seen  map[string]struct{}
	files []string
}

// consider adds path when it passes the extension and glob filters.
func (d *discoverer) consider(path string) {
	if _, dup := d.seen[path]; dup {
		return
	}
	if !slices.Contains(d.extensions, strings.ToLower(filepath.Ext(path))) {
		return
	}
	rel := d.rel(path)
	if d.matcher.excluded(rel) || !d.matcher.included(rel) {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	rel, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// walk visits root recursively. Unreadable directories are skipped, as are
// broken symlinks. Directory symlinks are followed only when enabled, by
// walking their resolved target.
func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		switch {
		case entry.IsDir():
			if hidden || d.matcher.excluded(d.rel(path)) {
				return filepath.SkipDir
			}
			return nil
		case hidden:
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			return d.symlink(ctx, path)
		default:
			d.consider(path)
			return nil
		}
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) symlink(ctx context.Context, path string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil //nolint:nilerr // broken symlinks are skipped
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil //nolint:nilerr // unreachable targets are skipped
	}
	if !info.IsDir() {
		d.consider(path)
		return nil
	}
	if !d.followSymlinks {
		return nil
	}
	return d.walk(ctx, target)
}

// matcher holds compiled include and exclude globs. Patterns use "/" as
// separator: "*" stays within one path segment, "**" crosses segments.
// A pattern also matches a path whose base name it matches, and "dir/**"
// matches "dir" itself.
type matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func newMatcher(include, exclude []string) (*matcher, error) {
	inc, err := compileGlobs(include)
	if err != nil {
		return nil, err
	}
	exc, err := compileGlobs(exclude)
	if err != nil {
		return nil, err
	}
	return &matcher{include: inc, exclude: exc}, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	out := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile glob %q: %w", pattern, err)
		}
		out = append(out, g)

		if dir, ok := strings.CutSuffix(pattern, "/**"); ok && dir != "" {
			if g, err := glob.Compile(dir, '/'); err == nil {
				out = append(out, g)
			}
		}
	}
	return out, nil
}

func (m *matcher) excluded(relPath string) bool {
	return matchAny(m.exclude, relPath)
}

func (m *matcher) included(relPath string) bool {
	return len(m.include) == 0 || matchAny(m.include, relPath)
}

func matchAny(globs []glob.Glob, relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	base := path.Base(relPath)
	for _, g := range globs {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}
