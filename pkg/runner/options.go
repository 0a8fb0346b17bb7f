// Package runner checks many Markdown files concurrently.
package runner

import (
	"runtime"
	"strings"
)

// Options controls file discovery and concurrency.
type Options struct {
	// Paths are files or directories to check, relative to WorkingDir.
	// Empty means WorkingDir itself.
	Paths []string

	// WorkingDir resolves relative Paths and anchors glob matching.
	// Empty means the process working directory.
	WorkingDir string

	// Extensions are the Markdown file extensions, matched case-insensitively.
	// Empty means DefaultExtensions.
	Extensions []string

	// IncludeGlobs restrict discovery to matching files when non-empty.
	// ExcludeGlobs skip matching files and directories. Both match the
	// slash-separated path relative to WorkingDir.
	IncludeGlobs []string
	ExcludeGlobs []string

	FollowSymlinks bool

	// Jobs bounds the number of files checked at once. Zero or negative
	// means one per CPU.
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// withDefaults fills unset fields and normalizes extensions to lowercase
// with a leading dot.
func (o Options) withDefaults() Options {
	if len(o.Paths) == 0 {
		o.Paths = []string{"."}
	}
	if len(o.Extensions) == 0 {
		o.Extensions = DefaultExtensions()
	}

	exts := make([]string, 0, len(o.Extensions))
	for _, ext := range o.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	o.Extensions = exts
	return o
}

// workers returns the worker count for checking n files.
func workers(jobs, n int) int {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return max(1, min(jobs, n))
}
