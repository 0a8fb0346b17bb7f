// Package check runs the format, link, grammar, spelling and lint passes
// over a Markdown document and merges their issues.
package check

import (
	"context"
	"fmt"
	"sync"

	"github.com/yaklabco/checkmark/pkg/fsutil"
	"github.com/yaklabco/checkmark/pkg/lint"
	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Document is one Markdown file under check. It is parsed at most once.
type Document struct {
	Path    string
	Content []byte

	parser lint.Parser

	once     sync.Once
	snapshot *mdast.FileSnapshot
	err      error
}

// NewDocument wraps in-memory content.
func NewDocument(path string, content []byte, parser lint.Parser) *Document {
	return &Document{Path: path, Content: content, parser: parser}
}

// LoadDocument reads path from disk.
func LoadDocument(ctx context.Context, path string, parser lint.Parser) (*Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return NewDocument(path, content, parser), nil
}

// Snapshot returns the parsed document. Parse failures are returned as is
// on every call.
func (d *Document) Snapshot(ctx context.Context) (*mdast.FileSnapshot, error) {
	d.once.Do(func() {
		if d.parser == nil {
			d.err = fmt.Errorf("parse %s: no parser configured", d.Path)
			return
		}
		d.snapshot, d.err = d.parser.Parse(ctx, d.Path, d.Content)
		if d.err != nil {
			d.err = fmt.Errorf("parse error: %w", d.err)
		}
	})
	return d.snapshot, d.err
}
