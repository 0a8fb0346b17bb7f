// Package goldmark parses Markdown into mdast trees with the goldmark library.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Supported flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

//nolint:gochecknoglobals // Read-only flavor table.
var flavorExtensions = map[string][]goldmark.Extender{
	FlavorCommonMark: nil,
	FlavorGFM:        {extension.GFM},
}

// Parser is a lint.Parser backed by goldmark. It is safe for concurrent use.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New returns a parser for flavor. Unknown flavors fall back to GFM.
func New(flavor string) *Parser {
	exts, ok := flavorExtensions[flavor]
	if !ok {
		flavor, exts = FlavorGFM, flavorExtensions[FlavorGFM]
	}
	return &Parser{
		flavor: flavor,
		md:     goldmark.New(goldmark.WithExtensions(exts...)),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a snapshot of content whose tree has passed mdast.Validate.
// The snapshot owns a private copy of content. Panics inside goldmark and
// span violations are reported as *mdast.ParseError.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (snapshot *mdast.FileSnapshot, err error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			snapshot = nil
			err = &mdast.ParseError{Path: path, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	snapshot = mdast.NewFileSnapshot(path, bytes.Clone(content))
	gmDoc := p.md.Parser().Parse(text.NewReader(snapshot.Content), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	snapshot.Root = newMapper(snapshot.Content).mapDocument(gmDoc)
	mdast.SetFile(snapshot.Root, snapshot)

	if err := mdast.Validate(snapshot.Root, len(snapshot.Content)); err != nil {
		return nil, &mdast.ParseError{Path: path, Err: err}
	}
	return snapshot, nil
}
