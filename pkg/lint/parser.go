package lint

import (
	"context"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Parser turns Markdown source into a FileSnapshot. The check pipeline parses
// each document once and shares the snapshot between the lint engine and the
// prose passes.
type Parser interface {
	// Parse must be deterministic and free of I/O. On success the snapshot
	// holds path and content unchanged, every node's File points back at it,
	// and mdast.Validate accepts its tree. Unrecoverable input yields a
	// *mdast.ParseError.
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)

// Parse calls f.
func (f ParserFunc) Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error) {
	return f(ctx, path, content)
}
