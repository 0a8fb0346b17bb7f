package format

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/yuin/goldmark"
	xhtml "golang.org/x/net/html"
)

// ErrContentChanged is returned by WriteFile when the formatted document
// would render differently from the original.
var ErrContentChanged = errors.New("formatting changes rendered content")

// renderedEqual reports whether a and b render to the same HTML. Whitespace
// and paragraph wrappers are ignored, so tight and loose lists compare equal.
func renderedEqual(md goldmark.Markdown, a, b []byte) (bool, error) {
	want, err := fingerprint(md, a)
	if err != nil {
		return false, err
	}
	got, err := fingerprint(md, b)
	if err != nil {
		return false, err
	}
	return slices.Equal(want, got), nil
}

func fingerprint(md goldmark.Markdown, src []byte) ([]string, error) {
	var rendered bytes.Buffer
	if err := md.Convert(src, &rendered); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var tokens []string
	z := xhtml.NewTokenizer(&rendered)
	for {
		switch z.Next() {
		case xhtml.ErrorToken:
			if errors.Is(z.Err(), io.EOF) {
				return tokens, nil
			}
			return nil, fmt.Errorf("tokenize html: %w", z.Err())
		case xhtml.TextToken:
			tokens = append(tokens, strings.Fields(string(z.Text()))...)
		case xhtml.StartTagToken, xhtml.EndTagToken, xhtml.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data == "p" {
				continue
			}
			tokens = append(tokens, tok.String())
		default:
		}
	}
}
