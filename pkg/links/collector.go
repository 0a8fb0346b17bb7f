// Package links gathers link references from parsed Markdown and resolves
// them against the network and the local filesystem.
package links

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// Kind records where a link was found.
type Kind string

const (
	KindInline   Kind = "inline"
	KindImage    Kind = "image"
	KindAutoLink Kind = "autolink"
	KindVerbatim Kind = "verbatim"
	KindBare     Kind = "bare"
)

// Link is one discovered reference.
type Link struct {
	URI      string
	Kind     Kind
	Position mdast.Position
}

// Collection maps URIs to the first occurrence of each, and remembers the
// order in which URIs were first seen.
type Collection struct {
	order []string
	byURI map[string]Link
}

// Len returns the number of distinct URIs.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.order)
}

// Get returns the link recorded for uri.
func (c *Collection) Get(uri string) (Link, bool) {
	if c == nil {
		return Link{}, false
	}
	link, ok := c.byURI[uri]
	return link, ok
}

// URIs returns the distinct URIs in discovery order.
func (c *Collection) URIs() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.order...)
}

// Links returns the retained links in discovery order.
func (c *Collection) Links() []Link {
	if c == nil {
		return nil
	}
	out := make([]Link, 0, len(c.order))
	for _, uri := range c.order {
		out = append(out, c.byURI[uri])
	}
	return out
}

func (c *Collection) add(link Link) {
	if _, seen := c.byURI[link.URI]; seen {
		return
	}
	c.byURI[link.URI] = link
	c.order = append(c.order, link.URI)
}

// verbatimURL finds URLs in text the parser does not expose as links:
// code, raw HTML attributes, and plain text when linkify is off.
var verbatimURL = regexp.MustCompile(`https?://[^\s<>"'` + "`" + `()\[\]{}]+`)

// Collector gathers and filters link references.
type Collector struct {
	ignore []glob.Glob
}

// NewCollector compiles the ignore wildcards. "*" matches any run of
// characters, "/" included.
func NewCollector(ignoreWildcards []string) (*Collector, error) {
	c := &Collector{ignore: make([]glob.Glob, 0, len(ignoreWildcards))}
	for _, pattern := range ignoreWildcards {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile ignore wildcard %q: %w", pattern, err)
		}
		c.ignore = append(c.ignore, g)
	}
	return c, nil
}

// Ignored reports whether uri matches an ignore wildcard. A trailing "/" is
// stripped before matching so a pattern covers both forms.
func (c *Collector) Ignored(uri string) bool {
	stripped := strings.TrimSuffix(uri, "/")
	for _, g := range c.ignore {
		if g.Match(stripped) {
			return true
		}
	}
	return false
}

// Collect walks the document and returns every non-ignored link,
// deduplicated by exact URI.
func (c *Collector) Collect(file *mdast.FileSnapshot) *Collection {
	coll := &Collection{byURI: make(map[string]Link)}
	if file == nil || file.Root == nil {
		return coll
	}

	//nolint:errcheck // Walk visitor never returns error
	mdast.Walk(file.Root, func(node *mdast.Node) error {
		for _, link := range linksIn(node) {
			if link.URI == "" || c.Ignored(link.URI) {
				continue
			}
			coll.add(link)
		}
		// A URL in a link label is not a reference of its own.
		if node.Kind == mdast.NodeLink || node.Kind == mdast.NodeImage {
			return mdast.SkipChildren
		}
		return nil
	})

	return coll
}

func linksIn(node *mdast.Node) []Link {
	switch node.Kind {
	case mdast.NodeLink, mdast.NodeImage, mdast.NodeAutoLink:
		if node.Inline == nil || node.Inline.Link == nil {
			return nil
		}
		kind := KindInline
		switch node.Kind {
		case mdast.NodeImage:
			kind = KindImage
		case mdast.NodeAutoLink:
			kind = KindAutoLink
		}
		return []Link{{
			URI:      strings.TrimSpace(node.Inline.Link.Destination),
			Kind:     kind,
			Position: node.Position(),
		}}

	case mdast.NodeCodeBlock, mdast.NodeCodeSpan, mdast.NodeHTMLBlock, mdast.NodeHTMLInline:
		return verbatimLinks(node, KindVerbatim)

	// GFM linkify turns bare URLs into autolinks. Without it they stay in
	// plain text.
	case mdast.NodeText:
		return verbatimLinks(node, KindBare)

	default:
		return nil
	}
}

// verbatimLinks scans the raw source of node for URLs.
func verbatimLinks(node *mdast.Node, kind Kind) []Link {
	text := node.Text()
	if len(text) == 0 || node.File == nil {
		return nil
	}

	var out []Link
	for _, loc := range verbatimURL.FindAllIndex(text, -1) {
		start, end := loc[0], loc[1]
		for end > start && strings.ContainsRune(".,;:!?", rune(text[end-1])) {
			end--
		}
		out = append(out, Link{
			URI:      string(text[start:end]),
			Kind:     kind,
			Position: node.File.PositionAt(node.Span.Start+start, node.Span.Start+end),
		})
	}
	return out
}
