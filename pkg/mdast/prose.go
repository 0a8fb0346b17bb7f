package mdast

import (
	"cmp"
	"slices"
)

// ProseSpans returns the source ranges of prose in source order. Adjacent
// text siblings form one range. Code, raw HTML, images and autolinks are
// not prose.
func ProseSpans(root *Node) []Span {
	var spans []Span

	//nolint:errcheck // the visitor only returns SkipChildren
	Walk(root, func(node *Node) error {
		switch node.Kind {
		case NodeCodeBlock, NodeCodeSpan, NodeHTMLBlock, NodeHTMLInline, NodeAutoLink, NodeImage:
			return SkipChildren
		}

		open := -1
		for child := node.FirstChild; child != nil; child = child.Next {
			if child.Kind != NodeText || child.Span.IsEmpty() {
				open = -1
				continue
			}
			if open >= 0 && spans[open].End == child.Span.Start {
				spans[open].End = child.Span.End
				continue
			}
			spans = append(spans, child.Span)
			open = len(spans) - 1
		}
		return nil
	})

	slices.SortStableFunc(spans, func(a, b Span) int {
		return cmp.Compare(a.Start, b.Start)
	})
	return spans
}
