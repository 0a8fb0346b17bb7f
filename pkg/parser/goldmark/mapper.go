package goldmark

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// mapper converts a goldmark AST into an mdast.Node tree and recovers the
// source span of every node.
//
// goldmark only records the text segments of blocks and inlines, so markers
// (heading hashes, setext underlines, list bullets, fences, emphasis
// delimiters, link brackets) are recovered by scanning the source around
// those segments. Nodes that cannot be located get a zero-width span at the
// end of their previous sibling, or at the start of their parent.
type mapper struct {
	src   source
	known map[*mdast.Node]bool

	// blockPos is the end of the last located leaf block.
	blockPos int

	// inlinePos is the end of the last located inline.
	inlinePos int
}

// newMapper creates a new mapper for the given content.
func newMapper(content []byte) *mapper {
	return &mapper{
		src:   source(content),
		known: make(map[*mdast.Node]bool),
	}
}

// mapDocument converts a goldmark document node to an mdast.Node tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.setSpan(doc, 0, len(m.src))
	m.mapChildren(gmDoc, doc)
	m.fillUnknown(doc)
	return doc
}

// mapChildren maps all children of a goldmark node and appends them to parent.
func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		node := m.mapNode(child)
		if node == nil {
			continue
		}
		mdast.AppendChild(parent, node)

		if text, ok := child.(*ast.Text); ok && child.NextSibling() != nil &&
			(text.SoftLineBreak() || text.HardLineBreak()) {
			mdast.AppendChild(parent, m.mapBreak(text))
		}
	}
}

// mapNode converts a single goldmark node to an mdast.Node.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	// Block-level nodes.
	case *ast.Heading:
		return m.mapHeading(gmn)
	case *ast.Paragraph, *ast.TextBlock:
		return m.mapParagraph(gmNode)
	case *ast.List:
		return m.mapList(gmn)
	case *ast.ListItem:
		return m.mapContainer(gmn, mdast.NodeListItem, m.listMarkerStart)
	case *ast.Blockquote:
		return m.mapContainer(gmn, mdast.NodeBlockquote, m.quoteMarkerStart)
	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)
	case *ast.CodeBlock:
		return m.mapIndentedCodeBlock(gmn)
	case *ast.ThematicBreak:
		return m.mapThematicBreak()
	case *ast.HTMLBlock:
		return m.mapHTMLBlock(gmn)

	// Inline-level nodes.
	case *ast.Text:
		return m.mapText(gmn)
	case *ast.String:
		node := mdast.NewNode(mdast.NodeText)
		node.Inline = &mdast.InlineAttrs{Text: gmn.Value}
		return node
	case *ast.Emphasis:
		return m.mapEmphasis(gmn)
	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn)
	case *ast.Link:
		return m.mapLink(gmn, mdast.NodeLink, gmn.Destination, gmn.Title)
	case *ast.Image:
		return m.mapLink(gmn, mdast.NodeImage, gmn.Destination, gmn.Title)
	case *ast.AutoLink:
		return m.mapAutoLink(gmn)
	case *ast.RawHTML:
		return m.mapRawHTML(gmn)

	// GFM extension nodes.
	case *east.TaskCheckBox:
		return nil
	case *east.Strikethrough:
		node := m.mapContainer(gmn, mdast.NodeRaw, nil)
		m.extendDelimiters(node, '~')
		return node
	case *east.Table:
		return m.mapContainer(gmn, mdast.NodeTable, nil)

	default:
		// Table sections, cells and anything unrecognized.
		return m.mapContainer(gmNode, mdast.NodeRaw, nil)
	}
}

// mapContainer maps a node whose span is the union of its children, optionally
// widened to include a leading marker.
func (m *mapper) mapContainer(gmNode ast.Node, kind mdast.NodeKind, marker func(int) int) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)
	m.coverChildren(node)

	if marker != nil && m.known[node] {
		node.Span.Start = marker(node.Span.Start)
	}
	return node
}

func (m *mapper) mapHeading(heading *ast.Heading) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHeading)
	node.Block = &mdast.BlockAttrs{HeadingLevel: heading.Level}

	lines := heading.Lines()
	if lines.Len() == 0 {
		// Empty ATX heading such as "#".
		if start := m.src.findLine(m.nextBlockLine(), isATXHeadingLine); start >= 0 {
			m.setBlockSpan(node, start, m.src.trimRight(start, m.src.lineEnd(start)))
		}
	} else {
		first := lines.At(0)
		last := lines.At(lines.Len() - 1)

		marker := m.src.backOverBlank(first.Start)
		if marker > 0 && m.src[marker-1] == '#' {
			start := marker
			for start > 0 && m.src[start-1] == '#' {
				start--
			}
			m.setBlockSpan(node, start, m.src.trimRight(start, m.src.lineEnd(first.Start)))
		} else {
			// Setext: text lines followed by the underline.
			underline := m.src.nextLine(last.Start)
			m.setBlockSpan(node, first.Start, m.src.trimRight(first.Start, m.src.lineEnd(underline)))
		}
	}

	m.enterInline(node)
	m.mapChildren(heading, node)
	m.coverChildren(node)
	return node
}

func (m *mapper) mapParagraph(gmNode ast.Node) *mdast.Node {
	node := mdast.NewNode(mdast.NodeParagraph)

	if lines := gmNode.Lines(); lines.Len() > 0 {
		start := lines.At(0).Start
		m.setBlockSpan(node, start, m.src.trimRight(start, lines.At(lines.Len()-1).Stop))
	}

	m.enterInline(node)
	m.mapChildren(gmNode, node)
	m.coverChildren(node)
	return node
}

func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if !list.IsOrdered() {
		attrs.BulletMarker = string(list.Marker)
	}
	node.Block = &mdast.BlockAttrs{List: attrs}

	m.mapChildren(list, node)
	m.coverChildren(node)
	return node
}

// listMarkerStart moves start back over a bullet or ordered-list marker.
func (m *mapper) listMarkerStart(start int) int {
	pos := m.src.backOverBlank(start)
	if pos == 0 {
		return start
	}
	switch m.src[pos-1] {
	case '-', '+', '*':
		return pos - 1
	case '.', ')':
		digits := pos - 1
		for digits > 0 && m.src[digits-1] >= '0' && m.src[digits-1] <= '9' {
			digits--
		}
		if digits < pos-1 {
			return digits
		}
	}
	return start
}

// quoteMarkerStart moves start back over a '>' marker.
func (m *mapper) quoteMarkerStart(start int) int {
	pos := m.src.backOverBlank(start)
	if pos > 0 && m.src[pos-1] == '>' {
		return pos - 1
	}
	return start
}

func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.src))
	}
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Info: info}}

	lines := codeBlock.Lines()

	open := -1
	if lines.Len() > 0 {
		if contentLine := m.src.lineStart(lines.At(0).Start); contentLine > 0 {
			fenceLine := m.src.lineStart(contentLine - 1)
			if begin := m.src.contentStart(fenceLine); isFenceLine(m.src[begin:m.src.lineEnd(begin)]) {
				open = begin
			}
		}
	} else {
		open = m.src.findLine(m.nextBlockLine(), isFenceLine)
	}
	if open < 0 {
		return node
	}

	fenceChar, fenceLen := m.src.fenceAt(open)
	end := m.src.trimRight(open, m.src.lineEnd(open))
	after := m.src.nextLine(open)
	if lines.Len() > 0 {
		last := lines.At(lines.Len() - 1)
		end = max(end, m.src.trimRight(open, last.Stop))
		after = m.src.nextLine(last.Start)
	}

	// Closing fence, if the block was closed before the end of its container.
	if after < len(m.src) {
		begin := m.src.contentStart(after)
		if ch, n := m.src.fenceAt(begin); ch == fenceChar && n >= fenceLen {
			end = m.src.trimRight(begin, m.src.lineEnd(begin))
		}
	}

	m.setBlockSpan(node, open, end)
	return node
}

func (m *mapper) mapIndentedCodeBlock(codeBlock *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Indented: true}}

	if lines := codeBlock.Lines(); lines.Len() > 0 {
		start := lines.At(0).Start
		m.setBlockSpan(node, start, m.src.trimRight(start, lines.At(lines.Len()-1).Stop))
	}
	return node
}

func (m *mapper) mapThematicBreak() *mdast.Node {
	node := mdast.NewNode(mdast.NodeThematicBreak)
	if start := m.src.findLine(m.nextBlockLine(), isThematicBreak); start >= 0 {
		m.setBlockSpan(node, start, m.src.trimRight(start, m.src.lineEnd(start)))
	}
	return node
}

func (m *mapper) mapHTMLBlock(block *ast.HTMLBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLBlock)

	lines := block.Lines()
	if lines.Len() == 0 {
		return node
	}

	start := lines.At(0).Start
	end := lines.At(lines.Len() - 1).Stop
	if block.HasClosure() {
		end = max(end, block.ClosureLine.Stop)
	}
	m.setBlockSpan(node, start, m.src.trimRight(start, end))
	return node
}

func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	node := mdast.NewNode(mdast.NodeText)
	node.Inline = &mdast.InlineAttrs{Text: textNode.Value(m.src)}
	m.setInlineSpan(node, textNode.Segment.Start, textNode.Segment.Stop)
	return node
}

// mapBreak creates the line break that follows a text node, spanning any
// trailing spaces or backslash and the line ending.
func (m *mapper) mapBreak(textNode *ast.Text) *mdast.Node {
	kind := mdast.NodeSoftBreak
	if textNode.HardLineBreak() {
		kind = mdast.NodeHardBreak
	}
	node := mdast.NewNode(kind)
	m.setInlineSpan(node, textNode.Segment.Stop, m.src.nextLine(textNode.Segment.Stop))
	return node
}

func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind := mdast.NodeEmphasis
	if emphasis.Level >= 2 {
		kind = mdast.NodeStrong
	}

	node := mdast.NewNode(kind)
	node.Inline = &mdast.InlineAttrs{EmphasisLevel: emphasis.Level}
	m.mapChildren(emphasis, node)
	m.coverChildren(node)

	if !m.known[node] {
		return node
	}

	start := node.Span.Start - emphasis.Level
	end := node.Span.End + emphasis.Level
	if start < 0 || end > len(m.src) {
		return node
	}
	delim := m.src[start]
	if (delim == '*' || delim == '_') && m.src[end-1] == delim {
		node.Inline.Delimiter = delim
		m.setInlineSpan(node, start, end)
	}
	return node
}

func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	start, end := -1, -1
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		textNode, ok := child.(*ast.Text)
		if !ok {
			continue
		}
		text = append(text, textNode.Value(m.src)...)
		if start < 0 || textNode.Segment.Start < start {
			start = textNode.Segment.Start
		}
		end = max(end, textNode.Segment.Stop)
	}
	node.Inline = &mdast.InlineAttrs{Text: text}

	if start < 0 {
		return node
	}
	for start > 0 && m.src[start-1] == ' ' {
		start--
	}
	for start > 0 && m.src[start-1] == '`' {
		start--
	}
	for end < len(m.src) && m.src[end] == ' ' {
		end++
	}
	for end < len(m.src) && m.src[end] == '`' {
		end++
	}
	m.setInlineSpan(node, start, end)
	return node
}

func (m *mapper) mapLink(gmNode ast.Node, kind mdast.NodeKind, destination, title []byte) *mdast.Node {
	node := mdast.NewNode(kind)
	node.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{
		Destination: string(destination),
		Title:       string(title),
	}}

	m.mapChildren(gmNode, node)
	m.coverChildren(node)

	prefix := "["
	if kind == mdast.NodeImage {
		prefix = "!["
	}

	if !m.known[node] {
		// Empty label: "[](dest)".
		idx := bytes.Index(m.src[m.inlinePos:], []byte(prefix+"]("))
		if idx < 0 {
			return node
		}
		open := m.inlinePos + idx
		if end := m.src.matchParen(open + len(prefix) + 1); end > 0 {
			m.setInlineSpan(node, open, end)
		}
		return node
	}

	open := m.src.backOverBlank(node.Span.Start)
	if open < len(prefix) || string(m.src[open-len(prefix):open]) != prefix {
		return node
	}
	open -= len(prefix)

	closeIdx := node.Span.End
	for closeIdx < len(m.src) && isSpace(m.src[closeIdx]) {
		closeIdx++
	}
	if closeIdx >= len(m.src) || m.src[closeIdx] != ']' {
		return node
	}

	end := closeIdx + 1
	if end < len(m.src) {
		switch m.src[end] {
		case '(':
			if e := m.src.matchParen(end); e > 0 {
				end = e
			}
		case '[':
			if i := bytes.IndexByte(m.src[end:], ']'); i >= 0 {
				end += i + 1
			}
		}
	}
	m.setInlineSpan(node, open, end)
	return node
}

func (m *mapper) mapAutoLink(autoLink *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeAutoLink)

	label := autoLink.Label(m.src)
	dest := string(autoLink.URL(m.src))
	// goldmark leaves the scheme off email autolinks.
	if autoLink.AutoLinkType == ast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(dest), "mailto:") {
		dest = "mailto:" + dest
	}
	node.Inline = &mdast.InlineAttrs{
		Text: label,
		Link: &mdast.LinkAttrs{Destination: dest},
	}

	if len(label) == 0 {
		return node
	}
	idx := bytes.Index(m.src[m.inlinePos:], label)
	if idx < 0 {
		return node
	}

	start := m.inlinePos + idx
	end := start + len(label)
	if start > 0 && m.src[start-1] == '<' && end < len(m.src) && m.src[end] == '>' {
		start--
		end++
	}
	m.setInlineSpan(node, start, end)
	return node
}

func (m *mapper) mapRawHTML(raw *ast.RawHTML) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHTMLInline)

	var text []byte
	start, end := -1, -1
	for i := range raw.Segments.Len() {
		seg := raw.Segments.At(i)
		text = append(text, seg.Value(m.src)...)
		if start < 0 || seg.Start < start {
			start = seg.Start
		}
		end = max(end, seg.Stop)
	}
	node.Inline = &mdast.InlineAttrs{Text: text}

	if start >= 0 {
		m.setInlineSpan(node, start, end)
	}
	return node
}

// extendDelimiters widens a located node over runs of delim on both sides.
func (m *mapper) extendDelimiters(node *mdast.Node, delim byte) {
	if !m.known[node] {
		return
	}
	start, end := node.Span.Start, node.Span.End
	for start > 0 && m.src[start-1] == delim {
		start--
	}
	for end < len(m.src) && m.src[end] == delim {
		end++
	}
	m.setInlineSpan(node, start, end)
}

func (m *mapper) setSpan(node *mdast.Node, start, end int) {
	start = min(max(start, 0), len(m.src))
	end = min(max(end, start), len(m.src))
	node.Span = mdast.Span{Start: start, End: end}
	m.known[node] = true
}

func (m *mapper) setBlockSpan(node *mdast.Node, start, end int) {
	m.setSpan(node, start, end)
	m.blockPos = max(m.blockPos, node.Span.End)
}

func (m *mapper) setInlineSpan(node *mdast.Node, start, end int) {
	m.setSpan(node, start, end)
	m.inlinePos = max(m.inlinePos, node.Span.End)
}

// enterInline positions the inline cursor at the start of a located block.
func (m *mapper) enterInline(node *mdast.Node) {
	if m.known[node] {
		m.inlinePos = max(m.inlinePos, node.Span.Start)
	}
}

// nextBlockLine returns where to search for a block without text segments.
func (m *mapper) nextBlockLine() int {
	if m.blockPos == 0 {
		return 0
	}
	return m.src.nextLine(m.blockPos)
}

// coverChildren widens node's span to contain every located child.
func (m *mapper) coverChildren(node *mdast.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		if !m.known[child] {
			continue
		}
		if !m.known[node] {
			node.Span = child.Span
			m.known[node] = true
			continue
		}
		node.Span.Start = min(node.Span.Start, child.Span.Start)
		node.Span.End = max(node.Span.End, child.Span.End)
	}
}

// fillUnknown gives every unlocated node a zero-width span at the end of its
// previous sibling, or at the start of its parent.
func (m *mapper) fillUnknown(node *mdast.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		if !m.known[child] {
			pos := node.Span.Start
			if child.Prev != nil {
				pos = child.Prev.Span.End
			}
			child.Span = mdast.Span{Start: pos, End: pos}
			m.known[child] = true
		}
		m.fillUnknown(child)
	}
}
