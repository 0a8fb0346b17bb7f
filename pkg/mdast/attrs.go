package mdast

// BlockAttrs carries the parsed details of a block node. Only the field
// matching the node's kind is set.
type BlockAttrs struct {
	HeadingLevel int // 1-6, NodeHeading
	List         *ListAttrs
	CodeBlock    *CodeBlockAttrs
}

// ListAttrs describes a NodeList. BulletMarker is "-", "+" or "*" and is
// empty for ordered lists.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string
	StartNumber  int
	Tight        bool
}

// CodeBlockAttrs describes a NodeCodeBlock. Info is the fence info string,
// empty for indented blocks.
type CodeBlockAttrs struct {
	Info     string
	Indented bool
}

// InlineAttrs carries the parsed details of an inline node.
type InlineAttrs struct {
	// Text is the decoded text of NodeText and NodeCodeSpan. Entity and
	// escape decoding means it may differ from the source bytes.
	Text []byte

	// Link is set for NodeLink, NodeImage and NodeAutoLink.
	Link *LinkAttrs

	// EmphasisLevel is 1 for emphasis and 2 for strong; Delimiter is the
	// '*' or '_' that opened it.
	EmphasisLevel int
	Delimiter     byte
}

// LinkAttrs is the target of a link, image or autolink as written.
type LinkAttrs struct {
	Destination string
	Title       string
}

// HeadingLevel returns the level of a heading node, or 0 for anything else.
func (n *Node) HeadingLevel() int {
	if n == nil || n.Kind != NodeHeading || n.Block == nil {
		return 0
	}
	return n.Block.HeadingLevel
}

// ListAttrs returns the attributes of a list node, or nil.
func (n *Node) ListAttrs() *ListAttrs {
	if n == nil || n.Kind != NodeList || n.Block == nil {
		return nil
	}
	return n.Block.List
}

// CodeBlockAttrs returns the attributes of a code block node, or nil.
func (n *Node) CodeBlockAttrs() *CodeBlockAttrs {
	if n == nil || n.Kind != NodeCodeBlock || n.Block == nil {
		return nil
	}
	return n.Block.CodeBlock
}

// Delimiter returns the '*' or '_' of an emphasis or strong node, or 0.
func (n *Node) Delimiter() byte {
	if n == nil || (n.Kind != NodeEmphasis && n.Kind != NodeStrong) || n.Inline == nil {
		return 0
	}
	return n.Inline.Delimiter
}
