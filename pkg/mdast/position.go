package mdast

// Span is a half-open byte range [Start, End) in the source content.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return other.Start >= s.Start && other.End <= s.End
}

// Position locates a range of source text both as 1-based line/column pairs
// and as 0-based byte offsets. EndColumn and EndOffset are exclusive.
type Position struct {
	StartLine   int `json:"start_line"`
	StartColumn int `json:"start_column"`
	EndLine     int `json:"end_line"`
	EndColumn   int `json:"end_column"`
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}

// IsValid returns true if the line and column values are positive and the
// offsets are ordered.
func (p Position) IsValid() bool {
	return p.StartLine > 0 && p.StartColumn > 0 &&
		p.EndLine > 0 && p.EndColumn > 0 &&
		p.EndOffset >= p.StartOffset
}

// Span returns the byte range covered by the position.
func (p Position) Span() Span {
	return Span{Start: p.StartOffset, End: p.EndOffset}
}

// Position returns the line/column/offset location of the node.
// Returns the zero Position if the node has no associated file.
func (n *Node) Position() Position {
	if n.File == nil {
		return Position{}
	}
	return n.File.PositionAt(n.Span.Start, n.Span.End)
}

// Text returns the source text spanned by the node.
// Returns nil if the node has no associated file.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}
	if n.Span.Start < 0 || n.Span.End > len(n.File.Content) || n.Span.End < n.Span.Start {
		return nil
	}
	return n.File.Content[n.Span.Start:n.Span.End]
}
