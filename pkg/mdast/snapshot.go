// Package mdast is the position-annotated Markdown tree every checkmark pass
// works on. A FileSnapshot pairs the raw bytes with a line index and the
// parsed tree, and every Node span maps back to exact source bytes.
package mdast

// FileSnapshot is an immutable view of one Markdown document.
type FileSnapshot struct {
	Path    string // may be empty for in-memory content
	Content []byte
	Lines   []LineInfo

	// Root is the Document node, nil until a parser fills it in.
	Root *Node
}

// LineInfo locates one line in Content. NewlineStart is where the line
// ending ("\n" or "\r\n") begins and equals EndOffset on an unterminated
// last line.
type LineInfo struct {
	StartOffset  int
	NewlineStart int
	EndOffset    int
}

// NewFileSnapshot indexes content without parsing it.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
