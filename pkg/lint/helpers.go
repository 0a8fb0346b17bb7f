package lint

import (
	"bytes"

	"github.com/yaklabco/checkmark/pkg/mdast"
)

// LineStart returns the byte offset of the start of a 1-based line, or -1.
func LineStart(file *mdast.FileSnapshot, lineNum int) int {
	if file == nil || lineNum < 1 || lineNum > len(file.Lines) {
		return -1
	}
	return file.Lines[lineNum-1].StartOffset
}

// LinesCoveredBy marks every 1-based line that lies inside one of nodes.
// Index 0 is unused, so the slice has LineCount()+1 entries. Line-oriented
// rules use it to ignore text inside code and HTML blocks.
func LinesCoveredBy(file *mdast.FileSnapshot, nodes ...[]*mdast.Node) []bool {
	if file == nil {
		return nil
	}

	covered := make([]bool, file.LineCount()+1)
	for _, group := range nodes {
		for _, node := range group {
			pos := node.Position()
			if !pos.IsValid() {
				continue
			}
			for line := pos.StartLine; line <= min(pos.EndLine, file.LineCount()); line++ {
				covered[line] = true
			}
		}
	}
	return covered
}

// ExtractHTMLTagName returns the lowercase name of the element an HTML
// fragment opens. Closing tags, comments and declarations have no name.
func ExtractHTMLTagName(content []byte) string {
	content = bytes.TrimSpace(content)
	if len(content) < 2 || content[0] != '<' {
		return ""
	}

	name := content[1:]
	if end := bytes.IndexFunc(name, func(r rune) bool { return !isTagNameRune(r) }); end >= 0 {
		name = name[:end]
	}
	return string(bytes.ToLower(name))
}

func isTagNameRune(r rune) bool {
	return r == '-' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') || ('0' <= r && r <= '9')
}
