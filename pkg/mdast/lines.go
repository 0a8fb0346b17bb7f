package mdast

import (
	"bytes"
	"slices"
)

// BuildLines indexes the lines of content. LF and CRLF endings are both
// recognised, and a trailing newline opens an empty final line.
func BuildLines(content []byte) []LineInfo {
	lines := []LineInfo{}
	if len(content) == 0 {
		return lines
	}

	start := 0
	for {
		rel := bytes.IndexByte(content[start:], '\n')
		if rel < 0 {
			return append(lines, LineInfo{StartOffset: start, NewlineStart: len(content), EndOffset: len(content)})
		}
		lf := start + rel
		ending := lf
		if lf > start && content[lf-1] == '\r' {
			ending--
		}
		lines = append(lines, LineInfo{StartOffset: start, NewlineStart: ending, EndOffset: lf + 1})
		start = lf + 1
	}
}

// LineCount returns the number of lines in the file.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to a 1-based line and byte column. Offsets at
// or past the end of the content land on the last line. A negative offset
// yields (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}

	idx, _ := slices.BinarySearchFunc(f.Lines, offset, func(li LineInfo, off int) int {
		if li.EndOffset <= off {
			return -1
		}
		return 1
	})
	idx = min(idx, len(f.Lines)-1)

	return idx + 1, offset - f.Lines[idx].StartOffset + 1
}

// Offset converts a 1-based line and byte column to an offset. The column may
// point just past the line's last byte.
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}
	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// PositionAt converts a byte range into a Position. Offsets are clamped into
// the content and the end never precedes the start, so the result is always
// usable, if possibly zero-width.
func (f *FileSnapshot) PositionAt(start, end int) Position {
	start = min(max(start, 0), len(f.Content))
	end = min(max(end, start), len(f.Content))

	if len(f.Lines) == 0 {
		return Position{StartLine: 1, StartColumn: 1, EndLine: 1, EndColumn: 1}
	}

	pos := Position{StartOffset: start, EndOffset: end}
	pos.StartLine, pos.StartColumn = f.LineAt(start)
	pos.EndLine, pos.EndColumn = f.LineAt(end)
	return pos
}

// LinePosition returns the Position covering a 1-based line without its
// line ending.
func (f *FileSnapshot) LinePosition(line int) Position {
	if line < 1 || line > len(f.Lines) {
		return Position{}
	}
	info := f.Lines[line-1]
	return f.PositionAt(info.StartOffset, info.NewlineStart)
}

// LineContent returns a 1-based line without its line ending, or nil when
// the line does not exist.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
