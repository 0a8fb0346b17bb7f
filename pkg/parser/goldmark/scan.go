package goldmark

import "bytes"

// source wraps the raw content with byte-scanning helpers used to recover
// spans that goldmark does not record (markers, fences, delimiters).
type source []byte

// lineStart returns the offset of the first byte of the line containing off.
func (s source) lineStart(off int) int {
	off = min(off, len(s))
	for off > 0 && s[off-1] != '\n' {
		off--
	}
	return off
}

// lineEnd returns the offset of the line ending of the line containing off,
// or len(s) for the last line.
func (s source) lineEnd(off int) int {
	for off < len(s) && s[off] != '\n' {
		off++
	}
	if off > 0 && s[off-1] == '\r' {
		off--
	}
	return off
}

// nextLine returns the offset of the line after the one containing off,
// or len(s) if off is on the last line.
func (s source) nextLine(off int) int {
	for off < len(s) && s[off] != '\n' {
		off++
	}
	if off < len(s) {
		off++
	}
	return off
}

// trimRight moves end back over whitespace, never past start.
func (s source) trimRight(start, end int) int {
	end = min(end, len(s))
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return end
}

// backOverBlank moves off back over spaces and tabs.
func (s source) backOverBlank(off int) int {
	for off > 0 && (s[off-1] == ' ' || s[off-1] == '\t') {
		off--
	}
	return off
}

// contentStart returns the offset of the first byte of the line at lineOff
// that is not indentation or a blockquote marker.
func (s source) contentStart(lineOff int) int {
	off := lineOff
	for off < len(s) && (s[off] == ' ' || s[off] == '\t' || s[off] == '>') {
		off++
	}
	return off
}

// findLine scans lines starting at from and returns the content start of the
// first line accepted by match, or -1.
func (s source) findLine(from int, match func(line []byte) bool) int {
	for off := from; off < len(s); off = s.nextLine(off) {
		begin := s.contentStart(off)
		if match(s[begin:s.lineEnd(begin)]) {
			return begin
		}
	}
	return -1
}

// fenceAt reports the fence character and run length at off.
func (s source) fenceAt(off int) (byte, int) {
	if off >= len(s) || (s[off] != '`' && s[off] != '~') {
		return 0, 0
	}
	ch := s[off]
	n := 0
	for off+n < len(s) && s[off+n] == ch {
		n++
	}
	return ch, n
}

// matchParen returns the offset just after the ')' matching the '(' at open,
// honouring nesting, backslash escapes and angle-bracket destinations.
func (s source) matchParen(open int) int {
	depth := 0
	inAngle := false
	for i := open; i < len(s); i++ {
		switch ch := s[i]; {
		case ch == '\\':
			i++
		case inAngle:
			if ch == '>' {
				inAngle = false
			}
		case ch == '<':
			inAngle = true
		case ch == '(':
			depth++
		case ch == ')':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func isThematicBreak(line []byte) bool {
	trimmed := bytes.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	marker := trimmed[0]
	if marker != '-' && marker != '*' && marker != '_' {
		return false
	}
	count := 0
	for _, b := range trimmed {
		switch b {
		case marker:
			count++
		case ' ', '\t':
		default:
			return false
		}
	}
	return count >= 3
}

func isATXHeadingLine(line []byte) bool {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	return n >= 1 && n <= 6 && (n == len(line) || line[n] == ' ' || line[n] == '\t')
}

func isFenceLine(line []byte) bool {
	ch, n := source(line).fenceAt(0)
	return ch != 0 && n >= 3
}
