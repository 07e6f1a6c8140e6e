package mdast

import "sort"

// LineInfo holds the byte offsets of a single line in a Buffer.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For a final line without a trailing newline this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of content).
	EndOffset int
}

// BuildLines constructs the line-offset table for content in one pass.
// A trailing newline terminates the last line; it does not start an empty one.
// CRLF endings are recognised so NewlineStart excludes the '\r', but the
// content itself is never rewritten.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, len(content)/32+1)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}

		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}

		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	// Final line without a trailing newline.
	if lineStart < len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return len(b.Lines)
}

// LastLine returns the zero-based index of the last line, or 0 for an empty buffer.
func (b *Buffer) LastLine() int {
	if len(b.Lines) == 0 {
		return 0
	}
	return len(b.Lines) - 1
}

// LineAt converts a byte offset to a zero-based line index.
// Offsets past the end map to the last line; negative offsets map to line 0.
func (b *Buffer) LineAt(offset int) int {
	if offset <= 0 || len(b.Lines) == 0 {
		return 0
	}
	if offset >= len(b.Content) {
		return len(b.Lines) - 1
	}

	idx := sort.Search(len(b.Lines), func(i int) bool {
		return b.Lines[i].EndOffset > offset
	})
	if idx >= len(b.Lines) {
		idx = len(b.Lines) - 1
	}
	return idx
}

// LineText returns the content of a zero-based line without its newline.
// Returns "" if the line is out of range.
func (b *Buffer) LineText(line int) string {
	if line < 0 || line >= len(b.Lines) {
		return ""
	}
	info := b.Lines[line]
	return string(b.Content[info.StartOffset:info.NewlineStart])
}

// Slice returns the text of the half-open line range [start, end), newlines included.
// The range is clamped to the buffer; an empty or inverted range yields "".
func (b *Buffer) Slice(start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(b.Lines) {
		end = len(b.Lines)
	}
	if start >= end {
		return ""
	}
	return string(b.Content[b.Lines[start].StartOffset:b.Lines[end-1].EndOffset])
}
