// Package mdast defines the token stream model consumed by the warehouse:
// the flat Token sequence with nesting markers and line maps, and the single
// normalized text Buffer the tokens were produced from.
package mdast

// Buffer is the one text buffer a document was tokenized from, together with
// its line-offset table. The content is expected to be in one Unicode normal
// form with one line-ending convention already; Buffer never re-normalizes it,
// since doing so would desynchronize line ranges from token maps.
type Buffer struct {
	// Path is the source path (may be empty for in-memory content).
	Path string

	// Content is the full document bytes.
	Content []byte

	// Lines is the line-offset table built once from Content.
	Lines []LineInfo
}

// NewBuffer builds a Buffer and its line table from content.
// Content is not copied; callers must not modify it afterwards.
func NewBuffer(path string, content []byte) *Buffer {
	return &Buffer{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// Len returns the size of the buffer in bytes.
func (b *Buffer) Len() int {
	return len(b.Content)
}
