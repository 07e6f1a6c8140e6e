package mdast

// Nesting marks how a token affects the open/close structure of the stream.
type Nesting int8

// Nesting values follow the CommonMark token stream convention.
const (
	Close Nesting = -1
	Leaf  Nesting = 0
	Open  Nesting = 1
)

// String returns "open", "close" or "leaf".
func (n Nesting) String() string {
	switch n {
	case Open:
		return "open"
	case Close:
		return "close"
	default:
		return "leaf"
	}
}

// LineRange is a half-open range of zero-based source lines [Start, End).
type LineRange struct {
	Start int
	End   int
}

// Len returns the number of lines covered by the range.
func (r LineRange) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether line falls inside the range.
func (r LineRange) Contains(line int) bool {
	return line >= r.Start && line < r.End
}

// Token is a single unit of the flat token stream produced by a tokenizer.
// Tokens are treated as read-only by every consumer in this module.
type Token struct {
	// Kind is the token type tag, e.g. "heading_open", "inline", "text".
	Kind string

	// Nesting is +1 for opening tokens, -1 for closing tokens and 0 for leaves.
	Nesting Nesting

	// Tag is the associated HTML tag name, e.g. "h1", "a", "code".
	Tag string

	// Content is the textual content of leaf tokens.
	Content string

	// Map is the source line range, or nil when the tokenizer did not record one.
	Map *LineRange

	// Level is the heading level for heading tokens, zero otherwise.
	Level int

	// Attrs holds string attributes such as href, src, title and info.
	Attrs map[string]string

	// Meta holds optional tokenizer-specific data.
	// Generic logic must treat it as opaque and never read it.
	Meta any
}

// Attr returns the named attribute, or "" when absent.
func (t Token) Attr(name string) string {
	if t.Attrs == nil {
		return ""
	}
	return t.Attrs[name]
}

// IsOpen reports whether the token opens a container.
func (t Token) IsOpen() bool {
	return t.Nesting == Open
}

// IsClose reports whether the token closes a container.
func (t Token) IsClose() bool {
	return t.Nesting == Close
}

// NewLineRange returns a pointer to a LineRange, for building tokens in literals.
func NewLineRange(start, end int) *LineRange {
	return &LineRange{Start: start, End: end}
}
