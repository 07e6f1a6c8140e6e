package warehouse

import "github.com/yaklabco/mdwarehouse/pkg/mdast"

// Default resource caps.
const (
	DefaultMaxTokens = 500_000
	DefaultMaxBytes  = 10 << 20
	DefaultMaxLine   = 1_000_000
)

// Limits are the resource caps enforced before any indexing work.
type Limits struct {
	// MaxTokens caps the length of the token stream.
	MaxTokens int `yaml:"max_tokens"`

	// MaxBytes caps the size of the text buffer.
	MaxBytes int `yaml:"max_bytes"`

	// MaxLine is the largest line number a token map may carry.
	MaxLine int `yaml:"max_line"`
}

// DefaultLimits returns the built-in caps.
func DefaultLimits() Limits {
	return Limits{
		MaxTokens: DefaultMaxTokens,
		MaxBytes:  DefaultMaxBytes,
		MaxLine:   DefaultMaxLine,
	}
}

// withDefaults fills zero or negative caps from DefaultLimits.
func (l Limits) withDefaults() Limits {
	def := DefaultLimits()
	if l.MaxTokens <= 0 {
		l.MaxTokens = def.MaxTokens
	}
	if l.MaxBytes <= 0 {
		l.MaxBytes = def.MaxBytes
	}
	if l.MaxLine <= 0 {
		l.MaxLine = def.MaxLine
	}
	return l
}

// Check rejects a document whose buffer or token stream exceeds the caps.
// The byte cap is checked first.
func (l Limits) Check(byteLen, tokenCount int) error {
	l = l.withDefaults()
	if byteLen > l.MaxBytes {
		return &LimitError{Limit: "max_bytes", Value: byteLen, Max: l.MaxBytes, err: ErrByteLimit}
	}
	if tokenCount > l.MaxTokens {
		return &LimitError{Limit: "max_tokens", Value: tokenCount, Max: l.MaxTokens, err: ErrTokenLimit}
	}
	return nil
}

// View is the primitive-only projection of a token that collectors and
// validators see. It never references the source token, its attribute map
// or its Meta payload.
type View struct {
	Kind    string        `json:"kind"`
	Nesting mdast.Nesting `json:"nesting"`
	Tag     string        `json:"tag,omitempty"`
	Content string        `json:"content,omitempty"`
	Level   int           `json:"level,omitempty"`

	// HasMap is false when the token carried no line range.
	HasMap    bool `json:"has_map"`
	StartLine int  `json:"start_line"`
	EndLine   int  `json:"end_line"`

	// Allowlisted attributes.
	Href  string `json:"href,omitempty"`
	Src   string `json:"src,omitempty"`
	Title string `json:"title,omitempty"`
	Info  string `json:"info,omitempty"`
}

// IsOpen reports whether the viewed token opens a container.
func (v View) IsOpen() bool { return v.Nesting == mdast.Open }

// IsClose reports whether the viewed token closes a container.
func (v View) IsClose() bool { return v.Nesting == mdast.Close }

// Canonicalize copies the allowlisted fields of tok into a View.
// Nesting values outside {-1, 0, 1} are treated as leaf. Line ranges are
// clamped to [0, maxLine], and a start past its end is pulled back to the end.
func Canonicalize(tok mdast.Token, maxLine int) View {
	view := View{
		Kind:    tok.Kind,
		Nesting: canonicalNesting(tok.Nesting),
		Tag:     tok.Tag,
		Content: tok.Content,
		Level:   tok.Level,
	}

	if tok.Attrs != nil {
		view.Href = tok.Attrs["href"]
		view.Src = tok.Attrs["src"]
		view.Title = tok.Attrs["title"]
		view.Info = tok.Attrs["info"]
	}

	if tok.Map != nil {
		start := clamp(tok.Map.Start, 0, maxLine)
		end := clamp(tok.Map.End, 0, maxLine)
		if start > end {
			start = end
		}
		view.HasMap = true
		view.StartLine = start
		view.EndLine = end
	}

	return view
}

func canonicalNesting(n mdast.Nesting) mdast.Nesting {
	switch n {
	case mdast.Open, mdast.Close:
		return n
	default:
		return mdast.Leaf
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
