// Package warehouse builds every index a collector needs over a token stream
// in a single pass: the per-kind index, open/close pairing, parent links,
// the heading section list and the line-offset table. All indices are
// immutable once New returns and live exactly as long as one parse.
//
// A Warehouse is owned by the parse that created it. Its lazily derived views
// (children, section starts) are initialised under sync.Once so concurrent
// readers are safe, but nothing else about the type is meant to be shared
// between parses.
package warehouse

import (
	"sync"

	"github.com/yaklabco/mdwarehouse/pkg/mdast"
)

// noIndex marks an absent pair or parent.
const noIndex = -1

// Warehouse holds a canonicalized token stream and its indices.
type Warehouse struct {
	buf   *mdast.Buffer
	views []View

	byKind   map[string][]int
	pairs    []int // open index -> close index
	pairsRev []int // close index -> open index
	parents  []int // token index -> nearest enclosing open index

	sections []Section

	childrenOnce sync.Once
	childOffsets []int // CSR offsets into childIndex, len(views)+1
	childIndex   []int

	startsOnce    sync.Once
	sectionStarts []int
}

// New validates the caps, canonicalizes every token and builds all indices.
// The buffer must already be normalized; New never rewrites it.
// A document over a cap is rejected with a *LimitError before any indexing.
func New(buf *mdast.Buffer, tokens []mdast.Token, limits Limits) (*Warehouse, error) {
	if buf == nil {
		return nil, ErrNilBuffer
	}

	limits = limits.withDefaults()
	if err := limits.Check(buf.Len(), len(tokens)); err != nil {
		return nil, err
	}

	maxLine := limits.MaxLine
	if n := buf.LineCount(); n < maxLine {
		maxLine = n
	}

	views := make([]View, len(tokens))
	for i := range tokens {
		views[i] = Canonicalize(tokens[i], maxLine)
	}

	wh := &Warehouse{
		buf:   buf,
		views: views,
	}
	wh.build()

	return wh, nil
}

// Buffer returns the text buffer the tokens were produced from.
func (w *Warehouse) Buffer() *mdast.Buffer {
	return w.buf
}

// Len returns the number of tokens.
func (w *Warehouse) Len() int {
	return len(w.views)
}

// View returns the canonical view of token i.
// Out-of-range indices yield the zero View and false.
func (w *Warehouse) View(i int) (View, bool) {
	if i < 0 || i >= len(w.views) {
		return View{}, false
	}
	return w.views[i], true
}
