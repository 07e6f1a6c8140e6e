package warehouse

import (
	"slices"
	"sort"
	"strings"
)

// ByKind returns the indices of all tokens of kind, in stream order.
func (w *Warehouse) ByKind(kind string) []int {
	return slices.Clone(w.byKind[kind])
}

// Count returns the number of tokens of kind.
func (w *Warehouse) Count(kind string) int {
	return len(w.byKind[kind])
}

// Kinds returns every token kind present, sorted.
func (w *Warehouse) Kinds() []string {
	kinds := make([]string, 0, len(w.byKind))
	for kind := range w.byKind {
		kinds = append(kinds, kind)
	}
	slices.Sort(kinds)
	return kinds
}

// Pair returns the matching token of an open or close token.
func (w *Warehouse) Pair(i int) (int, bool) {
	if i < 0 || i >= len(w.views) {
		return noIndex, false
	}
	if j := w.pairs[i]; j != noIndex {
		return j, true
	}
	if j := w.pairsRev[i]; j != noIndex {
		return j, true
	}
	return noIndex, false
}

// Parent returns the nearest enclosing open token of i.
// For a close token this is always its own matching open token.
func (w *Warehouse) Parent(i int) (int, bool) {
	if i < 0 || i >= len(w.views) || w.parents[i] == noIndex {
		return noIndex, false
	}
	return w.parents[i], true
}

// Children returns the tokens whose parent is p, in stream order.
// The child index is derived from the parent links on first use.
func (w *Warehouse) Children(p int) []int {
	if p < 0 || p >= len(w.views) {
		return nil
	}
	w.childrenOnce.Do(w.buildChildren)
	return slices.Clone(w.childIndex[w.childOffsets[p]:w.childOffsets[p+1]])
}

// buildChildren inverts the parent links into a compact offsets/values layout.
func (w *Warehouse) buildChildren() {
	n := len(w.views)
	offsets := make([]int, n+1)
	for _, parent := range w.parents {
		if parent != noIndex {
			offsets[parent+1]++
		}
	}
	for i := 1; i <= n; i++ {
		offsets[i] += offsets[i-1]
	}

	index := make([]int, offsets[n])
	next := slices.Clone(offsets[:n])
	for child, parent := range w.parents {
		if parent == noIndex {
			continue
		}
		index[next[parent]] = child
		next[parent]++
	}

	w.childOffsets = offsets
	w.childIndex = index
}

// TokensBetween returns the indices strictly between a and b.
// With a non-empty kind only tokens of that kind are returned, located by
// binary search in the kind index so the cost is O(log N + K).
func (w *Warehouse) TokensBetween(a, b int, kind string) []int {
	if a > b {
		a, b = b, a
	}
	if b-a < 2 {
		return nil
	}

	if kind != "" {
		list := w.byKind[kind]
		lo := sort.SearchInts(list, a+1)
		hi := sort.SearchInts(list, b)
		if lo >= hi {
			return nil
		}
		return slices.Clone(list[lo:hi])
	}

	lo := max(a+1, 0)
	hi := min(b, len(w.views))
	if lo >= hi {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// TextBetween concatenates the text carried by the leaf tokens strictly
// between a and b. Soft and hard breaks contribute a newline.
func (w *Warehouse) TextBetween(a, b int) string {
	if a > b {
		a, b = b, a
	}
	lo := max(a+1, 0)
	hi := min(b, len(w.views))

	var sb strings.Builder
	for i := lo; i < hi; i++ {
		switch w.views[i].Kind {
		case kindText, "code_inline":
			sb.WriteString(w.views[i].Content)
		case "softbreak", "hardbreak":
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// LineRange returns the buffer text of the half-open line range [start, end).
func (w *Warehouse) LineRange(start, end int) string {
	return w.buf.Slice(start, end)
}

// TokenText returns the source text covered by token i's line map.
// Tokens without a map yield "".
func (w *Warehouse) TokenText(i int) string {
	if i < 0 || i >= len(w.views) || !w.views[i].HasMap {
		return ""
	}
	return w.buf.Slice(w.views[i].StartLine, w.views[i].EndLine)
}
