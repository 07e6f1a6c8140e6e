package warehouse

import "github.com/yaklabco/mdwarehouse/pkg/mdast"

// build runs the single forward pass over the canonical views.
func (w *Warehouse) build() {
	n := len(w.views)

	w.byKind = make(map[string][]int)
	w.pairs = filled(n, noIndex)
	w.pairsRev = filled(n, noIndex)
	w.parents = filled(n, noIndex)

	sb := newSectionBuilder(w.buf.LastLine())
	stack := make([]int, 0, 16)
	line := 0

	for idx := range w.views {
		view := &w.views[idx]
		w.byKind[view.Kind] = append(w.byKind[view.Kind], idx)

		if view.HasMap {
			line = view.StartLine
		}

		switch view.Nesting {
		case mdast.Close:
			if len(stack) == 0 {
				// Underflow: leave the close unpaired and parentless.
				continue
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			w.pairs[open] = idx
			w.pairsRev[idx] = open
			w.parents[idx] = open

			if w.views[open].Kind == kindHeadingOpen {
				sb.headingClosed(open)
			}

		default:
			if len(stack) > 0 {
				w.parents[idx] = stack[len(stack)-1]
			}

			if view.Nesting == mdast.Open {
				if view.Kind == kindHeadingOpen {
					sb.headingOpened(idx, headingLevel(view), line)
				}
				stack = append(stack, idx)
				continue
			}

			if isTitleKind(view.Kind) {
				sb.offerTitle(w.parents[idx], view.Content)
			}
		}
	}

	w.sections = sb.finish()
}

func filled(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}
