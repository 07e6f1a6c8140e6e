package collect_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/mdast"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// hook is a collector whose behavior is supplied by the test.
type hook struct {
	collect.Base

	seen     []int
	onToken  func(idx int, tok warehouse.View, ctx *collect.Context) error
	finalize func(seen []int) (map[string]any, error)
}

func newHook(name string, interest collect.Interest) *hook {
	return &hook{Base: collect.NewBase(name, interest)}
}

func (h *hook) OnToken(idx int, tok warehouse.View, ctx *collect.Context, _ *warehouse.Warehouse) error {
	h.seen = append(h.seen, idx)
	if h.onToken != nil {
		return h.onToken(idx, tok, ctx)
	}
	return nil
}

func (h *hook) Finalize() (map[string]any, error) {
	if h.finalize != nil {
		return h.finalize(h.seen)
	}
	seen := h.seen
	if seen == nil {
		seen = []int{}
	}
	return map[string]any{h.Name(): seen}, nil
}

func tok(kind string, nesting mdast.Nesting, tag, content string, lines ...int) mdast.Token {
	t := mdast.Token{Kind: kind, Nesting: nesting, Tag: tag, Content: content}
	if len(lines) == 2 {
		t.Map = mdast.NewLineRange(lines[0], lines[1])
	}
	return t
}

const linkDoc = "# Links\n\nSee [docs](https://example.com) and <b>bold</b>.\n\n> [quoted](#q)\n"

// linkTokens is the token stream for linkDoc.
//
//	0 heading_open      1 inline  2 text "Links"   3 heading_close
//	4 paragraph_open    5 inline  6 text "See "    7 link_open
//	8 text "docs"       9 link_close              10 text " and "
//	11 html_inline     12 text "bold"            13 html_inline
//	14 text "."        15 paragraph_close        16 blockquote_open
//	17 paragraph_open  18 inline 19 link_open     20 text "quoted"
//	21 link_close      22 paragraph_close        23 blockquote_close
func linkTokens() []mdast.Token {
	h := tok("heading_open", mdast.Open, "h1", "", 0, 1)
	h.Level = 1
	link := tok("link_open", mdast.Open, "a", "")
	link.Attrs = map[string]string{"href": "https://example.com"}
	quoted := tok("link_open", mdast.Open, "a", "")
	quoted.Attrs = map[string]string{"href": "#q"}

	return []mdast.Token{
		h,
		tok("inline", mdast.Leaf, "", "Links", 0, 1),
		tok("text", mdast.Leaf, "", "Links"),
		tok("heading_close", mdast.Close, "h1", ""),
		tok("paragraph_open", mdast.Open, "p", "", 2, 3),
		tok("inline", mdast.Leaf, "", "See [docs](https://example.com) and <b>bold</b>.", 2, 3),
		tok("text", mdast.Leaf, "", "See "),
		link,
		tok("text", mdast.Leaf, "", "docs"),
		tok("link_close", mdast.Close, "a", ""),
		tok("text", mdast.Leaf, "", " and "),
		tok("html_inline", mdast.Leaf, "", "<b>"),
		tok("text", mdast.Leaf, "", "bold"),
		tok("html_inline", mdast.Leaf, "", "</b>"),
		tok("text", mdast.Leaf, "", "."),
		tok("paragraph_close", mdast.Close, "p", ""),
		tok("blockquote_open", mdast.Open, "blockquote", "", 4, 5),
		tok("paragraph_open", mdast.Open, "p", "", 4, 5),
		tok("inline", mdast.Leaf, "", "[quoted](#q)", 4, 5),
		quoted,
		tok("text", mdast.Leaf, "", "quoted"),
		tok("link_close", mdast.Close, "a", ""),
		tok("paragraph_close", mdast.Close, "p", ""),
		tok("blockquote_close", mdast.Close, "blockquote", ""),
	}
}

func newWarehouse(t testing.TB, doc string, tokens []mdast.Token) *warehouse.Warehouse {
	t.Helper()
	wh, err := warehouse.New(mdast.NewBuffer("test.md", []byte(doc)), tokens, warehouse.Limits{})
	require.NoError(t, err)
	return wh
}

func linkWarehouse(t testing.TB) *warehouse.Warehouse {
	t.Helper()
	return newWarehouse(t, linkDoc, linkTokens())
}
