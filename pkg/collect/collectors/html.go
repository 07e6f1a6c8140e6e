package collectors

import (
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var htmlKinds = []string{"html_block", "html_inline"}

// HTMLFragment is one html result item.
type HTMLFragment struct {
	Block   bool   `json:"block"`
	Content string `json:"content"`
	Line    int    `json:"line"`
}

// HTML collects raw HTML.
type HTML struct {
	collect.Base

	items  *collect.Bounded[HTMLFragment]
	blocks int
	inline int
}

// NewHTML creates an html collector.
func NewHTML(opts Options) *HTML {
	return &HTML{
		Base:  collect.NewBase(NameHTML, collect.Interest{Kinds: htmlKinds, IgnoreInside: opts.IgnoreInside}),
		items: collect.NewBounded[HTMLFragment](opts.MaxItems),
	}
}

// OnToken implements collect.Collector.
func (h *HTML) OnToken(_ int, tok warehouse.View, ctx *collect.Context, _ *warehouse.Warehouse) error {
	block := tok.Kind == "html_block"
	if block {
		h.blocks++
	} else {
		h.inline++
	}

	h.items.Add(HTMLFragment{
		Block:   block,
		Content: strings.TrimRight(tok.Content, "\n"),
		Line:    line(tok.HasMap, tok.StartLine, ctx),
	})
	return nil
}

// Finalize implements collect.Collector.
func (h *HTML) Finalize() (map[string]any, error) {
	result := h.items.Result()
	result["blocks"] = h.blocks
	result["inline"] = h.inline
	return map[string]any{NameHTML: result}, nil
}
