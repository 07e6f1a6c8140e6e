package collectors

import (
	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var headingKinds = []string{"heading_open"}

// Heading is one headings result item.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Line   int    `json:"line"`
	Anchor string `json:"anchor"`
}

// Headings collects every heading and its anchor.
type Headings struct {
	collect.Base

	items   *collect.Bounded[Heading]
	anchors *anchors
}

// NewHeadings creates a headings collector.
func NewHeadings(opts Options) *Headings {
	return &Headings{
		Base:    collect.NewBase(NameHeadings, collect.Interest{Kinds: headingKinds, IgnoreInside: opts.IgnoreInside}),
		items:   collect.NewBounded[Heading](opts.MaxItems),
		anchors: newAnchors(),
	}
}

// OnToken implements collect.Collector.
func (h *Headings) OnToken(idx int, tok warehouse.View, ctx *collect.Context, wh *warehouse.Warehouse) error {
	text := ""
	if end, ok := wh.Pair(idx); ok {
		text = wh.TextBetween(idx, end)
	}

	// Anchors advance even past the cap so kept anchors stay stable.
	anchor := h.anchors.next(text)

	h.items.Add(Heading{
		Level:  tok.Level,
		Text:   text,
		Line:   line(tok.HasMap, tok.StartLine, ctx),
		Anchor: anchor,
	})
	return nil
}

// Finalize implements collect.Collector.
func (h *Headings) Finalize() (map[string]any, error) {
	return map[string]any{NameHeadings: h.items.Result()}, nil
}
