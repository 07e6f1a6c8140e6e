package collectors

import (
	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var imageKinds = []string{"image"}

// Image is one images result item.
type Image struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Title   string `json:"title,omitempty"`
	Line    int    `json:"line"`
	Allowed bool   `json:"allowed"`
}

// Images collects image sources.
type Images struct {
	collect.Base

	items *collect.Bounded[Image]
}

// NewImages creates an images collector.
func NewImages(opts Options) *Images {
	return &Images{
		Base:  collect.NewBase(NameImages, collect.Interest{Kinds: imageKinds, IgnoreInside: opts.IgnoreInside}),
		items: collect.NewBounded[Image](opts.MaxItems),
	}
}

// OnToken implements collect.Collector.
func (i *Images) OnToken(_ int, tok warehouse.View, ctx *collect.Context, _ *warehouse.Warehouse) error {
	i.items.Add(Image{
		Src:     tok.Src,
		Alt:     tok.Content,
		Title:   tok.Title,
		Line:    line(tok.HasMap, tok.StartLine, ctx),
		Allowed: warehouse.ValidateURL(tok.Src),
	})
	return nil
}

// Finalize implements collect.Collector.
func (i *Images) Finalize() (map[string]any, error) {
	return map[string]any{NameImages: i.items.Result()}, nil
}
