package collectors

import (
	"strings"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var linkKinds = []string{"link_open"}

// Link is one links result item.
type Link struct {
	Href  string `json:"href"`
	Text  string `json:"text"`
	Title string `json:"title,omitempty"`
	Line  int    `json:"line"`

	// Fragment is true for in-document references ("#anchor").
	Fragment bool `json:"fragment"`

	// Allowed is the scheme allowlist verdict. Consumers must not follow
	// a link that is not allowed.
	Allowed bool `json:"allowed"`
}

// Links collects link destinations.
type Links struct {
	collect.Base

	items      *collect.Bounded[Link]
	disallowed int
}

// NewLinks creates a links collector.
func NewLinks(opts Options) *Links {
	return &Links{
		Base:  collect.NewBase(NameLinks, collect.Interest{Kinds: linkKinds, IgnoreInside: opts.IgnoreInside}),
		items: collect.NewBounded[Link](opts.MaxItems),
	}
}

// OnToken implements collect.Collector.
func (l *Links) OnToken(idx int, tok warehouse.View, ctx *collect.Context, wh *warehouse.Warehouse) error {
	text := ""
	if end, ok := wh.Pair(idx); ok {
		text = wh.TextBetween(idx, end)
	}

	allowed := warehouse.ValidateURL(tok.Href)
	if !allowed {
		l.disallowed++
	}

	l.items.Add(Link{
		Href:     tok.Href,
		Text:     text,
		Title:    tok.Title,
		Line:     line(tok.HasMap, tok.StartLine, ctx),
		Fragment: strings.HasPrefix(tok.Href, "#"),
		Allowed:  allowed,
	})
	return nil
}

// Finalize implements collect.Collector.
func (l *Links) Finalize() (map[string]any, error) {
	result := l.items.Result()
	result["disallowed"] = l.disallowed
	return map[string]any{NameLinks: result}, nil
}
