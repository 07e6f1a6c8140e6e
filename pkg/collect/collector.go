// Package collect implements the collector protocol over a warehouse: the
// registry and its routing table, the single-pass dispatcher with nesting
// suppression, error isolation, timeout and reentrancy guards, and the
// finalize step that merges every collector's result into one Output.
package collect

import "github.com/yaklabco/mdwarehouse/pkg/warehouse"

// Interest declares which tokens a collector wants to see.
type Interest struct {
	// Kinds are token kinds, e.g. "link_open", "fence".
	Kinds []string

	// Tags are HTML tag names, e.g. "a", "h2".
	Tags []string

	// IgnoreInside lists container kinds ("link", "blockquote", "table")
	// whose descendants are never delivered.
	IgnoreInside []string
}

// Collector extracts one feature from a token stream.
//
// A collector instance belongs to a single parse. Its methods are called from
// one goroutine at a time, in token order, and never concurrently.
type Collector interface {
	// Name returns the unique collector name, used in errors and output.
	Name() string

	// Interest returns the token kinds and tags to route to this collector.
	Interest() Interest

	// ShouldProcess is a cheap pre-filter run before OnToken.
	ShouldProcess(tok warehouse.View, ctx *Context) bool

	// OnToken handles one routed token. Returned errors are isolated to
	// this collector unless the dispatcher runs in strict mode.
	OnToken(idx int, tok warehouse.View, ctx *Context, wh *warehouse.Warehouse) error

	// Finalize returns the collector's result. Keys must not collide with
	// any other collector's keys.
	Finalize() (map[string]any, error)
}

// Base provides defaults for the optional parts of Collector.
// Embed it and override OnToken and Finalize.
type Base struct {
	name     string
	interest Interest
}

// NewBase creates a Base with the given name and interest.
func NewBase(name string, interest Interest) Base {
	return Base{name: name, interest: interest}
}

// Name returns the collector name.
func (b *Base) Name() string {
	return b.name
}

// Interest returns the declared interest.
func (b *Base) Interest() Interest {
	return b.interest
}

// ShouldProcess accepts every routed token.
func (b *Base) ShouldProcess(warehouse.View, *Context) bool {
	return true
}

// OnToken does nothing.
func (b *Base) OnToken(int, warehouse.View, *Context, *warehouse.Warehouse) error {
	return nil
}

// Finalize returns no result.
func (b *Base) Finalize() (map[string]any, error) {
	return nil, nil
}
