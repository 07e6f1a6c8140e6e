package collectors

import (
	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var sectionKinds = []string{"heading_open"}

// Sections reports the warehouse section index. It reads the index once,
// on the first heading it is routed.
type Sections struct {
	collect.Base

	items *collect.Bounded[warehouse.Section]
	done  bool
}

// NewSections creates a sections collector. The index covers the whole
// document, so opts.IgnoreInside does not apply.
func NewSections(opts Options) *Sections {
	return &Sections{
		Base:  collect.NewBase(NameSections, collect.Interest{Kinds: sectionKinds}),
		items: collect.NewBounded[warehouse.Section](opts.MaxItems),
	}
}

// ShouldProcess implements collect.Collector.
func (s *Sections) ShouldProcess(warehouse.View, *collect.Context) bool {
	return !s.done
}

// OnToken implements collect.Collector.
func (s *Sections) OnToken(_ int, _ warehouse.View, _ *collect.Context, wh *warehouse.Warehouse) error {
	s.done = true
	for _, sec := range wh.Sections() {
		if !s.items.Add(sec) {
			break
		}
	}
	return nil
}

// Finalize implements collect.Collector.
func (s *Sections) Finalize() (map[string]any, error) {
	return map[string]any{NameSections: s.items.Result()}, nil
}
