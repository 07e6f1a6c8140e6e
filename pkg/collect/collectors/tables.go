package collectors

import (
	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

//nolint:gochecknoglobals // Read-only interest list.
var tableKinds = []string{"table_open"}

// Table is one tables result item.
type Table struct {
	Rows    int  `json:"rows"`
	Columns int  `json:"columns"`
	Header  bool `json:"header"`
	Line    int  `json:"line"`
}

// Tables collects table shapes from the warehouse indices.
type Tables struct {
	collect.Base

	items *collect.Bounded[Table]
}

// NewTables creates a tables collector.
func NewTables(opts Options) *Tables {
	return &Tables{
		Base:  collect.NewBase(NameTables, collect.Interest{Kinds: tableKinds, IgnoreInside: opts.IgnoreInside}),
		items: collect.NewBounded[Table](opts.MaxItems),
	}
}

// OnToken implements collect.Collector.
func (t *Tables) OnToken(idx int, tok warehouse.View, ctx *collect.Context, wh *warehouse.Warehouse) error {
	table := Table{Line: line(tok.HasMap, tok.StartLine, ctx)}

	end, ok := wh.Pair(idx)
	if !ok {
		end = wh.Len()
	}

	rows := wh.TokensBetween(idx, end, "tr_open")
	table.Rows = len(rows)
	table.Header = len(wh.TokensBetween(idx, end, "thead_open")) > 0

	if len(rows) > 0 {
		for _, cell := range wh.Children(rows[0]) {
			if v, _ := wh.View(cell); v.Kind == "th_open" || v.Kind == "td_open" {
				table.Columns++
			}
		}
	}

	t.items.Add(table)
	return nil
}

// Finalize implements collect.Collector.
func (t *Tables) Finalize() (map[string]any, error) {
	return map[string]any{NameTables: t.items.Result()}, nil
}
