package pretty_test

import (
	"errors"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/extract"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// bounded builds a bounded feature value holding n items, truncated past limit.
func bounded(n, limit int) map[string]any {
	b := collect.NewBounded[int](limit)
	for i := range n {
		b.Add(i)
	}
	return b.Result()
}

func okOutcome(path string) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Result: &extract.Result{
			Tokens:   42,
			Sections: 3,
			Output: &collect.Output{
				SchemaVersion: collect.SchemaVersion,
				Source:        path,
				Features: map[string]any{
					"headings": bounded(3, 10),
					"links":    bounded(5, 2),
				},
				Errors: []collect.CollectorError{
					{Collector: "tables", Token: 7, Kind: collect.KindError, Message: "boom"},
				},
			},
		},
	}
}

func failedOutcome(path string) runner.FileOutcome {
	return runner.FileOutcome{Path: path, Error: errors.New("unreadable")}
}
