// Package reporter renders runner results as JSON, JSON lines, text or tables.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// Reporter formats and writes extraction results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of files reported and any write error.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatJSON
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatJSONL:
		return NewJSONLReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	case FormatTable:
		return NewTableReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// outputFor returns a copy of the file's output whose Source is the display
// path, or nil for a failed file. Features are shared, not copied.
func outputFor(opts Options, file runner.FileOutcome) *collect.Output {
	out := file.Output()
	if out == nil {
		return nil
	}
	cp := *out
	cp.Source = opts.displayPath(file.Path)
	return &cp
}
