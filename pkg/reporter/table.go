package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"golang.org/x/term"

	"github.com/yaklabco/mdwarehouse/internal/ui/pretty"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// TableReporter formats per-file feature counts as a table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter creates a new table reporter.
func NewTableReporter(opts Options) *TableReporter {
	styles := pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer))
	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, getTerminalWidth(opts.Writer)),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Dim.Render("No files to extract."))
		}
		return 0, nil
	}

	display := *result
	display.Files = make([]runner.FileOutcome, len(result.Files))
	for i, file := range result.Files {
		file.Path = r.opts.displayPath(file.Path)
		display.Files[i] = file
	}

	keys := r.opts.Keys
	if len(keys) == 0 {
		keys = featureKeys(result)
	}

	fmt.Fprint(r.bw, r.formatter.FormatTable(&display, keys))
	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	}

	return len(result.Files), nil
}

// featureKeys returns the sorted union of feature keys across files.
func featureKeys(result *runner.Result) []string {
	set := make(map[string]struct{})
	for _, file := range result.Files {
		if out := file.Output(); out != nil {
			for key := range out.Features {
				set[key] = struct{}{}
			}
		}
	}
	return slices.Sorted(maps.Keys(set))
}

// getTerminalWidth attempts to get the terminal width from the writer.
func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
