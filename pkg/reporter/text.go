package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdwarehouse/internal/ui/pretty"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// TextReporter lists each file's features as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
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

	for i, file := range result.Files {
		if i > 0 {
			fmt.Fprintln(r.bw)
		}
		r.reportFile(file)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw)
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return len(result.Files), nil
}

func (r *TextReporter) reportFile(file runner.FileOutcome) {
	path := r.opts.displayPath(file.Path)

	out := file.Output()
	if out == nil {
		label := "error"
		style := r.styles.Error
		if file.Rejected {
			label, style = "rejected", r.styles.Warning
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			style.Render(fmt.Sprintf("%s: %v", label, file.Error)),
		)
		return
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, file.Result.Tokens, file.Result.Sections))
	for _, key := range out.Keys() {
		fmt.Fprintln(r.bw, r.styles.FormatFeature(out, key))
	}
	for _, cerr := range out.Errors {
		fmt.Fprintln(r.bw, r.styles.FormatCollectorError(cerr))
	}
}
