package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// jsonlFailure is the line written for a file without output.
type jsonlFailure struct {
	Source   string `json:"source"`
	Error    string `json:"error"`
	Rejected bool   `json:"rejected,omitempty"`
}

// JSONLReporter writes one canonical output per line, in file order.
// For a single document the line is exactly its canonical encoding.
type JSONLReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONLReporter creates a new JSON lines reporter.
func NewJSONLReporter(opts Options) *JSONLReporter {
	return &JSONLReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONLReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)

	for _, file := range result.Files {
		if out := outputFor(r.opts, file); out != nil {
			if err := out.WriteCanonical(r.bw); err != nil {
				return 0, fmt.Errorf("%s: %w", file.Path, err)
			}
			continue
		}

		line := jsonlFailure{Source: r.opts.displayPath(file.Path), Rejected: file.Rejected}
		if file.Error != nil {
			line.Error = file.Error.Error()
		}
		if err := encoder.Encode(line); err != nil {
			return 0, fmt.Errorf("encode JSON: %w", err)
		}
	}

	return len(result.Files), nil
}
