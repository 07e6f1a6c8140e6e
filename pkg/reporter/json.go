package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	SchemaVersion string           `json:"schema_version"`
	Files         []JSONFileResult `json:"files"`
	Summary       JSONSummary      `json:"summary"`
}

// JSONFileResult is one file's entry. Output holds the canonical encoding
// of the collector output.
type JSONFileResult struct {
	Path     string          `json:"path"`
	Output   json.RawMessage `json:"output,omitempty"`
	Error    string          `json:"error,omitempty"`
	Rejected bool            `json:"rejected,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"files_discovered"`
	FilesProcessed  int `json:"files_processed"`
	FilesRejected   int `json:"files_rejected"`
	FilesErrored    int `json:"files_errored"`
	FilesShared     int `json:"files_shared"`
	CollectorErrors int `json:"collector_errors"`
	Tokens          int `json:"tokens"`
}

// JSONReporter writes every file into a single JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output, err := r.buildOutput(result)
	if err != nil {
		return 0, err
	}

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return len(output.Files), nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) (*JSONOutput, error) {
	output := &JSONOutput{
		SchemaVersion: collect.SchemaVersion,
		Files:         make([]JSONFileResult, 0),
	}
	if result == nil {
		return output, nil
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		entry := JSONFileResult{Path: r.opts.displayPath(file.Path), Rejected: file.Rejected}

		if file.Error != nil {
			entry.Error = file.Error.Error()
		}
		if out := outputFor(r.opts, file); out != nil {
			raw, err := out.MarshalCanonical()
			if err != nil {
				return nil, fmt.Errorf("%s: %w", entry.Path, err)
			}
			entry.Output = raw
		}

		output.Files = append(output.Files, entry)
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered: stats.FilesDiscovered,
		FilesProcessed:  stats.FilesProcessed,
		FilesRejected:   stats.FilesRejected,
		FilesErrored:    stats.FilesErrored,
		FilesShared:     stats.FilesShared,
		CollectorErrors: stats.CollectorErrors,
		Tokens:          stats.Tokens,
	}
	return output, nil
}
