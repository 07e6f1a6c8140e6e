package runner

import (
	"github.com/yaklabco/mdwarehouse/pkg/collect"
	"github.com/yaklabco/mdwarehouse/pkg/extract"
)

// FileOutcome is the extraction outcome of one file.
type FileOutcome struct {
	// Path is the absolute file path.
	Path string

	// Result is nil when Error is set.
	Result *extract.Result

	// Error is set when the file could not be read or extracted.
	Error error

	// Rejected marks an Error caused by a size cap.
	Rejected bool

	// Shared marks a Result reused from another file with identical content.
	Shared bool
}

// Output returns the collector output, or nil when the file failed.
func (f FileOutcome) Output() *collect.Output {
	if f.Result == nil {
		return nil
	}
	return f.Result.Output
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesRejected   int
	FilesErrored    int

	// FilesShared counts files whose result was reused by digest.
	FilesShared int

	// CollectorErrors totals isolated collector failures across files.
	CollectorErrors int

	// Tokens totals the token stream lengths of processed files.
	Tokens int
}

// Result is the overall runner result. Files are ordered by path.
type Result struct {
	Files []FileOutcome
	Stats Stats
}

// HasCollectorErrors reports whether any processed file recorded a collector failure.
func (r *Result) HasCollectorErrors() bool {
	return r != nil && r.Stats.CollectorErrors > 0
}

// HasRejected reports whether any file exceeded a size cap.
func (r *Result) HasRejected() bool {
	return r != nil && r.Stats.FilesRejected > 0
}

// HasErrors reports whether any file failed for a reason other than a size cap.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.FilesErrored > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Rejected:
		r.Stats.FilesRejected++
	case outcome.Error != nil:
		r.Stats.FilesErrored++
	case outcome.Result != nil:
		r.Stats.FilesProcessed++
		if outcome.Shared {
			r.Stats.FilesShared++
		}
		r.Stats.Tokens += outcome.Result.Tokens
		if outcome.Result.Output != nil {
			r.Stats.CollectorErrors += len(outcome.Result.Output.Errors)
		}
	}
}
