package cli

import (
	"errors"
	"strconv"

	"github.com/yaklabco/mdwarehouse/pkg/runner"
)

// Exit codes for mdwarehouse.
const (
	// ExitSuccess indicates every file was extracted cleanly.
	ExitSuccess = 0

	// ExitCollectorErrors indicates a collector failure or a failed file.
	ExitCollectorErrors = 1

	// ExitRejected indicates at least one file exceeded a size cap.
	ExitRejected = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates the results could not be written.
	ExitIOError = 74
)

// ExitError carries a process exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit status " + strconv.Itoa(e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Silent reports whether the error only signals an exit code.
func (e *ExitError) Silent() bool {
	return e.Err == nil
}

func withCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInternalError
}

// ExitCodeFromResult determines the exit code of a completed run.
// Failures outrank rejections.
func ExitCodeFromResult(result *runner.Result) int {
	switch {
	case result == nil:
		return ExitSuccess
	case result.HasErrors() || result.HasCollectorErrors():
		return ExitCollectorErrors
	case result.HasRejected():
		return ExitRejected
	default:
		return ExitSuccess
	}
}
