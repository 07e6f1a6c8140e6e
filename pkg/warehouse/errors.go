package warehouse

import (
	"errors"
	"fmt"
)

// Sentinel errors for document rejection, for use with errors.Is.
var (
	// ErrTokenLimit indicates the token stream is longer than Limits.MaxTokens.
	ErrTokenLimit = errors.New("token limit exceeded")

	// ErrByteLimit indicates the buffer is larger than Limits.MaxBytes.
	ErrByteLimit = errors.New("byte limit exceeded")

	// ErrNilBuffer is returned when New is called without a buffer.
	ErrNilBuffer = errors.New("nil buffer")
)

// LimitError reports which resource cap rejected a document.
type LimitError struct {
	// Limit names the cap, e.g. "max_tokens" or "max_bytes".
	Limit string

	// Value is the observed size.
	Value int

	// Max is the configured cap.
	Max int

	err error
}

// Error implements the error interface.
func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %s is %d, limit is %d", e.err, e.Limit, e.Value, e.Max)
}

// Unwrap returns the sentinel for the cap that was hit.
func (e *LimitError) Unwrap() error {
	return e.err
}
