package collect

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors.
var (
	// ErrReentrantDispatch is returned when Run or Finalize is called while
	// the same dispatcher is already running.
	ErrReentrantDispatch = errors.New("reentrant dispatch")

	// ErrAlreadyDispatched is returned by a second Run on one dispatcher.
	ErrAlreadyDispatched = errors.New("dispatcher already ran")

	// ErrFinalized is returned by Run or Finalize after Finalize.
	ErrFinalized = errors.New("dispatcher already finalized")

	// ErrDuplicateKey is wrapped by DuplicateKeyError.
	ErrDuplicateKey = errors.New("duplicate result key")

	// ErrDuplicateCollector is returned when two collectors share a name.
	ErrDuplicateCollector = errors.New("duplicate collector name")

	// ErrInvalidCollector is returned for a nil collector or an empty name.
	ErrInvalidCollector = errors.New("invalid collector")

	// ErrNilWarehouse is returned by Run without a warehouse.
	ErrNilWarehouse = errors.New("nil warehouse")

	// ErrCollectorTimeout is wrapped by TimeoutError.
	ErrCollectorTimeout = errors.New("collector timed out")
)

// ErrorKind classifies a collector failure.
type ErrorKind string

// Collector failure kinds.
const (
	KindError    ErrorKind = "error"
	KindPanic    ErrorKind = "panic"
	KindTimeout  ErrorKind = "timeout"
	KindFinalize ErrorKind = "finalize"
)

// CollectorError records one isolated collector failure.
type CollectorError struct {
	// Collector is the failing collector's name.
	Collector string `json:"collector"`

	// Token is the index of the token being dispatched, or -1 for Finalize.
	Token int `json:"token"`

	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`

	// Err is the underlying error. It is not serialized.
	Err error `json:"-"`
}

func (e CollectorError) Error() string {
	if e.Token < 0 {
		return fmt.Sprintf("collector %q: %s: %s", e.Collector, e.Kind, e.Message)
	}
	return fmt.Sprintf("collector %q at token %d: %s: %s", e.Collector, e.Token, e.Kind, e.Message)
}

func (e CollectorError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError names the key and the two collectors that produced it.
type DuplicateKeyError struct {
	Key    string
	First  string
	Second string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s %q: produced by %q and %q", ErrDuplicateKey, e.Key, e.First, e.Second)
}

func (e *DuplicateKeyError) Unwrap() error {
	return ErrDuplicateKey
}

// TimeoutError reports a call that exceeded its budget.
type TimeoutError struct {
	Budget  time.Duration
	Elapsed time.Duration

	// Abandoned is true when the call may still be running in the background.
	Abandoned bool
}

func (e *TimeoutError) Error() string {
	if e.Abandoned {
		return fmt.Sprintf("%s: still running after %s", ErrCollectorTimeout, e.Budget)
	}
	return fmt.Sprintf("%s: took %s, budget %s", ErrCollectorTimeout, e.Elapsed.Round(time.Microsecond), e.Budget)
}

func (e *TimeoutError) Unwrap() error {
	return ErrCollectorTimeout
}

// PanicError carries a value recovered from a collector panic.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}
