package collect

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/yaklabco/mdwarehouse/internal/logging"
	"github.com/yaklabco/mdwarehouse/pkg/warehouse"
)

// Options configures a Dispatcher.
type Options struct {
	// Strict aborts dispatch on the first collector failure.
	Strict bool

	// Timeout is the budget of a single collector call. Zero disables it.
	Timeout time.Duration

	// Guard enforces Timeout. Nil selects DefaultTimeoutGuard.
	Guard TimeoutGuard
}

type dispatchState uint8

const (
	stateIdle dispatchState = iota
	stateDispatched
	stateFinalized
)

// Dispatcher routes every token of one warehouse to the interested
// collectors of a registry in a single pass, then merges their results.
//
// A Dispatcher serves exactly one parse: Run once, then Finalize once.
// It is not safe for concurrent use; the running flag only rejects
// reentrant calls made from inside a collector.
type Dispatcher struct {
	reg  *Registry
	opts Options

	running atomic.Bool
	// active is the slot index plus one of the call in progress, zero when idle.
	active atomic.Int32
	// calls counts collector calls still executing, abandoned ones included.
	calls atomic.Int32
	// reentered is the active value at the first attributable reentrant call.
	reentered atomic.Int32

	state     dispatchState
	errs      []CollectorError
	delivered atomic.Int64
}

// NewDispatcher creates a dispatcher over reg.
func NewDispatcher(reg *Registry, opts Options) *Dispatcher {
	if opts.Guard == nil {
		opts.Guard = DefaultTimeoutGuard()
	}
	return &Dispatcher{reg: reg, opts: opts}
}

// Errors returns the collector failures recorded so far.
func (d *Dispatcher) Errors() []CollectorError {
	out := make([]CollectorError, len(d.errs))
	copy(out, d.errs)
	return out
}

// Delivered returns the number of OnToken calls made by Run.
func (d *Dispatcher) Delivered() int {
	return int(d.delivered.Load())
}

// enter claims the dispatcher or reports a reentrant call.
func (d *Dispatcher) enter() error {
	if !d.running.CompareAndSwap(false, true) {
		// With an abandoned call still executing, the caller is unknown.
		if slot := d.active.Load(); slot != 0 && d.calls.Load() == 1 {
			d.reentered.CompareAndSwap(0, slot)
		}
		return ErrReentrantDispatch
	}
	return nil
}

// begin marks slot id as the call in progress.
func (d *Dispatcher) begin(id int) {
	d.active.Store(int32(id + 1))
}

// end clears the call in progress and reports whether slot id reentered
// the dispatcher during it.
func (d *Dispatcher) end(id int) bool {
	d.active.Store(0)
	return d.reentered.Swap(0) == int32(id+1)
}

// Run dispatches every token of wh once. Collector failures are recorded
// and dispatch continues, unless Options.Strict is set. A reentrant call,
// cancellation of ctx and strict-mode failures abort the pass.
func (d *Dispatcher) Run(ctx context.Context, wh *warehouse.Warehouse) error {
	if err := d.enter(); err != nil {
		return err
	}
	defer d.running.Store(false)

	switch d.state {
	case stateDispatched:
		return ErrAlreadyDispatched
	case stateFinalized:
		return ErrFinalized
	case stateIdle:
	}
	d.state = stateDispatched

	if wh == nil {
		return ErrNilWarehouse
	}

	logger := logging.FromContext(ctx)
	logger.Debug("dispatch started",
		logging.FieldTokens, wh.Len(),
		logging.FieldCollectors, d.reg.Len())

	cctx := newContext(ctx)
	routes := make([]int, 0, d.reg.Len())

	for idx := range wh.Len() {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("dispatch cancelled at token %d: %w", idx, err)
		}

		view, _ := wh.View(idx)
		if view.HasMap {
			cctx.line = view.StartLine
		}
		cctx.index = idx

		// A close token sees the same containers as its open token.
		if view.IsClose() {
			cctx.pop()
		}

		routes = d.reg.route(view, routes[:0])
		for _, id := range routes {
			var err error
			cctx, err = d.deliver(cctx, id, idx, view, wh)
			if err != nil {
				return err
			}
		}

		if view.IsOpen() {
			cctx.push(view.Kind)
		}
	}

	logger.Debug("dispatch finished",
		logging.FieldTokens, wh.Len(),
		logging.FieldErrorsTotal, len(d.errs))

	return nil
}

// deliver runs one collector on one token. It returns the context to keep
// dispatching with, which is a detached copy after an abandoned call.
func (d *Dispatcher) deliver(
	cctx *Context,
	id, idx int,
	view warehouse.View,
	wh *warehouse.Warehouse,
) (*Context, error) {
	sl := &d.reg.slots[id]
	if sl.disabled || cctx.insideAny(sl.ignore) {
		return cctx, nil
	}

	collector := sl.collector
	d.begin(id)
	err := d.opts.Guard.Call(cctx, d.opts.Timeout, func(c *Context) (err error) {
		d.calls.Add(1)
		defer d.calls.Add(-1)
		defer func() {
			if r := recover(); r != nil {
				err = &PanicError{Value: r}
			}
		}()
		if !collector.ShouldProcess(view, c) {
			return nil
		}
		d.delivered.Add(1)
		return collector.OnToken(idx, view, c, wh)
	})

	if d.end(id) {
		return cctx, fmt.Errorf("collector %q: %w", sl.name, ErrReentrantDispatch)
	}
	if err == nil {
		return cctx, nil
	}

	cerr := CollectorError{
		Collector: sl.name,
		Token:     idx,
		Kind:      classify(err),
		Message:   err.Error(),
		Err:       err,
	}

	var timeout *TimeoutError
	if errors.As(err, &timeout) {
		sl.disabled = true
		if timeout.Abandoned {
			sl.abandoned = true
			cctx = cctx.detach()
		}
	}

	if rerr := d.record(cctx.Context(), cerr); rerr != nil {
		return cctx, rerr
	}
	return cctx, nil
}

// record stores a collector failure, or returns it in strict mode.
func (d *Dispatcher) record(ctx context.Context, cerr CollectorError) error {
	logging.ForCollector(ctx, cerr.Collector).Debug("collector failed",
		logging.FieldToken, cerr.Token,
		logging.FieldKind, string(cerr.Kind),
		logging.FieldError, cerr.Message)

	if d.opts.Strict {
		return fmt.Errorf("strict mode: %w", cerr)
	}
	d.errs = append(d.errs, cerr)
	return nil
}

func classify(err error) ErrorKind {
	var panicErr *PanicError
	switch {
	case errors.Is(err, ErrCollectorTimeout):
		return KindTimeout
	case errors.As(err, &panicErr):
		return KindPanic
	default:
		return KindError
	}
}
