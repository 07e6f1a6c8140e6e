package collect

import "time"

// TimeoutGuard runs one collector call under a time budget.
//
// Neither implementation can stop a running goroutine. Preemptive stops
// waiting for it; Cooperative relies on the collector polling
// Context.Expired and detects an overrun only after the call returns.
type TimeoutGuard interface {
	// Call runs fn with ctx. A budget of zero or less disables the guard.
	// An exceeded budget yields a *TimeoutError.
	Call(ctx *Context, budget time.Duration, fn func(*Context) error) error
}

// Preemptive runs each call on its own goroutine and abandons it when the
// budget elapses. The dispatcher then moves on and never touches the
// collector again; the abandoned goroutine keeps running until it returns.
type Preemptive struct{}

// Call implements TimeoutGuard.
func (Preemptive) Call(ctx *Context, budget time.Duration, fn func(*Context) error) error {
	if budget <= 0 {
		return fn(ctx)
	}

	start := time.Now()
	ctx.deadline = start.Add(budget)

	done := make(chan error, 1)
	go func() {
		done <- fn(ctx)
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case err := <-done:
		ctx.deadline = time.Time{}
		return err
	case <-timer.C:
		// ctx now belongs to the abandoned goroutine; it is not reset.
		return &TimeoutError{Budget: budget, Elapsed: time.Since(start), Abandoned: true}
	}
}

// Cooperative runs each call inline with a deadline the collector can poll
// through Context.Expired. A tight loop that never polls cannot be
// interrupted; its overrun is reported once it returns.
type Cooperative struct{}

// Call implements TimeoutGuard.
func (Cooperative) Call(ctx *Context, budget time.Duration, fn func(*Context) error) error {
	if budget <= 0 {
		return fn(ctx)
	}

	start := time.Now()
	ctx.deadline = start.Add(budget)
	err := fn(ctx)
	ctx.deadline = time.Time{}

	if elapsed := time.Since(start); elapsed > budget {
		return &TimeoutError{Budget: budget, Elapsed: elapsed}
	}
	return err
}

// GuardByName returns the guard for "preemptive", "cooperative" or "auto".
func GuardByName(name string) (TimeoutGuard, bool) {
	switch name {
	case "", "auto":
		return DefaultTimeoutGuard(), true
	case "preemptive":
		return Preemptive{}, true
	case "cooperative":
		return Cooperative{}, true
	default:
		return nil, false
	}
}
