//go:build !js && !wasip1

package collect

// DefaultTimeoutGuard returns the guard for the build platform. Goroutines
// here run on OS threads with asynchronous preemption, so a hung collector
// can be abandoned.
func DefaultTimeoutGuard() TimeoutGuard {
	return Preemptive{}
}
