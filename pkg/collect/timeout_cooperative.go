//go:build js || wasip1

package collect

// DefaultTimeoutGuard returns the guard for the build platform. These
// targets run all goroutines on a single thread, so a busy collector would
// starve the timer; the deadline is cooperative.
func DefaultTimeoutGuard() TimeoutGuard {
	return Cooperative{}
}
