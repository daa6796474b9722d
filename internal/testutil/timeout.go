package testutil

import (
	"context"
	"testing"
	"time"
)

const (
	// DefaultRunTimeout bounds a single visualized run in tests.
	DefaultRunTimeout = 10 * time.Second

	// DefaultTestBuffer is subtracted from the test deadline to leave time
	// for cleanup before the test binary times out.
	DefaultTestBuffer = 2 * time.Second
)

// ContextWithTestDeadline creates a context that respects the test's deadline,
// less DefaultTestBuffer. Without a usable test deadline it times out after
// fallback.
func ContextWithTestDeadline(t *testing.T, fallback time.Duration) (context.Context, context.CancelFunc) {
	t.Helper()

	if deadline, ok := t.Deadline(); ok {
		adjusted := deadline.Add(-DefaultTestBuffer)
		if time.Until(adjusted) > 0 && time.Until(adjusted) < fallback {
			return context.WithDeadline(context.Background(), adjusted)
		}
	}
	return context.WithTimeout(context.Background(), fallback)
}

// RunContext returns a context sized for one run of the controller.
func RunContext(t *testing.T) (context.Context, context.CancelFunc) {
	t.Helper()
	return ContextWithTestDeadline(t, DefaultRunTimeout)
}
