package testutil

import (
	"context"
	"errors"
	"testing"
	"time"
)

// ErrSimulated is returned by fakes that need to fail on purpose.
var ErrSimulated = errors.New("simulated error for testing")

// ContextWithTimeout returns a context canceled after d or when the test ends.
func ContextWithTimeout(tb testing.TB, d time.Duration) context.Context {
	tb.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	tb.Cleanup(cancel)
	return ctx
}

// ContextWithCancel returns a cancelable context that is also canceled when the test ends.
func ContextWithCancel(tb testing.TB) (context.Context, context.CancelFunc) {
	tb.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	tb.Cleanup(cancel)
	return ctx, cancel
}
