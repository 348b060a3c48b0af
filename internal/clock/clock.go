// Package clock provides an abstraction for time operations to improve testability.
// Instead of calling time.Now() or time.Sleep() directly, code can use the Clock
// and Sleeper interfaces which can be mocked in tests to control time-dependent
// behavior such as the healthcheck settle interval.
package clock

import (
	"context"
	"time"
)

// Clock is an interface for time operations.
// This allows code to be tested with mock clocks.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// Sleeper is an interface for cancellable waits.
// The healthcheck gate uses it for the fixed settle interval between
// starting the test container and probing its liveness endpoint.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, whichever comes first.
	// It returns ctx.Err() when the wait was interrupted.
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock implements Clock and Sleeper using the actual system time.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done.
func (RealClock) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Ensure RealClock implements Clock and Sleeper.
var (
	_ Clock   = RealClock{}
	_ Sleeper = RealClock{}
)
