package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "clock.Now() should not return time before actual time.Now()")
	assert.False(t, got.After(after), "clock.Now() should not return time after actual time.Now()")
}

func TestRealClock_Sleep(t *testing.T) {
	t.Parallel()

	t.Run("completes after duration", func(t *testing.T) {
		t.Parallel()
		c := RealClock{}
		start := time.Now()
		err := c.Sleep(context.Background(), 10*time.Millisecond)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
	})

	t.Run("returns early on context cancellation", func(t *testing.T) {
		t.Parallel()
		c := RealClock{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := c.Sleep(ctx, time.Hour)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

// MockClock is a Clock implementation for testing that returns a fixed time.
type MockClock struct {
	FixedTime time.Time
}

// Now returns the fixed time.
func (m MockClock) Now() time.Time {
	return m.FixedTime
}

func TestMockClock_Now(t *testing.T) {
	fixedTime := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	c := MockClock{FixedTime: fixedTime}

	assert.Equal(t, fixedTime, c.Now())
}
