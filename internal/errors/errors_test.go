package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wwiii/pipeline/internal/errors"
)

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		errors.ErrPipelineFailed,
		errors.ErrMissingRequiredTools,
		errors.ErrCommandTimeout,
		errors.ErrWorkspaceNotFound,
		errors.ErrWorkspaceLocked,
		errors.ErrContainerRuntime,
		errors.ErrHealthcheckFailed,
		errors.ErrConfigExists,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i == j {
				continue
			}
			assert.NotErrorIs(t, a, b, "sentinel %d should not match sentinel %d", i, j)
		}
	}
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, errors.Wrap(nil, "context"))
	})

	t.Run("preserves error chain", func(t *testing.T) {
		t.Parallel()
		wrapped := errors.Wrap(errors.ErrPipelineFailed, "running ci")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, errors.ErrPipelineFailed)
		assert.Equal(t, "running ci: pipeline failed", wrapped.Error())
	})
}

func TestWrapf(t *testing.T) {
	t.Parallel()

	t.Run("nil error returns nil", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, errors.Wrapf(nil, "gate %s", "lint"))
	})

	t.Run("formats message and preserves chain", func(t *testing.T) {
		t.Parallel()
		wrapped := errors.Wrapf(errors.ErrCommandTimeout, "gate %s", "type-check")
		require.Error(t, wrapped)
		assert.ErrorIs(t, wrapped, errors.ErrCommandTimeout)
		assert.Equal(t, "gate type-check: command timed out", wrapped.Error())
	})
}

func TestUserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "nil error",
			err:  nil,
			want: "",
		},
		{
			name: "known sentinel",
			err:  errors.ErrMissingRequiredTools,
			want: "Required external tools are missing from PATH.",
		},
		{
			name: "wrapped sentinel still matches",
			err:  fmt.Errorf("precondition: %w", errors.ErrMissingRequiredTools),
			want: "Required external tools are missing from PATH.",
		},
		{
			name: "unknown error falls back to its own text",
			err:  stderrors.New("something odd"),
			want: "something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, errors.UserMessage(tt.err))
		})
	}
}

func TestActionable(t *testing.T) {
	t.Parallel()

	t.Run("known sentinel has action", func(t *testing.T) {
		t.Parallel()
		action := errors.Actionable(errors.ErrWorkspaceLocked)
		assert.Contains(t, action, "run.lock")
	})

	t.Run("unknown error has no action", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, errors.Actionable(stderrors.New("unmapped")))
	})

	t.Run("nil error has no action", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, errors.Actionable(nil))
	})
}
