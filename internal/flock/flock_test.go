//go:build unix

package flock_test

import (
	"path/filepath"
	"testing"

	"github.com/wwiii/pipeline/internal/flock"
)

func TestAcquire(t *testing.T) {
	t.Parallel()

	t.Run("acquires lock on new file", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		lockFile := filepath.Join(tmpDir, "run.lock")

		lock, err := flock.Acquire(lockFile)
		if err != nil {
			t.Fatalf("expected to acquire lock, got error: %v", err)
		}
		if releaseErr := lock.Release(); releaseErr != nil {
			t.Errorf("expected to release lock, got error: %v", releaseErr)
		}
	})

	t.Run("creates missing lock directory", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		lockFile := filepath.Join(tmpDir, ".pipeline", "run.lock")

		lock, err := flock.Acquire(lockFile)
		if err != nil {
			t.Fatalf("expected to acquire lock, got error: %v", err)
		}
		if releaseErr := lock.Release(); releaseErr != nil {
			t.Errorf("failed to release lock: %v", releaseErr)
		}
	})

	t.Run("fails to acquire lock when already held", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		lockFile := filepath.Join(tmpDir, "run.lock")

		first, err := flock.Acquire(lockFile)
		if err != nil {
			t.Fatalf("first lock acquisition failed: %v", err)
		}
		defer func() {
			if releaseErr := first.Release(); releaseErr != nil {
				t.Errorf("failed to release first lock: %v", releaseErr)
			}
		}()

		second, err := flock.Acquire(lockFile)
		if err == nil {
			t.Error("expected second acquisition to fail, but it succeeded")
			_ = second.Release()
		}
	})

	t.Run("lock can be reacquired after release", func(t *testing.T) {
		t.Parallel()
		tmpDir := t.TempDir()
		lockFile := filepath.Join(tmpDir, "run.lock")

		lock, err := flock.Acquire(lockFile)
		if err != nil {
			t.Fatalf("first lock failed: %v", err)
		}
		if releaseErr := lock.Release(); releaseErr != nil {
			t.Fatalf("release failed: %v", releaseErr)
		}

		lock, err = flock.Acquire(lockFile)
		if err != nil {
			t.Errorf("second lock failed: %v", err)
		}
		if releaseErr := lock.Release(); releaseErr != nil {
			t.Errorf("failed to release lock: %v", releaseErr)
		}
	})

	t.Run("release is safe on nil lock", func(t *testing.T) {
		t.Parallel()
		var lock *flock.Lock
		if err := lock.Release(); err != nil {
			t.Errorf("nil release should be a no-op, got: %v", err)
		}
	})
}
