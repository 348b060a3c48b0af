package flock

import (
	"fmt"
	"os"
	"path/filepath"
)

// lockFileMode is the permission mode for lock files.
const lockFileMode = 0o600

// Lock is a held exclusive file lock.
type Lock struct {
	file *os.File
}

// Acquire opens (creating if needed) the file at path and takes an
// exclusive non-blocking lock on it. It returns an error immediately if
// another process holds the lock.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, lockFileMode) //nolint:gosec // Path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}

	if err := exclusive(file.Fd()); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to acquire lock on %s: %w", path, err)
	}

	return &Lock{file: file}, nil
}

// Release unlocks and closes the lock file. It is safe to call on a nil
// receiver so callers can defer it unconditionally.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	unlockErr := unlock(l.file.Fd())
	closeErr := l.file.Close()
	l.file = nil
	if unlockErr != nil {
		return fmt.Errorf("failed to release lock: %w", unlockErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close lock file: %w", closeErr)
	}
	return nil
}
