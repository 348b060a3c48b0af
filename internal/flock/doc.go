// Package flock provides cross-platform file locking utilities.
//
// The pipeline runner uses an exclusive, non-blocking lock file under the
// workspace (.pipeline/run.lock) so that two concurrent runs cannot race
// over the same tree: the format and build gates write to the workspace,
// and gate ordering guarantees only hold within a single run.
//
// Usage:
//
//	lock, err := flock.Acquire(filepath.Join(dir, ".pipeline", "run.lock"))
//	if err != nil {
//	    // Lock not acquired - workspace is in use
//	}
//	defer lock.Release()
package flock
