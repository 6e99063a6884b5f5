// Package filelock serializes destructive runs over the same directory
// tree across processes.
package filelock

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// RunLock guards a directory tree against concurrent rewrite runs. The lock
// file lives in the system temp directory, keyed by the tree's absolute
// path, so it never shows up in the tree being rewritten.
type RunLock struct {
	flock *flock.Flock
	path  string
}

// ForRoot creates the lock for the given (absolute) root path.
func ForRoot(root string) *RunLock {
	sum := sha256.Sum256([]byte(root))
	path := filepath.Join(os.TempDir(), fmt.Sprintf("resub-%x.lock", sum[:8]))

	return &RunLock{
		flock: flock.New(path),
		path:  path,
	}
}

// TryLock attempts to acquire the lock without blocking. Returns false if
// another process holds it.
func (l *RunLock) TryLock() (bool, error) {
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, fmt.Errorf("failed to try lock on %s: %w", l.path, err)
	}

	return acquired, nil
}

// Unlock releases the lock.
func (l *RunLock) Unlock() error {
	err := l.flock.Unlock()
	if err != nil {
		return fmt.Errorf("failed to release lock on %s: %w", l.path, err)
	}

	return nil
}

// Path returns the lock file location, mainly for diagnostics.
func (l *RunLock) Path() string {
	return l.path
}
