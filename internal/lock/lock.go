// Package lock guards a repository against concurrent mutating invocations
// with an advisory file lock.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// ErrLocked is returned when another process holds the repository lock.
var ErrLocked = errors.New("repository is locked by another svcs process")

// Locker wraps an exclusive, non-blocking lock on a single file.
type Locker struct {
	fl *flock.Flock
}

// New creates a Locker for the given lock file path. The file is created on
// first acquisition.
func New(path string) *Locker {
	return &Locker{fl: flock.New(path)}
}

// Path returns the lock file path.
func (l *Locker) Path() string { return l.fl.Path() }

// Acquire takes the lock or fails immediately with ErrLocked.
func (l *Locker) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.fl.Path()), 0o755); err != nil {
		return fmt.Errorf("create lock dir: %w", err)
	}

	ok, err := l.fl.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock %s: %w", l.fl.Path(), err)
	}
	if !ok {
		return fmt.Errorf("%w (%s)", ErrLocked, l.fl.Path())
	}
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *Locker) Release() error {
	if !l.fl.Locked() {
		return nil
	}
	if err := l.fl.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.fl.Path(), err)
	}
	return nil
}

// With runs fn while holding the lock.
func (l *Locker) With(fn func() error) (err error) {
	if err := l.Acquire(); err != nil {
		return err
	}
	defer func() {
		if rerr := l.Release(); rerr != nil && err == nil {
			err = rerr
		}
	}()
	return fn()
}
