// Package lock serializes writers of an output directory.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked is returned when another process holds the lock.
var ErrLocked = errors.New("lock held by another process")

// Lock represents a file-based lock.
type Lock struct {
	name string
	path string
	file *os.File
}

// New creates a lock named name inside dir. The lock file is hidden and is
// removed on release.
func New(dir, name string) *Lock {
	return &Lock{
		name: name,
		path: filepath.Join(dir, "."+name+".lock"),
	}
}

// Path returns the lock file path.
func (l *Lock) Path() string {
	return l.path
}

// Acquire attempts to acquire the lock without blocking.
func (l *Lock) Acquire() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create lock directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}

	if err := tryLock(f); err != nil {
		f.Close()
		l.file = nil
		if errors.Is(err, ErrLocked) {
			return fmt.Errorf("another %s run is writing to %s: %w", l.name, filepath.Dir(l.path), err)
		}
		return fmt.Errorf("acquire lock: %w", err)
	}

	// PID for whoever finds a stale lock file.
	_ = f.Truncate(0)
	_, _ = f.Seek(0, 0)
	fmt.Fprintf(f, "%d\n", os.Getpid())

	l.file = f
	return nil
}

// Release releases the lock and removes the lock file.
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}

	// Remove while still held so a waiting process cannot lock the old inode.
	os.Remove(l.path)

	err := unlock(l.file)
	l.file.Close()
	l.file = nil
	if err != nil {
		return fmt.Errorf("release lock: %w", err)
	}

	return nil
}

// WithLock executes fn while holding the lock named name in dir.
func WithLock(dir, name string, fn func() error) error {
	lock := New(dir, name)
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer lock.Release()

	return fn()
}
