// Package sem provides a counting semaphore whose descriptor is pollable
// by an external I/O multiplexer: the descriptor is read-ready exactly
// when the semaphore's count is greater than zero.
//
// Acquire/Release implement a classic kernel-backed counting semaphore.
// FD exposes the backing descriptor for select/poll/epoll; it must never
// be registered for write-readiness, and must never be read from or
// written to directly by callers — doing so corrupts any channel built
// on top of the semaphore.
package sem

import "errors"

// ErrClosed is returned by Acquire/Release once Close has run.
var ErrClosed = errors.New("sem: semaphore closed")

// ErrUnsupported is returned by New on a platform with no pollable
// kernel counting semaphore backing (see sem_other.go).
var ErrUnsupported = errors.New("sem: pollable counting semaphore requires GOOS=linux (eventfd)")

// Semaphore is a kernel counting semaphore exposed as a pollable
// descriptor. The zero value is not usable; construct with New.
type Semaphore struct {
	impl semImpl
}

// New creates a semaphore with the given initial count. It fails if the
// host does not support a pollable kernel semaphore (see sem_other.go)
// or if the underlying syscall fails.
func New(initial uint64) (*Semaphore, error) {
	impl, err := newSemImpl(initial)
	if err != nil {
		return nil, err
	}
	return &Semaphore{impl: impl}, nil
}

// Acquire blocks until the count is greater than zero, then atomically
// decrements it by one. A short read from the backing descriptor is a
// fatal programming error and aborts the process; it can only happen if
// the descriptor has been tampered with outside this package.
func (s *Semaphore) Acquire() error {
	return s.impl.acquire()
}

// Release atomically increments the count by n and wakes any blocked
// acquirers. n must be greater than zero.
func (s *Semaphore) Release(n uint64) error {
	return s.impl.release(n)
}

// FD returns the descriptor backing this semaphore. It is read-ready
// exactly when the count is greater than zero. Register it in the read
// set of any multiplexer; registering it for write-readiness is
// undefined behavior. The descriptor is close-on-exec.
func (s *Semaphore) FD() int {
	return s.impl.fd()
}

// Close releases the backing descriptor. Close on an already-closed
// Semaphore is a no-op.
func (s *Semaphore) Close() error {
	return s.impl.close()
}

// semImpl is the platform-specific backing of a Semaphore.
type semImpl interface {
	acquire() error
	release(n uint64) error
	fd() int
	close() error
}
