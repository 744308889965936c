//go:build !linux

package sem

// The core's pollable counting semaphore is a Linux eventfd (see
// sem_linux.go, grounded directly on chanfd.c's use of <sys/eventfd.h>).
// No other platform in the reference pack offers an equivalent kernel
// primitive, so construction fails cleanly here rather than emulating
// one with a non-pollable substitute that would silently break the
// multiplexer-readiness contract in spec §4.5.

func newSemImpl(uint64) (semImpl, error) {
	return nil, ErrUnsupported
}
