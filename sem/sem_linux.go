//go:build linux

package sem

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"

	"chanfd/internal/obs"
)

// eventfdSem backs a Semaphore with a Linux eventfd opened in
// EFD_SEMAPHORE mode: every read decrements the counter by exactly one
// (blocking while it is zero) and every write adds the written value.
// This mirrors chanfd.c's up()/down() helpers byte for byte.
type eventfdSem struct {
	efd    int
	closed int32
}

func newSemImpl(initial uint64) (semImpl, error) {
	if initial > 0xfffffffe {
		return nil, errors.Errorf("sem: initial count %d exceeds eventfd maximum", initial)
	}
	flags := unix.EFD_CLOEXEC | unix.EFD_SEMAPHORE
	fd, err := unix.Eventfd(uint(initial), flags)
	if err != nil {
		return nil, errors.Wrap(err, "sem: eventfd")
	}
	return &eventfdSem{efd: fd}, nil
}

func (s *eventfdSem) acquire() error {
	if atomic.LoadInt32(&s.closed) != 0 {
		return ErrClosed
	}
	var buf [8]byte
	for {
		n, err := unix.Read(s.efd, buf[:])
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			obs.Fatal("sem: read failed", zap.Int("fd", s.efd), zap.Error(err))
			return err
		}
		if n != 8 {
			obs.Fatal("sem: short read on semaphore fd", zap.Int("fd", s.efd), zap.Int("n", n))
			return errShortIO
		}
		return nil
	}
}

func (s *eventfdSem) release(n uint64) error {
	if n == 0 {
		return errors.New("sem: release of zero")
	}
	if atomic.LoadInt32(&s.closed) != 0 {
		return ErrClosed
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], n)
	written, err := unix.Write(s.efd, buf[:])
	if err != nil {
		obs.Fatal("sem: write failed", zap.Int("fd", s.efd), zap.Error(err))
		return err
	}
	if written != 8 {
		obs.Fatal("sem: short write on semaphore fd", zap.Int("fd", s.efd), zap.Int("n", written))
		return errShortIO
	}
	return nil
}

func (s *eventfdSem) fd() int {
	return s.efd
}

func (s *eventfdSem) close() error {
	if !atomic.CompareAndSwapInt32(&s.closed, 0, 1) {
		return nil
	}
	return unix.Close(s.efd)
}

var errShortIO = errors.New("sem: short read/write on semaphore descriptor")
