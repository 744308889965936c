// Package chanfd implements a typed, fixed-size-payload inter-thread
// channel whose readiness is exposed as a pollable file descriptor pair,
// so it can sit in a generic I/O multiplexing loop next to sockets,
// pipes, and timers.
//
// A channel created with capacity 0 is unbuffered: send blocks until a
// receiver has copied the value out (rendezvous, §4.2). A channel
// created with capacity >= 1 is buffered: send returns as soon as the
// value is in the ring (§4.3). Both variants are driven entirely by
// counting semaphores (package sem); the buffered variant additionally
// uses a spinlock to protect its ring indices when capacity > 1.
package chanfd

import (
	"sync/atomic"

	"go.uber.org/zap"

	"chanfd/internal/obs"
	"chanfd/internal/shm"
	"chanfd/sem"
)

// Channel is one logical channel: either the unbuffered rendezvous or
// the buffered ring, selected at Create time and fixed for its
// lifetime. The zero value is not usable.
type Channel struct {
	elementSize      int
	capacity         int // as given to Create; 0 means unbuffered
	capacityPhysical int // max(capacity, 1)
	buffered         bool

	storage *shm.Block

	elementCount int64 // atomic; see IsEmpty

	senderSem   *sem.Semaphore // free slots
	receiverSem *sem.Semaphore // filled slots

	// unbuffered only
	ackSem *sem.Semaphore

	// buffered only
	lock spinlock
	in   int
	out  int

	destroyed int32 // atomic guard against double Destroy
}

// SetLogger installs l as the package-wide diagnostic logger, used only
// for construction-error context and the fatal short-read/short-write
// abort path (spec §7). Passing nil restores the no-op default.
func SetLogger(l *zap.Logger) {
	obs.Set(l)
}

// Create allocates a new channel carrying elements of elementSize bytes.
// capacity == 0 requests the unbuffered rendezvous variant; capacity >=
// 1 requests the buffered ring variant with that many slots.
//
// The backing channel struct's storage block is allocated from an
// anonymous MAP_SHARED mapping (package shm) so that it remains visible,
// byte for byte, to any process that later inherits it across fork —
// matching the source's own rationale for using mmap.
func Create(elementSize, capacity int) (*Channel, error) {
	if elementSize <= 0 {
		return nil, ErrInvalidElementSize
	}
	physical := capacity
	if physical <= 0 {
		physical = 1
	}

	storage, err := shm.Alloc(physical * elementSize)
	if err != nil {
		obs.L().Warn("chanfd: storage allocation failed", zap.Error(err))
		return nil, err
	}

	receiverSem, err := sem.New(0)
	if err != nil {
		storage.Free()
		obs.L().Warn("chanfd: receiver semaphore creation failed", zap.Error(err))
		return nil, err
	}

	senderSem, err := sem.New(uint64(physical))
	if err != nil {
		receiverSem.Close()
		storage.Free()
		obs.L().Warn("chanfd: sender semaphore creation failed", zap.Error(err))
		return nil, err
	}

	ch := &Channel{
		elementSize:      elementSize,
		capacity:         capacity,
		capacityPhysical: physical,
		buffered:         capacity > 0,
		storage:          storage,
		senderSem:        senderSem,
		receiverSem:      receiverSem,
	}

	if ch.buffered {
		// capacity-1 elision (spec §4.3, §9): the lock is simply never
		// taken when capacityPhysical == 1, since the semaphores alone
		// already serialize the single slot.
	} else {
		ackSem, err := sem.New(0)
		if err != nil {
			senderSem.Close()
			receiverSem.Close()
			storage.Free()
			obs.L().Warn("chanfd: ack semaphore creation failed", zap.Error(err))
			return nil, err
		}
		ch.ackSem = ackSem
	}

	return ch, nil
}

// Destroy closes every descriptor owned by ch and releases its storage.
// Destroy(nil) is a no-op. The caller must ensure no goroutine is inside
// Send, Recv, or polling either fd (spec §4.6 precondition); violating
// this is undefined and not detected here.
func (ch *Channel) Destroy() error {
	if ch == nil {
		return nil
	}
	if !atomic.CompareAndSwapInt32(&ch.destroyed, 0, 1) {
		return nil
	}

	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if ch.ackSem != nil {
		record(ch.ackSem.Close())
	}
	record(ch.senderSem.Close())
	record(ch.receiverSem.Close())
	record(ch.storage.Free())
	return firstErr
}

// SenderFD returns the descriptor backing the "free slots" semaphore.
// It is readable, for purposes of an external multiplexer, exactly when
// a Send by the thread that wins the race to call it will not block
// (spec §4.5). It must only ever be polled for read-readiness, and must
// never be read from or written to directly.
func (ch *Channel) SenderFD() int {
	return ch.senderSem.FD()
}

// ReceiverFD returns the descriptor backing the "filled slots"
// semaphore; symmetric to SenderFD for Recv.
func (ch *Channel) ReceiverFD() int {
	return ch.receiverSem.FD()
}

// ElementSize returns the fixed per-element byte size the channel was
// created with.
func (ch *Channel) ElementSize() int {
	return ch.elementSize
}

// Capacity returns the capacity the channel was created with (0 for an
// unbuffered channel).
func (ch *Channel) Capacity() int {
	return ch.capacity
}

// IsEmpty performs a fast, lock-free check of whether the channel
// currently holds any elements (spec §4.4).
//
// It is advisory: callers that need a hard guarantee of non-emptiness
// before blocking should instead wait on ReceiverFD in a multiplexer.
// The increment/decrement of the backing counter happens after the
// paired semaphore release in Send/Recv, so there is a brief window in
// which a concurrent IsEmpty can observe the pre-update state; this is
// the same window the source implementation accepts (spec §9, Open
// Questions).
func (ch *Channel) IsEmpty() bool {
	return atomic.LoadInt64(&ch.elementCount) == 0
}
