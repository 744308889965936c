package chanfd

import (
	"runtime"
	"sync/atomic"
)

// spinlock is a test-and-set spinlock held only across an index bump
// and one copy of elementSize bytes — never across a blocking semaphore
// call (spec §5 "Spinlock discipline"). The busy-wait backs off with
// runtime.Gosched, the same idiom the teacher's CAS-based ring buffers
// (mpmc, dspsc) use while spinning on a sequence number.
type spinlock struct {
	state int32
}

func (l *spinlock) lock() {
	for !atomic.CompareAndSwapInt32(&l.state, 0, 1) {
		runtime.Gosched()
	}
}

func (l *spinlock) unlock() {
	atomic.StoreInt32(&l.state, 0)
}
