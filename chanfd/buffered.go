package chanfd

import "sync/atomic"

// Buffered ring (spec §4.3). State is two semaphores (senderSem as
// S_free, initial = capacityPhysical; receiverSem as S_filled, initial
// 0), a ring of capacityPhysical slots over the shared storage block,
// and head/tail indices in/out. The spinlock is elided when
// capacityPhysical == 1, since the semaphores alone already provide
// mutual exclusion between the single producer slot and the single
// consumer slot.

func (ch *Channel) lockRing() {
	if ch.capacityPhysical != 1 {
		ch.lock.lock()
	}
}

func (ch *Channel) unlockRing() {
	if ch.capacityPhysical != 1 {
		ch.lock.unlock()
	}
}

func (ch *Channel) slot(i int) []byte {
	off := i * ch.elementSize
	return ch.storage.Bytes()[off : off+ch.elementSize]
}

func (ch *Channel) sendBuffered(data []byte) error {
	if err := ch.senderSem.Acquire(); err != nil {
		return err
	}

	ch.lockRing()
	copy(ch.slot(ch.in), data)
	ch.in++
	if ch.in == ch.capacityPhysical {
		ch.in = 0
	}
	ch.unlockRing()

	if err := ch.receiverSem.Release(1); err != nil {
		return err
	}
	atomic.AddInt64(&ch.elementCount, 1)
	return nil
}

func (ch *Channel) recvBuffered(out []byte) error {
	if err := ch.receiverSem.Acquire(); err != nil {
		return err
	}

	ch.lockRing()
	copy(out, ch.slot(ch.out))
	ch.out++
	if ch.out == ch.capacityPhysical {
		ch.out = 0
	}
	ch.unlockRing()

	if err := ch.senderSem.Release(1); err != nil {
		return err
	}
	atomic.AddInt64(&ch.elementCount, -1)
	return nil
}
