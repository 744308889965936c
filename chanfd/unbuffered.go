package chanfd

import "sync/atomic"

// Unbuffered rendezvous (spec §4.2). State is three semaphores:
// senderSem (S_free, initial 1), receiverSem (S_filled, initial 0), and
// ackSem (S_ack, initial 0); one storage slot sized elementSize.
//
// "Receiver completes first": sendUnbuffered only returns after the
// receiver's copy-out has happened, via the S_ack round trip. This is
// what makes stack-allocated payloads safe to hand across an unbuffered
// channel.

func (ch *Channel) sendUnbuffered(data []byte) error {
	if err := ch.senderSem.Acquire(); err != nil {
		return err
	}
	copy(ch.storage.Bytes(), data)
	if err := ch.receiverSem.Release(1); err != nil {
		return err
	}
	// Counted before waiting for the ack, so IsEmpty reports the pending
	// element to a receiver that checks it before calling Recv.
	atomic.AddInt64(&ch.elementCount, 1)
	if err := ch.ackSem.Acquire(); err != nil {
		return err
	}
	return nil
}

func (ch *Channel) recvUnbuffered(out []byte) error {
	if err := ch.receiverSem.Acquire(); err != nil {
		return err
	}
	copy(out, ch.storage.Bytes())
	if err := ch.ackSem.Release(1); err != nil {
		return err
	}
	if err := ch.senderSem.Release(1); err != nil {
		return err
	}
	atomic.AddInt64(&ch.elementCount, -1)
	return nil
}
