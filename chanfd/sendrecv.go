package chanfd

// Send copies data into the channel. data must be exactly ElementSize()
// bytes. On a buffered channel Send blocks only until the payload is in
// the ring; on an unbuffered channel it blocks until a matching Recv has
// copied the payload out (spec §4.2, §4.3).
//
// Send normally carries a pointer's worth of payload to a heap-allocated
// value — element_size is fixed at Create time, so the caller owns the
// marshaling. In both variants the payload bytes are copied before Send
// returns, so data may be reused immediately. Memory the payload refers
// to is a different matter: only on an unbuffered channel has the
// receiver's copy-out happened before the sender's return, so only there
// may the payload refer to memory the sender releases after Send returns.
//
// Send is total on a live, correctly-used channel: per spec §7 there is
// no operational error path after successful construction.
func (ch *Channel) Send(data []byte) error {
	if len(data) != ch.elementSize {
		return ErrElementSizeMismatch
	}
	if ch.buffered {
		return ch.sendBuffered(data)
	}
	return ch.sendUnbuffered(data)
}

// Recv blocks until an element is available, then copies it into out,
// which must be exactly ElementSize() bytes. Recv is total on a live,
// correctly-used channel.
func (ch *Channel) Recv(out []byte) error {
	if len(out) != ch.elementSize {
		return ErrElementSizeMismatch
	}
	if ch.buffered {
		return ch.recvBuffered(out)
	}
	return ch.recvUnbuffered(out)
}
