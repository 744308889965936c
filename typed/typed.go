// Package typed provides compile-time type-safe Send/Recv wrappers over
// chanfd.Channel, the Go analogue of chanfd.h's CHANFD_INLINE_SEND/RECV
// macros (and the chanfd_send_int/chanfd_recv_int helpers built from
// them). The underlying channel still only ever copies raw bytes; this
// package just pins the element size to sizeof(T) and does the pointer
// cast the C macros do inline, generically.
package typed

import (
	"unsafe"

	"chanfd/chanfd"
)

// Channel is a type-safe view over a chanfd.Channel carrying values of
// type T. T must be a fixed-layout type (no surprise indirection the
// caller didn't intend) — the same caveat the source's own doc comment
// makes about senders/receivers normally carrying pointers to
// heap-allocated structs.
type Channel[T any] struct {
	core *chanfd.Channel
}

// NewChannel creates a channel sized to hold exactly one T per slot.
// capacity == 0 requests the unbuffered rendezvous variant.
func NewChannel[T any](capacity int) (*Channel[T], error) {
	var zero T
	core, err := chanfd.Create(int(unsafe.Sizeof(zero)), capacity)
	if err != nil {
		return nil, err
	}
	return &Channel[T]{core: core}, nil
}

// Send copies v into the channel; see chanfd.Channel.Send for blocking
// semantics.
func (c *Channel[T]) Send(v T) error {
	return c.core.Send(asBytes(&v))
}

// Recv blocks until a value is available and returns a copy of it.
func (c *Channel[T]) Recv() (T, error) {
	var v T
	err := c.core.Recv(asBytes(&v))
	return v, err
}

// SenderFD returns the descriptor to poll for "a Send will not block".
func (c *Channel[T]) SenderFD() int { return c.core.SenderFD() }

// ReceiverFD returns the descriptor to poll for "a Recv will not block".
func (c *Channel[T]) ReceiverFD() int { return c.core.ReceiverFD() }

// IsEmpty is the fast-path emptiness check; see chanfd.Channel.IsEmpty.
func (c *Channel[T]) IsEmpty() bool { return c.core.IsEmpty() }

// Destroy tears down the underlying channel.
func (c *Channel[T]) Destroy() error { return c.core.Destroy() }

// Core returns the underlying untyped channel, for callers that need to
// register its descriptors directly with a multiplexer.
func (c *Channel[T]) Core() *chanfd.Channel { return c.core }

func asBytes[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), unsafe.Sizeof(*v))
}
