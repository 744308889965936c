package chanfd

import (
	"encoding/binary"
	"errors"
	"testing"

	"chanfd/sem"
)

// newTestChannel creates a channel, skipping the test when the host has
// no pollable kernel semaphore (sem.New only backs eventfd on Linux;
// see sem/sem_other.go).
func newTestChannel(t *testing.T, elementSize, capacity int) *Channel {
	t.Helper()
	ch, err := Create(elementSize, capacity)
	if errors.Is(err, sem.ErrUnsupported) {
		t.Skip("platform has no pollable kernel semaphore")
	}
	if err != nil {
		t.Fatalf("Create(%d, %d): %v", elementSize, capacity, err)
	}
	t.Cleanup(func() { ch.Destroy() })
	return ch
}

func sendInt32(t *testing.T, ch *Channel, v int32) {
	t.Helper()
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	if err := ch.Send(buf[:]); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func recvInt32(t *testing.T, ch *Channel) int32 {
	t.Helper()
	var buf [4]byte
	if err := ch.Recv(buf[:]); err != nil {
		t.Fatalf("Recv: %v", err)
	}
	return int32(binary.LittleEndian.Uint32(buf[:]))
}
