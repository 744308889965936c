//go:build !windows

// Package shm allocates anonymous, shareable memory blocks: regions that
// stay valid and mutually visible across a fork(2), the way chanfd.c's
// chanfd_create allocates both the channel struct and its storage block
// with mmap(MAP_SHARED | MAP_ANONYMOUS).
package shm

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Block is a page-backed memory region shared via an anonymous MAP_SHARED
// mapping. It outlives the goroutine that allocated it and is visible,
// byte for byte, to any process that inherits it across fork.
type Block struct {
	bytes []byte
}

// Alloc maps size bytes of zeroed, shareable memory. size must be > 0.
func Alloc(size int) (*Block, error) {
	if size <= 0 {
		return nil, errors.Errorf("shm: invalid size %d", size)
	}
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, errors.Wrap(err, "shm: mmap")
	}
	return &Block{bytes: b}, nil
}

// Bytes returns the backing slice. Writes to it are visible to every
// mapper of the same underlying pages.
func (b *Block) Bytes() []byte {
	return b.bytes
}

// Free unmaps the block. Using the Block, or any slice derived from
// Bytes, after Free is undefined.
func (b *Block) Free() error {
	if b.bytes == nil {
		return nil
	}
	err := unix.Munmap(b.bytes)
	b.bytes = nil
	return err
}
