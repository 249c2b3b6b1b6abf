// Package secret holds short-lived sensitive bytes such as the admin
// credential.
//
// A Buffer lives in an anonymous mmap region outside the Go heap, so the
// garbage collector never copies it. The region is locked into RAM and
// excluded from core dumps where the kernel allows it. Close zeroes the
// bytes before unmapping them.
package secret

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// Buffer is a fixed-capacity region of secret bytes. Len reports how many of
// them are in use. A Buffer must not be copied; call Close when done.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	length int
	locked bool
	closed bool
}

// New allocates a zero-filled buffer able to hold size bytes.
//
// mlock and MADV_DONTDUMP are best effort: an unprivileged process may hit
// RLIMIT_MEMLOCK, and the buffer is still zeroed on Close in that case.
func New(size int) (*Buffer, error) {
	if size <= 0 {
		return nil, fmt.Errorf("secret: buffer size must be positive, got %d", size)
	}

	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	b := &Buffer{data: data, length: size}
	if err := unix.Mlock(data); err == nil {
		b.locked = true
	}
	_ = unix.Madvise(data, unix.MADV_DONTDUMP)
	return b, nil
}

// NewFromBytes copies source into a new buffer and zeroes source.
func NewFromBytes(source []byte) (*Buffer, error) {
	if len(source) == 0 {
		return nil, fmt.Errorf("secret: cannot create buffer from empty source")
	}
	b, err := New(len(source))
	if err != nil {
		Zero(source)
		return nil, err
	}
	copy(b.data, source)
	Zero(source)
	return b, nil
}

// Bytes returns the secret bytes in use. The slice points into the buffer's
// memory and must not outlive it. Panics after Close.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data[:b.length]
}

// Len returns the number of secret bytes in use.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.length
}

// setLen shrinks the in-use window after a partial fill.
func (b *Buffer) setLen(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.length = n
}

// Close zeroes the whole region, then unlocks and unmaps it. Close is
// idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	Zero(b.data)

	var firstErr error
	if b.locked {
		if err := unix.Munlock(b.data); err != nil {
			firstErr = fmt.Errorf("secret: munlock failed: %w", err)
		}
	}
	if err := unix.Munmap(b.data); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("secret: munmap failed: %w", err)
	}
	b.data = nil
	b.length = 0
	return firstErr
}

// Zero overwrites b with zeros. A nil slice is a no-op.
func Zero(b []byte) {
	clear(b)
}
