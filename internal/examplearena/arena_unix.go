//go:build linux || darwin || freebsd || netbsd || openbsd

// Package examplearena acquires page-backed memory regions suitable for
// handing to allocator.Init as an arena. It exists because a real caller
// of a constant-time allocator usually wants the arena itself to come
// from the operating system, not from the Go heap, so that its lifetime
// and placement are under the caller's control rather than the garbage
// collector's.
package examplearena

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// New maps a private, anonymous region of at least size bytes and
// returns it as a byte slice ready to pass to allocator.Init. The
// returned Arena must be released with Close once the allocator built
// on top of it is no longer in use.
func New(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("examplearena: size must be positive, got %d", size)
	}

	mem, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("examplearena: mmap: %w", err)
	}

	return &Arena{mem: mem}, nil
}

// Arena owns one mmap-backed region.
type Arena struct {
	mem []byte
}

// Bytes returns the region as a byte slice, ready for allocator.Init.
func (a *Arena) Bytes() []byte { return a.mem }

// Close unmaps the region. The arena, and any allocator built on it,
// must not be used afterward.
func (a *Arena) Close() error {
	if a.mem == nil {
		return nil
	}

	err := unix.Munmap(a.mem)
	a.mem = nil

	if err != nil {
		return fmt.Errorf("examplearena: munmap: %w", err)
	}

	return nil
}
