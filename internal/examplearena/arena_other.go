//go:build !(linux || darwin || freebsd || netbsd || openbsd || windows)

package examplearena

import "fmt"

// New allocates a plain Go-heap-backed region of at least size bytes.
// Platforms without a dedicated mmap/VirtualAlloc path below fall back
// to this; the returned Arena is still a valid allocator.Init argument,
// it just isn't independent of the garbage collector.
func New(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("examplearena: size must be positive, got %d", size)
	}

	return &Arena{mem: make([]byte, size)}, nil
}

// Arena owns one heap-backed region.
type Arena struct {
	mem []byte
}

// Bytes returns the region as a byte slice, ready for allocator.Init.
func (a *Arena) Bytes() []byte { return a.mem }

// Close is a no-op on this platform; the region is reclaimed by the
// garbage collector once nothing references it.
func (a *Arena) Close() error {
	a.mem = nil

	return nil
}
