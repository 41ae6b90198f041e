//go:build windows

package examplearena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// New reserves and commits a private region of at least size bytes via
// VirtualAlloc and returns it as a byte slice ready to pass to
// allocator.Init.
func New(size int) (*Arena, error) {
	if size <= 0 {
		return nil, fmt.Errorf("examplearena: size must be positive, got %d", size)
	}

	addr, err := windows.VirtualAlloc(0, uintptr(size), windows.MEM_COMMIT|windows.MEM_RESERVE, windows.PAGE_READWRITE)
	if err != nil {
		return nil, fmt.Errorf("examplearena: VirtualAlloc: %w", err)
	}

	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	return &Arena{mem: mem, addr: addr}, nil
}

// Arena owns one VirtualAlloc-backed region.
type Arena struct {
	mem  []byte
	addr uintptr
}

// Bytes returns the region as a byte slice, ready for allocator.Init.
func (a *Arena) Bytes() []byte { return a.mem }

// Close releases the region. The arena, and any allocator built on it,
// must not be used afterward.
func (a *Arena) Close() error {
	if a.addr == 0 {
		return nil
	}

	addr := a.addr
	a.addr = 0
	a.mem = nil

	if err := windows.VirtualFree(addr, 0, windows.MEM_RELEASE); err != nil {
		return fmt.Errorf("examplearena: VirtualFree: %w", err)
	}

	return nil
}
