package halffit_test

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/orizon-lang/halffit/internal/allocator"
	"github.com/orizon-lang/halffit/internal/examplearena"
)

// Example demonstrates the minimal lifecycle: carve an Instance out of a
// caller-owned arena, allocate, write through the returned pointer, and
// free it again.
func Example() {
	arena := make([]byte, 64*1024)

	in, err := allocator.Init(arena)
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	p := in.Allocate(100)
	buf := unsafe.Slice((*byte)(p), 100)
	copy(buf, []byte("hello, constant-time allocator"))

	fmt.Println(string(buf[:30]))
	fmt.Println("allocated:", in.Allocated())

	in.Free(p)
	fmt.Println("allocated after free:", in.Allocated())

	// Output:
	// hello, constant-time allocator
	// allocated: 256
	// allocated after free: 0
}

// ExampleWithCriticalSection demonstrates wiring a mutex as the
// critical-section pair for a multi-goroutine caller. The allocator
// itself never locks anything: every Allocate, Free, and Diagnostics
// call brackets its work with the two hooks supplied at Init.
func ExampleWithCriticalSection() {
	var mu sync.Mutex

	in, err := allocator.Init(make([]byte, 256*1024), allocator.WithCriticalSection(mu.Lock, mu.Unlock))
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	var wg sync.WaitGroup
	results := make([]unsafe.Pointer, 8)

	for i := range results {
		wg.Add(1)

		go func(i int) {
			defer wg.Done()

			results[i] = in.Allocate(64)
		}(i)
	}

	wg.Wait()

	ok := 0
	for _, p := range results {
		if p != nil {
			ok++
		}
	}

	fmt.Println("successful allocations:", ok)

	// Output:
	// successful allocations: 8
}

// ExampleWithInvalidPointerHook demonstrates turning a rejected Free call
// into a reported assertion instead of the default silent no-op.
func ExampleWithInvalidPointerHook() {
	var rejected bool

	in, err := allocator.Init(make([]byte, 64*1024), allocator.WithInvalidPointerHook(func(p unsafe.Pointer) {
		rejected = true
	}))
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	p := in.Allocate(16)

	// Offsetting a legitimate pointer by one byte can never be a header
	// boundary, so the audit rejects it.
	in.Free(unsafe.Add(p, 1))
	fmt.Println("rejected:", rejected)

	in.Free(p)
	fmt.Println("allocated after legitimate free:", in.Allocated())

	// Output:
	// rejected: true
	// allocated after legitimate free: 0
}

// ExampleInstance_diagnostics demonstrates reading back the allocator's
// usage counters without exposing its internal bins or chain.
func ExampleInstance_diagnostics() {
	in, err := allocator.Init(make([]byte, 64*1024))
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	in.Allocate(10)
	in.Allocate(20)

	d := in.Diagnostics()
	fmt.Println("allocated:", d.Allocated)
	fmt.Println("peak allocated:", d.PeakAllocated)
	fmt.Println("peak request size:", d.PeakRequestSize)
	fmt.Println("oom count:", d.OOMCount)

	// Output:
	// allocated: 128
	// peak allocated: 128
	// peak request size: 20
	// oom count: 0
}

// ExampleNew demonstrates acquiring an arena from the operating system
// through examplearena rather than the Go heap, so its lifetime is under
// explicit caller control.
func ExampleNew() {
	arena, err := examplearena.New(1 << 20)
	if err != nil {
		fmt.Println("acquire failed:", err)
		return
	}
	defer arena.Close()

	in, err := allocator.Init(arena.Bytes())
	if err != nil {
		fmt.Println("init failed:", err)
		return
	}

	p := in.Allocate(512)
	fmt.Println("allocation succeeded:", p != nil)

	// Output:
	// allocation succeeded: true
}
