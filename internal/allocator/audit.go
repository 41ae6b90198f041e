package allocator

import "unsafe"

// audit inspects an alleged user pointer and returns true iff it is nil
// or demonstrably could have been returned by a prior successful
// Allocate on this instance. It never panics on a garbage pointer — every
// bounds check happens before any byte at the candidate offset is read —
// and it has no false positives: any pointer genuinely returned by
// Allocate and not yet freed always passes. False negatives are possible
// in principle (an unrelated pointer could happen to satisfy every
// heuristic) but are not this function's concern; spec §4.D only
// requires rejecting pointers that demonstrably cannot be ours.
func (in *Instance) audit(p unsafe.Pointer) bool {
	if p == nil {
		return true
	}

	addr := uintptr(p)
	if addr < in.base+uintptr(Alignment) {
		return false
	}

	headerAddr := addr - uintptr(Alignment)
	if headerAddr < in.base {
		return false
	}

	off := headerAddr - in.base
	if off%uintptr(Alignment) != 0 {
		return false
	}

	if off >= uintptr(len(in.arena)) {
		return false
	}

	r := ref(off)
	h := in.header(r)

	if !h.used {
		return false
	}

	if h.size == 0 || h.size%sizeMin != 0 || h.size < sizeMin || h.size > in.diag.Capacity {
		return false
	}

	if uintptr(r)+h.size > uintptr(len(in.arena)) {
		return false
	}

	if h.next.valid() {
		if !in.refInBounds(h.next) || in.header(h.next).prev != r {
			return false
		}
	}

	if h.prev.valid() {
		if !in.refInBounds(h.prev) || in.header(h.prev).next != r {
			return false
		}
	}

	return true
}

// refInBounds reports whether r addresses a coreHeader entirely within
// the usable arena, the bounds check audit and the chain-coherence check
// both need before dereferencing a neighbor.
func (in *Instance) refInBounds(r ref) bool {
	return r.valid() && uintptr(r)+uintptr(headerSize) <= uintptr(len(in.arena))
}
