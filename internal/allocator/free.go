package allocator

import "unsafe"

// OnInvalidPointer, when non-nil, is called by Free with the offending
// pointer whenever the audit (§4.D) rejects it. Production builds leave
// this nil, making an invalid free a silent no-op per spec §7 kind 4;
// a debug build wires a hook that panics or logs, turning the same
// condition into an assertion failure without the core having to guess
// which behavior the caller wants.
type OnInvalidPointer func(p unsafe.Pointer)

// Free releases the fragment p points to in O(1). A nil pointer is a
// silent no-op that does not invoke the critical-section pair (spec §9
// Q2). A pointer the audit rejects is also a no-op — optionally reported
// via OnInvalidPointer — and never mutates allocator state.
//
// Free coalesces with whichever of its physical-chain neighbors are
// themselves free, so that no two adjacent fragments are ever both free
// (invariant I6), and reinserts the resulting fragment into its bin.
func (in *Instance) Free(p unsafe.Pointer) {
	if p == nil {
		return
	}

	if !in.audit(p) {
		if in.onInvalidPointer != nil {
			in.onInvalidPointer(p)
		}

		return
	}

	r := in.refFromPayload(p)

	in.enter()
	defer in.leave()

	h := in.header(r)
	h.used = false

	if h.size > in.diag.Allocated {
		panic("allocator: diagnostics corruption, freed size exceeds tracked allocation")
	}

	in.diag.Allocated -= h.size

	left, right := h.prev, h.next
	joinLeft := left.valid() && !in.header(left).used
	joinRight := right.valid() && !in.header(right).used

	switch {
	case joinLeft && joinRight:
		in.unbin(left)
		in.unbin(right)

		lh := in.header(left)
		rh := in.header(right)
		rNext := rh.next

		lh.size += h.size + rh.size
		h.size = 0
		rh.size = 0

		in.interlink(left, rNext)
		in.rebin(left)

	case joinLeft:
		in.unbin(left)

		lh := in.header(left)
		lh.size += h.size
		h.size = 0

		in.interlink(left, right)
		in.rebin(left)

	case joinRight:
		in.unbin(right)

		rh := in.header(right)
		rNext := rh.next

		h.size += rh.size
		rh.size = 0

		in.interlink(r, rNext)
		in.rebin(r)

	default:
		in.rebin(r)
	}
}
