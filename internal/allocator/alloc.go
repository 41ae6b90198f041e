package allocator

import "unsafe"

// Allocate serves a request of amount bytes in O(1) and returns a pointer
// aligned to Alignment, or nil if amount is zero, amount exceeds the
// largest single allocation this instance can ever satisfy, or the
// instance is genuinely out of matching free fragments.
//
// Allocate invokes the critical-section pair exactly once, in order,
// regardless of outcome — including a zero-amount request, which is
// otherwise a no-op — so callers can rely on a uniform synchronization
// protocol around every call.
func (in *Instance) Allocate(amount uintptr) unsafe.Pointer {
	in.enter()
	defer in.leave()

	in.updatePeakRequest(amount)

	if amount == 0 {
		return nil
	}

	if amount > in.diag.Capacity-Alignment {
		in.diag.OOMCount++

		return nil
	}

	fragmentSize := requestToFragmentSize(amount)

	f := in.findFit(fragmentSize)
	if !f.valid() {
		in.diag.OOMCount++

		return nil
	}

	in.unbin(f)
	in.splitAndClaim(f, fragmentSize)

	in.diag.Allocated += fragmentSize
	if in.diag.Allocated > in.diag.PeakAllocated {
		in.diag.PeakAllocated = in.diag.Allocated
	}

	return in.payload(f)
}

// requestToFragmentSize rounds a request up to the fragment size class
// that will hold it: the smallest power of two at least as large as
// amount+Alignment (room for the header), and never smaller than
// sizeMin. Callers must have already bounded amount so that
// amount+Alignment cannot overflow (Allocate does this via the
// capacity-Alignment check before calling in).
func requestToFragmentSize(amount uintptr) uintptr {
	raw := amount + Alignment
	if raw < sizeMin {
		return sizeMin
	}

	return pow2(log2Ceil(raw))
}

// splitAndClaim marks fragment f used at fragmentSize, splitting off and
// rebinning the remainder — which occupies the high addresses above f,
// per the split direction spec §9 Q1 settles on — if it is large enough
// to be a legal fragment on its own.
func (in *Instance) splitAndClaim(f ref, fragmentSize uintptr) {
	h := in.header(f)
	leftover := h.size - fragmentSize
	h.size = fragmentSize

	if leftover >= sizeMin {
		g := ref(uintptr(f) + fragmentSize)
		gh := in.header(g)
		gh.size = leftover
		gh.used = false

		oldNext := h.next
		in.interlink(g, oldNext)
		in.interlink(f, g)

		gl := in.freeLinksAt(g)
		gl.nextFree = refNil
		gl.prevFree = refNil

		in.rebin(g)
	}

	h.used = true
}

func (in *Instance) updatePeakRequest(amount uintptr) {
	if amount > in.diag.PeakRequestSize {
		in.diag.PeakRequestSize = amount
	}
}
