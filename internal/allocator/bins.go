package allocator

// binIndexForSize returns the bin a free fragment of this size belongs
// in: floor(log2(size / sizeMin)). Used when inserting a fragment (after
// a split or a merge) so it lands in the bin whose minimum size it
// actually satisfies.
func binIndexForSize(size uintptr) uintptr {
	return log2Floor(size / sizeMin)
}

// binIndexForRequest returns the smallest bin guaranteed to hold
// fragments large enough for a request of this size:
// ceil(log2(size / sizeMin)). The floor/ceil asymmetry with
// binIndexForSize is essential — a request rounds up to the bin whose
// *minimum* size already satisfies it, while a fragment rounds down to
// the bin whose range it actually falls into.
func binIndexForRequest(size uintptr) uintptr {
	return log2Ceil(size / sizeMin)
}

// rebin inserts fragment f, which must already be marked free, at the
// head of its bin's free list and marks that bin non-empty. O(1): it
// touches at most the list head, f, and the mask.
func (in *Instance) rebin(f ref) {
	h := in.header(f)
	idx := binIndexForSize(h.size)

	fl := in.freeLinksAt(f)
	fl.prevFree = refNil
	fl.nextFree = in.bins[idx]

	if old := in.bins[idx]; old.valid() {
		in.freeLinksAt(old).prevFree = f
	}

	in.bins[idx] = f
	in.nonemptyBinMask |= pow2(idx)
}

// unbin splices fragment f out of its bin's free list. O(1): it touches
// at most f's two free-list neighbors and the mask.
func (in *Instance) unbin(f ref) {
	h := in.header(f)
	idx := binIndexForSize(h.size)
	fl := in.freeLinksAt(f)

	if fl.prevFree.valid() {
		in.freeLinksAt(fl.prevFree).nextFree = fl.nextFree
	} else {
		in.bins[idx] = fl.nextFree
	}

	if fl.nextFree.valid() {
		in.freeLinksAt(fl.nextFree).prevFree = fl.prevFree
	}

	if !in.bins[idx].valid() {
		in.nonemptyBinMask &^= pow2(idx)
	}
}

// findFit returns the fragment at the head of the smallest non-empty bin
// whose minimum size satisfies fragmentSize, or refNil if no bin
// qualifies. This is the bitmap-arithmetic core of the O(1) allocation
// path: a single AND, a bit-isolate, and a CLZ, independent of how many
// fragments or bins are populated.
func (in *Instance) findFit(fragmentSize uintptr) ref {
	optimalBin := binIndexForRequest(fragmentSize)
	if optimalBin >= numBins {
		return refNil
	}

	candidateMask := ^(pow2(optimalBin) - 1)
	suitable := in.nonemptyBinMask & candidateMask

	if suitable == 0 {
		return refNil
	}

	bin := log2Floor(isolateLowestSetBit(suitable))

	return in.bins[bin]
}
