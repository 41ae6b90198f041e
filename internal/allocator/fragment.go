package allocator

import "unsafe"

// ref is a byte offset from the start of the usable arena identifying a
// fragment. It is the typed-index form of what the reference C allocator
// expresses as a raw pointer: the only place a ref is converted to or
// from a live header is header/freeLinksAt below, which keeps the unsafe
// surface of the package narrow. ref shares the machine word's width so
// that coreHeader below comes out to exactly Alignment bytes on every
// platform.
type ref uintptr

// refNil is the "no fragment" sentinel: the all-ones value, which no
// legal offset (bounded by sizeMax, at most half the word's range) can
// ever equal.
const refNil ref = ^ref(0)

func (r ref) valid() bool { return r != refNil }

// coreHeader is the fixed-layout header present at the start of every
// fragment, free or used. Its size defines Alignment (A): four
// machine words, regardless of platform word width. Free-list links are
// deliberately not part of this struct — they are only meaningful while
// a fragment is free, and are stored in the first bytes of the payload
// instead (see freeLinks), so a used fragment's header never reserves
// space it cannot use.
type coreHeader struct {
	next ref     // physical-chain successor, refNil at the arena's high end
	prev ref     // physical-chain predecessor, refNil at the arena's low end
	size uintptr // fragment size in bytes, including this header
	used bool    // true once handed out by Allocate
}

// headerSize is A, the alignment constant: sizeof(pointer) on this
// platform times four. coreHeader is laid out as exactly four
// pointer-width fields (the bool occupies a full word due to struct
// alignment), so this holds by construction on every supported platform.
const headerSize = unsafe.Sizeof(coreHeader{})

// Alignment is the allocator's alignment unit, A = 4*sizeof(pointer).
// Every returned pointer is aligned to Alignment.
const Alignment = headerSize

// sizeMin is the smallest legal fragment size, A*2: one Alignment for the
// header and at least one more for payload (enough to hold freeLinks
// when the fragment is free).
const sizeMin = 2 * Alignment

// sizeMax is the largest legal fragment size, 2^(B-1), chosen so that
// pow2(log2Ceil(request + Alignment)) can never overflow a word.
const sizeMax = uintptr(1) << (wordBits - 1)

// numBins is one bin per bit of the machine word, so the non-empty-bin
// bitmap fits in a single word.
const numBins = wordBits

// freeLinks holds the free-list neighbors of a free fragment. It is
// stored immediately after coreHeader, inside the fragment's payload;
// reading or writing it through a used fragment would corrupt caller
// data, so every call site must check coreHeader.used first.
type freeLinks struct {
	nextFree ref
	prevFree ref
}

// freeLinksSize is guaranteed to fit within the Alignment-sized payload
// every fragment has past its header, since sizeMin == 2*Alignment.
const freeLinksSize = unsafe.Sizeof(freeLinks{})

// header returns the live core header at offset r. It is the allocator's
// narrow unsafe primitive: every other file reaches the arena's bytes
// only through header, freeLinksAt, and payload.
func (in *Instance) header(r ref) *coreHeader {
	return (*coreHeader)(unsafe.Pointer(&in.arena[r]))
}

// freeLinksAt returns the free-list links for fragment r. The caller must
// have already established that the fragment is free.
func (in *Instance) freeLinksAt(r ref) *freeLinks {
	return (*freeLinks)(unsafe.Pointer(&in.arena[uintptr(r)+headerSize]))
}

// payload returns the pointer handed to callers for fragment r: the first
// byte past its header.
func (in *Instance) payload(r ref) unsafe.Pointer {
	return unsafe.Pointer(&in.arena[uintptr(r)+headerSize])
}

// refFromPayload converts a pointer previously returned to a caller back
// into a fragment ref, without any validation. Callers must audit the
// pointer first (see audit.go).
func (in *Instance) refFromPayload(p unsafe.Pointer) ref {
	off := uintptr(p) - in.base - uintptr(headerSize)

	return ref(off)
}

// interlink sets a.next = b (if a is valid) and b.prev = a (if b is
// valid), the shared plumbing step used by both split and coalesce.
func (in *Instance) interlink(a, b ref) {
	if a.valid() {
		in.header(a).next = b
	}

	if b.valid() {
		in.header(b).prev = a
	}
}
