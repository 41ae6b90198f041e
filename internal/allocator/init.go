package allocator

import (
	"errors"
	"unsafe"
)

// Sentinel errors Init can return alongside its nil Instance. The core
// contract (spec §4.F / §7) only promises a nil instance on any
// configuration failure; these let ambient Go callers distinguish why
// without the core having to recover from anything.
var (
	// ErrNilArena is returned when the caller supplies an empty arena.
	ErrNilArena = errors.New("allocator: arena must be non-empty")

	// ErrArenaTooSmall is returned when, after alignment slack and
	// rounding to a multiple of sizeMin, less than sizeMin bytes remain
	// for the mandatory root fragment.
	ErrArenaTooSmall = errors.New("allocator: arena too small after alignment and rounding")
)

func defaultConfig() *Config {
	return &Config{}
}

// Init carves an Instance out of arena, a caller-owned, caller-sized
// contiguous byte region. It aligns the usable region up to Alignment,
// clamps it to sizeMax, rounds it down to a multiple of sizeMin, and
// installs a single free fragment spanning everything that remains.
//
// Init never invokes the critical-section hooks: construction happens
// before any other caller could possibly observe the Instance.
//
// On any configuration failure Init returns (nil, err); the core
// contract only promises the nil, but err records which of the failure
// kinds in spec §7 occurred.
func Init(arena []byte, opts ...Option) (*Instance, error) {
	if len(arena) == 0 {
		return nil, ErrNilArena
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	base := uintptr(unsafe.Pointer(&arena[0]))
	slack := alignSlack(base, Alignment)

	if slack >= uintptr(len(arena)) {
		return nil, ErrArenaTooSmall
	}

	arena = arena[slack:]
	base += slack

	usable := uintptr(len(arena))
	if usable > sizeMax {
		usable = sizeMax
	}

	usable -= usable % sizeMin

	if usable < sizeMin {
		return nil, ErrArenaTooSmall
	}

	in := &Instance{
		arena:            arena[:usable:usable],
		base:             base,
		onEnter:          cfg.OnEnter,
		onLeave:          cfg.OnLeave,
		onInvalidPointer: cfg.OnInvalidPointer,
	}

	for i := range in.bins {
		in.bins[i] = refNil
	}

	root := ref(0)
	h := in.header(root)
	h.next = refNil
	h.prev = refNil
	h.size = usable
	h.used = false

	fl := in.freeLinksAt(root)
	fl.nextFree = refNil
	fl.prevFree = refNil

	in.rebin(root)

	in.diag.Capacity = usable

	return in, nil
}

// alignSlack returns the number of leading bytes that must be skipped
// from an address base so that base+slack is a multiple of alignment.
func alignSlack(base, alignment uintptr) uintptr {
	rem := base % alignment
	if rem == 0 {
		return 0
	}

	return alignment - rem
}
