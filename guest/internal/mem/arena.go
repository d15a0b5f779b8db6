package mem

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"unsafe"
)

var (
	// ErrInvalidRegion is returned when a pointer does not name a live
	// allocation or the length exceeds it.
	ErrInvalidRegion = errors.New("invalid memory region")
	// ErrRegionTooLarge is returned when data does not fit a 32-bit length.
	ErrRegionTooLarge = errors.New("memory region exceeds 32-bit length")
)

// Arena keeps references to buffers that crossed the host boundary until
// their owner releases them, preventing the GC from reclaiming them early.
// Regions are keyed by their offset in linear memory.
type Arena struct {
	mu      sync.Mutex
	regions map[uint32][]byte
	size    uint64
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{regions: map[uint32][]byte{}}
}

// Alloc allocates and pins a byte buffer of the given size. The contents are
// never read by the arena; ownership passes to the caller. Alloc(0) returns 0
// and pins nothing.
func (a *Arena) Alloc(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	for {
		buf := make([]byte, size)
		ptr := offsetOf(buf)
		// Native builds truncate 64-bit addresses, so a key can collide.
		if _, taken := a.regions[ptr]; taken || ptr == 0 {
			continue
		}
		a.regions[ptr] = buf
		a.size += uint64(size)
		return ptr
	}
}

// View returns a borrowed slice over a live allocation. The arena keeps
// ownership; the slice must not be retained past the current call.
func (a *Arena) View(ptr, size uint32) ([]byte, error) {
	if ptr == 0 && size == 0 {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	buf, err := a.lookup(ptr, size)
	if err != nil {
		return nil, err
	}
	return buf[:size:size], nil
}

// TakeOwnership returns an allocated buffer and unpins it.
func (a *Arena) TakeOwnership(ptr, size uint32) ([]byte, error) {
	if ptr == 0 && size == 0 {
		return nil, nil
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	buf, err := a.lookup(ptr, size)
	if err != nil {
		return nil, err
	}
	delete(a.regions, ptr)
	a.size -= uint64(len(buf))
	return buf[:size], nil
}

// Release unpins a region so the GC may reuse it.
func (a *Arena) Release(ptr, size uint32) error {
	_, err := a.TakeOwnership(ptr, size)
	return err
}

// Transfer copies data into a fresh allocation of exactly len(data) bytes
// and hands the region out as an opaque (ptr, size) pair. The region stays
// pinned until Release is called with the same pair.
func (a *Arena) Transfer(data []byte) (ptr, size uint32, err error) {
	if uint64(len(data)) > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: %d bytes", ErrRegionTooLarge, len(data))
	}
	size = uint32(len(data))
	ptr = a.Alloc(size)
	if size > 0 {
		a.mu.Lock()
		copy(a.regions[ptr], data)
		a.mu.Unlock()
	}
	return ptr, size, nil
}

// Len returns the number of pinned regions.
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.regions)
}

// Size returns the total number of pinned bytes.
func (a *Arena) Size() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.size
}

func (a *Arena) lookup(ptr, size uint32) ([]byte, error) {
	buf, ok := a.regions[ptr]
	if !ok {
		return nil, fmt.Errorf("%w: unknown pointer %d", ErrInvalidRegion, ptr)
	}
	if size > uint32(len(buf)) {
		return nil, fmt.Errorf("%w: size %d exceeds allocation %d at %d", ErrInvalidRegion, size, len(buf), ptr)
	}
	return buf, nil
}

func offsetOf(buf []byte) uint32 {
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(buf))))
}
