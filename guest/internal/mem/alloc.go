package mem

// pinned is the arena backing the allocator exports.
var pinned = NewArena()

// Default returns the arena shared by the module's exports.
func Default() *Arena {
	return pinned
}

// Alloc allocates and pins a byte buffer in guest memory.
func Alloc(size uint32) uint32 {
	return pinned.Alloc(size)
}

// Dealloc unpins a buffer previously returned by Alloc or by an entry point.
// Callers must pass the pointer and a length no larger than the allocation;
// anything else is rejected with ErrInvalidRegion.
func Dealloc(ptr, size uint32) error {
	return pinned.Release(ptr, size)
}

// View returns a borrowed slice over a live allocation.
func View(ptr, size uint32) ([]byte, error) {
	return pinned.View(ptr, size)
}

// Transfer copies data into a fresh pinned allocation owned by the host.
func Transfer(data []byte) (ptr, size uint32, err error) {
	return pinned.Transfer(data)
}
