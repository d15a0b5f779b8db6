package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArenaViewIsBorrowed(t *testing.T) {
	a := NewArena()
	ptr := a.Alloc(5)

	view, err := a.View(ptr, 5)
	require.NoError(t, err)
	copy(view, "hello")

	again, err := a.View(ptr, 3)
	require.NoError(t, err)
	assert.Equal(t, "hel", string(again))
	assert.Equal(t, 3, cap(again), "view must not expose bytes past its length")
	assert.Equal(t, 1, a.Len(), "viewing must not release the region")
}

func TestArenaViewErrors(t *testing.T) {
	a := NewArena()
	ptr := a.Alloc(4)

	_, err := a.View(ptr+1, 1)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	_, err = a.View(ptr, 5)
	assert.ErrorIs(t, err, ErrInvalidRegion)

	view, err := a.View(0, 0)
	assert.NoError(t, err)
	assert.Nil(t, view)
}

func TestArenaTransfer(t *testing.T) {
	a := NewArena()
	data := []byte("HELLO")

	ptr, size, err := a.Transfer(data)
	require.NoError(t, err)
	assert.NotZero(t, ptr)
	assert.Equal(t, uint32(len(data)), size)

	data[0] = 'J'
	buf, err := a.TakeOwnership(ptr, size)
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(buf), "transfer must copy its input")
	assert.Zero(t, a.Len())
}

func TestArenaTransferEmpty(t *testing.T) {
	a := NewArena()

	ptr, size, err := a.Transfer(nil)
	require.NoError(t, err)
	assert.Zero(t, ptr)
	assert.Zero(t, size)
	assert.Zero(t, a.Len())
	assert.NoError(t, a.Release(ptr, size))
}

func TestArenaDistinctRegions(t *testing.T) {
	a := NewArena()
	seen := map[uint32]bool{}
	for i := 0; i < 256; i++ {
		ptr := a.Alloc(32)
		assert.False(t, seen[ptr], "pointer %d handed out twice", ptr)
		seen[ptr] = true
	}
	assert.Equal(t, 256, a.Len())
	assert.Equal(t, uint64(256*32), a.Size())
}
