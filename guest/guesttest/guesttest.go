// Package guesttest drives entry points from native tests the way a host
// drives the compiled module.
package guesttest

import (
	"testing"

	"github.com/otelwasm/msgwasm/guest/internal/mem"
	"github.com/otelwasm/msgwasm/guest/internal/result"
	"github.com/stretchr/testify/require"
)

// Export is the shape of every message entry point.
type Export func(ptr, size uint32) uint64

// Unpack splits a packed result into its fields.
func Unpack(packed uint64) (ptr, size uint32, failed bool) {
	return uint32(packed >> 32), uint32(packed & uint64(result.MaxLength)), packed&result.FailureFlag != 0
}

// Call copies input into a fresh allocation, invokes fn, copies the output
// out and releases both regions.
func Call(t testing.TB, fn Export, input []byte) (output []byte, failed bool) {
	t.Helper()

	inPtr := mem.Alloc(uint32(len(input)))
	if len(input) > 0 {
		buf, err := mem.View(inPtr, uint32(len(input)))
		require.NoError(t, err)
		copy(buf, input)
	}

	ptr, size, failed := Unpack(fn(inPtr, uint32(len(input))))
	require.NoError(t, mem.Dealloc(inPtr, uint32(len(input))))

	out, err := mem.View(ptr, size)
	require.NoError(t, err)
	output = append([]byte{}, out...)
	require.NoError(t, mem.Dealloc(ptr, size))
	return output, failed
}
