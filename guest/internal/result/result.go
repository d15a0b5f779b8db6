// Package result packs a guest pointer, a byte length and a failure flag into
// the single 64-bit value returned by the entry points.
//
// Layout: bits [63:32] pointer, bit 31 failure flag, bits [30:0] length.
package result

import (
	"errors"
	"fmt"
)

const (
	// FailureFlag marks a result whose payload is an error message.
	FailureFlag uint64 = 1 << 31
	// MaxLength is the largest length representable next to the flag.
	MaxLength uint32 = 1<<31 - 1
)

// ErrLengthOverflow is returned when a length would spill into the flag bit.
var ErrLengthOverflow = errors.New("result length exceeds 31 bits")

// Pack encodes ptr, length and failed. Lengths above MaxLength are rejected
// instead of corrupting the failure flag.
func Pack(ptr, length uint32, failed bool) (uint64, error) {
	if length > MaxLength {
		return 0, fmt.Errorf("%w: %d", ErrLengthOverflow, length)
	}
	packed := uint64(ptr)<<32 | uint64(length)
	if failed {
		packed |= FailureFlag
	}
	return packed, nil
}
