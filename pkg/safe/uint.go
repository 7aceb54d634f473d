// Package safe provides helpers for checked numeric conversions and power-of-two arithmetic.
package safe

import (
	"fmt"
	"math/bits"
)

// Uint64 converts signed or unsigned integers to uint64 while guarding against negatives.
func Uint64[T ~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// IsPowerOfTwo reports whether v is a power of two. Zero is not.
func IsPowerOfTwo(v uint64) bool {
	return v != 0 && v&(v-1) == 0
}

// Log2 returns the base-2 logarithm of v, which must be a power of two.
func Log2(v uint64) (uint, error) {
	if !IsPowerOfTwo(v) {
		return 0, fmt.Errorf("value %d is not a power of two", v)
	}
	return uint(bits.TrailingZeros64(v)), nil
}
