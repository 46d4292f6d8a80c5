// Package bits packs flags and small values into integers.
package bits

import mbits "math/bits"

// SetBit returns v with bit i set (0 indexed).
func SetBit(v uint, i uint) uint { return v | 1<<i }

// UnsetBit returns v with bit i cleared.
func UnsetBit(v uint, i uint) uint { return v &^ (1 << i) }

// HasBit reports whether bit i of v is set.
func HasBit(v uint, i uint) bool { return v&(1<<i) != 0 }

// width is ceil(log2(limit)), the field width reserved for values up to limit.
// A power of two limit reserves log2(limit) bits, so limit itself does not fit;
// callers pass the largest value plus one, or a non power of two.
func width(limit uint) uint {
	if limit <= 1 {
		return 0
	}
	return uint(mbits.Len(limit - 1))
}

// AppendValue shifts v left to make room for value and stores it in the low
// bits. The field is width(limit) bits wide; a zero limit uses value itself.
func AppendValue(v, value, limit uint) uint {
	if limit == 0 {
		limit = value
	}
	return v<<width(limit) | value
}

// ReadValue reads the field of width ceil(log2(limit)) starting at bit shift.
func ReadValue(v, shift, limit uint) uint {
	mask := uint(1)<<width(limit) - 1
	return v >> shift & mask
}
