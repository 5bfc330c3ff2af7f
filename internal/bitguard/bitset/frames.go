package bitset

import "fmt"

// maxFrameWidth bounds the frame width this package supports. Dither
// frames are meant to be small, local perturbations (the calibrator
// only ever picks widths appropriate to a configured brute-force
// budget), so representing a frame as a single uint64 bitmask is
// sufficient and keeps the enumeration allocation-free.
const maxFrameWidth = 64

// Frames enumerates every bit pattern of length exactly n whose bit 0
// and bit n-1 are both set. Patterns with a zero endpoint belong to a
// shorter frame and are deliberately excluded so that repair's
// progressive search never duplicates work across frame widths.
//
// n=0 yields no patterns. n=1 yields {1}. n=2 yields {0b11}. For n>=3
// the middle n-2 bits range over every value, lowest first.
func Frames(n int) ([]uint64, error) {
	if n < 0 {
		return nil, fmt.Errorf("bitset: negative frame width %d", n)
	}
	if n > maxFrameWidth {
		return nil, fmt.Errorf("bitset: frame width %d exceeds supported maximum %d", n, maxFrameWidth)
	}
	switch {
	case n == 0:
		return nil, nil
	case n == 1:
		return []uint64{1}, nil
	case n == 2:
		return []uint64{0b11}, nil
	}

	middleBits := n - 2
	count := uint64(1) << middleBits
	out := make([]uint64, count)
	top := uint64(1) << (n - 1)
	for middle := uint64(0); middle < count; middle++ {
		out[middle] = 1 | (middle << 1) | top
	}
	return out, nil
}
