package grover

import (
	"fmt"
	"strconv"
)

// Bitstring renders basis index i as an n-character bit string, MSB first.
func Bitstring(i, n int) string {
	s := strconv.FormatUint(uint64(i), 2)
	if len(s) >= n {
		return s
	}

	buf := make([]byte, n)
	pad := n - len(s)
	for k := 0; k < pad; k++ {
		buf[k] = '0'
	}
	copy(buf[pad:], s)
	return string(buf)
}

// ParseBitstring is the inverse of Bitstring.
func ParseBitstring(bits string) (int, error) {
	if bits == "" || len(bits) > HardMaxQubits {
		return 0, fmt.Errorf("bit string %q: %w", bits, ErrInvalidDimension)
	}

	idx := 0
	for _, c := range bits {
		switch c {
		case '0':
			idx <<= 1
		case '1':
			idx = idx<<1 | 1
		default:
			return 0, fmt.Errorf("bit string %q has non-binary rune %q", bits, c)
		}
	}
	return idx, nil
}
