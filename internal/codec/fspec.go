package codec

import (
	"fmt"
	"sort"
)

// MaxFSPECOctets bounds FSPEC and compound primary chains on corrupt input.
const MaxFSPECOctets = 100

const fxBit = 0x01

// DecodeFSPEC reads the presence bitmap at offset and returns the present slot
// numbers in ascending order together with the number of bytes consumed.
func DecodeFSPEC(buf []byte, offset int) ([]int, int, error) {
	var frns []int
	for k := 0; ; k++ {
		if k == MaxFSPECOctets {
			return nil, 0, fmt.Errorf("%w: more than %d octets at offset %d", ErrFSPECTooLong, MaxFSPECOctets, offset)
		}
		if err := Need(buf, offset+k, 1); err != nil {
			return nil, 0, fmt.Errorf("fspec octet %d: %w", k, err)
		}

		octet := buf[offset+k]
		for bit := 7; bit >= 1; bit-- {
			if octet&(1<<uint(bit)) != 0 {
				frns = append(frns, k*7+(7-bit)+1)
			}
		}
		if octet&fxBit == 0 {
			return frns, k + 1, nil
		}
	}
}

// EncodeFSPEC builds the presence bitmap for a set of slot numbers. Duplicates are
// merged and non-positive numbers ignored. An empty set yields a single zero octet.
func EncodeFSPEC(frns []int) []byte {
	n := FSPECLen(frns)
	out := make([]byte, n)
	for _, frn := range frns {
		if frn <= 0 {
			continue
		}
		k := (frn - 1) / 7
		out[k] |= 1 << uint(7-(frn-1)%7)
	}
	for k := 0; k < n-1; k++ {
		out[k] |= fxBit
	}
	return out
}

// FSPECLen returns the byte length EncodeFSPEC produces for frns.
func FSPECLen(frns []int) int {
	max := 0
	for _, frn := range frns {
		if frn > max {
			max = frn
		}
	}
	if max == 0 {
		return 1
	}
	return (max + 6) / 7
}

// SortedSlots returns a sorted copy of frns without duplicates or non-positive values.
func SortedSlots(frns []int) []int {
	out := make([]int, 0, len(frns))
	seen := make(map[int]bool, len(frns))
	for _, frn := range frns {
		if frn > 0 && !seen[frn] {
			seen[frn] = true
			out = append(out, frn)
		}
	}
	sort.Ints(out)
	return out
}
