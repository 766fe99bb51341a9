package codec

// Bits returns width bits of block starting at bit offset (0 = most significant
// bit of block[0]).
func Bits(block []byte, offset, width int) uint64 {
	var v uint64
	for i := 0; i < width; i++ {
		pos := offset + i
		bit := (block[pos/8] >> uint(7-pos%8)) & 1
		v = v<<1 | uint64(bit)
	}
	return v
}

// SetBits writes the low width bits of v into block at bit offset.
func SetBits(block []byte, offset, width int, v uint64) {
	for i := 0; i < width; i++ {
		pos := offset + i
		mask := byte(1) << uint(7-pos%8)
		if v>>uint(width-1-i)&1 == 1 {
			block[pos/8] |= mask
		} else {
			block[pos/8] &^= mask
		}
	}
}
