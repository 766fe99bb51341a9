package codec

import (
	"fmt"
	"math"
)

// Uint reads n bytes at offset as a big-endian unsigned integer.
func Uint(buf []byte, offset, n int) (uint64, error) {
	if n < 1 || n > 8 {
		return 0, fmt.Errorf("%w: integer width %d bytes", ErrMalformed, n)
	}
	if err := Need(buf, offset, n); err != nil {
		return 0, err
	}

	var v uint64
	for _, b := range buf[offset : offset+n] {
		v = v<<8 | uint64(b)
	}
	return v, nil
}

// Int reads n bytes at offset as a big-endian two's-complement integer.
func Int(buf []byte, offset, n int) (int64, error) {
	u, err := Uint(buf, offset, n)
	if err != nil {
		return 0, err
	}
	return SignExtend(u, n*8), nil
}

// SignExtend interprets the low bits of v as a two's-complement number.
func SignExtend(v uint64, bits int) int64 {
	if bits <= 0 || bits >= 64 {
		return int64(v)
	}
	shift := uint(64 - bits)
	return int64(v<<shift) >> shift
}

// AppendUint appends the low n bytes of v to dst in big-endian order.
func AppendUint(dst []byte, v uint64, n int) []byte {
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(uint(i)*8)))
	}
	return dst
}

// Range returns the representable raw range of a field of the given bit width.
func Range(bits int, signed bool) (int64, int64) {
	if bits >= 64 {
		if signed {
			return math.MinInt64, math.MaxInt64
		}
		return 0, math.MaxInt64
	}
	if signed {
		return -(int64(1) << uint(bits-1)), int64(1)<<uint(bits-1) - 1
	}
	return 0, int64(1)<<uint(bits) - 1
}

// Clamp limits raw to the representable range of the field.
func Clamp(raw int64, bits int, signed bool) int64 {
	lo, hi := Range(bits, signed)
	if raw < lo {
		return lo
	}
	if raw > hi {
		return hi
	}
	return raw
}

// Mask keeps the low bits of raw, wrapping negative values modulo 2^bits.
func Mask(raw int64, bits int) uint64 {
	if bits >= 64 {
		return uint64(raw)
	}
	return uint64(raw) & (uint64(1)<<uint(bits) - 1)
}

// Scale converts a raw count into physical units.
func Scale(raw int64, lsb float64) float64 {
	return float64(raw) * lsb
}

// Quantize converts a physical value into a raw count: divide by the LSB, truncate
// toward zero, then clamp to the field range. Quotients within 1e-9 of an integer
// snap to it so that values produced by Scale encode back to the same count.
func Quantize(v, lsb float64, bits int, signed bool) int64 {
	r := counts(v, lsb)
	lo, hi := Range(bits, signed)
	switch {
	case math.IsNaN(r):
		return 0
	case r <= float64(lo):
		return lo
	case r >= float64(hi):
		return hi
	}
	return int64(r)
}

// Wrap converts a physical value into a raw count reduced modulo 2^bits. Used for
// angles and times of day, whose encodings are defined by masking.
func Wrap(v, lsb float64, bits int) uint64 {
	r := counts(v, lsb)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	m := math.Ldexp(1, bits)
	r = math.Mod(r, m)
	if r < 0 {
		r += m
	}
	return uint64(r)
}

func counts(v, lsb float64) float64 {
	r := v / lsb
	if n := math.Round(r); math.Abs(r-n) < 1e-9 {
		return n
	}
	return math.Trunc(r)
}
