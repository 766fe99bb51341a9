package codec

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintInt(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		offset   int
		n        int
		unsigned uint64
		signed   int64
	}{
		{name: "single byte", buf: []byte{0x7F}, n: 1, unsigned: 127, signed: 127},
		{name: "negative byte", buf: []byte{0xFF}, n: 1, unsigned: 255, signed: -1},
		{name: "u16 with offset", buf: []byte{0x00, 0x0A, 0x00}, offset: 1, n: 2, unsigned: 2560, signed: 2560},
		{name: "s24 negative", buf: []byte{0x80, 0x00, 0x00}, n: 3, unsigned: 0x800000, signed: -8388608},
		{name: "s32", buf: []byte{0xFF, 0xFF, 0xFF, 0xFE}, n: 4, unsigned: 0xFFFFFFFE, signed: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Uint(tt.buf, tt.offset, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.unsigned, u)

			s, err := Int(tt.buf, tt.offset, tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.signed, s)
		})
	}
}

func TestUintTruncated(t *testing.T) {
	_, err := Uint([]byte{0x01, 0x02}, 1, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTruncated))
	assert.Contains(t, err.Error(), "offset 1")

	_, err = Int([]byte{0x01}, -1, 1)
	assert.True(t, errors.Is(err, ErrTruncated))
}

func TestAppendUint(t *testing.T) {
	assert.Equal(t, []byte{0x0A, 0x00}, AppendUint(nil, 2560, 2))
	assert.Equal(t, []byte{0x01, 0x12, 0x34, 0x56}, AppendUint([]byte{0x01}, 0x123456, 3))
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		lsb    float64
		bits   int
		signed bool
		raw    int64
	}{
		{name: "ten nautical miles", value: 10, lsb: 1.0 / 256, bits: 16, raw: 2560},
		{name: "truncates toward zero", value: 26.997840172786177, lsb: 1.0 / 256, bits: 16, raw: 6911},
		{name: "negative truncates toward zero", value: -1.9, lsb: 1, bits: 8, signed: true, raw: -1},
		{name: "clamps high", value: 300, lsb: 1.0 / 256, bits: 16, raw: 65535},
		{name: "clamps negative unsigned", value: -5, lsb: 1, bits: 8, raw: 0},
		{name: "clamps signed low", value: -1000, lsb: 1, bits: 8, signed: true, raw: -128},
		{name: "decimal lsb stays exact", value: 0.42, lsb: 0.01, bits: 16, signed: true, raw: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.raw, Quantize(tt.value, tt.lsb, tt.bits, tt.signed))
		})
	}
}

func TestQuantizeInvertsScale(t *testing.T) {
	lsbs := []float64{1.0 / 128, 1.0 / 256, 360.0 / 65536, 180.0 / (1 << 23), 180.0 / (1 << 25), 0.25, 6.25, 0.01}
	for _, lsb := range lsbs {
		for raw := int64(-3000); raw <= 3000; raw += 7 {
			assert.Equal(t, raw, Quantize(Scale(raw, lsb), lsb, 32, true), "lsb %v raw %d", lsb, raw)
		}
	}
}

func TestWrap(t *testing.T) {
	lsb := 360.0 / 65536
	assert.Equal(t, uint64(16384), Wrap(90, lsb, 16))
	assert.Equal(t, uint64(0), Wrap(360, lsb, 16))
	assert.Equal(t, uint64(49152), Wrap(-90, lsb, 16))
	assert.Equal(t, uint64(11059136), Wrap(86399.5, 1.0/128, 24))
}

func TestClampAndMask(t *testing.T) {
	assert.Equal(t, int64(127), Clamp(500, 8, true))
	assert.Equal(t, int64(0), Clamp(-1, 12, false))
	assert.Equal(t, uint64(0x0FFF), Mask(-1, 12))
	assert.Equal(t, uint64(0x0654), Mask(0xF654, 12))
}

func TestBits(t *testing.T) {
	block := []byte{0b10110000, 0b00001111}
	assert.Equal(t, uint64(0b101), Bits(block, 0, 3))
	assert.Equal(t, uint64(0b10000000011), Bits(block, 3, 11))

	out := make([]byte, 2)
	SetBits(out, 3, 11, 0b10000000011)
	SetBits(out, 0, 3, 0b101)
	assert.Equal(t, []byte{0b10110000, 0b00001100}, out)
}
