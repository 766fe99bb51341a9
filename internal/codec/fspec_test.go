package codec

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFSPEC(t *testing.T) {
	tests := []struct {
		name     string
		buf      []byte
		offset   int
		frns     []int
		consumed int
	}{
		{name: "first three slots", buf: []byte{0xE0}, frns: []int{1, 2, 3}, consumed: 1},
		{name: "empty", buf: []byte{0x00}, frns: nil, consumed: 1},
		{name: "extension", buf: []byte{0x81, 0x40}, frns: []int{1, 9}, consumed: 2},
		{name: "offset", buf: []byte{0xFF, 0x03, 0x80}, offset: 1, frns: []int{7, 8}, consumed: 2},
		{name: "seventh slot", buf: []byte{0x02}, frns: []int{7}, consumed: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frns, n, err := DecodeFSPEC(tt.buf, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, tt.frns, frns)
			assert.Equal(t, tt.consumed, n)
		})
	}
}

func TestDecodeFSPECErrors(t *testing.T) {
	_, _, err := DecodeFSPEC([]byte{0x81}, 0)
	assert.ErrorIs(t, err, ErrTruncated)

	_, _, err = DecodeFSPEC(nil, 0)
	assert.ErrorIs(t, err, ErrTruncated)

	chain := make([]byte, MaxFSPECOctets+5)
	for i := range chain {
		chain[i] = 0x01
	}
	_, _, err = DecodeFSPEC(chain, 0)
	assert.ErrorIs(t, err, ErrFSPECTooLong)
}

func TestEncodeFSPEC(t *testing.T) {
	assert.Equal(t, []byte{0xE0}, EncodeFSPEC([]int{3, 1, 2}))
	assert.Equal(t, []byte{0x00}, EncodeFSPEC(nil))
	assert.Equal(t, []byte{0x02}, EncodeFSPEC([]int{7}))
	assert.Equal(t, []byte{0x01, 0x80}, EncodeFSPEC([]int{8}))
	assert.Equal(t, []byte{0x81, 0x01, 0x02}, EncodeFSPEC([]int{1, 21}))
}

func TestFSPECRoundTripProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(48))
	for i := 0; i < 500; i++ {
		set := make([]int, 1+rng.Intn(20))
		for j := range set {
			set[j] = 1 + rng.Intn(120)
		}

		encoded := EncodeFSPEC(set)
		assert.Equal(t, FSPECLen(set), len(encoded))

		frns, n, err := DecodeFSPEC(encoded, 0)
		require.NoError(t, err)
		assert.Equal(t, len(encoded), n)
		assert.Equal(t, SortedSlots(set), frns)
	}
}

func TestFSPECLen(t *testing.T) {
	assert.Equal(t, 1, FSPECLen(nil))
	assert.Equal(t, 1, FSPECLen([]int{7}))
	assert.Equal(t, 2, FSPECLen([]int{8}))
	assert.Equal(t, 4, FSPECLen([]int{28, 2}))
}
