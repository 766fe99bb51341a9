package block

import (
	"errors"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goasterix/internal/asterix/cat048"
	"goasterix/internal/asterix/cat062"
	"goasterix/internal/codec"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func plotBlock(t *testing.T, n int) []byte {
	t.Helper()
	var records [][]byte
	for i := 0; i < n; i++ {
		rec, err := cat048.EncodePlot(cat048.Plot{SAC: 1, SIC: uint8(i), RangeM: float64(1000 * (i + 1)), AzimuthDeg: float64(10 * i)})
		require.NoError(t, err)
		records = append(records, rec)
	}
	b, err := Encode(48, records...)
	require.NoError(t, err)
	return b
}

func TestDecodeDatablock(t *testing.T) {
	d := NewDecoder(cat048.Schema(), false, testLogger())
	buf := plotBlock(t, 3)

	records, err := d.DecodeDatablock(buf)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i, rec := range records {
		sic, _ := rec.Field("I010", "SIC")
		assert.Equal(t, float64(i), sic)
	}
}

func TestDecodeDatablockErrors(t *testing.T) {
	good := plotBlock(t, 2)

	longer := append([]byte(nil), good...)
	longer[2] += 5

	wrongCategory := append([]byte(nil), good...)
	wrongCategory[0] = 62

	// declared length cuts the second record short
	cut := append([]byte(nil), good...)
	cut[2] -= 2

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "length beyond buffer", input: longer, wantErr: codec.ErrFraming},
		{name: "category mismatch", input: wrongCategory, wantErr: codec.ErrCategoryMismatch},
		{name: "record crosses block end", input: cut, wantErr: codec.ErrTruncated},
		{name: "header only", input: []byte{48, 0}, wantErr: codec.ErrTruncated},
	}

	d := NewDecoder(cat048.Schema(), false, testLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := d.DecodeDatablock(tt.input)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.Nil(t, records)
		})
	}
}

func TestDecodeMultipleBlocks(t *testing.T) {
	d := NewDecoder(cat048.Schema(), false, testLogger())

	stream := append(plotBlock(t, 2), plotBlock(t, 3)...)
	// two trailing bytes cannot hold another header
	stream = append(stream, 48, 0)

	records, err := d.DecodeMultipleBlocks(stream)
	require.NoError(t, err)
	assert.Len(t, records, 5)

	records, err = d.DecodeMultipleBlocks(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeStream(t *testing.T) {
	track, err := cat062.EncodeTrack(cat062.Track{SAC: 1, SIC: 2, TrackNumber: 7, LatDeg: 50, LonDeg: 8})
	require.NoError(t, err)
	trackBlock, err := Encode(62, track)
	require.NoError(t, err)

	// FSPEC flags FRN 30, which CAT048 leaves unmapped
	broken := []byte{48, 0, 8, 0x01, 0x01, 0x01, 0x01, 0x40}

	unsupported := []byte{250, 0, 4, 0x00}

	var stream []byte
	stream = append(stream, plotBlock(t, 2)...)
	stream = append(stream, broken...)
	stream = append(stream, unsupported...)
	stream = append(stream, trackBlock...)

	t.Run("all categories", func(t *testing.T) {
		res, err := NewDecoder(nil, false, testLogger()).DecodeStream(stream)
		require.NoError(t, err)
		assert.Equal(t, 2, res.Blocks)
		assert.Len(t, res.Records, 3)
		require.Len(t, res.Errors, 2)
		assert.Equal(t, uint8(48), res.Errors[0].Category)
		assert.True(t, errors.Is(res.Errors[0], codec.ErrUnmappedSlot))
		assert.Equal(t, uint8(250), res.Errors[1].Category)
		assert.True(t, errors.Is(res.Errors[1], codec.ErrCategoryMismatch))
		assert.Equal(t, uint8(62), res.Records[2].Category)
	})

	t.Run("one category", func(t *testing.T) {
		res, err := NewDecoder(cat062.Schema(), false, testLogger()).DecodeStream(stream)
		require.NoError(t, err)
		assert.Equal(t, 1, res.Blocks)
		assert.Equal(t, 3, res.Skipped)
		assert.Empty(t, res.Errors)
	})

	t.Run("framing ends stream", func(t *testing.T) {
		bad := append(plotBlock(t, 1), 48, 0xFF, 0xFF)
		res, err := NewDecoder(nil, false, testLogger()).DecodeStream(bad)
		assert.True(t, errors.Is(err, codec.ErrFraming))
		assert.Len(t, res.Records, 1)
	})
}
