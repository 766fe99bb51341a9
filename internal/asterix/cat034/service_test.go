package cat034

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goasterix/internal/codec"
	"goasterix/internal/format"
)

func TestNorthMarker(t *testing.T) {
	sv := NorthMarker(7, 9, time.Date(2024, 2, 2, 1, 0, 0, 0, time.UTC), 4.5)
	sv.Counters = []Counter{{Type: 1, Count: 250}, {Type: 3, Count: 2047}}

	encoded, err := EncodeService(sv)
	require.NoError(t, err)
	// FRNs 1, 2, 3, 5 and 8
	assert.Equal(t, []byte{0xE9, 0x80}, encoded[:2])

	rec, n, err := Schema().DecodeRecord(encoded, 0, true)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)

	typ, _ := rec.Get("I000")
	assert.Equal(t, "North Marker", typ.Description)
	tod, _ := rec.Num("I030")
	assert.Equal(t, 3600.0, tod)
	period, _ := rec.Num("I041")
	assert.Equal(t, 4.5, period)

	counts, _ := rec.Get("I070")
	require.Len(t, counts.Items, 2)
	c, _ := counts.Items[1].Field("COUNTER")
	assert.Equal(t, 2047.0, c)
}

func TestSectorCrossing(t *testing.T) {
	sector := 90.0
	sv := Service{SAC: 1, SIC: 1, Type: MessageSectorCrossing, SectorDeg: &sector}

	encoded, err := EncodeService(sv)
	require.NoError(t, err)
	// FSPEC, SAC, SIC, type, sector
	assert.Equal(t, []byte{0xD0, 1, 1, 2, 0x40}, encoded)
}

func TestConfigurationSpareSlots(t *testing.T) {
	item, ok := Schema().Lookup("I050")
	require.True(t, ok)

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "com and ssr", input: []byte{0x88, 0x80, 0x20}},
		{name: "mode s", input: []byte{0x04, 0xC1, 0x80}},
		{name: "spare position set", input: []byte{0x40, 0x00}, wantErr: codec.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, n, err := item.Codec.Decode(tt.input, 0, false)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, len(tt.input), n)

			encoded, err := item.Codec.Encode(v)
			require.NoError(t, err)
			assert.Equal(t, tt.input, encoded)
		})
	}
}

func TestProcessingModeRejectsSpareName(t *testing.T) {
	item, _ := Schema().Lookup("I060")
	_, err := item.Codec.Encode(format.Group(format.F("ADS", format.Group())))
	assert.True(t, errors.Is(err, codec.ErrInvalidValue))
}
