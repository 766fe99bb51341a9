package cat019

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goasterix/internal/asterix"
)

func TestStatusRoundTrip(t *testing.T) {
	st := Status{
		SAC:      0,
		SIC:      1,
		Time:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Degraded: true,
		Sensors: []Sensor{
			{ID: 1, Good: true, Online: true, Transmit: true},
			{ID: 2, Good: false, Online: false},
		},
		Reference: &Reference{LatDeg: 50.0379, LonDeg: 8.5622, HeightM: 111.25},
	}

	encoded, err := EncodeStatus(st)
	require.NoError(t, err)
	// FRNs 1-4, 6, 8 and 9
	assert.Equal(t, []byte{0xF5, 0xC0}, encoded[:2])

	rec, n, err := Schema().DecodeRecord(encoded, 0, true)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)

	typ, _ := rec.Get("I000")
	assert.Equal(t, int64(MessagePeriodic), typ.Int)
	assert.Equal(t, "Periodic Status Message", typ.Description)

	status, _ := rec.Get("I550")
	assert.Equal(t, "degraded", status.Description)

	assert.Equal(t, st.Sensors, Sensors(rec))

	lat, _ := rec.Field("I600", "LAT")
	lon, _ := rec.Field("I600", "LON")
	assert.InDelta(t, 50.0379, lat, asterix.LSBWGS25)
	assert.InDelta(t, 8.5622, lon, asterix.LSBWGS25)
	h, _ := rec.Num("I610")
	assert.Equal(t, 111.25, h)
}

func TestTransponderStatus(t *testing.T) {
	item, ok := Schema().Lookup("I553")
	require.True(t, ok)

	v, n, err := item.Codec.Decode([]byte{0xC5, 0x08}, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	require.Len(t, v.Items, 2)

	tests := []struct {
		name       string
		ref1, ref2 float64
	}{
		{name: "first octet", ref1: 3, ref2: 1},
		{name: "second octet", ref1: 0, ref2: 2},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r1, _ := v.Items[i].Field("REF1")
			r2, _ := v.Items[i].Field("REF2")
			assert.Equal(t, tt.ref1, r1)
			assert.Equal(t, tt.ref2, r2)
		})
	}
}
