package cat021

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

func ptr[T any](v T) *T { return &v }

func TestPositionLayout(t *testing.T) {
	item, ok := Schema().Lookup("I130")
	require.True(t, ok)

	encoded, err := item.Codec.Encode(format.Group(
		format.F("LAT", format.Float(45)),
		format.F("LON", format.Float(-90)),
	))
	require.NoError(t, err)
	// 45 deg = 2^21 counts, -90 deg = -2^22 counts
	assert.Equal(t, []byte{0x20, 0x00, 0x00, 0xC0, 0x00, 0x00}, encoded)
}

func TestReportRoundTrip(t *testing.T) {
	report := Report{
		SAC:             0,
		SIC:             7,
		Time:            time.Date(2024, 5, 5, 10, 0, 0, 7812500, time.UTC),
		LatDeg:          48.8566,
		LonDeg:          2.3522,
		Address:         0x3950A1,
		TrackNumber:     ptr(uint16(321)),
		Callsign:        "AFR447",
		FlightLevel:     ptr(370.25),
		GeoHeightFt:     ptr(37500.0),
		AirspeedKt:      ptr(480.0),
		VerticalRate:    ptr(-625.0),
		Ground:          &GroundVector{SpeedKt: 450, TrackDeg: 270},
		EmitterCategory: ptr(uint8(5)),
	}

	encoded, err := EncodeReport(report)
	require.NoError(t, err)

	rec, n, err := Schema().DecodeRecord(encoded, 0, true)
	require.NoError(t, err)
	assert.Equal(t, len(encoded), n)

	lat, lon, ok := Position(rec)
	require.True(t, ok)
	assert.InDelta(t, report.LatDeg, lat, asterix.LSBWGS23)
	assert.InDelta(t, report.LonDeg, lon, asterix.LSBWGS23)

	addr, _ := rec.Num("I080")
	assert.Equal(t, float64(0x3950A1), addr)
	tod, _ := rec.Num("I071")
	assert.Equal(t, 36000.0078125, tod)
	trn, _ := rec.Field("I161", "TRN")
	assert.Equal(t, 321.0, trn)
	cs, _ := rec.Get("I170")
	assert.Equal(t, "AFR447", cs.Text)
	fl, _ := rec.Num("I145")
	assert.Equal(t, 370.25, fl)
	h, _ := rec.Num("I140")
	assert.Equal(t, 37500.0, h)
	tas, _ := rec.Field("I151", "TAS")
	assert.Equal(t, 480.0, tas)
	bvr, _ := rec.Field("I155", "BVR")
	assert.Equal(t, -625.0, bvr)
	ta, _ := rec.Field("I160", "TA")
	assert.Equal(t, 270.0, ta)
	gs, _ := rec.Field("I160", "GS")
	assert.InDelta(t, 450.0/3600, gs, asterix.LSBSpeed14)
	ecat, _ := rec.Num("I020")
	assert.Equal(t, 5.0, ecat)

	gv, _ := rec.Get("I160")
	assert.Contains(t, gv.Description, "track 270.00 deg")
}

func TestQualityIndicators(t *testing.T) {
	item, _ := Schema().Lookup("I090")

	v, n, err := item.Codec.Decode([]byte{0x53, 0x2F, 0x09, 0x20}, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	tests := map[string]float64{"NUCR_NACV": 2, "NUCP_NIC": 9, "NICBARO": 0, "SIL": 1, "NACP": 7, "SDA": 1, "GVA": 0, "PIC": 2}
	for name, want := range tests {
		got, ok := v.Field(name)
		require.True(t, ok, name)
		assert.Equal(t, want, got, name)
	}

	encoded, err := item.Codec.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x53, 0x2F, 0x09, 0x20}, encoded)
}

func TestMetInformation(t *testing.T) {
	item, _ := Schema().Lookup("I220")
	v := format.Group(
		format.F("WS", format.Float(35)),
		format.F("TMP", format.Float(-56.5)),
	)

	encoded, err := item.Codec.Encode(v)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA0, 0x00, 0x23, 0xFF, 0x1E}, encoded)

	decoded, _, err := item.Codec.Decode(encoded, 0, false)
	require.NoError(t, err)
	assert.True(t, v.Equal(decoded))
}
