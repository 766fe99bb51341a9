package validator

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goasterix/internal/asterix"
	"goasterix/internal/asterix/cat021"
	"goasterix/internal/asterix/cat048"
	"goasterix/internal/asterix/cat062"
)

func decode(t *testing.T, schema *asterix.Schema, encoded []byte) asterix.Record {
	t.Helper()
	rec, _, err := schema.DecodeRecord(encoded, 0, false)
	require.NoError(t, err)
	return rec
}

func encodePlots(t *testing.T, plots []cat048.Plot) []asterix.Record {
	t.Helper()
	var records []asterix.Record
	for _, p := range plots {
		enc, err := cat048.EncodePlot(p)
		require.NoError(t, err)
		records = append(records, decode(t, cat048.Schema(), enc))
	}
	return records
}

func TestValidateCAT048(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	code := uint16(0o7654)
	plots := []cat048.Plot{
		{SAC: 1, SIC: 2, Time: t0, RangeM: 50000, AzimuthDeg: 135, Mode3A: &code},
		{SAC: 1, SIC: 2, Time: t0.Add(4 * time.Second), RangeM: 120000, AzimuthDeg: 359.99},
	}

	ok, stats := ValidateCAT048(plots, encodePlots(t, plots), DefaultTolerances())
	assert.True(t, ok)
	assert.Equal(t, 2, stats.Successful)
	assert.Equal(t, 1.0, stats.SuccessRate())
	assert.Len(t, stats.RangeErrors, 2)
	assert.Len(t, stats.TimeErrors, 2)
	assert.Less(t, Max(stats.RangeErrors), asterix.LSBRho256*asterix.MetersPerNM)
	assert.Empty(t, stats.Missing)
	assert.False(t, stats.RunID.IsNil())
}

func TestValidateCAT048AzimuthRejected(t *testing.T) {
	sent := []cat048.Plot{{SAC: 1, SIC: 2, RangeM: 50000, AzimuthDeg: 136}}
	original := []cat048.Plot{{SAC: 1, SIC: 2, RangeM: 50000, AzimuthDeg: 135}}

	tol := DefaultTolerances()
	tol.AzimuthDeg = 0.5
	ok, stats := ValidateCAT048(original, encodePlots(t, sent), tol)
	assert.False(t, ok)
	assert.Equal(t, 1, stats.Failed)
	require.NotEmpty(t, stats.Errors)
	assert.Contains(t, stats.Errors[0], "Azimuth error")
}

func TestValidateCAT048Failures(t *testing.T) {
	plot := cat048.Plot{SAC: 1, SIC: 2, RangeM: 1000, AzimuthDeg: 10}
	records := encodePlots(t, []cat048.Plot{plot})

	t.Run("count mismatch", func(t *testing.T) {
		ok, stats := ValidateCAT048([]cat048.Plot{plot, plot}, records, DefaultTolerances())
		assert.False(t, ok)
		assert.Equal(t, 2, stats.Failed)
		assert.Equal(t, "Count mismatch: 2 plots != 1 records", stats.Errors[0])
	})

	t.Run("empty run", func(t *testing.T) {
		ok, stats := ValidateCAT048(nil, nil, DefaultTolerances())
		assert.False(t, ok)
		assert.Zero(t, stats.SuccessRate())
	})

	t.Run("missing mandatory items", func(t *testing.T) {
		rec := asterix.Record{Category: 48}
		ok, stats := ValidateCAT048([]cat048.Plot{plot}, []asterix.Record{rec}, DefaultTolerances())
		assert.False(t, ok)
		assert.Equal(t, map[string]int{"I010": 1, "I040": 1}, stats.Missing)
		assert.Contains(t, stats.Errors, "Missing I010 (SAC/SIC)")
		assert.Contains(t, stats.Errors, "Missing I040 (position)")
	})

	t.Run("missing time is tolerated", func(t *testing.T) {
		timed := plot
		timed.Time = time.Date(2024, 6, 1, 0, 0, 1, 0, time.UTC)
		ok, stats := ValidateCAT048([]cat048.Plot{timed}, records, DefaultTolerances())
		assert.True(t, ok)
		assert.Equal(t, 1, stats.Missing["I140"])
	})

	t.Run("mode 3a mismatch", func(t *testing.T) {
		sentCode, wantCode := uint16(0o1200), uint16(0o7700)
		sent := plot
		sent.Mode3A = &sentCode
		want := plot
		want.Mode3A = &wantCode
		ok, stats := ValidateCAT048([]cat048.Plot{want}, encodePlots(t, []cat048.Plot{sent}), DefaultTolerances())
		assert.False(t, ok)
		assert.Equal(t, 1, stats.CodeMismatches)
		assert.Contains(t, stats.Errors, "Mode 3/A mismatch: 7700 != 1200")
	})
}

func TestValidateCAT062(t *testing.T) {
	alt := 35000.0
	tracks := []cat062.Track{
		{SAC: 3, SIC: 4, Time: time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC), LatDeg: 52.5, LonDeg: 13.4, TrackNumber: 1, AltitudeFt: &alt},
		{SAC: 3, SIC: 4, LatDeg: -33.9, LonDeg: 151.2, TrackNumber: 2},
	}
	var records []asterix.Record
	for _, tr := range tracks {
		enc, err := cat062.EncodeTrack(tr)
		require.NoError(t, err)
		records = append(records, decode(t, cat062.Schema(), enc))
	}

	ok, stats := ValidateCAT062(tracks, records, DefaultTolerances())
	assert.True(t, ok, stats.Errors)
	assert.Len(t, stats.LatErrors, 2)
	assert.Len(t, stats.AltitudeErrors, 1)

	moved := tracks[1]
	moved.LatDeg += 0.01
	ok, stats = ValidateCAT062([]cat062.Track{tracks[0], moved}, records, DefaultTolerances())
	assert.False(t, ok)
	assert.Contains(t, stats.Errors[0], "Latitude error")
}

func TestValidateCAT021(t *testing.T) {
	report := cat021.Report{
		SAC: 0, SIC: 9,
		Time:   time.Date(2024, 6, 1, 23, 59, 59, 0, time.UTC),
		LatDeg: 40.6413, LonDeg: -73.7781,
		Address: 0xA12345,
	}
	enc, err := cat021.EncodeReport(report)
	require.NoError(t, err)
	records := []asterix.Record{decode(t, cat021.Schema(), enc)}

	ok, stats := ValidateCAT021([]cat021.Report{report}, records, DefaultTolerances())
	assert.True(t, ok, stats.Errors)

	other := report
	other.Address = 0xA12346
	ok, stats = ValidateCAT021([]cat021.Report{other}, records, DefaultTolerances())
	assert.False(t, ok)
	assert.Equal(t, 1, stats.CodeMismatches)
	assert.Contains(t, stats.Errors, "Address mismatch: A12346 != A12345")
}

func TestStatsSummary(t *testing.T) {
	errs := []float64{1, 2, 3, 4}
	assert.Equal(t, 2.5, Mean(errs))
	assert.Equal(t, 1.0, Min(errs))
	assert.Equal(t, 4.0, Max(errs))
	assert.InDelta(t, 1.2909944, StdDev(errs), 1e-6)

	assert.Zero(t, Mean(nil))
	assert.Zero(t, Max(nil))
	assert.Zero(t, StdDev([]float64{5}))
}

func TestWriteReport(t *testing.T) {
	s := NewStats(48)
	s.Total, s.Successful, s.Failed = 2, 1, 1
	s.AzimuthErrors = []float64{0.1, 1.0}
	s.Missing["I140"] = 1
	for i := 0; i < 25; i++ {
		s.errorf("error %d", i)
	}

	var buf bytes.Buffer
	require.NoError(t, s.WriteReport(&buf, true))
	out := buf.String()

	assert.Contains(t, out, "ASTERIX CAT048 Round-Trip Validation Report")
	assert.Contains(t, out, s.RunID.String())
	assert.Contains(t, out, "VALIDATION FAILED")
	assert.Contains(t, out, "Success rate:     50.0%")
	assert.Contains(t, out, "Azimuth Errors:")
	assert.Contains(t, out, "  I140: 1 records")
	assert.Contains(t, out, "  20. error 19")
	assert.Contains(t, out, "... and 5 more errors")
	assert.NotContains(t, out, "error 20\n")

	buf.Reset()
	require.NoError(t, s.WriteReport(&buf, false))
	assert.NotContains(t, buf.String(), "Detailed Errors")
}

func TestTolerancesWithDefaults(t *testing.T) {
	got := Tolerances{AzimuthDeg: 0.1}.WithDefaults()
	want := DefaultTolerances()
	want.AzimuthDeg = 0.1
	assert.Equal(t, want, got)
}

func TestZeroTimeToleranceIsExact(t *testing.T) {
	t0 := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	tol := DefaultTolerances()
	tol.TimeS = 0

	tests := []struct {
		name string
		time time.Time
		want bool
	}{
		{name: "whole second", time: t0, want: true},
		{name: "below time LSB", time: t0.Add(3 * time.Millisecond), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plots := []cat048.Plot{{SAC: 1, SIC: 2, Time: tt.time, RangeM: 50000, AzimuthDeg: 135}}
			ok, stats := ValidateCAT048(plots, encodePlots(t, plots), tol)
			assert.Equal(t, tt.want, ok)
			if !tt.want {
				require.NotEmpty(t, stats.Errors)
				assert.Contains(t, stats.Errors[0], "Time error")
			}

			ok, _ = ValidateCAT048(plots, encodePlots(t, plots), DefaultTolerances())
			assert.True(t, ok)
		})
	}
}

func TestTolerancesValidate(t *testing.T) {
	assert.NoError(t, Tolerances{}.Validate())
	assert.NoError(t, DefaultTolerances().Validate())

	tol := DefaultTolerances()
	tol.TimeS = -0.5
	err := tol.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "time_s")
}
