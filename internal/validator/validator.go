package validator

import (
	"goasterix/internal/asterix"
	"goasterix/internal/asterix/cat021"
	"goasterix/internal/asterix/cat048"
	"goasterix/internal/asterix/cat062"
)

type checker[T any] func(s *Stats, original T, rec asterix.Record, tol Tolerances) bool

func run[T any](category uint8, originals []T, records []asterix.Record, tol Tolerances, check checker[T]) (bool, *Stats) {
	s := NewStats(category)
	s.Total = len(originals)

	if len(originals) != len(records) {
		s.errorf("Count mismatch: %d plots != %d records", len(originals), len(records))
		s.Failed = len(originals)
		if len(records) > s.Failed {
			s.Failed = len(records)
		}
		return false, s
	}

	for i := range originals {
		if check(s, originals[i], records[i], tol) {
			s.Successful++
		} else {
			s.Failed++
		}
	}
	return s.Success(), s
}

// ValidateCAT048 checks decoded CAT048 records against the plots they came from.
// I010 and I040 are mandatory; I140 is checked when present.
func ValidateCAT048(plots []cat048.Plot, records []asterix.Record, tol Tolerances) (bool, *Stats) {
	return run(48, plots, records, tol, checkPlot)
}

func checkPlot(s *Stats, p cat048.Plot, rec asterix.Record, tol Tolerances) bool {
	ok := checkSource(s, rec)

	if rangeM, az, found := cat048.Polar(rec); found {
		match, diff := CompareValues(p.RangeM, rangeM, tol.RangeM, Absolute)
		s.RangeErrors = append(s.RangeErrors, diff)
		if !match {
			s.errorf("Range error: %.2f m (tolerance: %v m)", diff, tol.RangeM)
			ok = false
		}

		match, diff = CompareAngles(p.AzimuthDeg, az, tol.AzimuthDeg)
		s.AzimuthErrors = append(s.AzimuthErrors, diff)
		if !match {
			s.errorf("Azimuth error: %.4f° (tolerance: %v°)", diff, tol.AzimuthDeg)
			ok = false
		}
	} else {
		s.missing("I040", "Missing I040 (position)")
		ok = false
	}

	if !checkTime(s, "I140", p.Time.IsZero(), asterix.SecondsOfDay(p.Time), rec, tol) {
		ok = false
	}
	if p.Mode3A != nil && !checkCode(s, "I070", "Mode 3/A", int64(*p.Mode3A), rec) {
		ok = false
	}
	return ok
}

// ValidateCAT062 checks decoded CAT062 records against the tracks they came from.
// I010 and I105 are mandatory; I070 is checked when present.
func ValidateCAT062(tracks []cat062.Track, records []asterix.Record, tol Tolerances) (bool, *Stats) {
	return run(62, tracks, records, tol, checkTrack)
}

func checkTrack(s *Stats, t cat062.Track, rec asterix.Record, tol Tolerances) bool {
	ok := checkSource(s, rec)

	if lat, lon, found := cat062.Position(rec); found {
		if !checkLatLon(s, t.LatDeg, t.LonDeg, lat, lon, tol) {
			ok = false
		}
	} else {
		s.missing("I105", "Missing I105 (position)")
		ok = false
	}

	if !checkTime(s, "I070", t.Time.IsZero(), asterix.SecondsOfDay(t.Time), rec, tol) {
		ok = false
	}
	if t.AltitudeFt != nil && !checkAltitude(s, "I130", *t.AltitudeFt, rec, tol) {
		ok = false
	}
	if t.Mode3A != nil && !checkCode(s, "I060", "Mode 3/A", int64(*t.Mode3A), rec) {
		ok = false
	}
	return ok
}

// ValidateCAT021 checks decoded CAT021 records against the reports they came from.
// I010 and I130 are mandatory; I071 is checked when present; I080 must match exactly.
func ValidateCAT021(reports []cat021.Report, records []asterix.Record, tol Tolerances) (bool, *Stats) {
	return run(21, reports, records, tol, checkReport)
}

func checkReport(s *Stats, r cat021.Report, rec asterix.Record, tol Tolerances) bool {
	ok := checkSource(s, rec)

	lat, okLat := rec.Field("I130", "LAT")
	lon, okLon := rec.Field("I130", "LON")
	if okLat && okLon {
		if !checkLatLon(s, r.LatDeg, r.LonDeg, lat, lon, tol) {
			ok = false
		}
	} else {
		s.missing("I130", "Missing I130 (position)")
		ok = false
	}

	if !checkTime(s, "I071", r.Time.IsZero(), asterix.SecondsOfDay(r.Time), rec, tol) {
		ok = false
	}
	if r.GeoHeightFt != nil && !checkAltitude(s, "I140", *r.GeoHeightFt, rec, tol) {
		ok = false
	}
	if !checkCode(s, "I080", "Address", int64(r.Address), rec) {
		ok = false
	}
	return ok
}

func checkSource(s *Stats, rec asterix.Record) bool {
	if rec.Has("I010") {
		return true
	}
	s.missing("I010", "Missing I010 (SAC/SIC)")
	return false
}

func checkLatLon(s *Stats, origLat, origLon, lat, lon float64, tol Tolerances) bool {
	ok := true
	match, diff := CompareValues(origLat, lat, tol.PositionDeg, Absolute)
	s.LatErrors = append(s.LatErrors, diff)
	if !match {
		s.errorf("Latitude error: %.7f° (tolerance: %v°)", diff, tol.PositionDeg)
		ok = false
	}

	match, diff = CompareAngles(origLon, lon, tol.PositionDeg)
	s.LonErrors = append(s.LonErrors, diff)
	if !match {
		s.errorf("Longitude error: %.7f° (tolerance: %v°)", diff, tol.PositionDeg)
		ok = false
	}
	return ok
}

// checkTime compares a time of day item. The item is optional: when absent it is
// counted as missing without failing the record.
func checkTime(s *Stats, id string, unset bool, original float64, rec asterix.Record, tol Tolerances) bool {
	if unset {
		return true
	}
	decoded, found := rec.Num(id)
	if !found {
		s.missing(id, "")
		return true
	}

	match, diff := CompareValues(original, decoded, tol.TimeS, Absolute)
	s.TimeErrors = append(s.TimeErrors, diff)
	if !match {
		s.errorf("Time error: %.3f s (tolerance: %v s)", diff, tol.TimeS)
		return false
	}
	return true
}

func checkAltitude(s *Stats, id string, original float64, rec asterix.Record, tol Tolerances) bool {
	decoded, found := rec.Num(id)
	if !found {
		s.missing(id, "Missing "+id+" (altitude)")
		return false
	}

	match, diff := CompareValues(original, decoded, tol.AltitudeFt, Absolute)
	s.AltitudeErrors = append(s.AltitudeErrors, diff)
	if !match {
		s.errorf("Altitude error: %.2f ft (tolerance: %v ft)", diff, tol.AltitudeFt)
		return false
	}
	return true
}

// checkCode compares a discrete code exactly. The item may be a scalar or carry
// the code in a CODE subfield.
func checkCode(s *Stats, id, what string, original int64, rec asterix.Record) bool {
	v, found := rec.Get(id)
	if !found {
		s.missing(id, "Missing "+id+" ("+what+")")
		return false
	}

	decoded, ok := v.Num()
	if !ok {
		decoded, _ = v.Field("CODE")
	}
	if int64(decoded) != original {
		s.CodeMismatches++
		if what == "Mode 3/A" {
			s.errorf("%s mismatch: %s != %s", what, asterix.Octal(original), asterix.Octal(int64(decoded)))
		} else {
			s.errorf("%s mismatch: %06X != %06X", what, original, int64(decoded))
		}
		return false
	}
	return true
}
