package cat062

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// Velocity is a Cartesian ground velocity in m/s
type Velocity struct {
	VX float64
	VY float64
}

// FlightPlan carries the I390 subset a tracker usually correlates
type FlightPlan struct {
	Callsign    string
	Departure   string
	Destination string
	ClearedFL   *float64
}

// Track is one system track update
type Track struct {
	SAC         uint8
	SIC         uint8
	Time        time.Time
	LatDeg      float64
	LonDeg      float64
	TrackNumber uint16
	Velocity    *Velocity
	AltitudeFt  *float64 // geometric
	FlightLevel *float64 // measured
	ClimbFtMin  *float64
	Mode3A      *uint16
	Callsign    string
	Address     *uint32
	FlightPlan  *FlightPlan
}

// DataItems returns the items describing the track.
func (t Track) DataItems() []asterix.DataItem {
	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(t.SAC, t.SIC)),
		asterix.Data("I105", format.Group(
			format.F("LAT", format.Float(t.LatDeg)),
			format.F("LON", format.Float(t.LonDeg)),
		)),
		asterix.Data("I040", format.Int(int64(t.TrackNumber))),
	}
	if !t.Time.IsZero() {
		items = append(items, asterix.Data("I070", asterix.TimeOfDay(t.Time)))
	}
	if t.Velocity != nil {
		items = append(items, asterix.Data("I185", format.Group(
			format.F("VX", format.Float(t.Velocity.VX)),
			format.F("VY", format.Float(t.Velocity.VY)),
		)))
	}
	if t.Mode3A != nil {
		items = append(items, asterix.Data("I060", asterix.Mode3A(*t.Mode3A)))
	}
	if t.Callsign != "" {
		items = append(items, asterix.Data("I245", format.Group(format.F("CALLSIGN", format.Text(t.Callsign)))))
	}
	if t.Address != nil {
		items = append(items, asterix.Data("I380", format.Group(format.F("ADR", format.Int(int64(*t.Address))))))
	}
	if t.FlightLevel != nil {
		items = append(items, asterix.Data("I136", format.Float(*t.FlightLevel)))
	}
	if t.AltitudeFt != nil {
		items = append(items, asterix.Data("I130", format.Float(*t.AltitudeFt)))
	}
	if t.ClimbFtMin != nil {
		items = append(items, asterix.Data("I220", format.Float(*t.ClimbFtMin)))
	}
	if fp := t.FlightPlan; fp != nil {
		var fields []format.Field
		if fp.Callsign != "" {
			fields = append(fields, format.F("CSN", format.Text(fp.Callsign)))
		}
		if fp.Departure != "" {
			fields = append(fields, format.F("DEP", format.Text(fp.Departure)))
		}
		if fp.Destination != "" {
			fields = append(fields, format.F("DST", format.Text(fp.Destination)))
		}
		if fp.ClearedFL != nil {
			fields = append(fields, format.F("CFL", format.Float(*fp.ClearedFL)))
		}
		items = append(items, asterix.Data("I390", format.Group(fields...)))
	}
	return items
}

// EncodeTrack encodes one track as a CAT062 record.
func EncodeTrack(t Track) ([]byte, error) {
	return schema.EncodeRecord(t.DataItems()...)
}

// Position returns the WGS-84 position of a decoded record.
func Position(rec asterix.Record) (latDeg, lonDeg float64, ok bool) {
	lat, ok1 := rec.Field("I105", "LAT")
	lon, ok2 := rec.Field("I105", "LON")
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return lat, lon, true
}
