package cat021

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// GroundVector is a ground speed and true track angle
type GroundVector struct {
	SpeedKt  float64
	TrackDeg float64
}

// Report is one ADS-B target report
type Report struct {
	SAC             uint8
	SIC             uint8
	Time            time.Time // time of applicability for position
	LatDeg          float64
	LonDeg          float64
	Address         uint32
	TrackNumber     *uint16
	Callsign        string
	FlightLevel     *float64
	GeoHeightFt     *float64
	AirspeedKt      *float64 // true airspeed
	VerticalRate    *float64 // barometric, ft/min
	Ground          *GroundVector
	EmitterCategory *uint8
}

// DataItems returns the items describing the report.
func (r Report) DataItems() []asterix.DataItem {
	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(r.SAC, r.SIC)),
		asterix.Data("I040", format.Group(format.F("ATP", format.Int(0)))),
		asterix.Data("I130", format.Group(
			format.F("LAT", format.Float(r.LatDeg)),
			format.F("LON", format.Float(r.LonDeg)),
		)),
		asterix.Data("I080", format.Int(int64(r.Address))),
	}
	if !r.Time.IsZero() {
		items = append(items, asterix.Data("I071", asterix.TimeOfDay(r.Time)))
	}
	if r.TrackNumber != nil {
		items = append(items, asterix.Data("I161", asterix.TrackNumber(*r.TrackNumber)))
	}
	if r.Callsign != "" {
		items = append(items, asterix.Data("I170", format.Text(r.Callsign)))
	}
	if r.FlightLevel != nil {
		items = append(items, asterix.Data("I145", format.Float(*r.FlightLevel)))
	}
	if r.GeoHeightFt != nil {
		items = append(items, asterix.Data("I140", format.Float(*r.GeoHeightFt)))
	}
	if r.AirspeedKt != nil {
		items = append(items, asterix.Data("I151", format.Group(format.F("TAS", format.Float(*r.AirspeedKt)))))
	}
	if r.VerticalRate != nil {
		items = append(items, asterix.Data("I155", format.Group(format.F("BVR", format.Float(*r.VerticalRate)))))
	}
	if r.Ground != nil {
		items = append(items, asterix.Data("I160", format.Group(
			format.F("GS", format.Float(r.Ground.SpeedKt/3600)),
			format.F("TA", format.Float(r.Ground.TrackDeg)),
		)))
	}
	if r.EmitterCategory != nil {
		items = append(items, asterix.Data("I020", format.Int(int64(*r.EmitterCategory))))
	}
	return items
}

// EncodeReport encodes one report as a CAT021 record.
func EncodeReport(r Report) ([]byte, error) {
	return schema.EncodeRecord(r.DataItems()...)
}

// Position returns the WGS-84 position of a decoded record, preferring I131.
func Position(rec asterix.Record) (latDeg, lonDeg float64, ok bool) {
	for _, id := range []string{"I131", "I130"} {
		lat, ok1 := rec.Field(id, "LAT")
		lon, ok2 := rec.Field(id, "LON")
		if ok1 && ok2 {
			return lat, lon, true
		}
	}
	return 0, 0, false
}
