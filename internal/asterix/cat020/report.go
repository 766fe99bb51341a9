package cat020

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// Technology flags carried in the first octet of I020
const (
	TechSSR  = "SSR"
	TechMS   = "MS"
	TechHF   = "HF"
	TechVDL4 = "VDL4"
	TechUAT  = "UAT"
	TechDME  = "DME"
	TechOT   = "OT"
)

// Report is one multilateration target report
type Report struct {
	SAC          uint8
	SIC          uint8
	Time         time.Time
	LatDeg       float64
	LonDeg       float64
	Technologies []string // defaults to Mode S
	XM, YM       *float64 // local cartesian position
	VXMS, VYMS   *float64 // velocity, m/s
	TrackNumber  *uint16
	Address      *uint32
	Callsign     string
	Mode3A       *uint16
	FlightLevel  *float64
	Devices      []uint8 // contributing receiver bitmap
}

// DataItems returns the items describing the report.
func (r Report) DataItems() []asterix.DataItem {
	tech := r.Technologies
	if len(tech) == 0 {
		tech = []string{TechMS}
	}
	flags := make([]format.Field, 0, len(tech))
	for _, t := range tech {
		flags = append(flags, format.F(t, format.Int(1)))
	}

	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(r.SAC, r.SIC)),
		asterix.Data("I020", format.Group(flags...)),
		asterix.Data("I041", format.Group(
			format.F("LAT", format.Float(r.LatDeg)),
			format.F("LON", format.Float(r.LonDeg)),
		)),
	}
	if !r.Time.IsZero() {
		items = append(items, asterix.Data("I140", asterix.TimeOfDay(r.Time)))
	}
	if r.XM != nil && r.YM != nil {
		items = append(items, asterix.Data("I042", format.Group(
			format.F("X", format.Float(*r.XM)),
			format.F("Y", format.Float(*r.YM)),
		)))
	}
	if r.TrackNumber != nil {
		items = append(items, asterix.Data("I161", asterix.TrackNumber(*r.TrackNumber)))
	}
	if r.Mode3A != nil {
		items = append(items, asterix.Data("I070", asterix.Mode3A(*r.Mode3A)))
	}
	if r.VXMS != nil && r.VYMS != nil {
		items = append(items, asterix.Data("I202", format.Group(
			format.F("VX", format.Float(*r.VXMS)),
			format.F("VY", format.Float(*r.VYMS)),
		)))
	}
	if r.FlightLevel != nil {
		items = append(items, asterix.Data("I090", asterix.FlightLevel(*r.FlightLevel)))
	}
	if r.Address != nil {
		items = append(items, asterix.Data("I220", format.Int(int64(*r.Address))))
	}
	if r.Callsign != "" {
		items = append(items, asterix.Data("I245", format.Group(format.F("CALLSIGN", format.Text(r.Callsign)))))
	}
	if len(r.Devices) > 0 {
		bits := make([]format.Value, 0, len(r.Devices))
		for _, d := range r.Devices {
			bits = append(bits, format.Int(int64(d)))
		}
		items = append(items, asterix.Data("I400", format.List(bits...)))
	}
	return items
}

// EncodeReport encodes one report as a CAT020 record.
func EncodeReport(r Report) ([]byte, error) {
	return schema.EncodeRecord(r.DataItems()...)
}

// Position returns the WGS-84 position of a decoded record.
func Position(rec asterix.Record) (latDeg, lonDeg float64, ok bool) {
	lat, ok1 := rec.Field("I041", "LAT")
	lon, ok2 := rec.Field("I041", "LON")
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return lat, lon, true
}
