package cat048

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// Report types carried in I020 TYP
const (
	TypeNoDetection  = 0
	TypePSR          = 1
	TypeSSR          = 2
	TypeSSRPSR       = 3
	TypeModeSAllCall = 4
	TypeModeSRoll    = 5
)

// Plot is one radar detection to be reported
type Plot struct {
	SAC         uint8
	SIC         uint8
	Time        time.Time // omitted from the record when zero
	RangeM      float64
	AzimuthDeg  float64
	Type        uint8
	Mode3A      *uint16
	FlightLevel *float64
	Address     *uint32
	Callsign    string
	TrackNumber *uint16
}

// PolarPosition returns the I040 value for a range in metres and an azimuth in degrees.
func PolarPosition(rangeM, azimuthDeg float64) format.Value {
	return format.Group(
		format.F("RHO", format.Float(rangeM/asterix.MetersPerNM)),
		format.F("THETA", format.Float(azimuthDeg)),
	)
}

// DataItems returns the items describing the plot.
func (p Plot) DataItems() []asterix.DataItem {
	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(p.SAC, p.SIC)),
		asterix.Data("I020", format.Group(format.F("TYP", format.Int(int64(p.Type))))),
		asterix.Data("I040", PolarPosition(p.RangeM, p.AzimuthDeg)),
	}
	if !p.Time.IsZero() {
		items = append(items, asterix.Data("I140", asterix.TimeOfDay(p.Time)))
	}
	if p.Mode3A != nil {
		items = append(items, asterix.Data("I070", asterix.Mode3A(*p.Mode3A)))
	}
	if p.FlightLevel != nil {
		items = append(items, asterix.Data("I090", asterix.FlightLevel(*p.FlightLevel)))
	}
	if p.Address != nil {
		items = append(items, asterix.Data("I220", format.Int(int64(*p.Address))))
	}
	if p.Callsign != "" {
		items = append(items, asterix.Data("I240", format.Text(p.Callsign)))
	}
	if p.TrackNumber != nil {
		items = append(items, asterix.Data("I161", asterix.TrackNumber(*p.TrackNumber)))
	}
	return items
}

// EncodePlot encodes one plot as a CAT048 record.
func EncodePlot(p Plot) ([]byte, error) {
	return schema.EncodeRecord(p.DataItems()...)
}

// Polar returns the measured position of a decoded record in metres and degrees.
func Polar(rec asterix.Record) (rangeM, azimuthDeg float64, ok bool) {
	rho, ok1 := rec.Field("I040", "RHO")
	theta, ok2 := rec.Field("I040", "THETA")
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return rho * asterix.MetersPerNM, theta, true
}
