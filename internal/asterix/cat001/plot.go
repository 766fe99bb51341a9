package cat001

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// Detection kinds carried in I020 SSRPSR
const (
	DetectionNone   = 0
	DetectionPSR    = 1
	DetectionSSR    = 2
	DetectionSSRPSR = 3
)

// Plot is one radar plot to be reported
type Plot struct {
	SAC         uint8
	SIC         uint8
	Time        time.Time // reported truncated to 512 s
	RangeM      float64
	AzimuthDeg  float64
	Detection   uint8
	Mode3A      *uint16
	FlightLevel *float64
}

// DataItems returns the items describing the plot.
func (p Plot) DataItems() []asterix.DataItem {
	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(p.SAC, p.SIC)),
		asterix.Data("I020", format.Group(format.F("SSRPSR", format.Int(int64(p.Detection))))),
		asterix.Data("I040", format.Group(
			format.F("RHO", format.Float(p.RangeM/asterix.MetersPerNM)),
			format.F("THETA", format.Float(p.AzimuthDeg)),
		)),
	}
	if p.Mode3A != nil {
		items = append(items, asterix.Data("I070", asterix.Mode3A(*p.Mode3A)))
	}
	if p.FlightLevel != nil {
		items = append(items, asterix.Data("I090", asterix.FlightLevel(*p.FlightLevel)))
	}
	if !p.Time.IsZero() {
		items = append(items, asterix.Data("I141", asterix.TimeOfDay(p.Time)))
	}
	return items
}

// EncodePlot encodes one plot as a CAT001 record.
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
