package asterix

import (
	"fmt"
	"math"
	"strings"
	"time"

	"goasterix/internal/format"
)

// Unit conversions
const (
	MetersPerNM   = 1852.0
	FeetPerMeter  = 3.28084
	SecondsPerDay = 86400
)

// Common resolutions
const (
	LSBTimeOfDay = 1.0 / 128         // s
	LSBRho256    = 1.0 / 256         // NM
	LSBRho128    = 1.0 / 128         // NM
	LSBAzimuth16 = 360.0 / (1 << 16) // deg
	LSBWGS23     = 180.0 / (1 << 23) // deg
	LSBWGS25     = 180.0 / (1 << 25) // deg
	LSBWGS30     = 180.0 / (1 << 30) // deg
	LSBSpeed14   = 1.0 / (1 << 14)   // NM/s
	LSBFL        = 0.25              // FL
	LSBHeight    = 6.25              // ft
	LSBRate      = 6.25              // ft/min
)

// Layouts shared by several categories
var (
	DataSourceFormat = format.Fixed(format.U("SAC", 8), format.U("SIC", 8))

	TimeOfDayFormat = format.Scalar(format.U("TOD", 24).Scaled(LSBTimeOfDay, "s").Wrapping())

	AddressFormat = format.Scalar(format.U("ADDRESS", 24).Wrapping())

	IdentificationFormat = format.Scalar(format.Chars6("CALLSIGN", 8))

	Mode3AFormat = format.Fixed(
		format.U("V", 1), format.U("G", 1), format.U("L", 1), format.Pad(1),
		format.U("CODE", 12).Wrapping(),
	)

	FlightLevelFormat = format.Fixed(
		format.U("V", 1), format.U("G", 1),
		format.S("FL", 14).Scaled(LSBFL, "FL"),
	)

	TrackNumberFormat = format.Fixed(format.Pad(4), format.U("TRN", 12).Wrapping())

	// Mode C code with per-bit confidence
	ModeCFormat = format.Fixed(
		format.U("V", 1), format.U("G", 1), format.Pad(2), format.U("CODE", 12),
		format.Pad(4), format.U("QUALITY", 12),
	)

	CodeConfidenceFormat = format.Fixed(format.Pad(4), format.U("QUALITY", 12))

	ModeSFormat = format.Repetitive(format.Fixed(
		format.U("MBDATA", 56), format.U("BDS1", 4), format.U("BDS2", 4),
	))

	ACASFormat = format.Fixed(format.U("MBDATA", 56))

	// SP and RE fields
	ReservedFormat = format.Explicit(nil)
)

// DataSourceID returns the I010 value for a sensor.
func DataSourceID(sac, sic uint8) format.Value {
	return format.Group(
		format.F("SAC", format.Int(int64(sac))),
		format.F("SIC", format.Int(int64(sic))),
	)
}

// Mode3A returns a Mode 3/A code value with validated, non-garbled flags clear.
func Mode3A(code uint16) format.Value {
	return format.Group(format.F("CODE", format.Int(int64(code&0x0FFF))))
}

// FlightLevel returns a Mode C flight level value.
func FlightLevel(fl float64) format.Value {
	return format.Group(format.F("FL", format.Float(fl)))
}

// TrackNumber returns a 12-bit track number value.
func TrackNumber(trn uint16) format.Value {
	return format.Group(format.F("TRN", format.Int(int64(trn))))
}

// SecondsOfDay returns the seconds elapsed since the preceding UTC midnight.
func SecondsOfDay(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return t.Sub(midnight).Seconds()
}

// TimeOfDay returns the time of day value for t.
func TimeOfDay(t time.Time) format.Value {
	return format.Float(SecondsOfDay(t))
}

// Octal renders a 12-bit code the way controllers read it
func Octal(code int64) string {
	return fmt.Sprintf("%04o", code&0x0FFF)
}

// DescribeDataSource renders I010
func DescribeDataSource(v format.Value) string {
	sac, _ := v.Field("SAC")
	sic, _ := v.Field("SIC")
	return fmt.Sprintf("SAC: %d, SIC: %d", int(sac), int(sic))
}

// DescribeTimeOfDay renders a time of day as hh:mm:ss.sss UTC
func DescribeTimeOfDay(v format.Value) string {
	s, _ := v.Num()
	h := int(s / 3600)
	m := int(math.Mod(s, 3600) / 60)
	return fmt.Sprintf("%02d:%02d:%06.3f UTC", h, m, math.Mod(s, 60))
}

// DescribeMode3A renders a Mode 3/A code in octal with its flags
func DescribeMode3A(v format.Value) string {
	code, _ := v.Field("CODE")
	var flags []string
	for _, f := range []string{"V", "G", "L"} {
		if x, _ := v.Field(f); x != 0 {
			flags = append(flags, f)
		}
	}
	desc := "Mode 3/A: " + Octal(int64(code))
	if len(flags) > 0 {
		desc += " (" + strings.Join(flags, ",") + ")"
	}
	return desc
}

// DescribeFlightLevel renders a Mode C flight level
func DescribeFlightLevel(v format.Value) string {
	fl, _ := v.Field("FL")
	return fmt.Sprintf("FL%.2f (%.0f ft)", fl, fl*100)
}

// DescribeAddress renders a 24-bit aircraft address
func DescribeAddress(v format.Value) string {
	a, _ := v.Num()
	return fmt.Sprintf("ICAO 0x%06X", int64(a))
}

// DescribeIdentification renders a callsign
func DescribeIdentification(v format.Value) string {
	return fmt.Sprintf("Callsign: %q", v.Text)
}

// DescribeTrackNumber renders a track number
func DescribeTrackNumber(v format.Value) string {
	trn, _ := v.Field("TRN")
	return fmt.Sprintf("Track %d", int(trn))
}
