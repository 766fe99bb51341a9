// Package cat001 implements the plot UAP of ASTERIX Category 001, monoradar
// target reports.
package cat001

import (
	"fmt"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

var (
	u   = format.U
	s   = format.S
	pad = format.Pad
)

// Item layouts
var (
	descriptor = format.Variable(
		[]format.Subfield{u("TYP", 1), u("SIM", 1), u("SSRPSR", 2), u("ANT", 1), u("SPI", 1), u("RAB", 1)},
		[]format.Subfield{u("TST", 1), u("DS1DS2", 2), u("ME", 1), u("MI", 1), pad(2)},
	)

	polar = format.Fixed(
		u("RHO", 16).Scaled(asterix.LSBRho128, "NM"),
		u("THETA", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
	)

	characteristics = format.Repeating(u("CHAR", 7))

	truncatedTime = format.Scalar(u("TOD", 16).Scaled(asterix.LSBTimeOfDay, "s").Wrapping())

	doppler = format.Scalar(s("SPEED", 8).Scaled(asterix.LSBSpeed14, "NM/s"))

	power = format.Scalar(s("POWER", 8).Scaled(1, "dBm"))

	warnings = format.Repeating(u("CODE", 7))

	xPulse = format.Fixed(u("XA", 1), pad(1), u("XC", 1), pad(2), u("X2", 1), pad(2))
)

var schema = asterix.NewSchema(1, "Monoradar Target Reports (plots)", "1.2",
	asterix.Define(1, "I010", "Data Source Identifier", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(2, "I020", "Target Report Descriptor", descriptor, describeDescriptor),
	asterix.Define(3, "I040", "Measured Position in Polar Coordinates", polar, describePolar),
	asterix.Define(4, "I070", "Mode-3/A Code in Octal Representation", asterix.Mode3AFormat, asterix.DescribeMode3A),
	asterix.Define(5, "I090", "Mode-C Code in Binary Representation", asterix.FlightLevelFormat, asterix.DescribeFlightLevel),
	asterix.Define(6, "I130", "Radar Plot Characteristics", characteristics, nil),
	asterix.Define(7, "I141", "Truncated Time of Day", truncatedTime, nil),
	asterix.Define(8, "I050", "Mode-2 Code in Octal Representation", asterix.Mode3AFormat, nil),
	asterix.Define(9, "I120", "Measured Radial Doppler Speed", doppler, nil),
	asterix.Define(10, "I131", "Received Power", power, nil),
	asterix.Define(11, "I080", "Mode-3/A Code Confidence Indicator", asterix.CodeConfidenceFormat, nil),
	asterix.Define(12, "I100", "Mode-C Code and Code Confidence Indicator", asterix.ModeCFormat, nil),
	asterix.Define(13, "I060", "Mode-2 Code Confidence Indicator", asterix.CodeConfidenceFormat, nil),
	asterix.Define(14, "I030", "Warning/Error Conditions", warnings, nil),
	asterix.Define(15, "I150", "Presence of X-Pulse", xPulse, nil),
	asterix.Define(20, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT001 plot UAP
func Schema() *asterix.Schema { return schema }

var detections = [...]string{"no detection", "PSR", "SSR", "SSR+PSR"}

func describeDescriptor(v format.Value) string {
	typ, _ := v.Field("TYP")
	det, _ := v.Field("SSRPSR")
	kind := "plot"
	if typ == 1 {
		kind = "track"
	}
	return fmt.Sprintf("%s, %s", kind, detections[int(det)&3])
}

func describePolar(v format.Value) string {
	rho, _ := v.Field("RHO")
	theta, _ := v.Field("THETA")
	return fmt.Sprintf("%.3f NM, %.3f deg", rho, theta)
}
