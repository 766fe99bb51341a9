// Package cat020 implements ASTERIX Category 020, multilateration target reports.
package cat020

import (
	"fmt"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

var (
	u   = format.U
	s   = format.S
	pad = format.Pad
	sub = format.Sub
)

// Item layouts
var (
	descriptor = format.Variable(
		[]format.Subfield{u("SSR", 1), u("MS", 1), u("HF", 1), u("VDL4", 1), u("UAT", 1), u("DME", 1), u("OT", 1)},
		[]format.Subfield{u("RAB", 1), u("SPI", 1), u("CHN", 1), u("GBS", 1), u("CRT", 1), u("SIM", 1), u("TST", 1)},
	)

	position = format.Fixed(
		s("LAT", 32).Scaled(asterix.LSBWGS25, "deg"),
		s("LON", 32).Scaled(asterix.LSBWGS25, "deg"),
	)

	cartesian = format.Fixed(s("X", 24).Scaled(0.5, "m"), s("Y", 24).Scaled(0.5, "m"))

	trackStatus = format.Variable(
		[]format.Subfield{u("CNF", 1), u("TRE", 1), u("CST", 1), u("CDM", 2), u("MAH", 1), u("STH", 1)},
		[]format.Subfield{u("GHO", 1), pad(6)},
	)

	velocity = format.Fixed(s("VX", 16).Scaled(0.25, "m/s"), s("VY", 16).Scaled(0.25, "m/s"))

	identification = format.Fixed(u("STI", 2), pad(6), format.Chars6("CALLSIGN", 8))

	height = format.Scalar(s("HEIGHT", 16).Scaled(asterix.LSBHeight, "ft"))

	acceleration = format.Fixed(s("AX", 8).Scaled(0.25, "m/s2"), s("AY", 8).Scaled(0.25, "m/s2"))

	fleet = format.Scalar(u("VFI", 8))

	preprogrammed = format.Fixed(u("TRB", 1), u("MSG", 7))

	accuracy = format.Compound(
		sub("DOP", format.Fixed(
			u("DOPX", 16).Scaled(0.25, ""), u("DOPY", 16).Scaled(0.25, ""), u("DOPXY", 16).Scaled(0.25, ""),
		)),
		sub("SDP", format.Fixed(
			u("SDX", 16).Scaled(0.25, "m"), u("SDY", 16).Scaled(0.25, "m"), s("COVXY", 16).Scaled(0.25, "m2"),
		)),
		sub("SDH", format.Scalar(u("SDH", 16).Scaled(0.5, "m"))),
	)

	devices = format.Repetitive(format.Scalar(u("BITS", 8)))

	capability = format.Fixed(
		u("COM", 3), u("STAT", 3), pad(2),
		u("MSSC", 1), u("ARC", 1), u("AIC", 1), u("B1A", 1), u("B1B", 4),
	)

	warnings = format.Repeating(u("CODE", 7))

	mode1 = format.Fixed(u("V", 1), u("G", 1), u("L", 1), u("CODE", 5))
)

var schema = asterix.NewSchema(20, "Multilateration Target Reports", "1.10",
	asterix.Define(1, "I010", "Data Source Identifier", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(2, "I020", "Target Report Descriptor", descriptor, nil),
	asterix.Define(3, "I140", "Time of Day", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(4, "I041", "Position in WGS-84 Coordinates", position, describePosition),
	asterix.Define(5, "I042", "Position in Cartesian Coordinates", cartesian, nil),
	asterix.Define(6, "I161", "Track Number", asterix.TrackNumberFormat, asterix.DescribeTrackNumber),
	asterix.Define(7, "I170", "Track Status", trackStatus, nil),
	asterix.Define(8, "I070", "Mode-3/A Code in Octal Representation", asterix.Mode3AFormat, asterix.DescribeMode3A),
	asterix.Define(9, "I202", "Calculated Track Velocity in Cartesian Coordinates", velocity, nil),
	asterix.Define(10, "I090", "Flight Level in Binary Representation", asterix.FlightLevelFormat, asterix.DescribeFlightLevel),
	asterix.Define(11, "I100", "Mode C Code", asterix.ModeCFormat, nil),
	asterix.Define(12, "I220", "Target Address", asterix.AddressFormat, asterix.DescribeAddress),
	asterix.Define(13, "I245", "Target Identification", identification, nil),
	asterix.Define(14, "I110", "Measured Height", height, nil),
	asterix.Define(15, "I105", "Geometric Height (WGS-84)", height, nil),
	asterix.Define(16, "I210", "Calculated Acceleration", acceleration, nil),
	asterix.Define(17, "I300", "Vehicle Fleet Identification", fleet, nil),
	asterix.Define(18, "I310", "Pre-programmed Message", preprogrammed, nil),
	asterix.Define(19, "I500", "Position Accuracy", accuracy, nil),
	asterix.Define(20, "I400", "Contributing Devices", devices, nil),
	asterix.Define(21, "I250", "Mode S MB Data", asterix.ModeSFormat, nil),
	asterix.Define(22, "I230", "Comms/ACAS Capability and Flight Status", capability, nil),
	asterix.Define(23, "I260", "ACAS Resolution Advisory Report", asterix.ACASFormat, nil),
	asterix.Define(24, "I030", "Warning/Error Conditions", warnings, nil),
	asterix.Define(25, "I055", "Mode-1 Code in Octal Representation", mode1, nil),
	asterix.Define(26, "I050", "Mode-2 Code in Octal Representation", asterix.Mode3AFormat, nil),
	asterix.Define(27, "RE", "Reserved Expansion Field", asterix.ReservedFormat, nil),
	asterix.Define(28, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT020 UAP
func Schema() *asterix.Schema { return schema }

func describePosition(v format.Value) string {
	lat, _ := v.Field("LAT")
	lon, _ := v.Field("LON")
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}
