// Package cat062 implements ASTERIX Category 062, SDPS system track data.
package cat062

import (
	"fmt"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

var (
	u     = format.U
	s     = format.S
	pad   = format.Pad
	chars = format.Chars
	sub   = format.Sub
)

const (
	lsbAge       = 0.25 // s
	lsbCartesian = 0.5  // m
)

// Item layouts
var (
	serviceID = format.Scalar(u("SERVICE", 8))

	wgs84Position = format.Fixed(
		s("LAT", 32).Scaled(asterix.LSBWGS25, "deg"),
		s("LON", 32).Scaled(asterix.LSBWGS25, "deg"),
	)

	cartesianPosition = format.Fixed(
		s("X", 24).Scaled(lsbCartesian, "m"),
		s("Y", 24).Scaled(lsbCartesian, "m"),
	)

	cartesianVelocity = format.Fixed(
		s("VX", 16).Scaled(0.25, "m/s"),
		s("VY", 16).Scaled(0.25, "m/s"),
	)

	cartesianAcceleration = format.Fixed(
		s("AX", 8).Scaled(0.25, "m/s2"),
		s("AY", 8).Scaled(0.25, "m/s2"),
	)

	trackMode3A = format.Fixed(pad(2), u("CH", 1), pad(1), u("CODE", 12).Wrapping())

	targetIdentification = format.Fixed(u("STI", 2), pad(6), format.Chars6("CALLSIGN", 8))

	aircraftDerivedData = format.Compound(
		sub("ADR", asterix.AddressFormat),
		sub("ID", asterix.IdentificationFormat),
		sub("MHG", format.Scalar(u("MHG", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping())),
		sub("IAS", format.Fixed(u("IM", 1), u("IAS", 15))),
		sub("TAS", format.Scalar(u("TAS", 16).Scaled(1, "kt"))),
		sub("SAL", format.Fixed(u("SAS", 1), u("SRC", 2), s("ALT", 13).Scaled(25, "ft"))),
		sub("FSS", format.Fixed(u("MV", 1), u("AH", 1), u("AM", 1), s("ALT", 13).Scaled(25, "ft"))),
		sub("TIS", format.Variable([]format.Subfield{u("NAV", 1), u("NVB", 1), pad(5)})),
		sub("TID", format.Repetitive(format.Fixed(
			u("TCA", 1), u("NC", 1), u("TCP", 6),
			s("ALT", 16).Scaled(10, "ft"),
			s("LAT", 24).Scaled(asterix.LSBWGS23, "deg"),
			s("LON", 24).Scaled(asterix.LSBWGS23, "deg"),
			u("PT", 4), u("TD", 2), u("TRA", 1), u("TOA", 1),
			u("TOV", 24).Scaled(1, "s"),
			u("TTR", 16).Scaled(0.01, "NM"),
		))),
		sub("COM", format.Fixed(
			u("COM", 3), u("STAT", 3), pad(2),
			u("SSC", 1), u("ARC", 1), u("AIC", 1), u("B1A", 1), u("B1B", 4),
		)),
		sub("SAB", format.Fixed(u("AC", 2), u("MN", 2), u("DC", 2), u("GBS", 1), pad(6), u("STAT", 3))),
		sub("ACS", asterix.ACASFormat),
		sub("BVR", format.Scalar(s("BVR", 16).Scaled(asterix.LSBRate, "ft/min"))),
		sub("GVR", format.Scalar(s("GVR", 16).Scaled(asterix.LSBRate, "ft/min"))),
		sub("RAN", format.Scalar(s("RAN", 16).Scaled(0.01, "deg"))),
		sub("TAR", format.Fixed(u("TI", 2), pad(7), s("RATE", 7).Scaled(0.25, "deg/s"))),
		sub("TAN", format.Scalar(u("TAN", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping())),
		sub("GSP", format.Scalar(s("GSP", 16).Scaled(asterix.LSBSpeed14, "NM/s"))),
		sub("VUN", format.Scalar(u("VUN", 8))),
		sub("MET", format.Fixed(
			u("WSV", 1), u("WDV", 1), u("TMPV", 1), u("TRBV", 1), pad(4),
			u("WS", 16).Scaled(1, "kt"),
			u("WD", 16).Scaled(1, "deg"),
			s("TMP", 16).Scaled(0.25, "C"),
			u("TRB", 8),
		)),
		sub("EMC", format.Scalar(u("EMC", 8))),
		sub("POS", format.Fixed(
			s("LAT", 24).Scaled(asterix.LSBWGS23, "deg"),
			s("LON", 24).Scaled(asterix.LSBWGS23, "deg"),
		)),
		sub("GAL", format.Scalar(s("GAL", 16).Scaled(asterix.LSBHeight, "ft"))),
		sub("PUN", format.Fixed(pad(4), u("PUN", 4))),
		sub("MB", asterix.ModeSFormat),
		sub("IAR", format.Scalar(u("IAR", 16).Scaled(1, "kt"))),
		sub("MAC", format.Scalar(u("MAC", 16).Scaled(0.008, "Mach"))),
		sub("BPS", format.Fixed(pad(4), u("BPS", 12).Scaled(0.1, "mb"))),
	)

	trackNumber = format.Scalar(u("TRN", 16).Wrapping())

	trackStatus = format.Variable(
		[]format.Subfield{u("MON", 1), u("SPI", 1), u("MRH", 1), u("SRC", 3), u("CNF", 1)},
		[]format.Subfield{u("SIM", 1), u("TSE", 1), u("TSB", 1), u("FPC", 1), u("AFF", 1), u("STP", 1), u("KOS", 1)},
		[]format.Subfield{u("AMA", 1), u("MD4", 2), u("ME", 1), u("MI", 1), u("MD5", 2)},
		[]format.Subfield{u("CST", 1), u("PSR", 1), u("SSR", 1), u("MDS", 1), u("ADS", 1), u("SUC", 1), u("AAC", 1)},
		[]format.Subfield{u("SDS", 2), u("EMS", 3), u("PFT", 1), u("FPLT", 1)},
		[]format.Subfield{u("DUPT", 1), u("DUPF", 1), u("DUPM", 1), u("SFC", 1), u("IDD", 1), u("IEC", 1), pad(1)},
	)

	updateAges = format.Compound(
		sub("TRK", age("TRK")),
		sub("PSR", age("PSR")),
		sub("SSR", age("SSR")),
		sub("MDS", age("MDS")),
		sub("ADS", format.Scalar(u("ADS", 16).Scaled(lsbAge, "s"))),
		sub("ES", age("ES")),
		sub("VDL", age("VDL")),
		sub("UAT", age("UAT")),
		sub("LOP", age("LOP")),
		sub("MLT", age("MLT")),
	)

	modeOfMovement = format.Fixed(u("TRANS", 2), u("LONG", 2), u("VERT", 2), u("ADF", 1), pad(1))

	dataAges = ages("MFL", "MD1", "MD2", "MDA", "MD4", "MD5", "MHG",
		"IAS", "TAS", "SAL", "FSS", "TID", "COM", "SAB",
		"ACS", "BVR", "GVR", "RAN", "TAR", "TAN", "GSP",
		"VUN", "MET", "EMC", "POS", "GAL", "PUN", "MB",
		"IAR", "MAC", "BPS")

	measuredFlightLevel = format.Scalar(s("FL", 16).Scaled(asterix.LSBFL, "FL"))

	geometricAltitude = format.Scalar(s("ALT", 16).Scaled(asterix.LSBHeight, "ft"))

	barometricAltitude = format.Fixed(u("QNH", 1), s("ALT", 15).Scaled(asterix.LSBFL, "FL"))

	rateOfClimb = format.Scalar(s("ROCD", 16).Scaled(asterix.LSBRate, "ft/min"))

	flightPlan = format.Compound(
		sub("TAG", asterix.DataSourceFormat),
		sub("CSN", format.Scalar(chars("CSN", 7))),
		sub("IFI", format.Fixed(u("TYP", 2), pad(3), u("NBR", 27))),
		sub("FCT", format.Fixed(u("GAT_OAT", 2), u("FR1_FR2", 2), u("RVSM", 2), u("HPR", 1), pad(1))),
		sub("TAC", format.Scalar(chars("TAC", 4))),
		sub("WTC", format.Scalar(chars("WTC", 1))),
		sub("DEP", format.Scalar(chars("DEP", 4))),
		sub("DST", format.Scalar(chars("DST", 4))),
		sub("RDS", format.Fixed(chars("NU1", 1), chars("NU2", 1), chars("LTR", 1))),
		sub("CFL", format.Scalar(u("CFL", 16).Scaled(asterix.LSBFL, "FL"))),
		sub("CTL", format.Fixed(u("CENTRE", 8), u("POSITION", 8))),
		sub("TOD", format.Repetitive(format.Fixed(
			u("TYP", 5), u("DAY", 2), pad(4), u("HOR", 5), pad(2), u("MIN", 6), u("AVS", 1), pad(1), u("SEC", 6),
		))),
		sub("AST", format.Scalar(chars("AST", 6))),
		sub("STS", format.Fixed(u("EMP", 2), u("AVL", 2), pad(4))),
		sub("STD", format.Scalar(chars("STD", 7))),
		sub("STA", format.Scalar(chars("STA", 7))),
		sub("PEM", format.Fixed(pad(3), u("VA", 1), u("CODE", 12))),
		sub("PEC", format.Scalar(chars("PEC", 7))),
	)

	targetSize = format.Variable(
		[]format.Subfield{u("LENGTH", 7).Scaled(1, "m")},
		[]format.Subfield{u("ORIENTATION", 7).Scaled(360.0/128, "deg").Wrapping()},
		[]format.Subfield{u("WIDTH", 7).Scaled(1, "m")},
	)

	vehicleFleet = format.Scalar(u("VFI", 8))

	trackMode2 = format.Fixed(pad(4), u("CODE", 12))

	composedTrack = format.Repeating(u("SUI", 8), u("STN", 15))

	accuracies = format.Compound(
		sub("APC", format.Fixed(u("X", 16).Scaled(lsbCartesian, "m"), u("Y", 16).Scaled(lsbCartesian, "m"))),
		sub("COV", format.Scalar(s("COV", 16).Scaled(lsbCartesian, "m"))),
		sub("APW", format.Fixed(u("LAT", 16).Scaled(asterix.LSBWGS25, "deg"), u("LON", 16).Scaled(asterix.LSBWGS25, "deg"))),
		sub("AGA", format.Scalar(u("AGA", 8).Scaled(asterix.LSBHeight, "ft"))),
		sub("ABA", format.Scalar(u("ABA", 8).Scaled(asterix.LSBFL, "FL"))),
		sub("ATV", format.Fixed(u("X", 8).Scaled(0.25, "m/s"), u("Y", 8).Scaled(0.25, "m/s"))),
		sub("AA", format.Fixed(u("X", 8).Scaled(0.25, "m/s2"), u("Y", 8).Scaled(0.25, "m/s2"))),
		sub("ARC", format.Scalar(u("ARC", 8).Scaled(asterix.LSBRate, "ft/min"))),
	)

	measuredInformation = format.Compound(
		sub("SID", asterix.DataSourceFormat),
		sub("POS", format.Fixed(
			u("RHO", 16).Scaled(asterix.LSBRho256, "NM"),
			u("THETA", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
		)),
		sub("HEI", format.Scalar(s("HEI", 16).Scaled(25, "ft"))),
		sub("MDC", format.Fixed(u("V", 1), u("G", 1), s("FL", 14).Scaled(asterix.LSBFL, "FL"))),
		sub("MDA", asterix.Mode3AFormat),
		sub("TYP", format.Fixed(u("TYP", 3), u("SIM", 1), u("RAB", 1), u("TST", 1), pad(2))),
	)
)

func age(name string) *format.Format {
	return format.Scalar(u(name, 8).Scaled(lsbAge, "s"))
}

func ages(names ...string) *format.Format {
	subs := make([]format.Subitem, len(names))
	for i, name := range names {
		subs[i] = sub(name, age(name))
	}
	return format.Compound(subs...)
}

var schema = asterix.NewSchema(62, "SDPS Track Messages", "1.18",
	asterix.Define(1, "I010", "Data Source Identifier", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(3, "I015", "Service Identification", serviceID, nil),
	asterix.Define(4, "I070", "Time Of Track Information", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(5, "I105", "Calculated Track Position (WGS-84)", wgs84Position, describePosition),
	asterix.Define(6, "I100", "Calculated Track Position (Cartesian)", cartesianPosition, nil),
	asterix.Define(7, "I185", "Calculated Track Velocity (Cartesian)", cartesianVelocity, describeVelocity),
	asterix.Define(8, "I210", "Calculated Acceleration (Cartesian)", cartesianAcceleration, nil),
	asterix.Define(9, "I060", "Track Mode 3/A Code", trackMode3A, asterix.DescribeMode3A),
	asterix.Define(10, "I245", "Target Identification", targetIdentification, nil),
	asterix.Define(11, "I380", "Aircraft Derived Data", aircraftDerivedData, nil),
	asterix.Define(12, "I040", "Track Number", trackNumber, nil),
	asterix.Define(13, "I080", "Track Status", trackStatus, nil),
	asterix.Define(14, "I290", "System Track Update Ages", updateAges, nil),
	asterix.Define(15, "I200", "Mode of Movement", modeOfMovement, nil),
	asterix.Define(16, "I295", "Track Data Ages", dataAges, nil),
	asterix.Define(17, "I136", "Measured Flight Level", measuredFlightLevel, nil),
	asterix.Define(18, "I130", "Calculated Track Geometric Altitude", geometricAltitude, nil),
	asterix.Define(19, "I135", "Calculated Track Barometric Altitude", barometricAltitude, nil),
	asterix.Define(20, "I220", "Calculated Rate of Climb/Descent", rateOfClimb, nil),
	asterix.Define(21, "I390", "Flight Plan Related Data", flightPlan, nil),
	asterix.Define(22, "I270", "Target Size and Orientation", targetSize, nil),
	asterix.Define(23, "I300", "Vehicle Fleet Identification", vehicleFleet, nil),
	asterix.Define(25, "I120", "Track Mode 2 Code", trackMode2, nil),
	asterix.Define(26, "I510", "Composed Track Number", composedTrack, nil),
	asterix.Define(27, "I500", "Estimated Accuracies", accuracies, nil),
	asterix.Define(28, "I340", "Measured Information", measuredInformation, nil),
	asterix.Define(34, "RE", "Reserved Expansion Field", asterix.ReservedFormat, nil),
	asterix.Define(35, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT062 UAP
func Schema() *asterix.Schema { return schema }

func describePosition(v format.Value) string {
	lat, _ := v.Field("LAT")
	lon, _ := v.Field("LON")
	return fmt.Sprintf("%.6f, %.6f", lat, lon)
}

func describeVelocity(v format.Value) string {
	vx, _ := v.Field("VX")
	vy, _ := v.Field("VY")
	return fmt.Sprintf("VX %.2f m/s, VY %.2f m/s", vx, vy)
}
