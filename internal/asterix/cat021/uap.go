// Package cat021 implements ASTERIX Category 021, ADS-B target reports.
package cat021

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
	targetReportDescriptor = format.Variable(
		[]format.Subfield{u("ATP", 3), u("ARC", 2), u("RC", 1), u("RAB", 1)},
		[]format.Subfield{u("DCR", 1), u("GBS", 1), u("SIM", 1), u("TST", 1), u("SAA", 1), u("CL", 2)},
		[]format.Subfield{pad(1), u("LLC", 1), u("IPC", 1), u("NOGO", 1), u("CPR", 1), u("LDPJ", 1), u("RCF", 1)},
	)

	serviceID = format.Scalar(u("SERVICE", 8))

	position = format.Fixed(
		s("LAT", 24).Scaled(asterix.LSBWGS23, "deg"),
		s("LON", 24).Scaled(asterix.LSBWGS23, "deg"),
	)

	highResPosition = format.Fixed(
		s("LAT", 32).Scaled(asterix.LSBWGS30, "deg"),
		s("LON", 32).Scaled(asterix.LSBWGS30, "deg"),
	)

	airSpeed = format.Fixed(u("IM", 1), u("AS", 15))

	trueAirspeed = format.Fixed(u("RE", 1), u("TAS", 15).Scaled(1, "kt"))

	highPrecisionTime = format.Fixed(u("FSI", 2), u("TIME", 30).Scaled(1.0/(1<<30), "s"))

	geometricHeight = format.Scalar(s("HEIGHT", 16).Scaled(asterix.LSBHeight, "ft"))

	qualityIndicators = format.Variable(
		[]format.Subfield{u("NUCR_NACV", 3), u("NUCP_NIC", 4)},
		[]format.Subfield{u("NICBARO", 1), u("SIL", 2), u("NACP", 4)},
		[]format.Subfield{pad(2), u("SILS", 1), u("SDA", 2), u("GVA", 2)},
		[]format.Subfield{u("PIC", 4), pad(3)},
	)

	mopsVersion = format.Fixed(pad(1), u("VNS", 1), u("VN", 3), u("LTT", 3))

	mode3A = format.Fixed(pad(4), u("CODE", 12).Wrapping())

	rollAngle = format.Scalar(s("ROLL", 16).Scaled(0.01, "deg"))

	flightLevel = format.Scalar(s("FL", 16).Scaled(asterix.LSBFL, "FL"))

	magneticHeading = format.Scalar(u("HDG", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping())

	targetStatus = format.Fixed(u("ICF", 1), u("LNAV", 1), u("ME", 1), u("PS", 3), u("SS", 2))

	baroVerticalRate = format.Fixed(u("RE", 1), s("BVR", 15).Scaled(asterix.LSBRate, "ft/min"))

	geoVerticalRate = format.Fixed(u("RE", 1), s("GVR", 15).Scaled(asterix.LSBRate, "ft/min"))

	groundVector = format.Fixed(
		u("RE", 1), u("GS", 15).Scaled(asterix.LSBSpeed14, "NM/s"),
		u("TA", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
	)

	trackAngleRate = format.Fixed(pad(6), s("TAR", 10).Scaled(1.0/32, "deg/s"))

	emitterCategory = format.Scalar(u("ECAT", 8))

	metInformation = format.Compound(
		sub("WS", format.Scalar(u("WS", 16).Scaled(1, "kt"))),
		sub("WD", format.Scalar(u("WD", 16).Scaled(1, "deg"))),
		sub("TMP", format.Scalar(s("TMP", 16).Scaled(0.25, "C"))),
		sub("TRB", format.Scalar(u("TRB", 8))),
	)

	selectedAltitude = format.Fixed(u("SAS", 1), u("SRC", 2), s("ALT", 13).Scaled(25, "ft"))

	finalStateAltitude = format.Fixed(u("MV", 1), u("AH", 1), u("AM", 1), s("ALT", 13).Scaled(25, "ft"))

	serviceManagement = format.Scalar(u("RP", 8).Scaled(0.5, "s"))

	operationalStatus = format.Fixed(
		u("RA", 1), u("TC", 2), u("TS", 1), u("ARV", 1), u("CDTIA", 1), u("NOT_TCAS", 1), u("SA", 1),
	)

	surfaceCapabilities = format.Variable(
		[]format.Subfield{pad(2), u("POA", 1), u("CDTIS", 1), u("B2LOW", 1), u("RAS", 1), u("IDENT", 1)},
		[]format.Subfield{u("LW", 4), pad(3)},
	)

	messageAmplitude = format.Scalar(s("MAM", 8).Scaled(1, "dBm"))

	acasReport = format.Fixed(
		u("TYP", 5), u("STYP", 3), u("ARA", 14), u("RAC", 4),
		u("RAT", 1), u("MTE", 1), u("TTI", 2), u("TID", 26),
	)

	receiverID = format.Scalar(u("RID", 8))
)

var schema = asterix.NewSchema(21, "ADS-B Target Reports", "2.1",
	asterix.Define(1, "I010", "Data Source Identification", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(2, "I040", "Target Report Descriptor", targetReportDescriptor, nil),
	asterix.Define(3, "I161", "Track Number", asterix.TrackNumberFormat, asterix.DescribeTrackNumber),
	asterix.Define(4, "I015", "Service Identification", serviceID, nil),
	asterix.Define(5, "I071", "Time of Applicability for Position", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(6, "I130", "Position in WGS-84 Co-ordinates", position, describePosition),
	asterix.Define(7, "I131", "High-Resolution Position in WGS-84 Co-ordinates", highResPosition, describePosition),
	asterix.Define(8, "I072", "Time of Applicability for Velocity", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(9, "I150", "Air Speed", airSpeed, nil),
	asterix.Define(10, "I151", "True Air Speed", trueAirspeed, nil),
	asterix.Define(11, "I080", "Target Address", asterix.AddressFormat, asterix.DescribeAddress),
	asterix.Define(12, "I073", "Time of Message Reception for Position", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(13, "I074", "Time of Message Reception of Position-High Precision", highPrecisionTime, nil),
	asterix.Define(14, "I075", "Time of Message Reception for Velocity", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(15, "I076", "Time of Message Reception of Velocity-High Precision", highPrecisionTime, nil),
	asterix.Define(16, "I140", "Geometric Height", geometricHeight, nil),
	asterix.Define(17, "I090", "Quality Indicators", qualityIndicators, nil),
	asterix.Define(18, "I210", "MOPS Version", mopsVersion, nil),
	asterix.Define(19, "I070", "Mode 3/A Code", mode3A, asterix.DescribeMode3A),
	asterix.Define(20, "I230", "Roll Angle", rollAngle, nil),
	asterix.Define(21, "I145", "Flight Level", flightLevel, nil),
	asterix.Define(22, "I152", "Magnetic Heading", magneticHeading, nil),
	asterix.Define(23, "I200", "Target Status", targetStatus, nil),
	asterix.Define(24, "I155", "Barometric Vertical Rate", baroVerticalRate, nil),
	asterix.Define(25, "I157", "Geometric Vertical Rate", geoVerticalRate, nil),
	asterix.Define(26, "I160", "Airborne Ground Vector", groundVector, describeGroundVector),
	asterix.Define(27, "I165", "Track Angle Rate", trackAngleRate, nil),
	asterix.Define(28, "I077", "Time of ASTERIX Report Transmission", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(29, "I170", "Target Identification", asterix.IdentificationFormat, asterix.DescribeIdentification),
	asterix.Define(30, "I020", "Emitter Category", emitterCategory, nil),
	asterix.Define(31, "I220", "Met Information", metInformation, nil),
	asterix.Define(32, "I146", "Selected Altitude", selectedAltitude, nil),
	asterix.Define(33, "I148", "Final State Selected Altitude", finalStateAltitude, nil),
	asterix.Define(35, "I016", "Service Management", serviceManagement, nil),
	asterix.Define(36, "I008", "Aircraft Operational Status", operationalStatus, nil),
	asterix.Define(37, "I271", "Surface Capabilities and Characteristics", surfaceCapabilities, nil),
	asterix.Define(38, "I132", "Message Amplitude", messageAmplitude, nil),
	asterix.Define(39, "I250", "Mode S MB Data", asterix.ModeSFormat, nil),
	asterix.Define(40, "I260", "ACAS Resolution Advisory Report", acasReport, nil),
	asterix.Define(41, "I400", "Receiver ID", receiverID, nil),
	asterix.Define(48, "RE", "Reserved Expansion Field", asterix.ReservedFormat, nil),
	asterix.Define(49, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT021 UAP
func Schema() *asterix.Schema { return schema }

func describePosition(v format.Value) string {
	lat, _ := v.Field("LAT")
	lon, _ := v.Field("LON")
	return fmt.Sprintf("%.7f, %.7f", lat, lon)
}

func describeGroundVector(v format.Value) string {
	gs, _ := v.Field("GS")
	ta, _ := v.Field("TA")
	return fmt.Sprintf("%.1f kt, track %.2f deg", gs*3600, ta)
}
