// Package cat048 implements ASTERIX Category 048, monoradar target reports.
package cat048

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
	targetReportDescriptor = format.Variable(
		[]format.Subfield{u("TYP", 3), u("SIM", 1), u("RDP", 1), u("SPI", 1), u("RAB", 1)},
		[]format.Subfield{u("TST", 1), u("ERR", 1), u("XPP", 1), u("ME", 1), u("MI", 1), u("FOE", 2)},
		[]format.Subfield{u("ADSB_EP", 1), u("ADSB_VAL", 1), u("SCN_EP", 1), u("SCN_VAL", 1), u("PAI_EP", 1), u("PAI_VAL", 1), pad(1)},
	)

	polarPosition = format.Fixed(
		u("RHO", 16).Scaled(asterix.LSBRho256, "NM"),
		u("THETA", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
	)

	plotCharacteristics = format.Compound(
		format.Sub("SRL", format.Scalar(u("SRL", 8).Scaled(360.0/(1<<13), "deg"))),
		format.Sub("SRR", format.Scalar(u("SRR", 8))),
		format.Sub("SAM", format.Scalar(s("SAM", 8).Scaled(1, "dBm"))),
		format.Sub("PRL", format.Scalar(u("PRL", 8).Scaled(360.0/(1<<13), "deg"))),
		format.Sub("PAM", format.Scalar(s("PAM", 8).Scaled(1, "dBm"))),
		format.Sub("RPD", format.Scalar(s("RPD", 8).Scaled(asterix.LSBRho256, "NM"))),
		format.Sub("APD", format.Scalar(s("APD", 8).Scaled(360.0/(1<<14), "deg"))),
	)

	cartesianPosition = format.Fixed(
		s("X", 16).Scaled(asterix.LSBRho128, "NM"),
		s("Y", 16).Scaled(asterix.LSBRho128, "NM"),
	)

	polarVelocity = format.Fixed(
		u("GSP", 16).Scaled(asterix.LSBSpeed14, "NM/s"),
		u("HDG", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
	)

	trackStatus = format.Variable(
		[]format.Subfield{u("CNF", 1), u("RAD", 2), u("DOU", 1), u("MAH", 1), u("CDM", 2)},
		[]format.Subfield{u("TRE", 1), u("GHO", 1), u("SUP", 1), u("TCC", 1), pad(3)},
	)

	trackQuality = format.Fixed(
		u("SIGX", 8).Scaled(asterix.LSBRho128, "NM"),
		u("SIGY", 8).Scaled(asterix.LSBRho128, "NM"),
		u("SIGV", 8).Scaled(asterix.LSBSpeed14, "NM/s"),
		u("SIGH", 8).Scaled(360.0/(1<<12), "deg"),
	)

	warningCodes = format.Repeating(u("CODE", 7))

	height3D = format.Fixed(pad(2), s("HEIGHT", 14).Scaled(25, "ft"))

	radialDoppler = format.Compound(
		format.Sub("CAL", format.Fixed(u("D", 1), pad(5), s("CAL", 10).Scaled(1, "m/s"))),
		format.Sub("RDS", format.Repetitive(format.Fixed(
			s("DOP", 16).Scaled(1, "m/s"),
			u("AMB", 16).Scaled(1, "m/s"),
			u("FRQ", 16).Scaled(1, "MHz"),
		))),
	)

	communications = format.Fixed(
		u("COM", 3), u("STAT", 3), u("SI", 1), pad(1),
		u("MSSC", 1), u("ARC", 1), u("AIC", 1), u("B1A", 1), u("B1B", 4),
	)

	mode1Code = format.Fixed(u("V", 1), u("G", 1), u("L", 1), u("CODE", 5))

	mode1Confidence = format.Fixed(pad(3), u("QUALITY", 5))
)

var schema = asterix.NewSchema(48, "Monoradar Target Reports", "1.31",
	asterix.Define(1, "I010", "Data Source Identifier", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(2, "I140", "Time of Day", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(3, "I020", "Target Report Descriptor", targetReportDescriptor, describeDescriptor),
	asterix.Define(4, "I040", "Measured Position in Polar Co-ordinates", polarPosition, describePolar),
	asterix.Define(5, "I070", "Mode-3/A Code in Octal Representation", asterix.Mode3AFormat, asterix.DescribeMode3A),
	asterix.Define(6, "I090", "Flight Level in Binary Representation", asterix.FlightLevelFormat, asterix.DescribeFlightLevel),
	asterix.Define(7, "I130", "Radar Plot Characteristics", plotCharacteristics, nil),
	asterix.Define(8, "I220", "Aircraft Address", asterix.AddressFormat, asterix.DescribeAddress),
	asterix.Define(9, "I240", "Aircraft Identification", asterix.IdentificationFormat, asterix.DescribeIdentification),
	asterix.Define(10, "I250", "BDS Register Data", asterix.ModeSFormat, nil),
	asterix.Define(11, "I161", "Track Number", asterix.TrackNumberFormat, asterix.DescribeTrackNumber),
	asterix.Define(12, "I042", "Calculated Position in Cartesian Co-ordinates", cartesianPosition, nil),
	asterix.Define(13, "I200", "Calculated Track Velocity in Polar Co-ordinates", polarVelocity, describeVelocity),
	asterix.Define(14, "I170", "Track Status", trackStatus, nil),
	asterix.Define(15, "I210", "Track Quality", trackQuality, nil),
	asterix.Define(16, "I030", "Warning/Error Conditions", warningCodes, nil),
	asterix.Define(17, "I080", "Mode-3/A Code Confidence Indicator", asterix.CodeConfidenceFormat, nil),
	asterix.Define(18, "I100", "Mode-C Code and Confidence Indicator", asterix.ModeCFormat, nil),
	asterix.Define(19, "I110", "Height Measured by a 3D Radar", height3D, nil),
	asterix.Define(20, "I120", "Radial Doppler Speed", radialDoppler, nil),
	asterix.Define(21, "I230", "Communications/ACAS Capability and Flight Status", communications, nil),
	asterix.Define(22, "I260", "ACAS Resolution Advisory Report", asterix.ACASFormat, nil),
	asterix.Define(23, "I055", "Mode-1 Code in Octal Representation", mode1Code, nil),
	asterix.Define(24, "I050", "Mode-2 Code in Octal Representation", asterix.Mode3AFormat, nil),
	asterix.Define(25, "I065", "Mode-1 Code Confidence Indicator", mode1Confidence, nil),
	asterix.Define(26, "I060", "Mode-2 Code Confidence Indicator", asterix.CodeConfidenceFormat, nil),
	asterix.Define(27, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
	asterix.Define(28, "RE", "Reserved Expansion Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT048 UAP
func Schema() *asterix.Schema { return schema }

var reportTypes = []string{
	"No detection",
	"Single PSR detection",
	"Single SSR detection",
	"SSR + PSR detection",
	"Single ModeS All-Call",
	"Single ModeS Roll-Call",
	"ModeS All-Call + PSR",
	"ModeS Roll-Call + PSR",
}

func describeDescriptor(v format.Value) string {
	typ, _ := v.Field("TYP")
	desc := reportTypes[int(typ)&0x07]
	if sim, _ := v.Field("SIM"); sim != 0 {
		desc += ", simulated"
	}
	if spi, _ := v.Field("SPI"); spi != 0 {
		desc += ", SPI"
	}
	return desc
}

func describePolar(v format.Value) string {
	rho, _ := v.Field("RHO")
	theta, _ := v.Field("THETA")
	return fmt.Sprintf("RHO: %.3f NM (%.0f m), THETA: %.3f deg", rho, rho*asterix.MetersPerNM, theta)
}

func describeVelocity(v format.Value) string {
	gsp, _ := v.Field("GSP")
	hdg, _ := v.Field("HDG")
	return fmt.Sprintf("%.1f kt, heading %.2f deg", gsp*3600, hdg)
}
