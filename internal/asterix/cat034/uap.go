// Package cat034 implements ASTERIX Category 034, monoradar service messages.
package cat034

import (
	"fmt"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

var (
	u     = format.U
	s     = format.S
	pad   = format.Pad
	sub   = format.Sub
	spare = format.SpareSub
)

// Item layouts
var (
	messageType = format.Scalar(u("TYPE", 8))

	sector = format.Scalar(u("SECTOR", 8).Scaled(360.0/(1<<8), "deg").Wrapping())

	rotationPeriod = format.Scalar(u("PERIOD", 16).Scaled(asterix.LSBTimeOfDay, "s"))

	configuration = format.Compound(
		sub("COM", format.Fixed(
			u("NOGO", 1), u("RDPC", 1), u("RDPR", 1), u("OVL_RDP", 1),
			u("OVL_XMT", 1), u("MSC", 1), u("TSV", 1), pad(1),
		)),
		spare(),
		spare(),
		sub("PSR", format.Fixed(u("ANT", 1), u("CHAB", 2), u("OVL", 1), u("MSC", 1), pad(3))),
		sub("SSR", format.Fixed(u("ANT", 1), u("CHAB", 2), u("OVL", 1), u("MSC", 1), pad(3))),
		sub("MDS", format.Fixed(
			u("ANT", 1), u("CHAB", 2), u("OVL_SUR", 1), u("MSC", 1), u("SCF", 1),
			u("DLF", 1), u("OVL_SCF", 1), u("OVL_DLF", 1), pad(7),
		)),
	)

	processingMode = format.Compound(
		sub("COM", format.Fixed(pad(1), u("RED_RDP", 3), u("RED_XMT", 3), pad(1))),
		spare(),
		spare(),
		sub("PSR", format.Fixed(u("POL", 1), u("RED_RAD", 3), u("STC", 2), pad(2))),
		sub("SSR", format.Fixed(u("RED_RAD", 3), pad(5))),
		sub("MDS", format.Fixed(u("RED_RAD", 3), u("CLU", 1), pad(4))),
	)

	counters = format.Repetitive(format.Fixed(u("TYP", 5), u("COUNTER", 11)))

	polarWindow = format.Fixed(
		u("RHO_START", 16).Scaled(asterix.LSBRho256, "NM"),
		u("RHO_END", 16).Scaled(asterix.LSBRho256, "NM"),
		u("THETA_START", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
		u("THETA_END", 16).Scaled(asterix.LSBAzimuth16, "deg").Wrapping(),
	)

	dataFilter = format.Scalar(u("TYP", 8))

	sitePosition = format.Fixed(
		s("HGT", 16).Scaled(1, "m"),
		s("LAT", 24).Scaled(asterix.LSBWGS23, "deg"),
		s("LON", 24).Scaled(asterix.LSBWGS23, "deg"),
	)

	collimation = format.Fixed(
		s("RANGE", 8).Scaled(asterix.LSBRho128, "NM"),
		s("AZIMUTH", 8).Scaled(360.0/(1<<14), "deg"),
	)
)

var schema = asterix.NewSchema(34, "Transmission of Monoradar Service Messages", "1.29",
	asterix.Define(1, "I010", "Data Source Identifier", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(2, "I000", "Message Type", messageType, describeMessageType),
	asterix.Define(3, "I030", "Time-of-Day", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(4, "I020", "Sector Number", sector, nil),
	asterix.Define(5, "I041", "Antenna Rotation Period", rotationPeriod, nil),
	asterix.Define(6, "I050", "System Configuration and Status", configuration, nil),
	asterix.Define(7, "I060", "System Processing Mode", processingMode, nil),
	asterix.Define(8, "I070", "Message Count Values", counters, nil),
	asterix.Define(9, "I100", "Generic Polar Window", polarWindow, nil),
	asterix.Define(10, "I110", "Data Filter", dataFilter, nil),
	asterix.Define(11, "I120", "3D-Position of Data Source", sitePosition, nil),
	asterix.Define(12, "I090", "Collimation Error", collimation, nil),
	asterix.Define(13, "RE", "Reserved Expansion Field", asterix.ReservedFormat, nil),
	asterix.Define(14, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT034 UAP
func Schema() *asterix.Schema { return schema }

var messageTypes = map[int64]string{
	MessageNorthMarker:      "North Marker",
	MessageSectorCrossing:   "Sector crossing",
	MessageGeoFiltering:     "Geographical filtering",
	MessageJammingStrobe:    "Jamming Strobe",
	MessageSolarStorm:       "Solar Storm",
	MessageSSRJammingStrobe: "SSR Jamming Strobe",
	MessageModeSJamming:     "Mode S Jamming Strobe",
}

func describeMessageType(v format.Value) string {
	if name, ok := messageTypes[v.Int]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", v.Int)
}
