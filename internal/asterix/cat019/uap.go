// Package cat019 implements ASTERIX Category 019, multilateration system status messages.
package cat019

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
	messageType = format.Scalar(u("TYPE", 8))

	systemStatus = format.Fixed(u("NOGO", 2), u("OVL", 1), u("TSV", 1), u("TTF", 1), pad(3))

	processorStatus = format.Fixed(
		u("TP1A", 1), u("TP1B", 1), u("TP2A", 1), u("TP2B", 1),
		u("TP3A", 1), u("TP3B", 1), u("TP4A", 1), u("TP4B", 1),
	)

	sensorStatus = format.Repetitive(format.Fixed(
		u("RSI", 8), pad(1), u("RS1090", 1), u("TX1030", 1), u("TX1090", 1),
		u("RSS", 1), u("RSO", 1), pad(2),
	))

	transponderStatus = format.Repeating(u("REF1", 2), pad(2), u("REF2", 2), pad(1))

	referencePoint = format.Fixed(
		s("LAT", 32).Scaled(asterix.LSBWGS25, "deg"),
		s("LON", 32).Scaled(asterix.LSBWGS25, "deg"),
	)

	referenceHeight = format.Scalar(s("HEIGHT", 16).Scaled(0.25, "m"))

	undulation = format.Scalar(s("UNDULATION", 8).Scaled(1, "m"))
)

var schema = asterix.NewSchema(19, "Multilateration System Status Messages", "1.3",
	asterix.Define(1, "I010", "Data Source Identifier", asterix.DataSourceFormat, asterix.DescribeDataSource),
	asterix.Define(2, "I000", "Message Type", messageType, describeMessageType),
	asterix.Define(3, "I140", "Time of Day", asterix.TimeOfDayFormat, asterix.DescribeTimeOfDay),
	asterix.Define(4, "I550", "System Status", systemStatus, describeSystemStatus),
	asterix.Define(5, "I551", "Tracking Processor Detailed Status", processorStatus, nil),
	asterix.Define(6, "I552", "Remote Sensor Detailed Status", sensorStatus, nil),
	asterix.Define(7, "I553", "Reference Transponder Detailed Status", transponderStatus, nil),
	asterix.Define(8, "I600", "Position of the MLT System Reference Point", referencePoint, nil),
	asterix.Define(9, "I610", "Height of the MLT System Reference Point", referenceHeight, nil),
	asterix.Define(10, "I620", "WGS-84 Undulation", undulation, nil),
	asterix.Define(13, "RE", "Reserved Expansion Field", asterix.ReservedFormat, nil),
	asterix.Define(14, "SP", "Special Purpose Field", asterix.ReservedFormat, nil),
)

// Schema returns the CAT019 UAP
func Schema() *asterix.Schema { return schema }

func describeMessageType(v format.Value) string {
	switch v.Int {
	case MessageStartOfUpdate:
		return "Start of Update Cycle"
	case MessagePeriodic:
		return "Periodic Status Message"
	case MessageEvent:
		return "Event-triggered Status Message"
	default:
		return fmt.Sprintf("unknown (%d)", v.Int)
	}
}

var operational = [...]string{"operational", "degraded", "NOGO", "undefined"}

func describeSystemStatus(v format.Value) string {
	nogo, _ := v.Field("NOGO")
	return operational[int(nogo)&3]
}
