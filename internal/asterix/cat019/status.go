package cat019

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// Message types carried in I000
const (
	MessageStartOfUpdate = 1
	MessagePeriodic      = 2
	MessageEvent         = 3
)

// Sensor is the state of one remote receiver
type Sensor struct {
	ID       uint8
	Good     bool // receiver 1090 MHz working
	Online   bool
	Transmit bool // 1030 MHz transmitter working
}

// Reference is the MLT system reference point
type Reference struct {
	LatDeg  float64
	LonDeg  float64
	HeightM float64
}

// Status is one system status message
type Status struct {
	SAC       uint8
	SIC       uint8
	Type      uint8
	Time      time.Time
	Degraded  bool
	NoGo      bool
	Sensors   []Sensor
	Reference *Reference
}

// DataItems returns the items describing the status message.
func (st Status) DataItems() []asterix.DataItem {
	typ := st.Type
	if typ == 0 {
		typ = MessagePeriodic
	}

	var nogo int64
	switch {
	case st.NoGo:
		nogo = 2
	case st.Degraded:
		nogo = 1
	}

	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(st.SAC, st.SIC)),
		asterix.Data("I000", format.Int(int64(typ))),
		asterix.Data("I550", format.Group(format.F("NOGO", format.Int(nogo)))),
	}
	if !st.Time.IsZero() {
		items = append(items, asterix.Data("I140", asterix.TimeOfDay(st.Time)))
	}
	if len(st.Sensors) > 0 {
		sensors := make([]format.Value, 0, len(st.Sensors))
		for _, sn := range st.Sensors {
			sensors = append(sensors, format.Group(
				format.F("RSI", format.Int(int64(sn.ID))),
				format.F("RS1090", flag(sn.Good)),
				format.F("TX1030", flag(sn.Transmit)),
				format.F("RSO", flag(!sn.Online)),
			))
		}
		items = append(items, asterix.Data("I552", format.List(sensors...)))
	}
	if st.Reference != nil {
		items = append(items,
			asterix.Data("I600", format.Group(
				format.F("LAT", format.Float(st.Reference.LatDeg)),
				format.F("LON", format.Float(st.Reference.LonDeg)),
			)),
			asterix.Data("I610", format.Float(st.Reference.HeightM)),
		)
	}
	return items
}

// EncodeStatus encodes one status message as a CAT019 record.
func EncodeStatus(st Status) ([]byte, error) {
	return schema.EncodeRecord(st.DataItems()...)
}

// Sensors returns the remote sensor states of a decoded record.
func Sensors(rec asterix.Record) []Sensor {
	v, ok := rec.Get("I552")
	if !ok {
		return nil
	}
	out := make([]Sensor, 0, len(v.Items))
	for _, item := range v.Items {
		id, _ := item.Field("RSI")
		good, _ := item.Field("RS1090")
		tx, _ := item.Field("TX1030")
		off, _ := item.Field("RSO")
		out = append(out, Sensor{ID: uint8(id), Good: good == 1, Transmit: tx == 1, Online: off == 0})
	}
	return out
}

func flag(b bool) format.Value {
	if b {
		return format.Int(1)
	}
	return format.Int(0)
}
