package cat034

import (
	"time"

	"goasterix/internal/asterix"
	"goasterix/internal/format"
)

// Message types carried in I000
const (
	MessageNorthMarker      = 1
	MessageSectorCrossing   = 2
	MessageGeoFiltering     = 3
	MessageJammingStrobe    = 4
	MessageSolarStorm       = 5
	MessageSSRJammingStrobe = 6
	MessageModeSJamming     = 7
)

// Counter is one message count value of I070
type Counter struct {
	Type  uint8
	Count uint16
}

// Site is the 3D position of the radar
type Site struct {
	LatDeg  float64
	LonDeg  float64
	HeightM float64
}

// Service is one monoradar service message
type Service struct {
	SAC             uint8
	SIC             uint8
	Type            uint8
	Time            time.Time
	SectorDeg       *float64 // sector crossing messages
	RotationPeriodS *float64
	Counters        []Counter
	Site            *Site
}

// DataItems returns the items describing the service message.
func (sv Service) DataItems() []asterix.DataItem {
	typ := sv.Type
	if typ == 0 {
		typ = MessageNorthMarker
	}

	items := []asterix.DataItem{
		asterix.Data("I010", asterix.DataSourceID(sv.SAC, sv.SIC)),
		asterix.Data("I000", format.Int(int64(typ))),
	}
	if !sv.Time.IsZero() {
		items = append(items, asterix.Data("I030", asterix.TimeOfDay(sv.Time)))
	}
	if sv.SectorDeg != nil {
		items = append(items, asterix.Data("I020", format.Float(*sv.SectorDeg)))
	}
	if sv.RotationPeriodS != nil {
		items = append(items, asterix.Data("I041", format.Float(*sv.RotationPeriodS)))
	}
	if len(sv.Counters) > 0 {
		counts := make([]format.Value, 0, len(sv.Counters))
		for _, c := range sv.Counters {
			counts = append(counts, format.Group(
				format.F("TYP", format.Int(int64(c.Type))),
				format.F("COUNTER", format.Int(int64(c.Count))),
			))
		}
		items = append(items, asterix.Data("I070", format.List(counts...)))
	}
	if sv.Site != nil {
		items = append(items, asterix.Data("I120", format.Group(
			format.F("HGT", format.Float(sv.Site.HeightM)),
			format.F("LAT", format.Float(sv.Site.LatDeg)),
			format.F("LON", format.Float(sv.Site.LonDeg)),
		)))
	}
	return items
}

// EncodeService encodes one service message as a CAT034 record.
func EncodeService(sv Service) ([]byte, error) {
	return schema.EncodeRecord(sv.DataItems()...)
}

// NorthMarker returns the service message sent once per antenna revolution.
func NorthMarker(sac, sic uint8, t time.Time, periodS float64) Service {
	return Service{SAC: sac, SIC: sic, Type: MessageNorthMarker, Time: t, RotationPeriodS: &periodS}
}
