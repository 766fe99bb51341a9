package sim

import (
	"fmt"
	"math"

	"goasterix/internal/asterix"
	"goasterix/internal/asterix/cat021"
	"goasterix/internal/asterix/cat048"
	"goasterix/internal/asterix/cat062"
)

const baseAddress = 0x3C0000

// Plots048 converts detections to CAT048 plots.
func (r *Radar) Plots048(plots []Plot) []cat048.Plot {
	out := make([]cat048.Plot, 0, len(plots))
	for _, p := range plots {
		out = append(out, cat048.Plot{
			SAC:        r.cfg.SAC,
			SIC:        r.cfg.SIC,
			Time:       p.Time,
			RangeM:     p.RangeM,
			AzimuthDeg: p.AzimuthDeg,
			Type:       cat048.TypePSR,
		})
	}
	return out
}

// Tracks converts aircraft detections to CAT062 system tracks. Random plots
// without a target are skipped.
func (r *Radar) Tracks(plots []Plot) []cat062.Track {
	var out []cat062.Track
	for _, p := range plots {
		if p.Target < 0 {
			continue
		}
		lat, lon := r.Position(p)
		alt := p.AltitudeFt
		out = append(out, cat062.Track{
			SAC:         r.cfg.SAC,
			SIC:         r.cfg.SIC,
			Time:        p.Time,
			LatDeg:      lat,
			LonDeg:      lon,
			TrackNumber: uint16(p.Target + 1),
			Velocity:    &cat062.Velocity{VX: p.VX, VY: p.VY},
			AltitudeFt:  &alt,
			Callsign:    Callsign(p.Target),
		})
	}
	return out
}

// Reports converts aircraft detections to CAT021 ADS-B reports.
func (r *Radar) Reports(plots []Plot) []cat021.Report {
	var out []cat021.Report
	for _, p := range plots {
		if p.Target < 0 {
			continue
		}
		lat, lon := r.Position(p)
		height := p.AltitudeFt
		out = append(out, cat021.Report{
			SAC:         r.cfg.SAC,
			SIC:         r.cfg.SIC,
			Time:        p.Time,
			LatDeg:      lat,
			LonDeg:      lon,
			Address:     Address(p.Target),
			Callsign:    Callsign(p.Target),
			GeoHeightFt: &height,
			Ground: &cat021.GroundVector{
				SpeedKt:  math.Hypot(p.VX, p.VY) * 3600 / asterix.MetersPerNM,
				TrackDeg: math.Mod(degrees(math.Atan2(p.VX, p.VY))+360, 360),
			},
		})
	}
	return out
}

// Address returns the 24-bit aircraft address of a simulated target
func Address(target int) uint32 {
	return uint32(baseAddress + target)
}

// Callsign returns the identification of a simulated target
func Callsign(target int) string {
	return fmt.Sprintf("SIM%04d", target+1)
}
