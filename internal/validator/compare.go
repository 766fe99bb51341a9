// Package validator checks decoded records against the domain values they were
// encoded from and accumulates error statistics.
package validator

import "math"

// Mode selects how CompareValues applies a tolerance.
type Mode int

// Comparison modes
const (
	Absolute Mode = iota
	Relative      // tolerance is a fraction of the original value
)

// CompareValues reports whether decoded is within tolerance of original, and the
// absolute difference. Relative mode falls back to absolute when original is zero.
func CompareValues(original, decoded, tolerance float64, mode Mode) (bool, float64) {
	diff := math.Abs(decoded - original)
	if mode == Relative && original != 0 {
		return diff/math.Abs(original) <= tolerance, diff
	}
	return diff <= tolerance, diff
}

// CompareAngles compares two angles in degrees along the shorter arc.
func CompareAngles(original, decoded, toleranceDeg float64) (bool, float64) {
	diff := math.Abs(normalize(decoded) - normalize(original))
	if diff > 180 {
		diff = 360 - diff
	}
	return diff <= toleranceDeg, diff
}

func normalize(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}
