package mathutil

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// NormalizeAngle wraps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	// math.Mod of a tiny negative value can round up to exactly Tau
	if a >= Tau {
		a = 0
	}
	return a
}

// Frac returns the fractional part of v in [0, 1), also for negative v.
func Frac(v float64) float64 {
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

// FloorInt converts a coordinate to the index of the cell containing it.
func FloorInt(v float64) int {
	return int(math.Floor(v))
}
