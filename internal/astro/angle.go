// Package astro provides the angle, epoch and rotation machinery shared by
// every event computation: normalization, obliquity, nutation, precession,
// reference-frame conversion and sidereal time.
package astro

import "math"

const (
	// TwoPi is a full turn in radians.
	TwoPi = 2 * math.Pi

	// DegToRad converts degrees to radians when multiplied.
	DegToRad = math.Pi / 180

	// RadToDeg converts radians to degrees when multiplied.
	RadToDeg = 180 / math.Pi

	// ArcsecToRad converts arcseconds to radians when multiplied.
	ArcsecToRad = DegToRad / 3600
)

// NormalizeDeg reduces an angle in degrees to [0, 360).
func NormalizeDeg(d float64) float64 {
	// Fast path: within one revolution of the range.
	if d >= 0 && d < 360 {
		return d
	}
	if d >= 360 && d < 720 {
		return d - 360
	}
	if d < 0 && d >= -360 {
		d += 360
		if d < 360 {
			return d
		}
	}
	d -= 360 * math.Floor(d/360)
	// Floor rounding can land exactly on the upper bound for inputs that
	// are an exact multiple of a revolution.
	if d >= 360 {
		d -= 360
	}
	if d < 0 {
		d = 0
	}
	return d
}

// NormalizeRad reduces an angle in radians to [0, 2π).
func NormalizeRad(r float64) float64 {
	if r >= 0 && r < TwoPi {
		return r
	}
	if r >= TwoPi && r < 2*TwoPi {
		return r - TwoPi
	}
	if r < 0 && r >= -TwoPi {
		r += TwoPi
		if r < TwoPi {
			return r
		}
	}
	r -= TwoPi * math.Floor(r/TwoPi)
	// An input that is an exact multiple of 2π must map to 0, not 2π.
	if r >= TwoPi {
		r -= TwoPi
	}
	if r < 0 {
		r = 0
	}
	return r
}

// WrapPi reduces an angle in radians to (-π, π].
func WrapPi(r float64) float64 {
	r = NormalizeRad(r)
	if r > math.Pi {
		r -= TwoPi
	}
	return r
}

// Quadrant returns the quadrant (0-3) of an angle in radians.
func Quadrant(r float64) int {
	return int(NormalizeRad(r) / (math.Pi / 2))
}

// clamp1 clamps x to [-1, 1] so it is a safe argument to Asin/Acos.
func clamp1(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
