package astro

import "math"

// Nutation1980 evaluates the dominant terms of the IAU 1980 nutation
// series. Accuracy is about 0.5″ in Δψ and 0.1″ in Δε, which is enough
// for event timing; plug in a full series implementation through
// NutationFunc where catalog-grade precision is needed.
//
// T is in Julian centuries TT from J2000. Results are radians.
func Nutation1980(T float64) (dpsi, deps float64) {
	// Longitude of the ascending node of the Moon's mean orbit.
	om := (125.04452 - 1934.136261*T + 0.0020708*T*T) * DegToRad
	// Mean longitudes of the Sun and the Moon.
	ls := (280.4665 + 36000.7698*T) * DegToRad
	lm := (218.3165 + 481267.8813*T) * DegToRad

	dpsi = (-17.20*math.Sin(om) -
		1.32*math.Sin(2*ls) -
		0.23*math.Sin(2*lm) +
		0.21*math.Sin(2*om)) * ArcsecToRad
	deps = (9.20*math.Cos(om) +
		0.57*math.Cos(2*ls) +
		0.10*math.Cos(2*lm) -
		0.09*math.Cos(2*om)) * ArcsecToRad
	return dpsi, deps
}
