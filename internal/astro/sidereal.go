package astro

import "math"

// GreenwichMeanSiderealTime returns GMST in radians for a UT1 (or UTC)
// Julian Day, from the IAU 1982 polynomial.
func GreenwichMeanSiderealTime(jdUT float64) float64 {
	T := (jdUT - J2000) / JulianCentury
	gmst := 280.46061837 +
		360.98564736629*(jdUT-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0
	return NormalizeDeg(gmst) * DegToRad
}

// ApparentSiderealTime returns Greenwich apparent sidereal time in
// radians: GMST corrected by the equation of the equinoxes. A nil nut
// falls back to Nutation1980.
func (r Reduction) ApparentSiderealTime(e Epoch, nut NutationFunc, w *Warnings) (float64, error) {
	ut := e.Convert(ScaleUT1)
	tt := e.Convert(ScaleTT)
	T := tt.JulianCenturies()
	if nut == nil {
		nut = Nutation1980
	}
	dpsi, _ := nut(T)
	eps, err := r.TrueObliquity(T, nut, w)
	if err != nil {
		return 0, err
	}
	return NormalizeRad(GreenwichMeanSiderealTime(ut.JD) + dpsi*math.Cos(eps)), nil
}

// LocalSiderealTime returns the local apparent sidereal time in radians
// for an east-positive longitude in radians.
func (r Reduction) LocalSiderealTime(e Epoch, lonEast float64, nut NutationFunc, w *Warnings) (float64, error) {
	gast, err := r.ApparentSiderealTime(e, nut, w)
	if err != nil {
		return 0, err
	}
	return NormalizeRad(gast + lonEast), nil
}
