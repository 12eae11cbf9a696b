package astro

import "math"

// Long-term precession model of Vondrák, Capitaine & Wallace (2011,
// A&A 534 A22). The ecliptic and equator poles are each developed as a
// low-order polynomial plus periodic terms in Julian centuries from
// J2000; the precession matrix and the long-term obliquity both derive
// from the two pole directions. Valid to roughly ±200 millennia.

// Ecliptic pole series: P and Q (arcseconds).
var eclPolePoly = [2][4]float64{
	{5851.607687, -0.1189000, -0.00028913, 0.000000101},
	{-1600.886300, 1.1689818, -0.00000020, -0.000000437},
}

// Period (centuries), P cos, Q cos, P sin, Q sin.
var eclPolePeriodic = [][5]float64{
	{708.15, -5486.751211, -684.661560, 667.666730, -5523.863691},
	{2309.00, -17.127623, 2446.283880, -2354.886252, -549.747450},
	{1620.00, -617.517403, 399.671049, -428.152441, -310.998056},
	{492.20, 413.442940, -356.652376, 376.202861, 421.535876},
	{1183.00, 78.614193, -186.387003, 184.778874, -36.776172},
	{622.00, -180.732815, -316.800070, 335.321713, -145.278396},
	{882.00, -87.676083, 198.296701, -185.138669, -34.744450},
	{547.00, 46.140315, 101.135679, -120.972830, 22.885731},
}

// Equator pole series: X and Y (arcseconds).
var equPolePoly = [2][4]float64{
	{5453.282155, 0.4252841, -0.00037173, -0.000000152},
	{-73750.930350, -0.7675452, -0.00018725, 0.000000231},
}

// Period (centuries), X cos, Y cos, X sin, Y sin.
var equPolePeriodic = [][5]float64{
	{256.75, -819.940624, 75004.344875, 81491.287984, 1558.515853},
	{708.15, -8444.676815, 624.033993, 787.163481, 7774.939698},
	{274.20, 2600.009459, 1251.136893, 1251.296102, -2219.534038},
	{241.45, 2755.175630, -1102.212834, -1257.950837, -2523.969396},
	{2309.00, -167.659835, -2660.664980, -2966.799730, 247.850422},
	{492.20, 871.855056, 699.291817, 639.744522, -846.485643},
	{396.10, 44.769698, 153.167220, 131.600209, -1393.124055},
	{288.90, -512.313065, -950.865637, -445.040117, 368.526116},
	{231.10, -819.415595, 499.754645, 584.522874, 749.045012},
	{1610.00, -538.071099, -145.188210, -89.756563, 444.704518},
	{620.00, -189.793622, 558.116553, 524.429630, 235.934465},
	{157.87, -402.922932, -23.923029, -13.549067, 374.049623},
	{220.30, 179.516345, -165.405086, -210.157124, -171.330180},
	{1200.00, -9.814756, 9.344131, -44.919798, -22.899655},
}

// evalPoleSeries evaluates one polynomial-plus-periodic pair at T centuries,
// returning both components in radians. Periodic rows carry the cosine
// amplitudes of both components before the sine amplitudes, matching the
// published table layout.
func evalPoleSeries(T float64, poly [2][4]float64, per [][5]float64) (a, b float64) {
	for _, row := range per {
		arg := TwoPi * T / row[0]
		s, c := math.Sincos(arg)
		a += row[1]*c + row[3]*s
		b += row[2]*c + row[4]*s
	}
	p := 1.0
	for i := 0; i < 4; i++ {
		a += poly[0][i] * p
		b += poly[1][i] * p
		p *= T
	}
	return a * ArcsecToRad, b * ArcsecToRad
}

// longTermEclipticPole returns the unit vector of the ecliptic pole of
// date in the J2000 equatorial frame.
func longTermEclipticPole(T float64) Vec3 {
	p, q := evalPoleSeries(T, eclPolePoly, eclPolePeriodic)
	w := 1 - p*p - q*q
	if w < 0 {
		w = 0
	}
	w = math.Sqrt(w)
	s, c := math.Sincos(84381.406 * ArcsecToRad)
	return Vec3{
		X: p,
		Y: -q*c - w*s,
		Z: -q*s + w*c,
	}
}

// longTermEquatorPole returns the unit vector of the equator pole of date
// in the J2000 equatorial frame.
func longTermEquatorPole(T float64) Vec3 {
	x, y := evalPoleSeries(T, equPolePoly, equPolePeriodic)
	w := 1 - x*x - y*y
	if w < 0 {
		w = 0
	}
	return Vec3{X: x, Y: y, Z: math.Sqrt(w)}
}

// longTermPrecessionMatrix builds the precession matrix from J2000 to the
// epoch T centuries away under the long-term model. Rows are the equinox,
// its complement on the equator, and the equator pole.
func longTermPrecessionMatrix(T float64) M3 {
	pole := longTermEquatorPole(T)
	ecl := longTermEclipticPole(T)
	equinox := pole.Cross(ecl).Normalized()
	mid := pole.Cross(equinox)
	return M3{
		{equinox.X, equinox.Y, equinox.Z},
		{mid.X, mid.Y, mid.Z},
		{pole.X, pole.Y, pole.Z},
	}
}

// longTermObliquity returns the mean obliquity in radians under the
// long-term model: the angle between the equator and ecliptic poles.
func longTermObliquity(T float64) float64 {
	return math.Acos(clamp1(longTermEquatorPole(T).Dot(longTermEclipticPole(T))))
}
