package ephem

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// Analytic is the built-in low-precision provider: the Sun from the
// short solar theory and the Moon from a truncated ELP series. Accuracy
// is a few arcseconds for the Sun and about half an arcminute for the
// Moon, which is plenty for rise/set, twilight and elongation work.
type Analytic struct {
	// Reduction selects the obliquity/nutation theory used to turn
	// ecliptic into equatorial coordinates. Zero value is IAU1976.
	Reduction astro.Reduction
}

// Name implements Provider.
func (Analytic) Name() string { return "builtin-analytic" }

// Available implements Provider.
func (Analytic) Available(body Body) bool {
	return body == BodySun || body == BodyMoon
}

// Position implements Provider.
func (a Analytic) Position(jdTT float64, body Body, obs astro.Observer) (Position, error) {
	var p Position
	switch body {
	case BodySun:
		p = a.sun(jdTT)
	case BodyMoon:
		p = a.moon(jdTT)
	default:
		return Position{}, fmt.Errorf("builtin provider has no ephemeris for %s", body)
	}
	if obs != (astro.Observer{}) {
		p = a.topocentric(p, jdTT, obs)
	}
	return p, nil
}

const (
	kmPerAU     = 149597870.7
	earthRadKm  = 6378.14
	sunSemiDiam = 959.63 // arcsec at 1 AU
	moonRadKm   = 1737.4
)

// sun evaluates the short solar theory (mean elements plus equation of
// center) and returns the apparent geocentric position.
func (a Analytic) sun(jd float64) Position {
	T := (jd - astro.J2000) / astro.JulianCentury

	l0 := astro.NormalizeDeg(280.46646 + 36000.76983*T + 0.0003032*T*T)
	m := astro.NormalizeDeg(357.52911+35999.05029*T-0.0001537*T*T) * astro.DegToRad
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T

	c := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(m) +
		(0.019993-0.000101*T)*math.Sin(2*m) +
		0.000289*math.Sin(3*m)

	trueLon := l0 + c
	nu := m + c*astro.DegToRad
	r := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(nu))

	// Aberration and nutation in longitude give the apparent longitude.
	dpsi, _ := astro.Nutation1980(T)
	lambda := trueLon*astro.DegToRad - 20.4898/3600*astro.DegToRad/r + dpsi

	eq := a.eclipticToEquatorial(lambda, 0, r, T)
	return Position{
		Equatorial:    eq,
		EclLon:        astro.NormalizeRad(lambda),
		EclLat:        0,
		AngularRadius: sunSemiDiam / r * astro.ArcsecToRad,
		SunDistance:   0,
	}
}

// Truncated lunar series. Arguments are multiples of (D, M, M', F);
// coefficients are 1e-6 degrees for longitude, 1e-3 km for distance and
// 1e-6 degrees for latitude. Terms with |M| pick up the eccentricity
// factor E (squared for |M| = 2).
type moonTerm struct {
	d, m, mp, f int
	l, r        float64
}

var moonLR = []moonTerm{
	{0, 0, 1, 0, 6288774, -20905355},
	{2, 0, -1, 0, 1274027, -3699111},
	{2, 0, 0, 0, 658314, -2955968},
	{0, 0, 2, 0, 213618, -569925},
	{0, 1, 0, 0, -185116, 48888},
	{0, 0, 0, 2, -114332, -3149},
	{2, 0, -2, 0, 58793, 246158},
	{2, -1, -1, 0, 57066, -152138},
	{2, 0, 1, 0, 53322, -170733},
	{2, -1, 0, 0, 45758, -204586},
	{0, 1, -1, 0, -40923, -129620},
	{1, 0, 0, 0, -34720, 108743},
	{0, 1, 1, 0, -30383, 104755},
	{2, 0, 0, -2, 15327, 10321},
	{0, 0, 1, 2, -12528, 0},
	{0, 0, 1, -2, 10980, 79661},
	{4, 0, -1, 0, 10675, -34782},
	{0, 0, 3, 0, 10034, -23210},
	{4, 0, -2, 0, 8548, -21636},
	{2, 1, -1, 0, -7888, 24208},
	{2, 1, 0, 0, -6766, 30824},
	{1, 0, -1, 0, -5163, -8379},
	{1, 1, 0, 0, 4987, -16675},
	{2, -1, 1, 0, 4036, -12831},
	{2, 0, 2, 0, 3994, -10445},
	{4, 0, 0, 0, 3861, -11650},
	{2, 0, -3, 0, 3665, 14403},
}

type moonBTerm struct {
	d, m, mp, f int
	b           float64
}

var moonB = []moonBTerm{
	{0, 0, 0, 1, 5128122},
	{0, 0, 1, 1, 280602},
	{0, 0, 1, -1, 277693},
	{2, 0, 0, -1, 173237},
	{2, 0, -1, 1, 55413},
	{2, 0, -1, -1, 46271},
	{2, 0, 0, 1, 32573},
	{0, 0, 2, 1, 17198},
	{2, 0, 1, -1, 9266},
	{0, 0, 2, -1, 8822},
	{2, -1, 0, -1, 8216},
	{2, 0, -2, -1, 4324},
	{2, 0, 1, 1, 4200},
	{2, 1, 0, -1, -3359},
	{2, -1, -1, 1, 2463},
	{2, -1, 0, 1, 2211},
	{2, -1, -1, -1, 2065},
	{0, 1, -1, -1, -1870},
	{4, 0, -1, -1, 1828},
	{0, 1, 0, 1, -1794},
}

// moon evaluates the truncated lunar longitude/latitude/distance series
// and returns the apparent geocentric position.
func (a Analytic) moon(jd float64) Position {
	T := (jd - astro.J2000) / astro.JulianCentury

	lp := astro.NormalizeDeg(218.3164477 + 481267.88123421*T -
		0.0015786*T*T + T*T*T/538841 - T*T*T*T/65194000)
	d := astro.NormalizeDeg(297.8501921 + 445267.1114034*T -
		0.0018819*T*T + T*T*T/545868 - T*T*T*T/113065000)
	m := astro.NormalizeDeg(357.5291092 + 35999.0502909*T -
		0.0001536*T*T + T*T*T/24490000)
	mp := astro.NormalizeDeg(134.9633964 + 477198.8675055*T +
		0.0087414*T*T + T*T*T/69699 - T*T*T*T/14712000)
	f := astro.NormalizeDeg(93.2720950 + 483202.0175233*T -
		0.0036539*T*T - T*T*T/3526000 + T*T*T*T/863310000)

	a1 := astro.NormalizeDeg(119.75 + 131.849*T)
	a2 := astro.NormalizeDeg(53.09 + 479264.290*T)
	a3 := astro.NormalizeDeg(313.45 + 481266.484*T)

	ecc := 1 - 0.002516*T - 0.0000074*T*T

	var sumL, sumR, sumB float64
	for _, t := range moonLR {
		arg := (float64(t.d)*d + float64(t.m)*m + float64(t.mp)*mp + float64(t.f)*f) * astro.DegToRad
		e := 1.0
		if t.m == 1 || t.m == -1 {
			e = ecc
		} else if t.m == 2 || t.m == -2 {
			e = ecc * ecc
		}
		sumL += t.l * e * math.Sin(arg)
		sumR += t.r * e * math.Cos(arg)
	}
	for _, t := range moonB {
		arg := (float64(t.d)*d + float64(t.m)*m + float64(t.mp)*mp + float64(t.f)*f) * astro.DegToRad
		e := 1.0
		if t.m == 1 || t.m == -1 {
			e = ecc
		} else if t.m == 2 || t.m == -2 {
			e = ecc * ecc
		}
		sumB += t.b * e * math.Sin(arg)
	}

	// Additive terms for Venus, Jupiter and the flattening of the Earth.
	sumL += 3958*math.Sin(a1*astro.DegToRad) +
		1962*math.Sin((lp-f)*astro.DegToRad) +
		318*math.Sin(a2*astro.DegToRad)
	sumB += -2235*math.Sin(lp*astro.DegToRad) +
		382*math.Sin(a3*astro.DegToRad) +
		175*math.Sin((a1-f)*astro.DegToRad) +
		175*math.Sin((a1+f)*astro.DegToRad) +
		127*math.Sin((lp-mp)*astro.DegToRad) -
		115*math.Sin((lp+mp)*astro.DegToRad)

	dpsi, _ := astro.Nutation1980(T)
	lambda := (lp+sumL*1e-6)*astro.DegToRad + dpsi
	beta := sumB * 1e-6 * astro.DegToRad
	distKm := 385000.56 + sumR*1e-3
	distAU := distKm / kmPerAU

	eq := a.eclipticToEquatorial(lambda, beta, distAU, T)
	return Position{
		Equatorial:    eq,
		EclLon:        astro.NormalizeRad(lambda),
		EclLat:        beta,
		AngularRadius: math.Asin(moonRadKm / distKm),
		SunDistance:   1, // to first order the Moon shares Earth's solar distance
	}
}

// eclipticToEquatorial rotates apparent ecliptic coordinates of date into
// apparent RA/Dec using the true obliquity.
func (a Analytic) eclipticToEquatorial(lambda, beta, dist, T float64) astro.Spherical {
	eps, err := a.Reduction.TrueObliquity(T, nil, nil)
	if err != nil {
		// Only reachable with an inconsistent Vondrak configuration;
		// fall back to the default theory.
		eps, _ = astro.Reduction{}.TrueObliquity(T, nil, nil)
	}
	se, ce := math.Sin(eps), math.Cos(eps)
	sl, cl := math.Sincos(lambda)
	sb, cb := math.Sincos(beta)

	ra := math.Atan2(sl*ce-math.Tan(beta)*se, cl)
	dec := math.Asin(sb*ce + cb*se*sl)
	return astro.Spherical{
		RA:   astro.NormalizeRad(ra),
		Dec:  dec,
		Dist: dist,
	}
}

// topocentric shifts a geocentric position to the observer by rectangular
// subtraction of the observer's geocentric position. Matters for the
// Moon (up to about a degree); negligible for the Sun.
func (a Analytic) topocentric(p Position, jd float64, obs astro.Observer) Position {
	lst, err := a.Reduction.LocalSiderealTime(
		astro.NewEpoch(jd, astro.ScaleTT), obs.LonDeg*astro.DegToRad, nil, nil)
	if err != nil {
		return p
	}
	lat := obs.LatDeg * astro.DegToRad
	rObs := (earthRadKm + obs.AltMeters/1000) / kmPerAU
	obsVec := astro.Vec3{
		X: rObs * math.Cos(lat) * math.Cos(lst),
		Y: rObs * math.Cos(lat) * math.Sin(lst),
		Z: rObs * math.Sin(lat),
	}
	topo := p.Equatorial.Vec().Sub(obsVec)
	p.Equatorial = astro.SphericalFromVec(topo)
	return p
}
