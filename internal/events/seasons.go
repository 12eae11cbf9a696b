package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// Season identifies an equinox or solstice.
type Season int

const (
	MarchEquinox Season = iota
	JuneSolstice
	SeptemberEquinox
	DecemberSolstice
)

// String returns the season event name.
func (s Season) String() string {
	switch s {
	case MarchEquinox:
		return "March equinox"
	case JuneSolstice:
		return "June solstice"
	case SeptemberEquinox:
		return "September equinox"
	case DecemberSolstice:
		return "December solstice"
	default:
		return "unknown"
	}
}

// Mean-instant polynomials in millennia, one row per season event.
// First block is calibrated for years 1000-3000 with Y measured from
// 2000; second for years -1000..1000 with Y measured from 0.
var seasonPoly2000 = [4][5]float64{
	{2451623.80984, 365242.37404, 0.05169, -0.00411, -0.00057},
	{2451716.56767, 365241.62603, 0.00325, 0.00888, -0.00030},
	{2451810.21715, 365242.01767, -0.11575, 0.00337, 0.00078},
	{2451900.05952, 365242.74049, -0.06223, -0.00823, 0.00032},
}

var seasonPoly0 = [4][5]float64{
	{1721139.29189, 365242.13740, 0.06134, 0.00111, -0.00071},
	{1721233.25401, 365241.72562, -0.05323, 0.00907, 0.00025},
	{1721325.70455, 365242.49558, -0.11677, -0.00297, 0.00074},
	{1721414.39987, 365242.88257, -0.00769, -0.00933, -0.00006},
}

// Periodic corrections to the mean instant: amplitude (1e-5 day),
// phase and rate in degrees.
var seasonTerms = [24][3]float64{
	{485, 324.96, 1934.136},
	{203, 337.23, 32964.467},
	{199, 342.08, 20.186},
	{182, 27.85, 445267.112},
	{156, 73.14, 45036.886},
	{136, 171.52, 22518.443},
	{77, 222.54, 65928.934},
	{74, 296.72, 3034.906},
	{70, 243.58, 9037.513},
	{58, 119.81, 33718.147},
	{52, 297.17, 150.678},
	{50, 21.02, 2281.226},
	{45, 247.54, 29929.562},
	{44, 325.15, 31555.956},
	{29, 60.93, 4443.417},
	{18, 155.12, 67555.328},
	{17, 288.79, 4562.452},
	{16, 198.04, 62894.029},
	{14, 199.76, 31436.921},
	{12, 95.39, 14577.848},
	{12, 287.11, 31931.756},
	{12, 320.81, 34777.259},
	{9, 227.73, 1222.114},
	{8, 15.45, 16859.074},
}

// SearchSeason finds the requested equinox or solstice relative to the
// epoch. The annual cycle index is the calendar year, with the standard
// neighbor check around the seed.
func SearchSeason(e astro.Epoch, s Season, mode SearchMode) Result {
	jd := e.Convert(astro.ScaleTT).JD
	yearFrac := 2000.0 + (jd-astro.J2000)/365.2425

	// The event sits partway through its year, so offset the fractional
	// cycle by the event's mean phase before rounding.
	phase := (seasonPoly2000[s][0] - 2451544.5) / 365.2425
	estimate := func(k float64) float64 { return seasonJDE(k, s) }
	k := roundCycle(yearFrac-phase, mode)
	k = chooseCycle(estimate, k, jd, mode)

	return found(estimate(k))
}

// seasonJDE returns the instant of the season event of the given
// calendar year (mean polynomial plus the periodic sum).
func seasonJDE(year float64, s Season) float64 {
	var jde0 float64
	if year >= 1000 {
		y := (year - 2000) / 1000
		c := seasonPoly2000[s]
		jde0 = c[0] + y*(c[1]+y*(c[2]+y*(c[3]+y*c[4])))
	} else {
		y := year / 1000
		c := seasonPoly0[s]
		jde0 = c[0] + y*(c[1]+y*(c[2]+y*(c[3]+y*c[4])))
	}

	T := (jde0 - astro.J2000) / astro.JulianCentury
	w := (35999.373*T - 2.47) * astro.DegToRad
	dl := 1 + 0.0334*math.Cos(w) + 0.0007*math.Cos(2*w)

	var sum float64
	for _, t := range seasonTerms {
		sum += t[0] * math.Cos((t[1]+t[2]*T)*astro.DegToRad)
	}
	return jde0 + 0.00001*sum/dl
}

// SearchSunLongitude finds when the Sun's apparent ecliptic longitude
// crosses the target value (radians), by direct root search against the
// provider. Useful for solar terms not covered by the season table.
func SearchSunLongitude(p ephem.Provider, e astro.Epoch, target float64, mode SearchMode) (Result, error) {
	jd := e.Convert(astro.ScaleTT).JD

	var perr error
	f := func(t float64) float64 {
		pos, err := p.Position(t, ephem.BodySun, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		return astro.WrapPi(pos.EclLon - target)
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n, err := SearchSunLongitude(p, e, target, SearchNext)
		if err != nil {
			return Result{}, err
		}
		prev, err := SearchSunLongitude(p, e, target, SearchPrevious)
		if err != nil {
			return Result{}, err
		}
		if math.Abs(n.Epoch.JD-jd) < math.Abs(prev.Epoch.JD-jd) {
			return n, nil
		}
		return prev, nil
	}

	step := 1.0
	if mode == SearchPrevious {
		step = -1
	}
	// Step off the epoch so an exact crossing at jd is not returned for
	// a strict next/previous search. The wrapped difference also changes
	// sign at the +-pi discontinuity half a year from the crossing, so a
	// sign change only brackets the real root when the jump is small.
	t := jd + step*PrecisionSecond
	v := f(t)
	for i := 0; i < maxBracketSteps; i++ {
		next := t + step
		nv := f(next)
		if perr != nil {
			return Result{}, perr
		}
		if (v < 0) != (nv < 0) && math.Abs(nv-v) < math.Pi {
			cross, _ := refineCrossing(f, t, next, v, PrecisionSecond)
			if perr != nil {
				return Result{}, perr
			}
			return found(cross), nil
		}
		t, v = next, nv
	}
	return notFound(NotFound), nil
}
