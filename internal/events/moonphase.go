package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// MoonPhase identifies one of the four principal lunar phases.
type MoonPhase int

const (
	NewMoon MoonPhase = iota
	FirstQuarter
	FullMoon
	LastQuarter
)

// String returns the phase name.
func (p MoonPhase) String() string {
	switch p {
	case NewMoon:
		return "new moon"
	case FirstQuarter:
		return "first quarter"
	case FullMoon:
		return "full moon"
	case LastQuarter:
		return "last quarter"
	default:
		return "unknown"
	}
}

// cycleOffset is the fraction of a synodic month from new moon.
func (p MoonPhase) cycleOffset() float64 {
	switch p {
	case FirstQuarter:
		return 0.25
	case FullMoon:
		return 0.5
	case LastQuarter:
		return 0.75
	default:
		return 0
	}
}

// PhaseResult is a lunar-phase search result.
type PhaseResult struct {
	Result
	Phase MoonPhase
}

const synodicMonth = 29.530588861

// SearchMoonPhase finds the requested lunar phase relative to the epoch
// using the published lunation series: an analytical cycle seed, the
// mandatory neighbor check, and the full periodic correction sum.
// Accuracy is a few seconds over several millennia around J2000.
func SearchMoonPhase(e astro.Epoch, phase MoonPhase, mode SearchMode) PhaseResult {
	jd := e.Convert(astro.ScaleTT).JD
	year := 2000.0 + (jd-astro.J2000)/365.25
	kFrac := 12.3685*(year-2000) - phase.cycleOffset()

	estimate := func(k float64) float64 { return phaseJDE(k+phase.cycleOffset(), phase) }
	k := roundCycle(kFrac, mode)
	k = chooseCycle(estimate, k, jd, mode)

	return PhaseResult{Result: found(estimate(k)), Phase: phase}
}

// phaseJDE evaluates the lunation polynomial plus periodic corrections
// for a cycle index k measured in synodic months from the first new
// moon of 2000 (integer k = new moon, +0.25/+0.5/+0.75 the others).
func phaseJDE(k float64, phase MoonPhase) float64 {
	T := k / 1236.85

	jde := 2451550.09766 + synodicMonth*k +
		0.00015437*T*T -
		0.000000150*T*T*T +
		0.00000000073*T*T*T*T

	E := 1 - 0.002516*T - 0.0000074*T*T

	// Fundamental arguments, degrees.
	m := astro.NormalizeDeg(2.5534 + 29.10535670*k -
		0.0000014*T*T - 0.00000011*T*T*T)
	mp := astro.NormalizeDeg(201.5643 + 385.81693528*k +
		0.0107582*T*T + 0.00001238*T*T*T - 0.000000058*T*T*T*T)
	f := astro.NormalizeDeg(160.7108 + 390.67050284*k -
		0.0016118*T*T - 0.00000227*T*T*T + 0.000000011*T*T*T*T)
	om := astro.NormalizeDeg(124.7746 - 1.56375588*k +
		0.0020672*T*T + 0.00000215*T*T*T)

	sin := func(deg float64) float64 { return math.Sin(deg * astro.DegToRad) }
	cos := func(deg float64) float64 { return math.Cos(deg * astro.DegToRad) }

	var dt float64
	switch phase {
	case NewMoon, FullMoon:
		c0, c1, c2, c3, c4, c5, c6 := -0.40720, 0.17241, 0.01608, 0.01039, 0.00739, -0.00514, 0.00208
		if phase == FullMoon {
			c0, c1, c2, c3, c4, c5, c6 = -0.40614, 0.17302, 0.01614, 0.01043, 0.00734, -0.00515, 0.00209
		}
		dt = c0*sin(mp) +
			c1*E*sin(m) +
			c2*sin(2*mp) +
			c3*sin(2*f) +
			c4*E*sin(mp-m) +
			c5*E*sin(mp+m) +
			c6*E*E*sin(2*m) -
			0.00111*sin(mp-2*f) -
			0.00057*sin(mp+2*f) +
			0.00056*E*sin(2*mp+m) -
			0.00042*sin(3*mp) +
			0.00042*E*sin(m+2*f) +
			0.00038*E*sin(m-2*f) -
			0.00024*E*sin(2*mp-m) -
			0.00017*sin(om) -
			0.00007*sin(mp+2*m) +
			0.00004*sin(2*mp-2*f) +
			0.00004*sin(3*m) +
			0.00003*sin(mp+m-2*f) +
			0.00003*sin(2*mp+2*f) -
			0.00003*sin(mp+m+2*f) +
			0.00003*sin(mp-m+2*f) -
			0.00002*sin(mp-m-2*f) -
			0.00002*sin(3*mp+m) +
			0.00002*sin(4*mp)
	default: // quarters
		dt = -0.62801*sin(mp) +
			0.17172*E*sin(m) -
			0.01183*E*sin(mp+m) +
			0.00862*sin(2*mp) +
			0.00804*sin(2*f) +
			0.00454*E*sin(mp-m) +
			0.00204*E*E*sin(2*m) -
			0.00180*sin(mp-2*f) -
			0.00070*sin(mp+2*f) -
			0.00040*sin(3*mp) -
			0.00034*E*sin(2*mp-m) +
			0.00032*E*sin(m+2*f) +
			0.00032*E*sin(m-2*f) -
			0.00028*E*E*sin(mp+2*m) +
			0.00027*E*sin(2*mp+m) -
			0.00017*sin(om) -
			0.00005*sin(mp-m-2*f) +
			0.00004*sin(2*mp+2*f) -
			0.00004*sin(mp+m+2*f) +
			0.00004*sin(mp-2*m) +
			0.00003*sin(mp+m-2*f) +
			0.00003*sin(3*m) +
			0.00002*sin(2*mp-2*f) +
			0.00002*sin(mp-m+2*f) -
			0.00002*sin(3*mp+m)

		w := 0.00306 - 0.00038*E*cos(m) + 0.00026*cos(mp) -
			0.00002*cos(mp-m) + 0.00002*cos(mp+m) + 0.00002*cos(2*f)
		if phase == FirstQuarter {
			dt += w
		} else {
			dt -= w
		}
	}

	// Planetary arguments, same additive set for every phase.
	a := [14]float64{
		299.77 + 0.107408*k - 0.009173*T*T,
		251.88 + 0.016321*k,
		251.83 + 26.651886*k,
		349.42 + 36.412478*k,
		84.66 + 18.206239*k,
		141.74 + 53.303771*k,
		207.14 + 2.453732*k,
		154.84 + 7.306860*k,
		34.52 + 27.261239*k,
		207.19 + 0.121824*k,
		291.34 + 1.844379*k,
		161.72 + 24.198154*k,
		239.56 + 25.513099*k,
		331.55 + 3.592518*k,
	}
	amp := [14]float64{
		0.000325, 0.000165, 0.000164, 0.000126, 0.000110, 0.000062, 0.000060,
		0.000056, 0.000047, 0.000042, 0.000040, 0.000037, 0.000035, 0.000023,
	}
	for i := range a {
		dt += amp[i] * sin(a[i])
	}

	return jde + dt
}
