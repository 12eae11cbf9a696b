package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// Saturn's ring plane pole, ecliptic elements of date.
func ringPlaneElements(T float64) (incl, node float64) {
	incl = (28.075216 - 0.012998*T + 0.000004*T*T) * astro.DegToRad
	node = (169.508470 + 1.394681*T + 0.000412*T*T) * astro.DegToRad
	return
}

// RingOpening returns the Saturnicentric latitude of the Earth referred
// to the ring plane, in radians. Positive means the north face of the
// rings is visible; zero means edge-on.
func RingOpening(p ephem.Provider, jdTT float64) (float64, error) {
	pos, err := p.Position(jdTT, ephem.BodySaturn, astro.Observer{})
	if err != nil {
		return 0, err
	}
	T := (jdTT - astro.J2000) / astro.JulianCentury
	incl, node := ringPlaneElements(T)

	lam, bet := pos.EclLon, pos.EclLat
	sinB := math.Sin(incl)*math.Cos(bet)*math.Sin(lam-node) -
		math.Cos(incl)*math.Sin(bet)
	return math.Asin(sinB), nil
}

// RingResult reports a ring event instant and the opening angle there
// (essentially zero for an edge-on crossing).
type RingResult struct {
	Result
	Opening float64 // radians
}

// Ring geometry evolves on Saturn's 29.5 year orbit; coarse steps keep
// the bracket walk within budget across a half period.
const (
	ringCrossStep = 30.0 // days
	ringMaxStep   = 60.0
)

// SearchRingEdgeOn finds when the rings appear edge-on from Earth, a
// zero of the ring opening angle.
func SearchRingEdgeOn(p ephem.Provider, e astro.Epoch, mode SearchMode) (RingResult, error) {
	jd := e.Convert(astro.ScaleTT).JD

	var perr error
	f := func(t float64) float64 {
		b, err := RingOpening(p, t)
		if err != nil {
			perr = err
			return 0
		}
		return b
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n, err := SearchRingEdgeOn(p, e, SearchNext)
		if err != nil {
			return RingResult{}, err
		}
		prev, err := SearchRingEdgeOn(p, e, SearchPrevious)
		if err != nil {
			return RingResult{}, err
		}
		return closerRing(jd, n, prev), nil
	}

	step := ringCrossStep
	if mode == SearchPrevious {
		step = -ringCrossStep
	}
	cross, ok := FindCrossing(f, jd+math.Copysign(PrecisionMinute, step), step, PrecisionMinute)
	if perr != nil {
		return RingResult{}, perr
	}
	if !ok {
		return RingResult{Result: notFound(NotFound)}, nil
	}
	b, err := RingOpening(p, cross)
	if err != nil {
		return RingResult{}, err
	}
	return RingResult{Result: found(cross), Opening: b}, nil
}

// SearchRingMaxOpening finds a greatest ring opening, a local maximum
// of the absolute opening angle.
func SearchRingMaxOpening(p ephem.Provider, e astro.Epoch, mode SearchMode) (RingResult, error) {
	jd := e.Convert(astro.ScaleTT).JD

	var perr error
	f := func(t float64) float64 {
		b, err := RingOpening(p, t)
		if err != nil {
			perr = err
			return 0
		}
		return math.Abs(b)
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n, err := SearchRingMaxOpening(p, e, SearchNext)
		if err != nil {
			return RingResult{}, err
		}
		prev, err := SearchRingMaxOpening(p, e, SearchPrevious)
		if err != nil {
			return RingResult{}, err
		}
		return closerRing(jd, n, prev), nil
	}

	step := ringMaxStep
	if mode == SearchPrevious {
		step = -ringMaxStep
	}
	x, _, ok := FindExtremum(f, jd, step, PrecisionMinute, true)
	if perr != nil {
		return RingResult{}, perr
	}
	if !ok {
		return RingResult{Result: notFound(NotFound)}, nil
	}
	b, err := RingOpening(p, x)
	if err != nil {
		return RingResult{}, err
	}
	return RingResult{Result: found(x), Opening: b}, nil
}

func closerRing(jd float64, n, p RingResult) RingResult {
	if n.Outcome != Found {
		return p
	}
	if p.Outcome != Found {
		return n
	}
	if math.Abs(n.Epoch.JD-jd) < math.Abs(p.Epoch.JD-jd) {
		return n
	}
	return p
}
