package events

import (
	"fmt"
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// Planet-Sun aspects are searched directly against the ephemeris
// provider: the observable is the wrapped difference of geocentric
// ecliptic longitudes (or the elongation angle for the extremum
// searches). Step sizes are coarse enough to cover the longest synodic
// period within the bracket budget.
const (
	aspectStep     = 10.0 // days
	elongationStep = 2.0
)

// ConjunctionResult reports a conjunction instant, whether it is an
// inferior one (body between Earth and Sun), and the angular separation
// from the Sun at that instant.
type ConjunctionResult struct {
	Result
	Inferior   bool
	Separation float64 // radians
}

// ElongationResult reports a greatest-elongation instant and the
// elongation angle reached. East reports an evening apparition (body
// east of the Sun).
type ElongationResult struct {
	Result
	Elongation float64 // radians
	East       bool
}

// SearchConjunction finds when the body's geocentric ecliptic longitude
// equals the Sun's. Inner bodies alternate inferior and superior
// conjunctions; the result distinguishes them by geocentric distance.
func SearchConjunction(p ephem.Provider, e astro.Epoch, body ephem.Body, mode SearchMode) (ConjunctionResult, error) {
	if body == ephem.BodySun || body == ephem.BodyEarth {
		return ConjunctionResult{}, fmt.Errorf("no solar conjunction for body %s", body)
	}
	jd, err := searchAspect(p, e, body, 0, mode)
	if err != nil {
		return ConjunctionResult{}, err
	}
	if jd == 0 {
		return ConjunctionResult{Result: notFound(NotFound)}, nil
	}

	bodyPos, err := p.Position(jd, body, astro.Observer{})
	if err != nil {
		return ConjunctionResult{}, err
	}
	sunPos, err := p.Position(jd, ephem.BodySun, astro.Observer{})
	if err != nil {
		return ConjunctionResult{}, err
	}
	return ConjunctionResult{
		Result:     found(jd),
		Inferior:   body.Inner() && bodyPos.Equatorial.Dist < sunPos.Equatorial.Dist,
		Separation: astro.AngularSeparation(bodyPos.Equatorial, sunPos.Equatorial),
	}, nil
}

// SearchOpposition finds when the body stands opposite the Sun in
// geocentric ecliptic longitude. Only meaningful for bodies outside
// Earth's orbit (and the Moon, whose opposition is full moon).
func SearchOpposition(p ephem.Provider, e astro.Epoch, body ephem.Body, mode SearchMode) (Result, error) {
	if body.Inner() || body == ephem.BodySun || body == ephem.BodyEarth {
		return Result{}, fmt.Errorf("no opposition for body %s", body)
	}
	jd, err := searchAspect(p, e, body, math.Pi, mode)
	if err != nil {
		return Result{}, err
	}
	if jd == 0 {
		return notFound(NotFound), nil
	}
	return found(jd), nil
}

// searchAspect finds the instant the wrapped longitude difference
// body-Sun crosses the target angle. Returns 0 when no crossing was
// bracketed.
func searchAspect(p ephem.Provider, e astro.Epoch, body ephem.Body, target float64, mode SearchMode) (float64, error) {
	jd := e.Convert(astro.ScaleTT).JD

	var perr error
	f := func(t float64) float64 {
		bp, err := p.Position(t, body, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		sp, err := p.Position(t, ephem.BodySun, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		return astro.WrapPi(bp.EclLon - sp.EclLon - target)
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n, err := searchAspect(p, e, body, target, SearchNext)
		if err != nil {
			return 0, err
		}
		prev, err := searchAspect(p, e, body, target, SearchPrevious)
		if err != nil {
			return 0, err
		}
		switch {
		case n == 0:
			return prev, nil
		case prev == 0:
			return n, nil
		case math.Abs(n-jd) < math.Abs(prev-jd):
			return n, nil
		default:
			return prev, nil
		}
	}

	step := aspectStep
	if mode == SearchPrevious {
		step = -aspectStep
	}
	cross, ok := findWrappedCrossing(f, jd+math.Copysign(PrecisionSecond, step), step, PrecisionSecond)
	if perr != nil {
		return 0, perr
	}
	if !ok {
		return 0, nil
	}
	return cross, nil
}

// SearchMaxElongation finds a greatest elongation of an inner planet:
// a local maximum of the body-Sun angular separation.
func SearchMaxElongation(p ephem.Provider, e astro.Epoch, body ephem.Body, mode SearchMode) (ElongationResult, error) {
	if !body.Inner() {
		return ElongationResult{}, fmt.Errorf("no greatest elongation for body %s", body)
	}
	jd := e.Convert(astro.ScaleTT).JD

	var perr error
	sep := func(t float64) float64 {
		bp, err := p.Position(t, body, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		sp, err := p.Position(t, ephem.BodySun, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		return astro.AngularSeparation(bp.Equatorial, sp.Equatorial)
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n, err := SearchMaxElongation(p, e, body, SearchNext)
		if err != nil {
			return ElongationResult{}, err
		}
		prev, err := SearchMaxElongation(p, e, body, SearchPrevious)
		if err != nil {
			return ElongationResult{}, err
		}
		switch {
		case n.Outcome != Found:
			return prev, nil
		case prev.Outcome != Found:
			return n, nil
		case math.Abs(n.Epoch.JD-jd) < math.Abs(prev.Epoch.JD-jd):
			return n, nil
		default:
			return prev, nil
		}
	}

	step := elongationStep
	if mode == SearchPrevious {
		step = -elongationStep
	}
	x, v, ok := FindExtremum(sep, jd, step, PrecisionMinute, true)
	if perr != nil {
		return ElongationResult{}, perr
	}
	if !ok {
		return ElongationResult{Result: notFound(NotFound)}, nil
	}

	bp, err := p.Position(x, body, astro.Observer{})
	if err != nil {
		return ElongationResult{}, err
	}
	sp, err := p.Position(x, ephem.BodySun, astro.Observer{})
	if err != nil {
		return ElongationResult{}, err
	}
	return ElongationResult{
		Result:     found(x),
		Elongation: v,
		East:       astro.WrapPi(bp.EclLon-sp.EclLon) > 0,
	}, nil
}

// SearchPairConjunction finds when two bodies share geocentric ecliptic
// longitude, reporting their angular separation at that instant.
func SearchPairConjunction(p ephem.Provider, e astro.Epoch, a, b ephem.Body, mode SearchMode) (ConjunctionResult, error) {
	if a == b {
		return ConjunctionResult{}, fmt.Errorf("conjunction of %s with itself", a)
	}
	jd := e.Convert(astro.ScaleTT).JD

	var perr error
	f := func(t float64) float64 {
		pa, err := p.Position(t, a, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		pb, err := p.Position(t, b, astro.Observer{})
		if err != nil {
			perr = err
			return 0
		}
		return astro.WrapPi(pa.EclLon - pb.EclLon)
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n, err := SearchPairConjunction(p, e, a, b, SearchNext)
		if err != nil {
			return ConjunctionResult{}, err
		}
		prev, err := SearchPairConjunction(p, e, a, b, SearchPrevious)
		if err != nil {
			return ConjunctionResult{}, err
		}
		switch {
		case n.Outcome != Found:
			return prev, nil
		case prev.Outcome != Found:
			return n, nil
		case math.Abs(n.Epoch.JD-jd) < math.Abs(prev.Epoch.JD-jd):
			return n, nil
		default:
			return prev, nil
		}
	}

	step := aspectStep
	if mode == SearchPrevious {
		step = -aspectStep
	}
	cross, ok := findWrappedCrossing(f, jd+math.Copysign(PrecisionSecond, step), step, PrecisionSecond)
	if perr != nil {
		return ConjunctionResult{}, perr
	}
	if !ok {
		return ConjunctionResult{Result: notFound(NotFound)}, nil
	}

	pa, err := p.Position(cross, a, astro.Observer{})
	if err != nil {
		return ConjunctionResult{}, err
	}
	pb, err := p.Position(cross, b, astro.Observer{})
	if err != nil {
		return ConjunctionResult{}, err
	}
	return ConjunctionResult{
		Result:     found(cross),
		Separation: astro.AngularSeparation(pa.Equatorial, pb.Equatorial),
	}, nil
}
