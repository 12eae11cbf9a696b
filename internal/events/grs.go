package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// CentralMeridianFunc returns Jupiter's System II central meridian
// longitude in radians at a TT Julian Day.
type CentralMeridianFunc func(jdTT float64) float64

// SpotLongitudeFunc returns the Great Red Spot's System II longitude in
// radians at a TT Julian Day. The spot drifts, so implementations
// typically interpolate a dated table, extrapolating linearly outside
// its range.
type SpotLongitudeFunc func(jdTT float64) float64

// Jupiter rotates in just under ten hours; the bracket step must
// resolve each crossing of the spot through the meridian.
const grsStep = 0.01 // days

// SearchGRSTransit finds when the Great Red Spot crosses Jupiter's
// central meridian. Both longitude functions are supplied by the
// caller, keeping the rotation model and the spot drift table outside
// the search itself.
func SearchGRSTransit(cm CentralMeridianFunc, spot SpotLongitudeFunc, e astro.Epoch, mode SearchMode) Result {
	jd := e.Convert(astro.ScaleTT).JD

	f := func(t float64) float64 {
		return astro.WrapPi(cm(t) - spot(t))
	}

	if mode == SearchClosest || mode == SearchCurrent {
		n := SearchGRSTransit(cm, spot, e, SearchNext)
		p := SearchGRSTransit(cm, spot, e, SearchPrevious)
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

	step := grsStep
	if mode == SearchPrevious {
		step = -grsStep
	}
	cross, ok := findWrappedCrossing(f, jd+math.Copysign(PrecisionSecond, step), step, PrecisionSecond)
	if !ok {
		return notFound(NotFound)
	}
	return found(cross)
}
