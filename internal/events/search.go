// Package events finds instants of astronomical events: lunar phases,
// eclipses, equinoxes and solstices, apsides, conjunctions, Saturn ring
// plane crossings, Great Red Spot transits, and rise/set/transit times.
//
// Every search follows the same two-phase shape: an analytical seed (a
// cycle index and a low-order polynomial) followed by either published
// periodic correction terms or bracket-and-halve refinement. Searches
// report their outcome as data; "no event" is a normal result, not an
// error.
package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// SearchMode selects which occurrence of an event to find relative to
// the starting epoch.
type SearchMode int

const (
	// SearchNext finds the first occurrence strictly after the epoch.
	SearchNext SearchMode = iota
	// SearchPrevious finds the last occurrence strictly before it.
	SearchPrevious
	// SearchClosest finds whichever neighboring occurrence is nearer.
	SearchClosest
	// SearchCurrent finds the occurrence belonging to the epoch's local
	// calendar day where that is meaningful (rise/set); cycle searches
	// treat it like SearchClosest.
	SearchCurrent
)

// String returns the mode name.
func (m SearchMode) String() string {
	switch m {
	case SearchNext:
		return "next"
	case SearchPrevious:
		return "previous"
	case SearchClosest:
		return "closest"
	case SearchCurrent:
		return "current"
	default:
		return "unknown"
	}
}

// Outcome tags a search result.
type Outcome int

const (
	Found Outcome = iota
	NotFound
	Circumpolar
	AlwaysBelowHorizon
	NoConvergence
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Circumpolar:
		return "circumpolar"
	case AlwaysBelowHorizon:
		return "always below horizon"
	case NoConvergence:
		return "no convergence"
	default:
		return "unknown"
	}
}

// Result is the common part of every event result: an outcome tag and,
// when found, the instant as an Epoch in TT.
type Result struct {
	Outcome Outcome
	Epoch   astro.Epoch
}

func found(jdTT float64) Result {
	return Result{Outcome: Found, Epoch: astro.NewEpoch(jdTT, astro.ScaleTT)}
}

func notFound(o Outcome) Result { return Result{Outcome: o} }

// Observable is a scalar function of a TT Julian Day. Crossing and
// extremum searches drive it; it must be continuous over the bracket.
type Observable func(jdTT float64) float64

// Search iteration limits and the default time precision in days.
const (
	maxBracketSteps = 400
	maxHalvings     = 64
	// PrecisionMinute and PrecisionSecond are convenient crossing
	// precisions, in days.
	PrecisionMinute = 1.0 / 1440
	PrecisionSecond = 1.0 / 86400
)

// FindCrossing locates a zero of f near start by stepping in the given
// direction until the sign changes, then halving the step until it is
// below precision (days). step's sign sets the search direction. The
// boolean reports whether a bracketed crossing was found within the
// step budget.
func FindCrossing(f Observable, start, step, precision float64) (float64, bool) {
	jd := start
	v := f(jd)
	if v == 0 {
		return jd, true
	}
	for i := 0; i < maxBracketSteps; i++ {
		next := jd + step
		nv := f(next)
		if nv == 0 {
			return next, true
		}
		if (v < 0) != (nv < 0) {
			return refineCrossing(f, jd, next, v, precision)
		}
		jd, v = next, nv
	}
	return 0, false
}

// refineCrossing bisects a bracketed sign change down to precision.
func refineCrossing(f Observable, a, b, fa, precision float64) (float64, bool) {
	for i := 0; i < maxHalvings; i++ {
		if math.Abs(b-a) <= precision {
			break
		}
		mid := (a + b) / 2
		fm := f(mid)
		if fm == 0 {
			return mid, true
		}
		if (fa < 0) != (fm < 0) {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}
	return (a + b) / 2, true
}

// findWrappedCrossing is FindCrossing for observables built from a
// wrapped angle difference in (-pi, pi]: such a function also changes
// sign at the +-pi discontinuity, so a sign change only brackets the
// real root when the jump between samples stays small.
func findWrappedCrossing(f Observable, start, step, precision float64) (float64, bool) {
	jd := start
	v := f(jd)
	for i := 0; i < maxBracketSteps; i++ {
		next := jd + step
		nv := f(next)
		if (v < 0) != (nv < 0) && math.Abs(nv-v) < math.Pi {
			return refineCrossing(f, jd, next, v, precision)
		}
		jd, v = next, nv
	}
	return 0, false
}

// FindExtremum locates a local extremum of f by stepping from start in
// the direction of step until f stops improving, then refining with a
// three-point parabolic fit iterated down to precision. wantMax selects
// a maximum; otherwise a minimum. Returns the abscissa, the extremal
// value, and whether a turning point was bracketed.
func FindExtremum(f Observable, start, step, precision float64, wantMax bool) (float64, float64, bool) {
	better := func(a, b float64) bool {
		if wantMax {
			return a > b
		}
		return a < b
	}

	jd := start
	v := f(jd)
	// Walk until the value turns worse, which brackets the extremum
	// between the previous two samples.
	var prevJD, prevV float64
	bracketed := false
	for i := 0; i < maxBracketSteps; i++ {
		next := jd + step
		nv := f(next)
		if i > 0 && better(v, nv) && better(v, prevV) {
			bracketed = true
			break
		}
		prevJD, prevV = jd, v
		jd, v = next, nv
	}
	if !bracketed {
		return 0, 0, false
	}
	_ = prevJD

	h := math.Abs(step)
	x := jd
	for i := 0; i < maxHalvings && h > precision; i++ {
		y0, y1, y2 := f(x-h), f(x), f(x+h)
		denom := y0 - 2*y1 + y2
		if denom != 0 {
			dx := 0.5 * (y0 - y2) / denom
			// Keep the parabolic step inside the bracket.
			if dx > 1 {
				dx = 1
			} else if dx < -1 {
				dx = -1
			}
			x += dx * h
		}
		h /= 2
	}
	return x, f(x), true
}

// roundCycle rounds a fractional cycle index to the integer demanded by
// the mode: next rounds up, previous rounds down, closest (and current)
// round to nearest with the half-cycle tie going up.
func roundCycle(k float64, mode SearchMode) float64 {
	switch mode {
	case SearchNext:
		return math.Ceil(k)
	case SearchPrevious:
		return math.Floor(k)
	default:
		return math.Floor(k + 0.5)
	}
}

// chooseCycle applies the mandatory three-way neighbor check: estimate
// is the instant for a given integer cycle index; the seed rounding can
// land on the wrong side of jd near a cycle boundary, so the better of
// k-1, k, k+1 under the mode's ordering wins.
func chooseCycle(estimate func(k float64) float64, k, jd float64, mode SearchMode) float64 {
	candidates := [3]float64{k - 1, k, k + 1}
	best := math.NaN()
	bestJD := 0.0
	for _, c := range candidates {
		e := estimate(c)
		switch mode {
		case SearchNext:
			if e <= jd {
				continue
			}
			if math.IsNaN(best) || e < bestJD {
				best, bestJD = c, e
			}
		case SearchPrevious:
			if e >= jd {
				continue
			}
			if math.IsNaN(best) || e > bestJD {
				best, bestJD = c, e
			}
		default:
			if math.IsNaN(best) || math.Abs(e-jd) < math.Abs(bestJD-jd) {
				best, bestJD = c, e
			}
		}
	}
	if math.IsNaN(best) {
		// Only reachable when all three candidates sit on the wrong
		// side, which one more cycle step fixes.
		if mode == SearchNext {
			return k + 2
		}
		return k - 2
	}
	return best
}
