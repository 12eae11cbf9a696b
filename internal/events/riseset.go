package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// Twilight defines the target elevation for a rise/set computation.
// Values are immutable; build custom definitions with CustomTwilight.
type Twilight struct {
	kind           twilightKind
	elevation      float64 // radians, custom definitions only
	considerRadius bool
}

type twilightKind int

const (
	twiHorizon twilightKind = iota
	twiHorizon34
	twiCivil
	twiNautical
	twiAstronomical
	twiCustom
)

// The standard twilight definitions. TwilightHorizon is the apparent
// rise/set of the body's upper limb (refraction at the horizon, angular
// radius and horizon dip folded in); TwilightHorizon34 uses the plain
// 34 arcminute refraction constant for the body's center.
var (
	TwilightHorizon      = Twilight{kind: twiHorizon}
	TwilightHorizon34    = Twilight{kind: twiHorizon34}
	TwilightCivil        = Twilight{kind: twiCivil}
	TwilightNautical     = Twilight{kind: twiNautical}
	TwilightAstronomical = Twilight{kind: twiAstronomical}
)

// CustomTwilight defines a custom target elevation in radians. When
// considerRadius is set the body's angular radius is subtracted, so the
// event refers to the upper limb rather than the center.
func CustomTwilight(elevation float64, considerRadius bool) Twilight {
	return Twilight{kind: twiCustom, elevation: elevation, considerRadius: considerRadius}
}

// String returns the twilight definition name.
func (t Twilight) String() string {
	switch t.kind {
	case twiHorizon:
		return "horizon"
	case twiHorizon34:
		return "horizon-34arcmin"
	case twiCivil:
		return "civil"
	case twiNautical:
		return "nautical"
	case twiAstronomical:
		return "astronomical"
	default:
		return "custom"
	}
}

// targetElevation folds the body's angular radius and the observer's
// horizon dip into the definition's elevation, in radians.
func (t Twilight) targetElevation(angularRadius, dip float64) float64 {
	const arcmin = astro.DegToRad / 60
	switch t.kind {
	case twiHorizon:
		return -32.67*arcmin - angularRadius - dip
	case twiHorizon34:
		return -34*arcmin - dip
	case twiCivil:
		return -6 * astro.DegToRad
	case twiNautical:
		return -12 * astro.DegToRad
	case twiAstronomical:
		return -18 * astro.DegToRad
	default:
		h := t.elevation
		if t.considerRadius {
			h -= angularRadius
		}
		return h
	}
}

// RiseSetResult bundles the three horizon events for one body, day and
// observer. Rise and Set carry the degenerate outcomes; Transit is the
// upper culmination, with the elevation reached there.
type RiseSetResult struct {
	Rise    Result
	Set     Result
	Transit Result

	// TransitElevation is the body's elevation at transit, radians.
	// Only meaningful when Transit.Outcome is Found.
	TransitElevation float64
}

// RiseSetSolver computes rise, set and transit times by the hour-angle
// method, iterated against the moving body.
type RiseSetSolver struct {
	Provider  ephem.Provider
	Reduction astro.Reduction
	Twilight  Twilight

	// Warnings, when non-nil, collects range warnings from the
	// reduction layer.
	Warnings *astro.Warnings
}

const (
	risePrecision = 0.5 / 86400 // days
	riseMaxIter   = 20

	// Mean sidereal rotation of the Earth in solar days.
	siderealDay = 0.9972695663
)

type riseEvent int

const (
	evTransit riseEvent = iota
	evRise
	evSet
)

// Solve computes rise, set and transit for the body relative to the
// epoch under the requested mode. Degenerate geometry is reported per
// event: a circumpolar body still has a transit.
func (s RiseSetSolver) Solve(e astro.Epoch, body ephem.Body, obs astro.Observer, mode SearchMode) (RiseSetResult, error) {
	var out RiseSetResult

	tr, elev, err := s.solveEvent(e, body, obs, evTransit, mode)
	if err != nil {
		return RiseSetResult{}, err
	}
	out.Transit = tr
	out.TransitElevation = elev

	out.Rise, _, err = s.solveEvent(e, body, obs, evRise, mode)
	if err != nil {
		return RiseSetResult{}, err
	}
	out.Set, _, err = s.solveEvent(e, body, obs, evSet, mode)
	if err != nil {
		return RiseSetResult{}, err
	}
	return out, nil
}

// solveEvent converges one event. The hour-angle solution is periodic
// in the body's synodic rotation, so the converged instant is then
// mapped onto the day the mode asks for and reconverged.
func (s RiseSetSolver) solveEvent(e astro.Epoch, body ephem.Body, obs astro.Observer, ev riseEvent, mode SearchMode) (Result, float64, error) {
	jd0 := e.Convert(astro.ScaleTT).JD
	day := siderealDay / obs.EffectiveRotationRatio()

	res, elev, err := s.converge(jd0, body, obs, ev)
	if err != nil {
		return Result{}, 0, err
	}
	if res.Outcome != Found {
		return res, 0, nil
	}

	// Map onto the requested side of the epoch. One period shift with a
	// fresh convergence is enough; the events march by only minutes per
	// day.
	switch mode {
	case SearchNext:
		for i := 0; i < 3 && res.Epoch.JD <= jd0; i++ {
			res, elev, err = s.converge(res.Epoch.JD+day, body, obs, ev)
			if err != nil || res.Outcome != Found {
				return res, 0, err
			}
		}
		if res.Epoch.JD <= jd0 {
			return notFound(NoConvergence), 0, nil
		}
	case SearchPrevious:
		for i := 0; i < 3 && res.Epoch.JD >= jd0; i++ {
			res, elev, err = s.converge(res.Epoch.JD-day, body, obs, ev)
			if err != nil || res.Outcome != Found {
				return res, 0, err
			}
		}
		if res.Epoch.JD >= jd0 {
			return notFound(NoConvergence), 0, nil
		}
	case SearchCurrent:
		want := localDay(jd0, obs)
		if localDay(res.Epoch.JD, obs) == want {
			break
		}
		// Try the neighboring cycles for the root on today's date.
		for _, shift := range [2]float64{day, -day} {
			alt, altElev, err := s.converge(res.Epoch.JD+shift, body, obs, ev)
			if err != nil {
				return Result{}, 0, err
			}
			if alt.Outcome == Found && localDay(alt.Epoch.JD, obs) == want {
				return alt, altElev, nil
			}
		}
		return notFound(NotFound), 0, nil
	}
	return res, elev, nil
}

// localDay returns the observer's calendar-day index for a Julian Day:
// the noon-to-noon day number after shifting by the longitude.
func localDay(jd float64, obs astro.Observer) float64 {
	return math.Floor(jd + obs.LonDeg/360 - 0.5)
}

// converge runs the hour-angle iteration from a seed instant. The
// returned elevation is the one at the converged instant (the transit
// elevation for evTransit).
func (s RiseSetSolver) converge(seed float64, body ephem.Body, obs astro.Observer, ev riseEvent) (Result, float64, error) {
	day := siderealDay / obs.EffectiveRotationRatio()
	lat := obs.LatDeg * astro.DegToRad
	lon := obs.LonDeg * astro.DegToRad

	t := seed
	var sawInRange, sawOutRange bool
	var lastCosH float64
	converged := false

	for i := 0; i < riseMaxIter; i++ {
		pos, err := s.Provider.Position(t, body, obs)
		if err != nil {
			return Result{}, 0, err
		}
		lst, err := s.Reduction.LocalSiderealTime(astro.NewEpoch(t, astro.ScaleTT), lon, nil, s.Warnings)
		if err != nil {
			return Result{}, 0, err
		}

		ha := astro.WrapPi(lst - pos.Equatorial.RA)
		tTransit := t - ha/astro.TwoPi*day

		next := tTransit
		if ev != evTransit {
			h0 := s.Twilight.targetElevation(pos.AngularRadius, obs.HorizonDip())
			cosH := (math.Sin(h0) - math.Sin(lat)*math.Sin(pos.Equatorial.Dec)) /
				(math.Cos(lat) * math.Cos(pos.Equatorial.Dec))
			lastCosH = cosH
			if cosH > 1 || cosH < -1 {
				sawOutRange = true
				if sawInRange {
					// Oscillating between geometries; the transit
					// fallback below decides.
					break
				}
				if i == riseMaxIter-1 {
					break
				}
				// Step half a rotation and re-examine: the declination
				// may move back into range.
				t = tTransit
				continue
			}
			sawInRange = true
			H := math.Acos(cosH)
			if ev == evRise {
				next = tTransit - H/astro.TwoPi*day
			} else {
				next = tTransit + H/astro.TwoPi*day
			}
		}

		if math.Abs(next-t) < risePrecision {
			t = next
			converged = true
			break
		}
		t = next
	}

	if ev != evTransit && sawOutRange {
		if sawInRange {
			// Mixed geometry across iterations: evaluate once at the
			// transit time and accept that root if it exists.
			return s.transitFallback(t, body, obs, ev)
		}
		if lastCosH > 1 {
			return notFound(AlwaysBelowHorizon), 0, nil
		}
		return notFound(Circumpolar), 0, nil
	}
	if !converged {
		return notFound(NoConvergence), 0, nil
	}

	elev, err := s.elevationAt(t, body, obs)
	if err != nil {
		return Result{}, 0, err
	}
	return found(t), elev, nil
}

// transitFallback retries the hour-angle solution a single time from
// the transit instant before giving up on a body that flickers across
// the circumpolar boundary.
func (s RiseSetSolver) transitFallback(tTransit float64, body ephem.Body, obs astro.Observer, ev riseEvent) (Result, float64, error) {
	lat := obs.LatDeg * astro.DegToRad
	day := siderealDay / obs.EffectiveRotationRatio()

	pos, err := s.Provider.Position(tTransit, body, obs)
	if err != nil {
		return Result{}, 0, err
	}
	h0 := s.Twilight.targetElevation(pos.AngularRadius, obs.HorizonDip())
	cosH := (math.Sin(h0) - math.Sin(lat)*math.Sin(pos.Equatorial.Dec)) /
		(math.Cos(lat) * math.Cos(pos.Equatorial.Dec))
	if cosH > 1 || cosH < -1 {
		return notFound(NoConvergence), 0, nil
	}

	H := math.Acos(cosH)
	t := tTransit - H/astro.TwoPi*day
	if ev == evSet {
		t = tTransit + H/astro.TwoPi*day
	}
	elev, err := s.elevationAt(t, body, obs)
	if err != nil {
		return Result{}, 0, err
	}
	return found(t), elev, nil
}

// elevationAt returns the body's elevation at an instant, radians.
func (s RiseSetSolver) elevationAt(jd float64, body ephem.Body, obs astro.Observer) (float64, error) {
	pos, err := s.Provider.Position(jd, body, obs)
	if err != nil {
		return 0, err
	}
	lst, err := s.Reduction.LocalSiderealTime(astro.NewEpoch(jd, astro.ScaleTT), obs.LonDeg*astro.DegToRad, nil, s.Warnings)
	if err != nil {
		return 0, err
	}
	return astro.EquatorialToHorizontal(pos.Equatorial, obs, lst).El, nil
}

// HourAngleAtElevation returns the hour angle H at which a body at
// declination dec reaches elevation h0 for an observer at latitude lat
// (all radians). The boolean outcomes mirror the solver sentinels:
// cosH above 1 means the body never reaches h0, below -1 it never
// drops to it.
func HourAngleAtElevation(lat, dec, h0 float64) (float64, Outcome) {
	cosH := (math.Sin(h0) - math.Sin(lat)*math.Sin(dec)) /
		(math.Cos(lat) * math.Cos(dec))
	switch {
	case cosH > 1:
		return 0, AlwaysBelowHorizon
	case cosH < -1:
		return 0, Circumpolar
	default:
		return math.Acos(cosH), Found
	}
}
