package events

import (
	"fmt"
	"math"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// fakeProvider adapts a closure to the ephemeris interface so aspect
// searches can run against exactly controlled geometry.
type fakeProvider struct {
	pos func(jdTT float64, body ephem.Body) (ephem.Position, error)
}

func (fakeProvider) Name() string              { return "fake" }
func (fakeProvider) Available(ephem.Body) bool { return true }
func (p fakeProvider) Position(jd float64, b ephem.Body, _ astro.Observer) (ephem.Position, error) {
	return p.pos(jd, b)
}

const fakeJD0 = 2451545.0

// linearSky models the Sun at 1°/day and a body with its own offset and
// rate, all on the ecliptic.
func linearSky(bodyID ephem.Body, lon0Deg, rateDeg, lat, dist, sunDist float64) fakeProvider {
	return fakeProvider{pos: func(jd float64, b ephem.Body) (ephem.Position, error) {
		t := jd - fakeJD0
		switch b {
		case ephem.BodySun:
			lon := astro.NormalizeRad(t * astro.DegToRad)
			return ephem.Position{
				Equatorial: astro.Spherical{RA: lon, Dec: 0, Dist: 1},
				EclLon:     lon,
			}, nil
		case bodyID:
			lon := astro.NormalizeRad((lon0Deg + rateDeg*t) * astro.DegToRad)
			return ephem.Position{
				Equatorial:  astro.Spherical{RA: lon, Dec: lat, Dist: dist},
				EclLon:      lon,
				EclLat:      lat,
				SunDistance: sunDist,
			}, nil
		default:
			return ephem.Position{}, fmt.Errorf("no fake ephemeris for %s", b)
		}
	}}
}

func TestSearchConjunction(t *testing.T) {
	// Venus starts 10° ahead of the Sun and gains 0.6°/day: the previous
	// conjunction was 16.67 days ago, the next one 583.33 days ahead
	// (when the lead wraps a full turn). Geocentric distance below the
	// Sun's makes it inferior.
	p := linearSky(ephem.BodyVenus, 10, 1.6, 0.02, 0.3, 0.72)
	e := astro.NewEpoch(fakeJD0, astro.ScaleTT)

	next, err := SearchConjunction(p, e, ephem.BodyVenus, SearchNext)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.Outcome != Found {
		t.Fatal("next conjunction not found")
	}
	if math.Abs(next.Epoch.JD-(fakeJD0+583.333)) > 0.01 {
		t.Errorf("next conjunction at %v, want %v", next.Epoch.JD, fakeJD0+583.333)
	}
	if !next.Inferior {
		t.Error("conjunction with the body closer than the Sun must be inferior")
	}
	if math.Abs(next.Separation-0.02) > 1e-3 {
		t.Errorf("separation = %v, want ≈0.02 (the latitude offset)", next.Separation)
	}

	prev, err := SearchConjunction(p, e, ephem.BodyVenus, SearchPrevious)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if math.Abs(prev.Epoch.JD-(fakeJD0-16.667)) > 0.01 {
		t.Errorf("previous conjunction at %v, want %v", prev.Epoch.JD, fakeJD0-16.667)
	}

	closest, err := SearchConjunction(p, e, ephem.BodyVenus, SearchClosest)
	if err != nil {
		t.Fatalf("closest: %v", err)
	}
	if closest.Epoch.JD != prev.Epoch.JD {
		t.Errorf("closest = %v, want the previous one at %v", closest.Epoch.JD, prev.Epoch.JD)
	}
}

func TestSearchConjunctionRejectsSunAndEarth(t *testing.T) {
	p := linearSky(ephem.BodyVenus, 0, 1.6, 0, 0.3, 0.72)
	e := astro.NewEpoch(fakeJD0, astro.ScaleTT)
	for _, b := range []ephem.Body{ephem.BodySun, ephem.BodyEarth} {
		if _, err := SearchConjunction(p, e, b, SearchNext); err == nil {
			t.Errorf("SearchConjunction(%s) should fail", b)
		}
	}
}

func TestSearchOpposition(t *testing.T) {
	// Mars starts 170° ahead of the Sun, falling behind at 0.5°/day:
	// opposition (180° ahead) was 20 days ago and recurs 700 days ahead.
	p := linearSky(ephem.BodyMars, 170, 0.5, 0, 1.6, 1.5)
	e := astro.NewEpoch(fakeJD0, astro.ScaleTT)

	next, err := SearchOpposition(p, e, ephem.BodyMars, SearchNext)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.Outcome != Found || math.Abs(next.Epoch.JD-(fakeJD0+700)) > 0.01 {
		t.Errorf("next opposition = %v at %v, want found at %v", next.Outcome, next.Epoch.JD, fakeJD0+700)
	}

	prev, err := SearchOpposition(p, e, ephem.BodyMars, SearchPrevious)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if prev.Outcome != Found || math.Abs(prev.Epoch.JD-(fakeJD0-20)) > 0.01 {
		t.Errorf("previous opposition = %v at %v, want found at %v", prev.Outcome, prev.Epoch.JD, fakeJD0-20)
	}

	for _, b := range []ephem.Body{ephem.BodyVenus, ephem.BodyMercury, ephem.BodySun, ephem.BodyEarth} {
		if _, err := SearchOpposition(p, e, b, SearchNext); err == nil {
			t.Errorf("SearchOpposition(%s) should fail", b)
		}
	}
}

func TestSearchMaxElongation(t *testing.T) {
	// Venus swings ±0.4 rad around the Sun on a 314-day period; the
	// next greatest elongation (evening side) peaks 78.5 days ahead.
	p := fakeProvider{pos: func(jd float64, b ephem.Body) (ephem.Position, error) {
		t := jd - fakeJD0
		sun := astro.NormalizeRad(t * astro.DegToRad)
		switch b {
		case ephem.BodySun:
			return ephem.Position{
				Equatorial: astro.Spherical{RA: sun, Dec: 0, Dist: 1},
				EclLon:     sun,
			}, nil
		case ephem.BodyVenus:
			lon := astro.NormalizeRad(sun + 0.4*math.Sin(0.02*t))
			return ephem.Position{
				Equatorial: astro.Spherical{RA: lon, Dec: 0, Dist: 0.7},
				EclLon:     lon,
			}, nil
		default:
			return ephem.Position{}, fmt.Errorf("no fake ephemeris for %s", b)
		}
	}}
	e := astro.NewEpoch(fakeJD0, astro.ScaleTT)

	next, err := SearchMaxElongation(p, e, ephem.BodyVenus, SearchNext)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if next.Outcome != Found {
		t.Fatal("greatest elongation not found")
	}
	if math.Abs(next.Epoch.JD-(fakeJD0+math.Pi/2/0.02)) > 0.1 {
		t.Errorf("greatest elongation at %v, want %v", next.Epoch.JD, fakeJD0+math.Pi/2/0.02)
	}
	if math.Abs(next.Elongation-0.4) > 1e-3 {
		t.Errorf("elongation = %v, want 0.4", next.Elongation)
	}
	if !next.East {
		t.Error("body east of the Sun at maximum, East should be true")
	}

	prev, err := SearchMaxElongation(p, e, ephem.BodyVenus, SearchPrevious)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if prev.Outcome != Found || prev.East {
		t.Errorf("previous elongation East = %v, want a western (morning) apparition", prev.East)
	}

	if _, err := SearchMaxElongation(p, e, ephem.BodyMars, SearchNext); err == nil {
		t.Error("SearchMaxElongation for an outer body should fail")
	}
}

func TestSearchPairConjunction(t *testing.T) {
	// Mars gains on Jupiter at 0.25°/day from 40° behind: conjunction
	// in 160 days.
	p := fakeProvider{pos: func(jd float64, b ephem.Body) (ephem.Position, error) {
		t := jd - fakeJD0
		switch b {
		case ephem.BodyMars:
			lon := astro.NormalizeRad((100 + 0.3*t) * astro.DegToRad)
			return ephem.Position{
				Equatorial: astro.Spherical{RA: lon, Dec: 0.01, Dist: 1.2},
				EclLon:     lon, EclLat: 0.01,
			}, nil
		case ephem.BodyJupiter:
			lon := astro.NormalizeRad((140 + 0.05*t) * astro.DegToRad)
			return ephem.Position{
				Equatorial: astro.Spherical{RA: lon, Dec: -0.01, Dist: 5.0},
				EclLon:     lon, EclLat: -0.01,
			}, nil
		default:
			return ephem.Position{}, fmt.Errorf("no fake ephemeris for %s", b)
		}
	}}
	e := astro.NewEpoch(fakeJD0, astro.ScaleTT)

	got, err := SearchPairConjunction(p, e, ephem.BodyMars, ephem.BodyJupiter, SearchNext)
	if err != nil {
		t.Fatalf("SearchPairConjunction: %v", err)
	}
	if got.Outcome != Found {
		t.Fatal("pair conjunction not found")
	}
	if math.Abs(got.Epoch.JD-(fakeJD0+160)) > 0.01 {
		t.Errorf("conjunction at %v, want %v", got.Epoch.JD, fakeJD0+160)
	}
	if math.Abs(got.Separation-0.02) > 1e-3 {
		t.Errorf("separation = %v, want ≈0.02", got.Separation)
	}

	if _, err := SearchPairConjunction(p, e, ephem.BodyMars, ephem.BodyMars, SearchNext); err == nil {
		t.Error("self-conjunction should fail")
	}
}
