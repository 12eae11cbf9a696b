package events

import (
	"math"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

func TestSearchSeasonMeeus(t *testing.T) {
	// Meeus example 27.a: the June solstice of 1962 at
	// JDE 2437837.39245 (June 21, 21h25m08s TD).
	e := astro.NewEpoch(2437700.0, astro.ScaleTT) // 1962 Feb 4
	got := SearchSeason(e, JuneSolstice, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if math.Abs(got.Epoch.JD-2437837.39245) > 0.001 {
		t.Errorf("June solstice 1962 = %v, want 2437837.39245 (±0.001)", got.Epoch.JD)
	}
}

func TestSearchSeasonAround2000(t *testing.T) {
	// The March equinox of 2000 was on March 20 at 07:35 UTC.
	e := astro.NewEpoch(2451545.0, astro.ScaleTT) // 2000 Jan 1.5
	got := SearchSeason(e, MarchEquinox, SearchNext)
	if got.Outcome != Found {
		t.Fatal("March equinox not found")
	}
	if math.Abs(got.Epoch.JD-2451623.82) > 0.01 {
		t.Errorf("March equinox 2000 = %v, want ≈2451623.82", got.Epoch.JD)
	}

	// Previous December solstice: 1999 Dec 22, 07:44 UTC.
	prev := SearchSeason(e, DecemberSolstice, SearchPrevious)
	if prev.Outcome != Found || prev.Epoch.JD >= e.JD {
		t.Fatalf("previous December solstice: %v at %v", prev.Outcome, prev.Epoch.JD)
	}
	if math.Abs(prev.Epoch.JD-2451534.82) > 0.01 {
		t.Errorf("December solstice 1999 = %v, want ≈2451534.82", prev.Epoch.JD)
	}
}

func TestSeasonOrdering(t *testing.T) {
	// Within one year the four events run March → June → September →
	// December, roughly 90 days apart.
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)
	var jds [4]float64
	for i, s := range []Season{MarchEquinox, JuneSolstice, SeptemberEquinox, DecemberSolstice} {
		r := SearchSeason(e, s, SearchNext)
		if r.Outcome != Found {
			t.Fatalf("%s not found", s)
		}
		jds[i] = r.Epoch.JD
	}
	for i := 1; i < 4; i++ {
		gap := jds[i] - jds[i-1]
		if gap < 85 || gap > 95 {
			t.Errorf("gap %s→%s = %v days, want ≈90", Season(i-1), Season(i), gap)
		}
	}
}

func TestSearchSeasonClosest(t *testing.T) {
	// Two days after the March equinox, closest must pick the one just
	// passed rather than next year's.
	e := astro.NewEpoch(2451625.8, astro.ScaleTT)
	got := SearchSeason(e, MarchEquinox, SearchClosest)
	if got.Outcome != Found {
		t.Fatal("closest March equinox not found")
	}
	if math.Abs(got.Epoch.JD-2451623.82) > 0.01 {
		t.Errorf("closest equinox = %v, want the 2000 event ≈2451623.82", got.Epoch.JD)
	}
}

func TestSearchSunLongitude(t *testing.T) {
	// The provider-driven search must agree with the season table on the
	// equinox to within the solar theory accuracy (well under an hour).
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)
	table := SearchSeason(e, MarchEquinox, SearchNext)

	got, err := SearchSunLongitude(ephem.Analytic{}, e, 0, SearchNext)
	if err != nil {
		t.Fatalf("SearchSunLongitude: %v", err)
	}
	if got.Outcome != Found {
		t.Fatal("crossing not found")
	}
	if d := math.Abs(got.Epoch.JD - table.Epoch.JD); d > 0.05 {
		t.Errorf("provider equinox %v vs table %v, differ by %v days", got.Epoch.JD, table.Epoch.JD, d)
	}

	prev, err := SearchSunLongitude(ephem.Analytic{}, e, 0, SearchPrevious)
	if err != nil {
		t.Fatalf("SearchSunLongitude previous: %v", err)
	}
	if prev.Outcome != Found || prev.Epoch.JD >= e.JD {
		t.Fatalf("previous crossing: %v at %v", prev.Outcome, prev.Epoch.JD)
	}
	if d := got.Epoch.JD - prev.Epoch.JD; math.Abs(d-365.24) > 1 {
		t.Errorf("consecutive equinoxes %v days apart, want a tropical year", d)
	}
}

func TestSearchSunLongitudeSolarTerm(t *testing.T) {
	// A solar term not in the season table: λ = 45° (lichun-style term),
	// reached in early May.
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)
	got, err := SearchSunLongitude(ephem.Analytic{}, e, 45*astro.DegToRad, SearchNext)
	if err != nil {
		t.Fatalf("SearchSunLongitude: %v", err)
	}
	if got.Outcome != Found {
		t.Fatal("crossing not found")
	}
	// 2000 May 5 ± a couple of days.
	if got.Epoch.JD < 2451668 || got.Epoch.JD > 2451672 {
		t.Errorf("λ=45° crossing = %v, want early May 2000", got.Epoch.JD)
	}
}
