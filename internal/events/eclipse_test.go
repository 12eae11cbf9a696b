package events

import (
	"math"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
)

func TestSearchLunarEclipseMeeus(t *testing.T) {
	// Meeus's worked case: the penumbral lunar eclipse of 1973 June 15
	// at JDE 2441849.3687, penumbral magnitude 0.462.
	e := astro.NewEpoch(2441800.0, astro.ScaleTT) // 1973 Apr 27
	got := SearchLunarEclipse(e, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if math.Abs(got.Epoch.JD-2441849.3687) > 0.01 {
		t.Errorf("JDE = %v, want 2441849.3687 (±0.01)", got.Epoch.JD)
	}
	if got.Type != EclipsePenumbral {
		t.Errorf("type = %s, want penumbral", got.Type)
	}
	if math.Abs(got.PenumbralMagnitude-0.462) > 0.02 {
		t.Errorf("penumbral magnitude = %v, want 0.462 (±0.02)", got.PenumbralMagnitude)
	}
	if got.UmbralMagnitude >= 0 {
		t.Errorf("umbral magnitude = %v, want negative for a penumbral eclipse", got.UmbralMagnitude)
	}
}

func TestSearchLunarEclipseTotal2000(t *testing.T) {
	// The total lunar eclipse of 2000 January 21, around 04:44 UTC.
	e := astro.NewEpoch(2451550.0, astro.ScaleTT)
	got := SearchLunarEclipse(e, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if math.Abs(got.Epoch.JD-2451564.70) > 0.05 {
		t.Errorf("JDE = %v, want ≈2451564.70", got.Epoch.JD)
	}
	if got.Type != EclipseTotal {
		t.Errorf("type = %s, want total", got.Type)
	}
	if got.UmbralMagnitude < 1 {
		t.Errorf("umbral magnitude = %v, want ≥1 for a total eclipse", got.UmbralMagnitude)
	}
	if got.SemiDurTotal <= 0 || got.SemiDurPartial <= got.SemiDurTotal ||
		got.SemiDurPenumbral <= got.SemiDurPartial {
		t.Errorf("semidurations must nest: penumbral %v > partial %v > total %v",
			got.SemiDurPenumbral, got.SemiDurPartial, got.SemiDurTotal)
	}
}

func TestSearchSolarEclipseMeeus(t *testing.T) {
	// Meeus's worked case: the partial solar eclipse of 1993 May 21,
	// maximum near 14:21 TD at JDE 2449129.0979 (the mean new moon falls
	// half a day earlier), magnitude 0.740 in the northern hemisphere.
	e := astro.NewEpoch(2449100.0, astro.ScaleTT) // 1993 Apr 22
	got := SearchSolarEclipse(e, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if math.Abs(got.Epoch.JD-2449129.0979) > 0.01 {
		t.Errorf("JDE = %v, want 2449129.0979 (±0.01)", got.Epoch.JD)
	}
	if got.Type != EclipsePartial {
		t.Errorf("type = %s, want partial", got.Type)
	}
	if got.Central {
		t.Error("a partial eclipse is not central")
	}
	if math.Abs(got.Magnitude-0.740) > 0.01 {
		t.Errorf("magnitude = %v, want 0.740 (±0.01)", got.Magnitude)
	}
	if got.Gamma < 1.13 || got.Gamma > 1.14 {
		t.Errorf("gamma = %v, want ≈1.1348", got.Gamma)
	}
}

func TestSearchSolarEclipseTotal1999(t *testing.T) {
	// The total solar eclipse of 1999 August 11, around 11:03 UTC.
	e := astro.NewEpoch(2451380.0, astro.ScaleTT) // 1999 Jul 20
	got := SearchSolarEclipse(e, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if math.Abs(got.Epoch.JD-2451401.96) > 0.05 {
		t.Errorf("JDE = %v, want ≈2451401.96", got.Epoch.JD)
	}
	if got.Type != EclipseTotal || !got.Central {
		t.Errorf("type = %s central=%v, want a central total eclipse", got.Type, got.Central)
	}
}

func TestSearchEclipseDirections(t *testing.T) {
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)

	next := SearchLunarEclipse(e, SearchNext)
	prev := SearchLunarEclipse(e, SearchPrevious)
	if next.Outcome != Found || prev.Outcome != Found {
		t.Fatal("eclipses around J2000 must exist within the search window")
	}
	if next.Epoch.JD <= e.JD {
		t.Errorf("next eclipse at %v is not after %v", next.Epoch.JD, e.JD)
	}
	if prev.Epoch.JD >= e.JD {
		t.Errorf("previous eclipse at %v is not before %v", prev.Epoch.JD, e.JD)
	}

	closest := SearchLunarEclipse(e, SearchClosest)
	want := next
	if math.Abs(prev.Epoch.JD-e.JD) < math.Abs(next.Epoch.JD-e.JD) {
		want = prev
	}
	if closest.Epoch.JD != want.Epoch.JD {
		t.Errorf("closest = %v, want the nearer of %v and %v",
			closest.Epoch.JD, prev.Epoch.JD, next.Epoch.JD)
	}
}

func TestEclipsesSkipOrdinarySyzygies(t *testing.T) {
	// Most lunations carry no eclipse: the gap between consecutive
	// solar eclipses is one to six months, never less than 28 days.
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)
	first := SearchSolarEclipse(e, SearchNext)
	if first.Outcome != Found {
		t.Fatal("no next solar eclipse found")
	}
	second := SearchSolarEclipse(first.Epoch, SearchNext)
	if second.Outcome != Found {
		t.Fatal("no second solar eclipse found")
	}
	gap := second.Epoch.JD - first.Epoch.JD
	if gap < 28 || gap > 185 {
		t.Errorf("consecutive solar eclipses %v days apart, want within an eclipse-season spacing", gap)
	}
}
