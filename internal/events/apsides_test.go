package events

import (
	"math"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

func TestSearchApsisEarth(t *testing.T) {
	// Earth reached perihelion on 2000 January 3 and aphelion half an
	// orbit later in early July.
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)

	peri, err := SearchApsis(e, ephem.BodyEarth, Perihelion, SearchClosest)
	if err != nil {
		t.Fatalf("SearchApsis: %v", err)
	}
	if peri.Outcome != Found {
		t.Fatal("perihelion not found")
	}
	if math.Abs(peri.Epoch.JD-2451547.5) > 1 {
		t.Errorf("Earth perihelion 2000 = %v, want ≈2451547.5 (mean-orbit accuracy)", peri.Epoch.JD)
	}

	aph, err := SearchApsis(e, ephem.BodyEarth, Aphelion, SearchNext)
	if err != nil {
		t.Fatalf("SearchApsis: %v", err)
	}
	d := aph.Epoch.JD - peri.Epoch.JD
	if math.Abs(d-365.26/2) > 2 {
		t.Errorf("aphelion %v days after perihelion, want about half an orbit", d)
	}
}

func TestSearchApsisMeeus(t *testing.T) {
	// Meeus chapter 38: the Venus perihelion of 1978 December 31 at
	// JDE 2443873.704 (k = -35).
	e := astro.NewEpoch(2443850.0, astro.ScaleTT) // 1978 Dec 7
	got, err := SearchApsis(e, ephem.BodyVenus, Perihelion, SearchNext)
	if err != nil {
		t.Fatalf("SearchApsis: %v", err)
	}
	if math.Abs(got.Epoch.JD-2443873.704) > 0.1 {
		t.Errorf("Venus perihelion = %v, want 2443873.704 (±0.1)", got.Epoch.JD)
	}
}

func TestSearchApsisModes(t *testing.T) {
	e := astro.NewEpoch(2455000.0, astro.ScaleTT) // 2009 Jun 17

	next, err := SearchApsis(e, ephem.BodyMars, Perihelion, SearchNext)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	prev, err := SearchApsis(e, ephem.BodyMars, Perihelion, SearchPrevious)
	if err != nil {
		t.Fatalf("previous: %v", err)
	}
	if next.Epoch.JD <= e.JD || prev.Epoch.JD >= e.JD {
		t.Fatalf("next %v / previous %v do not bracket %v", next.Epoch.JD, prev.Epoch.JD, e.JD)
	}
	// One Mars orbit apart.
	if d := next.Epoch.JD - prev.Epoch.JD; math.Abs(d-686.99) > 1 {
		t.Errorf("consecutive Mars perihelia %v days apart, want ≈687", d)
	}

	closest, err := SearchApsis(e, ephem.BodyMars, Perihelion, SearchClosest)
	if err != nil {
		t.Fatalf("closest: %v", err)
	}
	want := next.Epoch.JD
	if math.Abs(prev.Epoch.JD-e.JD) < math.Abs(next.Epoch.JD-e.JD) {
		want = prev.Epoch.JD
	}
	if closest.Epoch.JD != want {
		t.Errorf("closest = %v, want %v", closest.Epoch.JD, want)
	}
}

func TestSearchApsisUnsupportedBody(t *testing.T) {
	e := astro.NewEpoch(2451545.0, astro.ScaleTT)
	for _, b := range []ephem.Body{ephem.BodySun, ephem.BodyMoon} {
		if _, err := SearchApsis(e, b, Perihelion, SearchNext); err == nil {
			t.Errorf("SearchApsis(%s) should fail", b)
		}
	}
}
