package events

import (
	"math"
	"testing"

	"github.com/litescript/ls-almanac/internal/astro"
)

func TestSearchMoonPhaseMeeus(t *testing.T) {
	// Meeus example 49.a: the new moon of 1977 February 18 at
	// JDE 2443192.65118.
	e := astro.NewEpoch(2443185.0, astro.ScaleTT) // 1977 Feb 10
	got := SearchMoonPhase(e, NewMoon, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if got.Phase != NewMoon {
		t.Errorf("phase = %s, want new moon", got.Phase)
	}
	if math.Abs(got.Epoch.JD-2443192.65118) > 0.001 {
		t.Errorf("new moon JDE = %v, want 2443192.65118 (±0.001)", got.Epoch.JD)
	}
}

func TestSearchMoonPhaseQuarter(t *testing.T) {
	// Meeus example 49.b: the last quarter of 2044 January 21 at
	// JDE 2467636.49186, exercising the quarter series with its W term.
	e := astro.NewEpoch(2467610.0, astro.ScaleTT) // 2043 Dec 26
	got := SearchMoonPhase(e, LastQuarter, SearchNext)

	if got.Outcome != Found {
		t.Fatalf("outcome = %s, want found", got.Outcome)
	}
	if math.Abs(got.Epoch.JD-2467636.49186) > 0.01 {
		t.Errorf("last quarter JDE = %v, want 2467636.49186 (±0.01)", got.Epoch.JD)
	}
}

func TestSearchMoonPhaseModes(t *testing.T) {
	// Around 2000 January: full moon on Jan 21, new moons on Jan 6 and
	// Feb 5.
	e := astro.NewEpoch(2451550.0, astro.ScaleTT) // 2000 Jan 6.5

	next := SearchMoonPhase(e, FullMoon, SearchNext)
	if next.Outcome != Found || next.Epoch.JD <= e.JD {
		t.Fatalf("next full moon: outcome %s at %v, want after %v", next.Outcome, next.Epoch.JD, e.JD)
	}
	// The full moon of 2000 Jan 21 was at about 04:40 UTC.
	if math.Abs(next.Epoch.JD-2451564.70) > 0.01 {
		t.Errorf("next full moon JDE = %v, want ≈2451564.70", next.Epoch.JD)
	}

	prev := SearchMoonPhase(e, FullMoon, SearchPrevious)
	if prev.Outcome != Found || prev.Epoch.JD >= e.JD {
		t.Fatalf("previous full moon: outcome %s at %v, want before %v", prev.Outcome, prev.Epoch.JD, e.JD)
	}
	if next.Epoch.JD-prev.Epoch.JD < 28 || next.Epoch.JD-prev.Epoch.JD > 31 {
		t.Errorf("consecutive full moons %v apart, want one synodic month", next.Epoch.JD-prev.Epoch.JD)
	}

	closest := SearchMoonPhase(e, FullMoon, SearchClosest)
	if closest.Outcome != Found {
		t.Fatal("closest full moon not found")
	}
	wantJD := next.Epoch.JD
	if math.Abs(prev.Epoch.JD-e.JD) < math.Abs(next.Epoch.JD-e.JD) {
		wantJD = prev.Epoch.JD
	}
	if closest.Epoch.JD != wantJD {
		t.Errorf("closest full moon = %v, want the nearer of %v and %v",
			closest.Epoch.JD, prev.Epoch.JD, next.Epoch.JD)
	}
}

func TestSearchMoonPhaseNearBoundary(t *testing.T) {
	// Start exactly on a phase instant: next must move a full cycle
	// forward, previous a full cycle back.
	e := astro.NewEpoch(2443185.0, astro.ScaleTT)
	onPhase := SearchMoonPhase(e, NewMoon, SearchNext)
	at := onPhase.Epoch

	next := SearchMoonPhase(at, NewMoon, SearchNext)
	if d := next.Epoch.JD - at.JD; d < 28 || d > 31 {
		t.Errorf("next new moon from a new moon is %v days later, want a synodic month", d)
	}
	prev := SearchMoonPhase(at, NewMoon, SearchPrevious)
	if d := at.JD - prev.Epoch.JD; d < 28 || d > 31 {
		t.Errorf("previous new moon from a new moon is %v days earlier, want a synodic month", d)
	}
}

func TestPhaseSpacing(t *testing.T) {
	// The four principal phases from one instant are spaced by about a
	// quarter month each, in order new → first → full → last.
	e := astro.NewEpoch(2451550.3, astro.ScaleTT)

	var jds [4]float64
	for i, p := range []MoonPhase{NewMoon, FirstQuarter, FullMoon, LastQuarter} {
		r := SearchMoonPhase(e, p, SearchNext)
		if r.Outcome != Found {
			t.Fatalf("%s not found", p)
		}
		jds[i] = r.Epoch.JD
	}

	// Jan 6.5 was a new moon; from Jan 6.8 the next phases run in cycle
	// order and each pair is separated by roughly 7.4 days modulo the
	// month.
	for i := 1; i < 4; i++ {
		gap := math.Mod(jds[i]-jds[0]+synodicMonth, synodicMonth)
		want := float64(i) * synodicMonth / 4
		if math.Abs(gap-want) > 1.5 {
			t.Errorf("%v: phase %d is %v days after new moon, want ≈%v", jds, i, gap, want)
		}
	}
}
