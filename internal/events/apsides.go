package events

import (
	"fmt"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// ApsisKind selects the near or far point of a planet's orbit.
type ApsisKind int

const (
	Perihelion ApsisKind = iota
	Aphelion
)

// String returns the apsis name.
func (a ApsisKind) String() string {
	if a == Aphelion {
		return "aphelion"
	}
	return "perihelion"
}

// Per-planet mean apsis tables: orbits per year, the reference year,
// and the quadratic instant polynomial in the orbit index k (integer k
// = perihelion, half-integer = aphelion).
type apsisTable struct {
	rate, refYear float64
	jd0, jd1, jd2 float64
}

var apsisTables = map[ephem.Body]apsisTable{
	ephem.BodyMercury: {4.15201, 2000.12, 2451590.257, 87.96934963, 0},
	ephem.BodyVenus:   {1.62549, 2000.53, 2451738.233, 224.7008188, -0.0000000327},
	ephem.BodyEarth:   {0.99997, 2000.01, 2451547.507, 365.2596358, 0.0000000156},
	ephem.BodyMars:    {0.53166, 2001.78, 2452195.026, 686.9957857, -0.0000001187},
	ephem.BodyJupiter: {0.08430, 2011.20, 2455636.936, 4332.897065, 0.0001367},
	ephem.BodySaturn:  {0.03393, 2003.52, 2452830.12, 10764.21676, 0.000827},
	ephem.BodyUranus:  {0.01190, 2051.1, 2470213.5, 30694.8767, -0.00541},
	ephem.BodyNeptune: {0.00607, 2047.5, 2468895.1, 60190.33, 0.03429},
}

// SearchApsis finds a planet's perihelion or aphelion relative to the
// epoch from the mean-orbit tables. Supported bodies are Mercury
// through Neptune (Earth here means the Earth-Moon barycenter).
func SearchApsis(e astro.Epoch, body ephem.Body, kind ApsisKind, mode SearchMode) (Result, error) {
	tab, ok := apsisTables[body]
	if !ok {
		return Result{}, fmt.Errorf("no apsis table for body %s", body)
	}

	jd := e.Convert(astro.ScaleTT).JD
	year := 2000.0 + (jd-astro.J2000)/365.25

	offset := 0.0
	if kind == Aphelion {
		offset = 0.5
	}
	estimate := func(k float64) float64 {
		kk := k + offset
		return tab.jd0 + kk*(tab.jd1+kk*tab.jd2)
	}
	k := roundCycle(tab.rate*(year-tab.refYear)-offset, mode)
	k = chooseCycle(estimate, k, jd, mode)

	return found(estimate(k)), nil
}
