package astro

import (
	"fmt"
	"math"
	"time"
)

// TimeScale identifies the time scale a Julian Day value is expressed in.
type TimeScale int

const (
	ScaleTT TimeScale = iota
	ScaleTDB
	ScaleUT1
	ScaleUTC
)

// String returns the conventional abbreviation for the scale.
func (s TimeScale) String() string {
	switch s {
	case ScaleTT:
		return "TT"
	case ScaleTDB:
		return "TDB"
	case ScaleUT1:
		return "UT1"
	case ScaleUTC:
		return "UTC"
	default:
		return "unknown"
	}
}

// Reference epochs as Julian Day numbers.
const (
	// J2000 is the standard epoch J2000.0 (2000 January 1.5 TT).
	J2000 = 2451545.0

	// B1950 is the Besselian epoch B1950.0.
	B1950 = 2433282.42345905

	// JulianCentury is the length of a Julian century in days.
	JulianCentury = 36525.0

	// TropicalCentury is the length of a tropical century in days,
	// used by the Newcomb precession and FK4 reductions.
	TropicalCentury = 36524.2198782
)

// Epoch is a Julian Day number tagged with its time scale.
// Arithmetic between two Epochs is only meaningful when both carry the
// same scale; Sub enforces this.
type Epoch struct {
	JD    float64
	Scale TimeScale
}

// NewEpoch returns an epoch for the given Julian Day and scale.
func NewEpoch(jd float64, scale TimeScale) Epoch {
	return Epoch{JD: jd, Scale: scale}
}

// EpochFromTime converts a wall-clock time to a UTC epoch.
func EpochFromTime(t time.Time) Epoch {
	return Epoch{JD: JulianDate(t), Scale: ScaleUTC}
}

// Time converts the epoch back to a time.Time. The scale tag is dropped;
// sub-second scale offsets are ignored for presentation purposes.
func (e Epoch) Time() time.Time {
	return JDToTime(e.JD)
}

// Add returns the epoch shifted by the given number of days on the same scale.
func (e Epoch) Add(days float64) Epoch {
	return Epoch{JD: e.JD + days, Scale: e.Scale}
}

// Sub returns the difference e - o in days. It fails if the epochs are on
// different time scales; convert one of them first.
func (e Epoch) Sub(o Epoch) (float64, error) {
	if e.Scale != o.Scale {
		return 0, fmt.Errorf("epoch subtraction across time scales %s and %s", e.Scale, o.Scale)
	}
	return e.JD - o.JD, nil
}

// JulianCenturies returns Julian centuries elapsed since J2000.0.
func (e Epoch) JulianCenturies() float64 {
	return (e.JD - J2000) / JulianCentury
}

// Convert moves the epoch onto another time scale using the ΔT model below.
// TT and TDB are treated as identical at this precision (their periodic
// difference stays under 2 ms); UT1 and UTC are likewise merged, so the
// only real shift applied is ΔT between the terrestrial and universal pairs.
func (e Epoch) Convert(to TimeScale) Epoch {
	if e.Scale == to {
		return e
	}
	fromUniversal := e.Scale == ScaleUT1 || e.Scale == ScaleUTC
	toUniversal := to == ScaleUT1 || to == ScaleUTC
	jd := e.JD
	switch {
	case fromUniversal && !toUniversal:
		jd += DeltaTSeconds(jd) / 86400
	case !fromUniversal && toUniversal:
		jd -= DeltaTSeconds(jd) / 86400
	}
	return Epoch{JD: jd, Scale: to}
}

// DeltaTSeconds estimates ΔT = TT - UT1 in seconds for the given Julian Day.
// Near the present it uses the quadratic fit for 2005-2050; far from it the
// long-term parabola -20 + 32u² (u in centuries from 1820) takes over.
func DeltaTSeconds(jd float64) float64 {
	y := 2000 + (jd-J2000)/365.25
	if y >= 2005 && y < 2050 {
		t := y - 2000
		return 62.92 + 0.32217*t + 0.005589*t*t
	}
	if y >= 1986 && y < 2005 {
		t := y - 2000
		return 63.86 + 0.3345*t - 0.060374*t*t + 0.0017275*t*t*t +
			0.000651814*t*t*t*t + 0.00002373599*t*t*t*t*t
	}
	u := (y - 1820) / 100
	return -20 + 32*u*u
}

// JulianDate returns the Julian Day number for a wall-clock time.
func JulianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year.
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction.
	a := math.Floor(y / 100)
	b := 2 - a + math.Floor(a/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + b - 1524.5
}

// JDToTime converts a Julian Day number to a UTC time.Time.
func JDToTime(jd float64) time.Time {
	z := math.Floor(jd + 0.5)
	f := jd + 0.5 - z

	a := z
	if z >= 2299161 {
		alpha := math.Floor((z - 1867216.25) / 36524.25)
		a = z + 1 + alpha - math.Floor(alpha/4)
	}
	b := a + 1524
	c := math.Floor((b - 122.1) / 365.25)
	d := math.Floor(365.25 * c)
	e := math.Floor((b - d) / 30.6001)

	day := b - d - math.Floor(30.6001*e) + f
	month := e - 1
	if e >= 14 {
		month = e - 13
	}
	year := c - 4716
	if month <= 2 {
		year = c - 4715
	}

	dayInt := math.Floor(day)
	frac := day - dayInt
	secs := frac * 86400
	h := math.Floor(secs / 3600)
	secs -= h * 3600
	min := math.Floor(secs / 60)
	secs -= min * 60
	sec := math.Floor(secs)
	ns := (secs - sec) * 1e9

	return time.Date(int(year), time.Month(month), int(dayInt),
		int(h), int(min), int(sec), int(ns), time.UTC)
}
