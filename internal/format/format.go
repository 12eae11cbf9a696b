// Package format renders angles and instants for terminal output.
// Everything here is presentation only; the computation packages stay
// in radians and Julian Days.
package format

import (
	"fmt"

	"github.com/soniakeys/sexagesimal"
	"github.com/soniakeys/unit"

	"github.com/litescript/ls-almanac/internal/astro"
)

// RA renders right ascension in radians as sexagesimal hours.
func RA(rad float64) string {
	return fmt.Sprintf("%.1v", sexa.FmtRA(unit.RA(rad)))
}

// Dec renders declination in radians as a signed sexagesimal angle.
func Dec(rad float64) string {
	return fmt.Sprintf("%.0v", sexa.FmtAngle(unit.Angle(rad)))
}

// Angle renders a general angle in radians sexagesimally.
func Angle(rad float64) string {
	return fmt.Sprintf("%.0v", sexa.FmtAngle(unit.Angle(rad)))
}

// Deg renders an angle in radians as decimal degrees.
func Deg(rad float64) string {
	return fmt.Sprintf("%.4f°", rad*astro.RadToDeg)
}

// JD renders a Julian Day as a UTC calendar instant to the second.
func JD(jd float64) string {
	return astro.JDToTime(jd).Format("2006-01-02 15:04:05 UTC")
}

// Epoch renders an Epoch as a UTC calendar instant, converting the
// time scale first.
func Epoch(e astro.Epoch) string {
	return JD(e.Convert(astro.ScaleUTC).JD)
}
