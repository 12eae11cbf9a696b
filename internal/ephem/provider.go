// Package ephem defines the ephemeris provider boundary: event searches
// consume body positions through the Provider interface and stay agnostic
// of how they are computed.
package ephem

import (
	"github.com/litescript/ls-almanac/internal/astro"
)

// Body identifies a solar system body.
type Body int

const (
	BodySun Body = iota
	BodyMoon
	BodyMercury
	BodyVenus
	BodyEarth
	BodyMars
	BodyJupiter
	BodySaturn
	BodyUranus
	BodyNeptune
)

// String returns the body name.
func (b Body) String() string {
	switch b {
	case BodySun:
		return "Sun"
	case BodyMoon:
		return "Moon"
	case BodyMercury:
		return "Mercury"
	case BodyVenus:
		return "Venus"
	case BodyEarth:
		return "Earth"
	case BodyMars:
		return "Mars"
	case BodyJupiter:
		return "Jupiter"
	case BodySaturn:
		return "Saturn"
	case BodyUranus:
		return "Uranus"
	case BodyNeptune:
		return "Neptune"
	default:
		return "unknown"
	}
}

// Inner reports whether the body orbits inside Earth's orbit, which
// decides between inferior/superior conjunction geometry.
func (b Body) Inner() bool {
	return b == BodyMercury || b == BodyVenus
}

// Position is an apparent position at one instant, as seen from the
// observer (geocentric when the observer is the zero value).
type Position struct {
	// Equatorial holds apparent RA/Dec in radians and distance in AU.
	Equatorial astro.Spherical

	// EclLon and EclLat are apparent geocentric ecliptic coordinates in
	// radians, of date.
	EclLon, EclLat float64

	// AngularRadius is the body's semidiameter in radians.
	AngularRadius float64

	// SunDistance is the body's heliocentric distance in AU (zero for
	// the Sun itself).
	SunDistance float64
}

// Provider supplies apparent positions for bodies. Implementations are
// pure functions of their arguments and safe for concurrent use.
type Provider interface {
	// Name returns the provider name for display and logging.
	Name() string

	// Position returns the apparent position of body at a TT Julian Day
	// for the given observer. A zero-value observer means geocentric.
	Position(jdTT float64, body Body, obs astro.Observer) (Position, error)

	// Available reports whether the provider can supply the body.
	Available(body Body) bool
}
