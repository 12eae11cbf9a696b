package astro

import "math"

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg    float64 // latitude in degrees, north positive
	LonDeg    float64 // longitude in degrees, east positive
	AltMeters float64 // height above the reference surface, for horizon dip

	// RotationRatio is the observer body's sidereal rotation rate as a
	// multiple of Earth's. Zero means Earth (ratio 1); rise/set interval
	// scaling for observers on other bodies uses it.
	RotationRatio float64

	Name string
}

// EffectiveRotationRatio returns RotationRatio with the zero value
// meaning Earth.
func (o Observer) EffectiveRotationRatio() float64 {
	if o.RotationRatio == 0 {
		return 1
	}
	return o.RotationRatio
}

// HorizonDip returns the depression of the apparent horizon in radians
// for the observer's altitude: 1.76′ per square-root metre.
func (o Observer) HorizonDip() float64 {
	if o.AltMeters <= 0 {
		return 0
	}
	return 1.76 / 60 * math.Sqrt(o.AltMeters) * DegToRad
}

// Horizontal holds observer-relative horizontal coordinates in radians.
// Azimuth follows the survey convention: 0 = north, π/2 = east.
type Horizontal struct {
	Az, El float64
}

// EquatorialToHorizontal converts an apparent equatorial direction to
// horizontal coordinates, given the local apparent sidereal time in
// radians.
func EquatorialToHorizontal(pos Spherical, obs Observer, lst float64) Horizontal {
	lat := obs.LatDeg * DegToRad
	ha := lst - pos.RA

	sinEl := math.Sin(pos.Dec)*math.Sin(lat) + math.Cos(pos.Dec)*math.Cos(lat)*math.Cos(ha)
	el := math.Asin(clamp1(sinEl))

	cosAz := (math.Sin(pos.Dec) - math.Sin(el)*math.Sin(lat)) / (math.Cos(el) * math.Cos(lat))
	az := math.Acos(clamp1(cosAz))
	// Positive hour angle puts the object west of the meridian.
	if math.Sin(ha) > 0 {
		az = TwoPi - az
	}
	return Horizontal{Az: az, El: el}
}
