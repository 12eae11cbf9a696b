package events

import (
	"math"

	"github.com/litescript/ls-almanac/internal/astro"
)

// EclipseType classifies an eclipse.
type EclipseType int

const (
	EclipseNone EclipseType = iota
	EclipsePenumbral
	EclipsePartial
	EclipseTotal
	EclipseAnnular
	EclipseHybrid
)

// String returns the classification name.
func (t EclipseType) String() string {
	switch t {
	case EclipseNone:
		return "none"
	case EclipsePenumbral:
		return "penumbral"
	case EclipsePartial:
		return "partial"
	case EclipseTotal:
		return "total"
	case EclipseAnnular:
		return "annular"
	case EclipseHybrid:
		return "hybrid"
	default:
		return "unknown"
	}
}

// LunarEclipse is a lunar eclipse search result. Magnitudes are in
// units of the lunar diameter; semidurations are minutes and are zero
// when the corresponding phase does not occur.
type LunarEclipse struct {
	Result
	Type               EclipseType
	PenumbralMagnitude float64
	UmbralMagnitude    float64
	Gamma              float64

	SemiDurPenumbral float64
	SemiDurPartial   float64
	SemiDurTotal     float64
}

// SolarEclipse is a solar eclipse search result, classified by the
// least-distance parameter gamma and the shadow-cone radius u. The
// partial magnitude is meaningful only for non-central eclipses.
type SolarEclipse struct {
	Result
	Type      EclipseType
	Gamma     float64
	U         float64
	Central   bool
	Magnitude float64
}

// Not every syzygy produces an eclipse, so the search walks cycle by
// cycle; the cap bounds the walk against malformed inputs. Eclipse
// seasons recur inside half a year, so the cap is generous.
const maxEclipseCycles = 60

// SearchLunarEclipse finds the lunar eclipse nearest the epoch in the
// requested direction, stepping full moon by full moon until one passes
// the existence test.
func SearchLunarEclipse(e astro.Epoch, mode SearchMode) LunarEclipse {
	jd := e.Convert(astro.ScaleTT).JD
	if mode == SearchClosest || mode == SearchCurrent {
		n := SearchLunarEclipse(e, SearchNext)
		p := SearchLunarEclipse(e, SearchPrevious)
		return closerLunar(jd, n, p)
	}

	k := seedEclipseCycle(jd, 0.5, mode)
	dk := 1.0
	if mode == SearchPrevious {
		dk = -1
	}
	for i := 0; i < maxEclipseCycles; i++ {
		// Full moons sit half a cycle past the integer lunation index.
		ec, ok := lunarEclipseAt(k + 0.5)
		if ok && ordered(jd, ec.Epoch.JD, mode) {
			return ec
		}
		k += dk
	}
	return LunarEclipse{Result: notFound(NotFound)}
}

// SearchSolarEclipse finds the solar eclipse nearest the epoch in the
// requested direction, stepping new moon by new moon.
func SearchSolarEclipse(e astro.Epoch, mode SearchMode) SolarEclipse {
	jd := e.Convert(astro.ScaleTT).JD
	if mode == SearchClosest || mode == SearchCurrent {
		n := SearchSolarEclipse(e, SearchNext)
		p := SearchSolarEclipse(e, SearchPrevious)
		return closerSolar(jd, n, p)
	}

	k := seedEclipseCycle(jd, 0, mode)
	dk := 1.0
	if mode == SearchPrevious {
		dk = -1
	}
	for i := 0; i < maxEclipseCycles; i++ {
		ec, ok := solarEclipseAt(k)
		if ok && ordered(jd, ec.Epoch.JD, mode) {
			return ec
		}
		k += dk
	}
	return SolarEclipse{Result: notFound(NotFound)}
}

func ordered(jd, event float64, mode SearchMode) bool {
	if mode == SearchNext {
		return event > jd
	}
	return event < jd
}

// seedEclipseCycle seeds the lunation index, backing off one cycle so
// the directional walk cannot skip an eclipse adjacent to the epoch.
func seedEclipseCycle(jd, offset float64, mode SearchMode) float64 {
	year := 2000.0 + (jd-astro.J2000)/365.25
	k := roundCycle(12.3685*(year-2000)-offset, mode)
	if mode == SearchNext {
		return k - 1
	}
	return k + 1
}

func closerLunar(jd float64, n, p LunarEclipse) LunarEclipse {
	if n.Outcome != Found {
		return p
	}
	if p.Outcome != Found {
		return n
	}
	if math.Abs(n.Epoch.JD-jd) < math.Abs(p.Epoch.JD-jd) {
		return n
	}
	return p
}

func closerSolar(jd float64, n, p SolarEclipse) SolarEclipse {
	if n.Outcome != Found {
		return p
	}
	if p.Outcome != Found {
		return n
	}
	if math.Abs(n.Epoch.JD-jd) < math.Abs(p.Epoch.JD-jd) {
		return n
	}
	return p
}

// eclipseElements holds the per-syzygy quantities shared by the lunar
// and solar existence tests.
type eclipseElements struct {
	jde     float64
	gamma   float64
	u       float64
	mp      float64 // Moon mean anomaly, degrees
	noSight bool    // Moon too far from the node
}

// elementsAt evaluates the eclipse elements for a cycle index k
// (integer for new moon, half-integer for full moon).
func elementsAt(k float64, solar bool) eclipseElements {
	T := k / 1236.85

	jde := 2451550.09766 + synodicMonth*k +
		0.00015437*T*T -
		0.000000150*T*T*T +
		0.00000000073*T*T*T*T

	E := 1 - 0.002516*T - 0.0000074*T*T

	m := astro.NormalizeDeg(2.5534 + 29.10535670*k -
		0.0000014*T*T - 0.00000011*T*T*T)
	mp := astro.NormalizeDeg(201.5643 + 385.81693528*k +
		0.0107582*T*T + 0.00001238*T*T*T - 0.000000058*T*T*T*T)
	f := astro.NormalizeDeg(160.7108 + 390.67050284*k -
		0.0016118*T*T - 0.00000227*T*T*T + 0.000000011*T*T*T*T)
	om := astro.NormalizeDeg(124.7746 - 1.56375588*k +
		0.0020672*T*T + 0.00000215*T*T*T)

	sin := func(deg float64) float64 { return math.Sin(deg * astro.DegToRad) }
	cos := func(deg float64) float64 { return math.Cos(deg * astro.DegToRad) }

	if math.Abs(sin(f)) > 0.36 {
		return eclipseElements{noSight: true}
	}

	f1 := f - 0.02665*sin(om)
	a1 := 299.77 + 0.107408*k - 0.009173*T*T

	t0 := -0.4065
	t1 := 0.1727
	if solar {
		t0, t1 = -0.4075, 0.1721
	}
	jde += t0*sin(mp) +
		t1*E*sin(m) +
		0.0161*sin(2*mp) -
		0.0097*sin(2*f1) +
		0.0073*E*sin(mp-m) -
		0.0050*E*sin(mp+m) -
		0.0023*sin(mp-2*f1) +
		0.0021*E*sin(2*m) +
		0.0012*sin(mp+2*f1) +
		0.0006*E*sin(2*mp+m) -
		0.0004*sin(3*mp) -
		0.0003*E*sin(m+2*f1) +
		0.0003*sin(a1) -
		0.0002*E*sin(m-2*f1) -
		0.0002*E*sin(2*mp-m) -
		0.0002*sin(om)

	p := 0.2070*E*sin(m) +
		0.0024*E*sin(2*m) -
		0.0392*sin(mp) +
		0.0116*sin(2*mp) -
		0.0073*E*sin(mp+m) +
		0.0067*E*sin(mp-m) +
		0.0118*sin(2*f1)

	q := 5.2207 -
		0.0048*E*cos(m) +
		0.0020*E*cos(2*m) -
		0.3299*cos(mp) -
		0.0060*E*cos(mp+m) +
		0.0041*E*cos(mp-m)

	w := math.Abs(cos(f1))
	gamma := (p*cos(f1) + q*sin(f1)) * (1 - 0.0048*w)
	u := 0.0059 + 0.0046*E*cos(m) - 0.0182*cos(mp) +
		0.0004*cos(2*mp) - 0.0005*cos(m+mp)

	return eclipseElements{jde: jde, gamma: gamma, u: u, mp: mp}
}

// lunarEclipseAt evaluates and classifies the full moon at half-integer
// cycle k; ok is false when no eclipse occurs that lunation.
func lunarEclipseAt(k float64) (LunarEclipse, bool) {
	el := elementsAt(k, false)
	if el.noSight {
		return LunarEclipse{}, false
	}
	ag := math.Abs(el.gamma)

	penMag := (1.5573 + el.u - ag) / 0.545
	umbMag := (1.0128 - el.u - ag) / 0.545
	if penMag < 0 {
		return LunarEclipse{}, false
	}

	typ := EclipsePenumbral
	switch {
	case umbMag >= 1:
		typ = EclipseTotal
	case umbMag > 0:
		typ = EclipsePartial
	}

	// Semidurations in minutes: phase radius over the Moon's hourly
	// motion through the shadow.
	n := 0.5458 + 0.0400*math.Cos(el.mp*astro.DegToRad)
	semiDur := func(radius float64) float64 {
		d := radius*radius - el.gamma*el.gamma
		if d <= 0 {
			return 0
		}
		return 60 / n * math.Sqrt(d)
	}

	return LunarEclipse{
		Result:             found(el.jde),
		Type:               typ,
		PenumbralMagnitude: penMag,
		UmbralMagnitude:    umbMag,
		Gamma:              el.gamma,
		SemiDurPenumbral:   semiDur(1.5573 + el.u),
		SemiDurPartial:     semiDur(1.0128 - el.u),
		SemiDurTotal:       semiDur(0.4678 - el.u),
	}, true
}

// solarEclipseAt evaluates and classifies the new moon at integer cycle
// k; ok is false when no eclipse occurs that lunation.
func solarEclipseAt(k float64) (SolarEclipse, bool) {
	el := elementsAt(k, true)
	if el.noSight {
		return SolarEclipse{}, false
	}
	ag := math.Abs(el.gamma)

	ec := SolarEclipse{Gamma: el.gamma, U: el.u}
	switch {
	case ag <= 0.9972:
		ec.Central = true
		switch {
		case el.u < 0:
			ec.Type = EclipseTotal
		case el.u > 0.0047:
			ec.Type = EclipseAnnular
		default:
			// Between the cone vertex and the surface: annular unless
			// the vertex pierces the surface along the track.
			omega := 0.00464 * math.Sqrt(1-el.gamma*el.gamma)
			if el.u < omega {
				ec.Type = EclipseHybrid
			} else {
				ec.Type = EclipseAnnular
			}
		}
	case ag < 1.5433+el.u:
		ec.Type = EclipsePartial
		ec.Magnitude = (1.5433 + el.u - ag) / (0.5461 + 2*el.u)
	default:
		return SolarEclipse{}, false
	}

	ec.Result = found(el.jde)
	return ec, true
}
