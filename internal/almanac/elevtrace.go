package almanac

import (
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
)

// ElevationSample is one elevation measurement at a point in time.
type ElevationSample struct {
	Time      time.Time
	Elevation float64 // degrees above horizon
}

// ElevationTrace contains elevation samples for a body over a window,
// used for the elevation sparkline and for eyeballing a day's arc.
type ElevationTrace struct {
	Body        ephem.Body
	Samples     []ElevationSample
	GeneratedAt time.Time
	WindowStart time.Time
	WindowEnd   time.Time
}

// ElevationTraceInterval is the time between samples.
const ElevationTraceInterval = 10 * time.Minute

// ComputeElevationTrace samples a body's elevation from the observer
// across [start, end].
func (pl *Planner) ComputeElevationTrace(body ephem.Body, obs astro.Observer, start, end, now time.Time) (*ElevationTrace, error) {
	trace := &ElevationTrace{
		Body:        body,
		GeneratedAt: now,
		WindowStart: start,
		WindowEnd:   end,
	}
	if !pl.Provider.Available(body) {
		return trace, nil
	}

	lon := obs.LonDeg * astro.DegToRad
	for t := start; !t.After(end); t = t.Add(ElevationTraceInterval) {
		jd := astro.EpochFromTime(t).Convert(astro.ScaleTT)
		pos, err := pl.Provider.Position(jd.JD, body, obs)
		if err != nil {
			return nil, err
		}
		lst, err := pl.Reduction.LocalSiderealTime(jd, lon, nil, nil)
		if err != nil {
			return nil, err
		}
		h := astro.EquatorialToHorizontal(pos.Equatorial, obs, lst)
		trace.Samples = append(trace.Samples, ElevationSample{
			Time:      t,
			Elevation: h.El * astro.RadToDeg,
		})
	}
	return trace, nil
}

// CurrentElevation returns the sample closest to the given time, or nil
// when the trace is empty.
func (t *ElevationTrace) CurrentElevation(now time.Time) *ElevationSample {
	if len(t.Samples) == 0 {
		return nil
	}

	var closest *ElevationSample
	minDelta := time.Duration(1<<63 - 1)
	for i := range t.Samples {
		delta := t.Samples[i].Time.Sub(now)
		if delta < 0 {
			delta = -delta
		}
		if delta < minDelta {
			minDelta = delta
			closest = &t.Samples[i]
		}
	}
	return closest
}
