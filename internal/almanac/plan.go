package almanac

import (
	"fmt"
	"sort"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
	"github.com/litescript/ls-almanac/internal/logging"
)

// Planner computes almanac days against an ephemeris provider.
type Planner struct {
	Provider  ephem.Provider
	Reduction astro.Reduction
	Log       *logging.Logger
}

// NewPlanner returns a Planner with a discarding logger.
func NewPlanner(p ephem.Provider, r astro.Reduction) *Planner {
	return &Planner{Provider: p, Reduction: r, Log: logging.Discard()}
}

// The twilight passes computed for the Sun, dawn and dusk each.
var twilightPasses = []struct {
	name string
	def  events.Twilight
}{
	{"astronomical", events.TwilightAstronomical},
	{"nautical", events.TwilightNautical},
	{"civil", events.TwilightCivil},
}

// ComputeDay builds the almanac for the calendar day containing date
// (taken as UTC) at the observer. now drives the past/next status tags.
func (pl *Planner) ComputeDay(date time.Time, obs astro.Observer, now time.Time) (*Day, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	epoch := astro.EpochFromTime(dayStart.Add(12 * time.Hour)).Convert(astro.ScaleTT)
	startTT, endTT := dayWindowTT(dayStart)

	day := &Day{
		Date:        dayStart,
		Observer:    obs,
		GeneratedAt: now,
	}
	warn := &astro.Warnings{}

	for _, body := range []ephem.Body{ephem.BodySun, ephem.BodyMoon} {
		if !pl.Provider.Available(body) {
			pl.Log.Warn("provider %s cannot supply %s, skipping", pl.Provider.Name(), body)
			continue
		}
		solver := events.RiseSetSolver{
			Provider:  pl.Provider,
			Reduction: pl.Reduction,
			Twilight:  events.TwilightHorizon,
			Warnings:  warn,
		}
		rs, err := solver.Solve(epoch, body, obs, events.SearchCurrent)
		if err != nil {
			return nil, fmt.Errorf("rise/set for %s: %w", body, err)
		}
		name := "sun"
		if body == ephem.BodyMoon {
			name = "moon"
		}
		day.Records = append(day.Records,
			Record{Kind: name + "rise", Body: body, Outcome: rs.Rise.Outcome, Time: rs.Rise.Epoch},
			Record{Kind: name + " transit", Body: body, Outcome: rs.Transit.Outcome, Time: rs.Transit.Epoch,
				Detail: fmt.Sprintf("elevation %.1f°", rs.TransitElevation*astro.RadToDeg)},
			Record{Kind: name + "set", Body: body, Outcome: rs.Set.Outcome, Time: rs.Set.Epoch},
		)
	}

	if pl.Provider.Available(ephem.BodySun) {
		for _, tw := range twilightPasses {
			solver := events.RiseSetSolver{
				Provider:  pl.Provider,
				Reduction: pl.Reduction,
				Twilight:  tw.def,
				Warnings:  warn,
			}
			rs, err := solver.Solve(epoch, ephem.BodySun, obs, events.SearchCurrent)
			if err != nil {
				return nil, fmt.Errorf("%s twilight: %w", tw.name, err)
			}
			day.Records = append(day.Records,
				Record{Kind: tw.name + " dawn", Body: ephem.BodySun, Outcome: rs.Rise.Outcome, Time: rs.Rise.Epoch},
				Record{Kind: tw.name + " dusk", Body: ephem.BodySun, Outcome: rs.Set.Outcome, Time: rs.Set.Epoch},
			)
		}
	}

	pl.addCycleEvents(day, startTT, endTT.JD)

	sortRecords(day.Records)
	classifyRecords(day.Records, now)
	day.Warnings = warn.Messages()
	return day, nil
}

// dayWindowTT converts the UTC calendar-day bounds starting at dayStart
// into the dynamical scale the event searches run on.
func dayWindowTT(dayStart time.Time) (start, end astro.Epoch) {
	start = astro.EpochFromTime(dayStart).Convert(astro.ScaleTT)
	end = astro.EpochFromTime(dayStart.Add(24 * time.Hour)).Convert(astro.ScaleTT)
	return start, end
}

// addCycleEvents appends phase, season, apsis and eclipse records that
// land inside the day bounded by start and endJD, both TT.
func (pl *Planner) addCycleEvents(day *Day, start astro.Epoch, endJD float64) {
	inDay := func(r events.Result) bool {
		return r.Outcome == events.Found && r.Epoch.JD >= start.JD && r.Epoch.JD < endJD
	}

	for _, phase := range []events.MoonPhase{events.NewMoon, events.FirstQuarter, events.FullMoon, events.LastQuarter} {
		if pr := events.SearchMoonPhase(start, phase, events.SearchNext); inDay(pr.Result) {
			day.Records = append(day.Records, Record{
				Kind: pr.Phase.String(), Body: ephem.BodyMoon,
				Outcome: pr.Outcome, Time: pr.Epoch,
			})
		}
	}

	for _, s := range []events.Season{events.MarchEquinox, events.JuneSolstice, events.SeptemberEquinox, events.DecemberSolstice} {
		if r := events.SearchSeason(start, s, events.SearchNext); inDay(r) {
			day.Records = append(day.Records, Record{
				Kind: s.String(), Body: ephem.BodySun, Outcome: r.Outcome, Time: r.Epoch,
			})
		}
	}

	for _, kind := range []events.ApsisKind{events.Perihelion, events.Aphelion} {
		r, err := events.SearchApsis(start, ephem.BodyEarth, kind, events.SearchNext)
		if err != nil {
			continue
		}
		if inDay(r) {
			day.Records = append(day.Records, Record{
				Kind: "Earth " + kind.String(), Body: ephem.BodyEarth,
				Outcome: r.Outcome, Time: r.Epoch,
			})
		}
	}

	if le := events.SearchLunarEclipse(start, events.SearchNext); inDay(le.Result) {
		day.Records = append(day.Records, Record{
			Kind: "lunar eclipse", Body: ephem.BodyMoon, Outcome: le.Outcome, Time: le.Epoch,
			Detail: fmt.Sprintf("%s, umbral mag %.2f", le.Type, le.UmbralMagnitude),
		})
	}
	if se := events.SearchSolarEclipse(start, events.SearchNext); inDay(se.Result) {
		detail := se.Type.String()
		if se.Type == events.EclipsePartial {
			detail = fmt.Sprintf("partial, mag %.2f", se.Magnitude)
		}
		day.Records = append(day.Records, Record{
			Kind: "solar eclipse", Body: ephem.BodySun, Outcome: se.Outcome, Time: se.Epoch,
			Detail: detail,
		})
	}
}

// sortRecords orders records chronologically, pushing the ones without
// a valid time (circumpolar and friends) to the end.
func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		ri, rj := records[i], records[j]
		switch {
		case ri.HasTime() && !rj.HasTime():
			return true
		case !ri.HasTime():
			return false
		default:
			return ri.Time.JD < rj.Time.JD
		}
	})
}

// ComputeRange computes consecutive days starting at date.
func (pl *Planner) ComputeRange(date time.Time, days int, obs astro.Observer, now time.Time) ([]*Day, error) {
	out := make([]*Day, 0, days)
	for i := 0; i < days; i++ {
		d, err := pl.ComputeDay(date.AddDate(0, 0, i), obs, now)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
