// Command ls-almanac is a terminal almanac: rise/set and twilight
// times, lunar phases, eclipses and other sky events for an observer.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode  bool
	jsonPath     string
	dateStr      string
	days         int
	latDeg       float64
	lonDeg       float64
	altMeters    float64
	methodName   string
	vondrakFlag  bool
)

func main() {
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.StringVar(&jsonPath, "json", "", "Export JSON almanac to file (use - for stdout)")
	flag.StringVar(&dateStr, "date", "", "Start date, YYYY-MM-DD (default today)")
	flag.IntVar(&days, "days", 1, "Number of days to compute")
	flag.Float64Var(&latDeg, "lat", 0, "Observer latitude, degrees north")
	flag.Float64Var(&lonDeg, "lon", 0, "Observer longitude, degrees east")
	flag.Float64Var(&altMeters, "alt", 0, "Observer altitude, metres")
	flag.StringVar(&methodName, "method", "iau2006", "Reduction method (iau1976, iau2000, iau2006, iau2009, simon1994, williams1994, laskar1986)")
	flag.BoolVar(&vondrakFlag, "vondrak", false, "Use the long-term precession series (iau2006/iau2009 only)")
	flag.Parse()

	logger := logging.New(logging.ParseLevel(*logLevel))

	reduction, err := parseReduction(methodName, vondrakFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	start := time.Now().UTC()
	if dateStr != "" {
		start, err = time.Parse("2006-01-02", dateStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid -date %q: %v\n", dateStr, err)
			os.Exit(1)
		}
	}
	if days < 1 {
		days = 1
	}

	obs := astro.Observer{LatDeg: latDeg, LonDeg: lonDeg, AltMeters: altMeters}
	planner := &almanac.Planner{
		Provider:  ephem.Analytic{Reduction: reduction},
		Reduction: reduction,
		Log:       logger.With("almanac"),
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	stateMgr := state.NewManager(state.DefaultConfig())
	stateMgr.SetObserver(obs)

	if summaryMode || jsonPath != "" {
		runHeadless(planner, obs, start)
		return
	}

	requests := make(chan time.Time, 8)
	model := ui.New(stateMgr, requests)
	p := tea.NewProgram(model, tea.WithAltScreen())

	go runComputeLoop(ctx, planner, stateMgr, p, requests, start, logger.With("compute"))

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// parseReduction maps the -method flag onto a reduction configuration.
func parseReduction(name string, vondrak bool) (astro.Reduction, error) {
	var method astro.ReductionMethod
	switch strings.ToLower(name) {
	case "iau1976":
		method = astro.IAU1976
	case "iau2000":
		method = astro.IAU2000
	case "iau2006":
		method = astro.IAU2006
	case "iau2009":
		method = astro.IAU2009
	case "simon1994":
		method = astro.Simon1994
	case "williams1994":
		method = astro.Williams1994
	case "laskar1986":
		method = astro.Laskar1986
	default:
		return astro.Reduction{}, fmt.Errorf("unknown reduction method %q", name)
	}
	r := astro.Reduction{Method: method, Vondrak: vondrak}
	if vondrak && method != astro.IAU2006 && method != astro.IAU2009 {
		return astro.Reduction{}, fmt.Errorf("-vondrak requires iau2006 or iau2009, got %s", method)
	}
	return r, nil
}

// runComputeLoop computes the initial day range and serves navigation
// requests from the UI.
func runComputeLoop(ctx context.Context, planner *almanac.Planner, stateMgr *state.Manager, p *tea.Program, requests <-chan time.Time, start time.Time, logger *logging.Logger) {
	compute := func(date time.Time) {
		began := time.Now()
		day, err := planner.ComputeDay(date, stateMgr.Observer(), time.Now())
		stateMgr.StoreDay(day, time.Since(began), err)
		if err != nil {
			logger.Error("compute %s: %v", date.Format("2006-01-02"), err)
			p.Send(ui.ErrorMsg{Error: err})
			return
		}
		logger.Debug("computed %s: %d records in %v",
			date.Format("2006-01-02"), len(day.Records), time.Since(began))
		p.Send(ui.DataUpdateMsg{Snapshot: stateMgr.Snapshot()})
	}

	// Seed a week around the start date so navigation feels instant.
	for i := -1; i <= 5; i++ {
		select {
		case <-ctx.Done():
			return
		default:
		}
		compute(start.AddDate(0, 0, i))
	}

	for {
		select {
		case <-ctx.Done():
			logger.Debug("compute loop shutting down")
			return
		case date := <-requests:
			if _, ok := stateMgr.Day(date); !ok {
				compute(date)
			}
		}
	}
}

// runHeadless prints or exports the requested day range without a TUI.
func runHeadless(planner *almanac.Planner, obs astro.Observer, start time.Time) {
	now := time.Now()
	computed, err := planner.ComputeRange(start, days, obs, now)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if jsonPath != "" {
		out := os.Stdout
		if jsonPath != "-" {
			f, err := os.Create(jsonPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: create %s: %v\n", jsonPath, err)
				os.Exit(1)
			}
			defer f.Close()
			out = f
		}
		for _, d := range computed {
			if err := almanac.ExportDay(d).WriteJSON(out); err != nil {
				fmt.Fprintf(os.Stderr, "Error: write JSON: %v\n", err)
				os.Exit(1)
			}
		}
	}

	if summaryMode {
		for i, d := range computed {
			if i > 0 {
				fmt.Println()
			}
			almanac.WriteSummaryTable(os.Stdout, d)
		}
	}
}
