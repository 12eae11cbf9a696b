package almanac

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/format"
)

// DayExport is the JSON-serializable representation of a computed day.
type DayExport struct {
	Date        string         `json:"date"`
	Latitude    float64        `json:"latitude_deg"`
	Longitude   float64        `json:"longitude_deg"`
	GeneratedAt time.Time      `json:"generated_at"`
	Records     []RecordExport `json:"records"`
	Warnings    []string       `json:"warnings,omitempty"`
}

// RecordExport is a JSON-friendly record with the time rendered both
// ways.
type RecordExport struct {
	Kind    string  `json:"kind"`
	Body    string  `json:"body"`
	Outcome string  `json:"outcome"`
	TimeUTC string  `json:"time_utc,omitempty"`
	JD      float64 `json:"jd_tt,omitempty"`
	Detail  string  `json:"detail,omitempty"`
}

// ExportDay converts a computed day to its exportable form.
func ExportDay(d *Day) *DayExport {
	if d == nil {
		return &DayExport{}
	}
	export := &DayExport{
		Date:        d.Date.Format("2006-01-02"),
		Latitude:    d.Observer.LatDeg,
		Longitude:   d.Observer.LonDeg,
		GeneratedAt: d.GeneratedAt,
		Warnings:    d.Warnings,
	}
	for _, r := range d.Records {
		re := RecordExport{
			Kind:    r.Kind,
			Body:    r.Body.String(),
			Outcome: r.Outcome.String(),
			Detail:  r.Detail,
		}
		if r.HasTime() {
			re.TimeUTC = format.Epoch(r.Time)
			re.JD = r.Time.JD
		}
		export.Records = append(export.Records, re)
	}
	return export
}

// WriteJSON writes the export as indented JSON.
func (e *DayExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(e)
}

// WriteSummaryTable writes a day as a text table.
func WriteSummaryTable(w io.Writer, d *Day) {
	fmt.Fprintf(w, "Almanac for %s @ %.4f°, %.4f°\n",
		d.Date.Format("2006-01-02"), d.Observer.LatDeg, d.Observer.LonDeg)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(d.Records) == 0 {
		fmt.Fprintln(w, "No events")
		return
	}

	fmt.Fprintf(w, "%-22s %-8s %-20s %s\n", "Event", "Body", "Time (UTC)", "Detail")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, r := range d.Records {
		t := r.Outcome.String()
		if r.HasTime() {
			t = r.Time.Convert(astro.ScaleUTC).Time().Format("15:04:05")
		}
		fmt.Fprintf(w, "%-22s %-8s %-20s %s\n",
			truncateStr(r.Kind, 22),
			truncateStr(r.Body.String(), 8),
			t,
			r.Detail,
		)
	}

	if len(d.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, msg := range d.Warnings {
			fmt.Fprintf(w, "warning: %s\n", msg)
		}
	}
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-2] + ".."
}
