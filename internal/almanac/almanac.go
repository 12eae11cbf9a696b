// Package almanac assembles daily event tables from the search layer:
// rise/set and twilight times, lunar phases, seasons and apsides for an
// observer, ready for display or export.
package almanac

import (
	"time"

	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/ephem"
	"github.com/litescript/ls-almanac/internal/events"
)

// RecordStatus classifies a record relative to a reference time.
type RecordStatus int

const (
	StatusPast RecordStatus = iota
	StatusNow
	StatusNext
	StatusFuture
)

// String returns the status name.
func (s RecordStatus) String() string {
	switch s {
	case StatusPast:
		return "PAST"
	case StatusNow:
		return "NOW"
	case StatusNext:
		return "NEXT"
	case StatusFuture:
		return "FUTURE"
	default:
		return "?"
	}
}

// Record is one almanac entry: an event instant with its kind, body and
// any auxiliary detail text. Outcome distinguishes degenerate results;
// a circumpolar sun still yields a record, with no time.
type Record struct {
	Kind    string
	Body    ephem.Body
	Outcome events.Outcome
	Time    astro.Epoch
	Detail  string
	Status  RecordStatus
}

// HasTime reports whether the record carries a valid instant.
func (r Record) HasTime() bool { return r.Outcome == events.Found }

// Day is the computed almanac for one observer and calendar day.
type Day struct {
	Date        time.Time // UTC midnight opening the day
	Observer    astro.Observer
	Records     []Record
	Warnings    []string
	GeneratedAt time.Time
}

// classifyRecords assigns a status to each record relative to now.
// Records are expected sorted by time; records without a time keep the
// zero status.
func classifyRecords(records []Record, now time.Time) {
	const nowWindow = time.Minute
	foundNext := false

	for i := range records {
		r := &records[i]
		if !r.HasTime() {
			continue
		}
		t := r.Time.Convert(astro.ScaleUTC).Time()
		switch {
		case now.Sub(t) > nowWindow:
			r.Status = StatusPast
		case t.Sub(now) <= nowWindow:
			r.Status = StatusNow
		case !foundNext:
			r.Status = StatusNext
			foundNext = true
		default:
			r.Status = StatusFuture
		}
	}
}

// Current returns the record happening now, or nil.
func (d *Day) Current() *Record {
	for i := range d.Records {
		if d.Records[i].Status == StatusNow {
			return &d.Records[i]
		}
	}
	return nil
}

// Next returns the next upcoming record, or nil.
func (d *Day) Next() *Record {
	for i := range d.Records {
		if d.Records[i].Status == StatusNext {
			return &d.Records[i]
		}
	}
	return nil
}
