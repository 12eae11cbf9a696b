package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
		tol      float64
	}{
		{
			name:     "J2000.0",
			time:     time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
			expected: 2451545.0,
			tol:      1e-9,
		},
		{
			name:     "unix epoch",
			time:     time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2440587.5,
			tol:      1e-9,
		},
		{
			name:     "start of 2024",
			time:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			expected: 2460310.5,
			tol:      1e-9,
		},
		{
			name:     "january counts as month 13",
			time:     time.Date(1987, 1, 27, 0, 0, 0, 0, time.UTC),
			expected: 2446822.5,
			tol:      1e-9,
		},
		{
			name:     "fractional day",
			time:     time.Date(2000, 1, 1, 18, 0, 0, 0, time.UTC),
			expected: 2451545.25,
			tol:      1e-9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianDate(%v) = %v, want %v (±%v)", tt.time, got, tt.expected, tt.tol)
			}
		})
	}
}

func TestJDToTimeRoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC),
		time.Date(1999, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2024, 6, 15, 6, 30, 45, 0, time.UTC),
		time.Date(1950, 3, 21, 0, 0, 0, 0, time.UTC),
	}
	for _, want := range times {
		got := JDToTime(JulianDate(want))
		if d := got.Sub(want); d > time.Millisecond || d < -time.Millisecond {
			t.Errorf("JDToTime(JulianDate(%v)) = %v, off by %v", want, got, d)
		}
	}
}

func TestEpochSub(t *testing.T) {
	a := NewEpoch(2451545.0, ScaleTT)
	b := NewEpoch(2451544.0, ScaleTT)

	d, err := a.Sub(b)
	if err != nil {
		t.Fatalf("Sub on matching scales: %v", err)
	}
	if d != 1 {
		t.Errorf("Sub = %v, want 1", d)
	}

	c := NewEpoch(2451545.0, ScaleUTC)
	if _, err := a.Sub(c); err == nil {
		t.Error("Sub across TT and UTC should fail")
	}
}

func TestEpochConvert(t *testing.T) {
	// Around 2020 ΔT is roughly 70 s; TT runs ahead of UTC.
	utc := NewEpoch(2458849.5, ScaleUTC) // 2020-01-01
	tt := utc.Convert(ScaleTT)

	dSec := (tt.JD - utc.JD) * 86400
	if dSec < 60 || dSec > 80 {
		t.Errorf("TT-UTC near 2020 = %v s, want roughly 70 s", dSec)
	}

	// Round trip restores the original JD.
	back := tt.Convert(ScaleUTC)
	if math.Abs(back.JD-utc.JD) > 1e-9 {
		t.Errorf("UTC→TT→UTC drifted by %v days", back.JD-utc.JD)
	}

	// TT and TDB are merged at this precision.
	tdb := tt.Convert(ScaleTDB)
	if tdb.JD != tt.JD {
		t.Errorf("TT→TDB changed the JD: %v vs %v", tdb.JD, tt.JD)
	}

	if same := utc.Convert(ScaleUTC); same != utc {
		t.Errorf("identity conversion changed the epoch: %+v", same)
	}
}

func TestJulianCenturies(t *testing.T) {
	tests := []struct {
		name     string
		jd       float64
		expected float64
		tol      float64
	}{
		{"J2000", 2451545.0, 0, 0},
		{"one century after", 2451545.0 + 36525, 1, 1e-12},
		{"half century before", 2451545.0 - 36525/2.0, -0.5, 1e-12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewEpoch(tt.jd, ScaleTT).JulianCenturies()
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("JulianCenturies(%v) = %v, want %v (±%v)", tt.jd, got, tt.expected, tt.tol)
			}
		})
	}
}

func TestDeltaTSeconds(t *testing.T) {
	// 2010: the quadratic fit gives 62.92 + 0.32217·10 + 0.005589·100 ≈ 66.7 s.
	jd2010 := 2451545.0 + 10*365.25
	if got := DeltaTSeconds(jd2010); math.Abs(got-66.7) > 0.5 {
		t.Errorf("DeltaTSeconds(2010) = %v, want ≈66.7", got)
	}

	// Far past: the long-term parabola. Year 1000 gives u=-8.2, ≈2131 s.
	jd1000 := 2451545.0 - 1000*365.25
	if got := DeltaTSeconds(jd1000); math.Abs(got-2131) > 50 {
		t.Errorf("DeltaTSeconds(year 1000) = %v, want ≈2131", got)
	}
}
