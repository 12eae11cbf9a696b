package astro

import (
	"math"
	"testing"
)

func TestGreenwichMeanSiderealTime(t *testing.T) {
	tests := []struct {
		name     string
		jdUT     float64
		expected float64 // degrees
		tol      float64
	}{
		{
			// Meeus example 12.a: 1987 April 10.0 UT.
			name:     "1987 Apr 10.0",
			jdUT:     2446895.5,
			expected: 197.693195,
			tol:      1e-5,
		},
		{
			// Meeus example 12.b: 1987 April 10, 19h21m00s UT.
			name:     "1987 Apr 10 19:21",
			jdUT:     2446896.30625,
			expected: 128.737873,
			tol:      1e-4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GreenwichMeanSiderealTime(tt.jdUT) * RadToDeg
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("GMST(%v) = %v°, want %v° (±%v)", tt.jdUT, got, tt.expected, tt.tol)
			}
		})
	}
}

func TestApparentSiderealTime(t *testing.T) {
	// Meeus example 12.a continued: the equation of the equinoxes on
	// 1987 Apr 10.0 is about -0.23″ in time units ≈ -0.001°.
	e := NewEpoch(2446895.5, ScaleUT1)
	gast, err := Reduction{Method: IAU1976}.ApparentSiderealTime(e, nil, nil)
	if err != nil {
		t.Fatalf("ApparentSiderealTime: %v", err)
	}
	gmst := GreenwichMeanSiderealTime(e.Convert(ScaleUT1).JD)
	dSec := WrapPi(gast-gmst) / ArcsecToRad
	if math.Abs(dSec) > 20 {
		t.Errorf("equation of the equinoxes = %v″, want a few arcseconds", dSec)
	}
	if gast == gmst {
		t.Error("apparent sidereal time should differ from mean")
	}
}

func TestLocalSiderealTime(t *testing.T) {
	e := NewEpoch(2446895.5, ScaleUT1)
	r := Reduction{Method: IAU1976}

	greenwich, err := r.LocalSiderealTime(e, 0, nil, nil)
	if err != nil {
		t.Fatalf("LocalSiderealTime: %v", err)
	}
	east90, err := r.LocalSiderealTime(e, math.Pi/2, nil, nil)
	if err != nil {
		t.Fatalf("LocalSiderealTime: %v", err)
	}

	d := NormalizeRad(east90 - greenwich)
	if math.Abs(d-math.Pi/2) > 1e-12 {
		t.Errorf("90°E LST - Greenwich LST = %v, want π/2", d)
	}
}
