package astro

import (
	"errors"
	"fmt"
)

// ReductionMethod selects the precession/obliquity theory used to reduce
// coordinates between epochs.
type ReductionMethod int

const (
	IAU1976 ReductionMethod = iota
	Laskar1986
	Williams1994
	Simon1994
	JPLDE4xx
	IAU2000
	IAU2006
	IAU2009
)

// String returns the method name.
func (m ReductionMethod) String() string {
	switch m {
	case IAU1976:
		return "IAU1976"
	case Laskar1986:
		return "Laskar1986"
	case Williams1994:
		return "Williams1994"
	case Simon1994:
		return "Simon1994"
	case JPLDE4xx:
		return "JPL DE4xx"
	case IAU2000:
		return "IAU2000"
	case IAU2006:
		return "IAU2006"
	case IAU2009:
		return "IAU2009"
	default:
		return "unknown"
	}
}

// isCapitaine reports whether the method uses the four-angle equatorial
// precession development (Capitaine et al.).
func (m ReductionMethod) isCapitaine() bool {
	return m == IAU2000 || m == IAU2006 || m == IAU2009
}

// Reduction bundles a reduction method with the optional long-term series
// flag. The zero value is the IAU1976 polynomial theory.
type Reduction struct {
	Method ReductionMethod

	// Vondrak selects the Vondrák et al. (2011) long-term series instead
	// of the polynomial development. Only valid with IAU2006/IAU2009.
	Vondrak bool
}

// ErrVondrakMethod is returned when the long-term series flag is combined
// with a method other than IAU2006/IAU2009.
var ErrVondrakMethod = errors.New("long-term series is only defined for IAU2006/IAU2009")

// Validity windows, in Julian centuries from J2000.
const (
	polynomialValidityCenturies = 100
	vondrakValidityCenturies    = 2000
)

// Obliquity polynomial tables. Each is evaluated as
//
//	ε = start + Σ coeffs[i]·u^(i+1)   (arcseconds, u = T/100)
//
// with T in Julian centuries TT from J2000.
type obliquityTable struct {
	start  float64
	coeffs []float64
}

var (
	// Capitaine et al. 2003 / Hilton et al. 2006, adopted for IAU 2000-2009.
	oblCapitaine = obliquityTable{84381.406, []float64{
		-4683.6769, -1.831, 2003.400, -57.6, -434.0,
	}}

	// Simon et al. 1994.
	oblSimon = obliquityTable{84381.412, []float64{
		-4680.927, -1.52, 1998.9, -51.38, -249.67, -39.05, 7.12, 27.87, 5.79, 2.45,
	}}

	// Williams et al. 1994, also used with the JPL DE4xx ephemerides.
	oblWilliams = obliquityTable{84381.409, []float64{
		-4683.396, -1.75, 1998.9, -51.38, -249.67, -39.05, 7.12, 27.87, 5.79, 2.45,
	}}

	// Laskar 1986.
	oblLaskar = obliquityTable{84381.448, []float64{
		-4680.93, -1.55, 1999.25, -51.38, -249.67, -39.05, 7.12, 27.87, 5.79, 2.45,
	}}

	// Lieske et al. 1977 (IAU 1976).
	oblIAU1976 = obliquityTable{84381.448, []float64{
		-4681.50, -5.9, 1813.0,
	}}
)

func (m ReductionMethod) obliquityTable() obliquityTable {
	switch m {
	case IAU2000, IAU2006, IAU2009:
		return oblCapitaine
	case Simon1994:
		return oblSimon
	case Williams1994, JPLDE4xx:
		return oblWilliams
	case Laskar1986:
		return oblLaskar
	default:
		return oblIAU1976
	}
}

// MeanObliquity returns the mean obliquity of the ecliptic in radians at
// T Julian centuries TT from J2000.
//
// For IAU2006/IAU2009 with the Vondrak flag, or whenever |T| exceeds the
// polynomial validity window of ±100 centuries under those methods, the
// Vondrák (2011) long-term series is evaluated instead. Out-of-range use
// raises warnings on w but never fails; the best-effort value is returned.
func (r Reduction) MeanObliquity(T float64, w *Warnings) (float64, error) {
	if r.Vondrak && r.Method != IAU2006 && r.Method != IAU2009 {
		return 0, fmt.Errorf("%w: got %s", ErrVondrakMethod, r.Method)
	}
	useSeries := r.Vondrak
	if !useSeries && (r.Method == IAU2006 || r.Method == IAU2009) &&
		absf(T) > polynomialValidityCenturies {
		// Prefer the series over polynomial extrapolation where it exists.
		useSeries = true
	}
	if useSeries {
		if absf(T) > vondrakValidityCenturies {
			w.Addf("obliquity: date %.0f centuries from J2000 is outside the ±2000 century validity of the long-term series", T)
		}
		return longTermObliquity(T), nil
	}
	if absf(T) > polynomialValidityCenturies {
		w.Addf("obliquity: date %.0f centuries from J2000 is outside the ±100 century validity of the %s polynomial; result is probably incorrect", T, r.Method)
	}
	tab := r.Method.obliquityTable()
	u := T / 100
	eps := tab.start
	p := u
	for _, c := range tab.coeffs {
		eps += c * p
		p *= u
	}
	return eps * ArcsecToRad, nil
}

// NutationFunc supplies nutation in longitude and obliquity (Δψ, Δε), in
// radians, at T Julian centuries TT from J2000. The full-precision series
// is an external collaborator; Nutation1980 below is the built-in default.
type NutationFunc func(T float64) (dpsi, deps float64)

// TrueObliquity returns the true obliquity of the ecliptic in radians:
// mean obliquity plus nutation in obliquity. A nil nut falls back to
// Nutation1980.
func (r Reduction) TrueObliquity(T float64, nut NutationFunc, w *Warnings) (float64, error) {
	eps, err := r.MeanObliquity(T, w)
	if err != nil {
		return 0, err
	}
	if nut == nil {
		nut = Nutation1980
	}
	_, deps := nut(T)
	return eps + deps, nil
}

func absf(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
