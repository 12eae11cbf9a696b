package astro

import (
	"errors"
	"fmt"
)

// Precession between arbitrary epochs always pivots through J2000: each
// reduction method defines a single matrix J2000 → epoch, and the reverse
// direction applies its transpose. That keeps the epoch→J2000 and
// J2000→epoch paths exact inverses of each other by construction, so a
// round trip is the identity to machine precision.

// ErrClassicalAngles is returned when the four-angle accessor is used with
// a method that has no such development.
var ErrClassicalAngles = errors.New("equatorial precession angles are only defined for IAU2000/2006/2009")

// EquatorialAngles are the four-angle equatorial precession parameters of
// Capitaine et al., all in radians.
type EquatorialAngles struct {
	PsiA   float64 // luni-solar precession
	OmegaA float64 // inclination of the equator on the J2000 ecliptic
	ChiA   float64 // planetary precession
	Eps0   float64 // obliquity at the reference epoch
}

// EclipticAngles are the classical ecliptic precession parameters, all in
// radians: accumulated general precession, the node of the moving ecliptic
// on the fixed one, and its inclination.
type EclipticAngles struct {
	PA          float64
	Node        float64
	Inclination float64
}

// EquatorialPrecessionAngles returns the Capitaine four-angle set at the
// given epoch. For classical methods it fails with ErrClassicalAngles.
// When toJ2000 is set the angles describe the reverse rotation and are
// applied transposed by the vector routines.
func (r Reduction) EquatorialPrecessionAngles(epoch Epoch, toJ2000 bool) (EquatorialAngles, error) {
	if !r.Method.isCapitaine() {
		return EquatorialAngles{}, fmt.Errorf("%w: got %s", ErrClassicalAngles, r.Method)
	}
	T := epoch.JulianCenturies()
	_ = toJ2000 // direction only affects matrix application, not the angles
	return capitaineAngles(T, r.Method), nil
}

func capitaineAngles(T float64, m ReductionMethod) EquatorialAngles {
	var psi, omega, chi, eps0 float64
	if m == IAU2000 {
		// IAU 1976 development with the IAU 2000 precession-rate
		// corrections folded into the linear terms.
		eps0 = 84381.448
		psi = T * (5038.47875 + T*(-1.07259+T*(-0.001147)))
		omega = eps0 + T*(-0.02524+T*(0.05127+T*(-0.007726)))
		chi = T * (10.5526 + T*(-2.38064+T*(-0.001125)))
	} else {
		// P03 (Capitaine et al. 2003), adopted as IAU 2006.
		eps0 = 84381.406
		psi = T * (5038.481507 + T*(-1.0790069+T*(-0.00114045+T*(0.000132851+T*(-0.0000000951)))))
		omega = eps0 + T*(-0.025754+T*(0.0512623+T*(-0.00772503+T*(-0.000000467+T*(0.0000003337)))))
		chi = T * (10.556403 + T*(-2.3814292+T*(-0.00121197+T*(0.000170663+T*(-0.0000000560)))))
	}
	return EquatorialAngles{
		PsiA:   psi * ArcsecToRad,
		OmegaA: omega * ArcsecToRad,
		ChiA:   chi * ArcsecToRad,
		Eps0:   eps0 * ArcsecToRad,
	}
}

// Classical ecliptic precession developments, evaluated in thousands of
// Julian years from J2000. The accumulated general precession pA is one
// degree-9 polynomial (times a final factor of the argument) per theory:
// the high-order terms are common and the low orders carry each theory's
// published rates, in arcseconds. Node and inclination of the ecliptic of
// date on the J2000 ecliptic are shared by all classical theories and are
// tabulated directly in radians.
var (
	eclPAHead = [7]float64{
		-8.66e-10, -4.759e-8, 2.424e-7, 1.3095e-5, 1.7451e-4, -1.8055e-3, -0.235316,
	}
	eclPALieske   = [3]float64{0.07732, 111.113, 50290.966}
	eclPALaskar   = [3]float64{0.07732, 111.2022, 50290.966}
	eclPASimon    = [3]float64{0.07732, 111.2022, 50288.200}
	eclPAWilliams = [3]float64{0.076, 110.5414, 50287.700}

	eclNodeCoeffs = [11]float64{
		6.6402e-16, -2.69151e-15, -1.547021e-12, 7.521313e-12, 1.9e-10,
		-3.54e-9, -1.8103e-7, 1.26e-7, 7.436169e-5, -0.04207794833,
		3.052115282424,
	}
	eclInclCoeffs = [11]float64{
		1.2147e-16, 7.3759e-17, -8.26287e-14, 2.503410e-13, 2.4650839e-11,
		-5.4000441e-11, 1.32115526e-9, -6.012e-7, -1.62442e-5, 0.00227850649,
		0,
	}
)

func (m ReductionMethod) precessionRates() [3]float64 {
	switch m {
	case Simon1994:
		return eclPASimon
	case Williams1994, JPLDE4xx:
		return eclPAWilliams
	case Laskar1986:
		return eclPALaskar
	default:
		return eclPALieske
	}
}

// EclipticPrecessionAngles returns the classical parameter set at T Julian
// centuries from J2000.
func (r Reduction) EclipticPrecessionAngles(T float64) EclipticAngles {
	t := T / 10 // thousands of Julian years
	rates := r.Method.precessionRates()

	var p float64
	for _, c := range eclPAHead {
		p = p*t + c
	}
	for _, c := range rates {
		p = p*t + c
	}
	p *= t

	var node, incl float64
	for _, c := range eclNodeCoeffs {
		node = node*t + c
	}
	for _, c := range eclInclCoeffs {
		incl = incl*t + c
	}

	return EclipticAngles{
		PA:          p * ArcsecToRad,
		Node:        node,
		Inclination: incl,
	}
}

// matrixJ2000To builds the precession matrix from J2000 to the epoch at
// T Julian centuries, under the configured reduction.
func (r Reduction) matrixJ2000To(T float64, w *Warnings) M3 {
	if r.Vondrak {
		if absf(T) > vondrakValidityCenturies {
			w.Addf("precession: date %.0f centuries from J2000 is outside the ±2000 century validity of the long-term series", T)
		}
		return longTermPrecessionMatrix(T)
	}
	if absf(T) > polynomialValidityCenturies {
		w.Addf("precession: date %.0f centuries from J2000 is outside the ±100 century validity of the %s development; result is probably incorrect", T, r.Method)
	}
	switch {
	case r.Method.isCapitaine():
		a := capitaineAngles(T, r.Method)
		return Rz(a.ChiA).Mul(Rx(-a.OmegaA)).Mul(Rz(-a.PsiA)).Mul(Rx(a.Eps0))
	case r.Method == IAU1976:
		return lieskeMatrix(T)
	default:
		return r.eclipticMatrix(T)
	}
}

// lieskeMatrix is the closed-form IAU 1976 equatorial path (ζ, z, θ) from
// J2000 to the epoch.
func lieskeMatrix(T float64) M3 {
	zeta := T * (2306.2181 + T*(0.30188+T*0.017998)) * ArcsecToRad
	z := T * (2306.2181 + T*(1.09468+T*0.018203)) * ArcsecToRad
	theta := T * (2004.3109 + T*(-0.42665+T*(-0.041833))) * ArcsecToRad
	return Rz(-z).Mul(Ry(theta)).Mul(Rz(-zeta))
}

// eclipticMatrix is the generic four-rotation path: rotate onto the J2000
// ecliptic, precess along it through the node, then rotate back through
// the obliquity of date. It must agree with the closed-form equatorial
// path to within the difference of the underlying theories.
func (r Reduction) eclipticMatrix(T float64) M3 {
	a := r.EclipticPrecessionAngles(T)
	eps0 := r.Method.obliquityTable().start * ArcsecToRad
	epsT, _ := r.MeanObliquity(T, nil)
	return Rx(-epsT).
		Mul(Rz(-(a.Node + a.PA))).
		Mul(Rx(a.Inclination)).
		Mul(Rz(a.Node)).
		Mul(Rx(eps0))
}

// PrecessToJ2000 rotates an equatorial vector from the mean equinox of the
// given epoch to J2000.
func (r Reduction) PrecessToJ2000(epoch Epoch, v Vec3, w *Warnings) Vec3 {
	T := epoch.JulianCenturies()
	if T == 0 {
		return v
	}
	return r.matrixJ2000To(T, w).Transpose().MulVec(v)
}

// PrecessFromJ2000 rotates an equatorial vector from J2000 to the mean
// equinox of the given epoch.
func (r Reduction) PrecessFromJ2000(epoch Epoch, v Vec3, w *Warnings) Vec3 {
	T := epoch.JulianCenturies()
	if T == 0 {
		return v
	}
	return r.matrixJ2000To(T, w).MulVec(v)
}

// PrecessVector rotates an equatorial vector between two arbitrary epochs,
// pivoting through J2000 when neither side is the reference epoch.
func (r Reduction) PrecessVector(from, to Epoch, v Vec3, w *Warnings) Vec3 {
	if from.JD == to.JD {
		return v
	}
	if from.JD != J2000 {
		v = r.PrecessToJ2000(from, v, w)
	}
	if to.JD != J2000 {
		v = r.PrecessFromJ2000(to, v, w)
	}
	return v
}

// PrecessIAU1976 applies the full two-epoch Lieske (1977) development.
// Retained for catalog reductions where the historical polynomial form,
// including its T0 cross terms, must be preserved exactly.
func PrecessIAU1976(fromJD, toJD float64, v Vec3) Vec3 {
	T0 := (fromJD - J2000) / JulianCentury
	T := (toJD - fromJD) / JulianCentury
	zeta := T * (2306.2181 + 1.39656*T0 - 0.000139*T0*T0 +
		T*(0.30188-0.000344*T0+T*0.017998)) * ArcsecToRad
	z := T * (2306.2181 + 1.39656*T0 - 0.000139*T0*T0 +
		T*(1.09468+0.000066*T0+T*0.018203)) * ArcsecToRad
	theta := T * (2004.3109 - 0.85330*T0 - 0.000217*T0*T0 +
		T*(-0.42665-0.000217*T0+T*(-0.041833))) * ArcsecToRad
	return Rz(-z).Mul(Ry(theta)).Mul(Rz(-zeta)).MulVec(v)
}

// PrecessNewcomb applies Newcomb's precession between two epochs, in
// tropical centuries from B1950. This is the development the FK4 frame is
// built on; FK4 catalog positions at other equinoxes are brought to B1950
// with it before the frame conversion proper.
func PrecessNewcomb(fromJD, toJD float64, v Vec3) Vec3 {
	T0 := (fromJD - B1950) / TropicalCentury
	T := (toJD - fromJD) / TropicalCentury
	zeta := T * (2304.250 + 1.396*T0 + T*(0.302+T*0.018)) * ArcsecToRad
	z := T * (2304.250 + 1.396*T0 + T*(1.093+T*0.019)) * ArcsecToRad
	theta := T * (2004.682 - 0.853*T0 + T*(-0.426+T*(-0.042))) * ArcsecToRad
	return Rz(-z).Mul(Ry(theta)).Mul(Rz(-zeta)).MulVec(v)
}
