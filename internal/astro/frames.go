package astro

import (
	"fmt"
	"math"
)

// Frame identifies a celestial reference frame.
type Frame int

const (
	FrameFK4 Frame = iota // mean equator and equinox B1950
	FrameFK5              // mean equator and equinox J2000
	FrameICRF
)

// String returns the frame name.
func (f Frame) String() string {
	switch f {
	case FrameFK4:
		return "FK4"
	case FrameFK5:
		return "FK5"
	case FrameICRF:
		return "ICRF"
	default:
		return "unknown"
	}
}

// ReferenceEpoch returns the Julian Day of the frame's native equinox.
func (f Frame) ReferenceEpoch() float64 {
	if f == FrameFK4 {
		return B1950
	}
	return J2000
}

// FK4 → FK5 six-vector transformation (Standish 1982, as adopted in the
// Astronomical Almanac). Internal units: positions as unit vectors,
// velocities in arcseconds per century; the matrix absorbs the
// tropical-to-Julian century rate change.
var (
	fk425pp = M3{
		{0.9999256782, -0.0111820611, -0.0048579477},
		{0.0111820610, 0.9999374784, -0.0000271765},
		{0.0048579479, -0.0000271474, 0.9999881997},
	}
	fk425pv = M3{
		{0.00000242395018, -0.00000002710663, -0.00000001177656},
		{0.00000002710663, 0.00000242397878, -0.00000000006587},
		{0.00000001177656, -0.00000000006582, 0.00000242410173},
	}
	fk425vp = M3{
		{-0.000551, -0.238565, 0.435739},
		{0.238514, -0.002667, -0.008541},
		{-0.435623, 0.012254, 0.002117},
	}
	fk425vv = M3{
		{0.99994704, -0.01118251, -0.00485767},
		{0.01118251, 0.99995883, -0.00002718},
		{0.00485767, -0.00002714, 1.00000956},
	}

	// FK5 → FK4 blocks: the exact inverse of the forward six-vector
	// transformation, which is not orthogonal once the E-terms and rate
	// scaling are folded in. Inverting the forward blocks, rather than
	// carrying an independently rounded published inverse, keeps catalog
	// round trips closed to machine precision.
	fk524pp, fk524pv, fk524vp, fk524vv = invertBlocks(fk425pp, fk425pv, fk425vp, fk425vv)

	// Inverse of the position block alone, for the direction-only path.
	fk425ppi = fk425pp.Inverse()
)

// invertBlocks inverts the 6x6 transformation [[pp, pv], [vp, vv]] by the
// Schur complement of the position block.
func invertBlocks(pp, pv, vp, vv M3) (ipp, ipv, ivp, ivv M3) {
	ppi := pp.Inverse()
	s := vv.MSub(vp.Mul(ppi).Mul(pv)).Inverse()
	ipp = ppi.MAdd(ppi.Mul(pv).Mul(s).Mul(vp).Mul(ppi))
	ipv = ppi.Mul(pv).Mul(s).MScale(-1)
	ivp = s.Mul(vp).Mul(ppi).MScale(-1)
	ivv = s
	return ipp, ipv, ivp, ivv
}

// E-terms of aberration: the elliptic part folded into FK4 catalog
// positions, and its time derivative. Radians and arcsec/century.
var (
	etermA  = Vec3{-1.62557e-6, -0.31919e-6, -0.13843e-6}
	etermAD = Vec3{1.245e-3, -1.580e-3, -0.659e-3}
)

// Frame bias between the ICRS and the FK5/J2000 mean system
// (IERS Conventions: dα0 = -14.60 mas, ξ0 = -16.617 mas, η0 = -6.8192 mas).
var frameBias = func() M3 {
	const (
		dra0 = -0.0146 * ArcsecToRad
		xi0  = -0.016617 * ArcsecToRad
		eta0 = -0.0068192 * ArcsecToRad
	)
	// v_FK5 = bias · v_ICRF
	return Rx(-eta0).Mul(Ry(xi0)).Mul(Rz(dra0))
}()

// ToFrame converts a rectangular direction vector between reference
// frames, routing through FK5/J2000. Velocity is not tracked here; use
// FK4ToFK5/FK5ToFK4 for full six-component catalog conversions.
func ToFrame(v Vec3, from, to Frame) Vec3 {
	if from == to {
		return v
	}
	switch from {
	case FrameFK4:
		v = fk4VecToFK5(v)
	case FrameICRF:
		v = frameBias.MulVec(v)
	}
	switch to {
	case FrameFK4:
		v = fk5VecToFK4(v)
	case FrameICRF:
		v = frameBias.Transpose().MulVec(v)
	}
	return v
}

// fk4VecToFK5 converts a direction through the six-vector path with zero
// catalog motion: only the E-term derivative survives as velocity. Using
// both position blocks keeps the conversion consistent with the full
// star transformation.
func fk4VecToFK5(v Vec3) Vec3 {
	r := v.Norm()
	if r == 0 {
		return v
	}
	u := v.Scale(1 / r)
	p := removeEterms(u)
	vd := u.Scale(u.Dot(etermAD)).Sub(etermAD)
	return fk425pp.MulVec(p).Add(fk425pv.MulVec(vd)).Normalized().Scale(r)
}

// fk5VecToFK4 inverts fk4VecToFK5: solve the position block for the FK4
// direction, back the E-term derivative contribution out, then restore
// the E-terms themselves.
func fk5VecToFK4(v Vec3) Vec3 {
	r := v.Norm()
	if r == 0 {
		return v
	}
	u := v.Scale(1 / r)
	w := fk425ppi.MulVec(u).Normalized()
	vd := w.Scale(w.Dot(etermAD)).Sub(etermAD)
	p := fk425ppi.MulVec(u.Sub(fk425pv.MulVec(vd))).Normalized()
	return addEterms(p).Scale(r)
}

// removeEterms strips the elliptic aberration terms from an FK4 unit
// direction.
func removeEterms(u Vec3) Vec3 {
	return u.Sub(etermA).Add(u.Scale(u.Dot(etermA))).Normalized()
}

// addEterms restores the elliptic aberration terms. The correction
// depends on the corrected direction, so iterate once.
func addEterms(u Vec3) Vec3 {
	w := u
	for i := 0; i < 2; i++ {
		w = u.Add(etermA).Sub(w.Scale(w.Dot(etermA))).Normalized()
	}
	return w
}

// Star is a catalog entry: position at a catalog equinox, proper motion,
// parallax and radial velocity.
type Star struct {
	Name string

	RA  float64 // radians, at Equinox
	Dec float64 // radians

	PMRA  float64 // dRA/dt in arcsec/year (not multiplied by cos Dec)
	PMDec float64 // dDec/dt in arcsec/year

	Parallax float64 // arcsec; 0 means distance unknown
	RV       float64 // radial velocity, km/s

	Equinox float64 // Julian Day of the catalog equinox
	Frame   Frame
}

// vf converts km/s through a parallax in arcsec to arcsec/century of
// radial-equivalent motion (the Almanac's 21.095 constant).
const vf = 21.095

func errStarFrame(got, want Frame) error {
	return fmt.Errorf("star frame is %s, conversion expects %s", got, want)
}

// starVectors builds the position unit vector and the velocity vector in
// arcsec/century from catalog quantities.
func starVectors(ra, dec, pmra, pmdec, px, rv float64) (Vec3, Vec3) {
	sr, cr := math.Sincos(ra)
	sd, cd := math.Sincos(dec)
	r0 := Vec3{cr * cd, sr * cd, sd}

	ur := pmra * 100
	ud := pmdec * 100
	wv := vf * px * rv
	rd0 := Vec3{
		-ur*sr*cd - ud*cr*sd + wv*cr*cd,
		ur*cr*cd - ud*sr*sd + wv*sr*cd,
		ud*cd + wv*sd,
	}
	return r0, rd0
}

// FK4ToFK5 converts a B1950/FK4 catalog star to J2000/FK5, carrying
// position, proper motion, parallax and radial velocity through the
// six-vector transformation with E-term removal.
//
// Stars with zero parallax get their output parallax and radial velocity
// zeroed; if such a star also has no catalog proper motion, the fictitious
// proper motion introduced by the rotating E-terms is zeroed as well and
// the position drift it fed into the position block is backed out.
func FK4ToFK5(s Star) (Star, error) {
	if s.Frame != FrameFK4 {
		return Star{}, errStarFrame(s.Frame, FrameFK4)
	}
	// Bring the position to the B1950 equinox first if cataloged at
	// another one. FK4 reductions use Newcomb precession.
	ra, dec := s.RA, s.Dec
	if s.Equinox != 0 && s.Equinox != B1950 {
		sp := SphericalFromVec(PrecessNewcomb(s.Equinox, B1950,
			Spherical{RA: ra, Dec: dec, Dist: 1}.Vec()))
		ra, dec = sp.RA, sp.Dec
	}

	px, rv := s.Parallax, s.RV
	distUnknown := px <= 0
	if distUnknown {
		px, rv = 0, 0
	}

	r0, rd0 := starVectors(ra, dec, s.PMRA, s.PMDec, px, rv)

	// Remove the E-terms from position and velocity.
	p1 := r0.Sub(etermA).Add(r0.Scale(r0.Dot(etermA)))
	v1 := rd0.Sub(etermAD).Add(r0.Scale(r0.Dot(etermAD)))

	p2 := fk425pp.MulVec(p1).Add(fk425pv.MulVec(v1))
	v2 := fk425vp.MulVec(p1).Add(fk425vv.MulVec(v1))

	zeroPM := distUnknown && s.PMRA == 0 && s.PMDec == 0
	if zeroPM {
		// The only velocity left is the fictitious E-term derivative;
		// back its drift out of the position block.
		p2 = p2.Sub(fk425pv.MulVec(v1))
	}

	out := starFromVectors(p2, v2, px, distUnknown)
	out.Name = s.Name
	out.Equinox = J2000
	out.Frame = FrameFK5
	if zeroPM {
		out.PMRA, out.PMDec = 0, 0
	}
	return out, nil
}

// FK5ToFK4 is the inverse catalog conversion, J2000/FK5 to B1950/FK4,
// restoring the E-terms of aberration.
func FK5ToFK4(s Star) (Star, error) {
	if s.Frame != FrameFK5 {
		return Star{}, errStarFrame(s.Frame, FrameFK5)
	}
	px, rv := s.Parallax, s.RV
	distUnknown := px <= 0
	if distUnknown {
		px, rv = 0, 0
	}

	r0, rd0 := starVectors(s.RA, s.Dec, s.PMRA, s.PMDec, px, rv)

	p1 := fk524pp.MulVec(r0).Add(fk524pv.MulVec(rd0))
	v1 := fk524vp.MulVec(r0).Add(fk524vv.MulVec(rd0))

	// Restore the E-terms on the unit direction, then on the velocity.
	u := p1.Normalized()
	uE := addEterms(u)
	p2 := uE.Scale(p1.Norm())
	v2 := v1.Add(etermAD).Sub(uE.Scale(uE.Dot(etermAD)))

	out := starFromVectors(p2, v2, px, distUnknown)
	out.Name = s.Name
	out.Equinox = B1950
	out.Frame = FrameFK4
	if distUnknown && s.PMRA == 0 && s.PMDec == 0 {
		out.PMRA, out.PMDec = 0, 0
	}
	return out, nil
}

// starFromVectors unpacks a transformed six-vector back into catalog
// quantities. Velocity units are arcsec/century throughout.
func starFromVectors(p, v Vec3, pxIn float64, distUnknown bool) Star {
	r := p.Norm()
	rxy2 := p.X*p.X + p.Y*p.Y
	rxy := math.Sqrt(rxy2)

	ra := math.Atan2(p.Y, p.X)
	if ra < 0 {
		ra += TwoPi
	}
	dec := math.Atan2(p.Z, rxy)

	var pmra, pmdec float64
	if rxy2 != 0 {
		pmra = (p.X*v.Y - p.Y*v.X) / rxy2
		pmdec = (v.Z*rxy - p.Z*(p.X*v.X+p.Y*v.Y)/rxy) / (r * r)
	}

	var px, rv float64
	if !distUnknown && pxIn > 0 {
		rv = p.Dot(v) / (r * vf * pxIn)
		px = pxIn / r
	}

	return Star{
		RA:       ra,
		Dec:      dec,
		PMRA:     pmra / 100,
		PMDec:    pmdec / 100,
		Parallax: px,
		RV:       rv,
	}
}
