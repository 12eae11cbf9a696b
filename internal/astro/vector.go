package astro

import "math"

// Vec3 represents a 3D rectangular vector, in AU for positions.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product of two vectors.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// Cross returns the vector product v × u.
func (v Vec3) Cross(u Vec3) Vec3 {
	return Vec3{
		X: v.Y*u.Z - v.Z*u.Y,
		Y: v.Z*u.X - v.X*u.Z,
		Z: v.X*u.Y - v.Y*u.X,
	}
}

// M3 is a 3x3 rotation matrix in row-major order.
type M3 [3][3]float64

// Identity3 returns the identity matrix.
func Identity3() M3 {
	return M3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
}

// Rx returns the frame rotation about the x axis by angle a (radians).
// A positive angle rotates the coordinate frame, not the vector.
func Rx(a float64) M3 {
	s, c := math.Sincos(a)
	return M3{
		{1, 0, 0},
		{0, c, s},
		{0, -s, c},
	}
}

// Ry returns the frame rotation about the y axis by angle a.
func Ry(a float64) M3 {
	s, c := math.Sincos(a)
	return M3{
		{c, 0, -s},
		{0, 1, 0},
		{s, 0, c},
	}
}

// Rz returns the frame rotation about the z axis by angle a.
func Rz(a float64) M3 {
	s, c := math.Sincos(a)
	return M3{
		{c, s, 0},
		{-s, c, 0},
		{0, 0, 1},
	}
}

// Mul returns the matrix product m·n.
func (m M3) Mul(n M3) M3 {
	var r M3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j] + m[i][2]*n[2][j]
		}
	}
	return r
}

// MulVec returns the matrix-vector product m·v.
func (m M3) MulVec(v Vec3) Vec3 {
	return Vec3{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

// MAdd returns the elementwise sum m + n.
func (m M3) MAdd(n M3) M3 {
	var r M3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] + n[i][j]
		}
	}
	return r
}

// MSub returns the elementwise difference m - n.
func (m M3) MSub(n M3) M3 {
	var r M3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] - n[i][j]
		}
	}
	return r
}

// MScale returns the matrix scaled elementwise by s.
func (m M3) MScale(s float64) M3 {
	var r M3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = m[i][j] * s
		}
	}
	return r
}

// Inverse returns the inverse of a general, not necessarily orthogonal,
// non-singular matrix via the adjugate.
func (m M3) Inverse() M3 {
	c00 := m[1][1]*m[2][2] - m[1][2]*m[2][1]
	c01 := m[1][2]*m[2][0] - m[1][0]*m[2][2]
	c02 := m[1][0]*m[2][1] - m[1][1]*m[2][0]
	c10 := m[0][2]*m[2][1] - m[0][1]*m[2][2]
	c11 := m[0][0]*m[2][2] - m[0][2]*m[2][0]
	c12 := m[0][1]*m[2][0] - m[0][0]*m[2][1]
	c20 := m[0][1]*m[1][2] - m[0][2]*m[1][1]
	c21 := m[0][2]*m[1][0] - m[0][0]*m[1][2]
	c22 := m[0][0]*m[1][1] - m[0][1]*m[1][0]

	det := m[0][0]*c00 + m[0][1]*c01 + m[0][2]*c02
	return M3{
		{c00, c10, c20},
		{c01, c11, c21},
		{c02, c12, c22},
	}.MScale(1 / det)
}

// Transpose returns the transposed matrix, which for a rotation is its
// inverse.
func (m M3) Transpose() M3 {
	return M3{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// Spherical holds equatorial spherical coordinates: right ascension in
// [0, 2π), declination in [-π/2, π/2], both radians, and distance in AU.
type Spherical struct {
	RA   float64
	Dec  float64
	Dist float64
}

// Vec returns the rectangular equivalent of the spherical position.
func (s Spherical) Vec() Vec3 {
	cd := math.Cos(s.Dec)
	return Vec3{
		X: s.Dist * cd * math.Cos(s.RA),
		Y: s.Dist * cd * math.Sin(s.RA),
		Z: s.Dist * math.Sin(s.Dec),
	}
}

// SphericalFromVec converts a rectangular vector to spherical coordinates.
// The zero vector maps to the origin direction with zero distance.
func SphericalFromVec(v Vec3) Spherical {
	r := v.Norm()
	if r == 0 {
		return Spherical{}
	}
	return Spherical{
		RA:   NormalizeRad(math.Atan2(v.Y, v.X)),
		Dec:  math.Asin(clamp1(v.Z / r)),
		Dist: r,
	}
}

// AngularSeparation returns the angle in radians between two directions.
func AngularSeparation(a, b Spherical) float64 {
	// Haversine form, stable for small separations.
	dRA := b.RA - a.RA
	dDec := b.Dec - a.Dec
	h := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(a.Dec)*math.Cos(b.Dec)*math.Sin(dRA/2)*math.Sin(dRA/2)
	return 2 * math.Asin(math.Sqrt(clamp1(h)))
}
