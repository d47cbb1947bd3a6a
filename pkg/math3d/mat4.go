package math3d

import "math"

// Mat4 is an affine transform stored column-major: element (row, col) is
// m[col*4+row] and the translation sits in m[12:15]. Transforms compose
// right to left, so a.Mul(b) applies b first.
type Mat4 [16]float64

// Translate returns a matrix that moves points by v.
func Translate(v Vec3) Mat4 {
	m := ScaleUniform(1)
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

// ScaleUniform returns a matrix that scales about the origin by s.
func ScaleUniform(s float64) Mat4 {
	return Mat4{0: s, 5: s, 10: s, 15: 1}
}

// RotateX turns +Y toward +Z by angle radians.
func RotateX(angle float64) Mat4 { return planeRotation(1, 2, angle) }

// RotateY turns +Z toward +X by angle radians.
func RotateY(angle float64) Mat4 { return planeRotation(2, 0, angle) }

// RotateZ turns +X toward +Y by angle radians.
func RotateZ(angle float64) Mat4 { return planeRotation(0, 1, angle) }

// planeRotation rotates the plane spanned by axes a and b, turning a
// toward b.
func planeRotation(a, b int, angle float64) Mat4 {
	s, c := math.Sincos(angle)
	m := ScaleUniform(1)
	m[a*4+a], m[b*4+b] = c, c
	m[a*4+b] = s
	m[b*4+a] = -s
	return m
}

// RotateEuler composes Rz(z) · Ry(y) · Rx(x), so X is applied first.
func RotateEuler(x, y, z float64) Mat4 {
	return RotateZ(z).Mul(RotateY(y)).Mul(RotateX(x))
}

// Mul returns the product a·b.
func (a Mat4) Mul(b Mat4) Mat4 {
	var m Mat4
	for i := range m {
		row, col := i%4, i/4
		for k := range 4 {
			m[i] += a[k*4+row] * b[col*4+k]
		}
	}
	return m
}

// MulVec3 transforms v as a point. The bottom row of an affine matrix is
// (0, 0, 0, 1), so w is never divided out.
func (m Mat4) MulVec3(v Vec3) Vec3 {
	return Vec3{
		X: m[0]*v.X + m[4]*v.Y + m[8]*v.Z + m[12],
		Y: m[1]*v.X + m[5]*v.Y + m[9]*v.Z + m[13],
		Z: m[2]*v.X + m[6]*v.Y + m[10]*v.Z + m[14],
	}
}
