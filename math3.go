package carve

import "math"

// IVec3 is a 3-component integer vector.
type IVec3 [3]int

// AddIVec3 returns v + w.
func AddIVec3(v, w IVec3) (u IVec3) {
	for i := range u {
		u[i] = v[i] + w[i]
	}
	return
}

// SubIVec3 returns v - w.
func SubIVec3(v, w IVec3) (u IVec3) {
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return
}

// MinIVec3 returns the component-wise minimum of v and w.
func MinIVec3(v, w IVec3) (u IVec3) {
	for i := range u {
		u[i] = min(v[i], w[i])
	}
	return
}

// MaxIVec3 returns the component-wise maximum of v and w.
func MaxIVec3(v, w IVec3) (u IVec3) {
	for i := range u {
		u[i] = max(v[i], w[i])
	}
	return
}

// SplatIVec3 returns the vector (s, s, s).
func SplatIVec3(s int) IVec3 {
	return IVec3{s, s, s}
}

// Vec3 is a 3-component vector of float64.
type Vec3 [3]float64

// AddVec3 returns v + w.
func AddVec3(v, w Vec3) (u Vec3) {
	for i := range u {
		u[i] = v[i] + w[i]
	}
	return
}

// SubVec3 returns v - w.
func SubVec3(v, w Vec3) (u Vec3) {
	for i := range u {
		u[i] = v[i] - w[i]
	}
	return
}

// ScaleVec3 returns s ⋅ v.
func ScaleVec3(s float64, v Vec3) (u Vec3) {
	for i := range u {
		u[i] = s * v[i]
	}
	return
}

// Mat3 is a column-major 3x3 matrix of float64.
type Mat3 [3]Vec3

// I makes m an identity matrix.
func (m *Mat3) I() { *m = Mat3{{1}, {0, 1}, {0, 0, 1}} }

// Apply returns m ⋅ v.
func (m *Mat3) Apply(v Vec3) (u Vec3) {
	for i := range m {
		for j := range u {
			u[j] += m[i][j] * v[i]
		}
	}
	return
}

// Transpose sets m to contain the transpose of n.
// For pure rotations this is the inverse.
func (m *Mat3) Transpose(n *Mat3) {
	for i := range m {
		m[i][i] = n[i][i]
		for j := i + 1; j < len(m); j++ {
			m[i][j], m[j][i] = n[j][i], n[i][j]
		}
	}
}

// RotationX returns the rotation matrix about the X axis by rad.
func RotationX(rad float64) Mat3 {
	sin, cos := math.Sincos(rad)
	return Mat3{
		{1, 0, 0},
		{0, cos, sin},
		{0, -sin, cos},
	}
}

// RotationY returns the rotation matrix about the Y axis by rad.
func RotationY(rad float64) Mat3 {
	sin, cos := math.Sincos(rad)
	return Mat3{
		{cos, 0, -sin},
		{0, 1, 0},
		{sin, 0, cos},
	}
}

// RotationZ returns the rotation matrix about the Z axis by rad.
func RotationZ(rad float64) Mat3 {
	sin, cos := math.Sincos(rad)
	return Mat3{
		{cos, sin, 0},
		{-sin, cos, 0},
		{0, 0, 1},
	}
}
