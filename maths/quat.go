package maths

import "math"

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the identity rotation.
func QuatIdentity() Quat { return Quat{W: 1} }

// Mul composes two rotations: applying the result equals applying o, then q.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
	}
}

// Inverse returns the inverse rotation. Assumes a unit quaternion.
func (q Quat) Inverse() Quat {
	return Quat{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

// Rotate applies the rotation to a point.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	s := q.W
	return u.Scale(2 * Dot(u, v)).
		Add(v.Scale(s*s - Dot(u, u))).
		Add(Cross(u, v).Scale(2 * s))
}

// Forward returns the rotation's forward direction (-Z).
func (q Quat) Forward() Vec3 { return q.Rotate(Vec3{0, 0, -1}) }

func (q Quat) normalize() Quat {
	l := float32(math.Sqrt(float64(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)))
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{q.X / l, q.Y / l, q.Z / l, q.W / l}
}

// QuatAngleAxis builds a rotation of angle degrees around axis.
func QuatAngleAxis(axis Vec3, angleDeg float32) Quat {
	half := float64(angleDeg * DegToRad / 2)
	s := float32(math.Sin(half))
	axis = axis.Normalize()
	return Quat{X: axis.X * s, Y: axis.Y * s, Z: axis.Z * s, W: float32(math.Cos(half))}
}

// QuatLookAt builds a rotation whose forward (-Z) points from `from` toward `to`.
func QuatLookAt(from, to Vec3) Quat {
	return QuatLookDir(to.Sub(from))
}

// QuatLookDir builds a rotation whose forward (-Z) points along dir.
func QuatLookDir(dir Vec3) Quat {
	f := dir.Normalize()
	if f == (Vec3{}) {
		return QuatIdentity()
	}
	up := Vec3{0, 1, 0}
	// Degenerate when looking straight up/down.
	if d := Dot(f, up); d > 0.9999 || d < -0.9999 {
		up = Vec3{0, 0, 1}
	}
	s := Cross(f, up).Normalize()
	u := Cross(s, f)
	// Basis columns: right, up, back (-forward).
	return quatFromBasis(s, u, f.Scale(-1))
}

// quatFromBasis converts an orthonormal right/up/back basis to a quaternion.
func quatFromBasis(r, u, b Vec3) Quat {
	m00, m01, m02 := r.X, u.X, b.X
	m10, m11, m12 := r.Y, u.Y, b.Y
	m20, m21, m22 := r.Z, u.Z, b.Z

	trace := m00 + m11 + m22
	var q Quat
	switch {
	case trace > 0:
		s := float32(math.Sqrt(float64(trace+1))) * 2
		q = Quat{
			X: (m21 - m12) / s,
			Y: (m02 - m20) / s,
			Z: (m10 - m01) / s,
			W: s / 4,
		}
	case m00 > m11 && m00 > m22:
		s := float32(math.Sqrt(float64(1+m00-m11-m22))) * 2
		q = Quat{
			X: s / 4,
			Y: (m01 + m10) / s,
			Z: (m02 + m20) / s,
			W: (m21 - m12) / s,
		}
	case m11 > m22:
		s := float32(math.Sqrt(float64(1+m11-m00-m22))) * 2
		q = Quat{
			X: (m01 + m10) / s,
			Y: s / 4,
			Z: (m12 + m21) / s,
			W: (m02 - m20) / s,
		}
	default:
		s := float32(math.Sqrt(float64(1+m22-m00-m11))) * 2
		q = Quat{
			X: (m02 + m20) / s,
			Y: (m12 + m21) / s,
			Z: s / 4,
			W: (m10 - m01) / s,
		}
	}
	return q.normalize()
}

// Slerp spherically interpolates between two rotations.
func Slerp(a, b Quat, t float32) Quat {
	cos := float64(a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W)
	if cos < 0 {
		b = Quat{-b.X, -b.Y, -b.Z, -b.W}
		cos = -cos
	}
	if cos > 0.9995 {
		// Nearly parallel: lerp and renormalize.
		return Quat{
			X: LerpF(a.X, b.X, t),
			Y: LerpF(a.Y, b.Y, t),
			Z: LerpF(a.Z, b.Z, t),
			W: LerpF(a.W, b.W, t),
		}.normalize()
	}
	theta := math.Acos(cos)
	sin := math.Sin(theta)
	wa := float32(math.Sin((1-float64(t))*theta) / sin)
	wb := float32(math.Sin(float64(t)*theta) / sin)
	return Quat{
		X: a.X*wa + b.X*wb,
		Y: a.Y*wa + b.Y*wb,
		Z: a.Z*wa + b.Z*wb,
		W: a.W*wa + b.W*wb,
	}
}
