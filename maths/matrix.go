package maths

// Matrix is a column-major 4x4 matrix: m[col*4+row].
type Matrix [16]float32

// MatrixIdentity returns the identity matrix.
func MatrixIdentity() Matrix {
	return Matrix{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// TR builds a translate-rotate transform.
func TR(pos Vec3, rot Quat) Matrix {
	return TRS(pos, rot, 1)
}

// TRS builds a translate-rotate-scale transform with a uniform scale.
func TRS(pos Vec3, rot Quat, scale float32) Matrix {
	x, y, z, w := rot.X, rot.Y, rot.Z, rot.W
	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	return Matrix{
		(1 - 2*(yy+zz)) * scale, 2 * (xy + wz) * scale, 2 * (xz - wy) * scale, 0,
		2 * (xy - wz) * scale, (1 - 2*(xx+zz)) * scale, 2 * (yz + wx) * scale, 0,
		2 * (xz + wy) * scale, 2 * (yz - wx) * scale, (1 - 2*(xx+yy)) * scale, 0,
		pos.X, pos.Y, pos.Z, 1,
	}
}

// Mul composes two transforms: the result applies b first, then a.
func (a Matrix) Mul(b Matrix) Matrix {
	var out Matrix
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row]*b[col*4+0] +
					a[1*4+row]*b[col*4+1] +
					a[2*4+row]*b[col*4+2] +
					a[3*4+row]*b[col*4+3]
		}
	}
	return out
}

// TransformPoint applies the transform to a point (w=1).
func (a Matrix) TransformPoint(v Vec3) Vec3 {
	return Vec3{
		X: a[0]*v.X + a[4]*v.Y + a[8]*v.Z + a[12],
		Y: a[1]*v.X + a[5]*v.Y + a[9]*v.Z + a[13],
		Z: a[2]*v.X + a[6]*v.Y + a[10]*v.Z + a[14],
	}
}
