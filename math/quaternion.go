package math

import "github.com/chewxy/math32"

type Quaternion struct {
	X, Y, Z, W float32
}

func QuaternionIdentity() Quaternion {
	return Quaternion{X: 0, Y: 0, Z: 0, W: 1}
}

func QuaternionFromAxisAngle(axis Vec3, angle float32) Quaternion {
	halfAngle := angle / 2
	s := math32.Sin(halfAngle)
	c := math32.Cos(halfAngle)

	axis = axis.Normalize()
	return Quaternion{
		X: axis.X * s,
		Y: axis.Y * s,
		Z: axis.Z * s,
		W: c,
	}
}

// QuaternionFromYawPitch composes a rotation about world Y (yaw) with a
// rotation about the local X axis (pitch). Angles are in radians; roll is
// always zero.
func QuaternionFromYawPitch(yaw, pitch float32) Quaternion {
	qy := QuaternionFromAxisAngle(Vec3Up, yaw)
	qx := QuaternionFromAxisAngle(Vec3Right, pitch)
	return qy.Mul(qx)
}

// QuaternionFromEulerXYZ builds Rx(x) * Ry(y) * Rz(z), angles in radians.
func QuaternionFromEulerXYZ(x, y, z float32) Quaternion {
	qx := QuaternionFromAxisAngle(Vec3Right, x)
	qy := QuaternionFromAxisAngle(Vec3Up, y)
	qz := QuaternionFromAxisAngle(Vec3Front, z)
	return qx.Mul(qy).Mul(qz)
}

// QuaternionFromBasis converts an orthonormal basis (the images of +X, +Y
// and +Z) into a rotation.
func QuaternionFromBasis(right, up, back Vec3) Quaternion {
	m00, m01, m02 := right.X, up.X, back.X
	m10, m11, m12 := right.Y, up.Y, back.Y
	m20, m21, m22 := right.Z, up.Z, back.Z

	trace := m00 + m11 + m22

	var q Quaternion
	if trace > 0 {
		s := 0.5 / math32.Sqrt(trace+1)
		q.W = 0.25 / s
		q.X = (m21 - m12) * s
		q.Y = (m02 - m20) * s
		q.Z = (m10 - m01) * s
	} else if m00 > m11 && m00 > m22 {
		s := 2 * math32.Sqrt(1+m00-m11-m22)
		q.W = (m21 - m12) / s
		q.X = 0.25 * s
		q.Y = (m01 + m10) / s
		q.Z = (m02 + m20) / s
	} else if m11 > m22 {
		s := 2 * math32.Sqrt(1+m11-m00-m22)
		q.W = (m02 - m20) / s
		q.X = (m01 + m10) / s
		q.Y = 0.25 * s
		q.Z = (m12 + m21) / s
	} else {
		s := 2 * math32.Sqrt(1+m22-m00-m11)
		q.W = (m10 - m01) / s
		q.X = (m02 + m20) / s
		q.Y = (m12 + m21) / s
		q.Z = 0.25 * s
	}
	return q.Normalize()
}

// QuaternionLookRotation orients -Z toward dir with +Y as close to up as
// possible. A zero dir, or one parallel to up, yields the identity.
func QuaternionLookRotation(dir, up Vec3) Quaternion {
	forward := dir.Normalize()
	right := forward.Cross(up)
	if forward.LengthSqr() == 0 || right.LengthSqr() < 1e-12 {
		return QuaternionIdentity()
	}
	right = right.Normalize()
	newUp := right.Cross(forward)
	return QuaternionFromBasis(right, newUp, forward.Negate())
}

// Mul returns q*other: other is applied first, then q.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return Quaternion{
		X: q.W*other.X + q.X*other.W + q.Y*other.Z - q.Z*other.Y,
		Y: q.W*other.Y - q.X*other.Z + q.Y*other.W + q.Z*other.X,
		Z: q.W*other.Z + q.X*other.Y - q.Y*other.X + q.Z*other.W,
		W: q.W*other.W - q.X*other.X - q.Y*other.Y - q.Z*other.Z,
	}
}

func (q Quaternion) Length() float32 {
	return math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

func (q Quaternion) Normalize() Quaternion {
	length := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if length > 0 {
		invLength := 1 / length
		return Quaternion{
			X: q.X * invLength,
			Y: q.Y * invLength,
			Z: q.Z * invLength,
			W: q.W * invLength,
		}
	}
	return q
}

func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{X: -q.X, Y: -q.Y, Z: -q.Z, W: q.W}
}

func (q Quaternion) RotateVector(v Vec3) Vec3 {
	qVec := Vec3{X: q.X, Y: q.Y, Z: q.Z}
	t := qVec.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(qVec.Cross(t))
}

// ToMat4 returns the rotation in the row-vector convention used by Mat4.
func (q Quaternion) ToMat4() Mat4 {
	xx := q.X * q.X
	yy := q.Y * q.Y
	zz := q.Z * q.Z
	xy := q.X * q.Y
	xz := q.X * q.Z
	yz := q.Y * q.Z
	wx := q.W * q.X
	wy := q.W * q.Y
	wz := q.W * q.Z

	return Mat4{
		{1 - 2*(yy+zz), 2 * (xy + wz), 2 * (xz - wy), 0},
		{2 * (xy - wz), 1 - 2*(xx+zz), 2 * (yz + wx), 0},
		{2 * (xz + wy), 2 * (yz - wx), 1 - 2*(xx+yy), 0},
		{0, 0, 0, 1},
	}
}

// ApproxEqual compares two rotations, treating q and -q as the same.
func (q Quaternion) ApproxEqual(other Quaternion, eps float32) bool {
	dot := q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
	return math32.Abs(math32.Abs(dot)-1) <= eps
}
