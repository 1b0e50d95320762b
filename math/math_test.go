package math

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

const tol = 1e-4

func assertVec3(t *testing.T, expected, actual Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X, actual.X, tol, "X")
	assert.InDelta(t, expected.Y, actual.Y, tol, "Y")
	assert.InDelta(t, expected.Z, actual.Z, tol, "Z")
}

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, float32(32), v1.Dot(v2))

	// Right x Up = Front in a right-handed system
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	normalized := NewVec3(3, 0, 0).Normalize()
	assert.Equal(t, NewVec3(1, 0, 0), normalized)
	assert.InDelta(t, 1, normalized.Length(), tol)

	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize(), "zero vector stays zero")
}

func TestSumVec2(t *testing.T) {
	sum := SumVec2([]Vec2{{1, 2}, {3, -4}, {0.5, 0}})
	assert.Equal(t, NewVec2(4.5, -2), sum)
	assert.Equal(t, Vec2Zero, SumVec2(nil))
}

func TestScalarHelpers(t *testing.T) {
	assert.InDelta(t, Pi/2, Radians(90), tol)
	assert.InDelta(t, 180, Degrees(Pi), tol)
	assert.Equal(t, float32(-89), Clamp(-120, -89, 89))
	assert.Equal(t, float32(89), Clamp(400, -89, 89))
	assert.Equal(t, float32(12.5), Clamp(12.5, -89, 89))
	assert.True(t, Approx(1, 1.00001, tol))
	assert.False(t, Approx(1, 1.1, tol))
}

func TestMat4Identity(t *testing.T) {
	m := Mat4Identity()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			expected := float32(0)
			if i == j {
				expected = 1
			}
			assert.Equal(t, expected, m[i][j], "[%d][%d]", i, j)
		}
	}
	assert.Equal(t, m, m.Mul(Mat4Identity()))
}

func TestMat4Translation(t *testing.T) {
	translation := NewVec3(1, 2, 3)
	m := Mat4Translation(translation)

	assert.Equal(t, translation, m.Position())
	assert.Equal(t, translation, Vec4{W: 1}.MulMat(m).ToVec3())
	assert.Equal(t, Vec3Right, m.TransformDirection(Vec3Right), "directions ignore translation")
}

func TestMat4TRSOrder(t *testing.T) {
	// Scale first, then rotate 90 degrees about Y, then translate.
	rot := QuaternionFromAxisAngle(Vec3Up, Pi/2)
	m := Mat4TRS(NewVec3(10, 0, 0), rot, NewVec3(2, 1, 1))

	p := m.TransformPoint(Vec3Right)
	assertVec3(t, NewVec3(10, 0, -2), p)
}

func TestMat4Array(t *testing.T) {
	m := Mat4Translation(NewVec3(7, 8, 9))
	a := m.Array()
	assert.Equal(t, float32(7), a[12])
	assert.Equal(t, float32(8), a[13])
	assert.Equal(t, float32(9), a[14])
	assert.Equal(t, float32(1), a[15])
}

func TestMat4Perspective(t *testing.T) {
	m := Mat4Perspective(Pi/4, 16.0/9.0, 0.1, 100)
	assert.NotZero(t, m[0][0])
	assert.NotZero(t, m[1][1])
	assert.Equal(t, float32(-1), m[2][3])
	assert.InDelta(t, m[1][1]/(16.0/9.0), m[0][0], tol)
}

func TestQuaternionIdentity(t *testing.T) {
	q := QuaternionIdentity()
	assert.Equal(t, Quaternion{0, 0, 0, 1}, q)
	assert.Equal(t, Mat4Identity(), q.ToMat4())
}

func TestQuaternionRotation(t *testing.T) {
	// Rotating +X by 90 degrees about +Y gives -Z
	q := QuaternionFromAxisAngle(Vec3Up, Pi/2)
	assertVec3(t, NewVec3(0, 0, -1), q.RotateVector(Vec3Right))

	// ToMat4 agrees with RotateVector
	assertVec3(t, q.RotateVector(Vec3Right), q.ToMat4().TransformDirection(Vec3Right))
}

func TestQuaternionFromYawPitch(t *testing.T) {
	cases := []struct{ yaw, pitch float32 }{
		{0, 0},
		{-90, 0},
		{-90, 30},
		{45, -60},
		{720, 89},
	}
	for _, c := range cases {
		yaw, pitch := Radians(c.yaw), Radians(c.pitch)
		q := QuaternionFromYawPitch(yaw, pitch)
		expected := NewVec3(
			-math32.Sin(yaw)*math32.Cos(pitch),
			math32.Sin(pitch),
			-math32.Cos(yaw)*math32.Cos(pitch),
		)
		assertVec3(t, expected, q.RotateVector(Vec3Back))

		// No roll: the right vector stays horizontal.
		assert.InDelta(t, 0, q.RotateVector(Vec3Right).Y, tol)
	}
}

func TestQuaternionFromEulerXYZ(t *testing.T) {
	q := QuaternionFromEulerXYZ(0.2, 0.4, 0.1)
	v := NewVec3(1, 2, 3)

	step := QuaternionFromAxisAngle(Vec3Front, 0.1).RotateVector(v)
	step = QuaternionFromAxisAngle(Vec3Up, 0.4).RotateVector(step)
	step = QuaternionFromAxisAngle(Vec3Right, 0.2).RotateVector(step)

	assertVec3(t, step, q.RotateVector(v))
}

func TestQuaternionLookRotation(t *testing.T) {
	dir := NewVec3(0, -4, -15)
	q := QuaternionLookRotation(dir, Vec3Up)

	assertVec3(t, dir.Normalize(), q.RotateVector(Vec3Back))
	assert.InDelta(t, 0, q.RotateVector(Vec3Right).Y, tol)
	assert.Greater(t, q.RotateVector(Vec3Up).Y, float32(0))

	assert.Equal(t, QuaternionIdentity(), QuaternionLookRotation(Vec3Up, Vec3Up))
	assert.True(t, QuaternionIdentity().ApproxEqual(QuaternionLookRotation(Vec3Back, Vec3Up), tol))
}

func TestQuaternionApproxEqual(t *testing.T) {
	q := QuaternionFromAxisAngle(Vec3Up, 1)
	neg := Quaternion{-q.X, -q.Y, -q.Z, -q.W}
	assert.True(t, q.ApproxEqual(neg, tol), "q and -q are the same rotation")
	assert.False(t, q.ApproxEqual(QuaternionIdentity(), tol))
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Mat4Identity()
	m2 := Mat4Identity()

	for i := 0; i < b.N; i++ {
		_ = m1.Mul(m2)
	}
}
