package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diorama/core"
	"diorama/input"
	"diorama/math"
	"diorama/scene"
)

func startCamera() *scene.Camera {
	cam := scene.NewCamera(math.Radians(60), 16.0/9.0, 0.1, 1000)
	cam.Position = math.NewVec3(0, 5, 15)
	cam.LookAt(math.NewVec3(0, 1, 0), math.Vec3Up)
	return cam
}

func press(s *input.State, keys ...int) {
	for _, k := range keys {
		s.SetKey(k, true)
	}
}

func TestZeroInputLeavesCameraUnchanged(t *testing.T) {
	cam := startCamera()
	before := *cam
	fc := NewFlyCamera()

	fc.Update(cam, input.NewState(), 1.0/60)

	assert.Equal(t, before, *cam)
	assert.Equal(t, float32(-90), fc.Yaw)
	assert.Equal(t, float32(0), fc.Pitch)
}

func TestMouseDeltaTurnsYaw(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()
	in.PushMotion(math.NewVec2(10, 0))

	fc.Update(cam, in, 1.0/60)

	assert.InDelta(t, -89.0, fc.Yaw, 1e-5)
	assert.Equal(t, float32(0), fc.Pitch)
	assert.True(t, cam.Rotation.ApproxEqual(fc.Orientation(), 1e-6))
	assert.InDelta(t, 0, cam.GetRight().Y, 1e-6, "no roll")
	assert.Equal(t, math.NewVec3(0, 5, 15), cam.Position)
}

func TestMotionEventsAreSummed(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()
	in.PushMotion(math.NewVec2(4, 10))
	in.PushMotion(math.NewVec2(6, -30))

	fc.Update(cam, in, 0)

	assert.InDelta(t, -89.0, fc.Yaw, 1e-5)
	// mouse up (negative dy) pitches up
	assert.InDelta(t, 2.0, fc.Pitch, 1e-5)
	assert.Empty(t, in.DrainMotion())
}

func TestPitchStaysClampedYawUnbounded(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()

	deltas := []math.Vec2{{X: 0, Y: -5000}, {X: 3, Y: 1}, {X: 0, Y: 9000}, {X: 7000, Y: -17}, {X: -1, Y: -2000}}
	for _, d := range deltas {
		in.PushMotion(d)
		fc.Update(cam, in, 1.0/60)
		require.GreaterOrEqual(t, fc.Pitch, float32(-89))
		require.LessOrEqual(t, fc.Pitch, float32(89))
	}
	assert.Equal(t, float32(89), fc.Pitch)
	assert.Greater(t, fc.Yaw, float32(360))

	// looking straight up is never reached, so right stays level
	assert.InDelta(t, 0, cam.GetRight().Y, 1e-5)
}

func TestZoomLineAndPixelUnits(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()

	in.PushScroll(input.ScrollEvent{Unit: input.ScrollLine, Y: 1})
	fc.Update(cam, in, 0)
	assert.InDelta(t, math.Radians(58), cam.FOV, 1e-5, "scrolling forward narrows the view")

	in.PushScroll(input.ScrollEvent{Unit: input.ScrollPixel, Y: 100})
	fc.Update(cam, in, 0)
	assert.InDelta(t, math.Radians(54), cam.FOV, 1e-5)

	in.PushScroll(input.ScrollEvent{Unit: input.ScrollLine, Y: -3})
	in.PushScroll(input.ScrollEvent{Unit: input.ScrollPixel, Y: -50})
	fc.Update(cam, in, 0)
	assert.InDelta(t, math.Radians(62), cam.FOV, 1e-5)
}

func TestZoomStaysClamped(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()

	scrolls := []input.ScrollEvent{
		{Unit: input.ScrollLine, Y: 100},
		{Unit: input.ScrollPixel, Y: -90000},
		{Unit: input.ScrollLine, Y: 3},
		{Unit: input.ScrollPixel, Y: 12345},
		{Unit: input.ScrollLine, Y: -0.5},
	}
	lo, hi := math.Radians(20), math.Radians(90)
	for _, ev := range scrolls {
		in.PushScroll(ev)
		fc.Update(cam, in, 0)
		require.GreaterOrEqual(t, cam.FOV, lo-1e-6)
		require.LessOrEqual(t, cam.FOV, hi+1e-6)
	}

	in.PushScroll(input.ScrollEvent{Unit: input.ScrollLine, Y: 1000})
	fc.Update(cam, in, 0)
	assert.InDelta(t, lo, cam.FOV, 1e-6)

	in.PushScroll(input.ScrollEvent{Unit: input.ScrollLine, Y: -1000})
	fc.Update(cam, in, 0)
	assert.InDelta(t, hi, cam.FOV, 1e-6)
}

func moved(t *testing.T, dt float32, keys ...int) float32 {
	t.Helper()
	cam := startCamera()
	start := cam.Position
	fc := NewFlyCamera()
	in := input.NewState()
	press(in, keys...)
	fc.Update(cam, in, dt)
	return cam.Position.Distance(start)
}

func TestDiagonalIsNotFaster(t *testing.T) {
	dt := float32(0.1)
	straight := moved(t, dt, core.KeyW)
	diagonal := moved(t, dt, core.KeyW, core.KeyD)
	threeWay := moved(t, dt, core.KeyW, core.KeyD, core.KeySpace)

	assert.InDelta(t, 1.0, straight, 1e-5)
	assert.InDelta(t, straight, diagonal, 1e-5)
	assert.InDelta(t, straight, threeWay, 1e-5)
}

func TestMovementScalesWithTimeAndSprint(t *testing.T) {
	assert.InDelta(t, 5.0, moved(t, 0.5, core.KeyS), 1e-5)
	assert.InDelta(t, 10.0, moved(t, 1, core.KeyS), 1e-5)
	assert.InDelta(t, 20.0, moved(t, 1, core.KeyS, core.KeyLeftShift), 1e-5)
	assert.InDelta(t, 20.0, moved(t, 1, core.KeyA, core.KeyRightShift), 1e-5)

	// sprint alone does not move
	assert.Equal(t, float32(0), moved(t, 1, core.KeyLeftShift))
	// opposing keys cancel
	assert.Equal(t, float32(0), moved(t, 1, core.KeyW, core.KeyS))
}

func TestVerticalMovesAlongWorldUp(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()
	press(in, core.KeySpace)
	fc.Update(cam, in, 0.5)
	assert.InDelta(t, 10, cam.Position.Y, 1e-5)
	assert.InDelta(t, 0, cam.Position.X, 1e-6)
	assert.InDelta(t, 15, cam.Position.Z, 1e-6)

	in = input.NewState()
	press(in, core.KeyRightControl)
	fc.Update(cam, in, 0.5)
	assert.InDelta(t, 5, cam.Position.Y, 1e-5)
}

func TestMovementFollowsNewOrientation(t *testing.T) {
	cam := startCamera()
	fc := NewFlyCamera()
	in := input.NewState()
	// +90 degrees of yaw brings -90 to 0, which faces -Z
	in.PushMotion(math.NewVec2(900, 0))
	press(in, core.KeyW)

	fc.Update(cam, in, 1)

	assert.InDelta(t, 0, fc.Yaw, 1e-4)
	assert.InDelta(t, 0, cam.Position.X, 1e-4)
	assert.InDelta(t, 5, cam.Position.Y, 1e-4)
	assert.InDelta(t, 5, cam.Position.Z, 1e-4)
}

func TestYawMinus90FacesPositiveX(t *testing.T) {
	fc := NewFlyCamera()
	f := fc.Orientation().RotateVector(math.Vec3Back)
	assert.InDelta(t, 1, f.X, 1e-6)
	assert.InDelta(t, 0, f.Z, 1e-6)
}

func TestNilCameraIsNoOp(t *testing.T) {
	fc := NewFlyCamera()
	in := input.NewState()
	in.PushMotion(math.NewVec2(10, 10))
	assert.NotPanics(t, func() { fc.Update(nil, in, 1) })
	assert.Equal(t, float32(-90), fc.Yaw)
}

func TestRotatorRotateLeft(t *testing.T) {
	root := core.NewTransform()
	r := NewRotator()
	in := input.NewState()
	press(in, core.KeyQ)

	for i := 0; i < 4; i++ {
		r.Update(&root, in, 0.25)
	}
	want := math.QuaternionFromAxisAngle(math.Vec3Up, 0.8)
	assert.True(t, root.Rotation.ApproxEqual(want, 1e-5))
}

func TestRotatorRotateRight(t *testing.T) {
	root := core.NewTransform()
	r := NewRotator()
	in := input.NewState()
	press(in, core.KeyE)

	r.Update(&root, in, 0.5)
	want := math.QuaternionFromAxisAngle(math.Vec3Up, -0.4)
	assert.True(t, root.Rotation.ApproxEqual(want, 1e-5))
}

func TestRotatorCancelsAndFreezes(t *testing.T) {
	root := core.TransformAt(math.NewVec3(1, 2, 3))
	root.RotateY(0.3)
	before := root
	r := NewRotator()

	both := input.NewState()
	press(both, core.KeyQ, core.KeyE)
	r.Update(&root, both, 10)
	assert.Equal(t, before, root)

	r.Update(&root, input.NewState(), 10)
	assert.Equal(t, before, root)

	assert.NotPanics(t, func() {
		held := input.NewState()
		press(held, core.KeyQ)
		r.Update(nil, held, 1)
	})
}
