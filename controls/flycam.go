package controls

import (
	"diorama/input"
	"diorama/math"
	"diorama/scene"
)

// FlyCamera turns mouse motion, movement keys and the scroll wheel into
// camera orientation, position and field of view. Angles are in degrees.
type FlyCamera struct {
	Yaw   float32
	Pitch float32 // kept within ±PitchLimit

	Speed       float32 // units per second
	Sensitivity float32 // degrees per unit of mouse motion
	ZoomSpeed   float32 // degrees of FOV per scroll line

	PitchLimit    float32
	MinFOV        float32
	MaxFOV        float32
	PixelsPerLine float32 // pixel scroll amounts are divided by this

	Keys Bindings
}

func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		Yaw:           -90,
		Pitch:         0,
		Speed:         10,
		Sensitivity:   0.1,
		ZoomSpeed:     2,
		PitchLimit:    89,
		MinFOV:        20,
		MaxFOV:        90,
		PixelsPerLine: 50,
		Keys:          DefaultBindings(),
	}
}

// Update advances cam by one frame of dt seconds. A nil camera is a no-op.
// Look runs first so movement follows the orientation shown this frame.
func (fc *FlyCamera) Update(cam *scene.Camera, in Input, dt float32) {
	if cam == nil {
		return
	}
	fc.look(cam, in.DrainMotion())
	fc.move(cam, in, dt)
	fc.zoom(cam, in.DrainScroll())
}

func (fc *FlyCamera) look(cam *scene.Camera, motion []math.Vec2) {
	delta := math.SumVec2(motion)
	if delta.LengthSqr() == 0 {
		return
	}
	fc.Yaw += delta.X * fc.Sensitivity
	fc.Pitch = math.Clamp(fc.Pitch-delta.Y*fc.Sensitivity, -fc.PitchLimit, fc.PitchLimit)
	cam.Rotation = fc.Orientation()
}

// Orientation is yaw about world up followed by pitch about the local
// right axis, with no roll.
func (fc *FlyCamera) Orientation() math.Quaternion {
	return math.QuaternionFromYawPitch(math.Radians(fc.Yaw), math.Radians(fc.Pitch))
}

func (fc *FlyCamera) move(cam *scene.Camera, in KeyState, dt float32) {
	forward := cam.GetForward()
	right := cam.GetRight()

	var dir math.Vec3
	if anyHeld(in, fc.Keys.Forward) {
		dir = dir.Add(forward)
	}
	if anyHeld(in, fc.Keys.Back) {
		dir = dir.Sub(forward)
	}
	if anyHeld(in, fc.Keys.Left) {
		dir = dir.Sub(right)
	}
	if anyHeld(in, fc.Keys.Right) {
		dir = dir.Add(right)
	}
	if anyHeld(in, fc.Keys.Up) {
		dir = dir.Add(math.Vec3Up)
	}
	if anyHeld(in, fc.Keys.Down) {
		dir = dir.Sub(math.Vec3Up)
	}
	if dir.LengthSqr() == 0 {
		return
	}

	speed := fc.Speed
	if anyHeld(in, fc.Keys.Sprint) {
		speed *= 2
	}
	cam.Position = cam.Position.Add(dir.Normalize().Mul(speed * dt))
}

func (fc *FlyCamera) zoom(cam *scene.Camera, events []input.ScrollEvent) {
	var scroll float32
	for _, ev := range events {
		s := ev.Y
		if ev.Unit == input.ScrollPixel {
			s /= fc.PixelsPerLine
		}
		scroll += s
	}
	if scroll == 0 {
		return
	}
	fov := cam.FOV - math.Radians(scroll*fc.ZoomSpeed)
	cam.FOV = math.Clamp(fov, math.Radians(fc.MinFOV), math.Radians(fc.MaxFOV))
}
