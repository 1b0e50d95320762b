package scene

import (
	"diorama/math"
)

// Camera represents a perspective view camera. It looks down its local -Z.
type Camera struct {
	Position    math.Vec3
	Rotation    math.Quaternion
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Position:    math.Vec3Zero,
		Rotation:    math.QuaternionIdentity(),
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
	}
}

func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
	}
}

// LookAt turns the camera toward target keeping up as close to +Y as
// possible.
func (c *Camera) LookAt(target, up math.Vec3) {
	c.Rotation = math.QuaternionLookRotation(target.Sub(c.Position), up)
}

func (c *Camera) GetViewMatrix() math.Mat4 {
	return math.Mat4Translation(c.Position.Negate()).Mul(c.Rotation.Conjugate().ToMat4())
}

func (c *Camera) GetProjectionMatrix() math.Mat4 {
	return math.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewProjectionMatrix() math.Mat4 {
	return c.GetViewMatrix().Mul(c.GetProjectionMatrix())
}

func (c *Camera) GetForward() math.Vec3 {
	return c.Rotation.RotateVector(math.Vec3Back)
}

func (c *Camera) GetRight() math.Vec3 {
	return c.Rotation.RotateVector(math.Vec3Right)
}
