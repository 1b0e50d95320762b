package core

import (
	"github.com/chewxy/math32"

	"diorama/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// RGB returns an opaque color.
func RGB(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// RGBA returns a color with explicit alpha.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Scale multiplies the color channels by f and leaves alpha alone.
func (c Color) Scale(f float32) Color {
	return Color{R: c.R * f, G: c.G * f, B: c.B * f, A: c.A}
}

// Linear converts an sRGB-encoded color to linear space. Alpha is kept.
func (c Color) Linear() Color {
	return Color{srgbToLinear(c.R), srgbToLinear(c.G), srgbToLinear(c.B), c.A}
}

func srgbToLinear(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

type Transform struct {
	Position math.Vec3
	Rotation math.Quaternion
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.QuaternionIdentity(),
		Scale:    math.Vec3One,
	}
}

// TransformAt returns an unrotated, unscaled transform at pos.
func TransformAt(pos math.Vec3) Transform {
	t := NewTransform()
	t.Position = pos
	return t
}

// WithScale returns a copy of t with the given scale.
func (t Transform) WithScale(scale math.Vec3) Transform {
	t.Scale = scale
	return t
}

// WithRotation returns a copy of t with the given rotation.
func (t Transform) WithRotation(rot math.Quaternion) Transform {
	t.Rotation = rot
	return t
}

func (t Transform) GetMatrix() math.Mat4 {
	return math.Mat4TRS(t.Position, t.Rotation, t.Scale)
}

// GetForward returns the local -Z axis, the direction cameras look along.
func (t Transform) GetForward() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Back)
}

func (t Transform) GetRight() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Right)
}

func (t Transform) GetUp() math.Vec3 {
	return t.Rotation.RotateVector(math.Vec3Up)
}

// RotateY turns the transform about the world vertical axis by angle
// radians. Successive calls accumulate.
func (t *Transform) RotateY(angle float32) {
	delta := math.QuaternionFromAxisAngle(math.Vec3Up, angle)
	t.Rotation = delta.Mul(t.Rotation).Normalize()
}
