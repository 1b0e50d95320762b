package scene

import (
	"github.com/chewxy/math32"

	"diorama/math"
)

// ClipPlane is the half-space ax + by + cz + d >= 0. Normal (a, b, c)
// points into the inside of the frustum.
type ClipPlane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
// Positive means on the "inside" (same side as Normal).
func (p ClipPlane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]ClipPlane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromVP extracts the six frustum planes from a view-projection
// matrix (Gribb/Hartmann). Points transform as v*M, so clip coordinate i
// is column i of the matrix. Planes are normalized.
func FrustumFromVP(vp math.Mat4) Frustum {
	col := func(i int) math.Vec4 {
		return math.Vec4{X: vp[0][i], Y: vp[1][i], Z: vp[2][i], W: vp[3][i]}
	}
	c0, c1, c2, c3 := col(0), col(1), col(2), col(3)

	var f Frustum
	f.Planes[0] = normalizePlane(c3.X+c0.X, c3.Y+c0.Y, c3.Z+c0.Z, c3.W+c0.W)
	f.Planes[1] = normalizePlane(c3.X-c0.X, c3.Y-c0.Y, c3.Z-c0.Z, c3.W-c0.W)
	f.Planes[2] = normalizePlane(c3.X+c1.X, c3.Y+c1.Y, c3.Z+c1.Z, c3.W+c1.W)
	f.Planes[3] = normalizePlane(c3.X-c1.X, c3.Y-c1.Y, c3.Z-c1.Z, c3.W-c1.W)
	f.Planes[4] = normalizePlane(c3.X+c2.X, c3.Y+c2.Y, c3.Z+c2.Z, c3.W+c2.W)
	f.Planes[5] = normalizePlane(c3.X-c2.X, c3.Y-c2.Y, c3.Z-c2.Z, c3.W-c2.W)
	return f
}

func normalizePlane(a, b, c, d float32) ClipPlane {
	l := math.Vec3{X: a, Y: b, Z: c}.Length()
	if l == 0 {
		return ClipPlane{}
	}
	return ClipPlane{Normal: math.Vec3{X: a / l, Y: b / l, Z: c / l}, D: d / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

func (box AABB) Center() math.Vec3 {
	return box.Min.Add(box.Max).Mul(0.5)
}

// IntersectsFrustum returns false if the AABB is completely outside the frustum.
// For each plane it tests the corner most aligned with the plane normal.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for i := 0; i < 6; i++ {
		p := f.Planes[i]
		px := box.Max.X
		if p.Normal.X < 0 {
			px = box.Min.X
		}
		py := box.Max.Y
		if p.Normal.Y < 0 {
			py = box.Min.Y
		}
		pz := box.Max.Z
		if p.Normal.Z < 0 {
			pz = box.Min.Z
		}
		if p.DistanceTo(math.Vec3{X: px, Y: py, Z: pz}) < 0 {
			return false
		}
	}
	return true
}

// TransformAABB returns the world-space box enclosing local's eight
// corners transformed by m.
func TransformAABB(local AABB, m math.Mat4) AABB {
	mn, mx := local.Min, local.Max
	corners := [8]math.Vec3{
		{X: mn.X, Y: mn.Y, Z: mn.Z},
		{X: mx.X, Y: mn.Y, Z: mn.Z},
		{X: mn.X, Y: mx.Y, Z: mn.Z},
		{X: mx.X, Y: mx.Y, Z: mn.Z},
		{X: mn.X, Y: mn.Y, Z: mx.Z},
		{X: mx.X, Y: mn.Y, Z: mx.Z},
		{X: mn.X, Y: mx.Y, Z: mx.Z},
		{X: mx.X, Y: mx.Y, Z: mx.Z},
	}
	first := m.TransformPoint(corners[0])
	out := AABB{Min: first, Max: first}
	for i := 1; i < 8; i++ {
		wp := m.TransformPoint(corners[i])
		out.Min = math.Vec3{X: math32.Min(out.Min.X, wp.X), Y: math32.Min(out.Min.Y, wp.Y), Z: math32.Min(out.Min.Z, wp.Z)}
		out.Max = math.Vec3{X: math32.Max(out.Max.X, wp.X), Y: math32.Max(out.Max.Y, wp.Y), Z: math32.Max(out.Max.Z, wp.Z)}
	}
	return out
}

// Contains reports whether p lies strictly inside the box.
func (box AABB) Contains(p math.Vec3) bool {
	return p.X > box.Min.X && p.X < box.Max.X &&
		p.Y > box.Min.Y && p.Y < box.Max.Y &&
		p.Z > box.Min.Z && p.Z < box.Max.Z
}
