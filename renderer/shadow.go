package renderer

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"diorama/math"
)

// SunViewProjection returns the orthographic light-space matrix for a
// directional light travelling along dir, centered on focus. The box is
// extent wide on each side and reaches extent*3 past the focus. It fails
// for a zero direction.
func SunViewProjection(dir, focus math.Vec3, extent float32) (math.Mat4, bool) {
	if dir.LengthSqr() < 1e-6 || extent <= 0 {
		return math.Mat4Identity(), false
	}
	dir = dir.Normalize()

	up := mgl32.Vec3{0, 1, 0}
	if math32.Abs(dir.Y) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	eye := focus.Sub(dir.Mul(extent))
	view := mgl32.LookAtV(toMGL(eye), toMGL(focus), up)
	proj := mgl32.Ortho(-extent, extent, -extent, extent, -extent, extent*3)
	return fromMGL(proj.Mul4(view)), true
}

func toMGL(v math.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{v.X, v.Y, v.Z}
}

// fromMGL converts a column-vector matrix to the row-vector convention.
// Both share the same column-major memory layout.
func fromMGL(m mgl32.Mat4) math.Mat4 {
	var out math.Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			out[i][j] = m[i*4+j]
		}
	}
	return out
}
