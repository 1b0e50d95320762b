package math

import "github.com/chewxy/math32"

const (
	Pi       = float32(math32.Pi)
	degToRad = Pi / 180
	radToDeg = 180 / Pi
)

// Radians converts degrees to radians.
func Radians(deg float32) float32 {
	return deg * degToRad
}

// Degrees converts radians to degrees.
func Degrees(rad float32) float32 {
	return rad * radToDeg
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}

// Approx reports whether a and b differ by no more than eps.
func Approx(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}
