// Package textures generates the procedural RGBA8 images used by the
// garden materials. Every rule is a pure function of the pixel coordinate.
package textures

import (
	"image/color"

	"diorama/scene"
)

// Rule computes the color of pixel (x, y).
type Rule func(x, y uint32) color.RGBA

// Generate evaluates rule over a width×height grid, row by row.
func Generate(name string, width, height uint32, rule Rule) *scene.Texture {
	tex := scene.NewTexture(name, int(width), int(height))
	i := 0
	for y := uint32(0); y < height; y++ {
		for x := uint32(0); x < width; x++ {
			c := rule(x, y)
			tex.Pixels[i] = c.R
			tex.Pixels[i+1] = c.G
			tex.Pixels[i+2] = c.B
			tex.Pixels[i+3] = c.A
			i += 4
		}
	}
	return tex
}

// Checker alternates two opaque colors in cell×cell squares, starting
// with a at the origin.
func Checker(cell uint32, a, b color.RGBA) Rule {
	return func(x, y uint32) color.RGBA {
		if ((x/cell)^(y/cell))&1 == 0 {
			return a
		}
		return b
	}
}

// addSat adds v to c, clamping at 255.
func addSat(c uint8, v uint8) uint8 {
	if sum := uint16(c) + uint16(v); sum < 255 {
		return uint8(sum)
	}
	return 255
}

func subSat(c uint8, v uint8) uint8 {
	if v > c {
		return 0
	}
	return c - v
}

// toByte truncates a non-negative float toward zero, saturating at 255.
func toByte(f float32) uint8 {
	switch {
	case f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f)
	}
}
