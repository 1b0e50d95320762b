package textures

import (
	"image/color"

	"github.com/chewxy/math32"

	"diorama/scene"
)

const (
	Size      = 128
	MetalSize = 64
)

var (
	grassLight = color.RGBA{46, 140, 64, 255}
	grassDark  = color.RGBA{38, 120, 56, 255}
	woodBase   = color.RGBA{110, 72, 45, 255}
	waterBase  = color.RGBA{40, 120, 200, 160}
)

// GrassRule is a 16 px two-tone green checkerboard.
var GrassRule = Checker(16, grassLight, grassDark)

// WoodRule draws vertical grain bands.
func WoodRule(x, _ uint32) color.RGBA {
	t := (math32.Sin(float32(x)/8)*0.5 + 0.5) * 40
	return color.RGBA{
		R: addSat(woodBase.R, toByte(t)),
		G: addSat(woodBase.G, toByte(t*0.7)),
		B: addSat(woodBase.B, toByte(t*0.4)),
		A: 255,
	}
}

// StoneRule is gray speckle in [120, 162] driven by an integer hash.
func StoneRule(x, y uint32) color.RGBA {
	h := hash(x*374761393 ^ y*668265263)
	g := 120 + uint8(h&0xFF)/6
	return color.RGBA{g, g, g, 255}
}

// WaterRule is translucent blue with a soft wave pattern.
func WaterRule(x, y uint32) color.RGBA {
	fx := float32(x) / Size
	fy := float32(y) / Size
	w := ((math32.Sin(fx*10)+math32.Cos(fy*14))*0.5 + 0.5) * 30
	return color.RGBA{
		R: waterBase.R,
		G: addSat(waterBase.G, toByte(w)),
		B: addSat(waterBase.B, toByte(w*0.8)),
		A: waterBase.A,
	}
}

// MetalRule is a brushed ramp repeating every 8 columns.
func MetalRule(x, _ uint32) color.RGBA {
	v := subSat(200, uint8(x%8)*4)
	return color.RGBA{v, v, v, 255}
}

// hash is a PCG-style integer mix; all arithmetic wraps.
func hash(u uint32) uint32 {
	v := u*747796405 + 2891336453
	v ^= v >> 16
	v *= 2246822519
	return v ^ (v >> 13)
}

func Grass() *scene.Texture { return Generate("grass", Size, Size, GrassRule) }

func Wood() *scene.Texture { return Generate("wood", Size, Size, WoodRule) }

func Stone() *scene.Texture { return Generate("stone", Size, Size, StoneRule) }

func Water() *scene.Texture { return Generate("water", Size, Size, WaterRule) }

func Metal() *scene.Texture { return Generate("metal", MetalSize, MetalSize, MetalRule) }
