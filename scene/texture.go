package scene

import (
	"image"
	"image/draw"
)

// Texture holds CPU-side pixel data for a 2D texture.
type Texture struct {
	Name   string
	Width  int
	Height int
	// Pixels in straight-alpha RGBA8 (4 bytes per pixel, row-major, top-to-bottom).
	Pixels []byte
}

// NewTexture allocates a zeroed width×height RGBA8 texture.
func NewTexture(name string, width, height int) *Texture {
	return &Texture{
		Name:   name,
		Width:  width,
		Height: height,
		Pixels: make([]byte, width*height*4),
	}
}

// NewSolidTexture creates a 1x1 texture with the given RGBA color values (0-255).
func NewSolidTexture(name string, r, g, b, a uint8) *Texture {
	return &Texture{
		Name:   name,
		Width:  1,
		Height: 1,
		Pixels: []byte{r, g, b, a},
	}
}

// At returns the RGBA bytes of pixel (x, y).
func (t *Texture) At(x, y int) [4]uint8 {
	i := (y*t.Width + x) * 4
	return [4]uint8{t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2], t.Pixels[i+3]}
}

// Image wraps the pixel buffer without copying.
func (t *Texture) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    t.Pixels,
		Stride: t.Width * 4,
		Rect:   image.Rect(0, 0, t.Width, t.Height),
	}
}

// TextureFromImage copies img into a new texture, converting to straight
// alpha when needed.
func TextureFromImage(name string, img image.Image) *Texture {
	b := img.Bounds()
	tex := NewTexture(name, b.Dx(), b.Dy())
	dst := tex.Image()
	if src, ok := img.(*image.NRGBA); ok {
		// Row copy keeps low-alpha pixels exact.
		for y := 0; y < tex.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(dst.Pix[y*dst.Stride:(y+1)*dst.Stride], row[:dst.Stride])
		}
		return tex
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return tex
}
