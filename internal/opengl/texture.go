package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"diorama/scene"
)

// uploadTexture creates a mipmapped, repeating sRGB texture from tex and
// returns its GL name. The GL context must be current.
func uploadTexture(tex *scene.Texture) (uint32, error) {
	if tex == nil {
		return 0, fmt.Errorf("nil texture")
	}
	if len(tex.Pixels) == 0 || len(tex.Pixels) != tex.Width*tex.Height*4 {
		return 0, fmt.Errorf("texture %q: %d bytes for %dx%d", tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.SRGB8_ALPHA8,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		gl.Ptr(tex.Pixels),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}
