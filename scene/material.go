package scene

import "diorama/core"

type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaBlend
)

func (m AlphaMode) String() string {
	if m == AlphaBlend {
		return "blend"
	}
	return "opaque"
}

// Material describes physically based surface appearance. Materials are
// immutable once added to a world and shared by handle.
type Material struct {
	Name      string
	BaseColor core.Color // multiplied with Texture when one is set
	Texture   TextureID

	Roughness   float32 // 0 = mirror, 1 = fully rough
	Metallic    float32 // 0 = dielectric, 1 = metal
	Reflectance float32 // specular intensity of dielectrics

	AlphaMode AlphaMode
	Emissive  core.Color // self-emitted radiance, added after lighting
}

// DefaultMaterial returns a plain white matte material.
func DefaultMaterial() Material {
	return Material{
		Name:        "Default",
		BaseColor:   core.ColorWhite,
		Roughness:   0.5,
		Reflectance: 0.5,
		Emissive:    core.ColorBlack,
	}
}

func (m Material) Transparent() bool {
	return m.AlphaMode == AlphaBlend
}

func (m Material) HasTexture() bool {
	return m.Texture != NoTexture
}
