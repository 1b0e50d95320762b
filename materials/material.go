// Package materials defines the garden's shared surface materials and
// registers them, together with their procedural textures, in a world.
package materials

import (
	"diorama/core"
	"diorama/scene"
	"diorama/textures"
)

// Table holds the handle of every garden material. It is built once and
// read by the scene builder.
type Table struct {
	Grass        scene.MaterialID
	Wood         scene.MaterialID
	Stone        scene.MaterialID
	Glass        scene.MaterialID
	Water        scene.MaterialID
	Metal        scene.MaterialID
	LanternGlass scene.MaterialID
	Sky          scene.MaterialID
}

// Register generates the five procedural textures, adds the eight garden
// materials to reg and returns their handles.
func Register(reg scene.Registry) Table {
	grass := reg.AddTexture(textures.Grass())
	wood := reg.AddTexture(textures.Wood())
	stone := reg.AddTexture(textures.Stone())
	water := reg.AddTexture(textures.Water())
	metal := reg.AddTexture(textures.Metal())

	return Table{
		Grass:        reg.AddMaterial(Grass(grass)),
		Wood:         reg.AddMaterial(Wood(wood)),
		Stone:        reg.AddMaterial(Stone(stone)),
		Glass:        reg.AddMaterial(Glass()),
		Water:        reg.AddMaterial(Water(water)),
		Metal:        reg.AddMaterial(Metal(metal)),
		LanternGlass: reg.AddMaterial(LanternGlass()),
		Sky:          reg.AddMaterial(Sky()),
	}
}

// ByName looks up a handle by material name.
func (t Table) ByName(name string) (scene.MaterialID, bool) {
	switch name {
	case "grass":
		return t.Grass, true
	case "wood":
		return t.Wood, true
	case "stone":
		return t.Stone, true
	case "glass":
		return t.Glass, true
	case "water":
		return t.Water, true
	case "metal":
		return t.Metal, true
	case "lantern_glass":
		return t.LanternGlass, true
	case "sky":
		return t.Sky, true
	}
	return scene.NoMaterial, false
}

// Names lists the material names in registration order.
func Names() []string {
	return []string{"grass", "wood", "stone", "glass", "water", "metal", "lantern_glass", "sky"}
}

// --- Garden material library ---

// NewMaterial returns an opaque dielectric with the engine defaults.
func NewMaterial(name string, base core.Color) scene.Material {
	m := scene.DefaultMaterial()
	m.Name = name
	m.BaseColor = base
	return m
}

func Grass(tex scene.TextureID) scene.Material {
	m := NewMaterial("grass", core.RGB(0.18, 0.55, 0.25))
	m.Texture = tex
	m.Roughness = 0.9
	m.Reflectance = 0.02
	return m
}

func Wood(tex scene.TextureID) scene.Material {
	m := NewMaterial("wood", core.RGB(0.43, 0.28, 0.16))
	m.Texture = tex
	m.Roughness = 0.8
	m.Reflectance = 0.04
	return m
}

func Stone(tex scene.TextureID) scene.Material {
	m := NewMaterial("stone", core.RGB(0.5, 0.5, 0.5))
	m.Texture = tex
	m.Roughness = 0.95
	m.Reflectance = 0.03
	return m
}

// Glass is registered for completeness; no garden object uses it.
func Glass() scene.Material {
	m := NewMaterial("glass", core.RGBA(0.8, 0.95, 1.0, 0.2))
	m.AlphaMode = scene.AlphaBlend
	m.Roughness = 0.02
	m.Reflectance = 0.08
	return m
}

func Water(tex scene.TextureID) scene.Material {
	m := NewMaterial("water", core.RGBA(0.2, 0.5, 1.0, 0.4))
	m.Texture = tex
	m.AlphaMode = scene.AlphaBlend
	m.Roughness = 0.03
	m.Reflectance = 0.2
	return m
}

func Metal(tex scene.TextureID) scene.Material {
	m := NewMaterial("metal", core.RGB(0.8, 0.82, 0.85))
	m.Texture = tex
	m.Metallic = 0.95
	m.Roughness = 0.15
	m.Reflectance = 0.5
	return m
}

func LanternGlass() scene.Material {
	m := NewMaterial("lantern_glass", core.RGBA(1.0, 0.95, 0.8, 0.35))
	m.AlphaMode = scene.AlphaBlend
	m.Roughness = 0.05
	m.Emissive = core.RGB(1.0, 0.9, 0.6).Scale(0.3)
	return m
}

// Sky is matte so the inverted dome reads as a flat backdrop.
func Sky() scene.Material {
	m := NewMaterial("sky", core.RGB(0.52, 0.75, 0.95))
	m.Roughness = 1
	m.Reflectance = 0
	return m
}
