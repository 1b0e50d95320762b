package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diorama/scene"
)

func TestRegisterAddsTexturesAndMaterials(t *testing.T) {
	w := scene.NewWorld()
	table := Register(w)

	assert.Equal(t, 5, w.TextureCount())
	assert.Equal(t, 8, w.MaterialCount())

	for _, name := range Names() {
		id, ok := table.ByName(name)
		require.True(t, ok, name)
		m, ok := w.Material(id)
		require.True(t, ok, name)
		assert.Equal(t, name, m.Name)
		assert.GreaterOrEqual(t, m.Roughness, float32(0))
		assert.LessOrEqual(t, m.Roughness, float32(1))
		assert.GreaterOrEqual(t, m.Metallic, float32(0))
		assert.LessOrEqual(t, m.Metallic, float32(1))
		assert.GreaterOrEqual(t, m.Reflectance, float32(0))
		assert.LessOrEqual(t, m.Reflectance, float32(1))
	}

	_, ok := table.ByName("marble")
	assert.False(t, ok)
}

func TestTexturedMaterials(t *testing.T) {
	w := scene.NewWorld()
	table := Register(w)

	textured := map[scene.MaterialID]string{
		table.Grass: "grass",
		table.Wood:  "wood",
		table.Stone: "stone",
		table.Water: "water",
		table.Metal: "metal",
	}
	for id, texName := range textured {
		m, _ := w.Material(id)
		require.True(t, m.HasTexture(), m.Name)
		tex := w.Texture(m.Texture)
		require.NotNil(t, tex)
		assert.Equal(t, texName, tex.Name)
	}

	for _, id := range []scene.MaterialID{table.Glass, table.LanternGlass, table.Sky} {
		m, _ := w.Material(id)
		assert.False(t, m.HasTexture(), m.Name)
	}
}

func TestMaterialParameters(t *testing.T) {
	grass := Grass(1)
	assert.InDelta(t, 0.18, grass.BaseColor.R, 1e-6)
	assert.InDelta(t, 0.9, grass.Roughness, 1e-6)
	assert.InDelta(t, 0.02, grass.Reflectance, 1e-6)
	assert.Equal(t, scene.AlphaOpaque, grass.AlphaMode)

	water := Water(1)
	assert.Equal(t, scene.AlphaBlend, water.AlphaMode)
	assert.InDelta(t, 0.4, water.BaseColor.A, 1e-6)
	assert.InDelta(t, 0.2, water.Reflectance, 1e-6)

	metal := Metal(1)
	assert.InDelta(t, 0.95, metal.Metallic, 1e-6)
	assert.InDelta(t, 0.15, metal.Roughness, 1e-6)

	lantern := LanternGlass()
	assert.True(t, lantern.Transparent())
	assert.InDelta(t, 0.3, lantern.Emissive.R, 1e-6)
	assert.InDelta(t, 0.27, lantern.Emissive.G, 1e-6)
	assert.InDelta(t, 0.18, lantern.Emissive.B, 1e-6)

	glass := Glass()
	assert.InDelta(t, 0.2, glass.BaseColor.A, 1e-6)
	assert.InDelta(t, 0.02, glass.Roughness, 1e-6)

	sky := Sky()
	assert.Equal(t, float32(1), sky.Roughness)
	assert.Equal(t, float32(0), sky.Metallic)
	assert.Equal(t, float32(0), sky.Reflectance)
}
