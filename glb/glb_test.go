package glb

import (
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diorama/garden"
	"diorama/materials"
	"diorama/scene"
)

func buildGarden(t *testing.T) (*scene.World, garden.Diorama) {
	t.Helper()
	w := scene.NewWorld()
	d := garden.Build(w, materials.Register(w))
	return w, d
}

func TestDocumentMirrorsWorld(t *testing.T) {
	w, d := buildGarden(t)

	doc, err := Document(w)
	require.NoError(t, err)

	assert.Len(t, doc.Nodes, w.Len())
	assert.Len(t, doc.Materials, w.MaterialCount())
	assert.Len(t, doc.Textures, w.TextureCount())
	assert.Len(t, doc.Images, w.TextureCount())
	assert.Len(t, doc.Meshes, 10)
	assert.Equal(t, []int{int(d.Root) - 1, int(d.Sun) - 1}, doc.Scenes[0].Nodes)
	assert.Len(t, doc.Nodes[d.Root-1].Children, 97)
}

func TestDocumentSharesMeshes(t *testing.T) {
	w, _ := buildGarden(t)
	doc, err := Document(w)
	require.NoError(t, err)

	var stones []*gltf.Node
	for _, n := range doc.Nodes {
		if n.Name == "path_stone" {
			stones = append(stones, n)
		}
	}
	require.NotEmpty(t, stones)
	for _, n := range stones {
		require.NotNil(t, n.Mesh)
		assert.Equal(t, *stones[0].Mesh, *n.Mesh)
	}
}

func TestDocumentMaterials(t *testing.T) {
	w, _ := buildGarden(t)
	doc, err := Document(w)
	require.NoError(t, err)

	byName := make(map[string]*gltf.Material)
	for _, m := range doc.Materials {
		byName[m.Name] = m
	}

	grass := byName["grass"]
	require.NotNil(t, grass)
	require.NotNil(t, grass.PBRMetallicRoughness.BaseColorTexture)
	assert.Equal(t, gltf.AlphaOpaque, grass.AlphaMode)

	glass := byName["glass"]
	require.NotNil(t, glass)
	assert.Nil(t, glass.PBRMetallicRoughness.BaseColorTexture)
	assert.Equal(t, gltf.AlphaBlend, glass.AlphaMode)

	lantern := byName["lantern_glass"]
	require.NotNil(t, lantern)
	assert.InDelta(t, 0.3, lantern.EmissiveFactor[0], 1e-6)
	assert.InDelta(t, 0.18, lantern.EmissiveFactor[2], 1e-6)
}

func TestDocumentLightExtras(t *testing.T) {
	w, d := buildGarden(t)
	doc, err := Document(w)
	require.NoError(t, err)

	sun := doc.Nodes[d.Sun-1]
	assert.Nil(t, sun.Mesh)
	extras, ok := sun.Extras.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "directional", extras["light"])
	assert.Equal(t, true, extras["shadows"])

	lantern := doc.Nodes[d.Lantern-1]
	extras, ok = lantern.Extras.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "point", extras["light"])
}

func TestWriteProducesValidFile(t *testing.T) {
	w, _ := buildGarden(t)
	path := filepath.Join(t.TempDir(), "garden.glb")

	require.NoError(t, Write(w, path))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	assert.Len(t, doc.Nodes, 99)
	assert.Len(t, doc.Materials, 8)
	assert.Len(t, doc.Textures, 5)
	assert.Len(t, doc.Images, 5)
	assert.Len(t, doc.Meshes, 10)
	assert.Len(t, doc.Scenes[0].Nodes, 2)
	assert.Equal(t, "diorama", doc.Nodes[0].Name)
}

func TestWriteBadPath(t *testing.T) {
	w, _ := buildGarden(t)
	err := Write(w, filepath.Join(t.TempDir(), "missing", "garden.glb"))
	assert.Error(t, err)
}

func TestReadRestoresWorld(t *testing.T) {
	w, d := buildGarden(t)
	path := filepath.Join(t.TempDir(), "garden.glb")
	require.NoError(t, Write(w, path))

	got, err := Read(path)
	require.NoError(t, err)

	require.Equal(t, w.Len(), got.Len())
	w.Each(func(id scene.ObjectID, obj *scene.Object) {
		assert.Equal(t, *obj, *got.Object(id), "object %d (%s)", id, obj.Name)
	})

	require.Equal(t, w.MaterialCount(), got.MaterialCount())
	for id := scene.MaterialID(1); int(id) <= w.MaterialCount(); id++ {
		want, _ := w.Material(id)
		have, ok := got.Material(id)
		require.True(t, ok)
		assert.Equal(t, want, have, "material %s", want.Name)
	}

	require.Equal(t, w.TextureCount(), got.TextureCount())
	for id := scene.TextureID(1); int(id) <= w.TextureCount(); id++ {
		assert.Equal(t, w.Texture(id), got.Texture(id))
	}

	assert.Equal(t, d.Root, got.Find("diorama"))
	assert.Equal(t, w.WorldMatrix(d.Lantern), got.WorldMatrix(d.Lantern))
}

func TestFromDocumentRejectsPlainMeshes(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Meshes = []*gltf.Mesh{{Name: "teapot", Primitives: []*gltf.Primitive{{}}}}
	doc.Nodes = []*gltf.Node{{Name: "teapot", Mesh: gltf.Index(0)}}

	_, err := FromDocument(doc)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFromDocumentRejectsChildBeforeParent(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "child"}, {Name: "parent", Children: []int{0}}}

	_, err := FromDocument(doc)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestFromDocumentEmptyNodes(t *testing.T) {
	doc := gltf.NewDocument()
	doc.Nodes = []*gltf.Node{{Name: "a"}, {Name: "b", Translation: [3]float64{1, 2, 3}}}

	w, err := FromDocument(doc)
	require.NoError(t, err)
	require.Equal(t, 2, w.Len())
	b := w.Object(2)
	assert.Equal(t, scene.NoParent, b.Parent)
	assert.Equal(t, float32(2), b.Transform.Position.Y)
	assert.Equal(t, float32(1), b.Transform.Scale.X)
	assert.Nil(t, b.Light)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.glb"))
	assert.Error(t, err)
}
