// Package glb stores a diorama world as a binary glTF 2.0 file and reads
// it back. Shapes, material reflectance and lights have no core glTF
// equivalent; they travel in extras so a written world reloads unchanged.
package glb

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"diorama/core"
	"diorama/scene"
)

type meshKey struct {
	shape    scene.Shape
	material scene.MaterialID
}

// Document converts w into an in-memory glTF document. Node i holds
// object i+1, so handles map directly onto node indices.
func Document(w *scene.World) (*gltf.Document, error) {
	doc := gltf.NewDocument()

	textures := make(map[scene.TextureID]int)
	for id := scene.TextureID(1); int(id) <= w.TextureCount(); id++ {
		idx, err := writeTexture(doc, w.Texture(id))
		if err != nil {
			return nil, err
		}
		textures[id] = idx
	}

	for id := scene.MaterialID(1); int(id) <= w.MaterialCount(); id++ {
		mat, _ := w.Material(id)
		doc.Materials = append(doc.Materials, convertMaterial(mat, textures))
	}

	meshes := make(map[meshKey]int)
	w.Each(func(id scene.ObjectID, obj *scene.Object) {
		tr := obj.Transform
		node := &gltf.Node{
			Name:        obj.Name,
			Translation: [3]float64{f64(tr.Position.X), f64(tr.Position.Y), f64(tr.Position.Z)},
			Rotation:    [4]float64{f64(tr.Rotation.X), f64(tr.Rotation.Y), f64(tr.Rotation.Z), f64(tr.Rotation.W)},
			Scale:       [3]float64{f64(tr.Scale.X), f64(tr.Scale.Y), f64(tr.Scale.Z)},
		}
		if obj.Shape.Kind != scene.ShapeNone {
			key := meshKey{obj.Shape, obj.Material}
			idx, ok := meshes[key]
			if !ok {
				idx = writeMesh(doc, obj.Shape, obj.Material)
				meshes[key] = idx
			}
			node.Mesh = gltf.Index(idx)
		}
		if obj.Light != nil {
			node.Extras = lightExtras(obj.Light)
		}
		for _, child := range w.Children(id) {
			node.Children = append(node.Children, int(child)-1)
		}
		doc.Nodes = append(doc.Nodes, node)
	})

	for _, root := range w.Children(scene.NoParent) {
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, int(root)-1)
	}
	return doc, nil
}

// Write exports w to path as a single binary glTF file.
func Write(w *scene.World, path string) error {
	doc, err := Document(w)
	if err != nil {
		return err
	}
	if err := gltf.SaveBinary(doc, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeTexture(doc *gltf.Document, tex *scene.Texture) (int, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, tex.Image()); err != nil {
		return 0, fmt.Errorf("failed to encode texture %s: %w", tex.Name, err)
	}
	img, err := modeler.WriteImage(doc, tex.Name, "image/png", &buf)
	if err != nil {
		return 0, fmt.Errorf("failed to embed texture %s: %w", tex.Name, err)
	}
	doc.Textures = append(doc.Textures, &gltf.Texture{Name: tex.Name, Source: gltf.Index(img)})
	return len(doc.Textures) - 1, nil
}

func convertMaterial(mat scene.Material, textures map[scene.TextureID]int) *gltf.Material {
	c := mat.BaseColor
	pbr := &gltf.PBRMetallicRoughness{
		BaseColorFactor: &[4]float64{f64(c.R), f64(c.G), f64(c.B), f64(c.A)},
		MetallicFactor:  gltf.Float(f64(mat.Metallic)),
		RoughnessFactor: gltf.Float(f64(mat.Roughness)),
	}
	if idx, ok := textures[mat.Texture]; ok {
		pbr.BaseColorTexture = &gltf.TextureInfo{Index: idx}
	}

	out := &gltf.Material{
		Name:                 mat.Name,
		PBRMetallicRoughness: pbr,
		EmissiveFactor:       [3]float64{f64(mat.Emissive.R), f64(mat.Emissive.G), f64(mat.Emissive.B)},
		Extras:               map[string]any{"reflectance": mat.Reflectance},
	}
	if mat.Transparent() {
		out.AlphaMode = gltf.AlphaBlend
	}
	return out
}

func writeMesh(doc *gltf.Document, shape scene.Shape, material scene.MaterialID) int {
	m := shape.Mesh()
	prim := &gltf.Primitive{
		Indices: gltf.Index(modeler.WriteIndices(doc, m.Indices)),
		Attributes: map[string]int{
			"POSITION":   modeler.WritePosition(doc, m.Positions()),
			"NORMAL":     modeler.WriteNormal(doc, m.Normals()),
			"TEXCOORD_0": modeler.WriteTextureCoord(doc, m.UVs()),
		},
	}
	if material != scene.NoMaterial {
		prim.Material = gltf.Index(int(material) - 1)
	}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{
		Name:       shape.String(),
		Primitives: []*gltf.Primitive{prim},
		Extras:     shapeExtras(shape),
	})
	return len(doc.Meshes) - 1
}

func shapeExtras(s scene.Shape) map[string]any {
	return map[string]any{
		"shape":      s.Kind.String(),
		"size":       s.Size,
		"radius":     s.Radius,
		"height":     s.Height,
		"resolution": s.Resolution,
		"stacks":     s.Stacks,
	}
}

func lightExtras(l *scene.Light) map[string]any {
	extras := map[string]any{
		"shadows": l.Shadows,
		"color":   colorArray(l.Color),
	}
	switch l.Kind {
	case scene.LightPoint:
		extras["light"] = "point"
		extras["intensity"] = l.Intensity
		extras["range"] = l.Range
	case scene.LightDirectional:
		extras["light"] = "directional"
		extras["illuminance"] = l.Illuminance
	}
	return extras
}

func colorArray(c core.Color) []float32 {
	return []float32{c.R, c.G, c.B, c.A}
}

func f64(v float32) float64 { return float64(v) }
