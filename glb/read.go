package glb

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"diorama/core"
	"diorama/math"
	"diorama/scene"
)

// ErrUnsupported marks documents that do not describe a diorama world,
// such as meshes without a shape description.
var ErrUnsupported = errors.New("glb: unsupported document")

// Read loads a file written by Write.
func Read(path string) (*scene.World, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}
	return FromDocument(doc)
}

// FromDocument rebuilds a world from doc. Textures, materials and nodes
// keep their document order, so handles match the written world.
func FromDocument(doc *gltf.Document) (*scene.World, error) {
	w := scene.NewWorld()

	for i, gt := range doc.Textures {
		tex, err := readTexture(doc, i, gt)
		if err != nil {
			return nil, err
		}
		w.AddTexture(tex)
	}

	for _, gm := range doc.Materials {
		w.AddMaterial(readMaterial(gm, len(doc.Textures)))
	}

	type meshInfo struct {
		shape    scene.Shape
		material scene.MaterialID
	}
	meshes := make([]meshInfo, len(doc.Meshes))
	for i, gm := range doc.Meshes {
		shape, err := readShape(gm.Extras)
		if err != nil {
			return nil, fmt.Errorf("mesh %d (%s): %w", i, gm.Name, err)
		}
		info := meshInfo{shape: shape}
		if len(gm.Primitives) > 0 && gm.Primitives[0].Material != nil {
			info.material = scene.MaterialID(*gm.Primitives[0].Material + 1)
		}
		meshes[i] = info
	}

	parents := make([]int, len(doc.Nodes))
	for i := range parents {
		parents[i] = -1
	}
	for i, gn := range doc.Nodes {
		for _, c := range gn.Children {
			if c < 0 || c >= len(doc.Nodes) {
				return nil, fmt.Errorf("%w: node %d has child %d out of range", ErrUnsupported, i, c)
			}
			parents[c] = i
		}
	}

	for i, gn := range doc.Nodes {
		obj := scene.Object{Name: gn.Name, Transform: readTransform(gn)}
		if p := parents[i]; p >= 0 {
			if p >= i {
				return nil, fmt.Errorf("%w: node %d precedes its parent %d", ErrUnsupported, i, p)
			}
			obj.Parent = scene.ObjectID(p + 1)
		}
		if gn.Mesh != nil {
			if *gn.Mesh >= len(meshes) {
				return nil, fmt.Errorf("%w: node %d uses mesh %d out of range", ErrUnsupported, i, *gn.Mesh)
			}
			m := meshes[*gn.Mesh]
			obj.Shape, obj.Material = m.shape, m.material
		}
		if light, ok := readLight(gn.Extras); ok {
			obj.Light = &light
		}
		w.Spawn(obj)
	}
	return w, nil
}

func readTexture(doc *gltf.Document, i int, gt *gltf.Texture) (*scene.Texture, error) {
	if gt.Source == nil || *gt.Source >= len(doc.Images) {
		return nil, fmt.Errorf("%w: texture %d has no image", ErrUnsupported, i)
	}
	img := doc.Images[*gt.Source]
	if img.BufferView == nil {
		return nil, fmt.Errorf("%w: texture %d image is not embedded", ErrUnsupported, i)
	}
	raw, err := modeler.ReadBufferView(doc, doc.BufferViews[*img.BufferView])
	if err != nil {
		return nil, fmt.Errorf("texture %d buffer view: %w", i, err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("texture %d decode: %w", i, err)
	}
	name := gt.Name
	if name == "" {
		name = img.Name
	}
	return scene.TextureFromImage(name, decoded), nil
}

func readMaterial(gm *gltf.Material, textureCount int) scene.Material {
	mat := scene.DefaultMaterial()
	mat.Name = gm.Name
	if pbr := gm.PBRMetallicRoughness; pbr != nil {
		cf := pbr.BaseColorFactorOrDefault()
		mat.BaseColor = core.RGBA(float32(cf[0]), float32(cf[1]), float32(cf[2]), float32(cf[3]))
		mat.Metallic = float32(pbr.MetallicFactorOrDefault())
		mat.Roughness = float32(pbr.RoughnessFactorOrDefault())
		if bt := pbr.BaseColorTexture; bt != nil && bt.Index < textureCount {
			mat.Texture = scene.TextureID(bt.Index + 1)
		}
	}
	e := gm.EmissiveFactor
	mat.Emissive = core.RGB(float32(e[0]), float32(e[1]), float32(e[2]))
	if gm.AlphaMode == gltf.AlphaBlend {
		mat.AlphaMode = scene.AlphaBlend
	}
	if extras, ok := gm.Extras.(map[string]any); ok {
		if r, ok := number(extras["reflectance"]); ok {
			mat.Reflectance = r
		}
	}
	return mat
}

var shapeKinds = map[string]scene.ShapeKind{
	scene.ShapePlane.String():    scene.ShapePlane,
	scene.ShapeCube.String():     scene.ShapeCube,
	scene.ShapeCylinder.String(): scene.ShapeCylinder,
	scene.ShapeSphere.String():   scene.ShapeSphere,
}

func readShape(extras any) (scene.Shape, error) {
	m, ok := extras.(map[string]any)
	if !ok {
		return scene.Shape{}, fmt.Errorf("%w: no shape description", ErrUnsupported)
	}
	name, _ := m["shape"].(string)
	kind, ok := shapeKinds[name]
	if !ok {
		return scene.Shape{}, fmt.Errorf("%w: unknown shape %q", ErrUnsupported, name)
	}
	s := scene.Shape{Kind: kind}
	s.Size, _ = number(m["size"])
	s.Radius, _ = number(m["radius"])
	s.Height, _ = number(m["height"])
	res, _ := number(m["resolution"])
	stacks, _ := number(m["stacks"])
	s.Resolution, s.Stacks = int(res), int(stacks)
	return s, nil
}

func readLight(extras any) (scene.Light, bool) {
	m, ok := extras.(map[string]any)
	if !ok {
		return scene.Light{}, false
	}
	var l scene.Light
	switch m["light"] {
	case "point":
		l = scene.PointLight(0, 0, false)
		l.Intensity, _ = number(m["intensity"])
		l.Range, _ = number(m["range"])
	case "directional":
		l = scene.DirectionalLight(0, false)
		l.Illuminance, _ = number(m["illuminance"])
	default:
		return scene.Light{}, false
	}
	l.Shadows, _ = m["shadows"].(bool)
	if c, ok := readColor(m["color"]); ok {
		l.Color = c
	}
	return l, true
}

func readTransform(gn *gltf.Node) core.Transform {
	t := gn.TranslationOrDefault()
	r := gn.RotationOrDefault() // [x, y, z, w]
	s := gn.ScaleOrDefault()
	return core.Transform{
		Position: math.NewVec3(float32(t[0]), float32(t[1]), float32(t[2])),
		Rotation: math.Quaternion{X: float32(r[0]), Y: float32(r[1]), Z: float32(r[2]), W: float32(r[3])},
		Scale:    math.NewVec3(float32(s[0]), float32(s[1]), float32(s[2])),
	}
}

// number accepts both decoded JSON numbers and the typed values Document
// stores before serialization.
func number(v any) (float32, bool) {
	switch n := v.(type) {
	case float64:
		return float32(n), true
	case float32:
		return n, true
	case int:
		return float32(n), true
	}
	return 0, false
}

func readColor(v any) (core.Color, bool) {
	var c [4]float32
	switch a := v.(type) {
	case []float32:
		if len(a) != 4 {
			return core.Color{}, false
		}
		copy(c[:], a)
	case []any:
		if len(a) != 4 {
			return core.Color{}, false
		}
		for i, e := range a {
			f, ok := number(e)
			if !ok {
				return core.Color{}, false
			}
			c[i] = f
		}
	default:
		return core.Color{}, false
	}
	return core.RGBA(c[0], c[1], c[2], c[3]), true
}
