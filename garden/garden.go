// Package garden assembles the Japanese garden diorama: ground, stone
// path, pond, trees, rocks, torii gate, lantern and sky, all parented to a
// single root, plus a sun that stays fixed in the world.
package garden

import (
	"github.com/chewxy/math32"

	"diorama/core"
	"diorama/materials"
	"diorama/math"
	"diorama/scene"
)

// Diorama holds the handles a frame loop needs after the build.
type Diorama struct {
	Root    scene.ObjectID // rotated by the scene rotator
	Sun     scene.ObjectID
	Lantern scene.ObjectID // the lantern's point light
	Sky     scene.ObjectID
}

var (
	unitCube   = scene.Cube(1)
	unitSphere = scene.UVSphere(0.5, 16, 10)
	trunkShape = scene.Cylinder(0.25, 2, 20)
	skyShape   = scene.UVSphere(200, 32, 16)
)

var (
	pondCenter  = math.NewVec3(-6, 0.1, -3)
	pondSize    = math.NewVec3(6, 0.2, 4)
	treeSites   = []math.Vec3{{X: 6, Z: -6}, {X: 10, Z: 2}, {X: -10, Z: 6}, {X: 0, Z: -10}}
	crownLayers = []struct{ dy, scale float32 }{{2.2, 1.8}, {3.0, 1.4}, {3.6, 1.1}}
	rockSites   = []struct{ x, z, s float32 }{
		{-3, 4, 0.6},
		{-4.5, 5.2, 0.9},
		{-2, 3.2, 0.4},
		{3, -2, 0.7},
		{5, -4, 0.5},
	}
	gatePos    = math.NewVec3(0, 0, -8)
	lanternPos = math.NewVec3(2.8, 0, -2.5)
)

const (
	pathHalfLen     = 15
	pathSpacing     = 1.2
	borderThickness = 0.3
	borderHeight    = 0.4
)

type builder struct {
	reg  scene.Registry
	mat  materials.Table
	root scene.ObjectID
}

// Build spawns the whole diorama into reg using the materials in table.
// Spawn order is fixed, so two builds yield identical worlds.
func Build(reg scene.Registry, table materials.Table) Diorama {
	b := &builder{reg: reg, mat: table}
	b.root = reg.Spawn(scene.Object{Name: "diorama", Transform: core.NewTransform()})

	b.ground()
	b.path()
	b.pond()
	b.trees()
	b.rocks()
	b.torii()
	lantern := b.lantern()
	sky := b.sky()

	sunTr := core.NewTransform().WithRotation(math.QuaternionFromEulerXYZ(-1, 0.7, 0))
	sun := reg.SpawnLight("sun", scene.DirectionalLight(26000, true), sunTr, scene.NoParent)

	return Diorama{Root: b.root, Sun: sun, Lantern: lantern, Sky: sky}
}

func (b *builder) spawn(name string, shape scene.Shape, mat scene.MaterialID, tr core.Transform) scene.ObjectID {
	return b.reg.Spawn(scene.Object{
		Name:      name,
		Shape:     shape,
		Material:  mat,
		Transform: tr,
		Parent:    b.root,
	})
}

func (b *builder) ground() {
	b.spawn("ground", scene.Plane(60), b.mat.Grass, core.NewTransform())
}

// path lays a double row of stepping stones along Z with a gentle sway.
func (b *builder) path() {
	for i := -pathHalfLen; i <= pathHalfLen; i++ {
		z := float32(i) * pathSpacing
		sway := math32.Sin(float32(i)*0.05) * 0.3
		for _, x := range []float32{-0.7, 0.7} {
			tr := core.TransformAt(math.NewVec3(x+sway, 0.05, z)).
				WithScale(math.NewVec3(1.2, 0.1, 0.8))
			b.spawn("path_stone", unitCube, b.mat.Stone, tr)
		}
	}
}

func (b *builder) pond() {
	b.spawn("pond", unitCube, b.mat.Water, core.TransformAt(pondCenter).WithScale(pondSize))

	bx := pondSize.X + borderThickness
	bz := pondSize.Z + borderThickness
	borders := []struct{ dx, dz, sx, sz float32 }{
		{0, -bz / 2, bx, borderThickness},
		{0, bz / 2, bx, borderThickness},
		{-bx / 2, 0, borderThickness, bz},
		{bx / 2, 0, borderThickness, bz},
	}
	for _, e := range borders {
		tr := core.TransformAt(pondCenter.Add(math.NewVec3(e.dx, borderHeight, e.dz))).
			WithScale(math.NewVec3(e.sx, borderHeight, e.sz))
		b.spawn("pond_border", unitCube, b.mat.Stone, tr)
	}
}

func (b *builder) trees() {
	for _, pos := range treeSites {
		b.spawn("tree_trunk", trunkShape, b.mat.Wood, core.TransformAt(pos.Add(math.NewVec3(0, 1, 0))))
		for _, layer := range crownLayers {
			tr := core.TransformAt(pos.Add(math.NewVec3(0, layer.dy, 0))).WithScale(math.Splat(layer.scale))
			b.spawn("tree_crown", unitSphere, b.mat.Grass, tr)
		}
	}
}

// rocks are squashed, tilted spheres resting on the ground.
func (b *builder) rocks() {
	tilt := math.QuaternionFromEulerXYZ(0.2, 0.4, 0.1)
	for _, r := range rockSites {
		tr := core.TransformAt(math.NewVec3(r.x, r.s*0.5, r.z)).
			WithScale(math.NewVec3(r.s*1.4, r.s, r.s)).
			WithRotation(tilt)
		b.spawn("rock", unitSphere, b.mat.Stone, tr)
	}
}

func (b *builder) torii() {
	for _, x := range []float32{-1.2, 1.2} {
		tr := core.TransformAt(gatePos.Add(math.NewVec3(x, 1.5, 0))).WithScale(math.NewVec3(0.3, 3, 0.3))
		b.spawn("torii_pillar", unitCube, b.mat.Wood, tr)
	}
	beam := core.TransformAt(gatePos.Add(math.NewVec3(0, 3.2, 0))).WithScale(math.NewVec3(3.2, 0.3, 0.5))
	b.spawn("torii_beam", unitCube, b.mat.Wood, beam)
}

// lantern builds the stone lantern and returns its point light.
func (b *builder) lantern() scene.ObjectID {
	at := func(dy float32) core.Transform {
		return core.TransformAt(lanternPos.Add(math.NewVec3(0, dy, 0)))
	}
	b.spawn("lantern_base", unitCube, b.mat.Wood, at(0.5).WithScale(math.NewVec3(0.3, 1, 0.3)))
	b.spawn("lantern_cap", unitCube, b.mat.Metal, at(1.05).WithScale(math.NewVec3(0.4, 0.05, 0.4)))
	b.spawn("lantern_glass", unitCube, b.mat.LanternGlass, at(1.35).WithScale(math.Splat(0.8)))
	return b.reg.SpawnLight("lantern_light", scene.PointLight(1400, 14, true), at(1.35), b.root)
}

// sky is a large sphere mirrored in X so its inside faces the viewer.
func (b *builder) sky() scene.ObjectID {
	tr := core.NewTransform().WithScale(math.NewVec3(-1, 1, 1))
	return b.spawn("sky", skyShape, b.mat.Sky, tr)
}
