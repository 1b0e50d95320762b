package scene

import (
	"github.com/chewxy/math32"

	"diorama/core"
	"diorama/math"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name       string
	Vertices   []core.Vertex
	Indices    []uint32
	IndexCount uint32

	// Cached local-space AABB (computed by CreateMeshFromData).
	LocalAABB    AABB
	HasLocalAABB bool
}

// CreateMeshFromData builds a Mesh and pre-computes its local-space AABB.
func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	m := &Mesh{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		IndexCount: uint32(len(indices)),
	}
	if len(vertices) > 0 {
		m.LocalAABB = computeLocalAABB(vertices)
		m.HasLocalAABB = true
	}
	return m
}

func computeLocalAABB(vertices []core.Vertex) AABB {
	min := vertices[0].Position
	max := vertices[0].Position
	for i := 1; i < len(vertices); i++ {
		p := vertices[i].Position
		min = math.Vec3{X: math32.Min(min.X, p.X), Y: math32.Min(min.Y, p.Y), Z: math32.Min(min.Z, p.Z)}
		max = math.Vec3{X: math32.Max(max.X, p.X), Y: math32.Max(max.Y, p.Y), Z: math32.Max(max.Z, p.Z)}
	}
	return AABB{Min: min, Max: max}
}

// Positions returns the vertex positions in order.
func (m *Mesh) Positions() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = [3]float32{v.Position.X, v.Position.Y, v.Position.Z}
	}
	return out
}

func (m *Mesh) Normals() [][3]float32 {
	out := make([][3]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = [3]float32{v.Normal.X, v.Normal.Y, v.Normal.Z}
	}
	return out
}

func (m *Mesh) UVs() [][2]float32 {
	out := make([][2]float32, len(m.Vertices))
	for i, v := range m.Vertices {
		out[i] = [2]float32{v.UV.X, v.UV.Y}
	}
	return out
}

func CreateCube(size float32) *Mesh {
	s := size / 2

	type face struct {
		normal  math.Vec3
		corners [4]math.Vec3
	}
	faces := []face{
		{math.Vec3{X: 0, Y: 0, Z: 1}, [4]math.Vec3{{X: -s, Y: -s, Z: s}, {X: s, Y: -s, Z: s}, {X: s, Y: s, Z: s}, {X: -s, Y: s, Z: s}}},
		{math.Vec3{X: 0, Y: 0, Z: -1}, [4]math.Vec3{{X: s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: -s}, {X: -s, Y: s, Z: -s}, {X: s, Y: s, Z: -s}}},
		{math.Vec3{X: 0, Y: 1, Z: 0}, [4]math.Vec3{{X: -s, Y: s, Z: s}, {X: s, Y: s, Z: s}, {X: s, Y: s, Z: -s}, {X: -s, Y: s, Z: -s}}},
		{math.Vec3{X: 0, Y: -1, Z: 0}, [4]math.Vec3{{X: -s, Y: -s, Z: -s}, {X: s, Y: -s, Z: -s}, {X: s, Y: -s, Z: s}, {X: -s, Y: -s, Z: s}}},
		{math.Vec3{X: 1, Y: 0, Z: 0}, [4]math.Vec3{{X: s, Y: -s, Z: s}, {X: s, Y: -s, Z: -s}, {X: s, Y: s, Z: -s}, {X: s, Y: s, Z: s}}},
		{math.Vec3{X: -1, Y: 0, Z: 0}, [4]math.Vec3{{X: -s, Y: -s, Z: -s}, {X: -s, Y: -s, Z: s}, {X: -s, Y: s, Z: s}, {X: -s, Y: s, Z: -s}}},
	}
	uvs := [4]math.Vec2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}

	vertices := make([]core.Vertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, c := range f.corners {
			vertices = append(vertices, core.Vertex{Position: c, Normal: f.normal, UV: uvs[i]})
		}
		indices = append(indices, base, base+1, base+2, base+2, base+3, base)
	}

	return CreateMeshFromData("Cube", vertices, indices)
}
