package scene

import (
	"github.com/chewxy/math32"

	"diorama/core"
	"diorama/math"
)

// CreateSphere generates a UV-sphere mesh with outward counter-clockwise
// faces.
func CreateSphere(radius float32, segments, rings int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]core.Vertex, 0, (rings+1)*(segments+1))
	indices := make([]uint32, 0, rings*segments*6)

	for ring := 0; ring <= rings; ring++ {
		phi := float32(ring) * math.Pi / float32(rings)
		sinPhi, cosPhi := math32.Sincos(phi)

		for seg := 0; seg <= segments; seg++ {
			theta := float32(seg) * 2 * math.Pi / float32(segments)
			sinTheta, cosTheta := math32.Sincos(theta)

			normal := math.Vec3{X: sinPhi * cosTheta, Y: cosPhi, Z: sinPhi * sinTheta}
			vertices = append(vertices, core.Vertex{
				Position: normal.Mul(radius),
				Normal:   normal,
				UV:       math.Vec2{X: float32(seg) / float32(segments), Y: float32(ring) / float32(rings)},
			})
		}
	}

	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			current := uint32(ring*(segments+1) + seg)
			next := current + uint32(segments+1)

			indices = append(indices, current, current+1, next)
			indices = append(indices, current+1, next+1, next)
		}
	}

	return CreateMeshFromData("Sphere", vertices, indices)
}

// CreateCylinder generates a capped cylinder centered on the origin along Y.
func CreateCylinder(radius, height float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}

	var vertices []core.Vertex
	var indices []uint32
	halfHeight := height / 2

	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math.Pi / float32(segments)
		sinT, cosT := math32.Sincos(theta)
		normal := math.Vec3{X: cosT, Y: 0, Z: sinT}
		u := float32(i) / float32(segments)

		vertices = append(vertices,
			core.Vertex{
				Position: math.Vec3{X: cosT * radius, Y: -halfHeight, Z: sinT * radius},
				Normal:   normal,
				UV:       math.Vec2{X: u, Y: 1},
			},
			core.Vertex{
				Position: math.Vec3{X: cosT * radius, Y: halfHeight, Z: sinT * radius},
				Normal:   normal,
				UV:       math.Vec2{X: u, Y: 0},
			},
		)
	}

	for i := 0; i < segments; i++ {
		base := uint32(i * 2)
		indices = append(indices, base, base+1, base+2)
		indices = append(indices, base+2, base+1, base+3)
	}

	indices = appendCap(&vertices, indices, radius, halfHeight, segments, math.Vec3Up)
	indices = appendCap(&vertices, indices, radius, -halfHeight, segments, math.Vec3Down)

	return CreateMeshFromData("Cylinder", vertices, indices)
}

// appendCap adds a triangle fan disc at height y facing normal.
func appendCap(vertices *[]core.Vertex, indices []uint32, radius, y float32, segments int, normal math.Vec3) []uint32 {
	center := uint32(len(*vertices))
	*vertices = append(*vertices, core.Vertex{
		Position: math.Vec3{X: 0, Y: y, Z: 0},
		Normal:   normal,
		UV:       math.Vec2{X: 0.5, Y: 0.5},
	})

	first := uint32(len(*vertices))
	for i := 0; i <= segments; i++ {
		theta := float32(i) * 2 * math.Pi / float32(segments)
		sinT, cosT := math32.Sincos(theta)
		*vertices = append(*vertices, core.Vertex{
			Position: math.Vec3{X: cosT * radius, Y: y, Z: sinT * radius},
			Normal:   normal,
			UV:       math.Vec2{X: cosT*0.5 + 0.5, Y: sinT*0.5 + 0.5},
		})
	}

	for i := uint32(0); i < uint32(segments); i++ {
		if normal.Y > 0 {
			indices = append(indices, center, first+i+1, first+i)
		} else {
			indices = append(indices, center, first+i, first+i+1)
		}
	}
	return indices
}

// CreatePlane generates a flat plane mesh facing +Y
func CreatePlane(width, depth float32, subdivisions int) *Mesh {
	if subdivisions < 1 {
		subdivisions = 1
	}

	var vertices []core.Vertex
	var indices []uint32

	halfW := width / 2
	halfD := depth / 2

	for z := 0; z <= subdivisions; z++ {
		for x := 0; x <= subdivisions; x++ {
			u := float32(x) / float32(subdivisions)
			v := float32(z) / float32(subdivisions)

			vertices = append(vertices, core.Vertex{
				Position: math.Vec3{X: -halfW + u*width, Y: 0, Z: -halfD + v*depth},
				Normal:   math.Vec3Up,
				UV:       math.Vec2{X: u, Y: v},
			})
		}
	}

	for z := 0; z < subdivisions; z++ {
		for x := 0; x < subdivisions; x++ {
			topLeft := uint32(z*(subdivisions+1) + x)
			topRight := topLeft + 1
			bottomLeft := topLeft + uint32(subdivisions+1)
			bottomRight := bottomLeft + 1

			indices = append(indices, topLeft, bottomLeft, topRight)
			indices = append(indices, topRight, bottomLeft, bottomRight)
		}
	}

	return CreateMeshFromData("Plane", vertices, indices)
}
