package scene

import "fmt"

type ShapeKind int

const (
	ShapeNone ShapeKind = iota
	ShapePlane
	ShapeCube
	ShapeCylinder
	ShapeSphere
)

func (k ShapeKind) String() string {
	switch k {
	case ShapePlane:
		return "plane"
	case ShapeCube:
		return "cube"
	case ShapeCylinder:
		return "cylinder"
	case ShapeSphere:
		return "sphere"
	default:
		return "none"
	}
}

// Shape describes a procedural mesh. Shapes are comparable and can key a
// mesh cache.
type Shape struct {
	Kind       ShapeKind
	Size       float32 // plane side or cube edge
	Radius     float32
	Height     float32
	Resolution int // segments around the axis
	Stacks     int // sphere rings
}

// Plane is a size×size square in the XZ plane facing +Y.
func Plane(size float32) Shape {
	return Shape{Kind: ShapePlane, Size: size}
}

func Cube(size float32) Shape {
	return Shape{Kind: ShapeCube, Size: size}
}

// Cylinder is centered on the origin along Y, capped at both ends.
func Cylinder(radius, height float32, resolution int) Shape {
	return Shape{Kind: ShapeCylinder, Radius: radius, Height: height, Resolution: resolution}
}

func UVSphere(radius float32, sectors, stacks int) Shape {
	return Shape{Kind: ShapeSphere, Radius: radius, Resolution: sectors, Stacks: stacks}
}

// Mesh generates the shape's geometry, or nil for ShapeNone.
func (s Shape) Mesh() *Mesh {
	switch s.Kind {
	case ShapePlane:
		return CreatePlane(s.Size, s.Size, 1)
	case ShapeCube:
		return CreateCube(s.Size)
	case ShapeCylinder:
		return CreateCylinder(s.Radius, s.Height, s.Resolution)
	case ShapeSphere:
		return CreateSphere(s.Radius, s.Resolution, s.Stacks)
	default:
		return nil
	}
}

func (s Shape) String() string {
	switch s.Kind {
	case ShapePlane, ShapeCube:
		return fmt.Sprintf("%s(%g)", s.Kind, s.Size)
	case ShapeCylinder:
		return fmt.Sprintf("%s(r=%g h=%g n=%d)", s.Kind, s.Radius, s.Height, s.Resolution)
	case ShapeSphere:
		return fmt.Sprintf("%s(r=%g %dx%d)", s.Kind, s.Radius, s.Resolution, s.Stacks)
	default:
		return s.Kind.String()
	}
}
