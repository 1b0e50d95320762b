package scene

import (
	"fmt"

	"diorama/core"
	"diorama/math"
)

// Handles are 1-based so the zero value means "none".
type (
	ObjectID   int
	MaterialID int
	TextureID  int
)

const (
	NoParent   ObjectID   = 0
	NoMaterial MaterialID = 0
	NoTexture  TextureID  = 0
)

// Object is one entry of the world arena. Objects without a shape are
// pure transform nodes; objects with a Light carry a light source.
type Object struct {
	Name      string
	Shape     Shape
	Material  MaterialID
	Transform core.Transform
	Parent    ObjectID
	Light     *Light
}

// Registry is what scene builders need from a world.
type Registry interface {
	AddTexture(tex *Texture) TextureID
	AddMaterial(mat Material) MaterialID
	Spawn(obj Object) ObjectID
	SpawnLight(name string, light Light, transform core.Transform, parent ObjectID) ObjectID
}

// World owns every texture, material and object of a scene. Objects are
// never removed and parents always precede their children.
type World struct {
	textures  []*Texture
	materials []Material
	objects   []Object
}

var _ Registry = (*World)(nil)

func NewWorld() *World {
	return &World{}
}

func (w *World) AddTexture(tex *Texture) TextureID {
	w.textures = append(w.textures, tex)
	return TextureID(len(w.textures))
}

func (w *World) AddMaterial(mat Material) MaterialID {
	w.materials = append(w.materials, mat)
	return MaterialID(len(w.materials))
}

// Spawn appends obj and returns its handle. It panics if obj.Parent does
// not name an existing object.
func (w *World) Spawn(obj Object) ObjectID {
	if obj.Parent != NoParent && !w.valid(obj.Parent) {
		panic(fmt.Sprintf("scene: spawn %q: unknown parent %d", obj.Name, obj.Parent))
	}
	w.objects = append(w.objects, obj)
	return ObjectID(len(w.objects))
}

func (w *World) SpawnLight(name string, light Light, transform core.Transform, parent ObjectID) ObjectID {
	return w.Spawn(Object{
		Name:      name,
		Transform: transform,
		Parent:    parent,
		Light:     &light,
	})
}

func (w *World) valid(id ObjectID) bool {
	return id > 0 && int(id) <= len(w.objects)
}

// Object returns the object for id, or nil.
func (w *World) Object(id ObjectID) *Object {
	if !w.valid(id) {
		return nil
	}
	return &w.objects[id-1]
}

func (w *World) Len() int {
	return len(w.objects)
}

// Each visits objects in spawn order.
func (w *World) Each(fn func(id ObjectID, obj *Object)) {
	for i := range w.objects {
		fn(ObjectID(i+1), &w.objects[i])
	}
}

// Children returns the direct children of id in spawn order. NoParent
// yields the roots.
func (w *World) Children(id ObjectID) []ObjectID {
	var out []ObjectID
	for i := range w.objects {
		if w.objects[i].Parent == id {
			out = append(out, ObjectID(i+1))
		}
	}
	return out
}

// Find returns the first object named name, or NoParent.
func (w *World) Find(name string) ObjectID {
	for i := range w.objects {
		if w.objects[i].Name == name {
			return ObjectID(i + 1)
		}
	}
	return NoParent
}

// WorldMatrix composes the local transforms of id and all its ancestors.
func (w *World) WorldMatrix(id ObjectID) math.Mat4 {
	m := math.Mat4Identity()
	for w.valid(id) {
		obj := &w.objects[id-1]
		m = m.Mul(obj.Transform.GetMatrix())
		id = obj.Parent
	}
	return m
}

// WorldRotation composes the rotations of id and all its ancestors.
func (w *World) WorldRotation(id ObjectID) math.Quaternion {
	q := math.QuaternionIdentity()
	for w.valid(id) {
		obj := &w.objects[id-1]
		q = obj.Transform.Rotation.Mul(q)
		id = obj.Parent
	}
	return q.Normalize()
}

func (w *World) Material(id MaterialID) (Material, bool) {
	if id <= 0 || int(id) > len(w.materials) {
		return Material{}, false
	}
	return w.materials[id-1], true
}

func (w *World) Texture(id TextureID) *Texture {
	if id <= 0 || int(id) > len(w.textures) {
		return nil
	}
	return w.textures[id-1]
}

func (w *World) MaterialCount() int { return len(w.materials) }

func (w *World) TextureCount() int { return len(w.textures) }
