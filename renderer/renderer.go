// Package renderer turns a world and a camera into a frame: the lights to
// upload and the ordered draw lists a GPU backend walks. It holds no GPU
// state, so the planning rules are testable headlessly.
package renderer

import (
	"cmp"
	"slices"

	"github.com/chewxy/math32"

	"diorama/core"
	"diorama/math"
	"diorama/scene"
)

// Settings are the per-run render options.
type Settings struct {
	ClearColor     core.Color // sRGB
	Ambient        core.Color // sRGB, already scaled by brightness
	Exposure       float32
	Shadows        bool
	ShadowExtent   float32
	FrustumCulling bool
}

func DefaultSettings() Settings {
	return Settings{
		ClearColor:     core.RGB(0.03, 0.03, 0.05),
		Ambient:        core.RGB(0.6, 0.6, 0.7).Scale(0.4),
		Exposure:       1e-4,
		Shadows:        true,
		ShadowExtent:   30,
		FrustumCulling: true,
	}
}

// Draw is one shaded object instance.
type Draw struct {
	Object     scene.ObjectID
	Shape      scene.Shape
	MaterialID scene.MaterialID
	Material   scene.Material
	Model      math.Mat4
	Distance   float32 // camera to world bounds center
	CastShadow bool
}

// SunLight is the frame's directional light in shader units.
type SunLight struct {
	Direction math.Vec3 // direction the light travels
	Color     core.Color
	Radiance  float32
	Shadows   bool
}

type PointLight struct {
	Position math.Vec3
	Color    core.Color
	Radiance float32 // candela times exposure
	Range    float32
}

// MaxPointLights matches the shader's point light array.
const MaxPointLights = 8

// Frame is everything a backend needs to draw one image. Colors are linear.
type Frame struct {
	Clear     core.Color
	Ambient   core.Color
	CameraPos math.Vec3
	View      math.Mat4
	Proj      math.Mat4
	ViewProj  math.Mat4

	Sun     *SunLight
	LightVP math.Mat4 // valid when Shadows is set
	Shadows bool
	Points  []PointLight

	Opaque      []Draw // spawn order
	Transparent []Draw // back to front
	Culled      int
}

// Planner builds frames. Local bounds are cached per shape.
type Planner struct {
	Settings Settings
	bounds   map[scene.Shape]scene.AABB
}

func NewPlanner(settings Settings) *Planner {
	return &Planner{Settings: settings, bounds: make(map[scene.Shape]scene.AABB)}
}

// Plan collects lights and draws from w as seen through cam. A nil world
// or camera yields an empty frame.
func (p *Planner) Plan(w *scene.World, cam *scene.Camera) Frame {
	f := Frame{
		Clear:   p.Settings.ClearColor.Linear(),
		Ambient: p.Settings.Ambient.Linear(),
		View:    math.Mat4Identity(),
		Proj:    math.Mat4Identity(),
		LightVP: math.Mat4Identity(),
	}
	if w == nil || cam == nil {
		return f
	}

	f.CameraPos = cam.Position
	f.View = cam.GetViewMatrix()
	f.Proj = cam.GetProjectionMatrix()
	f.ViewProj = cam.GetViewProjectionMatrix()
	frustum := scene.FrustumFromVP(f.ViewProj)

	w.Each(func(id scene.ObjectID, obj *scene.Object) {
		if obj.Light != nil {
			p.addLight(&f, w, id, obj.Light)
		}
		if obj.Shape.Kind == scene.ShapeNone {
			return
		}

		model := w.WorldMatrix(id)
		box := scene.TransformAABB(p.localBounds(obj.Shape), model)
		if p.Settings.FrustumCulling && !box.IntersectsFrustum(&frustum) {
			f.Culled++
			return
		}

		mat, ok := w.Material(obj.Material)
		if !ok {
			mat = scene.DefaultMaterial()
		}
		d := Draw{
			Object:     id,
			Shape:      obj.Shape,
			MaterialID: obj.Material,
			Material:   mat,
			Model:      model,
			Distance:   box.Center().Distance(cam.Position),
			// Backdrops enclosing the viewer would darken everything.
			CastShadow: !mat.Transparent() && !box.Contains(cam.Position),
		}
		if mat.Transparent() {
			f.Transparent = append(f.Transparent, d)
		} else {
			f.Opaque = append(f.Opaque, d)
		}
	})

	slices.SortStableFunc(f.Transparent, func(a, b Draw) int {
		return cmp.Compare(b.Distance, a.Distance)
	})

	if f.Sun != nil && f.Sun.Shadows && p.Settings.Shadows {
		if vp, ok := SunViewProjection(f.Sun.Direction, cam.Position, p.Settings.ShadowExtent); ok {
			f.LightVP = vp
			f.Shadows = true
		}
	}
	return f
}

func (p *Planner) addLight(f *Frame, w *scene.World, id scene.ObjectID, l *scene.Light) {
	switch l.Kind {
	case scene.LightDirectional:
		if f.Sun != nil {
			return
		}
		dir := w.WorldRotation(id).RotateVector(math.Vec3Back).Normalize()
		f.Sun = &SunLight{
			Direction: dir,
			Color:     l.Color.Linear(),
			Radiance:  l.Illuminance * p.Settings.Exposure,
			Shadows:   l.Shadows,
		}
	case scene.LightPoint:
		if len(f.Points) >= MaxPointLights {
			return
		}
		f.Points = append(f.Points, PointLight{
			Position: w.WorldMatrix(id).Position(),
			Color:    l.Color.Linear(),
			Radiance: l.Intensity / (4 * math32.Pi) * p.Settings.Exposure,
			Range:    l.Range,
		})
	}
}

func (p *Planner) localBounds(shape scene.Shape) scene.AABB {
	if box, ok := p.bounds[shape]; ok {
		return box
	}
	box := shape.Mesh().LocalAABB
	p.bounds[shape] = box
	return box
}
