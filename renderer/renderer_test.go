package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"diorama/core"
	"diorama/garden"
	"diorama/materials"
	"diorama/math"
	"diorama/scene"
)

func gardenWorld(t *testing.T) (*scene.World, garden.Diorama) {
	t.Helper()
	w := scene.NewWorld()
	return w, garden.Build(w, materials.Register(w))
}

func startCamera() *scene.Camera {
	cam := scene.NewCamera(math.Radians(60), 16.0/9.0, 0.1, 1000)
	cam.Position = math.NewVec3(0, 5, 15)
	cam.LookAt(math.NewVec3(0, 1, 0), math.Vec3Up)
	return cam
}

func assertVec3(t *testing.T, want, got math.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-4)
	assert.InDelta(t, want.Y, got.Y, 1e-4)
	assert.InDelta(t, want.Z, got.Z, 1e-4)
}

func TestPlanCollectsLights(t *testing.T) {
	w, _ := gardenWorld(t)
	f := NewPlanner(DefaultSettings()).Plan(w, startCamera())

	require.NotNil(t, f.Sun)
	want := math.QuaternionFromEulerXYZ(-1, 0.7, 0).RotateVector(math.Vec3Back)
	assertVec3(t, want, f.Sun.Direction)
	assert.InDelta(t, 2.6, f.Sun.Radiance, 1e-4)
	assert.True(t, f.Sun.Shadows)
	assert.True(t, f.Shadows)

	require.Len(t, f.Points, 1)
	assertVec3(t, math.NewVec3(2.8, 1.35, -2.5), f.Points[0].Position)
	assert.Equal(t, float32(14), f.Points[0].Range)
	assert.InDelta(t, 1400/(4*math32.Pi)*1e-4, f.Points[0].Radiance, 1e-6)
}

func TestPlanSplitsAndSortsDraws(t *testing.T) {
	w, d := gardenWorld(t)
	f := NewPlanner(DefaultSettings()).Plan(w, startCamera())

	assert.Equal(t, 96, len(f.Opaque)+len(f.Transparent)+f.Culled)

	require.Len(t, f.Transparent, 2)
	names := []string{w.Object(f.Transparent[0].Object).Name, w.Object(f.Transparent[1].Object).Name}
	assert.ElementsMatch(t, []string{"pond", "lantern_glass"}, names)
	assert.GreaterOrEqual(t, f.Transparent[0].Distance, f.Transparent[1].Distance)
	for _, dr := range f.Transparent {
		assert.False(t, dr.CastShadow)
		assert.True(t, dr.Material.Transparent())
	}

	for _, dr := range f.Opaque {
		if dr.Object == d.Sky {
			assert.False(t, dr.CastShadow, "sky encloses the camera")
		} else {
			assert.True(t, dr.CastShadow, w.Object(dr.Object).Name)
		}
	}
}

func TestPlanCullsBehindCamera(t *testing.T) {
	w, d := gardenWorld(t)
	cam := startCamera()
	cam.Position = math.NewVec3(0, 5, 40)
	cam.LookAt(math.NewVec3(0, 5, 80), math.Vec3Up)

	f := NewPlanner(DefaultSettings()).Plan(w, cam)
	assert.Positive(t, f.Culled)
	assert.Equal(t, cam.GetViewProjectionMatrix(), f.ViewProj)
	assert.Equal(t, f.View.Mul(f.Proj), f.ViewProj)

	var sky bool
	for _, dr := range f.Opaque {
		sky = sky || dr.Object == d.Sky
	}
	assert.True(t, sky, "sky surrounds every view")

	settings := DefaultSettings()
	settings.FrustumCulling = false
	f = NewPlanner(settings).Plan(w, cam)
	assert.Zero(t, f.Culled)
	assert.Equal(t, 96, len(f.Opaque)+len(f.Transparent))
}

func TestPlanFollowsRootRotation(t *testing.T) {
	w, d := gardenWorld(t)
	w.Object(d.Root).Transform.RotateY(math32.Pi)

	f := NewPlanner(DefaultSettings()).Plan(w, startCamera())
	require.Len(t, f.Points, 1)
	assertVec3(t, math.NewVec3(-2.8, 1.35, 2.5), f.Points[0].Position)

	want := math.QuaternionFromEulerXYZ(-1, 0.7, 0).RotateVector(math.Vec3Back)
	assertVec3(t, want, f.Sun.Direction)
}

func TestPlanShadowsDisabled(t *testing.T) {
	w, _ := gardenWorld(t)
	settings := DefaultSettings()
	settings.Shadows = false

	f := NewPlanner(settings).Plan(w, startCamera())
	assert.False(t, f.Shadows)
	assert.Equal(t, math.Mat4Identity(), f.LightVP)
}

func TestPlanNilInputs(t *testing.T) {
	p := NewPlanner(DefaultSettings())
	f := p.Plan(nil, startCamera())
	assert.Empty(t, f.Opaque)
	assert.Nil(t, f.Sun)

	w, _ := gardenWorld(t)
	f = p.Plan(w, nil)
	assert.Empty(t, f.Opaque)
	assert.Equal(t, DefaultSettings().ClearColor.Linear(), f.Clear)
}

func TestPlanCapsPointLights(t *testing.T) {
	w := scene.NewWorld()
	for i := 0; i < MaxPointLights+3; i++ {
		w.SpawnLight("lamp", scene.PointLight(100, 5, false), core.NewTransform(), scene.NoParent)
	}
	f := NewPlanner(DefaultSettings()).Plan(w, startCamera())
	assert.Len(t, f.Points, MaxPointLights)
	assert.Nil(t, f.Sun)
	assert.False(t, f.Shadows)
}

func TestUnknownMaterialFallsBack(t *testing.T) {
	w := scene.NewWorld()
	w.Spawn(scene.Object{Name: "box", Shape: scene.Cube(1), Transform: core.NewTransform()})

	f := NewPlanner(DefaultSettings()).Plan(w, startCamera())
	require.Len(t, f.Opaque, 1)
	assert.Equal(t, scene.DefaultMaterial(), f.Opaque[0].Material)
}

func TestSunViewProjection(t *testing.T) {
	dir := math.NewVec3(0.3, -1, -0.2).Normalize()
	focus := math.NewVec3(1, 2, 3)

	vp, ok := SunViewProjection(dir, focus, 30)
	require.True(t, ok)
	assertVec3(t, math.Vec3Zero, vp.TransformPoint(focus))

	further := vp.TransformPoint(focus.Add(dir.Mul(30)))
	assert.InDelta(t, 0.5, further.Z, 1e-4)
	assert.InDelta(t, 0, further.X, 1e-4)

	side := vp.TransformPoint(focus.Add(dir.Cross(math.Vec3Up).Normalize().Mul(15)))
	assert.InDelta(t, 0.5, math32.Hypot(side.X, side.Y), 1e-4)
	assert.InDelta(t, 0, side.Z, 1e-4)
}

func TestSunViewProjectionStraightDown(t *testing.T) {
	vp, ok := SunViewProjection(math.Vec3Down, math.Vec3Zero, 10)
	require.True(t, ok)
	p := vp.TransformPoint(math.NewVec3(0, -10, 0))
	assert.InDelta(t, 0.5, p.Z, 1e-4)
}

func TestSunViewProjectionRejectsZero(t *testing.T) {
	_, ok := SunViewProjection(math.Vec3Zero, math.Vec3Zero, 10)
	assert.False(t, ok)
}
