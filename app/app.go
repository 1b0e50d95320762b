// Package app assembles the diorama state and advances it one frame at a
// time. It owns no window, so a whole run can be driven from tests.
package app

import (
	"fmt"
	"log/slog"

	"diorama/config"
	"diorama/core"
	"diorama/controls"
	"diorama/garden"
	"diorama/input"
	"diorama/materials"
	"diorama/math"
	"diorama/renderer"
	"diorama/scene"
)

// Diorama is the explicit state the per-frame reducers read and mutate.
type Diorama struct {
	World     *scene.World
	Materials materials.Table
	Garden    garden.Diorama

	Camera  *scene.Camera
	Fly     *controls.FlyCamera
	Rotator *controls.Rotator

	Planner *renderer.Planner
	Frames  uint64
}

// New builds the world and camera described by cfg. The aspect ratio is
// set from the configured window size until the first Resize.
func New(cfg config.Config, logger *slog.Logger) (*Diorama, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	keys, err := cfg.Keys.Bindings()
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}

	w := scene.NewWorld()
	table := materials.Register(w)
	g := garden.Build(w, table)

	camCfg := cfg.Camera
	cam := scene.NewCamera(
		math.Radians(camCfg.FOV),
		float32(cfg.Window.Width)/float32(cfg.Window.Height),
		camCfg.Near,
		camCfg.Far,
	)
	cam.Position = config.Vec3(camCfg.Position)
	cam.LookAt(config.Vec3(camCfg.LookAt), math.Vec3Up)

	rot := controls.NewRotator()
	rot.Rate = cfg.Rotator.Rate
	rot.Keys = keys

	d := &Diorama{
		World:     w,
		Materials: table,
		Garden:    g,
		Camera:    cam,
		Fly:       camCfg.FlyCamera(keys),
		Rotator:   rot,
		Planner:   renderer.NewPlanner(RenderSettings(cfg.Render)),
	}
	logger.Info("diorama built",
		"objects", w.Len(),
		"root_children", len(w.Children(g.Root)),
		"materials", w.MaterialCount(),
		"textures", w.TextureCount())
	return d, nil
}

// RenderSettings maps the [render] section onto planner settings.
func RenderSettings(r config.Render) renderer.Settings {
	s := renderer.DefaultSettings()
	s.ClearColor = config.Color(r.ClearColor)
	s.Ambient = config.Color(r.AmbientColor).Scale(r.AmbientBrightness)
	s.Exposure = r.Exposure
	s.Shadows = r.Shadows
	s.ShadowExtent = r.ShadowExtent
	return s
}

// Step runs one frame: the camera controller and the scene rotator each
// consume this frame's input, then undrained events are discarded.
func (d *Diorama) Step(in *input.State, dt float32) {
	d.Fly.Update(d.Camera, in, dt)
	d.Rotator.Update(d.rootTransform(), in, dt)
	in.EndFrame()
	d.Frames++
}

// Resize updates the camera aspect ratio for a new framebuffer size.
func (d *Diorama) Resize(width, height int) {
	d.Camera.UpdateAspectRatio(float32(width), float32(height))
}

// Frame plans the draw lists for the current state.
func (d *Diorama) Frame() renderer.Frame {
	return d.Planner.Plan(d.World, d.Camera)
}

func (d *Diorama) rootTransform() *core.Transform {
	root := d.World.Object(d.Garden.Root)
	if root == nil {
		return nil
	}
	return &root.Transform
}
