// Command diorama opens the Japanese garden diorama in a window. Mouse
// looks, WASD flies, Space/Ctrl rise and sink, Shift sprints, the wheel
// zooms and Q/E spin the garden.
package main

import (
	"log/slog"
	"os"

	"diorama/app"
	"diorama/config"
	"diorama/core"
	"diorama/input"
	"diorama/internal/opengl"
	"diorama/platform"
)

// statsInterval is how often, in seconds, frame statistics are logged.
const statsInterval = 5.0

func main() {
	cfg := config.Default()

	level, err := cfg.Log.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if err := run(cfg, logger); err != nil {
		logger.Error("diorama failed", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	d, err := app.New(cfg, logger)
	if err != nil {
		return err
	}

	window, err := platform.NewWindow(platform.WindowConfig{
		Width:        cfg.Window.Width,
		Height:       cfg.Window.Height,
		Title:        cfg.Window.Title,
		Resizable:    true,
		VSync:        cfg.Window.VSync,
		Samples:      cfg.Window.MSAA,
		CursorLocked: cfg.Window.CursorLocked,
	})
	if err != nil {
		return err
	}
	defer window.Destroy()

	shadowSize := 0
	if cfg.Render.Shadows {
		shadowSize = cfg.Render.ShadowMapSize
	}
	backend, err := opengl.NewRenderer(logger, shadowSize)
	if err != nil {
		return err
	}
	defer backend.Destroy()

	if err := backend.UploadTextures(d.World); err != nil {
		return err
	}

	width, height := window.GetFramebufferSize()
	backend.SetViewport(width, height)
	d.Resize(width, height)
	window.OnResize(func(w, h int) {
		backend.SetViewport(w, h)
		d.Resize(w, h)
	})
	logger.Info("window open", "title", cfg.Window.Title, "width", width, "height", height)

	in := input.NewState()
	platform.Bind(window, in)

	last := window.Time()
	statsAt := last
	frames := 0
	for !window.ShouldClose() {
		window.PollEvents()
		if in.Held(core.KeyEscape) {
			window.Close()
		}

		now := window.Time()
		dt := float32(now - last)
		last = now

		d.Step(in, dt)
		frame := d.Frame()
		backend.Render(&frame)
		window.SwapBuffers()

		frames++
		if now-statsAt >= statsInterval {
			st := backend.Stats()
			logger.Debug("frame stats",
				"fps", float64(frames)/(now-statsAt),
				"drawn", st.Objects,
				"triangles", st.Triangles,
				"culled", st.Culled,
				"shadow_casters", st.Shadowed,
				"meshes", backend.MeshCount())
			statsAt = now
			frames = 0
		}
	}
	logger.Info("window closed", "frames", d.Frames)
	return nil
}
