// Package config decodes the diorama settings. Defaults are compiled into
// the binary; Parse overlays a TOML document on top of them.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pelletier/go-toml/v2"

	"diorama/controls"
	"diorama/core"
	"diorama/math"
)

//go:embed defaults.toml
var defaultsTOML []byte

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window  Window  `toml:"window"`
	Render  Render  `toml:"render"`
	Camera  Camera  `toml:"camera"`
	Rotator Rotator `toml:"rotator"`
	Keys    Keys    `toml:"keys"`
	Log     Log     `toml:"log"`
}

type Window struct {
	Title        string `toml:"title"`
	Width        int    `toml:"width"`
	Height       int    `toml:"height"`
	CursorLocked bool   `toml:"cursor_locked"`
	VSync        bool   `toml:"vsync"`
	MSAA         int    `toml:"msaa"`
}

type Render struct {
	ClearColor        [3]float32 `toml:"clear_color"`
	AmbientColor      [3]float32 `toml:"ambient_color"`
	AmbientBrightness float32    `toml:"ambient_brightness"`
	Shadows           bool       `toml:"shadows"`
	ShadowMapSize     int        `toml:"shadow_map_size"`
	ShadowExtent      float32    `toml:"shadow_extent"` // half-width of the sun's shadow box
	Exposure          float32    `toml:"exposure"`      // scales lux and candela into shader radiance
}

// Camera angles and fields of view are in degrees.
type Camera struct {
	Position      [3]float32 `toml:"position"`
	LookAt        [3]float32 `toml:"look_at"`
	Yaw           float32    `toml:"yaw"`
	Pitch         float32    `toml:"pitch"`
	FOV           float32    `toml:"fov"`
	Near          float32    `toml:"near"`
	Far           float32    `toml:"far"`
	Speed         float32    `toml:"speed"`
	Sensitivity   float32    `toml:"sensitivity"`
	ZoomSpeed     float32    `toml:"zoom_speed"`
	MinFOV        float32    `toml:"min_fov"`
	MaxFOV        float32    `toml:"max_fov"`
	PitchLimit    float32    `toml:"pitch_limit"`
	PixelsPerLine float32    `toml:"pixels_per_line"`
}

type Rotator struct {
	Rate float32 `toml:"rate"` // radians per second
}

// Keys lists key names per action, resolved with core.KeyByName.
type Keys struct {
	Forward     []string `toml:"forward"`
	Back        []string `toml:"back"`
	Left        []string `toml:"left"`
	Right       []string `toml:"right"`
	Up          []string `toml:"up"`
	Down        []string `toml:"down"`
	Sprint      []string `toml:"sprint"`
	RotateLeft  []string `toml:"rotate_left"`
	RotateRight []string `toml:"rotate_right"`
}

type Log struct {
	Level string `toml:"level"`
}

// Default returns the compiled-in settings.
func Default() Config {
	var cfg Config
	if err := decode(defaultsTOML, &cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Parse overlays data on the defaults and validates the result. Unknown
// keys are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := decode(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	check(c.Window.MSAA >= 0, "msaa %d", c.Window.MSAA)

	check(!c.Render.Shadows || c.Render.ShadowMapSize > 0, "shadow_map_size %d", c.Render.ShadowMapSize)
	check(c.Render.ShadowExtent > 0, "shadow_extent %g", c.Render.ShadowExtent)
	check(c.Render.Exposure > 0, "exposure %g", c.Render.Exposure)

	cam := c.Camera
	check(cam.MinFOV > 0 && cam.MinFOV < cam.MaxFOV && cam.MaxFOV < 180, "fov range [%g, %g]", cam.MinFOV, cam.MaxFOV)
	check(cam.FOV >= cam.MinFOV && cam.FOV <= cam.MaxFOV, "fov %g outside [%g, %g]", cam.FOV, cam.MinFOV, cam.MaxFOV)
	check(cam.PitchLimit > 0 && cam.PitchLimit < 90, "pitch_limit %g", cam.PitchLimit)
	check(cam.Pitch >= -cam.PitchLimit && cam.Pitch <= cam.PitchLimit, "pitch %g", cam.Pitch)
	check(cam.Speed > 0, "speed %g", cam.Speed)
	check(cam.PixelsPerLine > 0, "pixels_per_line %g", cam.PixelsPerLine)
	check(cam.Near > 0 && cam.Near < cam.Far, "clip planes %g..%g", cam.Near, cam.Far)

	if _, err := c.Keys.Bindings(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Bindings resolves every key name.
func (k Keys) Bindings() (controls.Bindings, error) {
	var errs []error
	resolve := func(action string, names []string) []int {
		keys := make([]int, 0, len(names))
		for _, name := range names {
			key, ok := core.KeyByName(name)
			if !ok {
				errs = append(errs, fmt.Errorf("%w: keys.%s: unknown key %q", ErrInvalid, action, name))
				continue
			}
			keys = append(keys, key)
		}
		return keys
	}

	b := controls.Bindings{
		Forward:     resolve("forward", k.Forward),
		Back:        resolve("back", k.Back),
		Left:        resolve("left", k.Left),
		Right:       resolve("right", k.Right),
		Up:          resolve("up", k.Up),
		Down:        resolve("down", k.Down),
		Sprint:      resolve("sprint", k.Sprint),
		RotateLeft:  resolve("rotate_left", k.RotateLeft),
		RotateRight: resolve("rotate_right", k.RotateRight),
	}
	return b, errors.Join(errs...)
}

func (l Log) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalid, l.Level)
	}
	return level, nil
}

// FlyCamera builds the camera controller from the [camera] settings.
func (c Camera) FlyCamera(keys controls.Bindings) *controls.FlyCamera {
	return &controls.FlyCamera{
		Yaw:           c.Yaw,
		Pitch:         c.Pitch,
		Speed:         c.Speed,
		Sensitivity:   c.Sensitivity,
		ZoomSpeed:     c.ZoomSpeed,
		PitchLimit:    c.PitchLimit,
		MinFOV:        c.MinFOV,
		MaxFOV:        c.MaxFOV,
		PixelsPerLine: c.PixelsPerLine,
		Keys:          keys,
	}
}

func Vec3(a [3]float32) math.Vec3 {
	return math.NewVec3(a[0], a[1], a[2])
}

func Color(a [3]float32) core.Color {
	return core.RGB(a[0], a[1], a[2])
}
