package scene

import "diorama/core"

type LightKind int

const (
	LightPoint LightKind = iota
	LightDirectional
)

// Light is attached to an object; point lights shine from its world
// position and directional lights along its world -Z axis.
type Light struct {
	Kind    LightKind
	Color   core.Color
	Shadows bool

	Intensity float32 // point: luminous power in lumens
	Range     float32 // point: cutoff distance

	Illuminance float32 // directional: lux
}

func PointLight(intensity, lightRange float32, shadows bool) Light {
	return Light{
		Kind:      LightPoint,
		Color:     core.ColorWhite,
		Intensity: intensity,
		Range:     lightRange,
		Shadows:   shadows,
	}
}

func DirectionalLight(illuminance float32, shadows bool) Light {
	return Light{
		Kind:        LightDirectional,
		Color:       core.ColorWhite,
		Illuminance: illuminance,
		Shadows:     shadows,
	}
}
