// Package controls holds the two per-frame reducers of the diorama: the
// fly camera and the scene rotator. Neither touches the window; both read
// input through the interfaces below.
package controls

import (
	"diorama/core"
	"diorama/input"
	"diorama/math"
)

// KeyState reports whether a key is currently held.
type KeyState interface {
	Held(key int) bool
}

// Input is the per-frame input source. Drain calls return the events
// queued since the previous drain.
type Input interface {
	KeyState
	DrainMotion() []math.Vec2
	DrainScroll() []input.ScrollEvent
}

var _ Input = (*input.State)(nil)

// Bindings maps each action to the keys that trigger it. An action is
// active while any of its keys is held.
type Bindings struct {
	Forward     []int
	Back        []int
	Left        []int
	Right       []int
	Up          []int
	Down        []int
	Sprint      []int
	RotateLeft  []int
	RotateRight []int
}

func DefaultBindings() Bindings {
	return Bindings{
		Forward:     []int{core.KeyW},
		Back:        []int{core.KeyS},
		Left:        []int{core.KeyA},
		Right:       []int{core.KeyD},
		Up:          []int{core.KeySpace},
		Down:        []int{core.KeyLeftControl, core.KeyRightControl},
		Sprint:      []int{core.KeyLeftShift, core.KeyRightShift},
		RotateLeft:  []int{core.KeyQ},
		RotateRight: []int{core.KeyE},
	}
}

func anyHeld(in KeyState, keys []int) bool {
	for _, k := range keys {
		if in.Held(k) {
			return true
		}
	}
	return false
}
