package controls

import (
	"diorama/core"
)

// Rotator spins a transform about world up while its keys are held.
type Rotator struct {
	Rate float32 // radians per second
	Keys Bindings
}

func NewRotator() *Rotator {
	return &Rotator{Rate: 0.8, Keys: DefaultBindings()}
}

// Update turns root by the net rate times dt. With neither or both keys
// held the transform is left untouched.
func (r *Rotator) Update(root *core.Transform, in KeyState, dt float32) {
	var rate float32
	if anyHeld(in, r.Keys.RotateLeft) {
		rate += r.Rate
	}
	if anyHeld(in, r.Keys.RotateRight) {
		rate -= r.Rate
	}
	if rate == 0 || root == nil {
		return
	}
	root.RotateY(rate * dt)
}
