package input

import (
	"diorama/math"
)

// ScrollUnit tells whether a scroll event counts wheel lines or pixels.
type ScrollUnit int

const (
	ScrollLine ScrollUnit = iota
	ScrollPixel
)

type ScrollEvent struct {
	Unit ScrollUnit
	Y    float32
}

// State collects window events between frames. Held keys persist until
// released; motion and scroll events are queued until drained.
type State struct {
	// Key states
	held map[int]bool

	// Mouse state
	lastX, lastY float64
	hasCursor    bool
	motion       []math.Vec2
	scroll       []ScrollEvent
}

func NewState() *State {
	return &State{held: make(map[int]bool)}
}

func (s *State) SetKey(key int, pressed bool) {
	if pressed {
		s.held[key] = true
		return
	}
	delete(s.held, key)
}

func (s *State) Held(key int) bool {
	return s.held[key]
}

// PushCursor records an absolute cursor position and queues the delta from
// the previous one. The first sample only establishes the origin.
func (s *State) PushCursor(x, y float64) {
	if !s.hasCursor {
		s.lastX, s.lastY = x, y
		s.hasCursor = true
		return
	}
	dx, dy := x-s.lastX, y-s.lastY
	s.lastX, s.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	s.PushMotion(math.NewVec2(float32(dx), float32(dy)))
}

// PushMotion queues a relative mouse movement. Positive Y is downward.
func (s *State) PushMotion(delta math.Vec2) {
	s.motion = append(s.motion, delta)
}

func (s *State) PushScroll(ev ScrollEvent) {
	s.scroll = append(s.scroll, ev)
}

// DrainMotion returns the queued motion events and empties the queue.
func (s *State) DrainMotion() []math.Vec2 {
	out := s.motion
	s.motion = nil
	return out
}

// DrainScroll returns the queued scroll events and empties the queue.
func (s *State) DrainScroll() []ScrollEvent {
	out := s.scroll
	s.scroll = nil
	return out
}

// EndFrame discards events nobody drained this frame.
func (s *State) EndFrame() {
	s.motion = s.motion[:0]
	s.scroll = s.scroll[:0]
}

// ReleaseAll forgets every held key, e.g. when the window loses focus.
func (s *State) ReleaseAll() {
	clear(s.held)
}
