package platform

import (
	"diorama/input"
)

// Bind routes the window's key, cursor, scroll and focus callbacks into s.
// GLFW reports wheel offsets in lines.
func Bind(w *Window, s *input.State) {
	w.SetKeyCallback(func(key int, pressed bool) {
		s.SetKey(key, pressed)
	})
	w.SetCursorCallback(func(x, y float64) {
		s.PushCursor(x, y)
	})
	w.SetScrollCallback(func(xoff, yoff float64) {
		s.PushScroll(input.ScrollEvent{Unit: input.ScrollLine, Y: float32(yoff)})
	})
	// Release events are lost while unfocused.
	w.SetFocusCallback(func(focused bool) {
		if !focused {
			s.ReleaseAll()
		}
	})
}
