// Package platform owns the GLFW window and its OpenGL context.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// GLFW and the GL context must stay on the main OS thread.
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string

	resizeCallbacks []ResizeCallback
}

type WindowConfig struct {
	Width        int
	Height       int
	Title        string
	Resizable    bool
	VSync        bool
	Samples      int  // MSAA sample count; 0 disables multisampling
	CursorLocked bool // hide the cursor and report unbounded relative motion
}

// NewWindow creates a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.Samples, config.Samples)

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()

	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if config.CursorLocked {
		handle.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
		if glfw.RawMouseMotionSupported() {
			handle.SetInputMode(glfw.RawMouseMotion, glfw.True)
		}
	}

	window := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}

	handle.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		window.Width = width
		window.Height = height
		for _, cb := range window.resizeCallbacks {
			cb(width, height)
		}
	})

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

// Time returns seconds since GLFW was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// CursorCallback receives absolute cursor positions. With a locked cursor
// the positions are virtual and unbounded.
type CursorCallback func(x, y float64)

func (w *Window) SetCursorCallback(cb CursorCallback) {
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		cb(x, y)
	})
}

// KeyCallback receives key transitions; auto-repeat events are dropped.
type KeyCallback func(key int, pressed bool)

func (w *Window) SetKeyCallback(cb KeyCallback) {
	w.Handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			cb(int(key), true)
		case glfw.Release:
			cb(int(key), false)
		}
	})
}

func (w *Window) SetFocusCallback(cb func(focused bool)) {
	w.Handle.SetFocusCallback(func(win *glfw.Window, focused bool) {
		cb(focused)
	})
}

// Close asks the frame loop to stop after the current frame.
func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

// ResizeCallback receives the new framebuffer size in pixels.
type ResizeCallback func(width, height int)

func (w *Window) OnResize(cb ResizeCallback) {
	w.resizeCallbacks = append(w.resizeCallbacks, cb)
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
