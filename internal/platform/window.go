// Package platform owns the glfw window and the OpenGL context. It is the
// only package besides internal/opengl that needs cgo.
package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/HugoPeters1024/deffered-shading/core"
)

func init() {
	// GL calls must come from the thread that owns the context.
	runtime.LockOSThread()
}

type Window struct {
	Handle       *glfw.Window
	Width        int
	Height       int
	Title        string
	SwapInterval int
}

// NewWindow creates a fixed-size window with a current OpenGL 4.5 core
// context.
func NewWindow(config core.WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrGLFWInit, err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLDebugContext, boolToInt(config.Debug))
	glfw.WindowHint(glfw.Resizable, glfw.False)

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: %v", core.ErrWindowCreate, err)
	}
	handle.MakeContextCurrent()

	w := &Window{
		Handle: handle,
		Width:  config.Width,
		Height: config.Height,
		Title:  config.Title,
	}
	w.SetSwapInterval(config.SwapInterval)
	return w, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) Close() {
	w.Handle.SetShouldClose(true)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

// Time is the monotonic time in seconds since glfw was initialized.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) FramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// SetSwapInterval sets how many vertical blanks a buffer swap waits for.
func (w *Window) SetSwapInterval(interval int) {
	glfw.SwapInterval(interval)
	w.SwapInterval = interval
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

// IsKeyPressed takes one of the core.Key codes.
func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func boolToInt(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}
