// Package opengl realizes the deferred pipeline on an OpenGL 4.5 core
// context: render targets, linked programs, the light uniform buffer and
// mesh and texture upload.
package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.5-core/gl"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
)

// RenderContext owns every GPU resource of the pipeline. All methods must be
// called on the thread holding the GL context.
type RenderContext struct {
	Targets  map[string]*RenderTarget
	Programs *Programs
	Lights   *LightStore
	Textures *TextureCache

	// emptyVAO backs attribute-less draws (fullscreen triangle, cone points).
	emptyVAO uint32
}

// NewRenderContext loads GL entry points and creates the targets and
// programs at width x height. debug installs the message callback.
func NewRenderContext(width, height int, debug bool) (*RenderContext, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrGLInit, err)
	}
	core.LogInfo("opengl ready",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	if debug {
		EnableDebugOutput()
	}

	targets := pipeline.Targets(width, height)
	if err := pipeline.ValidateSchedule(pipeline.Frame(), targets); err != nil {
		return nil, err
	}

	rc := &RenderContext{Targets: map[string]*RenderTarget{}, Textures: NewTextureCache()}
	for _, spec := range targets {
		rt, err := NewRenderTarget(spec)
		if err != nil {
			rc.Destroy()
			return nil, err
		}
		rc.Targets[spec.Name] = rt
	}

	programs, err := NewPrograms()
	if err != nil {
		rc.Destroy()
		return nil, err
	}
	rc.Programs = programs
	rc.Lights = NewLightStore()
	gl.GenVertexArrays(1, &rc.emptyVAO)
	return rc, nil
}

// Target returns a render target by name; it panics on unknown names since
// the set is fixed at startup.
func (rc *RenderContext) Target(name string) *RenderTarget {
	rt, ok := rc.Targets[name]
	if !ok {
		panic(fmt.Sprintf("no render target %q", name))
	}
	return rt
}

// Input resolves a pass input to a texture id.
func (rc *RenderContext) Input(in pipeline.Input) uint32 {
	return rc.Target(in.Target).Input(in.Attachment)
}

// BindScreen binds the default framebuffer at the given size and clears its
// color to c.
func (rc *RenderContext) BindScreen(width, height int, c core.Color) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(c.R, c.G, c.B, c.A)
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// DrawFullscreen draws the gl_VertexID triangle with the current program.
func (rc *RenderContext) DrawFullscreen() {
	gl.BindVertexArray(rc.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
}

// BindEmpty binds the attribute-less VAO for point draws.
func (rc *RenderContext) BindEmpty() {
	gl.BindVertexArray(rc.emptyVAO)
}

func (rc *RenderContext) Destroy() {
	for name, rt := range rc.Targets {
		rt.Destroy()
		delete(rc.Targets, name)
	}
	if rc.Programs != nil {
		rc.Programs.Destroy()
	}
	if rc.Lights != nil {
		rc.Lights.Destroy()
	}
	rc.Textures.Destroy()
	if rc.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &rc.emptyVAO)
		rc.emptyVAO = 0
	}
}

// PassState is the fixed-function state a pass draws with.
type PassState struct {
	DepthTest  bool
	DepthWrite bool
	// Additive blends ONE, ONE.
	Additive bool
}

// ApplyState sets depth and blend state.
func ApplyState(s PassState) {
	if s.DepthTest {
		gl.Enable(gl.DEPTH_TEST)
		gl.DepthFunc(gl.LESS)
	} else {
		gl.Disable(gl.DEPTH_TEST)
	}
	gl.DepthMask(s.DepthWrite)
	if s.Additive {
		gl.Enable(gl.BLEND)
		gl.BlendFunc(gl.ONE, gl.ONE)
	} else {
		gl.Disable(gl.BLEND)
	}
}
