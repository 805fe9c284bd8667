package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.5-core/gl"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
)

// RenderTarget is an off-screen framebuffer with ordered color attachments
// and an optional depth attachment. Its size is fixed at creation.
type RenderTarget struct {
	Spec pipeline.TargetSpec
	FBO  uint32

	color    []uint32
	depthTex uint32
	depthRBO uint32
}

// glFormat returns internal format, pixel format and component type.
func glFormat(f pipeline.Format) (int32, uint32, uint32) {
	switch f {
	case pipeline.FormatRGB8:
		return gl.RGB8, gl.RGB, gl.UNSIGNED_BYTE
	case pipeline.FormatRGB16F:
		return gl.RGB16F, gl.RGB, gl.HALF_FLOAT
	default:
		return gl.RGBA16F, gl.RGBA, gl.HALF_FLOAT
	}
}

// NewRenderTarget validates spec, allocates its attachments in declaration
// order and checks completeness. Every error wraps
// core.ErrIncompleteFramebuffer.
func NewRenderTarget(spec pipeline.TargetSpec) (*RenderTarget, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	w, h := int32(spec.Width), int32(spec.Height)
	rt := &RenderTarget{Spec: spec, color: make([]uint32, len(spec.Color))}

	gl.GenFramebuffers(1, &rt.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)

	drawBuffers := make([]uint32, len(spec.Color))
	for i, a := range spec.Color {
		internal, format, typ := glFormat(a.Format)
		rt.color[i] = allocTexture(internal, w, h, format, typ)
		attachment := uint32(gl.COLOR_ATTACHMENT0 + i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachment, gl.TEXTURE_2D, rt.color[i], 0)
		drawBuffers[i] = attachment
	}
	gl.DrawBuffers(int32(len(drawBuffers)), &drawBuffers[0])

	switch spec.Depth {
	case pipeline.DepthTexture:
		rt.depthTex = allocTexture(gl.DEPTH_COMPONENT24, w, h, gl.DEPTH_COMPONENT, gl.FLOAT)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.TEXTURE_2D, rt.depthTex, 0)
	case pipeline.DepthRenderbuffer:
		gl.GenRenderbuffers(1, &rt.depthRBO)
		gl.BindRenderbuffer(gl.RENDERBUFFER, rt.depthRBO)
		gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, w, h)
		gl.BindRenderbuffer(gl.RENDERBUFFER, 0)
		gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.depthRBO)
	}

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		rt.Destroy()
		return nil, fmt.Errorf("%w: target %q status 0x%X", core.ErrIncompleteFramebuffer, spec.Name, status)
	}

	core.LogDebug("render target ready", "target", spec.Name, "width", spec.Width, "height", spec.Height, "attachments", len(spec.Color))
	return rt, nil
}

// allocTexture creates a NEAREST, CLAMP_TO_EDGE texture with no data.
func allocTexture(internal, w, h int32, format, typ uint32) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, internal, w, h, 0, format, typ, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// Bind makes the target current and sets the viewport to its size.
func (rt *RenderTarget) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.Viewport(0, 0, int32(rt.Spec.Width), int32(rt.Spec.Height))
}

// Clear clears every color attachment to c and, when depth is set, the depth
// attachment to 1. glClear honors the depth mask, so depth writes must be
// enabled for the depth clear to take effect.
func (rt *RenderTarget) Clear(c core.Color, depth bool) {
	gl.ClearColor(c.R, c.G, c.B, c.A)
	mask := uint32(gl.COLOR_BUFFER_BIT)
	if depth && rt.Spec.Depth != pipeline.DepthNone {
		gl.ClearDepth(1)
		mask |= gl.DEPTH_BUFFER_BIT
	}
	gl.Clear(mask)
}

// Attachment returns the color texture declared under name, or 0.
func (rt *RenderTarget) Attachment(name string) uint32 {
	if i := rt.Spec.Index(name); i >= 0 {
		return rt.color[i]
	}
	return 0
}

// DepthTexture returns the depth texture, or 0 when depth is a renderbuffer
// or absent.
func (rt *RenderTarget) DepthTexture() uint32 {
	return rt.depthTex
}

// Input resolves a pass input on this target to a texture.
func (rt *RenderTarget) Input(attachment string) uint32 {
	if attachment == pipeline.AttachDepth {
		return rt.depthTex
	}
	return rt.Attachment(attachment)
}

func (rt *RenderTarget) Destroy() {
	if rt.FBO != 0 {
		gl.DeleteFramebuffers(1, &rt.FBO)
		rt.FBO = 0
	}
	if len(rt.color) > 0 {
		gl.DeleteTextures(int32(len(rt.color)), &rt.color[0])
		rt.color = nil
	}
	if rt.depthTex != 0 {
		gl.DeleteTextures(1, &rt.depthTex)
		rt.depthTex = 0
	}
	if rt.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &rt.depthRBO)
		rt.depthRBO = 0
	}
}
