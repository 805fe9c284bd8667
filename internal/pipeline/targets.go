// Package pipeline describes the deferred pipeline without touching the GPU:
// render target layouts, program interfaces and the per-frame pass order.
// Everything here is validated before the first GL call.
package pipeline

import (
	"fmt"

	"github.com/HugoPeters1024/deffered-shading/core"
)

// MaxColorAttachments is the minimum GL_MAX_COLOR_ATTACHMENTS every GL 4.5
// implementation guarantees.
const MaxColorAttachments = 8

// Format is a color attachment storage format.
type Format int

const (
	FormatRGB8 Format = iota
	FormatRGB16F
	FormatRGBA16F
)

func (f Format) String() string {
	switch f {
	case FormatRGB8:
		return "RGB8"
	case FormatRGB16F:
		return "RGB16F"
	case FormatRGBA16F:
		return "RGBA16F"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// DepthKind selects the depth attachment of a target.
type DepthKind int

const (
	DepthNone DepthKind = iota
	// DepthRenderbuffer is depth the target tests against but nobody samples.
	DepthRenderbuffer
	// DepthTexture is depth later passes sample.
	DepthTexture
)

// AttachmentSpec declares one color attachment. Attachments bind to
// consecutive color attachment points in declaration order.
type AttachmentSpec struct {
	Name   string
	Format Format
}

// TargetSpec declares a fixed-size render target.
type TargetSpec struct {
	Name   string
	Width  int
	Height int
	Color  []AttachmentSpec
	Depth  DepthKind
	// DrawBuffers is the number of fragment outputs routed into the target.
	// It must match len(Color).
	DrawBuffers int
}

// Validate checks the layout. Every failure wraps
// core.ErrIncompleteFramebuffer since the target could never be complete.
func (s TargetSpec) Validate() error {
	fail := func(format string, args ...interface{}) error {
		return fmt.Errorf("%w: target %q: %s", core.ErrIncompleteFramebuffer, s.Name, fmt.Sprintf(format, args...))
	}
	if s.Width <= 0 || s.Height <= 0 {
		return fail("size %dx%d", s.Width, s.Height)
	}
	if len(s.Color) == 0 {
		return fail("no color attachments")
	}
	if len(s.Color) > MaxColorAttachments {
		return fail("%d color attachments, at most %d", len(s.Color), MaxColorAttachments)
	}
	if s.DrawBuffers != len(s.Color) {
		return fail("%d draw buffers for %d color attachments", s.DrawBuffers, len(s.Color))
	}
	seen := map[string]bool{}
	for _, a := range s.Color {
		if a.Name == "" {
			return fail("unnamed attachment")
		}
		if seen[a.Name] {
			return fail("duplicate attachment %q", a.Name)
		}
		seen[a.Name] = true
	}
	return nil
}

// Index returns the attachment slot of name, or -1.
func (s TargetSpec) Index(name string) int {
	for i, a := range s.Color {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// Target and attachment names.
const (
	TargetGBuffer = "gbuffer"
	TargetCone    = "cone"
	TargetPost    = "post"
	TargetScreen  = "screen"

	AttachNormal   = "normal"
	AttachMaterial = "material"
	AttachCone     = "cone"
	AttachColor    = "color"
)

// GBuffer holds range-compressed normals, albedo and sampleable depth.
// Normals use a float format so the [0,1] encoding keeps precision.
func GBuffer(width, height int) TargetSpec {
	return TargetSpec{
		Name:   TargetGBuffer,
		Width:  width,
		Height: height,
		Color: []AttachmentSpec{
			{Name: AttachNormal, Format: FormatRGB16F},
			{Name: AttachMaterial, Format: FormatRGB8},
		},
		Depth:       DepthTexture,
		DrawBuffers: 2,
	}
}

// ConeBuffer accumulates additive light-shaft color.
func ConeBuffer(width, height int) TargetSpec {
	return TargetSpec{
		Name:        TargetCone,
		Width:       width,
		Height:      height,
		Color:       []AttachmentSpec{{Name: AttachCone, Format: FormatRGBA16F}},
		Depth:       DepthRenderbuffer,
		DrawBuffers: 1,
	}
}

// PostBuffer receives the resolved lighting in HDR.
func PostBuffer(width, height int) TargetSpec {
	return TargetSpec{
		Name:        TargetPost,
		Width:       width,
		Height:      height,
		Color:       []AttachmentSpec{{Name: AttachColor, Format: FormatRGBA16F}},
		Depth:       DepthNone,
		DrawBuffers: 1,
	}
}

// Targets is the standard off-screen target set at one resolution.
func Targets(width, height int) []TargetSpec {
	return []TargetSpec{
		GBuffer(width, height),
		ConeBuffer(width, height),
		PostBuffer(width, height),
	}
}
