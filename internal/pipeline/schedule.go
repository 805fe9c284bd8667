package pipeline

import (
	"fmt"

	"github.com/HugoPeters1024/deffered-shading/core"
)

// Input is a texture a pass samples: an attachment of a target, or its
// depth when Attachment is "depth".
type Input struct {
	Target     string
	Attachment string
}

// AttachDepth names a target's depth texture as a pass input.
const AttachDepth = "depth"

// Pass is one draw step of a frame.
type Pass struct {
	Name    string
	Program string
	// Target is written by the pass; TargetScreen is the default framebuffer.
	Target string
	Reads  []Input
}

// Frame is the fixed pass order of one frame:
//
//	geometry   -> gbuffer
//	cone       gbuffer depth -> cone
//	combinator gbuffer -> post
//	composite  post, cone -> screen
func Frame() []Pass {
	return []Pass{
		{Name: "geometry", Program: ProgramGeometry, Target: TargetGBuffer},
		{
			Name: "cones", Program: ProgramCone, Target: TargetCone,
			Reads: []Input{{TargetGBuffer, AttachDepth}},
		},
		{
			Name: "lighting", Program: ProgramCombinator, Target: TargetPost,
			Reads: []Input{
				{TargetGBuffer, AttachNormal},
				{TargetGBuffer, AttachMaterial},
				{TargetGBuffer, AttachDepth},
			},
		},
		{
			Name: "composite", Program: ProgramComposite, Target: TargetScreen,
			Reads: []Input{{TargetPost, AttachColor}, {TargetCone, AttachCone}},
		},
	}
}

// DebugView runs every pass of the frame except the composite, then blits
// one input to the screen instead.
func DebugView(input Input) []Pass {
	frame := Frame()
	passes := frame[:len(frame)-1]
	return append(passes, Pass{
		Name: "debug", Program: ProgramBlit, Target: TargetScreen, Reads: []Input{input},
	})
}

// ValidateSchedule checks a pass list against the target and program tables.
// A pass may only read targets written by an earlier pass and never the
// target it writes. Program output counts must match the target's draw
// buffers.
func ValidateSchedule(passes []Pass, targets []TargetSpec) error {
	byName := map[string]TargetSpec{}
	for _, t := range targets {
		if err := t.Validate(); err != nil {
			return err
		}
		byName[t.Name] = t
	}

	written := map[string]bool{}
	for _, p := range passes {
		prog, ok := FindProgram(p.Program)
		if !ok {
			return fmt.Errorf("pass %q: unknown program %q", p.Name, p.Program)
		}
		if p.Target != TargetScreen {
			t, ok := byName[p.Target]
			if !ok {
				return fmt.Errorf("pass %q: unknown target %q", p.Name, p.Target)
			}
			if prog.Outputs != t.DrawBuffers {
				return fmt.Errorf("%w: pass %q: program %q writes %d outputs, target %q has %d draw buffers",
					core.ErrIncompleteFramebuffer, p.Name, prog.Name, prog.Outputs, t.Name, t.DrawBuffers)
			}
		} else if prog.Outputs != 1 {
			return fmt.Errorf("%w: pass %q: screen takes one output, program %q writes %d",
				core.ErrIncompleteFramebuffer, p.Name, prog.Name, prog.Outputs)
		}

		for _, in := range p.Reads {
			if in.Target == p.Target {
				return fmt.Errorf("pass %q reads the target %q it writes", p.Name, in.Target)
			}
			if !written[in.Target] {
				return fmt.Errorf("pass %q reads %q before any pass writes it", p.Name, in.Target)
			}
			t := byName[in.Target]
			if in.Attachment == AttachDepth {
				if t.Depth != DepthTexture {
					return fmt.Errorf("pass %q samples depth of %q which is not a texture", p.Name, in.Target)
				}
			} else if t.Index(in.Attachment) < 0 {
				return fmt.Errorf("pass %q reads unknown attachment %s.%s", p.Name, in.Target, in.Attachment)
			}
		}
		written[p.Target] = true
	}
	return nil
}
