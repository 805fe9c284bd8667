package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoPeters1024/deffered-shading/core"
)

func TestStandardTargetsValidate(t *testing.T) {
	for _, spec := range Targets(640, 480) {
		assert.NoError(t, spec.Validate(), spec.Name)
		assert.Equal(t, 640, spec.Width)
		assert.Equal(t, 480, spec.Height)
	}

	g := GBuffer(640, 480)
	assert.Equal(t, DepthTexture, g.Depth)
	assert.Equal(t, 0, g.Index(AttachNormal))
	assert.Equal(t, 1, g.Index(AttachMaterial))
	assert.Equal(t, -1, g.Index("albedo"))
	assert.Equal(t, DepthRenderbuffer, ConeBuffer(640, 480).Depth)
	assert.Equal(t, DepthNone, PostBuffer(640, 480).Depth)
}

func TestTargetSpecRejectsBadLayouts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TargetSpec)
	}{
		{"zero width", func(s *TargetSpec) { s.Width = 0 }},
		{"negative height", func(s *TargetSpec) { s.Height = -4 }},
		{"no attachments", func(s *TargetSpec) { s.Color = nil; s.DrawBuffers = 0 }},
		{"draw buffer mismatch", func(s *TargetSpec) { s.DrawBuffers = 1 }},
		{"duplicate name", func(s *TargetSpec) { s.Color[1].Name = s.Color[0].Name }},
		{"unnamed", func(s *TargetSpec) { s.Color[0].Name = "" }},
		{"too many", func(s *TargetSpec) {
			s.Color = nil
			for i := 0; i < MaxColorAttachments+1; i++ {
				s.Color = append(s.Color, AttachmentSpec{Name: string(rune('a' + i))})
			}
			s.DrawBuffers = len(s.Color)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := GBuffer(640, 480)
			tt.mutate(&spec)
			err := spec.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrIncompleteFramebuffer)
		})
	}
}

func TestProgramTable(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range Programs() {
		assert.NoError(t, p.Validate(), p.Name)
		assert.False(t, seen[p.Name], "duplicate program %q", p.Name)
		seen[p.Name] = true
	}

	comb, ok := FindProgram(ProgramCombinator)
	require.True(t, ok)
	assert.Equal(t, int32(2), comb.Unit("gDepth"))
	assert.Equal(t, int32(-1), comb.Unit("missing"))
	assert.Equal(t, []Block{{"LightBlock", LightBlockBinding}}, comb.Blocks)

	_, ok = FindProgram("ssao")
	assert.False(t, ok)
}

func TestProgramSpecRejectsSharedUnits(t *testing.T) {
	p := ProgramSpec{
		Name:     "bad",
		Samplers: []Sampler{{"a", 0}, {"b", 0}},
		Outputs:  1,
	}
	assert.ErrorIs(t, p.Validate(), core.ErrShaderCompile)

	p.Samplers[1].Unit = 1
	assert.NoError(t, p.Validate())

	p.Uniforms = []string{"a"}
	assert.Error(t, p.Validate())
}

func TestFrameScheduleIsValid(t *testing.T) {
	targets := Targets(640, 480)
	require.NoError(t, ValidateSchedule(Frame(), targets))

	for _, in := range []Input{
		{TargetGBuffer, AttachNormal},
		{TargetGBuffer, AttachMaterial},
		{TargetGBuffer, AttachDepth},
		{TargetCone, AttachCone},
	} {
		passes := DebugView(in)
		assert.NoError(t, ValidateSchedule(passes, targets), in.Attachment)
		assert.Equal(t, ProgramBlit, passes[len(passes)-1].Program)
	}
	assert.Len(t, DebugView(Input{TargetCone, AttachCone}), len(Frame()))
}

func TestFrameOrder(t *testing.T) {
	var programs []string
	for _, p := range Frame() {
		programs = append(programs, p.Program)
	}
	assert.Equal(t, []string{ProgramGeometry, ProgramCone, ProgramCombinator, ProgramComposite}, programs)

	debug := DebugView(Input{TargetGBuffer, AttachNormal})
	assert.Equal(t, ProgramCone, debug[1].Program)
	assert.Equal(t, ProgramCombinator, debug[2].Program)
}

func TestScheduleRejectsBadOrders(t *testing.T) {
	targets := Targets(640, 480)
	frame := Frame()

	swapped := []Pass{frame[1], frame[0], frame[2], frame[3]}
	assert.ErrorContains(t, ValidateSchedule(swapped, targets), "before any pass writes")

	selfRead := append([]Pass{}, frame...)
	selfRead[2].Reads = append(selfRead[2].Reads, Input{TargetPost, AttachColor})
	assert.ErrorContains(t, ValidateSchedule(selfRead, targets), "reads the target")

	wrongOutputs := append([]Pass{}, frame...)
	wrongOutputs[0].Program = ProgramBlit
	assert.ErrorIs(t, ValidateSchedule(wrongOutputs, targets), core.ErrIncompleteFramebuffer)

	noDepth := append([]Pass{}, frame...)
	noDepth[3].Reads = []Input{{TargetPost, AttachDepth}}
	assert.ErrorContains(t, ValidateSchedule(noDepth, targets), "not a texture")

	unknown := []Pass{{Name: "x", Program: "nope", Target: TargetPost}}
	assert.ErrorContains(t, ValidateSchedule(unknown, targets), "unknown program")
}
