package renderer

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/opengl"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
	"github.com/HugoPeters1024/deffered-shading/lights"
)

func TestEveryViewIsValid(t *testing.T) {
	require.NoError(t, ValidateViews(pipeline.Targets(640, 480)))

	assert.Equal(t, pipeline.Frame(), ViewFinal.Passes())
	for _, v := range Views()[1:] {
		passes := v.Passes()
		last := passes[len(passes)-1]
		assert.Equal(t, pipeline.ProgramBlit, last.Program, v.String())
		assert.Equal(t, pipeline.TargetScreen, last.Target, v.String())
	}
	assert.Equal(t, pipeline.AttachDepth, ViewDepth.Passes()[3].Reads[0].Attachment)
}

func TestViewsRejectBadTargets(t *testing.T) {
	err := ValidateViews(pipeline.Targets(0, 480))
	assert.ErrorIs(t, err, core.ErrIncompleteFramebuffer)
}

func TestViewNames(t *testing.T) {
	assert.Len(t, Views(), 5)
	assert.Equal(t, "final", ViewFinal.String())
	assert.Equal(t, "cone", ViewCone.String())
	assert.Equal(t, "View(9)", View(9).String())
}

func TestEveryProgramHasPassState(t *testing.T) {
	for _, p := range pipeline.Programs() {
		_, ok := passStates[p.Name]
		assert.True(t, ok, p.Name)
	}
	assert.True(t, passStates[pipeline.ProgramCone].Additive)
	assert.False(t, passStates[pipeline.ProgramCone].DepthWrite)
	assert.True(t, passStates[pipeline.ProgramGeometry].DepthWrite)
}

func TestOnlyTheGeometryPassClearsDepth(t *testing.T) {
	depth := map[string]pipeline.DepthKind{}
	for _, spec := range pipeline.Targets(640, 480) {
		depth[spec.Name] = spec.Depth
	}
	for _, v := range Views() {
		for _, p := range v.Passes() {
			if p.Target == pipeline.TargetScreen {
				continue
			}
			want := p.Program == pipeline.ProgramGeometry
			assert.Equal(t, want, clearsDepth(passStates[p.Program], depth[p.Target]), "%s %s", v, p.Name)
		}
	}
	assert.False(t, clearsDepth(opengl.PassState{DepthWrite: true}, pipeline.DepthNone))
}

func TestParamsFromConfig(t *testing.T) {
	cfg := core.DefaultConfig().Render
	p := ParamsFromConfig(cfg)
	assert.Equal(t, cfg.Ambient, p.Ambient)
	assert.Equal(t, cfg.Specular, p.Specular)
	assert.Equal(t, mgl32.Vec3{0.55, 0.6, 0.7}, p.MistColor)
	assert.Equal(t, cfg.MistPower, p.MistPower)
}

func TestShaftLightsSkipWideAndOmniLights(t *testing.T) {
	arr := lights.ComputeLights(2, 0)
	shafts := ShaftLights(&arr)
	// The overhead light is a spot with a zero cutoff.
	assert.Len(t, shafts, lights.OrbitingLights)
	for _, l := range shafts {
		assert.GreaterOrEqual(t, l.Direction.W(), float32(minShaftCutoff))
	}

	var omni lights.Array
	require.NoError(t, omni.Add(lights.Light{Color: mgl32.Vec4{1, 1, 1, 1}}))
	assert.Empty(t, ShaftLights(&omni))
}

func TestMarkerModelsFollowLights(t *testing.T) {
	arr := lights.ComputeLights(7, 0)
	models := MarkerModels(&arr)
	require.Len(t, models, int(arr.Count))
	for i, m := range models {
		assert.Equal(t, arr.Lights[i].Position.Vec3(), m.Col(3).Vec3())
	}

	var empty lights.Array
	assert.Empty(t, MarkerModels(&empty))
}

func TestShaftBoundsEncloseCone(t *testing.T) {
	l := lights.Light{
		Position:  mgl32.Vec4{0, 20, 0, 0},
		Direction: mgl32.Vec4{0, -1, 0, 0.96},
	}
	box := ShaftBounds(l, 25)
	assert.Equal(t, float32(20), box.Max.Y())
	// The base ring at y=-5 is padded by the cone radius on every axis.
	assert.Less(t, box.Min.Y(), float32(-5))
	assert.Greater(t, box.Max.X(), float32(0))
	assert.InDelta(t, -box.Max.X(), box.Min.X(), 1e-4)
}
