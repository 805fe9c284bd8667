package opengl

import (
	"fmt"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
	"github.com/HugoPeters1024/deffered-shading/lights"
	"github.com/HugoPeters1024/deffered-shading/shading"
)

var fragOutput = regexp.MustCompile(`(?m)^\s*(layout\(location = \d+\)\s*)?out\s+\w+\s+\w+;`)

func TestEveryProgramHasSource(t *testing.T) {
	for _, spec := range pipeline.Programs() {
		src, ok := Sources[spec.Name]
		require.True(t, ok, spec.Name)
		assert.True(t, strings.HasSuffix(src.Vertex, "\x00"), spec.Name)
		assert.True(t, strings.HasSuffix(src.Fragment, "\x00"), spec.Name)
		if src.Geometry != "" {
			assert.True(t, strings.HasSuffix(src.Geometry, "\x00"), spec.Name)
		}
	}
	assert.Len(t, Sources, len(pipeline.Programs()))
}

func TestSourcesDeclareProgramInterface(t *testing.T) {
	for _, spec := range pipeline.Programs() {
		src := Sources[spec.Name]
		all := src.Vertex + src.Geometry + src.Fragment

		for _, u := range spec.Uniforms {
			re := regexp.MustCompile(`uniform\s+\w+\s+` + u + `\s*;`)
			assert.Regexp(t, re, all, "%s: uniform %s", spec.Name, u)
		}
		for _, s := range spec.Samplers {
			re := regexp.MustCompile(`uniform\s+sampler2D\s+` + s.Name + `\s*;`)
			assert.Regexp(t, re, all, "%s: sampler %s", spec.Name, s.Name)
		}
		for _, b := range spec.Blocks {
			re := regexp.MustCompile(`uniform\s+` + b.Name + `\s*\{`)
			assert.Regexp(t, re, all, "%s: block %s", spec.Name, b.Name)
		}

		outputs := fragOutput.FindAllString(src.Fragment, -1)
		assert.Len(t, outputs, spec.Outputs, spec.Name)
	}
}

func TestCombinatorMatchesCPUReference(t *testing.T) {
	src := Sources[pipeline.ProgramCombinator].Fragment
	assert.Contains(t, src, fmt.Sprintf("Light lights[%d];", lights.Capacity))
	assert.Contains(t, src, fmt.Sprintf("SPOT_BAND = %v;", shading.SpotBand))
	assert.Contains(t, src, "i < lightCount")
	assert.Contains(t, src, "layout(std140)")
}

func TestConeGeometryFitsVertexBudget(t *testing.T) {
	src := Sources[pipeline.ProgramCone].Geometry
	// 16 triangles of 3 vertices each.
	assert.Contains(t, src, "SUBDIVISIONS = 16;")
	assert.Contains(t, src, "max_vertices = 48")
}
