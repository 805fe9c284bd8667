package pipeline

import (
	"fmt"

	"github.com/HugoPeters1024/deffered-shading/core"
)

// Program names.
const (
	ProgramGeometry   = "geometry"
	ProgramCombinator = "combinator"
	ProgramCone       = "cone"
	ProgramComposite  = "composite"
	ProgramBlit       = "blit"
)

// LightBlockBinding is the uniform buffer binding point of the light array.
const LightBlockBinding = 0

// Sampler binds a sampler uniform to a texture unit.
type Sampler struct {
	Name string
	Unit int32
}

// Block binds a uniform block to a buffer binding point.
type Block struct {
	Name    string
	Binding uint32
}

// ProgramSpec is the interface of one shader program: the uniforms the
// renderer sets every frame, the fixed sampler units, the uniform blocks and
// the number of fragment outputs.
type ProgramSpec struct {
	Name     string
	Uniforms []string
	Samplers []Sampler
	Blocks   []Block
	Outputs  int
}

// Validate rejects name clashes and two samplers sharing a unit.
func (p ProgramSpec) Validate() error {
	if p.Outputs < 1 {
		return fmt.Errorf("%w: program %q has %d outputs", core.ErrShaderCompile, p.Name, p.Outputs)
	}
	names := map[string]bool{}
	units := map[int32]string{}
	check := func(n string) error {
		if n == "" || names[n] {
			return fmt.Errorf("%w: program %q declares %q twice", core.ErrShaderCompile, p.Name, n)
		}
		names[n] = true
		return nil
	}
	for _, u := range p.Uniforms {
		if err := check(u); err != nil {
			return err
		}
	}
	for _, s := range p.Samplers {
		if err := check(s.Name); err != nil {
			return err
		}
		if other, ok := units[s.Unit]; ok {
			return fmt.Errorf("%w: program %q binds %q and %q to unit %d", core.ErrShaderCompile, p.Name, other, s.Name, s.Unit)
		}
		units[s.Unit] = s.Name
	}
	for _, b := range p.Blocks {
		if err := check(b.Name); err != nil {
			return err
		}
	}
	return nil
}

// Unit returns the texture unit of a sampler, or -1.
func (p ProgramSpec) Unit(sampler string) int32 {
	for _, s := range p.Samplers {
		if s.Name == sampler {
			return s.Unit
		}
	}
	return -1
}

// Programs is the program table of the pipeline.
func Programs() []ProgramSpec {
	return []ProgramSpec{
		{
			Name:     ProgramGeometry,
			Uniforms: []string{"camera", "model", "textureScale", "useNormalMap"},
			Samplers: []Sampler{{"albedoTex", 0}, {"normalTex", 1}},
			Outputs:  2,
		},
		{
			Name: ProgramCombinator,
			Uniforms: []string{
				"invCamera", "eye", "ambient", "shininess", "specular",
				"mistColor", "mistAmount", "mistPower",
			},
			Samplers: []Sampler{{"gNormal", 0}, {"gMaterial", 1}, {"gDepth", 2}},
			Blocks:   []Block{{"LightBlock", LightBlockBinding}},
			Outputs:  1,
		},
		{
			Name:     ProgramCone,
			Uniforms: []string{"camera", "apex", "axis", "cutoff", "coneLength", "color", "screenSize"},
			Samplers: []Sampler{{"gDepth", 0}},
			Outputs:  1,
		},
		{
			Name:     ProgramComposite,
			Uniforms: []string{"blurRadius", "time"},
			Samplers: []Sampler{{"scene", 0}, {"cone", 1}},
			Outputs:  1,
		},
		{
			Name:     ProgramBlit,
			Uniforms: []string{"channel"},
			Samplers: []Sampler{{"source", 0}},
			Outputs:  1,
		},
	}
}

// FindProgram looks a program up by name.
func FindProgram(name string) (ProgramSpec, bool) {
	for _, p := range Programs() {
		if p.Name == name {
			return p, true
		}
	}
	return ProgramSpec{}, false
}
