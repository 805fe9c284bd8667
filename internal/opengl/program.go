package opengl

import (
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
)

// ShaderSource holds the NUL-terminated stages of one program. Geometry is
// optional.
type ShaderSource struct {
	Vertex   string
	Geometry string
	Fragment string
}

// Program is a linked shader program with its binding table: every declared
// uniform resolved to a location once, at link time.
type Program struct {
	Spec     pipeline.ProgramSpec
	ID       uint32
	bindings map[string]int32
}

// NewProgram compiles and links src, resolves the uniform table of spec and
// fixes the sampler units and block bindings. Errors wrap
// core.ErrShaderCompile.
func NewProgram(spec pipeline.ProgramSpec, src ShaderSource) (*Program, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	id, err := newProgram(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrShaderCompile, spec.Name, err)
	}

	p := &Program{Spec: spec, ID: id, bindings: map[string]int32{}}
	for _, name := range spec.Uniforms {
		loc := gl.GetUniformLocation(id, gl.Str(name+"\x00"))
		if loc < 0 {
			// The GLSL compiler drops uniforms that do not reach an output.
			core.LogWarn("uniform not active", "program", spec.Name, "uniform", name)
		}
		p.bindings[name] = loc
	}

	gl.UseProgram(id)
	for _, s := range spec.Samplers {
		loc := gl.GetUniformLocation(id, gl.Str(s.Name+"\x00"))
		if loc < 0 {
			core.LogWarn("sampler not active", "program", spec.Name, "sampler", s.Name)
			continue
		}
		gl.Uniform1i(loc, s.Unit)
	}
	for _, b := range spec.Blocks {
		idx := gl.GetUniformBlockIndex(id, gl.Str(b.Name+"\x00"))
		if idx == gl.INVALID_INDEX {
			gl.DeleteProgram(id)
			return nil, fmt.Errorf("%w: %s: uniform block %q not found", core.ErrShaderCompile, spec.Name, b.Name)
		}
		gl.UniformBlockBinding(id, idx, b.Binding)
	}
	gl.UseProgram(0)

	core.LogDebug("program linked", "program", spec.Name, "id", id, "uniforms", len(spec.Uniforms))
	return p, nil
}

// Use makes the program current.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Location returns the linked location of a declared uniform. Asking for an
// undeclared name is a programming error.
func (p *Program) Location(name string) int32 {
	loc, ok := p.bindings[name]
	if !ok {
		panic(fmt.Sprintf("program %q has no uniform %q", p.Spec.Name, name))
	}
	return loc
}

func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(p.Location(name), 1, false, &m[0])
}

func (p *Program) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3f(p.Location(name), v[0], v[1], v[2])
}

func (p *Program) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2f(p.Location(name), v[0], v[1])
}

func (p *Program) SetFloat(name string, f float32) {
	gl.Uniform1f(p.Location(name), f)
}

func (p *Program) SetInt(name string, i int32) {
	gl.Uniform1i(p.Location(name), i)
}

func (p *Program) SetBool(name string, b bool) {
	var i int32
	if b {
		i = 1
	}
	gl.Uniform1i(p.Location(name), i)
}

// BindTexture binds tex to the unit fixed for sampler.
func (p *Program) BindTexture(sampler string, tex uint32) {
	unit := p.Spec.Unit(sampler)
	if unit < 0 {
		panic(fmt.Sprintf("program %q has no sampler %q", p.Spec.Name, sampler))
	}
	gl.ActiveTexture(gl.TEXTURE0 + uint32(unit))
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (p *Program) Destroy() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}

func newProgram(src ShaderSource) (uint32, error) {
	vert, err := compileShader(src.Vertex, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}
	defer gl.DeleteShader(frag)

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)

	if src.Geometry != "" {
		geom, err := compileShader(src.Geometry, gl.GEOMETRY_SHADER)
		if err != nil {
			gl.DeleteProgram(prog)
			return 0, fmt.Errorf("geometry: %w", err)
		}
		defer gl.DeleteShader(geom)
		gl.AttachShader(prog, geom)
	}

	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
