package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
	"github.com/HugoPeters1024/deffered-shading/lights"
	"github.com/HugoPeters1024/deffered-shading/shading"
)

// Programs is the linked program registry, one typed wrapper per pass.
type Programs struct {
	Geometry   GeometryProgram
	Combinator CombinatorProgram
	Cone       ConeProgram
	Composite  CompositeProgram
	Blit       BlitProgram

	all []*Program
}

// NewPrograms compiles and links every program of the pipeline table. The
// first failure is returned wrapped in core.ErrShaderCompile.
func NewPrograms() (*Programs, error) {
	ps := &Programs{}
	linked := map[string]*Program{}
	for _, spec := range pipeline.Programs() {
		src, ok := Sources[spec.Name]
		if !ok {
			ps.Destroy()
			return nil, fmt.Errorf("%w: no source for program %q", core.ErrShaderCompile, spec.Name)
		}
		p, err := NewProgram(spec, src)
		if err != nil {
			ps.Destroy()
			return nil, err
		}
		linked[spec.Name] = p
		ps.all = append(ps.all, p)
	}

	ps.Geometry = GeometryProgram{linked[pipeline.ProgramGeometry]}
	ps.Combinator = CombinatorProgram{linked[pipeline.ProgramCombinator]}
	ps.Cone = ConeProgram{linked[pipeline.ProgramCone]}
	ps.Composite = CompositeProgram{linked[pipeline.ProgramComposite]}
	ps.Blit = BlitProgram{linked[pipeline.ProgramBlit]}
	return ps, nil
}

// Get returns a linked program by name.
func (ps *Programs) Get(name string) *Program {
	for _, p := range ps.all {
		if p.Spec.Name == name {
			return p
		}
	}
	return nil
}

func (ps *Programs) Destroy() {
	for _, p := range ps.all {
		p.Destroy()
	}
	ps.all = nil
}

// GeometryProgram writes normals and albedo into the G-buffer.
type GeometryProgram struct{ *Program }

func (g GeometryProgram) Use(camera mgl32.Mat4) {
	g.Program.Use()
	g.SetMat4("camera", camera)
}

func (g GeometryProgram) SetModel(model mgl32.Mat4) {
	g.SetMat4("model", model)
}

// SetMaterial binds the albedo and, when normalMapped, the normal map.
func (g GeometryProgram) SetMaterial(albedo, normalMap uint32, normalMapped bool, textureScale float32) {
	g.BindTexture("albedoTex", albedo)
	g.BindTexture("normalTex", normalMap)
	g.SetBool("useNormalMap", normalMapped && normalMap != 0)
	g.SetFloat("textureScale", textureScale)
}

// CombinatorProgram resolves the G-buffer with the light block.
type CombinatorProgram struct{ *Program }

func (c CombinatorProgram) Use(invCamera mgl32.Mat4, eye mgl32.Vec3, p shading.Params) {
	c.Program.Use()
	c.SetMat4("invCamera", invCamera)
	c.SetVec3("eye", eye)
	c.SetFloat("ambient", p.Ambient)
	c.SetFloat("shininess", p.Shininess)
	c.SetFloat("specular", p.Specular)
	c.SetVec3("mistColor", p.MistColor)
	c.SetFloat("mistAmount", p.MistAmount)
	c.SetFloat("mistPower", p.MistPower)
}

// SetGBuffer binds the three G-buffer inputs.
func (c CombinatorProgram) SetGBuffer(normal, material, depth uint32) {
	c.BindTexture("gNormal", normal)
	c.BindTexture("gMaterial", material)
	c.BindTexture("gDepth", depth)
}

// ConeProgram draws one light shaft per spot light.
type ConeProgram struct{ *Program }

func (c ConeProgram) Use(camera mgl32.Mat4, depth uint32, screen mgl32.Vec2, length float32) {
	c.Program.Use()
	c.SetMat4("camera", camera)
	c.SetVec2("screenSize", screen)
	c.SetFloat("coneLength", length)
	c.BindTexture("gDepth", depth)
}

// SetLight loads one spot light and draws its shaft from a single point.
func (c ConeProgram) SetLight(l lights.Light) {
	c.SetVec3("apex", l.Position.Vec3())
	c.SetVec3("axis", l.Direction.Vec3())
	c.SetFloat("cutoff", l.Direction.W())
	c.SetVec3("color", l.Color.Vec3())
	gl.DrawArrays(gl.POINTS, 0, 1)
}

// CompositeProgram blurs the lit scene by shaft brightness and adds the
// shafts.
type CompositeProgram struct{ *Program }

func (c CompositeProgram) Use(scene, cone uint32, blurRadius float32, time float64) {
	c.Program.Use()
	c.BindTexture("scene", scene)
	c.BindTexture("cone", cone)
	c.SetFloat("blurRadius", blurRadius)
	c.SetFloat("time", float32(time))
}

// Blit channels.
const (
	ChannelColor int32 = 0
	ChannelDepth int32 = 1
)

// BlitProgram copies a texture to the current framebuffer.
type BlitProgram struct{ *Program }

func (b BlitProgram) Use(source uint32, channel int32) {
	b.Program.Use()
	b.BindTexture("source", source)
	b.SetInt("channel", channel)
}
