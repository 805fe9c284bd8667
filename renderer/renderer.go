// Package renderer drives one frame of the deferred pipeline: animate the
// lights, run the pass schedule of the current view and present.
package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/opengl"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
	"github.com/HugoPeters1024/deffered-shading/lights"
	"github.com/HugoPeters1024/deffered-shading/scene"
	"github.com/HugoPeters1024/deffered-shading/shading"
)

// statsInterval is how often frame timings are logged, in seconds.
const statsInterval = 5

// Presenter is the window side of the loop.
type Presenter interface {
	ShouldClose() bool
	SwapBuffers()
	PollEvents()
	Time() float64
	FramebufferSize() (int, int)
}

// Frame is the per-frame input of Render.
type Frame struct {
	Time  float64
	Index uint64
	// Camera is projection times view.
	Camera mgl32.Mat4
	Eye    mgl32.Vec3
}

// drawable is an uploaded mesh with resolved textures.
type drawable struct {
	name         string
	data         *scene.MeshData
	mesh         *opengl.GPUMesh
	bounds       scene.AABB
	albedo       uint32
	normalMap    uint32
	normalMapped bool
	textureScale float32
	model        mgl32.Mat4
}

// RenderEngine owns the GL context resources and the static scene.
type RenderEngine struct {
	View View

	ctx        *opengl.RenderContext
	window     Presenter
	cfg        core.RenderConfig
	params     shading.Params
	drawables  []*drawable
	marker     *drawable
	meshes     map[*scene.MeshData]*opengl.GPUMesh
	lights     lights.Array
	frameIndex uint64

	lastDraws    int
	lastVertices int
	lastShafts   int
	lastCulled   int
}

// NewRenderEngine creates the GL resources. Every view's pass schedule is
// checked before any target is allocated.
func NewRenderEngine(window Presenter, cfg core.RenderConfig, debug bool) (*RenderEngine, error) {
	if err := ValidateViews(pipeline.Targets(cfg.Width, cfg.Height)); err != nil {
		return nil, err
	}
	ctx, err := opengl.NewRenderContext(cfg.Width, cfg.Height, debug)
	if err != nil {
		return nil, err
	}
	core.LogInfo("render engine initialized", "width", cfg.Width, "height", cfg.Height)
	return &RenderEngine{
		ctx:    ctx,
		window: window,
		cfg:    cfg,
		params: ParamsFromConfig(cfg),
		meshes: map[*scene.MeshData]*opengl.GPUMesh{},
	}, nil
}

func (re *RenderEngine) upload(name string, mesh *scene.MeshData, mat *scene.Material, model mgl32.Mat4) (*drawable, error) {
	gpu, ok := re.meshes[mesh]
	if !ok {
		var err error
		if gpu, err = opengl.UploadMesh(mesh); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		re.meshes[mesh] = gpu
	}
	if mat == nil {
		mat = scene.DefaultMaterial()
	}
	d := &drawable{
		name:         name,
		data:         mesh,
		mesh:         gpu,
		bounds:       scene.WorldBounds(mesh, model),
		normalMapped: mat.NormalMapped,
		textureScale: mat.TextureScale,
		model:        model,
	}
	var err error
	if d.albedo, err = re.ctx.Textures.Get(mat.Albedo); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if mat.NormalMap != nil {
		if d.normalMap, err = re.ctx.Textures.Get(mat.NormalMap); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return d, nil
}

// Add uploads mesh and its material and draws it every frame with model.
func (re *RenderEngine) Add(name string, mesh *scene.MeshData, mat *scene.Material, model mgl32.Mat4) error {
	d, err := re.upload(name, mesh, mat, model)
	if err != nil {
		return err
	}
	re.drawables = append(re.drawables, d)
	return nil
}

// SetLightMarker sets the mesh drawn at every active light position.
func (re *RenderEngine) SetLightMarker(mesh *scene.MeshData, mat *scene.Material) error {
	d, err := re.upload("light marker", mesh, mat, mgl32.Ident4())
	if err != nil {
		return err
	}
	re.marker = d
	return nil
}

// Lights returns the light array of the last rendered frame.
func (re *RenderEngine) Lights() lights.Array {
	return re.lights
}

// Render animates the lights for f and runs the passes of the current view.
func (re *RenderEngine) Render(f Frame) {
	re.lights = lights.ComputeLights(f.Time, f.Index)
	re.ctx.Lights.Upload(&re.lights)
	re.lastDraws, re.lastVertices, re.lastShafts, re.lastCulled = 0, 0, 0, 0
	frustum := scene.FrustumFromMatrix(f.Camera)

	for _, pass := range re.View.Passes() {
		opengl.ApplyState(passStates[pass.Program])
		re.bindTarget(pass)

		switch pass.Program {
		case pipeline.ProgramGeometry:
			re.geometryPass(f, &frustum)
		case pipeline.ProgramCombinator:
			re.lightingPass(f)
		case pipeline.ProgramCone:
			re.conePass(f, &frustum)
		case pipeline.ProgramComposite:
			re.compositePass(f)
		case pipeline.ProgramBlit:
			re.blitPass(pass.Reads[0])
		}
	}
	opengl.ApplyState(opengl.PassState{DepthTest: true, DepthWrite: true})
}

func (re *RenderEngine) bindTarget(pass pipeline.Pass) {
	if pass.Target == pipeline.TargetScreen {
		w, h := re.window.FramebufferSize()
		re.ctx.BindScreen(w, h, core.ColorBlack)
		return
	}
	rt := re.ctx.Target(pass.Target)
	rt.Bind()
	rt.Clear(core.ColorBlack, clearsDepth(passStates[pass.Program], rt.Spec.Depth))
}

func (re *RenderEngine) geometryPass(f Frame, frustum *scene.Frustum) {
	geo := re.ctx.Programs.Geometry
	geo.Use(f.Camera)
	for _, d := range re.drawables {
		if !d.bounds.IntersectsFrustum(frustum) {
			re.lastCulled++
			continue
		}
		re.draw(geo, d, d.model)
	}
	if re.marker != nil {
		for _, model := range MarkerModels(&re.lights) {
			if !scene.WorldBounds(re.marker.data, model).IntersectsFrustum(frustum) {
				re.lastCulled++
				continue
			}
			re.draw(geo, re.marker, model)
		}
	}
}

func (re *RenderEngine) draw(geo opengl.GeometryProgram, d *drawable, model mgl32.Mat4) {
	geo.SetModel(model)
	geo.SetMaterial(d.albedo, d.normalMap, d.normalMapped, d.textureScale)
	d.mesh.Draw()
	re.lastDraws++
	re.lastVertices += int(d.mesh.VertexCount)
}

func (re *RenderEngine) lightingPass(f Frame) {
	gbuf := re.ctx.Target(pipeline.TargetGBuffer)
	comb := re.ctx.Programs.Combinator
	comb.Use(f.Camera.Inv(), f.Eye, re.params)
	comb.SetGBuffer(
		gbuf.Attachment(pipeline.AttachNormal),
		gbuf.Attachment(pipeline.AttachMaterial),
		gbuf.DepthTexture(),
	)
	re.ctx.DrawFullscreen()
}

func (re *RenderEngine) conePass(f Frame, frustum *scene.Frustum) {
	cone := re.ctx.Programs.Cone
	screen := mgl32.Vec2{float32(re.cfg.Width), float32(re.cfg.Height)}
	cone.Use(f.Camera, re.ctx.Target(pipeline.TargetGBuffer).DepthTexture(), screen, re.cfg.ConeLength)
	re.ctx.BindEmpty()
	for _, l := range ShaftLights(&re.lights) {
		if !ShaftBounds(l, re.cfg.ConeLength).IntersectsFrustum(frustum) {
			re.lastCulled++
			continue
		}
		cone.SetLight(l)
		re.lastShafts++
	}
}

func (re *RenderEngine) compositePass(f Frame) {
	post := re.ctx.Target(pipeline.TargetPost).Attachment(pipeline.AttachColor)
	shafts := re.ctx.Target(pipeline.TargetCone).Attachment(pipeline.AttachCone)
	re.ctx.Programs.Composite.Use(post, shafts, re.cfg.BlurRadius, f.Time)
	re.ctx.DrawFullscreen()
}

func (re *RenderEngine) blitPass(in pipeline.Input) {
	channel := opengl.ChannelColor
	if in.Attachment == pipeline.AttachDepth {
		channel = opengl.ChannelDepth
	}
	re.ctx.Programs.Blit.Use(re.ctx.Input(in), channel)
	re.ctx.DrawFullscreen()
}

// Present shows the frame and pumps window events.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
	re.window.PollEvents()
}

// Run renders until the window closes. update runs once per frame before
// rendering with the seconds since the previous frame.
func (re *RenderEngine) Run(cam *scene.Camera, keys scene.KeyState, update func(dt float64)) {
	stats := core.NewFrameStats(statsInterval)
	last := re.window.Time()
	for !re.window.ShouldClose() {
		now := re.window.Time()
		dt := now - last
		last = now

		if update != nil {
			update(dt)
		}
		cam.Update(keys, float32(dt))

		re.Render(Frame{
			Time:   now,
			Index:  re.frameIndex,
			Camera: cam.Matrix(),
			Eye:    cam.Position,
		})
		re.Present()
		re.frameIndex++

		if avg, worst, ok := stats.Tick(now); ok {
			core.LogDebug("frame stats",
				"avg_ms", avg*1000, "worst_ms", worst*1000,
				"draws", re.lastDraws, "vertices", re.lastVertices, "shafts", re.lastShafts,
				"culled", re.lastCulled,
				"view", re.View)
		}
	}
}

// DrawStats reports the draw calls, vertices, light shafts and culled
// objects of the last frame.
func (re *RenderEngine) DrawStats() (draws, vertices, shafts, culled int) {
	return re.lastDraws, re.lastVertices, re.lastShafts, re.lastCulled
}

func (re *RenderEngine) Destroy() {
	for _, m := range re.meshes {
		m.Destroy()
	}
	re.ctx.Destroy()
}
