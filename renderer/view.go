package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/opengl"
	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
	"github.com/HugoPeters1024/deffered-shading/lights"
	remath "github.com/HugoPeters1024/deffered-shading/math"
	"github.com/HugoPeters1024/deffered-shading/scene"
	"github.com/HugoPeters1024/deffered-shading/shading"
)

// View selects what reaches the screen.
type View int

const (
	ViewFinal View = iota
	ViewNormals
	ViewMaterial
	ViewDepth
	ViewCone
	viewCount
)

var viewNames = [...]string{"final", "normals", "material", "depth", "cone"}

func (v View) String() string {
	if v < 0 || v >= viewCount {
		return fmt.Sprintf("View(%d)", int(v))
	}
	return viewNames[v]
}

// Views lists every view in key order.
func Views() []View {
	out := make([]View, 0, viewCount)
	for v := ViewFinal; v < viewCount; v++ {
		out = append(out, v)
	}
	return out
}

// Passes returns the schedule that produces the view.
func (v View) Passes() []pipeline.Pass {
	switch v {
	case ViewNormals:
		return pipeline.DebugView(pipeline.Input{Target: pipeline.TargetGBuffer, Attachment: pipeline.AttachNormal})
	case ViewMaterial:
		return pipeline.DebugView(pipeline.Input{Target: pipeline.TargetGBuffer, Attachment: pipeline.AttachMaterial})
	case ViewDepth:
		return pipeline.DebugView(pipeline.Input{Target: pipeline.TargetGBuffer, Attachment: pipeline.AttachDepth})
	case ViewCone:
		return pipeline.DebugView(pipeline.Input{Target: pipeline.TargetCone, Attachment: pipeline.AttachCone})
	}
	return pipeline.Frame()
}

// ValidateViews checks the schedule of every view against the targets.
func ValidateViews(targets []pipeline.TargetSpec) error {
	for _, v := range Views() {
		if err := pipeline.ValidateSchedule(v.Passes(), targets); err != nil {
			return fmt.Errorf("view %s: %w", v, err)
		}
	}
	return nil
}

// ParamsFromConfig builds the resolve parameters.
func ParamsFromConfig(cfg core.RenderConfig) shading.Params {
	return shading.Params{
		Ambient:    cfg.Ambient,
		Shininess:  cfg.Shininess,
		Specular:   cfg.Specular,
		MistColor:  mgl32.Vec3(cfg.MistColor),
		MistAmount: cfg.MistAmount,
		MistPower:  cfg.MistPower,
	}
}

// minShaftCutoff excludes spots wider than about 60 degrees; their shaft
// would fill the screen.
const minShaftCutoff = 0.5

// ShaftLights returns the spot lights that get a light shaft.
func ShaftLights(arr *lights.Array) []lights.Light {
	var out []lights.Light
	for _, l := range arr.Spots() {
		if l.Direction.W() >= minShaftCutoff {
			out = append(out, l)
		}
	}
	return out
}

// ShaftBounds encloses the shaft of spot light l reaching length along its
// axis.
func ShaftBounds(l lights.Light, length float32) scene.AABB {
	apex := l.Position.Vec3()
	axis := l.Direction.Vec3().Normalize()
	base := apex.Add(axis.Mul(length))
	r := remath.ConeRadius(length, l.Direction.W())
	box := scene.AABB{Min: apex, Max: apex}
	for k := 0; k < 3; k++ {
		box.Min[k] = remath.Min(box.Min[k], base[k]-r)
		box.Max[k] = remath.Max(box.Max[k], base[k]+r)
	}
	return box
}

// markerSize is the edge length of the cube drawn at each light.
const markerSize = 1

// MarkerModels places a small cube at every active light, turned so spot
// markers face along their axis.
func MarkerModels(arr *lights.Array) []mgl32.Mat4 {
	active := arr.Active()
	out := make([]mgl32.Mat4, len(active))
	scale := mgl32.Scale3D(markerSize, markerSize, markerSize)
	for i, l := range active {
		p := l.Position
		rot := mgl32.Ident4()
		if l.IsSpot() {
			rot = remath.FromNormal(l.Direction.Vec3())
		}
		out[i] = mgl32.Translate3D(p.X(), p.Y(), p.Z()).Mul4(rot).Mul4(scale)
	}
	return out
}

// clearsDepth reports whether binding a pass's target also clears its depth.
// Only passes that write depth clear it; the others leave it to the mask.
func clearsDepth(state opengl.PassState, depth pipeline.DepthKind) bool {
	return state.DepthWrite && depth != pipeline.DepthNone
}

// passStates is the fixed-function state of each program's pass. Shafts
// test against the G-buffer depth in the shader, not the depth buffer.
var passStates = map[string]opengl.PassState{
	pipeline.ProgramGeometry:   {DepthTest: true, DepthWrite: true},
	pipeline.ProgramCombinator: {},
	pipeline.ProgramCone:       {Additive: true},
	pipeline.ProgramComposite:  {},
	pipeline.ProgramBlit:       {},
}
