// Package shading is a CPU rendition of the per-pixel math in the lighting
// resolve shader. The GLSL in internal/opengl follows these functions term
// for term, so the tests here pin down what the GPU computes.
package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/lights"
	remath "github.com/HugoPeters1024/deffered-shading/math"
)

// SpotBand is the width, in cosine units, of the soft edge of a spot cone.
const SpotBand = 0.02

// minDist2 keeps the inverse-square term finite when a light sits on the
// surface.
const minDist2 = 1e-4

// Params are the resolve-pass tunables.
type Params struct {
	Ambient    float32
	Shininess  float32
	Specular   float32
	MistColor  mgl32.Vec3
	MistAmount float32
	MistPower  float32
}

// Surface is one G-buffer sample after decoding.
type Surface struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	Albedo   mgl32.Vec3
	// Depth is window depth in [0,1]; 1 means nothing was drawn.
	Depth float32
}

// Attenuation is the inverse-square falloff for a squared distance.
func Attenuation(dist2 float32) float32 {
	return 1 / remath.Max(dist2, minDist2)
}

// SpotFactor is 0 outside the cone and ramps linearly from 0 at the cutoff
// cosine to 1 at cutoff+SpotBand. lightToFrag must be normalized.
// Omnidirectional lights always return 1.
func SpotFactor(l lights.Light, lightToFrag mgl32.Vec3) float32 {
	if !l.IsSpot() {
		return 1
	}
	axis := l.Direction.Vec3().Normalize()
	cosAngle := lightToFrag.Dot(axis)
	return remath.Clamp((cosAngle-l.Direction.W())/SpotBand, 0, 1)
}

// LightContribution is the radiance one light adds to a surface seen from
// eye: Lambert diffuse plus Blinn-Phong specular, scaled by the light color,
// inverse-square attenuation and the spot factor.
func LightContribution(p Params, l lights.Light, s Surface, eye mgl32.Vec3) mgl32.Vec3 {
	toLight := l.Position.Vec3().Sub(s.Position)
	dist2 := toLight.Dot(toLight)
	L := toLight.Mul(1 / float32(math.Sqrt(float64(remath.Max(dist2, minDist2)))))
	V := safeNormalize(eye.Sub(s.Position))
	H := safeNormalize(L.Add(V))

	diffuse := remath.Max(s.Normal.Dot(L), 0)
	specular := float32(0)
	if diffuse > 0 {
		specular = p.Specular * float32(math.Pow(float64(remath.Max(s.Normal.Dot(H), 0)), float64(p.Shininess)))
	}

	scale := Attenuation(dist2) * SpotFactor(l, L.Mul(-1))
	surface := s.Albedo.Mul(diffuse).Add(mgl32.Vec3{specular, specular, specular})
	c := l.Color.Vec3()
	return mgl32.Vec3{c[0] * surface[0], c[1] * surface[1], c[2] * surface[2]}.Mul(scale)
}

// Resolve computes the final color of one pixel: ambient, the sum of active
// lights, then mist blended by depth^MistPower. Background pixels (depth 1)
// get the mist color alone.
func Resolve(p Params, s Surface, eye mgl32.Vec3, arr *lights.Array) mgl32.Vec3 {
	var color mgl32.Vec3
	if s.Depth < 1 {
		color = s.Albedo.Mul(p.Ambient)
		for _, l := range arr.Active() {
			color = color.Add(LightContribution(p, l, s, eye))
		}
	}
	mist := p.MistAmount * float32(math.Pow(float64(s.Depth), float64(p.MistPower)))
	return remath.MixVec3(color, p.MistColor, mist)
}

// ResolveSample decodes one G-buffer texel (uv, window depth, encoded normal,
// albedo) and resolves it, the way the combinator pass does per fragment.
func ResolveSample(p Params, invCamera mgl32.Mat4, eye mgl32.Vec3, uv mgl32.Vec2, depth float32, encodedNormal, albedo mgl32.Vec3, arr *lights.Array) mgl32.Vec3 {
	s := Surface{
		Position: remath.Unproject(invCamera, uv, depth),
		Normal:   safeNormalize(remath.DecodeNormal(encodedNormal)),
		Albedo:   albedo,
		Depth:    depth,
	}
	return Resolve(p, s, eye, arr)
}

func safeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l2 := v.Dot(v)
	if l2 < 1e-12 {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / float32(math.Sqrt(float64(l2))))
}
