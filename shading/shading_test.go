package shading

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoPeters1024/deffered-shading/lights"
	remath "github.com/HugoPeters1024/deffered-shading/math"
)

// noMist keeps the resolved color free of the depth fog.
var noMist = Params{
	Ambient:   0.2,
	Shininess: 32,
	Specular:  0.3,
	MistColor: mgl32.Vec3{0.5, 0.6, 0.7},
}

var ground = Surface{
	Normal: mgl32.Vec3{0, 1, 0},
	Albedo: mgl32.Vec3{0.8, 0.5, 0.25},
	Depth:  0.9,
}

var eye = mgl32.Vec3{0, 10, 20}

func surfaceAt(p mgl32.Vec3) Surface {
	s := ground
	s.Position = p
	return s
}

func TestZeroColorSlotContributesNothing(t *testing.T) {
	positions := []mgl32.Vec3{
		{0, 10, 0},
		{0, 0, 0}, // on the surface itself
		{0, -5, 0},
		{1e6, 3, -1e6},
	}
	directions := []mgl32.Vec4{
		{},
		{0, -1, 0, 0.9},
		{1, 0, 0, -1},
	}
	s := surfaceAt(mgl32.Vec3{})
	for _, pos := range positions {
		for _, dir := range directions {
			l := lights.Light{Position: pos.Vec4(0), Direction: dir}
			assert.Equal(t, mgl32.Vec3{}, LightContribution(noMist, l, s, eye), "pos %v dir %v", pos, dir)
		}
	}
}

func TestZeroColorSlotsLeaveResolveUnchanged(t *testing.T) {
	lit := lights.ComputeLights(4, 0)
	withDark := lit
	for i := int(lit.Count); i < lights.Capacity; i++ {
		withDark.Lights[i] = lights.Light{Position: mgl32.Vec4{0, 1, 0, 0}, Direction: mgl32.Vec4{0, -1, 0, 0.5}}
	}
	withDark.Count = lights.Capacity

	s := surfaceAt(mgl32.Vec3{3, 0, -2})
	assert.Equal(t, Resolve(noMist, s, eye, &lit), Resolve(noMist, s, eye, &withDark))
}

func TestEmptyLightsGiveAmbientOnly(t *testing.T) {
	var empty lights.Array
	albedos := []mgl32.Vec3{{0.8, 0.5, 0.25}, {1, 1, 1}, {0, 0.3, 0.9}}
	for _, a := range albedos {
		for _, p := range []mgl32.Vec3{{0, 0, 0}, {40, 0, -12}} {
			s := surfaceAt(p)
			s.Albedo = a
			assert.Equal(t, a.Mul(0.2), Resolve(noMist, s, eye, &empty))
		}
	}

	// All 32 slots present but dark.
	var dark lights.Array
	for i := 0; i < lights.Capacity; i++ {
		require.NoError(t, dark.Add(lights.Light{Position: mgl32.Vec4{float32(i), 5, 0, 0}}))
	}
	s := surfaceAt(mgl32.Vec3{})
	assert.Equal(t, s.Albedo.Mul(0.2), Resolve(noMist, s, eye, &dark))
}

func TestInverseSquareFalloff(t *testing.T) {
	var arr lights.Array
	require.NoError(t, arr.Add(lights.Light{
		Position: mgl32.Vec4{0, 10, 0, 0},
		Color:    mgl32.Vec4{1, 1, 1, 1}.Mul(500),
	}))

	below := surfaceAt(mgl32.Vec3{0, 0, 0})
	// Twice as far from the light: 20 units away on the ground.
	far := surfaceAt(mgl32.Vec3{float32(math.Sqrt(300)), 0, 0})

	near := Resolve(noMist, below, eye, &arr)
	away := Resolve(noMist, far, eye, &arr)
	assert.Greater(t, remath.Luminance(near), remath.Luminance(away))

	// Diffuse only: 1/d² and the cosine term (1 vs 0.5) give a ratio of 8.
	diffuseOnly := noMist
	diffuseOnly.Specular = 0
	dNear := LightContribution(diffuseOnly, arr.Lights[0], below, eye)
	dFar := LightContribution(diffuseOnly, arr.Lights[0], far, eye)
	assert.InDelta(t, 8, dNear.X()/dFar.X(), 1e-3)
	assert.InDelta(t, 500*0.8/100, dNear.X(), 1e-4)
}

func TestSpotCutoffFalloff(t *testing.T) {
	cutoff := float32(math.Cos(30 * math.Pi / 180))
	spot := lights.Light{
		Position:  mgl32.Vec4{0, 10, 0, 0},
		Color:     mgl32.Vec4{1, 1, 1, 1}.Mul(500),
		Direction: mgl32.Vec4{0, -1, 0, cutoff},
	}
	dirAt := func(deg float64) mgl32.Vec3 {
		r := deg * math.Pi / 180
		return mgl32.Vec3{float32(math.Sin(r)), float32(-math.Cos(r)), 0}
	}

	assert.Equal(t, float32(1), SpotFactor(spot, dirAt(0)))
	assert.Equal(t, float32(1), SpotFactor(spot, dirAt(20)))
	assert.Equal(t, float32(0), SpotFactor(spot, dirAt(35)))

	edge := SpotFactor(spot, dirAt(29))
	assert.Greater(t, edge, float32(0))
	assert.Less(t, edge, float32(1))

	// Same distance, one inside the cone and one just outside the cutoff.
	inside := 10 * math.Tan(20*math.Pi/180)
	outside := 10 * math.Tan(31*math.Pi/180)
	in := LightContribution(noMist, spot, surfaceAt(mgl32.Vec3{float32(inside), 0, 0}), eye)
	out := LightContribution(noMist, spot, surfaceAt(mgl32.Vec3{float32(outside), 0, 0}), eye)
	inScaled := in.X() / Attenuation(float32(100+inside*inside))
	outScaled := out.X() / Attenuation(float32(100+outside*outside))
	assert.Less(t, outScaled, inScaled)

	omni := spot
	omni.Direction = mgl32.Vec4{}
	assert.Equal(t, float32(1), SpotFactor(omni, dirAt(90)))
}

func TestMistBlendsTowardMistColor(t *testing.T) {
	var empty lights.Array
	p := noMist
	p.MistAmount = 1
	p.MistPower = 1

	background := Surface{Depth: 1}
	assert.Equal(t, p.MistColor, Resolve(p, background, eye, &empty))

	s := surfaceAt(mgl32.Vec3{})
	s.Depth = 0.5
	got := Resolve(p, s, eye, &empty)
	want := remath.MixVec3(s.Albedo.Mul(0.2), p.MistColor, 0.5)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-6)
	}
}

func TestResolveSampleMatchesDirectSurface(t *testing.T) {
	proj := mgl32.Perspective(1.25, 640.0/480.0, 0.1, 300)
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	camera := proj.Mul4(view)

	arr := lights.ComputeLights(1.5, 0)
	world := mgl32.Vec3{2, 0, -3}
	uv, depth := remath.Project(camera, world)

	s := surfaceAt(world)
	s.Depth = depth
	want := Resolve(noMist, s, eye, &arr)
	got := ResolveSample(noMist, camera.Inv(), eye, uv, depth, remath.EncodeNormal(s.Normal), s.Albedo, &arr)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], 1e-2*math.Max(1, float64(want[i])))
	}
}
