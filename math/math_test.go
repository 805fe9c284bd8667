package math

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

const eps = 1e-4

func assertVec3(t *testing.T, expected, got mgl32.Vec3, delta float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, expected[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestTRSOrder(t *testing.T) {
	// Scale first, then rotate 90° about Y, then translate.
	m := TRS(
		mgl32.Vec3{10, 0, 0},
		mgl32.QuatRotate(gomath.Pi/2, mgl32.Vec3{0, 1, 0}),
		mgl32.Vec3{2, 2, 2},
	)
	got := m.Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assertVec3(t, mgl32.Vec3{10, 0, -2}, got, eps)
}

func TestTRSColumnMajorTranslation(t *testing.T) {
	m := TRS(mgl32.Vec3{1, 2, 3}, mgl32.QuatIdent(), mgl32.Vec3{1, 1, 1})
	// Translation lives in elements 12..14 of the flat upload array.
	assert.Equal(t, float32(1), m[12])
	assert.Equal(t, float32(2), m[13])
	assert.Equal(t, float32(3), m[14])
}

func TestFromNormal(t *testing.T) {
	for _, n := range []mgl32.Vec3{
		{0, -1, 0},
		{0, 1, 0},
		{1, 0, 0},
		mgl32.Vec3{1, -2, 0.5}.Normalize(),
	} {
		m := FromNormal(n)
		z := m.Mul4x1(mgl32.Vec4{0, 0, 1, 0}).Vec3()
		assertVec3(t, n, z, eps)

		x := m.Mul4x1(mgl32.Vec4{1, 0, 0, 0}).Vec3()
		y := m.Mul4x1(mgl32.Vec4{0, 1, 0, 0}).Vec3()
		assert.InDelta(t, 0, x.Dot(z), eps)
		assert.InDelta(t, 0, y.Dot(z), eps)
		assert.InDelta(t, 1, x.Len(), eps)
	}
}

func TestUnprojectRecoversProjectedPoint(t *testing.T) {
	proj := mgl32.Perspective(1.25, 640.0/480.0, 0.1, 300)
	view := mgl32.LookAtV(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	camera := proj.Mul4(view)
	inv := camera.Inv()

	points := []mgl32.Vec3{
		{0, 0, 0},
		{3, 1, -4},
		{-12, 0, 5},
		{20, 7, -30},
	}
	for _, p := range points {
		uv, depth := Project(camera, p)
		assert.True(t, depth > 0 && depth < 1, "depth %v out of range", depth)
		got := Unproject(inv, uv, depth)
		assertVec3(t, p, got, 5e-2)
	}
}

func TestNormalEncoding(t *testing.T) {
	normals := []mgl32.Vec3{
		{0, 1, 0},
		{0, 0, -1},
		{1, 0, 0},
		mgl32.Vec3{0.3, -0.7, 0.2}.Normalize(),
	}
	for _, n := range normals {
		c := EncodeNormal(n)
		for i := 0; i < 3; i++ {
			assert.GreaterOrEqual(t, c[i], float32(0))
			assert.LessOrEqual(t, c[i], float32(1))
		}
		assertVec3(t, n, DecodeNormal(c), 1e-6)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(5, -1, 1))
	assert.Equal(t, float32(-1), Clamp(float32(-3), -1, 1))
	assert.Equal(t, 0.5, Clamp(0.5, 0, 1))
}

func TestConeRadius(t *testing.T) {
	// 45° half-angle: radius equals length.
	assert.InDelta(t, 10, ConeRadius(10, float32(gomath.Cos(gomath.Pi/4))), eps)
	assert.InDelta(t, 0, ConeRadius(10, 1), eps)
}

func BenchmarkTRS(b *testing.B) {
	q := mgl32.QuatRotate(0.5, mgl32.Vec3{0, 1, 0})
	for i := 0; i < b.N; i++ {
		_ = TRS(mgl32.Vec3{1, 2, 3}, q, mgl32.Vec3{2, 2, 2})
	}
}
