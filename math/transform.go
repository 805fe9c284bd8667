package math

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// TRS composes translation × rotation × scale, so that local vertex positions
// are scaled first, then rotated, then translated.
func TRS(translation mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	t := mgl32.Translate3D(translation.X(), translation.Y(), translation.Z())
	r := rotation.Normalize().Mat4()
	s := mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())
	return t.Mul4(r).Mul4(s)
}

// FromNormal returns a rotation whose local +Z axis points along n.
// The other two axes are an arbitrary orthonormal completion.
func FromNormal(n mgl32.Vec3) mgl32.Mat4 {
	z := n.Normalize()
	up := mgl32.Vec3{0, 1, 0}
	if Abs(z.Dot(up)) > 0.999 {
		up = mgl32.Vec3{1, 0, 0}
	}
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return mgl32.Mat4{
		x[0], x[1], x[2], 0,
		y[0], y[1], y[2], 0,
		z[0], z[1], z[2], 0,
		0, 0, 0, 1,
	}
}

// Project maps a world-space point through a combined projection×view matrix
// to texture space: uv in [0,1]² and window depth in [0,1].
func Project(camera mgl32.Mat4, world mgl32.Vec3) (uv mgl32.Vec2, depth float32) {
	clip := camera.Mul4x1(world.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{ndc.X()*0.5 + 0.5, ndc.Y()*0.5 + 0.5}, ndc.Z()*0.5 + 0.5
}

// Unproject reconstructs a world-space position from texture-space uv and
// window depth using the inverse of the combined camera matrix.
func Unproject(invCamera mgl32.Mat4, uv mgl32.Vec2, depth float32) mgl32.Vec3 {
	ndc := mgl32.Vec4{uv.X()*2 - 1, uv.Y()*2 - 1, depth*2 - 1, 1}
	world := invCamera.Mul4x1(ndc)
	return world.Vec3().Mul(1 / world.W())
}

// ConeRadius is the base radius of a cone of the given length whose
// half-angle has cosine cutoff.
func ConeRadius(length, cutoff float32) float32 {
	c := Clamp(cutoff, 1e-4, 1)
	return length * float32(gomath.Tan(gomath.Acos(float64(c))))
}
