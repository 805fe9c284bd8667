package math

import (
	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/constraints"
)

// Clamp returns f limited to the range [low, high].
func Clamp[T constraints.Ordered](f, low, high T) T {
	if f < low {
		return low
	}
	if f > high {
		return high
	}
	return f
}

func Abs[T constraints.Signed | constraints.Float](f T) T {
	if f < 0 {
		return -f
	}
	return f
}

// Mix is GLSL mix(): a*(1-t) + b*t.
func Mix[T constraints.Float](a, b, t T) T {
	return a*(1-t) + b*t
}

// MixVec3 is the component-wise Mix.
func MixVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// EncodeNormal range-compresses a unit normal into [0,1]³ for storage in an
// unsigned color attachment.
func EncodeNormal(n mgl32.Vec3) mgl32.Vec3 {
	return n.Mul(0.5).Add(mgl32.Vec3{0.5, 0.5, 0.5})
}

// DecodeNormal is the inverse of EncodeNormal.
func DecodeNormal(c mgl32.Vec3) mgl32.Vec3 {
	return c.Mul(2).Sub(mgl32.Vec3{1, 1, 1})
}

// Luminance uses Rec. 709 weights.
func Luminance(c mgl32.Vec3) float32 {
	return c.Dot(mgl32.Vec3{0.2126, 0.7152, 0.0722})
}

func Min[T constraints.Ordered](a, b T) T {
	if a < b {
		return a
	}
	return b
}

func Max[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
