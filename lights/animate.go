package lights

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Animation constants.
const (
	OrbitingLights = 16
	orbitIntensity = 580
	overheadPower  = 500
	overheadHeight = 70
	// spotAimHeight is the mean height of the point the orbiting spots aim at.
	spotAimHeight = -10
)

// ComputeLights returns the light array for the given time in seconds. It is
// pure: the same arguments always give the same array.
//
// Sixteen colored spot lights orbit the origin on a breathing circle and aim
// at a point bobbing on the Y axis; a seventeenth white light hangs overhead
// pointing down.
func ComputeLights(time float64, frameIndex uint64) Array {
	var arr Array
	arr.Frame = frameIndex

	t := time / 2
	radius := 50 + 35*math.Sin(t)

	for i := 0; i < OrbitingLights; i++ {
		v := float64(i) / OrbitingLights * 6.28
		x := math.Sin(v + t)
		z := math.Cos(v + t)

		pos := mgl32.Vec3{
			float32(radius * x),
			float32(15 + 10*math.Cos(4*v+4*t)),
			float32(radius * z),
		}
		col := mgl32.Vec4{float32(0.5*x + 0.5), float32(0.5*z + 0.5), 0.5, 1}.Mul(orbitIntensity)

		aim := mgl32.Vec3{0, float32(spotAimHeight + 30*math.Sin(3.4*v+time)), 0}
		axis := aim.Sub(pos).Normalize()
		cutoff := float32(0.959 - 0.02*math.Sin(v+time))

		arr.Lights[i] = Light{
			Position:  pos.Vec4(0),
			Color:     col,
			Direction: axis.Vec4(cutoff),
		}
	}

	arr.Lights[OrbitingLights] = Light{
		Position:  mgl32.Vec4{0, overheadHeight, 0, 0},
		Color:     mgl32.Vec4{1, 1, 1, 1}.Mul(overheadPower),
		Direction: mgl32.Vec4{0, -1, 0, 0},
	}
	arr.Count = OrbitingLights + 1
	return arr
}
