package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	remath "github.com/HugoPeters1024/deffered-shading/math"
)

// KeyState reports whether a key is held. *platform.Window satisfies it.
type KeyState interface {
	IsKeyPressed(key int) bool
}

// Camera is a fly camera driven by the keyboard. Yaw 0 looks down -Z.
type Camera struct {
	Position    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	FOV         float32
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	MoveSpeed float32 // units per second
	TurnSpeed float32 // radians per second
}

const maxPitch = 1.5

// NewCamera places a camera at position looking at target.
func NewCamera(fov, aspectRatio float32, position, target mgl32.Vec3) *Camera {
	c := &Camera{
		Position:    position,
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   0.1,
		FarPlane:    300,
		MoveSpeed:   20,
		TurnSpeed:   1.5,
	}
	c.LookAt(target)
	return c
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target mgl32.Vec3) {
	d := target.Sub(c.Position)
	if d.LenSqr() == 0 {
		return
	}
	d = d.Normalize()
	c.Yaw = float32(math.Atan2(float64(d.X()), float64(-d.Z())))
	c.Pitch = remath.Clamp(float32(math.Asin(float64(d.Y()))), -maxPitch, maxPitch)
}

func (c *Camera) Forward() mgl32.Vec3 {
	cp, sp := cosSin(c.Pitch)
	cy, sy := cosSin(c.Yaw)
	return mgl32.Vec3{cp * sy, sp, -cp * cy}
}

func (c *Camera) Right() mgl32.Vec3 {
	cy, sy := cosSin(c.Yaw)
	return mgl32.Vec3{cy, 0, sy}
}

// Update applies one frame of keyboard input: WASD move, Space and
// LeftShift move up and down, arrow keys turn.
func (c *Camera) Update(keys KeyState, dt float32) {
	move := c.MoveSpeed * dt
	turn := c.TurnSpeed * dt

	if keys.IsKeyPressed(core.KeyW) {
		c.Position = c.Position.Add(c.Forward().Mul(move))
	}
	if keys.IsKeyPressed(core.KeyS) {
		c.Position = c.Position.Sub(c.Forward().Mul(move))
	}
	if keys.IsKeyPressed(core.KeyD) {
		c.Position = c.Position.Add(c.Right().Mul(move))
	}
	if keys.IsKeyPressed(core.KeyA) {
		c.Position = c.Position.Sub(c.Right().Mul(move))
	}
	if keys.IsKeyPressed(core.KeySpace) {
		c.Position[1] += move
	}
	if keys.IsKeyPressed(core.KeyLeftShift) {
		c.Position[1] -= move
	}
	if keys.IsKeyPressed(core.KeyLeft) {
		c.Yaw -= turn
	}
	if keys.IsKeyPressed(core.KeyRight) {
		c.Yaw += turn
	}
	if keys.IsKeyPressed(core.KeyUp) {
		c.Pitch += turn
	}
	if keys.IsKeyPressed(core.KeyDown) {
		c.Pitch -= turn
	}
	c.Pitch = remath.Clamp(c.Pitch, -maxPitch, maxPitch)
}

func (c *Camera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Position.Add(c.Forward()), mgl32.Vec3{0, 1, 0})
}

func (c *Camera) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
}

// Matrix is the combined projection × view transform.
func (c *Camera) Matrix() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix())
}

func cosSin(a float32) (float32, float32) {
	s, co := math.Sincos(float64(a))
	return float32(co), float32(s)
}
