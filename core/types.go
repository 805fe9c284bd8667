package core

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved GPU vertex layout. Attribute locations follow
// field order: position 0, normal 1, uv 2, tangent 3, bitangent 4.
type Vertex struct {
	Position  mgl32.Vec3
	Normal    mgl32.Vec3
	UV        mgl32.Vec2
	Tangent   mgl32.Vec3
	Bitangent mgl32.Vec3
}

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

// ColorBlack is the clear color of every off-screen target.
var ColorBlack = Color{0, 0, 0, 1}
