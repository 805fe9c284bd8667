package core

// Key codes as reported by the window. The values are GLFW's, so they can be
// passed to the window unchanged.
const (
	KeySpace     = 32
	Key1         = 49
	Key2         = 50
	Key3         = 51
	Key4         = 52
	Key5         = 53
	KeyA         = 65
	KeyD         = 68
	KeyS         = 83
	KeyV         = 86
	KeyW         = 87
	KeyEscape    = 256
	KeyRight     = 262
	KeyLeft      = 263
	KeyDown      = 264
	KeyUp        = 265
	KeyLeftShift = 340
)
