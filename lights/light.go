// Package lights holds the fixed-capacity light array shared by the CPU
// animation and the lighting resolve shader.
package lights

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Capacity is the number of light slots. The resolve shader declares an
// array of exactly this size.
const Capacity = 32

// Byte layout of the std140 LightBlock uniform block.
const (
	lightStride = 48 // three vec4
	headerSize  = 16 // int lightCount, padded to the array's 16-byte alignment
	BlockSize   = headerSize + Capacity*lightStride
)

// Light is one light record as seen by the shaders.
type Light struct {
	// Position is world space; w is reserved.
	Position mgl32.Vec4
	// Color is linear radiance with unbounded magnitude.
	Color mgl32.Vec4
	// Direction xyz is the spot axis and w the cosine of the half-angle
	// cutoff. An all-zero xyz means omnidirectional.
	Direction mgl32.Vec4
}

// IsSpot reports whether the light has a cone.
func (l Light) IsSpot() bool {
	return l.Direction.Vec3().LenSqr() > 0
}

// Array is a frame's lights. Slots at or beyond Count are inactive and kept
// zeroed; the shader loop stops at Count.
type Array struct {
	Lights [Capacity]Light
	Count  uint32
	// Frame is the index of the frame this array was computed for.
	Frame uint64
}

// Add appends a light to the first inactive slot.
func (a *Array) Add(l Light) error {
	if a.Count >= Capacity {
		return fmt.Errorf("light array full (%d slots)", Capacity)
	}
	a.Lights[a.Count] = l
	a.Count++
	return nil
}

// Active returns the lights in use.
func (a *Array) Active() []Light {
	return a.Lights[:a.Count]
}

// Spots returns the active lights that have a cone.
func (a *Array) Spots() []Light {
	var out []Light
	for _, l := range a.Active() {
		if l.IsSpot() {
			out = append(out, l)
		}
	}
	return out
}

// Marshal serializes the array into the std140 LightBlock layout:
//
//	layout(std140) uniform LightBlock {
//	    int   lightCount;
//	    Light lights[32]; // vec4 pos, col, dir
//	};
//
// Inactive slots are written as zeros whatever they hold.
func (a *Array) Marshal() []byte {
	buf := make([]byte, BlockSize)
	binary.LittleEndian.PutUint32(buf[0:4], a.Count)
	for i := 0; i < int(a.Count) && i < Capacity; i++ {
		l := a.Lights[i]
		off := headerSize + i*lightStride
		putVec4(buf[off:], l.Position)
		putVec4(buf[off+16:], l.Color)
		putVec4(buf[off+32:], l.Direction)
	}
	return buf
}

func putVec4(buf []byte, v mgl32.Vec4) {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint32(buf[i*4:(i+1)*4], math.Float32bits(v[i]))
	}
}
