package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	remath "github.com/HugoPeters1024/deffered-shading/math"
)

// MeshData is a fully expanded triangle list: every three vertices form one
// triangle and there is no index buffer. Each attribute is a flat float
// sequence (3 floats per vertex, 2 for UVs).
type MeshData struct {
	Name       string
	Positions  []float32
	Normals    []float32
	UVs        []float32
	Tangents   []float32
	Bitangents []float32
}

func (m *MeshData) VertexCount() int {
	return len(m.Positions) / 3
}

func (m *MeshData) TriangleCount() int {
	return m.VertexCount() / 3
}

// Validate checks that all five attribute arrays describe the same number of
// vertices and that the vertices form whole triangles.
func (m *MeshData) Validate() error {
	n := m.VertexCount()
	switch {
	case n == 0:
		return fmt.Errorf("mesh %q: no vertices", m.Name)
	case len(m.Positions)%3 != 0:
		return fmt.Errorf("mesh %q: %d position floats is not a multiple of 3", m.Name, len(m.Positions))
	case n%3 != 0:
		return fmt.Errorf("mesh %q: %d vertices do not form whole triangles", m.Name, n)
	case len(m.Normals) != 3*n:
		return fmt.Errorf("mesh %q: %d normal floats, want %d", m.Name, len(m.Normals), 3*n)
	case len(m.UVs) != 2*n:
		return fmt.Errorf("mesh %q: %d uv floats, want %d", m.Name, len(m.UVs), 2*n)
	case len(m.Tangents) != 3*n:
		return fmt.Errorf("mesh %q: %d tangent floats, want %d", m.Name, len(m.Tangents), 3*n)
	case len(m.Bitangents) != 3*n:
		return fmt.Errorf("mesh %q: %d bitangent floats, want %d", m.Name, len(m.Bitangents), 3*n)
	}
	return nil
}

// Vertex gathers the attributes of vertex i.
func (m *MeshData) Vertex(i int) core.Vertex {
	return core.Vertex{
		Position:  vec3At(m.Positions, i),
		Normal:    vec3At(m.Normals, i),
		UV:        mgl32.Vec2{m.UVs[2*i], m.UVs[2*i+1]},
		Tangent:   vec3At(m.Tangents, i),
		Bitangent: vec3At(m.Bitangents, i),
	}
}

// Interleave returns the vertices in the GPU vertex layout.
func (m *MeshData) Interleave() []core.Vertex {
	out := make([]core.Vertex, m.VertexCount())
	for i := range out {
		out[i] = m.Vertex(i)
	}
	return out
}

// Bounds returns the axis-aligned bounds of the positions.
func (m *MeshData) Bounds() (lo, hi mgl32.Vec3) {
	if m.VertexCount() == 0 {
		return
	}
	lo = vec3At(m.Positions, 0)
	hi = lo
	for i := 1; i < m.VertexCount(); i++ {
		p := vec3At(m.Positions, i)
		for c := 0; c < 3; c++ {
			lo[c] = remath.Min(lo[c], p[c])
			hi[c] = remath.Max(hi[c], p[c])
		}
	}
	return lo, hi
}

// Append concatenates other's triangles onto m.
func (m *MeshData) Append(other *MeshData) {
	m.Positions = append(m.Positions, other.Positions...)
	m.Normals = append(m.Normals, other.Normals...)
	m.UVs = append(m.UVs, other.UVs...)
	m.Tangents = append(m.Tangents, other.Tangents...)
	m.Bitangents = append(m.Bitangents, other.Bitangents...)
}

// expand flattens indexed vertices into a triangle list. Tangents should be
// computed on the indexed form first so shared vertices get smooth frames.
func expand(name string, vertices []core.Vertex, indices []uint32) *MeshData {
	if len(indices) == 0 {
		indices = make([]uint32, len(vertices))
		for i := range indices {
			indices[i] = uint32(i)
		}
	}
	n := len(indices) - len(indices)%3
	m := &MeshData{
		Name:       name,
		Positions:  make([]float32, 0, 3*n),
		Normals:    make([]float32, 0, 3*n),
		UVs:        make([]float32, 0, 2*n),
		Tangents:   make([]float32, 0, 3*n),
		Bitangents: make([]float32, 0, 3*n),
	}
	for _, idx := range indices[:n] {
		v := vertices[idx]
		m.Positions = append(m.Positions, v.Position[:]...)
		m.Normals = append(m.Normals, v.Normal[:]...)
		m.UVs = append(m.UVs, v.UV[:]...)
		m.Tangents = append(m.Tangents, v.Tangent[:]...)
		m.Bitangents = append(m.Bitangents, v.Bitangent[:]...)
	}
	return m
}

func vec3At(s []float32, i int) mgl32.Vec3 {
	return mgl32.Vec3{s[3*i], s[3*i+1], s[3*i+2]}
}
