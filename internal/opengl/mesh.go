package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.5-core/gl"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/scene"
)

// GPUMesh holds the buffers of an uploaded, fully expanded triangle list.
type GPUMesh struct {
	Name        string
	VAO         uint32
	VBO         uint32
	VertexCount int32
}

// UploadMesh interleaves mesh into one VBO with attributes at locations 0..4
// (position, normal, uv, tangent, bitangent).
func UploadMesh(mesh *scene.MeshData) (*GPUMesh, error) {
	if err := mesh.Validate(); err != nil {
		return nil, err
	}
	vertices := mesh.Interleave()
	if len(vertices) == 0 {
		return nil, fmt.Errorf("%w: mesh %q is empty", core.ErrMeshLoad, mesh.Name)
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))
	gpu := &GPUMesh{Name: mesh.Name, VertexCount: int32(len(vertices))}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*int(stride), gl.Ptr(vertices), gl.STATIC_DRAW)

	var v core.Vertex
	attribs := []struct {
		size   int32
		offset uintptr
	}{
		{3, unsafe.Offsetof(v.Position)},
		{3, unsafe.Offsetof(v.Normal)},
		{2, unsafe.Offsetof(v.UV)},
		{3, unsafe.Offsetof(v.Tangent)},
		{3, unsafe.Offsetof(v.Bitangent)},
	}
	for i, a := range attribs {
		gl.EnableVertexAttribArray(uint32(i))
		gl.VertexAttribPointer(uint32(i), a.size, gl.FLOAT, false, stride, gl.PtrOffset(int(a.offset)))
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	core.LogDebug("mesh uploaded", "mesh", mesh.Name, "vertices", gpu.VertexCount)
	return gpu, nil
}

// Draw issues one triangle draw of the whole mesh.
func (m *GPUMesh) Draw() {
	gl.BindVertexArray(m.VAO)
	gl.DrawArrays(gl.TRIANGLES, 0, m.VertexCount)
}

func (m *GPUMesh) Destroy() {
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}
