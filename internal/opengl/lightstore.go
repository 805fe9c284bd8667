package opengl

import (
	gl "github.com/go-gl/gl/v4.5-core/gl"

	"github.com/HugoPeters1024/deffered-shading/internal/pipeline"
	"github.com/HugoPeters1024/deffered-shading/lights"
)

// LightStore is the uniform buffer behind the LightBlock of the lighting
// resolve program. It lives at a fixed binding point.
type LightStore struct {
	UBO uint32
}

func NewLightStore() *LightStore {
	ls := &LightStore{}
	gl.GenBuffers(1, &ls.UBO)
	gl.BindBuffer(gl.UNIFORM_BUFFER, ls.UBO)
	gl.BufferData(gl.UNIFORM_BUFFER, lights.BlockSize, nil, gl.DYNAMIC_DRAW)
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
	gl.BindBufferBase(gl.UNIFORM_BUFFER, pipeline.LightBlockBinding, ls.UBO)
	return ls
}

// Upload overwrites the whole buffer with arr.
func (ls *LightStore) Upload(arr *lights.Array) {
	buf := arr.Marshal()
	gl.BindBuffer(gl.UNIFORM_BUFFER, ls.UBO)
	gl.BufferSubData(gl.UNIFORM_BUFFER, 0, len(buf), gl.Ptr(buf))
	gl.BindBuffer(gl.UNIFORM_BUFFER, 0)
}

func (ls *LightStore) Destroy() {
	if ls.UBO != 0 {
		gl.DeleteBuffers(1, &ls.UBO)
		ls.UBO = 0
	}
}
