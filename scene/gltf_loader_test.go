package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoPeters1024/deffered-shading/core"
)

func writeQuadGLB(t *testing.T) string {
	t.Helper()
	return writeQuadGLBWith(t, nil)
}

// writeQuadGLBWith saves a one-quad GLB after edit has altered its primitive.
func writeQuadGLBWith(t *testing.T, edit func(*gltf.Primitive)) string {
	t.Helper()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{-1, 0, -1}, {1, 0, -1}, {1, 0, 1}, {-1, 0, 1}})
	nrm := modeler.WriteNormal(doc, [][3]float32{{0, 1, 0}, {0, 1, 0}, {0, 1, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	idx := modeler.WriteIndices(doc, []uint16{0, 3, 2, 0, 2, 1})

	doc.Meshes = []*gltf.Mesh{{
		Name: "quad",
		Primitives: []*gltf.Primitive{{
			Indices: gltf.Index(idx),
			Attributes: map[string]int{
				"POSITION":   pos,
				"NORMAL":     nrm,
				"TEXCOORD_0": uv,
			},
		}},
	}}
	if edit != nil {
		edit(doc.Meshes[0].Primitives[0])
	}
	doc.Nodes = []*gltf.Node{{Name: "root", Mesh: gltf.Index(0)}}
	doc.Scenes = []*gltf.Scene{{Nodes: []int{0}}}
	doc.Scene = gltf.Index(0)

	path := filepath.Join(t.TempDir(), "quad.glb")
	require.NoError(t, gltf.SaveBinary(doc, path))
	return path
}

func TestLoadGLTFExpandsIndexedPrimitive(t *testing.T) {
	m, err := LoadGLTF(writeQuadGLB(t))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 2, m.TriangleCount())
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		assert.InDelta(t, 1, v.Normal.Y(), 1e-6)
		assert.InDelta(t, 1, v.Tangent.Len(), 1e-5)
		assert.InDelta(t, 0, v.Position.Y(), 1e-6)
	}
}

func TestLoadGLTFMissingFile(t *testing.T) {
	_, err := LoadGLTF(filepath.Join(t.TempDir(), "absent.glb"))
	assert.ErrorIs(t, err, core.ErrMeshLoad)
}

func TestLoadGLTFRejectsBadAccessors(t *testing.T) {
	for name, edit := range map[string]func(*gltf.Primitive){
		"position": func(p *gltf.Primitive) { p.Attributes["POSITION"] = 42 },
		"normal":   func(p *gltf.Primitive) { p.Attributes["NORMAL"] = 42 },
		"texcoord": func(p *gltf.Primitive) { p.Attributes["TEXCOORD_0"] = -1 },
		"indices":  func(p *gltf.Primitive) { p.Indices = gltf.Index(42) },
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadGLTF(writeQuadGLBWith(t, edit))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrMeshLoad)
			assert.Equal(t, core.ExitMeshLoad, core.ExitCode(err))
		})
	}
}

func TestLoadGLTFWithoutAccessors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.gltf")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0]}],
  "nodes": [{"mesh": 0}],
  "meshes": [{"primitives": [{"attributes": {"POSITION": 5}}]}]
}`), 0o644))

	_, err := LoadGLTF(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrMeshLoad)
	assert.ErrorContains(t, err, "accessor 5 out of range")
}
