package scene

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HugoPeters1024/deffered-shading/core"
)

const quadOBJ = `
# unit quad in the XZ plane
o floor
v -1 0 -1
v  1 0 -1
v  1 0  1
v -1 0  1
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 1 0
f 1/1/1 4/4/1 3/3/1 2/2/1
`

func TestParseOBJFanTriangulates(t *testing.T) {
	m, err := ParseOBJ("quad", strings.NewReader(quadOBJ))
	require.NoError(t, err)
	require.NoError(t, m.Validate())

	assert.Equal(t, 2, m.TriangleCount())
	assert.Equal(t, 6, m.VertexCount())
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		assert.Equal(t, mgl32.Vec3{0, 1, 0}, v.Normal)
		assert.InDelta(t, 0, v.Tangent.Dot(v.Normal), 1e-5)
		assert.InDelta(t, 1, v.Tangent.Len(), 1e-5)
	}
	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-1, 0, -1}, lo)
	assert.Equal(t, mgl32.Vec3{1, 0, 1}, hi)
}

func TestParseOBJRelativeIndicesAndGeneratedNormals(t *testing.T) {
	src := `
v 0 0 0
v 1 0 0
v 0 0 -1
f -3 -2 -1
`
	m, err := ParseOBJ("tri", strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 1, m.TriangleCount())

	// Counter-clockwise seen from +Y.
	n := m.Vertex(0).Normal
	assert.InDelta(t, 1, n.Y(), 1e-6)
}

func TestParseOBJErrors(t *testing.T) {
	for name, src := range map[string]string{
		"empty":        "# nothing\n",
		"bad number":   "v 0 x 0\n",
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"short vertex": "v 0 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOBJ(name, strings.NewReader(src))
			require.Error(t, err)
			assert.ErrorIs(t, err, core.ErrMeshLoad)
		})
	}
}

func TestLoadMeshDispatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(path, []byte(quadOBJ), 0o644))

	m, err := LoadMesh(path)
	require.NoError(t, err)
	assert.Equal(t, 2, m.TriangleCount())

	_, err = LoadMesh(filepath.Join(dir, "quad.fbx"))
	assert.ErrorIs(t, err, core.ErrMeshLoad)

	_, err = LoadMesh(filepath.Join(dir, "missing.obj"))
	assert.ErrorIs(t, err, core.ErrMeshLoad)
}
