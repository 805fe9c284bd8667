package scene

import (
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/HugoPeters1024/deffered-shading/core"
)

// Assets is everything the demo decodes from disk before GL upload.
type Assets struct {
	Player *MeshData
	Cube   *MeshData
	Floor  *MeshData

	PlayerMaterial *Material
	FloorMaterial  *Material
	LightMaterial  *Material
}

// LoadMesh dispatches on the file extension.
func LoadMesh(path string) (*MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("%w: unsupported mesh format %q", core.ErrMeshLoad, path)
}

// LoadAssets decodes the configured meshes and textures in parallel. Empty
// paths fall back to procedural meshes and solid-color textures. Only CPU
// work happens here; GL upload stays on the render thread.
func LoadAssets(cfg core.AssetConfig) (*Assets, error) {
	var (
		a                                 Assets
		playerTex, floorTex, floorNormals *Texture
		g                                 errgroup.Group
	)

	mesh := func(dst **MeshData, path string, fallback func() *MeshData) {
		g.Go(func() error {
			if path == "" {
				*dst = fallback()
				return nil
			}
			m, err := LoadMesh(path)
			if err != nil {
				return err
			}
			if err := m.Validate(); err != nil {
				return fmt.Errorf("%w: %v", core.ErrMeshLoad, err)
			}
			*dst = m
			return nil
		})
	}
	texture := func(dst **Texture, path string) {
		g.Go(func() error {
			if path == "" {
				return nil
			}
			t, err := LoadTexture(path)
			if err != nil {
				return err
			}
			*dst = t
			return nil
		})
	}

	mesh(&a.Player, cfg.PlayerMesh, func() *MeshData { return CreateSphere(3, 32, 16) })
	mesh(&a.Cube, cfg.CubeMesh, func() *MeshData { return CreateCube(1) })
	mesh(&a.Floor, cfg.FloorMesh, func() *MeshData { return CreatePlane(1, 1, 16) })
	texture(&playerTex, cfg.PlayerTexture)
	texture(&floorTex, cfg.FloorTexture)
	texture(&floorNormals, cfg.FloorNormalMap)

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if floorTex == nil {
		floorTex = NewSolidTexture("floor", 150, 140, 130)
	}
	a.PlayerMaterial = NewMaterial("player", playerTex)
	a.FloorMaterial = NewMaterial("floor", floorTex).WithNormalMap(floorNormals)
	a.FloorMaterial.TextureScale = cfg.FloorTextureScale
	a.LightMaterial = NewMaterial("light", NewSolidTexture("light", 255, 255, 255))

	core.LogInfo("assets loaded",
		"player", a.Player.TriangleCount(), "cube", a.Cube.TriangleCount(), "floor", a.Floor.TriangleCount())
	return &a, nil
}
