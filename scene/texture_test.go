package scene

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/HugoPeters1024/deffered-shading/core"
)

func checker() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{0, 255, 0, 255})
	img.Set(0, 1, color.NRGBA{0, 0, 255, 255})
	img.Set(1, 1, color.NRGBA{10, 20, 30, 255})
	return img
}

var checkerRGB = []byte{
	255, 0, 0, 0, 255, 0,
	0, 0, 255, 10, 20, 30,
}

func TestDecodeTexturePNG(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, checker()))

	tex, err := DecodeTexture("checker.png", &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, checkerRGB, tex.Pixels)
}

func TestLoadTextureBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "checker.bmp")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, bmp.Encode(f, checker()))
	require.NoError(t, f.Close())

	tex, err := LoadTexture(path)
	require.NoError(t, err)
	assert.Equal(t, checkerRGB, tex.Pixels)
}

func TestLoadTextureFailuresAreDecodeErrors(t *testing.T) {
	_, err := DecodeTexture("junk", strings.NewReader("not an image"))
	assert.ErrorIs(t, err, core.ErrTextureDecode)

	_, err = LoadTexture(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, core.ErrTextureDecode)
}

func TestMaterialNormalMapFlag(t *testing.T) {
	m := NewMaterial("floor", nil)
	assert.False(t, m.NormalMapped)
	assert.Len(t, m.Textures(), 1)

	m.WithNormalMap(nil)
	assert.False(t, m.NormalMapped)

	m.WithNormalMap(NewSolidTexture("flat", 128, 128, 255))
	assert.True(t, m.NormalMapped)
	assert.Len(t, m.Textures(), 2)
}
