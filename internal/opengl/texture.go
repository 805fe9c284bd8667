package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.5-core/gl"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/scene"
)

// TextureCache uploads each scene.Texture once and hands back its GL id.
// Call it from the render thread only.
type TextureCache struct {
	ids map[*scene.Texture]uint32
}

func NewTextureCache() *TextureCache {
	return &TextureCache{ids: map[*scene.Texture]uint32{}}
}

// Get returns the GL texture for tex, uploading it on first use.
func (c *TextureCache) Get(tex *scene.Texture) (uint32, error) {
	if id, ok := c.ids[tex]; ok {
		return id, nil
	}
	id, err := UploadTexture(tex)
	if err != nil {
		return 0, err
	}
	c.ids[tex] = id
	return id, nil
}

func (c *TextureCache) Destroy() {
	for tex, id := range c.ids {
		gl.DeleteTextures(1, &id)
		delete(c.ids, tex)
	}
}

// UploadTexture uploads RGB8 pixels as a repeating, mipmapped texture.
func UploadTexture(tex *scene.Texture) (uint32, error) {
	if tex == nil {
		return 0, fmt.Errorf("%w: nil texture", core.ErrTextureDecode)
	}
	if len(tex.Pixels) != tex.Width*tex.Height*3 || len(tex.Pixels) == 0 {
		return 0, fmt.Errorf("%w: texture %q has %d bytes for %dx%d RGB", core.ErrTextureDecode, tex.Name, len(tex.Pixels), tex.Width, tex.Height)
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// Rows of RGB8 are not 4-byte aligned for odd widths.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		gl.RGB8,
		int32(tex.Width),
		int32(tex.Height),
		0,
		gl.RGB,
		gl.UNSIGNED_BYTE,
		unsafe.Pointer(&tex.Pixels[0]),
	)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 4)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id, nil
}
