package scene

// Material describes the surface inputs of the geometry pass.
type Material struct {
	Name   string
	Albedo *Texture

	// NormalMap is a tangent-space normal map (RGB in [0,1] encodes XYZ in
	// [-1,1]). It is only sampled when NormalMapped is set; meshes without
	// meaningful UVs must leave the flag off.
	NormalMap    *Texture
	NormalMapped bool

	// TextureScale multiplies UVs before sampling.
	TextureScale float32
}

// DefaultMaterial is plain white with no normal map.
func DefaultMaterial() *Material {
	return &Material{
		Name:         "Default",
		Albedo:       NewSolidTexture("white", 255, 255, 255),
		TextureScale: 1,
	}
}

// NewMaterial creates a material sampling albedo. A nil albedo falls back to
// white.
func NewMaterial(name string, albedo *Texture) *Material {
	if albedo == nil {
		albedo = NewSolidTexture(name+"_albedo", 255, 255, 255)
	}
	return &Material{
		Name:         name,
		Albedo:       albedo,
		TextureScale: 1,
	}
}

// WithNormalMap attaches a normal map and turns normal mapping on.
func (m *Material) WithNormalMap(normalMap *Texture) *Material {
	if normalMap == nil {
		return m
	}
	m.NormalMap = normalMap
	m.NormalMapped = true
	return m
}

// Textures lists the distinct textures the material samples.
func (m *Material) Textures() []*Texture {
	var out []*Texture
	if m.Albedo != nil {
		out = append(out, m.Albedo)
	}
	if m.NormalMap != nil && m.NormalMap != m.Albedo {
		out = append(out, m.NormalMap)
	}
	return out
}
