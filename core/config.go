package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the demo configuration, read from an optional TOML file.
// Fields left out of the file keep their defaults.
type Config struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Assets AssetConfig  `toml:"assets"`
}

// WindowConfig is the [window] section.
type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	// SwapInterval: 0 unthrottled, 1 vsync, 2 half rate.
	SwapInterval int  `toml:"swap_interval"`
	Debug        bool `toml:"debug_context"`
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:        640,
		Height:       480,
		Title:        "Deferred Shading",
		SwapInterval: 2,
		Debug:        true,
	}
}

// RenderConfig sizes the off-screen targets and tunes the lighting resolve.
type RenderConfig struct {
	Width      int        `toml:"width"`
	Height     int        `toml:"height"`
	Ambient    float32    `toml:"ambient"`
	Shininess  float32    `toml:"shininess"`
	Specular   float32    `toml:"specular"`
	MistColor  [3]float32 `toml:"mist_color"`
	MistAmount float32    `toml:"mist_amount"`
	MistPower  float32    `toml:"mist_power"`
	ConeLength float32    `toml:"cone_length"`
	BlurRadius float32    `toml:"blur_radius"`
}

// AssetConfig names the files loaded at startup. An empty path selects the
// built-in procedural stand-in.
type AssetConfig struct {
	PlayerMesh        string  `toml:"player_mesh"`
	PlayerTexture     string  `toml:"player_texture"`
	CubeMesh          string  `toml:"cube_mesh"`
	FloorMesh         string  `toml:"floor_mesh"`
	FloorTexture      string  `toml:"floor_texture"`
	FloorNormalMap    string  `toml:"floor_normal_map"`
	FloorScale        float32 `toml:"floor_scale"`
	FloorTextureScale float32 `toml:"floor_texture_scale"`
}

func DefaultConfig() Config {
	return Config{
		Window: DefaultWindowConfig(),
		Render: RenderConfig{
			Width:      640,
			Height:     480,
			Ambient:    0.2,
			Shininess:  32,
			Specular:   0.3,
			MistColor:  [3]float32{0.55, 0.6, 0.7},
			MistAmount: 0.6,
			MistPower:  64,
			ConeLength: 25,
			BlurRadius: 6,
		},
		Assets: AssetConfig{
			FloorScale:        150,
			FloorTextureScale: 5,
		},
	}
}

// LoadConfig reads path over the defaults. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	defer f.Close()
	return DecodeConfig(f)
}

// DecodeConfig parses TOML over the defaults and validates the result.
// Unknown keys are rejected.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrConfig, c.Window.Width, c.Window.Height)
	case c.Render.Width <= 0 || c.Render.Height <= 0:
		return fmt.Errorf("%w: render size %dx%d", ErrConfig, c.Render.Width, c.Render.Height)
	case c.Window.SwapInterval < 0 || c.Window.SwapInterval > 2:
		return fmt.Errorf("%w: swap_interval %d not in 0..2", ErrConfig, c.Window.SwapInterval)
	case c.Render.MistAmount < 0 || c.Render.MistAmount > 1:
		return fmt.Errorf("%w: mist_amount %v not in [0,1]", ErrConfig, c.Render.MistAmount)
	case c.Render.ConeLength <= 0:
		return fmt.Errorf("%w: cone_length must be positive", ErrConfig)
	}
	return nil
}
