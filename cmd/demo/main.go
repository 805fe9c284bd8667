package main

import (
	"flag"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/internal/platform"
	remath "github.com/HugoPeters1024/deffered-shading/math"
	"github.com/HugoPeters1024/deffered-shading/renderer"
	"github.com/HugoPeters1024/deffered-shading/scene"
)

// cameraFOV is the vertical field of view in radians.
const cameraFOV = 1.25

// viewKeys maps number keys to debug views.
var viewKeys = map[int]renderer.View{
	core.Key1: renderer.ViewFinal,
	core.Key2: renderer.ViewNormals,
	core.Key3: renderer.ViewMaterial,
	core.Key4: renderer.ViewDepth,
	core.Key5: renderer.ViewCone,
}

func main() {
	configPath := flag.String("config", "deferred.toml", "optional TOML config file")
	debug := flag.Bool("debug", false, "log at debug level")
	flag.Parse()

	core.SetDebug(*debug)
	if err := run(*configPath); err != nil {
		core.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := core.LoadConfig(configPath)
	if err != nil {
		return err
	}
	core.LogInfo("starting", "config", configPath, "width", cfg.Window.Width, "height", cfg.Window.Height)

	// Decoding needs no GL context, so it runs before the window exists.
	assets, err := scene.LoadAssets(cfg.Assets)
	if err != nil {
		return err
	}

	window, err := platform.NewWindow(cfg.Window)
	if err != nil {
		return err
	}
	defer window.Destroy()

	engine, err := renderer.NewRenderEngine(window, cfg.Render, cfg.Window.Debug)
	if err != nil {
		return err
	}
	defer engine.Destroy()

	if err := populate(engine, assets, cfg.Assets); err != nil {
		return err
	}

	aspect := float32(cfg.Render.Width) / float32(cfg.Render.Height)
	camera := scene.NewCamera(cameraFOV, aspect, mgl32.Vec3{0, 10, 20}, mgl32.Vec3{})

	hud := newHUD(window, cfg.Window.Title)
	vsync := &keyEdge{}
	engine.Run(camera, window, func(dt float64) {
		if window.IsKeyPressed(core.KeyEscape) {
			window.Close()
		}
		if vsync.pressed(window.IsKeyPressed(core.KeyV)) {
			window.SetSwapInterval(nextSwapInterval(window.SwapInterval))
			core.LogInfo("swap interval", "interval", window.SwapInterval)
		}
		for key, view := range viewKeys {
			if window.IsKeyPressed(key) && engine.View != view {
				engine.View = view
				core.LogInfo("view", "name", view)
			}
		}
		hud.update(dt, engine)
	})
	return nil
}

// keyEdge turns a held key into one event per press.
type keyEdge struct{ down bool }

func (k *keyEdge) pressed(down bool) bool {
	fired := down && !k.down
	k.down = down
	return fired
}

// nextSwapInterval cycles unthrottled, vsync and half rate.
func nextSwapInterval(interval int) int {
	return (interval + 1) % 3
}

// populate uploads the static scene: the player at the origin and the floor
// scaled out flat. Light markers follow the lights every frame.
func populate(engine *renderer.RenderEngine, a *scene.Assets, cfg core.AssetConfig) error {
	if err := engine.Add("player", a.Player, a.PlayerMaterial, mgl32.Ident4()); err != nil {
		return err
	}
	floorModel := remath.TRS(
		mgl32.Vec3{},
		mgl32.QuatIdent(),
		mgl32.Vec3{cfg.FloorScale, 1, cfg.FloorScale},
	)
	if err := engine.Add("floor", a.Floor, a.FloorMaterial, floorModel); err != nil {
		return err
	}
	return engine.SetLightMarker(a.Cube, a.LightMaterial)
}
