package main

import (
	"fmt"
	"strings"

	"github.com/HugoPeters1024/deffered-shading/renderer"
)

// hudInterval is how often the title line is refreshed, in seconds.
const hudInterval = 0.5

type titled interface {
	SetTitle(title string)
}

// hud shows frame rate and draw counts in the window title.
type hud struct {
	window  titled
	base    string
	elapsed float64
	frames  int
	lines   []string
}

func newHUD(window titled, base string) *hud {
	return &hud{window: window, base: base}
}

func (h *hud) addLine(format string, args ...interface{}) {
	h.lines = append(h.lines, fmt.Sprintf(format, args...))
}

func (h *hud) text() string {
	return strings.Join(append([]string{h.base}, h.lines...), " | ")
}

func (h *hud) update(dt float64, engine *renderer.RenderEngine) {
	h.elapsed += dt
	h.frames++
	if h.elapsed < hudInterval {
		return
	}
	draws, _, shafts, culled := engine.DrawStats()
	h.lines = h.lines[:0]
	h.addLine("%s", engine.View)
	h.addLine("%.0f fps", float64(h.frames)/h.elapsed)
	h.addLine("%d draws", draws)
	h.addLine("%d shafts", shafts)
	h.addLine("%d culled", culled)
	active := engine.Lights()
	h.addLine("%d lights", active.Count)
	h.window.SetTitle(h.text())
	h.elapsed, h.frames = 0, 0
}
