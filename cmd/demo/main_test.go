package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HugoPeters1024/deffered-shading/core"
	"github.com/HugoPeters1024/deffered-shading/renderer"
)

type fakeTitle struct{ title string }

func (f *fakeTitle) SetTitle(title string) { f.title = title }

func TestEveryViewHasAKey(t *testing.T) {
	bound := map[renderer.View]bool{}
	for _, v := range viewKeys {
		bound[v] = true
	}
	for _, v := range renderer.Views() {
		assert.True(t, bound[v], "view %s has no key", v)
	}
}

func TestHUDText(t *testing.T) {
	w := &fakeTitle{}
	h := newHUD(w, "Deferred Shading")
	assert.Equal(t, "Deferred Shading", h.text())

	h.addLine("%s", renderer.ViewDepth)
	h.addLine("%d fps", 60)
	assert.Equal(t, "Deferred Shading | depth | 60 fps", h.text())
}

func TestKeyEdgeFiresOncePerPress(t *testing.T) {
	k := &keyEdge{}
	var fired []bool
	for _, down := range []bool{false, true, true, true, false, true} {
		fired = append(fired, k.pressed(down))
	}
	assert.Equal(t, []bool{false, true, false, false, false, true}, fired)
}

func TestSwapIntervalCycles(t *testing.T) {
	interval := core.DefaultWindowConfig().SwapInterval
	seen := map[int]bool{}
	for i := 0; i < 3; i++ {
		interval = nextSwapInterval(interval)
		seen[interval] = true
	}
	assert.Equal(t, map[int]bool{0: true, 1: true, 2: true}, seen)
	assert.Equal(t, 0, nextSwapInterval(2))
}
