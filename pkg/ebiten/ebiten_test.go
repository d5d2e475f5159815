package ebiten

import (
	"strings"
	"testing"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/assert"
)

func TestToRGBA(t *testing.T) {
	var fb internal.Framebuffer
	fb[0][1] = 1
	fb[31][63] = 1

	dst := make([]byte, internal.ScreenWidth*internal.ScreenHeight*4)
	toRGBA(dst, fb)

	assert.Equal(t, []byte{0x1A, 0x23, 0x7E, 0xFF}, dst[0:4])
	assert.Equal(t, []byte{0x9F, 0xA8, 0xDA, 0xFF}, dst[4:8])
	assert.Equal(t, []byte{0x9F, 0xA8, 0xDA, 0xFF}, dst[len(dst)-4:])
}

func TestKeyLayout(t *testing.T) {
	seen := map[string]bool{}
	for code, key := range keys {
		r := internal.RuneForKey(uint8(code))
		name := strings.ToLower(key.String())
		assert.Equal(t, string(r), name[len(name)-1:])
		assert.False(t, seen[key.String()])
		seen[key.String()] = true
	}
}

func TestGameStatus(t *testing.T) {
	vm, err := internal.NewC8VM()
	assert.NoError(t, err)
	assert.NoError(t, vm.Load([]byte{0xF0, 0x0A}))

	g := New(vm, nil, 10, 600)
	assert.Equal(t, 10, g.cyclesPerFrame)
	assert.Equal(t, "", g.status())

	assert.NoError(t, g.Host().Step())
	assert.Equal(t, "WAITING FOR KEY", g.status())

	g.Host().SetPaused(true)
	assert.Equal(t, "PAUSED", g.status())

	w, h := g.Layout(0, 0)
	assert.Equal(t, 640, w)
	assert.Equal(t, 320, h)
}

func TestCyclesPerFrame(t *testing.T) {
	vm, err := internal.NewC8VM()
	assert.NoError(t, err)

	tests := []struct {
		hz   int
		want int
	}{
		{0, unthrottledCycles},
		{30, 1},
		{60, 1},
		{500, 8},
		{1200, 20},
	}
	for _, tt := range tests {
		g := New(vm, nil, 10, tt.hz)
		assert.Equal(t, tt.want, g.cyclesPerFrame)
	}
}
