package internal

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebufferBlit(t *testing.T) {
	var fb Framebuffer
	assert.False(t, fb.blitRow(62, 0, 0xC1))
	assert.Equal(t, uint8(1), fb[0][62])
	assert.Equal(t, uint8(1), fb[0][63])
	assert.Equal(t, uint8(1), fb[0][4])
	assert.Equal(t, 3, fb.Lit())

	assert.True(t, fb.blitRow(62, 32, 0x80))
	assert.Equal(t, uint8(0), fb[0][62])
	assert.Equal(t, 2, fb.Lit())
}

func TestFramebufferAt(t *testing.T) {
	var fb Framebuffer
	fb[31][63] = 1
	assert.Equal(t, uint8(1), fb.At(-1, -1))
	assert.Equal(t, uint8(1), fb.At(63+ScreenWidth, 31))
	assert.Equal(t, uint8(0), fb.At(0, 0))

	fb.Clear()
	assert.Equal(t, 0, fb.Lit())
}

func TestFramebufferString(t *testing.T) {
	var fb Framebuffer
	fb[0][0] = 1
	fb[1][63] = 1

	lines := strings.Split(strings.TrimSuffix(fb.String(), "\n"), "\n")
	assert.Equal(t, ScreenHeight, len(lines))
	assert.Equal(t, "#"+strings.Repeat(".", ScreenWidth-1), lines[0])
	assert.Equal(t, strings.Repeat(".", ScreenWidth-1)+"#", lines[1])
	assert.Equal(t, strings.Repeat(".", ScreenWidth), lines[2])
}
