package term

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/retroenv/retrogolib/assert"
)

func TestHalfBlocks(t *testing.T) {
	var fb internal.Framebuffer
	fb[0][0] = 1
	fb[0][1] = 1
	fb[1][1] = 1
	fb[1][2] = 1

	var buf bytes.Buffer
	halfBlocks(&buf, fb)
	lines := strings.Split(buf.String(), "\r\n")
	assert.Equal(t, internal.ScreenHeight/2+1, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "▀█▄ "))
	assert.Equal(t, strings.Repeat(" ", internal.ScreenWidth), lines[1])
}

// pollUntil polls until cond holds or a second passes; key bytes arrive
// through a goroutine
func pollUntil(t *testing.T, term *Terminal, cond func(internal.Input, bool) bool) internal.Input {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		in, quit := term.Poll()
		if cond(in, quit) {
			return in
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met")
	return internal.Input{}
}

func TestKeysAreHeld(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader("w"), &out, 30) // held for 3 polls
	assert.NoError(t, term.Start())
	defer term.Stop()

	in := pollUntil(t, term, func(in internal.Input, _ bool) bool {
		return in.Keys.Held(0x5)
	})
	assert.True(t, in.Edge)

	in, _ = term.Poll()
	assert.True(t, in.Keys.Held(0x5))
	assert.False(t, in.Edge)
	in, _ = term.Poll()
	assert.True(t, in.Keys.Held(0x5))

	in, _ = term.Poll()
	assert.False(t, in.Keys.Held(0x5))
	assert.True(t, in.Edge)
}

func TestQuitAndPause(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader(" \x1b"), &out, 500)
	assert.NoError(t, term.Start())
	defer term.Stop()

	pollUntil(t, term, func(_ internal.Input, quit bool) bool {
		return quit
	})
	assert.True(t, term.PauseRequested())
	assert.False(t, term.PauseRequested())
}

func TestRender(t *testing.T) {
	var out bytes.Buffer
	term := New(strings.NewReader(""), &out, 500)

	var fb internal.Framebuffer
	fb[31][63] = 1
	assert.NoError(t, term.Render(fb))
	s := out.String()
	assert.True(t, strings.HasPrefix(s, "\x1b[H"))
	assert.True(t, strings.HasSuffix(s, "▄\r\n"))
}

func TestStopEndsReader(t *testing.T) {
	var out bytes.Buffer
	// more key bytes than the channel buffers, and nothing polling them
	term := New(strings.NewReader(strings.Repeat("w", 1000)), &out, 500)
	assert.NoError(t, term.Start())
	term.Stop()
	term.Stop()

	select {
	case <-term.done:
	case <-time.After(time.Second):
		t.Fatal("key reader still running after Stop")
	}
}
