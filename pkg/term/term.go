// Package term is a frontend that draws the CHIP-8 display in a text
// terminal, two display rows per line, and reads keys from raw stdin.
//
// Terminals report key presses but not releases, so a key counts as held for
// a fixed number of polls after its byte arrives. Holding a key down relies on
// the terminal's auto repeat to keep it held.
package term

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/logger"
	"golang.org/x/term"
)

const (
	keyEscape = 0x1b
	keyCtrlC  = 0x03
	keyPause  = ' '
)

// Terminal implements host.Frontend
type Terminal struct {
	in  io.Reader
	out io.Writer

	fd       int
	oldState *term.State

	bytes    chan byte
	done     chan struct{}
	stop     chan struct{}
	stopOnce sync.Once

	keypad    internal.Keypad
	hold      [internal.NumKeys]int
	holdPolls int
	quit      bool
	pause     bool

	frame bytes.Buffer
}

// New returns a terminal frontend reading keys from in and drawing to out.
// hz is the rate Poll is called at and sets how long a key stays held.
func New(in io.Reader, out io.Writer, hz int) *Terminal {
	holdPolls := hz / 10
	if hz <= 0 {
		holdPolls = 50
	}
	if holdPolls < 1 {
		holdPolls = 1
	}
	return &Terminal{
		in:        in,
		out:       out,
		fd:        -1,
		bytes:     make(chan byte, 64),
		done:      make(chan struct{}),
		stop:      make(chan struct{}),
		holdPolls: holdPolls,
	}
}

// Start switches an interactive stdin to raw mode, clears the screen and
// starts reading keys
func (t *Terminal) Start() error {
	if f, ok := t.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		t.fd = int(f.Fd())
		oldState, err := term.MakeRaw(t.fd)
		if err != nil {
			return fmt.Errorf("term: setting raw mode: %w", err)
		}
		t.oldState = oldState

		if w, h, err := term.GetSize(t.fd); err == nil && (w < internal.ScreenWidth || h < internal.ScreenHeight/2) {
			logger.Logf("term", "terminal is %dx%d, %dx%d needed", w, h, internal.ScreenWidth, internal.ScreenHeight/2)
		}
	}

	go func() {
		defer close(t.done)
		buf := make([]byte, 16)
		for {
			n, err := t.in.Read(buf)
			for _, b := range buf[:n] {
				select {
				case t.bytes <- b:
				case <-t.stop:
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	// hide the cursor and clear the screen
	_, err := io.WriteString(t.out, "\x1b[?25l\x1b[2J")
	return err
}

// Stop restores the terminal and ends the key reader. A reader blocked in
// Read exits once the read returns.
func (t *Terminal) Stop() {
	t.stopOnce.Do(func() { close(t.stop) })
	_, _ = io.WriteString(t.out, "\x1b[?25h\r\n")
	if t.oldState != nil {
		_ = term.Restore(t.fd, t.oldState)
		t.oldState = nil
	}
}

// PauseRequested reports, and clears, a pause toggle request from the
// keyboard
func (t *Terminal) PauseRequested() bool {
	p := t.pause
	t.pause = false
	return p
}

// Poll implements the host.Frontend interface
func (t *Terminal) Poll() (internal.Input, bool) {
	for code := range t.hold {
		if t.hold[code] > 0 {
			t.hold[code]--
			if t.hold[code] == 0 {
				t.keypad.Release(uint8(code))
			}
		}
	}

	for drained := false; !drained; {
		select {
		case b := <-t.bytes:
			t.handleByte(b)
		case <-t.done:
			// stdin closed; anything left in t.bytes has been handled
			if len(t.bytes) == 0 {
				drained = true
			}
		default:
			drained = true
		}
	}

	return t.keypad.Snapshot(), t.quit
}

func (t *Terminal) handleByte(b byte) {
	switch b {
	case keyEscape, keyCtrlC:
		t.quit = true
		return
	case keyPause:
		t.pause = !t.pause
		return
	}
	code, ok := internal.KeyForRune(rune(b))
	if !ok {
		return
	}
	t.keypad.Press(code)
	t.hold[code] = t.holdPolls
}

// Render implements the host.Frontend interface
func (t *Terminal) Render(fb internal.Framebuffer) error {
	t.frame.Reset()
	t.frame.WriteString("\x1b[H")
	halfBlocks(&t.frame, fb)
	_, err := t.out.Write(t.frame.Bytes())
	return err
}

// halfBlocks writes the display as ScreenHeight/2 lines, each character
// covering two vertically adjacent pixels. Lines end with CR LF because the
// terminal is in raw mode.
func halfBlocks(w *bytes.Buffer, fb internal.Framebuffer) {
	for y := 0; y < internal.ScreenHeight; y += 2 {
		for x := 0; x < internal.ScreenWidth; x++ {
			top, bottom := fb[y][x] == 1, fb[y+1][x] == 1
			switch {
			case top && bottom:
				w.WriteRune('█')
			case top:
				w.WriteRune('▀')
			case bottom:
				w.WriteRune('▄')
			default:
				w.WriteByte(' ')
			}
		}
		w.WriteString("\r\n")
	}
}
