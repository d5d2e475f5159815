package sdl

import (
	"context"
	"fmt"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/host"
	"github.com/mnafees/chopper/v2/pkg/tone"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA
)

// IO is the input/output abstraction layer for the VM. It implements
// host.Frontend.
type IO struct {
	window  *sdl.Window
	surface *sdl.Surface
	audio   *Audio

	pixelSize int32
	keypad    internal.Keypad
	host      *host.Host
}

// NewIO returns a new I/O instance for the SDL frontend
func NewIO(pixelSize int) *IO {
	return &IO{
		pixelSize: int32(pixelSize),
	}
}

// SetupWindow initialises SDL and opens the main window. With withAudio the
// default audio device is opened as well; failing to open it is logged and
// the emulator runs silently.
func (io *IO) SetupWindow(title string, withAudio bool) error {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("initialising SDL: %w", err)
	}

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		internal.ScreenWidth*io.pixelSize, internal.ScreenHeight*io.pixelSize, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	io.window = window
	io.surface, err = window.GetSurface()
	if err != nil {
		return fmt.Errorf("getting window surface: %w", err)
	}
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return err
	}

	if withAudio {
		io.audio, err = NewAudio()
		if err != nil {
			logger.Logf("sdl", "no audio: %v", err)
			io.audio = nil
		}
	}
	return io.window.UpdateSurface()
}

// Destroy should be called before quitting the application
func (io *IO) Destroy() {
	if io.audio != nil {
		io.audio.Close()
	}
	if io.window != nil {
		_ = io.window.Destroy()
	}
	sdl.Quit()
}

// Loop is the main application loop. It returns when the window is closed,
// ctx is cancelled or the VM fails.
func (io *IO) Loop(ctx context.Context, vm *internal.C8VM, hz int) error {
	var sink tone.Sink
	if io.audio != nil {
		sink = io.audio
	}
	io.host = host.New(vm, io, sink)
	return io.host.Run(ctx, hz)
}

// Poll implements the host.Frontend interface
func (io *IO) Poll() (internal.Input, bool) {
	quit := false
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.KeyboardEvent:
			if t.Repeat != 0 {
				continue
			}
			scancode := t.Keysym.Scancode
			switch t.GetType() {
			case sdl.KEYDOWN:
				switch scancode {
				case sdl.SCANCODE_ESCAPE:
					quit = true
				case sdl.SCANCODE_P:
					io.host.SetPaused(!io.host.Paused())
					logger.Logf("sdl", "paused: %v", io.host.Paused())
				default:
					io.setKeymask(scancode)
				}
			case sdl.KEYUP:
				io.unsetKeymask(scancode)
			}
		case *sdl.QuitEvent:
			quit = true
		}
	}
	if io.audio != nil {
		if err := io.audio.Feed(); err != nil {
			logger.Logf("sdl", "audio: %v", err)
		}
	}
	return io.keypad.Snapshot(), quit
}

// Render implements the host.Frontend interface. It draws the current
// sprite configuration on screen.
func (io *IO) Render(pixels internal.Framebuffer) error {
	if err := io.surface.FillRect(nil, screenColor); err != nil {
		return err
	}
	for h := int32(0); h < internal.ScreenHeight; h++ {
		for w := int32(0); w < internal.ScreenWidth; w++ {
			if pixels[h][w] == 1 {
				rect := &sdl.Rect{X: w * io.pixelSize, Y: h * io.pixelSize, W: io.pixelSize, H: io.pixelSize}
				if err := io.surface.FillRect(rect, spriteColor); err != nil {
					return err
				}
			}
		}
	}
	return io.window.UpdateSurface()
}

// Maps keys from a QWERTY keyboard to the keypad used by CHIP-8
// Below we have a mapping QWERTY keyboard to the CHIP-8 keypad
// +--------+--------+--------+--------+
// | 1 -> 1 | 2 -> 2 | 3 -> 3 | 4 -> C |
// +--------+--------+--------+--------+
// | Q -> 4 | W -> 5 | E -> 6 | R -> D |
// +--------+--------+--------+--------+
// | A -> 7 | S -> 8 | D -> 9 | F -> E |
// +--------+--------+--------+--------+
// | Z -> A | X -> 0 | C -> B | V -> F |
// +--------+--------+--------+--------+
func keymap(code sdl.Scancode) int8 {
	switch code {
	case sdl.SCANCODE_1:
		return 0x1
	case sdl.SCANCODE_2:
		return 0x2
	case sdl.SCANCODE_3:
		return 0x3
	case sdl.SCANCODE_4:
		return 0xC
	case sdl.SCANCODE_Q:
		return 0x4
	case sdl.SCANCODE_W:
		return 0x5
	case sdl.SCANCODE_E:
		return 0x6
	case sdl.SCANCODE_R:
		return 0xD
	case sdl.SCANCODE_A:
		return 0x7
	case sdl.SCANCODE_S:
		return 0x8
	case sdl.SCANCODE_D:
		return 0x9
	case sdl.SCANCODE_F:
		return 0xE
	case sdl.SCANCODE_Z:
		return 0xA
	case sdl.SCANCODE_X:
		return 0x0
	case sdl.SCANCODE_C:
		return 0xB
	case sdl.SCANCODE_V:
		return 0xF
	default:
		return -1
	}
}

func (io *IO) setKeymask(scancode sdl.Scancode) {
	code := keymap(scancode)
	if code != -1 {
		io.keypad.Press(uint8(code))
	}
}

func (io *IO) unsetKeymask(scancode sdl.Scancode) {
	code := keymap(scancode)
	if code != -1 {
		io.keypad.Release(uint8(code))
	}
}
