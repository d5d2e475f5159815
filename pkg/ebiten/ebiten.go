// Package ebiten is a frontend drawing the CHIP-8 display in an Ebiten
// window. Ebiten owns the main loop, so the host is stepped from Update a
// number of times per tick rather than through host.Run.
package ebiten

import (
	"errors"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/host"
	"github.com/mnafees/chopper/v2/pkg/tone"
	"golang.org/x/image/font/basicfont"
)

const (
	screenColor = 0x1A237E
	spriteColor = 0x9FA8DA

	// cycles run per tick when hz is 0. Ebiten paces Update, so unthrottled
	// means as many cycles as fit comfortably in one tick.
	unthrottledCycles = 10000
)

// keys maps every logical key to an ebiten key, following the QWERTY layout
// used by the other frontends
var keys = [internal.NumKeys]ebiten.Key{
	ebiten.KeyX, ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyA,
	ebiten.KeyS, ebiten.KeyD, ebiten.KeyZ, ebiten.KeyC,
	ebiten.KeyDigit4, ebiten.KeyR, ebiten.KeyF, ebiten.KeyV,
}

// Game implements ebiten.Game and host.Frontend
type Game struct {
	host   *host.Host
	keypad internal.Keypad
	quit   bool
	err    error

	scale          int
	cyclesPerFrame int

	window *ebiten.Image
	pixels []byte
}

// New returns a Game stepping vm hz times a second. An hz of 0 runs a fixed
// large batch of cycles per tick. sink may be nil.
func New(vm *internal.C8VM, sink tone.Sink, scale, hz int) *Game {
	g := &Game{
		scale:  scale,
		pixels: make([]byte, internal.ScreenWidth*internal.ScreenHeight*4),
	}
	switch {
	case hz <= 0:
		g.cyclesPerFrame = unthrottledCycles
	case hz < ebiten.DefaultTPS:
		g.cyclesPerFrame = 1
	default:
		g.cyclesPerFrame = hz / ebiten.DefaultTPS
	}
	g.host = host.New(vm, g, sink)
	toRGBA(g.pixels, vm.Pixels())
	return g
}

// Host returns the host driven by the game
func (g *Game) Host() *host.Host {
	return g.host
}

// Err returns the error that stopped the game, if any
func (g *Game) Err() error {
	return g.err
}

// Run opens the window and blocks until it is closed
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(internal.ScreenWidth*g.scale, internal.ScreenHeight*g.scale)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(g); err != nil {
		return err
	}
	return g.err
}

// Poll implements the host.Frontend interface
func (g *Game) Poll() (internal.Input, bool) {
	return g.keypad.Snapshot(), g.quit
}

// Render implements the host.Frontend interface
func (g *Game) Render(fb internal.Framebuffer) error {
	toRGBA(g.pixels, fb)
	return nil
}

// Update implements the ebiten.Game interface
func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.quit = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.host.SetPaused(!g.host.Paused())
	}
	for code, key := range keys {
		if inpututil.IsKeyJustPressed(key) {
			g.keypad.Press(uint8(code))
		}
		if inpututil.IsKeyJustReleased(key) {
			g.keypad.Release(uint8(code))
		}
	}

	for i := 0; i < g.cyclesPerFrame; i++ {
		if err := g.host.Step(); err != nil {
			if !errors.Is(err, host.ErrQuit) {
				g.err = err
			}
			return ebiten.Termination
		}
	}
	return nil
}

// Draw implements the ebiten.Game interface
func (g *Game) Draw(screen *ebiten.Image) {
	if g.window == nil {
		g.window = ebiten.NewImage(internal.ScreenWidth, internal.ScreenHeight)
	}
	g.window.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.window, op)

	if status := g.status(); status != "" {
		text.Draw(screen, status, basicfont.Face7x13, 4, 16, color.RGBA{255, 255, 255, 255})
	}
}

// Layout implements the ebiten.Game interface
func (g *Game) Layout(_, _ int) (int, int) {
	return internal.ScreenWidth * g.scale, internal.ScreenHeight * g.scale
}

func (g *Game) status() string {
	switch {
	case g.host.Paused():
		return "PAUSED"
	case g.host.VM().WaitingForKey():
		return "WAITING FOR KEY"
	}
	return ""
}

// toRGBA converts the framebuffer to RGBA pixels in the frontend colours
func toRGBA(dst []byte, fb internal.Framebuffer) {
	for y := range fb {
		for x, px := range fb[y] {
			c := uint32(screenColor)
			if px == 1 {
				c = spriteColor
			}
			i := (y*internal.ScreenWidth + x) * 4
			dst[i] = byte(c >> 16)
			dst[i+1] = byte(c >> 8)
			dst[i+2] = byte(c)
			dst[i+3] = 0xFF
		}
	}
}
