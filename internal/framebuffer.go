package internal

import "strings"

// Display dimensions in pixels
const (
	ScreenWidth  = 64
	ScreenHeight = 32
)

// Framebuffer is the 64 px x 32 px monochrome display, indexed [row][column].
// Every cell is either 0 or 1.
type Framebuffer [ScreenHeight][ScreenWidth]uint8

// Clear turns every pixel off
func (fb *Framebuffer) Clear() {
	*fb = Framebuffer{}
}

// At returns the pixel at column x, row y. Coordinates wrap.
func (fb *Framebuffer) At(x, y int) uint8 {
	return fb[mod(y, ScreenHeight)][mod(x, ScreenWidth)]
}

// Lit counts the pixels that are on
func (fb *Framebuffer) Lit() int {
	n := 0
	for y := range fb {
		for x := range fb[y] {
			n += int(fb[y][x])
		}
	}
	return n
}

// blitRow XORs the 8 bits of row onto the display, most significant bit
// leftmost, starting at (x, y). Both axes wrap. Returns true if a lit pixel
// was turned off.
func (fb *Framebuffer) blitRow(x, y int, row uint8) bool {
	collision := false
	y %= ScreenHeight
	for bit := 0; bit < 8; bit++ {
		if row&(0x80>>bit) == 0 {
			continue
		}
		px := &fb[y][(x+bit)%ScreenWidth]
		if *px == 1 {
			collision = true
		}
		*px ^= 1
	}
	return collision
}

// String renders the display as rows of '#' (on) and '.' (off)
func (fb *Framebuffer) String() string {
	var s strings.Builder
	s.Grow((ScreenWidth + 1) * ScreenHeight)
	for y := range fb {
		for x := range fb[y] {
			if fb[y][x] == 1 {
				s.WriteByte('#')
			} else {
				s.WriteByte('.')
			}
		}
		s.WriteByte('\n')
	}
	return s.String()
}

func mod(a, n int) int {
	a %= n
	if a < 0 {
		a += n
	}
	return a
}
