package internal

// Timers are the delay and sound countdown registers. Both count down by one
// per cycle and stop at zero.
type Timers struct {
	Delay uint8
	Sound uint8
}

// Tick decrements each non-zero timer
func (t *Timers) Tick() {
	if t.Delay > 0 {
		t.Delay--
	}
	if t.Sound > 0 {
		t.Sound--
	}
}

// Audible reports whether the sound timer is running
func (t Timers) Audible() bool {
	return t.Sound > 0
}
