// Package host runs the cycle loop around a CHIP-8 VM: it gathers input from
// a frontend, executes one cycle, hands the framebuffer to the frontend when
// it changed and passes the sound timer's level on to the audio sink.
package host

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/pkg/tone"
)

// ErrQuit is returned by Step when the frontend asked to quit
var ErrQuit = errors.New("quit requested")

// Frontend is the display and input side of a host
type Frontend interface {
	// Poll returns the keypad state for the next cycle and whether the user
	// asked to quit
	Poll() (internal.Input, bool)

	// Render is called with the framebuffer after a cycle that changed it
	Render(fb internal.Framebuffer) error
}

// Host owns a VM and drives it
type Host struct {
	vm     *internal.C8VM
	fe     Frontend
	beeper *tone.Beeper

	paused  bool
	cycles  uint64
	onCycle func() error
}

// New returns a Host. sink may be nil.
func New(vm *internal.C8VM, fe Frontend, sink tone.Sink) *Host {
	return &Host{
		vm:     vm,
		fe:     fe,
		beeper: tone.NewBeeper(sink),
	}
}

// OnCycle installs a function called at the end of every Step, paused or
// not. An error from it stops Run.
func (h *Host) OnCycle(fn func() error) {
	h.onCycle = fn
}

// SetPaused stops or resumes execution. A paused host keeps polling and
// rendering.
func (h *Host) SetPaused(paused bool) {
	h.paused = paused
}

// Paused reports whether execution is paused
func (h *Host) Paused() bool {
	return h.paused
}

// Cycles returns the number of executed cycles
func (h *Host) Cycles() uint64 {
	return h.cycles
}

// VM returns the machine being driven
func (h *Host) VM() *internal.C8VM {
	return h.vm
}

// Step polls input, runs one cycle, renders if needed and updates the beeper
func (h *Host) Step() error {
	in, quit := h.fe.Poll()
	if quit {
		return ErrQuit
	}

	if !h.paused {
		if err := h.vm.Cycle(in); err != nil {
			h.beeper.Update(false)
			return err
		}
		h.cycles++
	}

	if h.vm.DrawFlag() {
		if err := h.fe.Render(h.vm.Pixels()); err != nil {
			return fmt.Errorf("render: %w", err)
		}
		h.vm.UnsetDrawFlag()
	}

	h.beeper.Update(!h.paused && h.vm.Audible())

	if h.onCycle != nil {
		return h.onCycle()
	}
	return nil
}

// Run calls Step hz times a second until ctx is cancelled, the frontend
// quits or the VM fails. An hz of 0 runs as fast as possible. Only a VM or
// frontend failure is returned as an error.
func (h *Host) Run(ctx context.Context, hz int) error {
	defer h.beeper.Update(false)

	var tick <-chan time.Time
	if hz > 0 {
		interval := time.Second / time.Duration(hz)
		if interval < 1 {
			interval = 1
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if tick != nil {
			select {
			case <-ctx.Done():
				return nil
			case <-tick:
			}
		} else if ctx.Err() != nil {
			return nil
		}

		if err := h.Step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return nil
			}
			return err
		}
	}
}
