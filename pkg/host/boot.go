package host

import (
	"fmt"
	"os"

	"github.com/mnafees/chopper/v2/internal"
	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/config"
)

// Boot prepares the logger and a VM with the program named by opts loaded
func Boot(opts config.Options) (*internal.C8VM, error) {
	if opts.Debug {
		logger.SetEcho(os.Stderr)
	}

	vm, err := internal.NewC8VM()
	if err != nil {
		return nil, fmt.Errorf("creating VM: %w", err)
	}
	if opts.Trace {
		vm.SetTracer(func(pc, opcode uint16) {
			logger.Logf("chip8", "executing: 0x%04X at 0x%03X", opcode, pc)
		})
	}
	if err := vm.LoadProgram(opts.ROM); err != nil {
		return nil, err
	}
	return vm, nil
}

// Headless is a frontend with no display and no keyboard. It counts the
// frames it is asked to render.
type Headless struct {
	Frames int
}

// Poll implements the Frontend interface
func (h *Headless) Poll() (internal.Input, bool) {
	return internal.Input{}, false
}

// Render implements the Frontend interface
func (h *Headless) Render(internal.Framebuffer) error {
	h.Frames++
	return nil
}
