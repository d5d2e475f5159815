package main

// Follows the CHIP-8 technical reference found at http://devernay.free.fr/hacks/chip8/C8TECH10.HTM

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/config"
	"github.com/mnafees/chopper/v2/pkg/host"
	"github.com/mnafees/chopper/v2/pkg/tone"
	"github.com/mnafees/chopper/v2/pkg/wavrec"
)

func main() {
	opts, err := config.Parse("chopper", os.Args[1:])
	if err != nil {
		var usage *config.UsageError
		if errors.As(err, &usage) {
			usage.ShowUsage(os.Stderr)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if opts.Version {
		fmt.Printf("version: %s\n", config.Version())
		return
	}

	if err := run(os.Stdout, opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Tail(os.Stderr, 10)
		os.Exit(1)
	}
}

// run executes the program for opts.Cycles cycles without a display and
// prints the final screen and registers to w
func run(w io.Writer, opts config.Options) (err error) {
	vm, err := host.Boot(opts)
	if err != nil {
		return err
	}

	var sink tone.Sink
	var rec *wavrec.Recorder
	if opts.Wav != "" {
		rec, err = wavrec.Create(opts.Wav)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := rec.Close(); err == nil {
				err = cerr
			}
		}()
		sink = rec
	}

	fe := &host.Headless{}
	h := host.New(vm, fe, sink)
	if rec != nil {
		samples := wavrec.SamplesPerCycle(opts.Hz)
		h.OnCycle(func() error {
			return rec.Advance(samples)
		})
	}

	for h.Cycles() < uint64(opts.Cycles) {
		if err = h.Step(); err != nil {
			break
		}
	}

	fb := vm.Pixels()
	fmt.Fprintln(w, fb.String())
	fmt.Fprint(w, vm.String())
	fmt.Fprintf(w, "%d cycles, %d frames\n", h.Cycles(), fe.Frames)
	return err
}
