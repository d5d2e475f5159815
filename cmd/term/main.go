package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/config"
	"github.com/mnafees/chopper/v2/pkg/host"
	"github.com/mnafees/chopper/v2/pkg/term"
	"github.com/mnafees/chopper/v2/pkg/tone"
	"github.com/mnafees/chopper/v2/pkg/wavrec"
)

func main() {
	opts, err := config.Parse("chopper-term", os.Args[1:])
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

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Tail(os.Stderr, 10)
		os.Exit(1)
	}
}

func run(opts config.Options) (err error) {
	// the terminal is in raw mode while running, so the log must not be
	// echoed to it
	debug := opts.Debug
	opts.Debug = false

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	t := term.New(os.Stdin, os.Stdout, opts.Hz)
	if err := t.Start(); err != nil {
		return err
	}
	defer func() {
		t.Stop()
		if debug {
			logger.Write(os.Stderr)
		}
	}()

	h := host.New(vm, t, sink)
	samples := wavrec.SamplesPerCycle(opts.Hz)
	h.OnCycle(func() error {
		if t.PauseRequested() {
			h.SetPaused(!h.Paused())
		}
		if rec != nil && !h.Paused() {
			return rec.Advance(samples)
		}
		return nil
	})
	return h.Run(ctx, opts.Hz)
}
