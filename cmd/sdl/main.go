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
	"github.com/mnafees/chopper/v2/pkg/sdl"
)

func main() {
	opts, err := config.Parse("chopper-sdl", os.Args[1:])
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

func run(opts config.Options) error {
	vm, err := host.Boot(opts)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	io := sdl.NewIO(opts.Scale)
	defer io.Destroy()
	if err := io.SetupWindow("Chopper | CHIP-8 Emulator", !opts.Mute); err != nil {
		return err
	}
	return io.Loop(ctx, vm, opts.Hz)
}
