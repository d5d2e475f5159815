package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/config"
	"github.com/mnafees/chopper/v2/pkg/ebiten"
	"github.com/mnafees/chopper/v2/pkg/host"
	"github.com/mnafees/chopper/v2/pkg/otoaudio"
	"github.com/mnafees/chopper/v2/pkg/tone"
)

func main() {
	opts, err := config.Parse("chopper-ebiten", os.Args[1:])
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

	var sink tone.Sink
	if !opts.Mute {
		player, err := otoaudio.New()
		if err != nil {
			logger.Logf("ebiten", "no audio: %v", err)
		} else {
			defer func() { _ = player.Close() }()
			sink = player
		}
	}

	game := ebiten.New(vm, sink, opts.Scale, opts.Hz)
	return game.Run("Chopper | CHIP-8 Emulator")
}
