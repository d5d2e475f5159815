// Package config parses the command line shared by every chopper binary
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

// Defaults
const (
	DefaultScale  = 20
	DefaultHz     = 500
	DefaultCycles = 1000

	// MaxHz is the fastest throttled rate; -hz 0 runs unthrottled instead
	MaxHz = 1000000
)

// Options holds the parsed command line
type Options struct {
	ROM string

	Scale  int
	Hz     int
	Cycles int
	Wav    string

	Debug   bool
	Trace   bool
	Mute    bool
	Version bool
}

// UsageError is returned when the command line cannot be used
type UsageError struct {
	Usage string
	flags *flag.FlagSet
	err   error
}

func (e *UsageError) Error() string {
	if e.err != nil {
		return e.err.Error()
	}
	return "usage: " + e.Usage
}

func (e *UsageError) Unwrap() error {
	return e.err
}

// ShowUsage writes the usage line and flag defaults to w
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s\n\n", e.Usage)
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

// Parse parses args (without the program name) for the binary called name
func Parse(name string, args []string) (Options, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	opts := Options{}
	flags.IntVar(&opts.Scale, "scale", DefaultScale, "size of one CHIP-8 pixel in screen pixels")
	flags.IntVar(&opts.Hz, "hz", DefaultHz, "cycles per second, 0 runs unthrottled")
	flags.IntVar(&opts.Cycles, "cycles", DefaultCycles, "number of cycles to run when headless")
	flags.StringVar(&opts.Wav, "wav", "", "record the beeper to a WAV file")
	flags.BoolVar(&opts.Debug, "debug", false, "echo the log to stderr")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&opts.Mute, "mute", false, "do not open an audio device")
	flags.BoolVar(&opts.Version, "version", false, "print the version and exit")

	usage := &UsageError{Usage: name + " [options] <CHIP-8 program>", flags: flags}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return opts, usage
		}
		usage.err = err
		return opts, usage
	}
	if opts.Version {
		return opts, nil
	}

	rest := flags.Args()
	if len(rest) != 1 {
		return opts, usage
	}
	opts.ROM = rest[0]

	switch {
	case opts.Scale < 1:
		usage.err = fmt.Errorf("invalid scale %d", opts.Scale)
	case opts.Hz < 0 || opts.Hz > MaxHz:
		usage.err = fmt.Errorf("invalid hz %d", opts.Hz)
	case opts.Cycles < 0:
		usage.err = fmt.Errorf("invalid cycle count %d", opts.Cycles)
	}
	if usage.err != nil {
		return opts, usage
	}
	return opts, nil
}
