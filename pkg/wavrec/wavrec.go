// Package wavrec records the beeper to a WAV file. It implements tone.Sink
// so it can stand in for a sound device when running without one. Samples
// are only produced when the host advances the recorder, which ties the
// length of the recording to the number of executed cycles rather than to
// wall clock time.
package wavrec

import (
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/tone"
)

const (
	bitDepth  = 16
	wavFormat = 1 // PCM
)

// Recorder implements the tone.Sink interface
type Recorder struct {
	enc     *wav.Encoder
	closer  io.Closer
	wave    *tone.SquareWave
	playing bool
	buf     *audio.IntBuffer
	written int
}

// New returns a Recorder writing to w. Close must be called to finish the
// WAV header.
func New(w io.WriteSeeker) *Recorder {
	return &Recorder{
		enc:  wav.NewEncoder(w, tone.SampleRate, bitDepth, 1, wavFormat),
		wave: tone.NewSquareWave(tone.SampleRate),
		buf: &audio.IntBuffer{
			Format:         &audio.Format{NumChannels: 1, SampleRate: tone.SampleRate},
			SourceBitDepth: bitDepth,
		},
	}
}

// Create returns a Recorder writing to a new file
func Create(filename string) (*Recorder, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("wavrec: %w", err)
	}
	r := New(f)
	r.closer = f
	return r, nil
}

// Start implements the tone.Sink interface
func (r *Recorder) Start() {
	r.playing = true
}

// Stop implements the tone.Sink interface
func (r *Recorder) Stop() {
	r.playing = false
}

// Advance appends n samples of tone or silence, depending on the last
// Start/Stop call
func (r *Recorder) Advance(n int) error {
	if n <= 0 {
		return nil
	}
	if cap(r.buf.Data) < n {
		r.buf.Data = make([]int, n)
	}
	r.buf.Data = r.buf.Data[:n]
	for i := range r.buf.Data {
		if r.playing {
			r.buf.Data[i] = r.wave.Int16()
		} else {
			r.buf.Data[i] = 0
		}
	}
	if err := r.enc.Write(r.buf); err != nil {
		return fmt.Errorf("wavrec: %w", err)
	}
	r.written += n
	return nil
}

// Samples returns the number of samples written so far
func (r *Recorder) Samples() int {
	return r.written
}

// Close finishes the WAV file
func (r *Recorder) Close() error {
	err := r.enc.Close()
	if r.closer != nil {
		if cerr := r.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("wavrec: %w", err)
	}
	logger.Logf("wavrec", "wrote %d samples", r.written)
	return nil
}

// SamplesPerCycle returns how many samples cover one cycle at hz cycles per
// second. An hz of zero or less counts as one cycle per sample.
func SamplesPerCycle(hz int) int {
	if hz <= 0 || hz >= tone.SampleRate {
		return 1
	}
	return tone.SampleRate / hz
}
