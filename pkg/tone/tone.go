// Package tone synthesises the single beep of the CHIP-8 sound timer and
// turns the timer's audible level into start/stop calls on an audio sink.
package tone

import (
	"encoding/binary"
	"math"
)

// Default tone parameters
const (
	SampleRate = 44100
	Frequency  = 440.0
	Volume     = 0.25
)

// SquareWave is a mono square wave generator
type SquareWave struct {
	phaseInc float32
	phase    float32
	volume   float32
}

// NewSquareWave returns the default 440 Hz tone at the given sample rate
func NewSquareWave(sampleRate int) *SquareWave {
	return &SquareWave{
		phaseInc: float32(Frequency / float64(sampleRate)),
		volume:   Volume,
	}
}

// Next returns the next sample in the range [-volume, volume]
func (sw *SquareWave) Next() float32 {
	v := -sw.volume
	if sw.phase <= 0.5 {
		v = sw.volume
	}
	sw.phase += sw.phaseInc
	if sw.phase >= 1 {
		sw.phase -= 1
	}
	return v
}

// Read implements io.Reader, producing float32 little endian samples. Partial
// samples at the end of p are left as silence.
func (sw *SquareWave) Read(p []byte) (int, error) {
	n := len(p) / 4
	for i := 0; i < n; i++ {
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sw.Next()))
	}
	for i := n * 4; i < len(p); i++ {
		p[i] = 0
	}
	return len(p), nil
}

// FillU8 fills buf with unsigned 8 bit samples centred on silence
func (sw *SquareWave) FillU8(buf []uint8, silence uint8) {
	for i := range buf {
		buf[i] = uint8(int(silence) + int(sw.Next()*127))
	}
}

// Int16 returns the next sample scaled to a signed 16 bit value
func (sw *SquareWave) Int16() int {
	return int(sw.Next() * math.MaxInt16)
}
