package sdl

import (
	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/tone"
	"github.com/veandco/go-sdl2/sdl"
)

// the number of samples queued in one go. short enough that the tone stops
// promptly, long enough that Feed() is not needed every cycle
const bufferLength = 512

// Audio plays the beeper through an SDL audio queue. It implements
// tone.Sink.
type Audio struct {
	id      sdl.AudioDeviceID
	spec    sdl.AudioSpec
	wave    *tone.SquareWave
	buffer  []uint8
	playing bool
}

// NewAudio opens the default audio device
func NewAudio() (*Audio, error) {
	spec := &sdl.AudioSpec{
		Freq:     tone.SampleRate,
		Format:   sdl.AUDIO_U8,
		Channels: 1,
		Samples:  bufferLength,
	}

	aud := &Audio{
		buffer: make([]uint8, bufferLength),
	}

	var err error
	aud.id, err = sdl.OpenAudioDevice("", false, spec, &aud.spec, 0)
	if err != nil {
		return nil, err
	}
	aud.wave = tone.NewSquareWave(int(aud.spec.Freq))
	logger.Logf("sdl", "audio device opened at %d Hz", aud.spec.Freq)

	return aud, nil
}

// Start implements the tone.Sink interface
func (aud *Audio) Start() {
	aud.playing = true
	sdl.PauseAudioDevice(aud.id, false)
}

// Stop implements the tone.Sink interface
func (aud *Audio) Stop() {
	aud.playing = false
	sdl.ClearQueuedAudio(aud.id)
	sdl.PauseAudioDevice(aud.id, true)
}

// Feed keeps at least two buffers of tone queued while playing. It is
// called from the event loop.
func (aud *Audio) Feed() error {
	if !aud.playing {
		return nil
	}
	for sdl.GetQueuedAudioSize(aud.id) < 2*bufferLength {
		aud.wave.FillU8(aud.buffer, aud.spec.Silence)
		if err := sdl.QueueAudio(aud.id, aud.buffer); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the audio device
func (aud *Audio) Close() {
	sdl.CloseAudioDevice(aud.id)
}
