// Package otoaudio plays the beeper through an oto audio context
package otoaudio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/mnafees/chopper/v2/internal/logger"
	"github.com/mnafees/chopper/v2/pkg/tone"
)

// Player implements the tone.Sink interface
type Player struct {
	ctx     *oto.Context
	player  *oto.Player
	mutex   sync.Mutex
	started bool
}

// New opens the default audio device. Only one oto context may exist per
// process.
func New() (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   tone.SampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("otoaudio: %w", err)
	}
	<-ready

	p := &Player{ctx: ctx}
	p.player = ctx.NewPlayer(tone.NewSquareWave(tone.SampleRate))
	logger.Logf("otoaudio", "audio device opened at %d Hz", tone.SampleRate)
	return p, nil
}

// Start implements the tone.Sink interface
func (p *Player) Start() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.started && p.player != nil {
		p.player.Play()
		p.started = true
	}
}

// Stop implements the tone.Sink interface
func (p *Player) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.started && p.player != nil {
		p.player.Pause()
		p.started = false
	}
}

// IsStarted reports whether the tone is playing
func (p *Player) IsStarted() bool {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	return p.started
}

// Close releases the player
func (p *Player) Close() error {
	p.Stop()
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.player == nil {
		return nil
	}
	err := p.player.Close()
	p.player = nil
	return err
}
