package tone

// Sink is anything that can play and silence the tone
type Sink interface {
	Start()
	Stop()
}

// Beeper forwards changes in the sound timer's audible level to a Sink
type Beeper struct {
	sink    Sink
	playing bool
}

// NewBeeper returns a Beeper for sink. A nil sink is silent.
func NewBeeper(sink Sink) *Beeper {
	return &Beeper{sink: sink}
}

// Update is called once per cycle with the current audible level. The sink
// only sees the edges.
func (b *Beeper) Update(audible bool) {
	if audible == b.playing {
		return
	}
	b.playing = audible
	if b.sink == nil {
		return
	}
	if audible {
		b.sink.Start()
	} else {
		b.sink.Stop()
	}
}

// Playing reports the last level passed to Update
func (b *Beeper) Playing() bool {
	return b.playing
}
