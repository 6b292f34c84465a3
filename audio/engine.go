// Package audio voices the range: gunshots, hit chimes and register
// dings, all synthesized so there are no sample assets to ship.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/dosmond/terminal-coffee-range/events"
)

const sampleRate = beep.SampleRate(44100)

// Engine owns the speaker and a mixer of one-shot effect streamers.
// Failure to open the audio device is non-fatal; the game runs silent.
type Engine struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewEngine creates a silent engine; Start opens the device.
func NewEngine() *Engine {
	return &Engine{mixer: &beep.Mixer{}}
}

// Start initializes the speaker and begins mixing.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(e.mixer)
	e.initialized = true
	return nil
}

// Stop tears the speaker down.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	e.initialized = false
}

// ToggleMute flips the mute state and reports the new value.
func (e *Engine) ToggleMute() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.muted = !e.muted
	return e.muted
}

// play mixes a one-shot streamer, dropping it when muted or uninitialized.
func (e *Engine) play(s beep.Streamer) {
	e.mu.Lock()
	initialized, muted := e.initialized, e.muted
	e.mu.Unlock()
	if !initialized || muted {
		return
	}
	speaker.Lock()
	e.mixer.Add(s)
	speaker.Unlock()
}

// HandleEvent voices one game event. Called by the frame loop for every
// drained event; unknown types are silent.
func (e *Engine) HandleEvent(ev events.Event) {
	switch ev.Type {
	case events.ShotFired:
		e.play(gunshot(sampleRate))
	case events.TargetHit:
		e.play(hitChime(sampleRate))
	case events.TargetMiss:
		e.play(missThud(sampleRate))
	case events.ItemAdded, events.SubscriptionAdded:
		e.play(cashRegister(sampleRate))
	case events.ItemRemoved:
		e.play(missThud(sampleRate))
	case events.DuplicateSubscription:
		e.play(errorBuzz(sampleRate))
	case events.CartCleared:
		e.play(missThud(sampleRate))
	}
}
