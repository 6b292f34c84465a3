package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves.
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// newOscillator creates an oscillator for wave generation.
func newOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return &oscillator{
		freq:     freq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// newEnvelope creates a simplified attack/sustain/release envelope.
func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps a streamer with a log-scaled volume effect.
// math.Log2(0) is -Inf, so zero volume is handled by silencing.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// Effect streamers. Each call builds a fresh one-shot streamer.

// gunshot: a hard noise burst with a fast decay.
func gunshot(rate beep.SampleRate) beep.Streamer {
	const dur = 120 * time.Millisecond
	osc := newOscillator(0, dur, WaveNoise, rate)
	shaped := newEnvelope(osc, dur, time.Millisecond, 100*time.Millisecond, rate)
	return newVolume(shaped, 0.6)
}

// hitChime: a short bright ding for a registered hit.
func hitChime(rate beep.SampleRate) beep.Streamer {
	const dur = 150 * time.Millisecond
	osc := newOscillator(1320.0, dur, WaveSine, rate)
	shaped := newEnvelope(osc, dur, 5*time.Millisecond, 120*time.Millisecond, rate)
	return newVolume(shaped, 0.5)
}

// missThud: a low dull tone for a shot that found nothing.
func missThud(rate beep.SampleRate) beep.Streamer {
	const dur = 100 * time.Millisecond
	osc := newOscillator(110.0, dur, WaveSine, rate)
	shaped := newEnvelope(osc, dur, 2*time.Millisecond, 80*time.Millisecond, rate)
	return newVolume(shaped, 0.4)
}

// errorBuzz: a harsh saw for duplicate subscriptions and other rejections.
func errorBuzz(rate beep.SampleRate) beep.Streamer {
	const dur = 180 * time.Millisecond
	osc := newOscillator(100.0, dur, WaveSaw, rate)
	shaped := newEnvelope(osc, dur, 2*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(shaped, 0.35)
}

// cashRegister: two quick ascending dings for a cart add.
func cashRegister(rate beep.SampleRate) beep.Streamer {
	const dur = 90 * time.Millisecond
	first := newEnvelope(newOscillator(880.0, dur, WaveSine, rate), dur, 2*time.Millisecond, 60*time.Millisecond, rate)
	second := newEnvelope(newOscillator(1760.0, dur, WaveSine, rate), dur, 2*time.Millisecond, 60*time.Millisecond, rate)
	return newVolume(beep.Seq(first, second), 0.5)
}
