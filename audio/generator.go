package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// whistle is a sine sweep with a linear fade, the sound of a rising shell.
type whistle struct {
	rate      beep.SampleRate
	startFreq float64
	endFreq   float64
	total     int
	position  int
	phase     float64
}

// NewWhistle creates a sine sweep from startFreq to endFreq over duration.
func NewWhistle(rate beep.SampleRate, startFreq, endFreq float64, duration time.Duration) beep.Streamer {
	return &whistle{
		rate:      rate,
		startFreq: startFreq,
		endFreq:   endFreq,
		total:     rate.N(duration),
	}
}

func (w *whistle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if w.position >= w.total {
			return i, i > 0
		}

		t := float64(w.position) / float64(w.total)
		freq := w.startFreq + (w.endFreq-w.startFreq)*t

		// Short attack, then fade out over the sweep
		vol := 1 - t
		if attack := 0.05; t < attack {
			vol = t / attack
		}

		val := math.Sin(2*math.Pi*w.phase) * vol
		samples[i][0] = val
		samples[i][1] = val

		w.phase += freq / float64(w.rate)
		w.phase -= math.Floor(w.phase)
		w.position++
	}
	return len(samples), true
}

func (w *whistle) Err() error { return nil }

// crackle is a noise burst whose amplitude decays exponentially, with
// occasional louder pops layered on top.
type crackle struct {
	rng      *rand.Rand
	total    int
	position int
	decay    float64 // amplitude multiplier per sample
	amp      float64
	popProb  float64
	popAmp   float64
}

// NewCrackle creates a decaying noise burst lasting duration.
// The amplitude falls to about 1% by the end.
func NewCrackle(rate beep.SampleRate, duration time.Duration, rng *rand.Rand) beep.Streamer {
	total := rate.N(duration)
	if total < 1 {
		total = 1
	}
	return &crackle{
		rng:     rng,
		total:   total,
		decay:   math.Pow(0.01, 1/float64(total)),
		amp:     1,
		popProb: 2000 / float64(rate), // about 2000 pops per second at the start
	}
}

func (c *crackle) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if c.position >= c.total {
			return i, i > 0
		}

		val := (c.rng.Float64()*2 - 1) * c.amp * 0.4
		if c.rng.Float64() < c.popProb*c.amp {
			c.popAmp = c.amp
		}
		val += c.popAmp * (c.rng.Float64()*2 - 1) * 0.6
		c.popAmp *= 0.9

		samples[i][0] = val
		samples[i][1] = val

		c.amp *= c.decay
		c.position++
	}
	return len(samples), true
}

func (c *crackle) Err() error { return nil }

// newVolume wraps s in a linear volume control.
// math.Log2(0) is -Inf, so zero or negative volume is silent.
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
