package systems

import "math/rand"

// Spawner counts ticks towards the next automatic launch.
type Spawner struct {
	Cadence int
	Counter int
}

// Advance reports whether a launch is due this tick.
// The counter resets when a launch is due and increments otherwise.
func (s *Spawner) Advance() bool {
	if s.Counter >= s.Cadence {
		s.Counter = 0
		return true
	}
	s.Counter++
	return false
}

// LaunchPoint returns the bottom-center of a w x h viewport in world space.
func LaunchPoint(w, h float32) (float32, float32) {
	return 0, -h / 2
}

// RandomTarget samples a target in the upper part of the viewport.
// x is uniform within the central band (a fraction of w), y within the top fraction of h.
func RandomTarget(rng *rand.Rand, w, h, band, top float32) (float32, float32) {
	halfBand := w * band / 2
	x := uniform(rng, -halfBand, halfBand)
	y := uniform(rng, h/2-h*top, h/2)
	return x, y
}
