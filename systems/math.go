package systems

import (
	"math"
	"math/rand"
)

// Distance returns the Euclidean distance between two points.
func Distance(x1, y1, x2, y2 float32) float32 {
	dx := float64(x2 - x1)
	dy := float64(y2 - y1)
	return float32(math.Sqrt(dx*dx + dy*dy))
}

// uniform samples a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float32) float32 {
	return lo + rng.Float32()*(hi-lo)
}

// swing samples a value within +-spread of center.
func swing(rng *rand.Rand, center, spread float32) float32 {
	return uniform(rng, center-spread, center+spread)
}

// polar returns the x/y components of a vector with the given angle and length.
func polar(angle, length float32) (float32, float32) {
	a := float64(angle)
	return float32(math.Cos(a)) * length, float32(math.Sin(a)) * length
}
