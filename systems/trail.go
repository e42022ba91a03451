package systems

import (
	"fmt"

	"github.com/pthm-cable/fireworks/components"
)

// NewTrail returns a trail of n copies of (x, y).
// Panics if n < 1: every trail must have a readable tail.
func NewTrail(x, y float32, n int) components.Trail {
	if n < 1 {
		panic(fmt.Sprintf("systems: trail length must be >= 1, got %d", n))
	}
	points := make([]components.Position, n)
	for i := range points {
		points[i] = components.Position{X: x, Y: y}
	}
	return components.Trail{Points: points}
}

// SlideTrail drops the oldest point and prepends (x, y).
func SlideTrail(t *components.Trail, x, y float32) {
	copy(t.Points[1:], t.Points[:len(t.Points)-1])
	t.Points[0] = components.Position{X: x, Y: y}
}
