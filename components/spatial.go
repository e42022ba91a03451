package components

// Position represents an entity's world position.
// World space is center-origin with y pointing up.
type Position struct {
	X, Y float32
}

// Trail holds the last N positions of an entity, most recent first.
// Its length is fixed at creation.
type Trail struct {
	Points []Position
}

// Oldest returns the tail of the trail.
func (t *Trail) Oldest() Position {
	return t.Points[len(t.Points)-1]
}
