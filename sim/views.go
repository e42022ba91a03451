package sim

import (
	"cmp"
	"slices"

	"github.com/pthm-cable/fireworks/components"
)

// FireworkView is a read-only snapshot of a live firework.
// Trail aliases the entity's buffer and is only valid until the next tick.
type FireworkView struct {
	Seq              uint64
	X, Y             float32
	Trail            []components.Position
	LaunchX, LaunchY float32
	TargetX, TargetY float32
	TargetRadius     float32
	Hue, Brightness  float32
	Speed            float32
}

// ParticleView is a read-only snapshot of a live particle.
// Trail aliases the entity's buffer and is only valid until the next tick.
type ParticleView struct {
	Seq             uint64
	X, Y            float32
	Trail           []components.Position
	Hue, Brightness float32
	Alpha           float32
	Speed, Decay    float32
}

// Fireworks returns the live fireworks in creation order.
func (w *World) Fireworks() []FireworkView {
	return w.AppendFireworks(make([]FireworkView, 0, w.numFireworks))
}

// AppendFireworks appends the live fireworks in creation order to dst.
func (w *World) AppendFireworks(dst []FireworkView) []FireworkView {
	start := len(dst)
	query := w.fireworkFilter.Query()
	for query.Next() {
		pos, trail, flight, glow, seq := query.Get()
		dst = append(dst, FireworkView{
			Seq:          seq.N,
			X:            pos.X,
			Y:            pos.Y,
			Trail:        trail.Points,
			LaunchX:      flight.StartX,
			LaunchY:      flight.StartY,
			TargetX:      flight.TargetX,
			TargetY:      flight.TargetY,
			TargetRadius: flight.TargetRadius,
			Hue:          glow.Hue,
			Brightness:   glow.Brightness,
			Speed:        flight.Speed,
		})
	}
	slices.SortFunc(dst[start:], func(a, b FireworkView) int { return cmp.Compare(a.Seq, b.Seq) })
	return dst
}

// Particles returns the live particles in creation order.
func (w *World) Particles() []ParticleView {
	return w.AppendParticles(make([]ParticleView, 0, w.numParticles))
}

// AppendParticles appends the live particles in creation order to dst.
func (w *World) AppendParticles(dst []ParticleView) []ParticleView {
	start := len(dst)
	query := w.particleFilter.Query()
	for query.Next() {
		pos, trail, spark, glow, seq := query.Get()
		dst = append(dst, ParticleView{
			Seq:        seq.N,
			X:          pos.X,
			Y:          pos.Y,
			Trail:      trail.Points,
			Hue:        glow.Hue,
			Brightness: glow.Brightness,
			Alpha:      glow.Alpha,
			Speed:      spark.Speed,
			Decay:      spark.Decay,
		})
	}
	slices.SortFunc(dst[start:], func(a, b ParticleView) int { return cmp.Compare(a.Seq, b.Seq) })
	return dst
}
