package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

// ParticleParams holds the creation constants for burst particles.
type ParticleParams struct {
	TrailLength   int
	SpeedMin      float32
	SpeedMax      float32
	Friction      float32
	Gravity       float32
	HueSwing      float32
	BrightnessMin float32
	BrightnessMax float32
	DecayMin      float32
	DecayMax      float32
}

// ParticleParamsFromConfig converts the particle config section.
func ParticleParamsFromConfig(c config.ParticleConfig) ParticleParams {
	return ParticleParams{
		TrailLength:   c.TrailLength,
		SpeedMin:      float32(c.SpeedMin),
		SpeedMax:      float32(c.SpeedMax),
		Friction:      float32(c.Friction),
		Gravity:       float32(c.Gravity),
		HueSwing:      float32(c.HueSwing),
		BrightnessMin: float32(c.BrightnessMin),
		BrightnessMax: float32(c.BrightnessMax),
		DecayMin:      float32(c.DecayMin),
		DecayMax:      float32(c.DecayMax),
	}
}

// Particle bundles the components of a burst particle entity.
type Particle struct {
	Pos   components.Position
	Trail components.Trail
	Spark components.Spark
	Glow  components.Glow
}

// NewParticle creates a particle at (x, y) heading in a uniformly random direction.
func NewParticle(p ParticleParams, x, y, hue float32, rng *rand.Rand) Particle {
	angle := rng.Float32() * 2 * math.Pi
	speed := uniform(rng, p.SpeedMin, p.SpeedMax)
	h := swing(rng, hue, p.HueSwing)
	brightness := uniform(rng, p.BrightnessMin, p.BrightnessMax)
	decay := uniform(rng, p.DecayMin, p.DecayMax)

	return Particle{
		Pos:   components.Position{X: x, Y: y},
		Trail: NewTrail(x, y, p.TrailLength),
		Spark: components.Spark{
			Angle:    angle,
			Speed:    speed,
			Friction: p.Friction,
			Gravity:  p.Gravity,
			Decay:    decay,
		},
		Glow: components.Glow{
			Hue:        h,
			Brightness: brightness,
			Alpha:      1,
		},
	}
}

// Burst creates count particles centered on (x, y).
func Burst(p ParticleParams, x, y float32, count int, hue float32, rng *rand.Rand) []Particle {
	if count <= 0 {
		return nil
	}
	out := make([]Particle, count)
	for i := range out {
		out[i] = NewParticle(p, x, y, hue, rng)
	}
	return out
}

// StepParticle advances a particle by one tick and reports whether it has faded out.
// A particle expires once its alpha is at or below its own decay rate.
func StepParticle(pos *components.Position, trail *components.Trail, s *components.Spark, g *components.Glow) bool {
	SlideTrail(trail, pos.X, pos.Y)

	s.Speed *= s.Friction

	vx, vy := polar(s.Angle, s.Speed)
	pos.X += vx
	pos.Y += vy - s.Gravity

	g.Alpha -= s.Decay
	s.Age++

	return g.Alpha <= s.Decay
}
