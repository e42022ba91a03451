package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
)

// FireworkParams holds the creation and flight constants for fireworks.
type FireworkParams struct {
	TrailLength   int
	InitialSpeed  float32
	Acceleration  float32
	HueSwing      float32
	BrightnessMin float32
	BrightnessMax float32
	RadiusMin     float32
	RadiusMax     float32
	RadiusStep    float32
	BurstSize     int
}

// FireworkParamsFromConfig converts the firework config section.
func FireworkParamsFromConfig(c config.FireworkConfig) FireworkParams {
	return FireworkParams{
		TrailLength:   c.TrailLength,
		InitialSpeed:  float32(c.InitialSpeed),
		Acceleration:  float32(c.Acceleration),
		HueSwing:      float32(c.HueSwing),
		BrightnessMin: float32(c.BrightnessMin),
		BrightnessMax: float32(c.BrightnessMax),
		RadiusMin:     float32(c.TargetRadiusMin),
		RadiusMax:     float32(c.TargetRadiusMax),
		RadiusStep:    float32(c.TargetRadiusStep),
		BurstSize:     c.BurstSize,
	}
}

// Firework bundles the components of a firework entity.
type Firework struct {
	Pos    components.Position
	Trail  components.Trail
	Flight components.Flight
	Glow   components.Glow
}

// NewFirework creates a firework at (sx, sy) aimed at (tx, ty).
// Its hue is sampled within the configured swing of hue.
func NewFirework(p FireworkParams, sx, sy, tx, ty, hue float32, rng *rand.Rand) Firework {
	angle := float32(math.Atan2(float64(ty-sy), float64(tx-sx)))

	return Firework{
		Pos:   components.Position{X: sx, Y: sy},
		Trail: NewTrail(sx, sy, p.TrailLength),
		Flight: components.Flight{
			StartX:       sx,
			StartY:       sy,
			TargetX:      tx,
			TargetY:      ty,
			DistToTarget: Distance(sx, sy, tx, ty),
			Angle:        angle,
			Speed:        p.InitialSpeed,
			Acceleration: p.Acceleration,
			TargetRadius: p.RadiusMin,
		},
		Glow: components.Glow{
			Hue:        swing(rng, hue, p.HueSwing),
			Brightness: uniform(rng, p.BrightnessMin, p.BrightnessMax),
			Alpha:      1,
		},
	}
}

// StepFirework advances a firework by one tick and reports whether it reached its target.
// Travel is measured as the direct distance from the launch point to the
// candidate position, so a detonating firework keeps its last committed position.
func StepFirework(pos *components.Position, trail *components.Trail, f *components.Flight, p FireworkParams) bool {
	SlideTrail(trail, pos.X, pos.Y)

	// Sawtooth pulse for the target indicator
	if f.TargetRadius < p.RadiusMax {
		f.TargetRadius += p.RadiusStep
	} else {
		f.TargetRadius = p.RadiusMin
	}

	f.Speed *= f.Acceleration
	vx, vy := polar(f.Angle, f.Speed)

	f.DistTraveled = Distance(f.StartX, f.StartY, pos.X+vx, pos.Y+vy)
	f.Age++

	if f.DistTraveled >= f.DistToTarget {
		return true
	}

	pos.X += vx
	pos.Y += vy
	return false
}
