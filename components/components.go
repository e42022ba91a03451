// Package components defines ECS components for the simulation.
package components

// Flight holds the state of a firework travelling from its launch point to its target.
type Flight struct {
	StartX, StartY   float32
	TargetX, TargetY float32

	DistToTarget float32 // Launch-to-target distance, fixed at creation
	DistTraveled float32 // Launch-to-candidate distance from the last step

	Angle        float32 // radians, fixed at creation
	Speed        float32
	Acceleration float32 // multiplicative per tick

	TargetRadius float32 // pulsing indicator radius, render-only
	Age          int32   // ticks in flight
}

// Spark holds the motion and fade state of a burst particle.
type Spark struct {
	Angle    float32 // radians, fixed at creation
	Speed    float32
	Friction float32
	Gravity  float32
	Decay    float32 // alpha lost per tick
	Age      int32
}

// Glow holds the colour of an entity in HSLA terms.
// Hue is a fraction of the colour wheel and is not wrapped.
type Glow struct {
	Hue        float32
	Brightness float32
	Alpha      float32
}

// Seq orders live entities by creation.
type Seq struct {
	N uint64
}
