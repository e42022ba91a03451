package telemetry

// Collector accumulates events within time windows and produces WindowStats.
// All methods are safe to call on a nil *Collector.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	// Event counters for current window
	autoLaunches     int
	manualLaunches   int
	detonations      int
	particlesSpawned int
	particlesExpired int
	peakParticles    int

	// Samples for distribution stats
	flightTicks []float64
	lifetimes   []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec/float64(dt) + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int32 {
	if c == nil {
		return 0
	}
	return c.windowDurationTicks
}

// RecordLaunch records a firework launch.
func (c *Collector) RecordLaunch(manual bool) {
	if c == nil {
		return
	}
	if manual {
		c.manualLaunches++
	} else {
		c.autoLaunches++
	}
}

// RecordDetonation records a detonation after the given number of ticks in flight.
func (c *Collector) RecordDetonation(flightTicks int32) {
	if c == nil {
		return
	}
	c.detonations++
	c.flightTicks = append(c.flightTicks, float64(flightTicks))
}

// RecordParticles records n newly created particles.
func (c *Collector) RecordParticles(n int) {
	if c == nil {
		return
	}
	c.particlesSpawned += n
}

// RecordExpiry records a particle fading out after lifetime ticks.
func (c *Collector) RecordExpiry(lifetime int32) {
	if c == nil {
		return
	}
	c.particlesExpired++
	c.lifetimes = append(c.lifetimes, float64(lifetime))
}

// ObservePopulation tracks the peak live particle count within the window.
func (c *Collector) ObservePopulation(particles int) {
	if c == nil {
		return
	}
	if particles > c.peakParticles {
		c.peakParticles = particles
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	if c == nil {
		return false
	}
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, liveFireworks, liveParticles int) WindowStats {
	if c == nil {
		return WindowStats{}
	}

	flight := Summarize(c.flightTicks)
	life := Summarize(c.lifetimes)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		Fireworks:     liveFireworks,
		Particles:     liveParticles,
		PeakParticles: max(c.peakParticles, liveParticles),

		AutoLaunches:     c.autoLaunches,
		ManualLaunches:   c.manualLaunches,
		Detonations:      c.detonations,
		ParticlesSpawned: c.particlesSpawned,
		ParticlesExpired: c.particlesExpired,

		FlightMean: flight.Mean,
		FlightP50:  flight.P50,
		FlightP90:  flight.P90,

		LifetimeMean: life.Mean,
		LifetimeStd:  life.Std,
		LifetimeP10:  life.P10,
		LifetimeP50:  life.P50,
		LifetimeP90:  life.P90,
	}

	c.reset(currentTick)
	return stats
}

func (c *Collector) reset(tick int32) {
	c.windowStartTick = tick
	c.autoLaunches = 0
	c.manualLaunches = 0
	c.detonations = 0
	c.particlesSpawned = 0
	c.particlesExpired = 0
	c.peakParticles = 0
	c.flightTicks = c.flightTicks[:0]
	c.lifetimes = c.lifetimes[:0]
}
