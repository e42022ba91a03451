package telemetry

import "testing"

func TestCollector_WindowTicks(t *testing.T) {
	c := NewCollector(5.0, 1.0/60.0)
	if got := c.WindowTicks(); got != 300 {
		t.Errorf("WindowTicks() = %d, want 300", got)
	}

	if got := NewCollector(0, 1.0/60.0).WindowTicks(); got != 1 {
		t.Errorf("zero-length window = %d ticks, want 1", got)
	}
}

func TestCollector_ShouldFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 ticks

	if c.ShouldFlush(9) {
		t.Error("should not flush before window end")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at window end")
	}

	c.Flush(10, 0, 0)
	if c.ShouldFlush(19) {
		t.Error("window should restart at the flush tick")
	}
	if !c.ShouldFlush(20) {
		t.Error("should flush at second window end")
	}
}

func TestCollector_Flush(t *testing.T) {
	c := NewCollector(1.0, 0.1)

	c.RecordLaunch(false)
	c.RecordLaunch(false)
	c.RecordLaunch(true)
	c.RecordDetonation(20)
	c.RecordDetonation(30)
	c.RecordParticles(200)
	c.ObservePopulation(200)
	c.ObservePopulation(150)
	for _, life := range []int32{40, 50, 60} {
		c.RecordExpiry(life)
	}

	stats := c.Flush(10, 1, 147)

	if stats.WindowEndTick != 10 {
		t.Errorf("WindowEndTick = %d, want 10", stats.WindowEndTick)
	}
	if stats.SimTimeSec < 0.999 || stats.SimTimeSec > 1.001 {
		t.Errorf("SimTimeSec = %v, want 1.0", stats.SimTimeSec)
	}
	if stats.AutoLaunches != 2 || stats.ManualLaunches != 1 {
		t.Errorf("launches = %d auto / %d manual, want 2 / 1", stats.AutoLaunches, stats.ManualLaunches)
	}
	if stats.Detonations != 2 {
		t.Errorf("Detonations = %d, want 2", stats.Detonations)
	}
	if stats.ParticlesSpawned != 200 || stats.ParticlesExpired != 3 {
		t.Errorf("particles = %d spawned / %d expired, want 200 / 3", stats.ParticlesSpawned, stats.ParticlesExpired)
	}
	if stats.PeakParticles != 200 {
		t.Errorf("PeakParticles = %d, want 200", stats.PeakParticles)
	}
	if stats.Fireworks != 1 || stats.Particles != 147 {
		t.Errorf("live = %d / %d, want 1 / 147", stats.Fireworks, stats.Particles)
	}
	if stats.FlightMean != 25 {
		t.Errorf("FlightMean = %v, want 25", stats.FlightMean)
	}
	if stats.LifetimeMean != 50 || stats.LifetimeP50 != 50 {
		t.Errorf("lifetime mean/p50 = %v/%v, want 50/50", stats.LifetimeMean, stats.LifetimeP50)
	}

	next := c.Flush(20, 0, 0)
	if next.Detonations != 0 || next.ParticlesSpawned != 0 || next.FlightMean != 0 {
		t.Errorf("counters not reset after flush: %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("WindowStartTick = %d, want 10", next.WindowStartTick)
	}
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector

	c.RecordLaunch(true)
	c.RecordDetonation(1)
	c.RecordParticles(1)
	c.RecordExpiry(1)
	c.ObservePopulation(1)

	if c.ShouldFlush(1000) {
		t.Error("nil collector should never flush")
	}
	if stats := c.Flush(1000, 1, 1); stats.Detonations != 0 {
		t.Errorf("nil collector flush = %+v, want zero", stats)
	}
}
