package sim

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/telemetry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func newTestWorld(t *testing.T, mutate func(*config.Config)) *World {
	t.Helper()
	cfg := testConfig(t)
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg, rand.New(rand.NewSource(1)))
}

func TestDetonationExactness(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) {
		c.Firework.TrailLength = 1
		c.Firework.InitialSpeed = 2.0
		c.Firework.Acceleration = 1.05
		c.Firework.BurstSize = 100
	})

	w.Launch(0, 0, 0, 100)

	var lastY float32
	ticks := 0
	for w.FireworkCount() > 0 {
		if ticks > 100 {
			t.Fatal("firework never detonated")
		}
		fws := w.Fireworks()
		lastY = fws[0].Y
		w.AdvanceFireworks()
		ticks++
	}

	// Candidate distance after n ticks is 42*(1.05^n - 1), first >= 100 at n = 25
	if ticks != 25 {
		t.Errorf("detonated after %d ticks, want 25", ticks)
	}
	if lastY >= 100 {
		t.Errorf("last traveled y = %v, firework should not have reached the target", lastY)
	}

	if got := w.ParticleCount(); got != 100 {
		t.Fatalf("ParticleCount() = %d, want 100", got)
	}
	for _, p := range w.Particles() {
		if p.X != 0 || p.Y != 100 {
			t.Fatalf("particle at (%v, %v), want burst centered on target (0, 100)", p.X, p.Y)
		}
	}
}

func TestBatchSize(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Firework.BurstSize = 100 })

	w.CreateParticlesAt(0, 0, 30, 0.2)
	w.Launch(0, 0, 0, 1) // detonates on the first step
	before := w.ParticleCount()

	w.AdvanceFireworks()

	if got := w.ParticleCount() - before; got != 100 {
		t.Errorf("particle count grew by %d, want 100", got)
	}
	if w.FireworkCount() != 0 {
		t.Errorf("FireworkCount() = %d, want 0", w.FireworkCount())
	}
}

func TestStepOrder(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Spawner.Cadence = 0 })

	w.Step()

	// The spawner runs last, so a freshly spawned firework has not moved yet
	fws := w.Fireworks()
	if len(fws) != 1 {
		t.Fatalf("got %d fireworks after first step, want 1", len(fws))
	}
	_, height := w.Size()
	if fws[0].X != 0 || fws[0].Y != -height/2 {
		t.Errorf("new firework at (%v, %v), want launch point (0, %v)", fws[0].X, fws[0].Y, -height/2)
	}
	if w.Tick() != 1 {
		t.Errorf("Tick() = %d, want 1", w.Tick())
	}
}

func TestIndexStabilityUnderRemoval(t *testing.T) {
	const n = 10
	w := newTestWorld(t, func(c *config.Config) {
		c.Firework.InitialSpeed = 2.0
		c.Firework.Acceleration = 1.05
		c.Firework.BurstSize = 3
	})

	// Candidate distance after t ticks along +x
	reach := func(t int) float64 { return 42 * (math.Pow(1.05, float64(t)) - 1) }

	// Firework k (1-based) detonates on tick k
	for k := 1; k <= n; k++ {
		d := float32((reach(k-1) + reach(k)) / 2)
		w.Launch(0, 0, d, 0)
	}

	for tick := 1; tick <= n; tick++ {
		w.AdvanceFireworks()

		fws := w.Fireworks()
		if len(fws) != n-tick {
			t.Fatalf("tick %d: %d fireworks live, want %d", tick, len(fws), n-tick)
		}
		if got := w.ParticleCount(); got != tick*3 {
			t.Fatalf("tick %d: %d particles, want %d", tick, got, tick*3)
		}

		want := reach(tick)
		for i, fw := range fws {
			if fw.Seq != uint64(tick+1+i) {
				t.Errorf("tick %d: firework %d has seq %d, want %d", tick, i, fw.Seq, tick+1+i)
			}
			if math.Abs(float64(fw.X)-want) > 1e-3*want {
				t.Errorf("tick %d: firework seq %d at x=%v, want %v", tick, fw.Seq, fw.X, want)
			}
		}
	}
}

func TestParticleFadeAndRemoval(t *testing.T) {
	w := newTestWorld(t, nil)
	w.CreateParticlesAt(0, 0, 50, 0.5)

	prev := make(map[uint64]float32)
	for _, p := range w.Particles() {
		prev[p.Seq] = p.Alpha
	}

	for tick := 0; w.ParticleCount() > 0; tick++ {
		if tick > 100 {
			t.Fatal("particles never faded out")
		}
		w.AdvanceParticles()

		live := w.Particles()
		if len(live) != w.ParticleCount() {
			t.Fatalf("view has %d particles, count says %d", len(live), w.ParticleCount())
		}
		for _, p := range live {
			if p.Alpha <= p.Decay {
				t.Fatalf("particle seq %d still live with alpha %v <= decay %v", p.Seq, p.Alpha, p.Decay)
			}
			want := prev[p.Seq] - p.Decay
			if p.Alpha != want {
				t.Fatalf("particle seq %d alpha = %v, want %v", p.Seq, p.Alpha, want)
			}
			prev[p.Seq] = p.Alpha
		}
	}
}

func TestSpawnTickCadence(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Spawner.Cadence = 5 })

	var launchedOn []int
	for i := 0; i < 18; i++ {
		before := w.FireworkCount()
		w.SpawnTick()
		if w.FireworkCount() > before {
			launchedOn = append(launchedOn, i)
		}
	}

	want := []int{5, 11, 17}
	if len(launchedOn) != len(want) {
		t.Fatalf("launches on %v, want %v", launchedOn, want)
	}
	for i := range want {
		if launchedOn[i] != want[i] {
			t.Errorf("launches on %v, want %v", launchedOn, want)
			break
		}
	}
}

func TestSpawnTickTargets(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) {
		c.Spawner.Cadence = 0
		c.Spawner.TargetBand = 0.5
		c.Spawner.TargetTop = 1.0 / 3.0
	})
	width, height := w.Size()

	for i := 0; i < 200; i++ {
		w.SpawnTick()
	}

	for _, fw := range w.Fireworks() {
		if fw.LaunchX != 0 || fw.LaunchY != -height/2 {
			t.Fatalf("launch (%v, %v), want (0, %v)", fw.LaunchX, fw.LaunchY, -height/2)
		}
		if fw.TargetX < -width/4 || fw.TargetX > width/4 {
			t.Errorf("target x %v outside central band [%v, %v]", fw.TargetX, -width/4, width/4)
		}
		if fw.TargetY < height/2-height/3-1e-3 || fw.TargetY > height/2 {
			t.Errorf("target y %v outside top third [%v, %v]", fw.TargetY, height/2-height/3, height/2)
		}
	}
}

func TestSpawnTickRerollsHue(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Spawner.Cadence = 0 })

	seen := make(map[float32]bool)
	for i := 0; i < 10; i++ {
		w.SpawnTick()
		seen[w.Hue()] = true
		if h := w.Hue(); h < 0 || h >= 1 {
			t.Fatalf("hue %v outside [0, 1)", h)
		}
	}
	if len(seen) < 2 {
		t.Error("ambient hue was not re-rolled between automatic launches")
	}

	// Manual launches keep the ambient hue
	hue := w.Hue()
	w.CreateFireworkAt(10, 10)
	if w.Hue() != hue {
		t.Errorf("manual launch changed hue from %v to %v", hue, w.Hue())
	}
}

func snapshotTrails(trail []components.Position) []components.Position {
	return append([]components.Position(nil), trail...)
}

func TestResizeDoesNotMutateEntities(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Spawner.Cadence = 0 })
	for i := 0; i < 20; i++ {
		w.Step()
	}
	w.CreateParticlesAt(5, 5, 10, 0.3)

	fwBefore := w.Fireworks()
	ptBefore := w.Particles()
	fwTrails := make([][]components.Position, len(fwBefore))
	for i, fw := range fwBefore {
		fwTrails[i] = snapshotTrails(fw.Trail)
	}

	w.Resize(400, 300)

	fwAfter := w.Fireworks()
	ptAfter := w.Particles()
	if len(fwAfter) != len(fwBefore) || len(ptAfter) != len(ptBefore) {
		t.Fatalf("resize changed population: %d/%d -> %d/%d",
			len(fwBefore), len(ptBefore), len(fwAfter), len(ptAfter))
	}
	for i := range fwBefore {
		a, b := fwBefore[i], fwAfter[i]
		if a.X != b.X || a.Y != b.Y || a.TargetX != b.TargetX || a.TargetY != b.TargetY || a.LaunchY != b.LaunchY {
			t.Errorf("firework seq %d changed on resize: %+v -> %+v", a.Seq, a, b)
		}
		for j := range fwTrails[i] {
			if fwTrails[i][j] != b.Trail[j] {
				t.Errorf("firework seq %d trail changed on resize", a.Seq)
				break
			}
		}
	}
	for i := range ptBefore {
		a, b := ptBefore[i], ptAfter[i]
		if a.X != b.X || a.Y != b.Y || a.Alpha != b.Alpha || a.Speed != b.Speed {
			t.Errorf("particle seq %d changed on resize", a.Seq)
		}
	}

	// Only future launches see the new viewport
	w.SpawnTick()
	fws := w.Fireworks()
	newest := fws[len(fws)-1]
	if newest.LaunchY != -150 {
		t.Errorf("launch y after resize = %v, want -150", newest.LaunchY)
	}
	if newest.TargetX < -100 || newest.TargetX > 100 || newest.TargetY > 150 {
		t.Errorf("target (%v, %v) outside resized spawn area", newest.TargetX, newest.TargetY)
	}
}

func TestTrailLengthConstant(t *testing.T) {
	cfg := testConfig(t)
	cfg.Spawner.Cadence = 2
	w := New(cfg, rand.New(rand.NewSource(7)))

	for i := 0; i < 400; i++ {
		w.Step()
		for _, fw := range w.Fireworks() {
			if len(fw.Trail) != cfg.Firework.TrailLength {
				t.Fatalf("tick %d: firework trail length %d, want %d", i, len(fw.Trail), cfg.Firework.TrailLength)
			}
		}
		for _, p := range w.Particles() {
			if len(p.Trail) != cfg.Particle.TrailLength {
				t.Fatalf("tick %d: particle trail length %d, want %d", i, len(p.Trail), cfg.Particle.TrailLength)
			}
		}
	}
}

func TestViewsInCreationOrder(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Spawner.Cadence = 1 })
	for i := 0; i < 200; i++ {
		w.Step()
	}
	if w.ParticleCount() == 0 {
		t.Fatal("expected live particles after 200 ticks")
	}

	fws := w.Fireworks()
	for i := 1; i < len(fws); i++ {
		if fws[i].Seq <= fws[i-1].Seq {
			t.Fatalf("fireworks out of order at %d: %d after %d", i, fws[i].Seq, fws[i-1].Seq)
		}
	}
	pts := w.Particles()
	for i := 1; i < len(pts); i++ {
		if pts[i].Seq <= pts[i-1].Seq {
			t.Fatalf("particles out of order at %d: %d after %d", i, pts[i].Seq, pts[i-1].Seq)
		}
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() []ParticleView {
		cfg := testConfig(t)
		w := New(cfg, rand.New(rand.NewSource(99)))
		for i := 0; i < 150; i++ {
			w.Step()
		}
		return w.Particles()
	}

	a, b := run(), run()
	if len(a) != len(b) {
		t.Fatalf("particle counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].X != b[i].X || a[i].Y != b[i].Y || a[i].Alpha != b[i].Alpha {
			t.Fatalf("particle %d differs between identical seeds", i)
		}
	}
}

func TestClear(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Spawner.Cadence = 0 })
	for i := 0; i < 50; i++ {
		w.Step()
	}
	w.Clear()

	if w.FireworkCount() != 0 || w.ParticleCount() != 0 {
		t.Errorf("after Clear: %d fireworks, %d particles", w.FireworkCount(), w.ParticleCount())
	}
	if len(w.Fireworks()) != 0 || len(w.Particles()) != 0 {
		t.Error("views not empty after Clear")
	}
	if w.Tick() != 50 {
		t.Errorf("Clear reset tick to %d", w.Tick())
	}
}

func TestEvents(t *testing.T) {
	w := newTestWorld(t, func(c *config.Config) { c.Firework.BurstSize = 7 })

	w.CreateFireworkAt(0, 0)
	if !w.Events().Empty() {
		t.Fatal("events recorded while tracking is off")
	}

	w.TrackEvents(true)
	w.Launch(0, 0, 0, 1)
	w.AdvanceFireworks()
	w.CreateParticlesAt(1, 2, 4, 0.1)

	ev := w.Events()
	if len(ev.Launches) != 1 || !ev.Launches[0].Manual {
		t.Errorf("launches = %+v, want one manual launch", ev.Launches)
	}
	if len(ev.Detonations) != 2 {
		t.Fatalf("detonations = %+v, want 2", ev.Detonations)
	}
	if d := ev.Detonations[0]; d.Particles != 7 || d.X != 0 || d.Y != 1 || d.Manual {
		t.Errorf("firework detonation = %+v", d)
	}
	if d := ev.Detonations[1]; d.Particles != 4 || !d.Manual {
		t.Errorf("direct burst = %+v", d)
	}

	w.ResetEvents()
	if !w.Events().Empty() {
		t.Error("events not reset")
	}
}

func TestTelemetryFeed(t *testing.T) {
	var windows []telemetry.WindowStats
	w := newTestWorld(t, func(c *config.Config) {
		c.Spawner.Cadence = 0
		c.Firework.BurstSize = 10
	})
	w.SetTelemetry(&telemetry.Recorder{
		Collector: telemetry.NewCollector(1.0, 0.01), // 100 ticks
		Perf:      telemetry.NewPerfCollector(10),
		OnStats:   func(s telemetry.WindowStats) { windows = append(windows, s) },
	})

	for i := 0; i < 200; i++ {
		w.Step()
	}

	if len(windows) != 2 {
		t.Fatalf("got %d windows, want 2", len(windows))
	}
	first := windows[0]
	if first.WindowEndTick != 100 {
		t.Errorf("WindowEndTick = %d, want 100", first.WindowEndTick)
	}
	if first.AutoLaunches != 100 {
		t.Errorf("AutoLaunches = %d, want 100", first.AutoLaunches)
	}
	if first.Detonations == 0 || first.ParticlesSpawned != first.Detonations*10 {
		t.Errorf("detonations %d, particles spawned %d", first.Detonations, first.ParticlesSpawned)
	}
	if first.FlightMean <= 0 {
		t.Errorf("FlightMean = %v, want positive", first.FlightMean)
	}
}
