// Package sim owns the live firework and particle populations and drives
// them one tick at a time.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/fireworks/components"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/systems"
	"github.com/pthm-cable/fireworks/telemetry"
)

// World holds the complete simulation state.
// It is not safe for concurrent use; hosts read it only between ticks.
type World struct {
	world *ecs.World
	rng   *rand.Rand

	fwParams systems.FireworkParams
	ptParams systems.ParticleParams
	spawner  systems.Spawner
	band     float32
	top      float32

	fireworkMap *ecs.Map5[
		components.Position,
		components.Trail,
		components.Flight,
		components.Glow,
		components.Seq,
	]
	fireworkFilter *ecs.Filter5[
		components.Position,
		components.Trail,
		components.Flight,
		components.Glow,
		components.Seq,
	]
	particleMap *ecs.Map5[
		components.Position,
		components.Trail,
		components.Spark,
		components.Glow,
		components.Seq,
	]
	particleFilter *ecs.Filter5[
		components.Position,
		components.Trail,
		components.Spark,
		components.Glow,
		components.Seq,
	]

	// Ambient state
	width, height float32
	hue           float32

	// State
	tick         int32
	nextSeq      uint64
	numFireworks int
	numParticles int

	events      Events
	trackEvents bool

	rec *telemetry.Recorder

	// Scratch buffers reused across ticks
	toRemove []ecs.Entity
	bursts   []pendingBurst
}

type pendingBurst struct {
	x, y, hue float32
}

// New creates an empty world sized to the configured screen.
func New(cfg *config.Config, rng *rand.Rand) *World {
	world := ecs.NewWorld()

	w := &World{
		world:    world,
		rng:      rng,
		fwParams: systems.FireworkParamsFromConfig(cfg.Firework),
		ptParams: systems.ParticleParamsFromConfig(cfg.Particle),
		spawner:  systems.Spawner{Cadence: cfg.Spawner.Cadence},
		band:     float32(cfg.Spawner.TargetBand),
		top:      float32(cfg.Spawner.TargetTop),
		width:    cfg.Derived.ScreenW32,
		height:   cfg.Derived.ScreenH32,
		hue:      rng.Float32(),
		fireworkMap: ecs.NewMap5[
			components.Position,
			components.Trail,
			components.Flight,
			components.Glow,
			components.Seq,
		](world),
		fireworkFilter: ecs.NewFilter5[
			components.Position,
			components.Trail,
			components.Flight,
			components.Glow,
			components.Seq,
		](world),
		particleMap: ecs.NewMap5[
			components.Position,
			components.Trail,
			components.Spark,
			components.Glow,
			components.Seq,
		](world),
		particleFilter: ecs.NewFilter5[
			components.Position,
			components.Trail,
			components.Spark,
			components.Glow,
			components.Seq,
		](world),
	}

	return w
}

// SetTelemetry attaches a telemetry recorder. Step feeds its collector and
// perf phases and flushes it after each tick. A nil recorder detaches.
func (w *World) SetTelemetry(r *telemetry.Recorder) {
	w.rec = r
}

func (w *World) collector() *telemetry.Collector {
	if w.rec == nil {
		return nil
	}
	return w.rec.Collector
}

func (w *World) perf() *telemetry.PerfCollector {
	if w.rec == nil {
		return nil
	}
	return w.rec.Perf
}

// Step runs a single tick: fireworks, then particles, then the spawner.
func (w *World) Step() {
	perf := w.perf()
	perf.StartTick()

	perf.StartPhase(telemetry.PhaseFireworks)
	w.AdvanceFireworks()

	perf.StartPhase(telemetry.PhaseParticles)
	w.AdvanceParticles()

	perf.StartPhase(telemetry.PhaseSpawn)
	w.SpawnTick()

	w.tick++

	perf.StartPhase(telemetry.PhaseTelemetry)
	w.rec.Flush(w.tick, w.numFireworks, w.numParticles)

	perf.EndTick()
}

// AdvanceFireworks steps every firework. Fireworks that reach their target
// are removed and replaced by a burst centered on the target point.
func (w *World) AdvanceFireworks() {
	w.toRemove = w.toRemove[:0]
	w.bursts = w.bursts[:0]
	col := w.collector()

	query := w.fireworkFilter.Query()
	for query.Next() {
		pos, trail, flight, glow, _ := query.Get()
		if !systems.StepFirework(pos, trail, flight, w.fwParams) {
			continue
		}
		w.toRemove = append(w.toRemove, query.Entity())
		w.bursts = append(w.bursts, pendingBurst{x: flight.TargetX, y: flight.TargetY, hue: glow.Hue})
		col.RecordDetonation(flight.Age)
	}

	// Structural changes only after the query is done
	for _, e := range w.toRemove {
		w.world.RemoveEntity(e)
		w.numFireworks--
	}

	for _, b := range w.bursts {
		w.spawnParticles(b.x, b.y, w.fwParams.BurstSize, b.hue)
		if w.trackEvents {
			w.events.Detonations = append(w.events.Detonations, Detonation{
				X: b.x, Y: b.y, Hue: b.hue, Particles: w.fwParams.BurstSize,
			})
		}
	}
}

// AdvanceParticles steps every particle and removes those that have faded out.
func (w *World) AdvanceParticles() {
	w.toRemove = w.toRemove[:0]
	col := w.collector()

	query := w.particleFilter.Query()
	for query.Next() {
		pos, trail, spark, glow, _ := query.Get()
		if systems.StepParticle(pos, trail, spark, glow) {
			w.toRemove = append(w.toRemove, query.Entity())
			col.RecordExpiry(spark.Age)
		}
	}

	for _, e := range w.toRemove {
		w.world.RemoveEntity(e)
		w.numParticles--
	}

	col.ObservePopulation(w.numParticles)
}

// SpawnTick launches a firework at a random target when the cadence is due.
// The ambient hue is re-rolled for every automatic launch.
func (w *World) SpawnTick() {
	if !w.spawner.Advance() {
		return
	}
	w.hue = w.rng.Float32()
	sx, sy := systems.LaunchPoint(w.width, w.height)
	tx, ty := systems.RandomTarget(w.rng, w.width, w.height, w.band, w.top)
	w.launch(sx, sy, tx, ty, false)
}

// CreateFireworkAt launches a firework from the bottom-center towards (tx, ty).
// The target is used as given, even outside the viewport.
func (w *World) CreateFireworkAt(tx, ty float32) {
	sx, sy := systems.LaunchPoint(w.width, w.height)
	w.launch(sx, sy, tx, ty, true)
}

// Launch creates a firework between two arbitrary points using the current hue.
func (w *World) Launch(sx, sy, tx, ty float32) {
	w.launch(sx, sy, tx, ty, true)
}

func (w *World) launch(sx, sy, tx, ty float32, manual bool) {
	fw := systems.NewFirework(w.fwParams, sx, sy, tx, ty, w.hue, w.rng)
	seq := w.seq()
	w.fireworkMap.NewEntity(&fw.Pos, &fw.Trail, &fw.Flight, &fw.Glow, &seq)
	w.numFireworks++

	w.collector().RecordLaunch(manual)
	if w.trackEvents {
		w.events.Launches = append(w.events.Launches, LaunchEvent{
			StartX: sx, StartY: sy, TargetX: tx, TargetY: ty, Manual: manual,
		})
	}
}

// CreateParticlesAt creates a burst of count particles at (x, y) without a firework.
func (w *World) CreateParticlesAt(x, y float32, count int, hue float32) {
	w.spawnParticles(x, y, count, hue)
	if w.trackEvents && count > 0 {
		w.events.Detonations = append(w.events.Detonations, Detonation{
			X: x, Y: y, Hue: hue, Particles: count, Manual: true,
		})
	}
}

func (w *World) spawnParticles(x, y float32, count int, hue float32) {
	for _, p := range systems.Burst(w.ptParams, x, y, count, hue, w.rng) {
		seq := w.seq()
		w.particleMap.NewEntity(&p.Pos, &p.Trail, &p.Spark, &p.Glow, &seq)
	}
	if count > 0 {
		w.numParticles += count
		w.collector().RecordParticles(count)
	}
}

func (w *World) seq() components.Seq {
	w.nextSeq++
	return components.Seq{N: w.nextSeq}
}

// Resize updates the viewport used for future launch points and targets.
// Live entities are not touched.
func (w *World) Resize(width, height float32) {
	w.width = width
	w.height = height
}

// Clear removes every firework and particle. Tick, hue and the spawn counter are kept.
func (w *World) Clear() {
	w.toRemove = w.toRemove[:0]

	fq := w.fireworkFilter.Query()
	for fq.Next() {
		w.toRemove = append(w.toRemove, fq.Entity())
	}
	pq := w.particleFilter.Query()
	for pq.Next() {
		w.toRemove = append(w.toRemove, pq.Entity())
	}

	for _, e := range w.toRemove {
		w.world.RemoveEntity(e)
	}
	w.numFireworks = 0
	w.numParticles = 0
}

// FireworkCount returns the number of live fireworks.
func (w *World) FireworkCount() int { return w.numFireworks }

// ParticleCount returns the number of live particles.
func (w *World) ParticleCount() int { return w.numParticles }

// Tick returns the number of completed Steps.
func (w *World) Tick() int32 { return w.tick }

// Hue returns the ambient hue.
func (w *World) Hue() float32 { return w.hue }

// Size returns the viewport dimensions.
func (w *World) Size() (float32, float32) { return w.width, w.height }

// BurstSize returns the number of particles a detonation creates.
func (w *World) BurstSize() int { return w.fwParams.BurstSize }
