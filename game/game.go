// Package game hosts the fireworks simulation in a raylib window.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/fireworks/audio"
	"github.com/pthm-cable/fireworks/camera"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/renderer"
	"github.com/pthm-cable/fireworks/sim"
	"github.com/pthm-cable/fireworks/telemetry"
	"github.com/pthm-cable/fireworks/ui"
)

// Limits for the steps-per-update control.
const (
	minStepsPerUpdate = 1
	maxStepsPerUpdate = 10
)

// Options configures a Game.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = use config
	OutputDir      string
	Headless       bool
	StepsPerUpdate int // 0 = use config
}

// Game holds the simulation and everything needed to show it.
type Game struct {
	cfg   *config.Config
	world *sim.World

	// Rendering (nil when headless)
	camera    *camera.Camera
	fireworks *renderer.FireworksRenderer
	hud       *ui.HUD
	perfPanel *ui.PerfPanel

	sound *audio.SoundManager

	// Telemetry
	recorder      *telemetry.Recorder
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	lastStats     telemetry.WindowStats

	// State
	headless       bool
	paused         bool
	showHUD        bool
	showPerf       bool
	showTargets    bool
	stepsPerUpdate int
	clickMode      config.ClickMode

	screenWidth, screenHeight float32

	// Reused view buffers
	fwViews []sim.FireworkView
	ptViews []sim.ParticleView
}

// NewGameWithOptions creates a game using the global config.
// Graphical games must be created after the raylib window.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := config.Cfg()

	steps := opts.StepsPerUpdate
	if steps <= 0 {
		steps = cfg.Simulation.StepsPerUpdate
	}

	g := &Game{
		cfg:            cfg,
		world:          sim.New(cfg, rand.New(rand.NewSource(opts.Seed))),
		headless:       opts.Headless,
		showHUD:        true,
		showTargets:    cfg.Render.ShowTargets,
		stepsPerUpdate: steps,
		clickMode:      cfg.Input.ClickMode,
		screenWidth:    cfg.Derived.ScreenW32,
		screenHeight:   cfg.Derived.ScreenH32,
	}

	if err := g.initTelemetry(opts); err != nil {
		return nil, err
	}
	g.world.SetTelemetry(g.recorder)

	if g.headless {
		return g, nil
	}

	g.camera = camera.New(g.screenWidth, g.screenHeight)
	g.fireworks = renderer.NewFireworksRenderer(int32(g.screenWidth), int32(g.screenHeight), cfg.Render)
	g.fireworks.Init()
	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(int32(g.screenWidth)-290, 10, 280)

	if cfg.Audio.Enabled {
		sm := audio.NewSoundManager(cfg.Audio, rand.New(rand.NewSource(opts.Seed+1)))
		if err := sm.Initialize(); err != nil {
			slog.Warn("audio disabled", "error", err)
		} else {
			g.sound = sm
			g.world.TrackEvents(true)
		}
	}

	return g, nil
}

// Update handles input and runs stepsPerUpdate ticks unless paused.
func (g *Game) Update() {
	g.handleInput()

	if !g.paused {
		g.step()
	}

	g.playSounds()
}

// UpdateHeadless runs stepsPerUpdate ticks without touching raylib.
func (g *Game) UpdateHeadless() {
	g.step()
}

func (g *Game) step() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.world.Step()
	}
}

// playSounds turns the ticks' launches and detonations into sound effects.
func (g *Game) playSounds() {
	if g.sound == nil {
		return
	}
	ev := g.world.Events()
	if ev.Empty() {
		return
	}

	heights := make([]float64, 0, len(ev.Launches))
	for _, l := range ev.Launches {
		heights = append(heights, float64((l.TargetY-l.StartY)/g.screenHeight))
	}
	g.sound.PlayLaunches(heights)

	burst := float64(max(g.world.BurstSize(), 1))
	sizes := make([]float64, 0, len(ev.Detonations))
	for _, d := range ev.Detonations {
		sizes = append(sizes, float64(d.Particles)/burst)
	}
	g.sound.PlayBursts(sizes)

	g.world.ResetEvents()
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.world.Tick()
}

// World returns the simulation.
func (g *Game) World() *sim.World {
	return g.world
}

// Unload releases all resources.
func (g *Game) Unload() {
	if g.fireworks != nil {
		g.fireworks.Unload()
	}
	if g.sound != nil {
		g.sound.Cleanup()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
