// Burst preview tool - tune particle parameters with sliders and watch a
// burst detonate repeatedly at the center of the preview.
//
// Usage: go run ./cmd/burstpreview [-config path]
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/camera"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/renderer"
	"github.com/pthm-cable/fireworks/sim"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	previewWidth = 700
	panelWidth   = windowWidth - previewWidth - 30
	sliderWidth  = panelWidth - 80
)

// previewState holds the tunable burst parameters outside the particle config.
type previewState struct {
	Count    float32
	Interval float32 // Ticks between bursts
	Hue      float32
	Auto     bool
}

func main() {
	configPath := flag.String("config", "", "Path to config file (uses embedded defaults if empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	// Only manual bursts in the preview
	cfg.Spawner.Cadence = math.MaxInt32
	defaults := cfg.Particle

	rl.InitWindow(windowWidth, windowHeight, "Burst Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	cam := camera.New(previewWidth, windowHeight)
	fr := renderer.NewFireworksRenderer(previewWidth, windowHeight, cfg.Render)
	fr.Init()
	defer fr.Unload()

	rng := rand.New(rand.NewSource(1))
	world := newPreviewWorld(cfg, rng)

	state := previewState{Count: float32(cfg.Firework.BurstSize), Interval: 90, Hue: 0.08, Auto: true}
	sinceBurst := state.Interval

	for !rl.WindowShouldClose() {
		if state.Auto {
			sinceBurst++
			if sinceBurst >= state.Interval {
				world.CreateParticlesAt(0, 0, int(state.Count), state.Hue)
				sinceBurst = 0
			}
		}
		world.Step()

		fr.Render(cam, nil, world.Particles())

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		fr.Present()
		rl.DrawRectangleLines(0, 0, previewWidth, windowHeight, rl.DarkGray)
		rl.DrawText(fmt.Sprintf("Particles: %d  Tick: %d", world.ParticleCount(), world.Tick()), 10, windowHeight-24, 16, rl.LightGray)

		// Control panel
		panelX := float32(previewWidth + 20)
		panelY := float32(10)

		rl.DrawText("Burst Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		p := &cfg.Particle
		changed := false
		changed = slider(panelX, &panelY, "Speed min", &p.SpeedMin, 0, 20, "%.1f") || changed
		changed = slider(panelX, &panelY, "Speed max", &p.SpeedMax, 0, 20, "%.1f") || changed
		changed = slider(panelX, &panelY, "Friction (velocity kept per tick)", &p.Friction, 0.8, 0.99, "%.3f") || changed
		changed = slider(panelX, &panelY, "Gravity (pull per tick)", &p.Gravity, 0, 3, "%.2f") || changed
		changed = slider(panelX, &panelY, "Decay min (alpha lost per tick)", &p.DecayMin, 0.005, 0.1, "%.3f") || changed
		changed = slider(panelX, &panelY, "Decay max", &p.DecayMax, 0.005, 0.1, "%.3f") || changed
		changed = slider(panelX, &panelY, "Brightness min", &p.BrightnessMin, 0, 1, "%.2f") || changed
		changed = slider(panelX, &panelY, "Brightness max", &p.BrightnessMax, 0, 1, "%.2f") || changed
		changed = slider(panelX, &panelY, "Hue swing", &p.HueSwing, 0, 0.5, "%.2f") || changed

		if changed {
			p.SpeedMax = math.Max(p.SpeedMax, p.SpeedMin)
			p.DecayMax = math.Max(p.DecayMax, p.DecayMin)
			p.BrightnessMax = math.Max(p.BrightnessMax, p.BrightnessMin)
			world = newPreviewWorld(cfg, rng)
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.LightGray)
		panelY += 15

		state.Count = sliderF32(panelX, &panelY, "Particles per burst", state.Count, 1, 1000, "%.0f")
		state.Interval = sliderF32(panelX, &panelY, "Ticks between bursts", state.Interval, 10, 300, "%.0f")
		state.Hue = sliderF32(panelX, &panelY, "Hue", state.Hue, 0, 1, "%.2f")

		rl.DrawRectangle(int32(panelX), int32(panelY), 40, 20, renderer.Color(state.Hue, 0.6, 1))
		panelY += 35

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(state.Auto, "Stop", "Auto")) {
			state.Auto = !state.Auto
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Burst") {
			world.CreateParticlesAt(0, 0, int(state.Count), state.Hue)
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Hue") {
			state.Hue = rng.Float32()
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			cfg.Particle = defaults
			world = newPreviewWorld(cfg, rng)
			fr.Clear()
		}
		panelY += 50

		rl.DrawText(fmt.Sprintf("Lifetime: about %s", lifetimeRange(cfg.Particle)), int32(panelX), int32(panelY), 14, rl.Gray)

		rl.EndDrawing()
	}
}

// newPreviewWorld creates a world sized to the preview area.
func newPreviewWorld(cfg *config.Config, rng *rand.Rand) *sim.World {
	w := sim.New(cfg, rng)
	w.Resize(previewWidth, windowHeight)
	return w
}

// slider draws a labelled slider bound to a config value and reports whether it moved.
func slider(x float32, y *float32, label string, value *float64, min, max float32, format string) bool {
	v := sliderF32(x, y, label, float32(*value), min, max, format)
	if v == float32(*value) {
		return false
	}
	*value = float64(v)
	return true
}

func sliderF32(x float32, y *float32, label string, value, min, max float32, format string) float32 {
	rl.DrawText(label, int32(x), int32(*y), 14, rl.Gray)
	*y += 18
	v := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: sliderWidth, Height: 20},
		fmt.Sprintf(format, min), fmt.Sprintf(format, max),
		value, min, max,
	)
	rl.DrawText(fmt.Sprintf(format, value), int32(x+sliderWidth+10), int32(*y+2), 16, rl.DarkGray)
	*y += 35
	return v
}

// lifetimeRange returns the tick range a particle lives for, from its decay range.
func lifetimeRange(p config.ParticleConfig) string {
	return fmt.Sprintf("%.0f-%.0f ticks", math.Ceil(1/p.DecayMax), math.Ceil(1/p.DecayMin))
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
