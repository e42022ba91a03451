package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title         string
	FireworkCount int
	ParticleCount int
	Tick          int32
	Speed         int
	FPS           int32
	Paused        bool
	Hue           rl.Color
	ClickMode     string
	Zoom          float32
	Muted         bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

func hudText(f func(HUDData) string) func(any) string {
	return func(d any) string { return f(d.(HUDData)) }
}

var hudSection = Section{
	Fields: []Field{
		{Label: "Fireworks", Text: hudText(func(d HUDData) string { return fmt.Sprint(d.FireworkCount) })},
		{Label: "Particles", Text: hudText(func(d HUDData) string { return fmt.Sprint(d.ParticleCount) })},
		{Label: "Tick", Text: hudText(func(d HUDData) string { return fmt.Sprint(d.Tick) })},
		{Label: "Speed", Text: hudText(func(d HUDData) string { return fmt.Sprintf("%dx", d.Speed) })},
		{Label: "FPS", Text: hudText(func(d HUDData) string { return fmt.Sprint(d.FPS) })},
		{Label: "Zoom", Text: hudText(func(d HUDData) string { return fmt.Sprintf("%.2fx", d.Zoom) })},
		{Label: "Click", Text: hudText(func(d HUDData) string { return d.ClickMode })},
		{Label: "Hue", Swatch: func(d any) rl.Color { return d.(HUDData).Hue }},
	},
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	x := r.Theme.Padding
	y := r.Theme.Padding

	rl.DrawText(data.Title, x, y, 20, rl.White)
	y += 26

	y = r.DrawSection(x, y, hudSection, data)

	status := "Running"
	if data.Paused {
		status = "PAUSED"
	}
	if data.Muted {
		status += " (muted)"
	}
	rl.DrawText(status, x, y, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders simulation phase timings and the last stats window.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

func windowText(f func(telemetry.WindowStats) string) func(any) string {
	return func(d any) string { return f(d.(telemetry.WindowStats)) }
}

var windowSection = Section{
	Title: "Last window",
	Fields: []Field{
		{Label: "Launches", Text: windowText(func(s telemetry.WindowStats) string {
			return fmt.Sprintf("%d auto / %d manual", s.AutoLaunches, s.ManualLaunches)
		})},
		{Label: "Detonations", Text: windowText(func(s telemetry.WindowStats) string { return fmt.Sprint(s.Detonations) })},
		{Label: "Peak particles", Text: windowText(func(s telemetry.WindowStats) string { return fmt.Sprint(s.PeakParticles) })},
		{Label: "Flight ticks", Text: windowText(func(s telemetry.WindowStats) string { return fmt.Sprintf("%.1f", s.FlightMean) })},
		{Label: "Lifetime p50", Text: windowText(func(s telemetry.WindowStats) string { return fmt.Sprintf("%.1f", s.LifetimeP50) })},
	},
	Visible: func(d any) bool { return d.(telemetry.WindowStats).WindowEndTick > 0 },
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(perf telemetry.PerfStats, window telemetry.WindowStats) {
	r := p.renderer
	phases := []string{telemetry.PhaseFireworks, telemetry.PhaseParticles, telemetry.PhaseSpawn, telemetry.PhaseTelemetry}

	height := r.Theme.Padding*2 + r.Theme.LineHeight*2 + int32(len(phases))*(r.Theme.LineHeight+barGap) +
		r.SectionHeight(windowSection, window)
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	inner := p.width - 2*r.Theme.Padding

	y = r.DrawSectionHeader(x, y, "Performance")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%s (%.0f/s)", perf.AvgTickDuration.Round(time.Microsecond), perf.TicksPerSecond))
	for _, phase := range phases {
		y = r.DrawBar(x, y, phase, float32(perf.PhasePct[phase]/100), inner)
	}

	r.DrawSection(x, y, windowSection, window)
}
