// Package renderer draws the simulation with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/camera"
	"github.com/pthm-cable/fireworks/config"
	"github.com/pthm-cable/fireworks/palette"
	"github.com/pthm-cable/fireworks/sim"
)

// FireworksRenderer draws fireworks and particles into a persistent render
// texture. Each frame the texture is overdrawn with translucent black so
// earlier frames fade into trails.
type FireworksRenderer struct {
	target      rl.RenderTexture2D
	w, h        int32
	fade        rl.Color
	lineWidth   float32
	showTargets bool
	initialized bool
}

// NewFireworksRenderer creates a renderer for a w x h screen.
func NewFireworksRenderer(w, h int32, cfg config.RenderConfig) *FireworksRenderer {
	return &FireworksRenderer{
		w:           w,
		h:           h,
		fade:        rl.Color{R: 0, G: 0, B: 0, A: palette.Alpha8(float32(cfg.FadeAlpha))},
		lineWidth:   float32(cfg.LineWidth),
		showTargets: cfg.ShowTargets,
	}
}

// Init allocates the render texture (must be called after the raylib window is created).
func (r *FireworksRenderer) Init() {
	if r.initialized {
		return
	}
	r.target = rl.LoadRenderTexture(r.w, r.h)
	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
	r.initialized = true
}

// Resize reallocates the render texture. Accumulated trails are lost.
func (r *FireworksRenderer) Resize(w, h int32) {
	if w == r.w && h == r.h {
		return
	}
	r.Unload()
	r.w, r.h = w, h
	r.Init()
}

// Clear wipes the accumulated trails.
func (r *FireworksRenderer) Clear() {
	if !r.initialized {
		return
	}
	rl.BeginTextureMode(r.target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()
}

// SetShowTargets toggles the target indicator circles.
func (r *FireworksRenderer) SetShowTargets(show bool) {
	r.showTargets = show
}

// Render fades the previous frame and draws the current fireworks and particles.
func (r *FireworksRenderer) Render(cam *camera.Camera, fireworks []sim.FireworkView, particles []sim.ParticleView) {
	if !r.initialized {
		r.Init()
	}

	rl.BeginTextureMode(r.target)
	rl.BeginBlendMode(rl.BlendAlpha)
	rl.DrawRectangle(0, 0, r.w, r.h, r.fade)

	for i := range fireworks {
		r.drawFirework(cam, &fireworks[i])
	}
	for i := range particles {
		r.drawParticle(cam, &particles[i])
	}

	rl.EndBlendMode()
	rl.EndTextureMode()
}

// Present draws the accumulated texture to the current framebuffer.
func (r *FireworksRenderer) Present() {
	if !r.initialized {
		return
	}
	// Render textures are stored upside down
	src := rl.Rectangle{X: 0, Y: 0, Width: float32(r.w), Height: -float32(r.h)}
	rl.DrawTextureRec(r.target.Texture, src, rl.Vector2{}, rl.White)
}

func (r *FireworksRenderer) drawFirework(cam *camera.Camera, fw *sim.FireworkView) {
	col := Color(fw.Hue, fw.Brightness, 1)

	tail := fw.Trail[len(fw.Trail)-1]
	x0, y0 := cam.WorldToScreen(tail.X, tail.Y)
	x1, y1 := cam.WorldToScreen(fw.X, fw.Y)
	rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, r.lineWidth*cam.Zoom, col)

	if r.showTargets {
		tx, ty := cam.WorldToScreen(fw.TargetX, fw.TargetY)
		rl.DrawCircleLines(int32(tx), int32(ty), cam.Scale(fw.TargetRadius), col)
	}
}

func (r *FireworksRenderer) drawParticle(cam *camera.Camera, p *sim.ParticleView) {
	tail := p.Trail[len(p.Trail)-1]
	if !cam.IsVisible(p.X, p.Y, 0) && !cam.IsVisible(tail.X, tail.Y, 0) {
		return
	}

	x0, y0 := cam.WorldToScreen(tail.X, tail.Y)
	x1, y1 := cam.WorldToScreen(p.X, p.Y)
	rl.DrawLineEx(rl.Vector2{X: x0, Y: y0}, rl.Vector2{X: x1, Y: y1}, r.lineWidth*cam.Zoom, Color(p.Hue, p.Brightness, p.Alpha))
}

// Unload frees the render texture.
func (r *FireworksRenderer) Unload() {
	if r.initialized {
		rl.UnloadRenderTexture(r.target)
		r.initialized = false
	}
}

// Color converts a hue, brightness and alpha to a raylib colour.
func Color(hue, brightness, alpha float32) rl.Color {
	cr, cg, cb := palette.RGB(hue, brightness)
	return rl.Color{R: cr, G: cg, B: cb, A: palette.Alpha8(alpha)}
}
