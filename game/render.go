package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/renderer"
	"github.com/pthm-cable/fireworks/ui"
)

const controlsLegend = "Click: launch  Right click: burst  B: click mode  Space: pause  <>: speed  Arrows/Wheel: camera  Home: reset  C: clear  T: targets  H: HUD  P: perf  M: mute"

// Draw renders the game state.
func (g *Game) Draw() {
	g.perfCollector.RecordFrame()

	g.fwViews = g.world.AppendFireworks(g.fwViews[:0])
	g.ptViews = g.world.AppendParticles(g.ptViews[:0])

	// Trails accumulate in the render texture, so this happens outside BeginDrawing.
	g.fireworks.Render(g.camera, g.fwViews, g.ptViews)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.fireworks.Present()

	if g.showHUD {
		g.drawHUD()
		g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
	}
	if g.showPerf {
		g.perfPanel.Draw(g.perfCollector.Stats(), g.lastStats)
	}

	rl.EndDrawing()
}

func (g *Game) drawHUD() {
	g.hud.Draw(ui.HUDData{
		Title:         g.cfg.Screen.Title,
		FireworkCount: g.world.FireworkCount(),
		ParticleCount: g.world.ParticleCount(),
		Tick:          g.world.Tick(),
		Speed:         g.stepsPerUpdate,
		FPS:           rl.GetFPS(),
		Paused:        g.paused,
		Hue:           renderer.Color(g.world.Hue(), 0.6, 1),
		ClickMode:     string(g.clickMode),
		Zoom:          g.camera.Zoom,
		Muted:         g.sound != nil && g.sound.Muted(),
	})
}
