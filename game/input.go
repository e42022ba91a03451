package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/fireworks/config"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	// Fullscreen toggle
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	// Steps-per-update control with < > keys (comma and period)
	if rl.IsKeyPressed(rl.KeyComma) && g.stepsPerUpdate > minStepsPerUpdate {
		g.stepsPerUpdate--
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.stepsPerUpdate < maxStepsPerUpdate {
		g.stepsPerUpdate++
	}

	if rl.IsKeyPressed(rl.KeyH) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyP) {
		g.showPerf = !g.showPerf
	}
	if rl.IsKeyPressed(rl.KeyT) {
		g.showTargets = !g.showTargets
		g.fireworks.SetShowTargets(g.showTargets)
	}
	if rl.IsKeyPressed(rl.KeyB) {
		if g.clickMode == config.ClickFirework {
			g.clickMode = config.ClickBurst
		} else {
			g.clickMode = config.ClickFirework
		}
	}
	if rl.IsKeyPressed(rl.KeyC) {
		g.world.Clear()
		g.fireworks.Clear()
	}
	if rl.IsKeyPressed(rl.KeyM) && g.sound != nil {
		g.sound.ToggleMute()
	}

	// Camera controls
	g.handleCameraInput()

	g.handleMouseInput()
}

// handleMouseInput launches fireworks or bursts at the cursor.
// Left click follows the click mode, right click always bursts.
func (g *Game) handleMouseInput() {
	left := rl.IsMouseButtonPressed(rl.MouseLeftButton)
	right := rl.IsMouseButtonPressed(rl.MouseRightButton)
	if !left && !right {
		return
	}

	mouse := rl.GetMousePosition()
	wx, wy := g.camera.ScreenToWorld(mouse.X, mouse.Y)

	if right || g.clickMode == config.ClickBurst {
		g.world.CreateParticlesAt(wx, wy, g.world.BurstSize(), g.world.Hue())
		return
	}
	g.world.CreateFireworkAt(wx, wy)
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.world.Resize(w, h)
	g.camera.Resize(w, h)
	g.fireworks.Resize(int32(w), int32(h))
	g.perfPanel.SetPosition(int32(w)-290, 10)
}

// handleCameraInput processes camera pan/zoom controls.
func (g *Game) handleCameraInput() {
	// Pan speed scales inversely with zoom for natural feel
	panSpeed := float32(8.0) / g.camera.Zoom

	if rl.IsKeyDown(rl.KeyRight) {
		g.camera.Pan(panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		g.camera.Pan(-panSpeed, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		g.camera.Pan(0, panSpeed)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		g.camera.Pan(0, -panSpeed)
	}

	// Zoom controls: mouse wheel or +/- keys
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.camera.ZoomBy(1 + wheel*0.1)
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.camera.ZoomBy(1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.camera.ZoomBy(0.8)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.camera.Reset()
	}
}
