package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/fireworks/palette"
	"github.com/pthm-cable/fireworks/sim"
)

// Glyphs used for the drawn entities.
const (
	fireworkHead  = '^'
	fireworkTrail = '|'
	particleHead  = '*'
	particleTrail = '.'
)

// statusRows is the number of rows reserved below the sky.
const statusRows = 1

// Options configures a terminal host.
type Options struct {
	FPS            int
	StepsPerUpdate int
	MaxTicks       int32 // 0 = run until quit
}

// Host drives a World from a tcell screen.
type Host struct {
	screen tcell.Screen
	world  *sim.World
	grid   Grid
	opts   Options

	paused      bool
	lastButtons tcell.ButtonMask

	fwViews []sim.FireworkView
	ptViews []sim.ParticleView
}

// NewHost creates a host on an initialized screen and sizes the world to it.
func NewHost(screen tcell.Screen, world *sim.World, opts Options) *Host {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.StepsPerUpdate <= 0 {
		opts.StepsPerUpdate = 1
	}
	h := &Host{screen: screen, world: world, opts: opts}
	h.resize()
	return h
}

// Grid returns the current cell mapping.
func (h *Host) Grid() Grid {
	return h.grid
}

// Run steps and draws at the configured frame rate until the user quits,
// ctx is cancelled or MaxTicks is reached.
func (h *Host) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := h.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !h.HandleEvent(ev) {
				return nil
			}

		case <-ticker.C:
			h.Update()
			h.Draw()
			if h.opts.MaxTicks > 0 && h.world.Tick() >= h.opts.MaxTicks {
				return nil
			}
		}
	}
}

// Update runs StepsPerUpdate ticks unless paused.
func (h *Host) Update() {
	if h.paused {
		return
	}
	for i := 0; i < h.opts.StepsPerUpdate; i++ {
		h.world.Step()
	}
}

// HandleEvent applies one terminal event. Returns false when the host should exit.
func (h *Host) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				h.paused = !h.paused
			case 'c':
				h.world.Clear()
			}
		}

	case *tcell.EventMouse:
		h.handleMouse(ev)

	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	}
	return true
}

// handleMouse launches on button press, ignoring drags and releases.
func (h *Host) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons &^ h.lastButtons
	h.lastButtons = buttons

	col, row := ev.Position()
	if row >= h.grid.Rows {
		return
	}
	x, y := h.grid.CellToWorld(col, row)

	switch {
	case pressed&tcell.Button1 != 0:
		h.world.CreateFireworkAt(x, y)
	case pressed&tcell.Button2 != 0:
		h.world.CreateParticlesAt(x, y, h.world.BurstSize(), h.world.Hue())
	}
}

// resize fits the grid and the world to the screen, keeping the status rows free.
func (h *Host) resize() {
	cols, rows := h.screen.Size()
	h.grid = GridFor(cols, max(rows-statusRows, 1))
	h.world.Resize(h.grid.Width, h.grid.Height)
}

// Draw renders one frame.
func (h *Host) Draw() {
	h.screen.Clear()

	h.ptViews = h.world.AppendParticles(h.ptViews[:0])
	for i := range h.ptViews {
		p := &h.ptViews[i]
		style := cellStyle(p.Hue, p.Brightness, p.Alpha)
		for _, pt := range p.Trail[1:] {
			h.plot(pt.X, pt.Y, particleTrail, style)
		}
		h.plot(p.X, p.Y, particleHead, style)
	}

	h.fwViews = h.world.AppendFireworks(h.fwViews[:0])
	for i := range h.fwViews {
		fw := &h.fwViews[i]
		style := cellStyle(fw.Hue, fw.Brightness, 1)
		for _, pt := range fw.Trail[1:] {
			h.plot(pt.X, pt.Y, fireworkTrail, style)
		}
		h.plot(fw.X, fw.Y, fireworkHead, style)
	}

	h.drawStatus()
	h.screen.Show()
}

func (h *Host) plot(x, y float32, r rune, style tcell.Style) {
	col, row, ok := h.grid.WorldToCell(x, y)
	if !ok {
		return
	}
	h.screen.SetContent(col, row, r, nil, style)
}

func (h *Host) drawStatus() {
	status := fmt.Sprintf(" fireworks %d  particles %d  tick %d  [click] launch [right] burst [space] pause [c] clear [q] quit",
		h.world.FireworkCount(), h.world.ParticleCount(), h.world.Tick())
	if h.paused {
		status += "  PAUSED"
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorGray)
	row := h.grid.Rows
	for i, r := range []rune(status) {
		if i >= h.grid.Cols {
			break
		}
		h.screen.SetContent(i, row, r, nil, style)
	}
}

// cellStyle colours a glyph. Terminals have no alpha, so it scales the colour instead.
func cellStyle(hue, brightness, alpha float32) tcell.Style {
	r, g, b := palette.RGB(hue, brightness)
	a := int32(palette.Alpha8(alpha))
	c := tcell.NewRGBColor(int32(r)*a/255, int32(g)*a/255, int32(b)*a/255)
	return tcell.StyleDefault.Foreground(c).Background(tcell.ColorBlack)
}
