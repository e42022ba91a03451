// Package tui hosts the fireworks simulation in a terminal using tcell.
package tui

import "math"

// Nominal pixel size of a terminal cell. The world is sized from these so
// that speeds and gravity keep the same feel as in the graphical host.
const (
	CellWidth  = 8
	CellHeight = 16
)

// Grid maps the center-origin, y-up world onto a grid of terminal cells.
type Grid struct {
	Cols, Rows    int
	Width, Height float32 // World size covered by the grid
}

// GridFor returns the grid for a terminal of cols x rows cells.
func GridFor(cols, rows int) Grid {
	return Grid{
		Cols:   cols,
		Rows:   rows,
		Width:  float32(cols * CellWidth),
		Height: float32(rows * CellHeight),
	}
}

// WorldToCell returns the cell containing the world point.
// ok is false when the point falls outside the grid.
func (g Grid) WorldToCell(x, y float32) (col, row int, ok bool) {
	if g.Cols <= 0 || g.Rows <= 0 {
		return 0, 0, false
	}
	fx := (x + g.Width/2) / g.Width * float32(g.Cols)
	fy := (g.Height/2 - y) / g.Height * float32(g.Rows)
	col = int(math.Floor(float64(fx)))
	row = int(math.Floor(float64(fy)))
	ok = col >= 0 && col < g.Cols && row >= 0 && row < g.Rows
	return col, row, ok
}

// CellToWorld returns the world point at the center of a cell.
func (g Grid) CellToWorld(col, row int) (x, y float32) {
	x = (float32(col)+0.5)*CellWidth - g.Width/2
	y = g.Height/2 - (float32(row)+0.5)*CellHeight
	return x, y
}
