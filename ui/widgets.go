package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	swatchSize = 12
	sectionGap = 4
	barGap     = 2
)

// Renderer draws panel primitives in one theme. Every Draw method returns
// the y coordinate of the next row.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a bordered panel background.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section title.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderSize, r.Theme.Header)
	return y + r.Theme.LineHeight
}

func (r *Renderer) drawLabel(x, y int32, label string) {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.Label)
}

// DrawLabelValue draws a label with its value in the value column.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	r.drawLabel(x, y, label)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.Value)
	return y + r.Theme.LineHeight
}

// DrawBar draws a share in [0, 1] as a filled bar followed by its percentage.
func (r *Renderer) DrawBar(x, y int32, label string, share float32, width int32) int32 {
	share = min(max(share, 0), 1)
	barX := x + r.Theme.LabelWidth
	barW := width - r.Theme.LabelWidth - 45

	r.drawLabel(x, y, label)
	rl.DrawRectangle(barX, y+2, barW, r.Theme.BarHeight, r.Theme.BarBg)
	rl.DrawRectangle(barX, y+2, int32(float32(barW)*share), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%3.0f%%", share*100), barX+barW+5, y, r.Theme.FontSize, r.Theme.Value)

	return y + r.Theme.LineHeight + barGap
}

// DrawColorSwatch draws a label with a colour square in the value column.
func (r *Renderer) DrawColorSwatch(x, y int32, label string, color rl.Color) int32 {
	r.drawLabel(x, y, label)
	rl.DrawRectangle(x+r.Theme.LabelWidth, y+1, swatchSize, swatchSize, color)
	rl.DrawRectangleLines(x+r.Theme.LabelWidth, y+1, swatchSize, swatchSize, r.Theme.PanelBorder)
	return y + r.Theme.LineHeight
}

// DrawField draws one field for data.
func (r *Renderer) DrawField(x, y int32, f Field, data any) int32 {
	if f.Swatch != nil {
		return r.DrawColorSwatch(x, y, f.Label, f.Swatch(data))
	}
	var text string
	if f.Text != nil {
		text = f.Text(data)
	}
	return r.DrawLabelValue(x, y, f.Label, text)
}

// DrawSection draws a section's title and fields, or nothing if it is hidden.
func (r *Renderer) DrawSection(x, y int32, s Section, data any) int32 {
	if s.Visible != nil && !s.Visible(data) {
		return y
	}
	if s.Title != "" {
		y = r.DrawSectionHeader(x, y, s.Title)
	}
	for _, f := range s.Fields {
		y = r.DrawField(x, y, f, data)
	}
	return y + sectionGap
}

// SectionHeight returns the height DrawSection uses for data.
func (r *Renderer) SectionHeight(s Section, data any) int32 {
	if s.Visible != nil && !s.Visible(data) {
		return 0
	}
	rows := int32(len(s.Fields))
	if s.Title != "" {
		rows++
	}
	return rows*r.Theme.LineHeight + sectionGap
}
