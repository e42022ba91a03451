// Package ui provides raylib panels for the simulation.
// Panels list their rows as field descriptors so new values can be shown
// without touching the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Field is one labelled row of a panel. Text is drawn unless Swatch is set.
type Field struct {
	Label  string
	Text   func(any) string
	Swatch func(any) rl.Color
}

// Section groups fields under an optional title.
type Section struct {
	Title   string
	Fields  []Field
	Visible func(any) bool // nil = always shown
}

// Theme holds panel colours and metrics.
type Theme struct {
	PanelBg, PanelBorder  rl.Color
	Header, Label, Value  rl.Color
	BarBg, BarFill        rl.Color
	Padding, LineHeight   int32
	LabelWidth, BarHeight int32
	FontSize, HeaderSize  int32
}

// DefaultTheme is a dark translucent theme that keeps the sky visible.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 10, G: 10, B: 18, A: 200},
		PanelBorder: rl.Color{R: 60, G: 60, B: 80, A: 255},
		Header:      rl.Yellow,
		Label:       rl.LightGray,
		Value:       rl.RayWhite,
		BarBg:       rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:     rl.Color{R: 230, G: 160, B: 60, A: 255},
		Padding:     10,
		LineHeight:  16,
		LabelWidth:  110,
		BarHeight:   12,
		FontSize:    12,
		HeaderSize:  14,
	}
}
