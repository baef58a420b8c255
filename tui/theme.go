package tui

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme holds the styles used when rendering a form.
type Theme struct {
	Label    tcell.Style
	Group    tcell.Style
	Field    tcell.Style
	Focused  tcell.Style
	Disabled tcell.Style
	Error    tcell.Style
}

// DefaultTheme derives a theme from two anchor colors. The focused style
// blends the accent toward the background so it reads as a highlight
// rather than a block of raw accent color.
func DefaultTheme() Theme {
	bg := colorful.Color{R: 0.10, G: 0.10, B: 0.12}
	fg := colorful.Color{R: 0.85, G: 0.85, B: 0.85}
	accent := colorful.Color{R: 0.25, G: 0.55, B: 0.95}

	focusBg := bg.BlendLab(accent, 0.35).Clamped()
	dimFg := fg.BlendLab(bg, 0.55).Clamped()

	return Theme{
		Label:    styleFrom(dimFg, bg),
		Group:    styleFrom(accent, bg).Bold(true),
		Field:    styleFrom(fg, bg),
		Focused:  styleFrom(fg, focusBg),
		Disabled: styleFrom(dimFg, bg).Dim(true),
		Error:    styleFrom(colorful.Color{R: 0.95, G: 0.35, B: 0.35}, bg),
	}
}

func styleFrom(fg, bg colorful.Color) tcell.Style {
	return tcell.StyleDefault.
		Foreground(toTcell(fg)).
		Background(toTcell(bg))
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
