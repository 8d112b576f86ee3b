// Package render draws board diagrams as PNG images.
package render

import "image/color"

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare color.RGBA
	DarkSquare  color.RGBA
	GapSquare   color.RGBA
	LastMove    color.RGBA
	Background  color.RGBA
	TextColor   color.RGBA
	Outline     color.RGBA
	// Teams holds the disc color of each team; teams past the end reuse
	// the palette from the start.
	Teams []color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare: color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:  color.RGBA{181, 136, 99, 255},  // Brown
		GapSquare:   color.RGBA{40, 44, 52, 255},
		LastMove:    color.RGBA{180, 190, 100, 90},
		Background:  color.RGBA{60, 64, 72, 255},
		TextColor:   color.RGBA{220, 220, 220, 255},
		Outline:     color.RGBA{20, 20, 20, 255},
		Teams: []color.RGBA{
			{250, 250, 245, 255},
			{35, 35, 35, 255},
			{200, 60, 60, 255},
			{60, 110, 200, 255},
		},
	}
}

// team returns the disc color of team.
func (t *Theme) team(team int) color.RGBA {
	return t.Teams[team%len(t.Teams)]
}

// contrast returns black or white, whichever reads better on c.
func contrast(c color.RGBA) color.RGBA {
	luma := 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
	if luma > 128*1000 {
		return color.RGBA{20, 20, 20, 255}
	}
	return color.RGBA{245, 245, 245, 255}
}
