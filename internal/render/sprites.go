package render

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
)

const discSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">` +
	`<circle cx="50" cy="50" r="40" fill="%s" stroke="%s" stroke-width="4"/></svg>`

func hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// SpriteManager rasterizes and caches one disc sprite per team.
type SpriteManager struct {
	theme       *Theme
	discs       map[int]*image.RGBA
	size        int     // Display size
	renderScale float64 // Render at higher resolution, then scale down
}

// NewSpriteManager creates a sprite manager with discs of the given size.
func NewSpriteManager(theme *Theme, size int) *SpriteManager {
	return &SpriteManager{
		theme:       theme,
		discs:       make(map[int]*image.RGBA),
		size:        size,
		renderScale: 3.0,
	}
}

// Disc returns the sprite of team, rendering it on first use.
func (sm *SpriteManager) Disc(team int) (*image.RGBA, error) {
	if img, ok := sm.discs[team]; ok {
		return img, nil
	}

	svg := fmt.Sprintf(discSVG, hex(sm.theme.team(team)), hex(sm.theme.Outline))
	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("parse disc svg: %w", err)
	}

	renderSize := int(float64(sm.size) * sm.renderScale)
	icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))
	rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
	scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
	raster := rasterx.NewDasher(renderSize, renderSize, scanner)
	icon.Draw(raster, 1.0)

	disc := image.NewRGBA(image.Rect(0, 0, sm.size, sm.size))
	draw.CatmullRom.Scale(disc, disc.Bounds(), rgba, rgba.Bounds(), draw.Over, nil)
	sm.discs[team] = disc
	return disc, nil
}

// Size returns the size of the sprites.
func (sm *SpriteManager) Size() int {
	return sm.size
}
