package render

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

func newFace(ttf []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// faces holds the label and piece letter fonts.
type faces struct {
	regular font.Face
	bold    font.Face
}

func newFaces(squareSize int) (faces, error) {
	regular, err := newFace(goregular.TTF, float64(squareSize)*0.28)
	if err != nil {
		return faces{}, err
	}
	bold, err := newFace(gobold.TTF, float64(squareSize)*0.45)
	if err != nil {
		return faces{}, err
	}
	return faces{regular: regular, bold: bold}, nil
}

// drawCentered writes s centered on (cx, cy).
func drawCentered(dst *image.RGBA, face font.Face, s string, cx, cy int, c color.Color) {
	m := face.Metrics()
	width := font.MeasureString(face, s).Round()
	height := (m.Ascent + m.Descent).Round()
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx-width/2, cy-height/2+m.Ascent.Round()),
	}
	d.DrawString(s)
}
