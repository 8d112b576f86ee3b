package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"strconv"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

// Renderer draws positions onto images.
type Renderer struct {
	sprites    *SpriteManager
	theme      *Theme
	faces      faces
	squareSize int
	margin     int
}

// NewRenderer creates a renderer with squares of squareSize pixels.
func NewRenderer(squareSize int) (*Renderer, error) {
	fs, err := newFaces(squareSize)
	if err != nil {
		return nil, err
	}
	theme := DefaultTheme()
	return &Renderer{
		sprites:    NewSpriteManager(theme, squareSize),
		theme:      theme,
		faces:      fs,
		squareSize: squareSize,
		margin:     squareSize / 2,
	}, nil
}

// SquareSize returns the size of one square in pixels.
func (r *Renderer) SquareSize() int {
	return r.squareSize
}

// Theme returns the current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// squareRect returns the pixel rectangle of a square. Row 0 is drawn at
// the top with the rank labels in the left margin.
func (r *Renderer) squareRect(row, col int) image.Rectangle {
	x := r.margin + col*r.squareSize
	y := row * r.squareSize
	return image.Rect(x, y, x+r.squareSize, y+r.squareSize)
}

// Draw renders b with coordinates along the left and bottom edges.
func Draw[L bitboard.Limbs](r *Renderer, b *board.Board[L]) (*image.RGBA, error) {
	geo := b.Geometry
	img := image.NewRGBA(image.Rect(0, 0, r.margin+geo.Cols*r.squareSize, geo.Rows*r.squareSize+r.margin))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.theme.Background), image.Point{}, draw.Src)

	for row := 0; row < geo.Rows; row++ {
		for col := 0; col < geo.Cols; col++ {
			c := r.theme.LightSquare
			switch {
			case b.Gaps.IsSet(int(geo.At(row, col))):
				c = r.theme.GapSquare
			case (row+col)%2 == 1:
				c = r.theme.DarkSquare
			}
			draw.Draw(img, r.squareRect(row, col), image.NewUniform(c), image.Point{}, draw.Src)
		}
	}

	if last, ok := b.LastMove(); ok && !last.Pass {
		highlight := image.NewUniform(r.theme.LastMove)
		for _, sq := range []board.Square{last.From, last.To} {
			if sq.IsValid() {
				draw.Draw(img, r.squareRect(geo.Row(sq), geo.Col(sq)), highlight, image.Point{}, draw.Over)
			}
		}
	}

	if err := drawPieces(r, b, img); err != nil {
		return nil, err
	}
	r.drawCoordinates(img, geo.Rows, geo.Cols)
	return img, nil
}

func drawPieces[L bitboard.Limbs](r *Renderer, b *board.Board[L], img *image.RGBA) error {
	geo := b.Geometry
	for sq := range b.All.Indices(geo.Squares) {
		piece, team, ok := b.PieceAt(board.Square(sq))
		if !ok {
			continue
		}
		disc, err := r.sprites.Disc(team)
		if err != nil {
			return err
		}
		rect := r.squareRect(geo.Row(board.Square(sq)), geo.Col(board.Square(sq)))
		draw.Draw(img, rect, disc, image.Point{}, draw.Over)

		// Pieces named per team, like stones, are told apart by color alone.
		sym := b.Game.Pieces[piece].Symbol()
		if len(sym.Teams) == 0 {
			label := string(sym.For(0))
			cx, cy := rect.Min.X+r.squareSize/2, rect.Min.Y+r.squareSize/2
			drawCentered(img, r.faces.bold, label, cx, cy, contrast(r.theme.team(team)))
		}
	}
	return nil
}

// drawCoordinates draws column letters and rank numbers in the margins.
func (r *Renderer) drawCoordinates(img *image.RGBA, rows, cols int) {
	half := r.margin / 2
	for row := 0; row < rows; row++ {
		cy := row*r.squareSize + r.squareSize/2
		drawCentered(img, r.faces.regular, strconv.Itoa(rows-row), half, cy, r.theme.TextColor)
	}
	for col := 0; col < cols; col++ {
		cx := r.margin + col*r.squareSize + r.squareSize/2
		label := string(bitboard.ColumnLetter(col))
		drawCentered(img, r.faces.regular, label, cx, rows*r.squareSize+half, r.theme.TextColor)
	}
}

// WritePNG renders b and encodes it as PNG.
func WritePNG[L bitboard.Limbs](w io.Writer, r *Renderer, b *board.Board[L]) error {
	img, err := Draw(r, b)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
