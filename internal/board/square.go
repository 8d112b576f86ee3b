// Package board implements a generic bitboard game board: geometry, move
// generation, reversible make/unmake, hashing, FEN and perft.
package board

import (
	"fmt"
	"strconv"

	"github.com/hailam/gridplay/internal/bitboard"
)

// Square is a 0-based square index. Square 0 is the top-left corner;
// indices grow to the right, then downward.
type Square int

// NoSquare marks an absent square, such as the origin of a drop.
const NoSquare Square = -1

// IsValid returns true if the square is not NoSquare.
func (sq Square) IsValid() bool {
	return sq >= 0
}

// EncodeSquare returns the file/rank name of a square (e.g., "e4").
// Files run a..z then A..Z; rank 1 is the bottom row.
func (g *Geometry[L]) EncodeSquare(sq Square) string {
	if !sq.IsValid() {
		return "-"
	}
	col := int(sq) % g.Cols
	row := g.Rows - int(sq)/g.Cols
	return string(bitboard.ColumnLetter(col)) + strconv.Itoa(row)
}

// DecodeSquare parses a file/rank name into a Square.
func (g *Geometry[L]) DecodeSquare(s string) (Square, error) {
	if len(s) < 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	col := bitboard.ColumnIndex(s[0])
	row, err := strconv.Atoi(s[1:])
	if err != nil || col < 0 || col >= g.Cols || row < 1 || row > g.Rows {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, s)
	}

	return Square((g.Rows-row)*g.Cols + col), nil
}

// EncodeSquare returns the file/rank name of a square on this board.
func (b *Board[L]) EncodeSquare(sq Square) string {
	return b.Geometry.EncodeSquare(sq)
}

// DecodeSquare parses a file/rank name on this board.
func (b *Board[L]) DecodeSquare(s string) (Square, error) {
	return b.Geometry.DecodeSquare(s)
}
