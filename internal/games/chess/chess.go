// Package chess defines chess on rectangular boards of any size, with
// castling from the back rank, en passant and promotion.
package chess

import (
	"fmt"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

// StartFEN is the standard starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Piece indices.
const (
	Pawn = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

// Teams.
const (
	White = 0
	Black = 1
)

// PromotionPieces are the piece types a pawn may become.
var PromotionPieces = []int{Queen, Rook, Bishop, Knight}

// NewGame returns chess on a rows x cols board.
func NewGame[L bitboard.Limbs](rows, cols int) *board.Game[L] {
	name := "chess"
	if rows != 8 || cols != 8 {
		name = fmt.Sprintf("chess%dx%d", rows, cols)
	}
	return &board.Game[L]{
		Name:  name,
		Rows:  rows,
		Cols:  cols,
		Teams: 2,
		Pieces: []board.Piece[L]{
			Pawn:   pawn[L]{},
			Knight: knight[L]{},
			Bishop: slider[L]{char: 'b', dirs: board.Diagonal},
			Rook:   slider[L]{char: 'r', dirs: board.Orthogonal},
			Queen:  slider[L]{char: 'q', dirs: board.AllAround},
			King:   king[L]{},
		},
		Controller: controller[L]{},
		FEN: board.FenOptions[L]{
			Args: []board.FenArgument[L]{
				board.TeamArgument[L]{Symbols: []string{"w", "b"}},
				castlingArgument[L]{},
				enPassantArgument[L]{},
				board.SubMovesArgument[L]{},
				board.FullMovesArgument[L]{},
			},
		},
	}
}

// New returns standard 8x8 chess.
func New() *board.Game[bitboard.W1] {
	return NewGame[bitboard.W1](8, 8)
}

// forward is the row step of the pawns of team.
func forward(team int) int {
	if team == White {
		return -1
	}
	return 1
}

// promotionRow is the row where pawns of team promote.
func promotionRow[L bitboard.Limbs](g *board.Geometry[L], team int) int {
	if team == White {
		return 0
	}
	return g.Rows - 1
}

// Attackers returns the pieces of team by that attack sq.
func Attackers[L bitboard.Limbs](b *board.Board[L], sq board.Square, by int) bitboard.BitBoard[L] {
	geo := b.Geometry
	occupied := b.All.Or(b.Gaps)
	bit := geo.Bit(sq)
	dr := forward(by)

	queens := b.Pieces[Queen]
	attackers := geo.Offset(bit, -dr, -1).Or(geo.Offset(bit, -dr, 1)).And(b.Pieces[Pawn])
	attackers = attackers.Or(b.Lookup(Knight, sq).All.And(b.Pieces[Knight]))
	attackers = attackers.Or(b.Lookup(King, sq).All.And(b.Pieces[King]))
	attackers = attackers.Or(board.RayAttacks(geo.Lookups[Bishop], sq, occupied).And(b.Pieces[Bishop].Or(queens)))
	attackers = attackers.Or(board.RayAttacks(geo.Lookups[Rook], sq, occupied).And(b.Pieces[Rook].Or(queens)))
	return attackers.And(b.Teams[by])
}

// IsSquareAttacked reports whether team by attacks sq.
func IsSquareAttacked[L bitboard.Limbs](b *board.Board[L], sq board.Square, by int) bool {
	return Attackers(b, sq, by).More()
}

// InCheck reports whether the king of team is attacked.
func InCheck[L bitboard.Limbs](b *board.Board[L], team int) bool {
	kings := b.Pieces[King].And(b.Teams[team])
	for kings.More() {
		if IsSquareAttacked(b, board.Square(kings.PopLSB()), 1-team) {
			return true
		}
	}
	return false
}
