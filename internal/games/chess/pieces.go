package chess

import (
	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

type knight[L bitboard.Limbs] struct{}

func (knight[L]) Symbol() board.Symbol { return board.Symbol{Char: 'n'} }

func (knight[L]) GenerateLookup(g *board.Geometry[L], from board.Square) board.Lookup[L] {
	return g.KnightLookup(from)
}

func (knight[L]) MoveMask(b *board.Board[L], from board.Square, piece, _ int, _ board.Mode) bitboard.BitBoard[L] {
	return b.Lookup(piece, from).All
}

// slider covers bishops, rooks and queens.
type slider[L bitboard.Limbs] struct {
	char byte
	dirs []board.Direction
}

func (s slider[L]) Symbol() board.Symbol { return board.Symbol{Char: s.char} }

func (s slider[L]) GenerateLookup(g *board.Geometry[L], from board.Square) board.Lookup[L] {
	return g.RayLookup(from, s.dirs)
}

func (slider[L]) MoveMask(b *board.Board[L], from board.Square, piece, _ int, _ board.Mode) bitboard.BitBoard[L] {
	return board.RayAttacks(b.Geometry.Lookups[piece], from, b.All.Or(b.Gaps))
}
