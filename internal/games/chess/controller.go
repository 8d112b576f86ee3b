package chess

import (
	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

type controller[L bitboard.Limbs] struct {
	board.DefaultController[L]
}

func (c controller[L]) TransformMoves(b *board.Board[L], moves []board.Move) []board.Move {
	return board.FilterLegal(b, moves, c.IsLegal)
}

// IsLegal plays m and checks that it does not leave the mover's king
// attacked.
func (controller[L]) IsLegal(b *board.Board[L], m board.Move) bool {
	if b.Pieces[King].And(b.Enemies(m.Team)).IsSet(int(m.To)) {
		return false
	}
	b.MakeMove(m)
	safe := !InCheck(b, m.Team)
	b.UndoMove()
	return safe
}

// Resolve scores a position without legal moves: checkmate wins for the
// side giving check, anything else is stalemate.
func (controller[L]) Resolve(b *board.Board[L], legal []board.Move) board.Result {
	if len(legal) > 0 {
		return board.Result{Kind: board.Ongoing}
	}
	if InCheck(b, b.MovingTeam) {
		return board.Result{Kind: board.Win, Winner: 1 - b.MovingTeam}
	}
	return board.Result{Kind: board.Draw}
}

// EncodeMove writes m in UCI long algebraic notation (e.g., "e7e8q").
func (controller[L]) EncodeMove(b *board.Board[L], m board.Move) string {
	s := board.EncodeAction(b, m)
	if m.Kind == board.Promotion {
		s += string(b.Game.Pieces[m.Info].Symbol().For(Black))
	}
	return s
}

// ZobristExtras reserves a "no en passant" key and one key per square.
func (controller[L]) ZobristExtras(rows, cols int) int {
	return 1 + rows*cols
}

// HashExtras folds in the en passant square when a capture on it is
// possible.
func (controller[L]) HashExtras(b *board.Board[L], z *board.Zobrist) uint64 {
	if ep, ok := enPassantTarget(b); ok {
		capturers := pawn[L]{}.attacks(b.Geometry, b.Bit(ep), 1-b.MovingTeam)
		if capturers.Intersects(b.Pieces[Pawn].And(b.Teams[b.MovingTeam])) {
			return z.Extra(1 + int(ep))
		}
	}
	return z.Extra(0)
}

// PostProcess keeps the first-move flag of pawns on their two home rows
// only and drops it from pieces that never use it.
func (controller[L]) PostProcess(b *board.Board[L]) {
	geo := b.Geometry
	white := geo.RowMask(geo.Rows - 1).Or(geo.RowMask(geo.Rows - 2))
	black := geo.RowMask(0).Or(geo.RowMask(1))
	home := b.Teams[White].And(white).Or(b.Teams[Black].And(black))

	unmoved := b.Pieces[Pawn].AndNot(home)
	unmoved = unmoved.Or(b.Pieces[Knight]).Or(b.Pieces[Bishop]).Or(b.Pieces[Queen])
	b.FirstMove = b.FirstMove.AndNot(unmoved)
}
