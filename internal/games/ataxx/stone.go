package ataxx

import (
	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

type stone[L bitboard.Limbs] struct{}

func (stone[L]) Symbol() board.Symbol {
	return board.Symbol{Char: 's', Teams: []byte{'x', 'o'}}
}

// neighbours returns every square one king step from set.
func neighbours[L bitboard.Limbs](g *board.Geometry[L], set bitboard.BitBoard[L]) bitboard.BitBoard[L] {
	var ring bitboard.BitBoard[L]
	for _, d := range board.AllAround {
		ring = ring.Or(g.Step(set, d))
	}
	return ring
}

// GenerateLookup stores the jump squares in All and the clone squares in
// Rays[0].
func (stone[L]) GenerateLookup(g *board.Geometry[L], from board.Square) board.Lookup[L] {
	bit := g.Bit(from)
	single := neighbours(g, bit)
	double := neighbours(g, single.Or(bit)).AndNot(single).AndNot(bit)
	return board.Lookup[L]{All: double, Rays: []bitboard.BitBoard[L]{single}}
}

func (stone[L]) MoveMask(b *board.Board[L], from board.Square, piece, _ int, _ board.Mode) bitboard.BitBoard[L] {
	lookup := b.Lookup(piece, from)
	return lookup.All.Or(lookup.Rays[0]).And(b.Empty())
}

// AddTeamActions adds one clone per reachable empty square, whatever the
// number of stones that could clone there, and one jump per stone and
// destination.
func (stone[L]) AddTeamActions(dst []board.Move, b *board.Board[L], piece, team int, _ board.Mode) []board.Move {
	stones := b.Pieces[piece].And(b.Teams[team])
	if stones.Empty() {
		return dst
	}
	empty := b.Empty()

	clones := neighbours(b.Geometry, stones).And(empty)
	for clones.More() {
		m := board.NewMove(board.NoSquare, board.Square(clones.PopLSB()), piece, team)
		m.Kind = board.Clone
		dst = append(dst, m)
	}

	for stones.More() {
		from := board.Square(stones.PopLSB())
		jumps := b.Lookup(piece, from).All.And(empty)
		for jumps.More() {
			m := board.NewMove(from, board.Square(jumps.PopLSB()), piece, team)
			m.Kind = board.Jump
			dst = append(dst, m)
		}
	}
	return dst
}

// MakeMove places the stone, lifting it from its origin on a jump, and
// turns the adjacent enemy stones.
func (stone[L]) MakeMove(b *board.Board[L], a board.Action) {
	enemy := 1 - a.Team
	b.PushHistory(board.HistoryEntry[L]{
		Move: board.Move{Action: a},
		Kind: board.HistoryAny,
		Updates: []board.Update[L]{
			b.PieceUpdate(a.Piece), b.TeamUpdate(a.Team), b.TeamUpdate(enemy),
		},
	})

	to := b.Bit(a.To)
	if a.From.IsValid() {
		from := b.Bit(a.From)
		b.Pieces[a.Piece] = b.Pieces[a.Piece].AndNot(from)
		b.Teams[a.Team] = b.Teams[a.Team].AndNot(from)
		b.All = b.All.AndNot(from)
		b.FirstMove = b.FirstMove.AndNot(from)
	}
	b.Pieces[a.Piece] = b.Pieces[a.Piece].Or(to)
	b.Teams[a.Team] = b.Teams[a.Team].Or(to)
	b.All = b.All.Or(to)

	flipped := b.Teams[enemy].And(b.Lookup(a.Piece, a.To).Rays[0])
	b.Teams[enemy] = b.Teams[enemy].Xor(flipped)
	b.Teams[a.Team] = b.Teams[a.Team].Or(flipped)
	b.AdvanceTurn()
}
