package board

import "github.com/hailam/gridplay/internal/bitboard"

// Perft counts the leaves of the legal move tree of the given depth.
func (b *Board[L]) Perft(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	moves := b.GenerateLegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}

	var nodes uint64
	for _, m := range moves {
		b.MakeMove(m)
		nodes += b.Perft(depth - 1)
		b.UndoMove()
	}
	return nodes
}

// PerftPseudo counts the same tree as Perft but generates pseudolegal
// moves and checks only the move being played.
func (b *Board[L]) PerftPseudo(depth int) uint64 {
	if depth == 0 {
		return 1
	}

	ctrl := b.Game.Controller
	var nodes uint64
	for _, m := range b.GenerateMoves(ModeNormal) {
		if !ctrl.IsLegal(b, m) {
			continue
		}
		if depth == 1 {
			nodes++
			continue
		}
		b.MakeMove(m)
		nodes += b.PerftPseudo(depth - 1)
		b.UndoMove()
	}
	return nodes
}

// Branch is the node count below one root move.
type Branch struct {
	Move     Move
	Notation string
	Nodes    uint64
}

// Divide returns the perft count of depth split by root move.
func (b *Board[L]) Divide(depth int) []Branch {
	return DivideWith(b, depth, (*Board[L]).Perft)
}

// DivideWith splits a count by root move using count for each subtree.
func DivideWith[L bitboard.Limbs](b *Board[L], depth int, count func(*Board[L], int) uint64) []Branch {
	if depth < 1 {
		return nil
	}
	moves := b.GenerateLegalMoves()
	branches := make([]Branch, 0, len(moves))
	for _, m := range moves {
		notation := b.EncodeMove(m)
		b.MakeMove(m)
		branches = append(branches, Branch{Move: m, Notation: notation, Nodes: count(b, depth-1)})
		b.UndoMove()
	}
	return branches
}
