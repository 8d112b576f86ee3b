// Package ataxx defines Ataxx: stones clone to a neighbouring square or
// jump two squares away, and flip the enemy stones next to where they
// land.
package ataxx

import (
	"fmt"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

// StartFEN is the standard starting position.
const StartFEN = "x5o/7/7/7/7/7/o5x x 0 1"

// Stone is the only piece.
const Stone = 0

// Teams.
const (
	X = 0
	O = 1
)

// NewGame returns Ataxx on a rows x cols board.
func NewGame[L bitboard.Limbs](rows, cols int) *board.Game[L] {
	name := "ataxx"
	if rows != 7 || cols != 7 {
		name = fmt.Sprintf("ataxx%dx%d", rows, cols)
	}
	return &board.Game[L]{
		Name:       name,
		Rows:       rows,
		Cols:       cols,
		Teams:      2,
		Pieces:     []board.Piece[L]{Stone: stone[L]{}},
		Controller: controller[L]{},
		FEN: board.FenOptions[L]{
			Args: []board.FenArgument[L]{
				board.TeamArgument[L]{Symbols: []string{"x", "o"}},
				board.SubMovesArgument[L]{},
				board.FullMovesArgument[L]{},
			},
		},
	}
}

// New returns standard 7x7 Ataxx.
func New() *board.Game[bitboard.W1] {
	return NewGame[bitboard.W1](7, 7)
}

type controller[L bitboard.Limbs] struct {
	board.DefaultController[L]
}

// AddMoves passes when the team to move is stuck but still has stones
// and the other team can move. Otherwise a stuck team has no move at all
// and the game is over.
func (controller[L]) AddMoves(b *board.Board[L], mode board.Mode, moves []board.Move) []board.Move {
	if len(moves) > 0 || mode != board.ModeNormal {
		return moves
	}
	team := b.MovingTeam
	if b.Teams[team].More() && len(b.AddTeamMoves(nil, 1-team, mode)) > 0 {
		moves = append(moves, board.PassMove(team))
	}
	return moves
}

// Resolve gives a finished game to the team with more stones. The game
// is over once a team has lost all its stones or the team to move has
// neither a move nor a pass.
func (controller[L]) Resolve(b *board.Board[L], legal []board.Move) board.Result {
	x, o := b.Teams[X].PopCount(), b.Teams[O].PopCount()
	if len(legal) > 0 && x > 0 && o > 0 {
		return board.Result{Kind: board.Ongoing}
	}
	switch {
	case x > o:
		return board.Result{Kind: board.Win, Winner: X}
	case o > x:
		return board.Result{Kind: board.Win, Winner: O}
	default:
		return board.Result{Kind: board.Draw}
	}
}

// PostProcess drops first-move flags; stones never use them.
func (controller[L]) PostProcess(b *board.Board[L]) {
	b.FirstMove = bitboard.New[L]()
}
