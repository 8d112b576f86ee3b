package board

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/hailam/gridplay/internal/bitboard"
)

// ResultKind is the state of a game.
type ResultKind uint8

const (
	Ongoing ResultKind = iota
	Win
	Draw
)

// Result is the outcome of a position. Winner is set for Win.
type Result struct {
	Kind   ResultKind
	Winner int
}

func (r Result) String() string {
	switch r.Kind {
	case Win:
		return fmt.Sprintf("team %d wins", r.Winner)
	case Draw:
		return "draw"
	default:
		return "ongoing"
	}
}

// Controller holds the rules of a game that no single piece owns.
type Controller[L bitboard.Limbs] interface {
	// AddMoves appends moves that do not come from a piece, such as a
	// forced pass.
	AddMoves(b *Board[L], mode Mode, moves []Move) []Move
	// TransformMoves turns pseudolegal moves into legal moves.
	TransformMoves(b *Board[L], moves []Move) []Move
	// IsLegal checks one pseudolegal move.
	IsLegal(b *Board[L], m Move) bool
	// Resolve reports the outcome given the legal moves of the team to
	// move.
	Resolve(b *Board[L], legal []Move) Result
	EncodeMove(b *Board[L], m Move) string
	// ZobristExtras is the number of extra hash keys the controller needs.
	ZobristExtras(rows, cols int) int
	HashExtras(b *Board[L], z *Zobrist) uint64
	// PostProcess fixes up a freshly decoded position.
	PostProcess(b *Board[L])
}

// DefaultController accepts every generated move. Game controllers embed
// it and override what their rules need.
type DefaultController[L bitboard.Limbs] struct{}

func (DefaultController[L]) AddMoves(_ *Board[L], _ Mode, moves []Move) []Move { return moves }

func (DefaultController[L]) TransformMoves(_ *Board[L], moves []Move) []Move { return moves }

func (DefaultController[L]) IsLegal(*Board[L], Move) bool { return true }

func (DefaultController[L]) Resolve(_ *Board[L], legal []Move) Result {
	if len(legal) == 0 {
		return Result{Kind: Draw}
	}
	return Result{Kind: Ongoing}
}

func (DefaultController[L]) EncodeMove(b *Board[L], m Move) string {
	return EncodeAction(b, m)
}

func (DefaultController[L]) ZobristExtras(int, int) int { return 0 }

func (DefaultController[L]) HashExtras(*Board[L], *Zobrist) uint64 { return 0 }

func (DefaultController[L]) PostProcess(*Board[L]) {}

// EncodeAction writes a move as its origin and destination squares,
// the destination alone for moves without an origin, and "0000" for a
// pass.
func EncodeAction[L bitboard.Limbs](b *Board[L], m Move) string {
	if m.Pass {
		return "0000"
	}
	if !m.From.IsValid() {
		return b.EncodeSquare(m.To)
	}
	return b.EncodeSquare(m.From) + b.EncodeSquare(m.To)
}

// EncodeMove writes m in the notation of the game.
func (b *Board[L]) EncodeMove(m Move) string {
	return b.Game.Controller.EncodeMove(b, m)
}

// DecodeMove finds the legal move written as s.
func (b *Board[L]) DecodeMove(s string) (Move, error) {
	m, ok := lo.Find(b.GenerateLegalMoves(), func(m Move) bool {
		return b.EncodeMove(m) == s
	})
	if !ok {
		return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, s)
	}
	return m, nil
}

// Resolve reports the outcome of the position.
func (b *Board[L]) Resolve() Result {
	return b.Game.Controller.Resolve(b, b.GenerateLegalMoves())
}

// FilterLegal keeps the moves accepted by legal.
func FilterLegal[L bitboard.Limbs](b *Board[L], moves []Move, legal func(*Board[L], Move) bool) []Move {
	n := 0
	for _, m := range moves {
		if legal(b, m) {
			moves[n] = m
			n++
		}
	}
	return moves[:n]
}

// LegalByMakeUnmake plays m, checks that no other team attacks a royal
// piece of the mover and takes m back. Capturing a royal piece is never
// legal.
func LegalByMakeUnmake[L bitboard.Limbs](b *Board[L], m Move, royal int) bool {
	if m.Pass {
		return true
	}
	if m.To.IsValid() && b.Pieces[royal].And(b.Enemies(m.Team)).IsSet(int(m.To)) {
		return false
	}

	b.MakeMove(m)
	safe := !b.Attacked(m.Team, b.Pieces[royal].And(b.Teams[m.Team]))
	b.UndoMove()
	return safe
}
