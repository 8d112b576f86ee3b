package board

import (
	"github.com/rs/zerolog/log"

	"github.com/hailam/gridplay/internal/bitboard"
)

// DebugMoveValidation enables occupancy checks before every move
// generation. Violations are logged, not fatal.
var DebugMoveValidation = false

// GenerateMoves returns the pseudolegal moves of the team to move.
func (b *Board[L]) GenerateMoves(mode Mode) []Move {
	if DebugMoveValidation {
		if err := b.Validate(); err != nil {
			log.Error().Err(err).Str("game", b.Game.Name).Str("fen", b.FEN()).Msg("movegen: corrupt board")
		}
	}

	moves := make([]Move, 0, 64)
	moves = b.AddTeamMoves(moves, b.MovingTeam, mode)
	return b.Game.Controller.AddMoves(b, mode, moves)
}

// GenerateLegalMoves returns the moves the team to move may play.
func (b *Board[L]) GenerateLegalMoves() []Move {
	return b.Game.Controller.TransformMoves(b, b.GenerateMoves(ModeNormal))
}

// AddTeamMoves appends the piece moves of team to dst.
func (b *Board[L]) AddTeamMoves(dst []Move, team int, mode Mode) []Move {
	own := b.Teams[team]
	for piece, p := range b.Game.Pieces {
		if adder, ok := p.(TeamActionAdder[L]); ok {
			dst = adder.AddTeamActions(dst, b, piece, team, mode)
			continue
		}

		squares := b.Pieces[piece].And(own)
		adder, custom := p.(ActionAdder[L])
		for squares.More() {
			from := Square(squares.PopLSB())
			if custom {
				dst = adder.AddActions(dst, b, from, piece, team, mode)
				continue
			}
			mask := b.Targets(p.MoveMask(b, from, piece, team, mode), team, mode)
			dst = b.AddMaskActions(dst, mask, from, piece, team)
		}
	}
	return dst
}

// Targets removes gaps, off-board bits and, outside ModeAttacks, the
// squares of team from mask.
func (b *Board[L]) Targets(mask bitboard.BitBoard[L], team int, mode Mode) bitboard.BitBoard[L] {
	mask = mask.And(b.Geometry.Full).AndNot(b.Gaps)
	if mode == ModeNormal {
		mask = mask.AndNot(b.Teams[team])
	}
	return mask
}

// AddMaskActions appends one action per square of mask.
func (b *Board[L]) AddMaskActions(dst []Move, mask bitboard.BitBoard[L], from Square, piece, team int) []Move {
	for mask.More() {
		to := Square(mask.PopLSB())
		m := NewMove(from, to, piece, team)
		if b.All.IsSet(int(to)) {
			m.Kind = Capture
		}
		dst = append(dst, m)
	}
	return dst
}

// CanMove reports whether any piece of team reaches a square of target.
// With ModeAttacks the squares of team itself count, so a defended piece
// is reported as attacked.
func (b *Board[L]) CanMove(team int, target bitboard.BitBoard[L], mode Mode) bool {
	if target.Empty() {
		return false
	}
	own := b.Teams[team]
	for piece, p := range b.Game.Pieces {
		squares := b.Pieces[piece].And(own)
		for squares.More() {
			from := Square(squares.PopLSB())
			mask := b.Targets(p.MoveMask(b, from, piece, team, mode), team, mode)
			if mask.Intersects(target) {
				return true
			}
		}
	}
	return false
}

// Attacked reports whether any team other than team attacks a square of
// target.
func (b *Board[L]) Attacked(team int, target bitboard.BitBoard[L]) bool {
	for t := range b.Teams {
		if t != team && b.CanMove(t, target, ModeAttacks) {
			return true
		}
	}
	return false
}
