package board

import "github.com/hailam/gridplay/internal/bitboard"

// Mode selects what a move mask answers.
type Mode int

const (
	// ModeNormal asks for the squares a piece may move to.
	ModeNormal Mode = iota
	// ModeAttacks asks for the squares a piece threatens, including
	// squares held by its own team.
	ModeAttacks
)

func (m Mode) String() string {
	if m == ModeAttacks {
		return "attacks"
	}
	return "normal"
}

// Symbol is the notation of a piece. A piece either has one letter, upper
// case for team 0 and lower case otherwise, or one letter per team.
type Symbol struct {
	Char  byte
	Teams []byte
}

// For returns the letter of the piece for team.
func (s Symbol) For(team int) byte {
	if len(s.Teams) > 0 {
		return s.Teams[team]
	}
	if team == 0 {
		return upper(s.Char)
	}
	return lower(s.Char)
}

// Match reports whether c names this piece and for which team. Single
// letter pieces report team -1 for games with more than two teams, where
// the team comes from a {n} suffix.
func (s Symbol) Match(c byte, teams int) (int, bool) {
	if len(s.Teams) > 0 {
		for t, tc := range s.Teams {
			if tc == c {
				return t, true
			}
		}
		return 0, false
	}
	if lower(c) != lower(s.Char) {
		return 0, false
	}
	if teams > 2 {
		return -1, true
	}
	if c == upper(s.Char) {
		return 0, true
	}
	return 1, true
}

func upper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func lower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// Piece is the behaviour every piece type provides. The remaining
// capabilities are optional and found by type assertion.
type Piece[L bitboard.Limbs] interface {
	Symbol() Symbol
	// MoveMask returns the destinations of the piece of type piece and
	// team standing on from. Own-team squares are removed by the caller
	// in ModeNormal.
	MoveMask(b *Board[L], from Square, piece, team int, mode Mode) bitboard.BitBoard[L]
}

// LookupGenerator is implemented by pieces with a precomputed table. The
// table is available as Board.Lookup during play.
type LookupGenerator[L bitboard.Limbs] interface {
	GenerateLookup(g *Geometry[L], from Square) Lookup[L]
}

// MoveMaker is implemented by pieces whose moves change more than the
// standard quiet or capture transition.
type MoveMaker[L bitboard.Limbs] interface {
	MakeMove(b *Board[L], a Action)
}

// ActionAdder is implemented by pieces that expand one origin square into
// actions themselves (promotions, castling).
type ActionAdder[L bitboard.Limbs] interface {
	AddActions(dst []Move, b *Board[L], from Square, piece, team int, mode Mode) []Move
}

// TeamActionAdder is implemented by pieces that generate the moves of all
// their squares at once.
type TeamActionAdder[L bitboard.Limbs] interface {
	AddTeamActions(dst []Move, b *Board[L], piece, team int, mode Mode) []Move
}
