package board

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/hailam/gridplay/internal/bitboard"
)

// State is the mutable part of a position.
type State[L bitboard.Limbs] struct {
	// Pieces has one bitboard per piece type, across all teams.
	Pieces []bitboard.BitBoard[L]
	// Teams has one bitboard per team, across all piece types.
	Teams []bitboard.BitBoard[L]

	All       bitboard.BitBoard[L]
	FirstMove bitboard.BitBoard[L]
	Gaps      bitboard.BitBoard[L]

	MovingTeam  int
	CurrentTurn int
	SubMoves    int
	FullMoves   int
}

// Board is a position of a Game together with the history that led to
// it. A Board is owned by one goroutine; use Clone to hand a copy to
// another.
type Board[L bitboard.Limbs] struct {
	State[L]

	Game     *Game[L]
	Geometry *Geometry[L]
	History  []HistoryEntry[L]

	// seeded counts the leading history entries that describe the
	// position itself rather than moves played on it.
	seeded int
}

// NewBoard returns an empty board of game with team 0 to move.
func NewBoard[L bitboard.Limbs](game *Game[L]) *Board[L] {
	geo := game.Geometry()
	return &Board[L]{
		State: State[L]{
			Pieces:    make([]bitboard.BitBoard[L], len(game.Pieces)),
			Teams:     make([]bitboard.BitBoard[L], geo.Teams()),
			FullMoves: 1,
		},
		Game:     game,
		Geometry: geo,
		History:  make([]HistoryEntry[L], 0, 64),
	}
}

// Clone returns an independent copy sharing only the immutable geometry.
func (b *Board[L]) Clone() *Board[L] {
	c := *b
	c.Pieces = slices.Clone(b.Pieces)
	c.Teams = slices.Clone(b.Teams)
	c.History = slices.Clone(b.History)
	return &c
}

// Load replaces the position with the one described by fen. The board is
// left untouched if fen does not decode.
func (b *Board[L]) Load(fen string) error {
	nb, err := b.Game.Load(fen)
	if err != nil {
		return err
	}
	*b = *nb
	return nil
}

// Bit returns the single-square mask of sq.
func (b *Board[L]) Bit(sq Square) bitboard.BitBoard[L] {
	return bitboard.FromIndex[L](int(sq))
}

// Lookup returns the precomputed table entry of piece on sq.
func (b *Board[L]) Lookup(piece int, sq Square) Lookup[L] {
	return b.Geometry.Lookups[piece][sq]
}

// Empty returns the squares that hold neither a piece nor a gap.
func (b *Board[L]) Empty() bitboard.BitBoard[L] {
	return b.Geometry.Full.AndNot(b.All).AndNot(b.Gaps)
}

// Enemies returns the squares held by any team other than team.
func (b *Board[L]) Enemies(team int) bitboard.BitBoard[L] {
	return b.All.AndNot(b.Teams[team])
}

// Place puts piece of team on an empty square.
func (b *Board[L]) Place(piece, team int, sq Square, firstMove bool) {
	bit := b.Bit(sq)
	b.Pieces[piece] = b.Pieces[piece].Or(bit)
	b.Teams[team] = b.Teams[team].Or(bit)
	b.All = b.All.Or(bit)
	if firstMove {
		b.FirstMove = b.FirstMove.Or(bit)
	}
}

// Remove clears whatever stands on sq.
func (b *Board[L]) Remove(sq Square) {
	bit := b.Bit(sq)
	for i := range b.Pieces {
		b.Pieces[i] = b.Pieces[i].AndNot(bit)
	}
	for i := range b.Teams {
		b.Teams[i] = b.Teams[i].AndNot(bit)
	}
	b.All = b.All.AndNot(bit)
	b.FirstMove = b.FirstMove.AndNot(bit)
}

// SetGap marks sq as permanently unusable.
func (b *Board[L]) SetGap(sq Square) {
	b.Remove(sq)
	b.Gaps = b.Gaps.Or(b.Bit(sq))
}

// PieceAt returns the piece type and team on sq.
func (b *Board[L]) PieceAt(sq Square) (piece, team int, ok bool) {
	bit := b.Bit(sq)
	if !b.All.Intersects(bit) {
		return 0, 0, false
	}
	piece = slices.IndexFunc(b.Pieces, func(p bitboard.BitBoard[L]) bool { return p.Intersects(bit) })
	team = slices.IndexFunc(b.Teams, func(t bitboard.BitBoard[L]) bool { return t.Intersects(bit) })
	return piece, team, piece >= 0 && team >= 0
}

// Validate checks that the occupancy bitboards agree with each other.
func (b *Board[L]) Validate() error {
	var teams, pieces bitboard.BitBoard[L]
	for i, t := range b.Teams {
		if teams.Intersects(t) {
			return fmt.Errorf("team %d overlaps another team", i)
		}
		teams = teams.Or(t)
	}
	for i, p := range b.Pieces {
		if pieces.Intersects(p) {
			return fmt.Errorf("piece %d overlaps another piece type", i)
		}
		pieces = pieces.Or(p)
	}

	var errs []error
	if teams != b.All {
		errs = append(errs, fmt.Errorf("teams %v do not match occupancy %v", teams, b.All))
	}
	if pieces != b.All {
		errs = append(errs, fmt.Errorf("pieces %v do not match occupancy %v", pieces, b.All))
	}
	if b.All.Intersects(b.Gaps) {
		errs = append(errs, fmt.Errorf("pieces stand on gaps %v", b.All.And(b.Gaps)))
	}
	if b.All.AndNot(b.Geometry.Full).More() {
		errs = append(errs, fmt.Errorf("pieces outside the board %v", b.All))
	}
	return errors.Join(errs...)
}

// Char returns the notation letter of the occupant of sq, '-' for a gap
// and '.' for an empty square. With more than two teams single-letter
// pieces are always lower case and the team is written separately.
func (b *Board[L]) Char(sq Square) byte {
	if b.Gaps.IsSet(int(sq)) {
		return '-'
	}
	piece, team, ok := b.PieceAt(sq)
	if !ok {
		return '.'
	}
	sym := b.Game.Pieces[piece].Symbol()
	if b.Geometry.Teams() > 2 && len(sym.Teams) == 0 {
		return lower(sym.Char)
	}
	return sym.For(team)
}

// String returns a diagram of the board followed by the counters.
func (b *Board[L]) String() string {
	geo := b.Geometry
	var sb strings.Builder
	sb.WriteString("\n")
	for row := 0; row < geo.Rows; row++ {
		fmt.Fprintf(&sb, "%2d  ", geo.Rows-row)
		for col := 0; col < geo.Cols; col++ {
			sb.WriteByte(b.Char(geo.At(row, col)))
			sb.WriteByte(' ')
		}
		sb.WriteString("\n")
	}
	sb.WriteString("\n    ")
	for col := 0; col < geo.Cols; col++ {
		sb.WriteByte(bitboard.ColumnLetter(col))
		sb.WriteByte(' ')
	}
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Team to move: %d\n", b.MovingTeam)
	if geo.Turns() > 1 {
		fmt.Fprintf(&sb, "Turn: %d\n", b.CurrentTurn)
	}
	fmt.Fprintf(&sb, "Sub moves: %d\n", b.SubMoves)
	fmt.Fprintf(&sb, "Full moves: %d\n", b.FullMoves)
	fmt.Fprintf(&sb, "Hash: %016x\n", b.Hash())
	return sb.String()
}
