package board

import "github.com/hailam/gridplay/internal/bitboard"

// MoveKind classifies an action where the squares alone are ambiguous.
type MoveKind uint8

const (
	Normal MoveKind = iota
	Capture
	Castle
	EnPassant
	Promotion
	Clone
	Jump
)

var moveKindNames = [...]string{"normal", "capture", "castle", "en passant", "promotion", "clone", "jump"}

func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return "unknown"
}

// Action moves piece of team from From to To. From is NoSquare for moves
// without an origin. Info carries rule data such as a promotion piece or
// the rook square of a castle.
type Action struct {
	From  Square
	To    Square
	Team  int
	Piece int
	Info  int
	Kind  MoveKind
}

// Move is an Action or, when Pass is set, a skipped turn.
type Move struct {
	Action
	Pass bool
}

// NewMove returns a plain move from one square to another.
func NewMove(from, to Square, piece, team int) Move {
	return Move{Action: Action{From: from, To: to, Piece: piece, Team: team}}
}

// PassMove returns the pass of team.
func PassMove(team int) Move {
	return Move{Action: Action{From: NoSquare, To: NoSquare, Team: team}, Pass: true}
}

// HistoryKind tags which fields a history entry restores.
type HistoryKind uint8

const (
	// HistoryNone entries only changed the turn counters.
	HistoryNone HistoryKind = iota
	// HistorySingle entries changed one team and one piece bitboard.
	HistorySingle
	// HistoryAny entries changed an ordered list of bitboards.
	HistoryAny
)

// Target selects the bitboard slice an Update writes to.
type Target uint8

const (
	TargetTeam Target = iota
	TargetPiece
)

// Update is the previous value of one team or piece bitboard.
type Update[L bitboard.Limbs] struct {
	Target Target
	Index  int
	Prev   bitboard.BitBoard[L]
}

// HistoryEntry records what one move changed.
type HistoryEntry[L bitboard.Limbs] struct {
	Move      Move
	Kind      HistoryKind
	All       bitboard.BitBoard[L]
	FirstMove bitboard.BitBoard[L]
	// Team and Piece are set for HistorySingle.
	Team  Update[L]
	Piece Update[L]
	// Updates is set for HistoryAny and restored in reverse order.
	Updates []Update[L]
}

// TeamUpdate records the current value of a team bitboard.
func (b *Board[L]) TeamUpdate(team int) Update[L] {
	return Update[L]{Target: TargetTeam, Index: team, Prev: b.Teams[team]}
}

// PieceUpdate records the current value of a piece bitboard.
func (b *Board[L]) PieceUpdate(piece int) Update[L] {
	return Update[L]{Target: TargetPiece, Index: piece, Prev: b.Pieces[piece]}
}

func (b *Board[L]) restore(u Update[L]) {
	if u.Target == TargetTeam {
		b.Teams[u.Index] = u.Prev
	} else {
		b.Pieces[u.Index] = u.Prev
	}
}
