package board

import "fmt"

// MakeMove plays m and returns the history entry it pushed. The move is
// not checked for legality.
func (b *Board[L]) MakeMove(m Move) HistoryEntry[L] {
	if m.Pass {
		b.PushHistory(HistoryEntry[L]{Move: m, Kind: HistoryNone})
		b.AdvanceTurn()
		return b.History[len(b.History)-1]
	}

	if maker, ok := b.Game.Pieces[m.Piece].(MoveMaker[L]); ok {
		maker.MakeMove(b, m.Action)
	} else {
		b.MakeStandardMove(m.Action)
	}
	return b.History[len(b.History)-1]
}

// MakeStandardMove moves a piece from a.From to a.To, capturing whatever
// stands on a.To.
func (b *Board[L]) MakeStandardMove(a Action) {
	if !a.From.IsValid() {
		panic(fmt.Sprintf("board: %s defines no drop moves", b.Game.Name))
	}
	from, to := b.Bit(a.From), b.Bit(a.To)
	move := Move{Action: a}

	if b.All.Intersects(to) {
		captured, enemy, _ := b.PieceAt(a.To)
		b.PushHistory(HistoryEntry[L]{
			Move: move,
			Kind: HistoryAny,
			Updates: []Update[L]{
				b.TeamUpdate(a.Team), b.PieceUpdate(a.Piece),
				b.TeamUpdate(enemy), b.PieceUpdate(captured),
			},
		})

		b.Teams[enemy] = b.Teams[enemy].Xor(to)
		b.Pieces[captured] = b.Pieces[captured].Xor(to)
		b.All = b.All.Xor(from)
	} else {
		b.PushHistory(HistoryEntry[L]{
			Move:  move,
			Kind:  HistorySingle,
			Team:  b.TeamUpdate(a.Team),
			Piece: b.PieceUpdate(a.Piece),
		})
		b.All = b.All.Xor(from).Xor(to)
	}

	moved := from.Or(to)
	b.Teams[a.Team] = b.Teams[a.Team].Xor(moved)
	b.Pieces[a.Piece] = b.Pieces[a.Piece].Xor(moved)
	b.FirstMove = b.FirstMove.AndNot(moved)
	b.AdvanceTurn()
}

// PushHistory records e with the current occupancy and first-move masks.
// It must be called before the move changes any bitboard.
func (b *Board[L]) PushHistory(e HistoryEntry[L]) {
	e.All = b.All
	e.FirstMove = b.FirstMove
	b.History = append(b.History, e)
}

// SeedHistory records a move that was played before the position was set
// up, such as the double push behind an en passant square. Seeded entries
// cannot be undone.
func (b *Board[L]) SeedHistory(m Move) {
	if len(b.History) != b.seeded {
		panic("board: history seeded after moves were made")
	}
	b.PushHistory(HistoryEntry[L]{Move: m, Kind: HistoryNone})
	b.seeded++
}

// LastMove returns the most recent move, seeded or played.
func (b *Board[L]) LastMove() (Move, bool) {
	if len(b.History) == 0 {
		return Move{}, false
	}
	return b.History[len(b.History)-1].Move, true
}

// Played returns the number of moves that can be undone.
func (b *Board[L]) Played() int {
	return len(b.History) - b.seeded
}

// AdvanceTurn steps the turn counters forward: the sub-turn first, then
// the team once the sub-turns wrap, then the full move once the teams
// wrap.
func (b *Board[L]) AdvanceTurn() {
	geo := b.Geometry
	b.CurrentTurn = geo.turnNext[b.CurrentTurn]
	if b.CurrentTurn != 0 {
		return
	}
	b.SubMoves++
	b.MovingTeam = geo.teamNext[b.MovingTeam]
	if b.MovingTeam == 0 {
		b.FullMoves++
	}
}

func (b *Board[L]) reverseTurn() {
	geo := b.Geometry
	if b.CurrentTurn == 0 {
		if b.MovingTeam == 0 {
			b.FullMoves--
		}
		b.MovingTeam = geo.teamPrev[b.MovingTeam]
		b.SubMoves--
	}
	b.CurrentTurn = geo.turnPrev[b.CurrentTurn]
}

// UndoMove takes back the last move. It panics when no move is left.
func (b *Board[L]) UndoMove() {
	n := len(b.History)
	if n <= b.seeded {
		panic("board: undo with empty history")
	}
	e := &b.History[n-1]

	b.reverseTurn()
	switch e.Kind {
	case HistorySingle:
		b.restore(e.Piece)
		b.restore(e.Team)
	case HistoryAny:
		for i := len(e.Updates) - 1; i >= 0; i-- {
			b.restore(e.Updates[i])
		}
	}
	b.All = e.All
	b.FirstMove = e.FirstMove
	b.History = b.History[:n-1]
}
