package chess

import (
	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

type pawn[L bitboard.Limbs] struct{}

func (pawn[L]) Symbol() board.Symbol { return board.Symbol{Char: 'p'} }

func (pawn[L]) attacks(g *board.Geometry[L], set bitboard.BitBoard[L], team int) bitboard.BitBoard[L] {
	dr := forward(team)
	return g.Offset(set, dr, -1).Or(g.Offset(set, dr, 1))
}

// MoveMask returns the capture squares in ModeAttacks and every push,
// capture and en passant square otherwise.
func (p pawn[L]) MoveMask(b *board.Board[L], from board.Square, _, team int, mode board.Mode) bitboard.BitBoard[L] {
	geo := b.Geometry
	bit := geo.Bit(from)
	attacks := p.attacks(geo, bit, team)
	if mode == board.ModeAttacks {
		return attacks
	}

	dr := forward(team)
	empty := b.Empty()
	push := geo.Offset(bit, dr, 0).And(empty)
	if b.FirstMove.Intersects(bit) {
		push = push.Or(geo.Offset(push, dr, 0).And(empty))
	}
	targets := b.Enemies(team)
	if ep, ok := enPassantTarget(b); ok {
		targets = targets.Or(geo.Bit(ep))
	}
	return push.Or(attacks.And(targets))
}

// AddTeamActions generates all pawn moves of team at once.
func (p pawn[L]) AddTeamActions(dst []board.Move, b *board.Board[L], piece, team int, mode board.Mode) []board.Move {
	geo := b.Geometry
	pawns := b.Pieces[piece].And(b.Teams[team])
	if pawns.Empty() {
		return dst
	}
	if mode == board.ModeAttacks {
		for pawns.More() {
			from := board.Square(pawns.PopLSB())
			mask := b.Targets(p.attacks(geo, geo.Bit(from), team), team, mode)
			dst = b.AddMaskActions(dst, mask, from, piece, team)
		}
		return dst
	}

	dr := forward(team)
	cols := geo.Cols
	empty := b.Empty()
	enemies := b.Enemies(team)
	promotion := geo.RowMask(promotionRow(geo, team))

	push1 := geo.Offset(pawns, dr, 0).And(empty)
	push2 := geo.Offset(geo.Offset(pawns.And(b.FirstMove), dr, 0).And(empty), dr, 0).And(empty)
	left := geo.Offset(pawns, dr, -1).And(enemies)
	right := geo.Offset(pawns, dr, 1).And(enemies)

	add := func(set bitboard.BitBoard[L], delta int, kind board.MoveKind) {
		for set.More() {
			to := board.Square(set.PopLSB())
			m := board.NewMove(to-board.Square(delta), to, piece, team)
			m.Kind = kind
			if promotion.IsSet(int(to)) {
				dst = addPromotions(dst, m)
				continue
			}
			dst = append(dst, m)
		}
	}
	add(push1, dr*cols, board.Normal)
	add(push2, 2*dr*cols, board.Normal)
	add(left, dr*cols-1, board.Capture)
	add(right, dr*cols+1, board.Capture)

	if ep, ok := enPassantTarget(b); ok {
		last, _ := b.LastMove()
		attackers := p.attacks(geo, geo.Bit(ep), 1-team).And(pawns)
		for attackers.More() {
			from := board.Square(attackers.PopLSB())
			dst = append(dst, board.Move{Action: board.Action{
				From: from, To: ep, Team: team, Piece: piece,
				Info: int(last.To), Kind: board.EnPassant,
			}})
		}
	}
	return dst
}

func addPromotions(dst []board.Move, m board.Move) []board.Move {
	m.Kind = board.Promotion
	for _, promo := range PromotionPieces {
		m.Info = promo
		dst = append(dst, m)
	}
	return dst
}

// enPassantTarget returns the square behind a pawn that has just made a
// double push.
func enPassantTarget[L bitboard.Limbs](b *board.Board[L]) (board.Square, bool) {
	last, ok := b.LastMove()
	if !ok || last.Pass || last.Piece != Pawn || last.Team == b.MovingTeam {
		return board.NoSquare, false
	}
	if d := int(last.To - last.From); d != 2*b.Geometry.Cols && d != -2*b.Geometry.Cols {
		return board.NoSquare, false
	}
	return (last.From + last.To) / 2, true
}

func (pawn[L]) MakeMove(b *board.Board[L], a board.Action) {
	switch a.Kind {
	case board.EnPassant:
		makeEnPassant(b, a)
	case board.Promotion:
		makePromotion(b, a)
	default:
		b.MakeStandardMove(a)
	}
}

func makeEnPassant[L bitboard.Limbs](b *board.Board[L], a board.Action) {
	enemy := 1 - a.Team
	from, to, captured := b.Bit(a.From), b.Bit(a.To), b.Bit(board.Square(a.Info))
	b.PushHistory(board.HistoryEntry[L]{
		Move: board.Move{Action: a},
		Kind: board.HistoryAny,
		Updates: []board.Update[L]{
			b.TeamUpdate(a.Team), b.TeamUpdate(enemy), b.PieceUpdate(Pawn),
		},
	})

	moved := from.Or(to)
	b.Teams[a.Team] = b.Teams[a.Team].Xor(moved)
	b.Teams[enemy] = b.Teams[enemy].Xor(captured)
	b.Pieces[Pawn] = b.Pieces[Pawn].Xor(moved).Xor(captured)
	b.All = b.All.Xor(moved).Xor(captured)
	b.FirstMove = b.FirstMove.AndNot(moved.Or(captured))
	b.AdvanceTurn()
}

func makePromotion[L bitboard.Limbs](b *board.Board[L], a board.Action) {
	from, to := b.Bit(a.From), b.Bit(a.To)
	updates := []board.Update[L]{
		b.TeamUpdate(a.Team), b.PieceUpdate(a.Piece), b.PieceUpdate(a.Info),
	}
	captured, enemy, capture := b.PieceAt(a.To)
	if capture {
		updates = append(updates, b.TeamUpdate(enemy), b.PieceUpdate(captured))
	}
	b.PushHistory(board.HistoryEntry[L]{Move: board.Move{Action: a}, Kind: board.HistoryAny, Updates: updates})

	if capture {
		b.Teams[enemy] = b.Teams[enemy].AndNot(to)
		b.Pieces[captured] = b.Pieces[captured].AndNot(to)
	}
	b.Teams[a.Team] = b.Teams[a.Team].AndNot(from).Or(to)
	b.Pieces[a.Piece] = b.Pieces[a.Piece].AndNot(from)
	b.Pieces[a.Info] = b.Pieces[a.Info].Or(to)
	b.All = b.All.AndNot(from).Or(to)
	b.FirstMove = b.FirstMove.AndNot(from.Or(to))
	b.AdvanceTurn()
}
