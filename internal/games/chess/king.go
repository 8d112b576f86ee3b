package chess

import (
	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

type king[L bitboard.Limbs] struct{}

func (king[L]) Symbol() board.Symbol { return board.Symbol{Char: 'k'} }

func (king[L]) GenerateLookup(g *board.Geometry[L], from board.Square) board.Lookup[L] {
	return g.KingLookup(from)
}

func (king[L]) MoveMask(b *board.Board[L], from board.Square, piece, _ int, _ board.Mode) bitboard.BitBoard[L] {
	return b.Lookup(piece, from).All
}

func (k king[L]) AddActions(dst []board.Move, b *board.Board[L], from board.Square, piece, team int, mode board.Mode) []board.Move {
	mask := b.Targets(k.MoveMask(b, from, piece, team, mode), team, mode)
	dst = b.AddMaskActions(dst, mask, from, piece, team)
	if mode == board.ModeNormal {
		dst = addCastles(dst, b, from, team)
	}
	return dst
}

// castle is the king and rook destinations of castling with rook.
type castle struct {
	king, rook     board.Square
	kingTo, rookTo board.Square
}

func castleWith[L bitboard.Limbs](g *board.Geometry[L], king, rook board.Square) castle {
	row := g.Row(king)
	c := castle{king: king, rook: rook}
	if g.Col(rook) > g.Col(king) {
		c.kingTo, c.rookTo = g.At(row, g.Cols-2), g.At(row, g.Cols-3)
	} else {
		c.kingTo, c.rookTo = g.At(row, 2), g.At(row, 3)
	}
	return c
}

// span returns the squares of row between columns a and b inclusive.
func span[L bitboard.Limbs](g *board.Geometry[L], row, a, b int) bitboard.BitBoard[L] {
	lo, hi := min(a, b), max(a, b)
	var set bitboard.BitBoard[L]
	for col := lo; col <= hi; col++ {
		set = set.Set(int(g.At(row, col)))
	}
	return set
}

// addCastles appends a castle with every unmoved rook on the row of an
// unmoved king. The squares both pieces cross must be free, and no
// square the king crosses may be attacked.
func addCastles[L bitboard.Limbs](dst []board.Move, b *board.Board[L], from board.Square, team int) []board.Move {
	geo := b.Geometry
	if !b.FirstMove.IsSet(int(from)) {
		return dst
	}
	row := geo.Row(from)
	rooks := b.Pieces[Rook].And(b.Teams[team]).And(b.FirstMove).And(geo.RowMask(row))
	for rooks.More() {
		c := castleWith(geo, from, board.Square(rooks.PopLSB()))
		kc, kt := geo.Col(c.king), geo.Col(c.kingTo)
		rc, rt := geo.Col(c.rook), geo.Col(c.rookTo)

		crossed := span(geo, row, kc, kt).Or(span(geo, row, rc, rt))
		blockers := b.All.Or(b.Gaps).AndNot(geo.Bit(c.king).Or(geo.Bit(c.rook)))
		if crossed.Intersects(blockers) {
			continue
		}
		path := span(geo, row, kc, kt)
		safe := true
		for sq := range path.Indices(geo.Squares) {
			if IsSquareAttacked(b, board.Square(sq), 1-team) {
				safe = false
				break
			}
		}
		if !safe {
			continue
		}
		dst = append(dst, board.Move{Action: board.Action{
			From: c.king, To: c.kingTo, Team: team, Piece: King,
			Info: int(c.rook), Kind: board.Castle,
		}})
	}
	return dst
}

// MakeMove castles, or moves the king and gives up the castling rights of
// its team.
func (king[L]) MakeMove(b *board.Board[L], a board.Action) {
	rooks := b.Pieces[Rook].And(b.Teams[a.Team])
	if a.Kind != board.Castle {
		b.MakeStandardMove(a)
		b.FirstMove = b.FirstMove.AndNot(rooks)
		return
	}

	c := castleWith(b.Geometry, a.From, board.Square(a.Info))
	b.PushHistory(board.HistoryEntry[L]{
		Move: board.Move{Action: a},
		Kind: board.HistoryAny,
		Updates: []board.Update[L]{
			b.TeamUpdate(a.Team), b.PieceUpdate(King), b.PieceUpdate(Rook),
		},
	})

	kingFrom, rookFrom := b.Bit(c.king), b.Bit(c.rook)
	kingTo, rookTo := b.Bit(c.kingTo), b.Bit(c.rookTo)
	vacated := kingFrom.Or(rookFrom)
	occupied := kingTo.Or(rookTo)

	b.Teams[a.Team] = b.Teams[a.Team].AndNot(vacated).Or(occupied)
	b.Pieces[King] = b.Pieces[King].AndNot(kingFrom).Or(kingTo)
	b.Pieces[Rook] = b.Pieces[Rook].AndNot(rookFrom).Or(rookTo)
	b.All = b.All.AndNot(vacated).Or(occupied)
	b.FirstMove = b.FirstMove.AndNot(rooks).AndNot(vacated)
	b.AdvanceTurn()
}
