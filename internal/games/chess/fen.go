package chess

import (
	"fmt"
	"strings"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

// castlingArgument reads the KQkq field. K castles with the outermost
// unmoved rook right of the king, Q with the outermost one left of it.
type castlingArgument[L bitboard.Limbs] struct{}

func (castlingArgument[L]) Name() string { return "castling" }

func (castlingArgument[L]) Decode(b *board.Board[L], arg string) error {
	geo := b.Geometry
	royals := b.Pieces[Rook].Or(b.Pieces[King])
	b.FirstMove = b.FirstMove.AndNot(royals)
	if arg == "-" {
		return nil
	}

	for i := 0; i < len(arg); i++ {
		c := arg[i]
		team := White
		if c >= 'a' && c <= 'z' {
			team = Black
		}
		kings := b.Pieces[King].And(b.Teams[team])
		if kings.PopCount() != 1 {
			return fmt.Errorf("%w: castling %q needs one king", board.ErrInvalidArgument, c)
		}
		k := board.Square(kings.LSB())
		row := geo.RowMask(geo.Row(k))
		rooks := b.Pieces[Rook].And(b.Teams[team]).And(row)
		// Squares right of the king have higher indices on the same row.
		right := rooks.And(bitboard.LowBits[L](int(k) + 1).Not())
		left := rooks.And(bitboard.LowBits[L](int(k)))

		var rook board.Square
		switch c {
		case 'K', 'k':
			if right.Empty() {
				return fmt.Errorf("%w: no rook for %q", board.ErrInvalidArgument, c)
			}
			rook = board.Square(right.MSB())
		case 'Q', 'q':
			if left.Empty() {
				return fmt.Errorf("%w: no rook for %q", board.ErrInvalidArgument, c)
			}
			rook = board.Square(left.LSB())
		default:
			return fmt.Errorf("%w: castling %q", board.ErrInvalidArgument, c)
		}
		b.FirstMove = b.FirstMove.Or(geo.Bit(rook)).Or(geo.Bit(k))
	}
	return nil
}

func (castlingArgument[L]) Encode(b *board.Board[L]) string {
	geo := b.Geometry
	var sb strings.Builder
	for team, sides := range []string{"KQ", "kq"} {
		kings := b.Pieces[King].And(b.Teams[team]).And(b.FirstMove)
		if kings.PopCount() != 1 {
			continue
		}
		k := kings.LSB()
		rooks := b.Pieces[Rook].And(b.Teams[team]).And(b.FirstMove).And(geo.RowMask(geo.Row(board.Square(k))))
		if rooks.And(bitboard.LowBits[L](k + 1).Not()).More() {
			sb.WriteByte(sides[0])
		}
		if rooks.And(bitboard.LowBits[L](k)).More() {
			sb.WriteByte(sides[1])
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// enPassantArgument reads the square behind a pawn that has just made a
// double push and records that push as the last move.
type enPassantArgument[L bitboard.Limbs] struct{}

func (enPassantArgument[L]) Name() string { return "en passant" }

func (enPassantArgument[L]) Decode(b *board.Board[L], arg string) error {
	if arg == "-" {
		return nil
	}
	geo := b.Geometry
	target, err := geo.DecodeSquare(arg)
	if err != nil {
		return fmt.Errorf("%w: %v", board.ErrInvalidArgument, err)
	}

	pusher := 1 - b.MovingTeam
	step := board.Square(forward(pusher) * geo.Cols)
	from, to := target-step, target+step
	if min(from, to) < 0 || int(max(from, to)) >= geo.Squares {
		return fmt.Errorf("%w: %s is not behind a double push", board.ErrInvalidArgument, arg)
	}
	if p, t, ok := b.PieceAt(to); !ok || p != Pawn || t != pusher {
		return fmt.Errorf("%w: no pawn in front of %s", board.ErrInvalidArgument, arg)
	}
	if b.All.Or(b.Gaps).Intersects(geo.Bit(from).Or(geo.Bit(target))) {
		return fmt.Errorf("%w: %s is not behind a double push", board.ErrInvalidArgument, arg)
	}

	b.SeedHistory(board.NewMove(from, to, Pawn, pusher))
	return nil
}

func (enPassantArgument[L]) Encode(b *board.Board[L]) string {
	if ep, ok := enPassantTarget(b); ok {
		return b.EncodeSquare(ep)
	}
	return "-"
}
