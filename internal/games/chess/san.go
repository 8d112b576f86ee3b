package chess

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

// ErrAmbiguousMove is returned by ParseSAN when the notation fits more
// than one legal move.
var ErrAmbiguousMove = errors.New("ambiguous move")

// ToSAN converts a legal move to Standard Algebraic Notation.
func ToSAN[L bitboard.Limbs](b *board.Board[L], m board.Move) string {
	if m.Pass {
		return "--"
	}
	geo := b.Geometry
	var sb strings.Builder

	if m.Kind == board.Castle {
		if geo.Col(m.To) > geo.Col(m.From) {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}
	} else {
		letter := b.Game.Pieces[m.Piece].Symbol().For(White)
		if m.Piece != Pawn {
			sb.WriteByte(letter)
			sb.WriteString(disambiguation(b, m))
		}
		if m.Kind == board.Capture || m.Kind == board.EnPassant || b.Enemies(m.Team).IsSet(int(m.To)) {
			if m.Piece == Pawn {
				sb.WriteByte(bitboard.ColumnLetter(geo.Col(m.From)))
			}
			sb.WriteByte('x')
		}
		sb.WriteString(b.EncodeSquare(m.To))
		if m.Kind == board.Promotion {
			sb.WriteByte('=')
			sb.WriteByte(b.Game.Pieces[m.Info].Symbol().For(White))
		}
	}

	b.MakeMove(m)
	if InCheck(b, b.MovingTeam) {
		if len(b.GenerateLegalMoves()) == 0 {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('+')
		}
	}
	b.UndoMove()
	return sb.String()
}

// disambiguation returns the origin file, rank or square needed to tell m
// apart from another piece of the same type reaching the same square.
func disambiguation[L bitboard.Limbs](b *board.Board[L], m board.Move) string {
	geo := b.Geometry
	var others []board.Square
	for _, o := range b.GenerateLegalMoves() {
		if o.To == m.To && o.Piece == m.Piece && o.From != m.From {
			others = append(others, o.From)
		}
	}
	if len(others) == 0 {
		return ""
	}

	sameCol, sameRow := false, false
	for _, sq := range others {
		sameCol = sameCol || geo.Col(sq) == geo.Col(m.From)
		sameRow = sameRow || geo.Row(sq) == geo.Row(m.From)
	}
	square := b.EncodeSquare(m.From)
	switch {
	case !sameCol:
		return square[:1]
	case !sameRow:
		return square[1:]
	default:
		return square
	}
}

// ParseSAN finds the legal move written as s.
func ParseSAN[L bitboard.Limbs](b *board.Board[L], s string) (board.Move, error) {
	s = strings.TrimRight(strings.TrimSpace(s), "+#!?")
	legal := b.GenerateLegalMoves()
	geo := b.Geometry

	if s == "O-O" || s == "0-0" || s == "O-O-O" || s == "0-0-0" {
		long := len(s) > 3
		for _, m := range legal {
			if m.Kind == board.Castle && (geo.Col(m.To) < geo.Col(m.From)) == long {
				return m, nil
			}
		}
		return board.Move{}, fmt.Errorf("%w: %s", board.ErrIllegalMove, s)
	}

	promo := -1
	if i := strings.IndexByte(s, '='); i >= 0 && i+1 < len(s) {
		p, _, ok := matchLetter(b, s[i+1])
		if !ok {
			return board.Move{}, fmt.Errorf("%w: %s", board.ErrIllegalMove, s)
		}
		promo = p
		s = s[:i]
	}
	s = strings.ReplaceAll(s, "x", "")

	piece := Pawn
	if len(s) > 0 && s[0] >= 'A' && s[0] <= 'Z' {
		p, _, ok := matchLetter(b, s[0])
		if !ok {
			return board.Move{}, fmt.Errorf("%w: %s", board.ErrIllegalMove, s)
		}
		piece = p
		s = s[1:]
	}

	// The destination is the trailing square; anything before it narrows
	// down the origin.
	split := len(s)
	for split > 0 && s[split-1] >= '0' && s[split-1] <= '9' {
		split--
	}
	if split == 0 {
		return board.Move{}, fmt.Errorf("%w: %s", board.ErrIllegalMove, s)
	}
	split--
	to, err := geo.DecodeSquare(s[split:])
	if err != nil {
		return board.Move{}, err
	}
	hint := s[:split]

	var found []board.Move
	for _, m := range legal {
		if m.To != to || m.Piece != piece || m.Kind == board.Castle {
			continue
		}
		if promo >= 0 && (m.Kind != board.Promotion || m.Info != promo) {
			continue
		}
		if promo < 0 && m.Kind == board.Promotion {
			continue
		}
		from := b.EncodeSquare(m.From)
		if hint != "" && !strings.HasPrefix(from, hint) && !strings.HasSuffix(from, hint) {
			continue
		}
		// A pawn without an origin file is a push.
		if hint == "" && piece == Pawn && geo.Col(m.From) != geo.Col(m.To) {
			continue
		}
		found = append(found, m)
	}
	switch len(found) {
	case 0:
		return board.Move{}, fmt.Errorf("%w: %s", board.ErrIllegalMove, s)
	case 1:
		return found[0], nil
	default:
		return board.Move{}, fmt.Errorf("%w: %s fits %d moves", ErrAmbiguousMove, s, len(found))
	}
}

func matchLetter[L bitboard.Limbs](b *board.Board[L], c byte) (piece, team int, ok bool) {
	for i, p := range b.Game.Pieces {
		if team, ok := p.Symbol().Match(c, 2); ok {
			return i, team, true
		}
	}
	return 0, 0, false
}

// MovesToSAN converts a line of moves played from b.
func MovesToSAN[L bitboard.Limbs](b *board.Board[L], moves []board.Move) []string {
	result := make([]string, len(moves))
	c := b.Clone()
	for i, m := range moves {
		result[i] = ToSAN(c, m)
		c.MakeMove(m)
	}
	return result
}
