package board

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/hailam/gridplay/internal/bitboard"
)

// FenArgument is one field after the board in a FEN string.
type FenArgument[L bitboard.Limbs] interface {
	Name() string
	Decode(b *Board[L], arg string) error
	Encode(b *Board[L]) string
}

// FenOptions describes the notation of a game.
type FenOptions[L bitboard.Limbs] struct {
	// FirstMoves writes a '!' after every piece that has moved.
	FirstMoves bool
	// Args are the fields after the board, in order. Trailing fields may
	// be left out of a FEN and keep their defaults.
	Args []FenArgument[L]
}

// Load decodes fen into a new board.
func (g *Game[L]) Load(fen string) (*Board[L], error) {
	fields, err := shellquote.Split(fen)
	if err != nil {
		return nil, &FenDecodeError{Field: "fen", Value: fen, Err: fmt.Errorf("%w: %v", ErrInvalidFEN, err)}
	}
	if len(fields) == 0 {
		return nil, &FenDecodeError{Field: "fen", Value: fen, Err: fmt.Errorf("%w: empty", ErrInvalidFEN)}
	}

	b := NewBoard(g)
	if err := b.decodeState(fields[0]); err != nil {
		return nil, &FenDecodeError{Field: "board", Value: fields[0], Err: err}
	}

	args := g.FEN.Args
	if len(fields)-1 > len(args) {
		return nil, &FenDecodeError{Field: "fen", Value: fen,
			Err: fmt.Errorf("%w: %d fields, at most %d", ErrInvalidFEN, len(fields), len(args)+1)}
	}
	for i, field := range fields[1:] {
		if err := args[i].Decode(b, field); err != nil {
			if !errors.Is(err, ErrInvalidArgument) {
				err = fmt.Errorf("%w: %v", ErrInvalidArgument, err)
			}
			return nil, &FenDecodeError{Field: args[i].Name(), Value: field, Err: err}
		}
	}

	g.Controller.PostProcess(b)
	return b, nil
}

func (b *Board[L]) decodeState(field string) error {
	geo := b.Geometry
	rows := strings.Split(field, "/")
	if len(rows) != geo.Rows {
		return fmt.Errorf("%w: need %d rows, got %d", ErrInvalidFEN, geo.Rows, len(rows))
	}

	for row, text := range rows {
		col := 0
		for i := 0; i < len(text); {
			c := text[i]
			switch {
			case c >= '0' && c <= '9':
				j := i
				for j < len(text) && text[j] >= '0' && text[j] <= '9' {
					j++
				}
				n, err := strconv.Atoi(text[i:j])
				if err != nil || n <= 0 || n > geo.Cols-col {
					return fmt.Errorf("%w: bad run %q in row %d", ErrInvalidFEN, text[i:j], row+1)
				}
				col += n
				i = j
				continue
			case c == '-':
				if col >= geo.Cols {
					return fmt.Errorf("%w: row %d is too long", ErrInvalidFEN, row+1)
				}
				b.SetGap(geo.At(row, col))
				col++
				i++
				continue
			}

			piece, team, ok := b.Game.matchPiece(c)
			if !ok {
				return fmt.Errorf("%w: unknown piece %q in row %d", ErrInvalidFEN, c, row+1)
			}
			i++
			if i < len(text) && text[i] == '{' {
				end := strings.IndexByte(text[i:], '}')
				if end < 0 {
					return fmt.Errorf("%w: unterminated team in row %d", ErrInvalidFEN, row+1)
				}
				t, err := strconv.Atoi(text[i+1 : i+end])
				if err != nil || t < 0 || t >= geo.Teams() {
					return fmt.Errorf("%w: bad team %q in row %d", ErrInvalidFEN, text[i:i+end+1], row+1)
				}
				team = t
				i += end + 1
			}
			if team < 0 {
				return fmt.Errorf("%w: piece %q needs a team in row %d", ErrInvalidFEN, c, row+1)
			}
			firstMove := true
			if i < len(text) && text[i] == '!' {
				firstMove = false
				i++
			}
			if col >= geo.Cols {
				return fmt.Errorf("%w: row %d is too long", ErrInvalidFEN, row+1)
			}
			b.Place(piece, team, geo.At(row, col), firstMove)
			col++
		}
		if col != geo.Cols {
			return fmt.Errorf("%w: row %d has %d squares, want %d", ErrInvalidFEN, row+1, col, geo.Cols)
		}
	}
	return nil
}

func (g *Game[L]) matchPiece(c byte) (piece, team int, ok bool) {
	for i, p := range g.Pieces {
		if team, ok := p.Symbol().Match(c, g.Teams); ok {
			return i, team, true
		}
	}
	return 0, 0, false
}

// FEN encodes the position.
func (b *Board[L]) FEN() string {
	fields := []string{b.encodeState()}
	for _, arg := range b.Game.FEN.Args {
		field := arg.Encode(b)
		if field == "" || strings.ContainsAny(field, " \t\n") {
			field = shellquote.Join(field)
		}
		fields = append(fields, field)
	}
	return strings.Join(fields, " ")
}

func (b *Board[L]) encodeState() string {
	geo := b.Geometry
	var sb strings.Builder
	for row := 0; row < geo.Rows; row++ {
		if row > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for col := 0; col < geo.Cols; col++ {
			sq := geo.At(row, col)
			c := b.Char(sq)
			if c == '.' {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteByte(c)
			if c == '-' {
				continue
			}
			if piece, team, _ := b.PieceAt(sq); geo.Teams() > 2 && len(b.Game.Pieces[piece].Symbol().Teams) == 0 {
				fmt.Fprintf(&sb, "{%d}", team)
			}
			if b.Game.FEN.FirstMoves && !b.FirstMove.IsSet(int(sq)) {
				sb.WriteByte('!')
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
	}
	return sb.String()
}

// TeamArgument is the team to move, one symbol per team.
type TeamArgument[L bitboard.Limbs] struct {
	Symbols []string
}

func (TeamArgument[L]) Name() string { return "team" }

func (a TeamArgument[L]) Decode(b *Board[L], arg string) error {
	for team, s := range a.Symbols {
		if s == arg {
			b.MovingTeam = team
			b.CurrentTurn = 0
			return nil
		}
	}
	return fmt.Errorf("%w: unknown team %q", ErrInvalidArgument, arg)
}

func (a TeamArgument[L]) Encode(b *Board[L]) string {
	return a.Symbols[b.MovingTeam]
}

// SubMovesArgument is the number of single moves played.
type SubMovesArgument[L bitboard.Limbs] struct{}

func (SubMovesArgument[L]) Name() string { return "sub moves" }

func (SubMovesArgument[L]) Decode(b *Board[L], arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: sub moves %q", ErrInvalidArgument, arg)
	}
	b.SubMoves = n
	return nil
}

func (SubMovesArgument[L]) Encode(b *Board[L]) string {
	return strconv.Itoa(b.SubMoves)
}

// FullMovesArgument is the full move number.
type FullMovesArgument[L bitboard.Limbs] struct{}

func (FullMovesArgument[L]) Name() string { return "full moves" }

func (FullMovesArgument[L]) Decode(b *Board[L], arg string) error {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: full moves %q", ErrInvalidArgument, arg)
	}
	b.FullMoves = n
	return nil
}

func (FullMovesArgument[L]) Encode(b *Board[L]) string {
	return strconv.Itoa(b.FullMoves)
}
