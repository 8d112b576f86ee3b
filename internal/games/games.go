// Package games lists the playable games and wraps their boards in a
// Session, which hides the bitboard width each game is built on.
package games

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/samber/lo"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
	"github.com/hailam/gridplay/internal/games/ataxx"
	"github.com/hailam/gridplay/internal/games/chess"
	"github.com/hailam/gridplay/internal/perft"
	"github.com/hailam/gridplay/internal/render"
)

// ErrUnknownGame is returned for names missing from the registry.
var ErrUnknownGame = errors.New("unknown game")

// ErrNothingToUndo is returned by Undo on a fresh position.
var ErrNothingToUndo = errors.New("no move to undo")

// Session is a position of one game together with its history.
type Session interface {
	perft.Counter

	StartFEN() string
	String() string
	// Moves lists the legal moves in the notation of the game.
	Moves() []string
	// Play makes a legal move given in the notation of the game, or in
	// SAN for chess.
	Play(move string) error
	Undo() error
	Played() int
	Divide(ctx context.Context, depth int) ([]board.Branch, error)
	// PseudoCount counts with legality checked at the leaves only.
	PseudoCount(depth int) uint64
	Result() board.Result
	Validate() error
	WritePNG(w io.Writer, squareSize int) error
}

// Info describes a registered game.
type Info struct {
	Name        string
	Description string
	New         func(workers int) Session
}

var registry = []Info{
	{
		Name:        "chess",
		Description: "chess on the standard 8x8 board",
		New: func(workers int) Session {
			return newSession(chess.New(), chess.StartFEN, workers, chess.ParseSAN[bitboard.W1])
		},
	},
	{
		Name:        "ataxx",
		Description: "ataxx on the standard 7x7 board",
		New: func(workers int) Session {
			return newSession(ataxx.New(), ataxx.StartFEN, workers, nil)
		},
	},
	{
		Name:        "ataxx9x9",
		Description: "ataxx on a 9x9 board",
		New: func(workers int) Session {
			return newSession(ataxx.NewGame[bitboard.W2](9, 9), "x7o/9/9/9/9/9/9/9/o7x x 0 1", workers, nil)
		},
	},
}

// Names returns the registered game names.
func Names() []string {
	return lo.Map(registry, func(info Info, _ int) string { return info.Name })
}

// Registered returns the registry entries.
func Registered() []Info {
	return slices.Clone(registry)
}

// New starts a session of the named game at its starting position.
func New(name string, workers int) (Session, error) {
	info, ok := lo.Find(registry, func(info Info) bool { return info.Name == name })
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownGame, name)
	}
	return info.New(workers), nil
}

type session[L bitboard.Limbs] struct {
	board    *board.Board[L]
	start    string
	workers  int
	parse    func(*board.Board[L], string) (board.Move, error)
	renderer *render.Renderer
}

func newSession[L bitboard.Limbs](game *board.Game[L], start string, workers int, parse func(*board.Board[L], string) (board.Move, error)) *session[L] {
	b, err := game.Load(start)
	if err != nil {
		panic(fmt.Sprintf("games: bad start position of %s: %v", game.Name, err))
	}
	return &session[L]{board: b, start: start, workers: workers, parse: parse}
}

func (s *session[L]) Name() string { return s.board.Game.Name }

func (s *session[L]) StartFEN() string { return s.start }

func (s *session[L]) Load(fen string) error { return s.board.Load(fen) }

func (s *session[L]) FEN() string { return s.board.FEN() }

func (s *session[L]) Hash() uint64 { return s.board.Hash() }

func (s *session[L]) String() string { return s.board.String() }

func (s *session[L]) Played() int { return s.board.Played() }

func (s *session[L]) Validate() error { return s.board.Validate() }

func (s *session[L]) Result() board.Result { return s.board.Resolve() }

func (s *session[L]) Moves() []string {
	return lo.Map(s.board.GenerateLegalMoves(), func(m board.Move, _ int) string {
		return s.board.EncodeMove(m)
	})
}

func (s *session[L]) Play(move string) error {
	m, err := s.board.DecodeMove(move)
	if err != nil && s.parse != nil {
		if alt, perr := s.parse(s.board, move); perr == nil {
			m, err = alt, nil
		}
	}
	if err != nil {
		return err
	}
	s.board.MakeMove(m)
	return nil
}

func (s *session[L]) Undo() error {
	if s.board.Played() == 0 {
		return ErrNothingToUndo
	}
	s.board.UndoMove()
	return nil
}

func (s *session[L]) Count(ctx context.Context, depth int) (uint64, error) {
	return perft.Parallel(ctx, s.board, depth, s.workers)
}

func (s *session[L]) PseudoCount(depth int) uint64 {
	return s.board.PerftPseudo(depth)
}

func (s *session[L]) Divide(ctx context.Context, depth int) ([]board.Branch, error) {
	return perft.Divide(ctx, s.board, depth, s.workers)
}

func (s *session[L]) WritePNG(w io.Writer, squareSize int) error {
	if s.renderer == nil || s.renderer.SquareSize() != squareSize {
		r, err := render.NewRenderer(squareSize)
		if err != nil {
			return err
		}
		s.renderer = r
	}
	return render.WritePNG(w, s.renderer, s.board)
}
