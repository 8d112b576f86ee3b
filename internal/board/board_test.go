package board

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/hailam/gridplay/internal/bitboard"
)

type leaper[L bitboard.Limbs] struct {
	char   byte
	deltas []Direction
}

func (p leaper[L]) Symbol() Symbol { return Symbol{Char: p.char} }

func (p leaper[L]) GenerateLookup(g *Geometry[L], from Square) Lookup[L] {
	return g.LeaperLookup(from, p.deltas)
}

func (p leaper[L]) MoveMask(b *Board[L], from Square, piece, _ int, _ Mode) bitboard.BitBoard[L] {
	return b.Lookup(piece, from).All
}

type rider[L bitboard.Limbs] struct {
	char byte
	dirs []Direction
}

func (p rider[L]) Symbol() Symbol { return Symbol{Char: p.char} }

func (p rider[L]) GenerateLookup(g *Geometry[L], from Square) Lookup[L] {
	return g.RayLookup(from, p.dirs)
}

func (p rider[L]) MoveMask(b *Board[L], from Square, piece, _ int, _ Mode) bitboard.BitBoard[L] {
	return RayAttacks(b.Geometry.Lookups[piece], from, b.All.Or(b.Gaps))
}

type royalController[L bitboard.Limbs] struct {
	DefaultController[L]
}

func (c royalController[L]) TransformMoves(b *Board[L], moves []Move) []Move {
	return FilterLegal(b, moves, c.IsLegal)
}

func (royalController[L]) IsLegal(b *Board[L], m Move) bool {
	return LegalByMakeUnmake(b, m, 0)
}

func newTestGame[L bitboard.Limbs](rows, cols, teams, turns int) *Game[L] {
	symbols := []string{"a", "b", "c", "d"}[:teams]
	return &Game[L]{
		Name:  "test",
		Rows:  rows,
		Cols:  cols,
		Teams: teams,
		Turns: turns,
		Pieces: []Piece[L]{
			leaper[L]{char: 'k', deltas: AllAround},
			rider[L]{char: 'r', dirs: Orthogonal},
			leaper[L]{char: 'n', deltas: KnightJumps},
			rider[L]{char: 'b', dirs: Diagonal},
		},
		Controller: royalController[L]{},
		FEN: FenOptions[L]{
			FirstMoves: true,
			Args: []FenArgument[L]{
				TeamArgument[L]{Symbols: symbols},
				SubMovesArgument[L]{},
				FullMovesArgument[L]{},
			},
		},
	}
}

func mustLoad[L bitboard.Limbs](t *testing.T, g *Game[L], fen string) *Board[L] {
	t.Helper()
	b, err := g.Load(fen)
	require.NoError(t, err)
	return b
}

func TestEdges(t *testing.T) {
	is := is.New(t)
	e := makeEdges[bitboard.W1](3, 4, 1)

	is.Equal(e.Top, bitboard.LowBits[bitboard.W1](4))
	is.Equal(e.Bottom, bitboard.LowBits[bitboard.W1](12).AndNot(bitboard.LowBits[bitboard.W1](8)))
	is.Equal(e.Left.Squares(12), []int{0, 4, 8})
	is.Equal(e.Right.Squares(12), []int{3, 7, 11})
	is.Equal(e.All.PopCount(), 10)

	two := makeEdges[bitboard.W1](3, 4, 2)
	is.Equal(two.Left.Squares(12), []int{0, 1, 4, 5, 8, 9})
	is.Equal(len(generateEdges[bitboard.W1](7, 7)), 3)
	is.Equal(len(generateEdges[bitboard.W1](3, 3)), 2)
}

func TestOffsetDoesNotWrap(t *testing.T) {
	is := is.New(t)
	geo := newTestGame[bitboard.W1](4, 5, 2, 1).Geometry()

	right := geo.Bit(geo.At(1, 4))
	is.True(geo.Offset(right, 0, 1).Empty())
	is.True(geo.Offset(right, -1, 2).Empty())
	is.Equal(geo.Offset(right, 1, -2), geo.Bit(geo.At(2, 2)))

	knights := geo.KnightLookup(geo.At(0, 0)).All
	is.Equal(knights.Squares(geo.Squares), []int{int(geo.At(1, 2)), int(geo.At(2, 1))})
}

func TestRayBlocking(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		from    string
		include []string
		exclude []string
	}{
		{"blocker above", "5/1R3/5/1r3/5 a", "b2", []string{"b3", "b4"}, []string{"b5"}},
		{"blocker below", "1r3/5/5/1R3/5 a", "b5", []string{"b4", "b3", "b2"}, []string{"b1"}},
		{"blocker left", "5/5/r1R2/5/5 a", "c3", []string{"b3", "a3"}, nil},
		{"blocker right", "5/5/R1r1k/5/5 a", "a3", []string{"b3", "c3"}, []string{"d3", "e3"}},
		{"gap", "5/5/R1-2/5/5 a", "a3", []string{"b3"}, []string{"c3", "d3", "e3"}},
	}
	game := newTestGame[bitboard.W1](5, 5, 2, 1)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustLoad(t, game, tc.fen)
			from, err := b.DecodeSquare(tc.from)
			require.NoError(t, err)
			piece, team, ok := b.PieceAt(from)
			require.True(t, ok)

			mask := b.Targets(game.Pieces[piece].MoveMask(b, from, piece, team, ModeNormal), team, ModeNormal)
			for _, s := range tc.include {
				sq, _ := b.DecodeSquare(s)
				assert.True(t, mask.IsSet(int(sq)), "%s should be reachable", s)
			}
			for _, s := range tc.exclude {
				sq, _ := b.DecodeSquare(s)
				assert.False(t, mask.IsSet(int(sq)), "%s should be blocked", s)
			}
		})
	}
}

func rayTargets[L bitboard.Limbs](t *testing.T, game *Game[L], fen, from string) []string {
	t.Helper()
	b := mustLoad(t, game, fen)
	sq, err := b.DecodeSquare(from)
	require.NoError(t, err)
	piece, team, ok := b.PieceAt(sq)
	require.True(t, ok)

	mask := b.Targets(game.Pieces[piece].MoveMask(b, sq, piece, team, ModeNormal), team, ModeNormal)
	var names []string
	for _, s := range mask.Squares(b.Geometry.Squares) {
		names = append(names, b.EncodeSquare(Square(s)))
	}
	return names
}

func TestRayEdges(t *testing.T) {
	small := newTestGame[bitboard.W1](5, 5, 2, 1)
	tests := []struct {
		name string
		fen  string
		from string
		want []string
	}{
		{"rook in the corner", "R4/5/5/5/5 a", "a5", []string{"b5", "c5", "d5", "e5", "a4", "a3", "a2", "a1"}},
		{"bishop in the corner", "4B/5/5/5/5 a", "e5", []string{"d4", "c3", "b2", "a1"}},
		{"bishop on the bottom edge", "5/5/5/5/2B2 a", "c1", []string{"a3", "e3", "b2", "d2"}},
		{"enemy on the edge", "5/5/4R/5/4r a", "e3", []string{"e5", "e4", "a3", "b3", "c3", "d3", "e2", "e1"}},
		{"friend next to the edge", "5/5/4R/4R/5 a", "e3", []string{"e5", "e4", "a3", "b3", "c3", "d3"}},
		{"gap on the edge", "5/5/4R/5/4- a", "e3", []string{"e5", "e4", "a3", "b3", "c3", "d3", "e2"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ElementsMatch(t, tc.want, rayTargets(t, small, tc.fen, tc.from))
		})
	}

	// 9x9 spans two limbs; rays must not wrap from the i file to the a file.
	wide := newTestGame[bitboard.W2](9, 9, 2, 1)
	t.Run("rook on the right edge across limbs", func(t *testing.T) {
		got := rayTargets(t, wide, "9/9/9/9/8R/9/9/9/9 a", "i5")
		assert.Len(t, got, 16)
		assert.Contains(t, got, "a5")
		assert.Contains(t, got, "i9")
		assert.Contains(t, got, "i1")
	})
	t.Run("bishop blocked on the top edge", func(t *testing.T) {
		got := rayTargets(t, wide, "4r4/9/9/9/B8/9/9/9/9 a", "a5")
		assert.ElementsMatch(t, []string{"b6", "c7", "d8", "e9", "b4", "c3", "d2", "e1"}, got)
	})
}

func TestTurnCounters(t *testing.T) {
	is := is.New(t)
	b := NewBoard(newTestGame[bitboard.W1](4, 4, 3, 2))

	type counters struct{ team, turn, sub, full int }
	read := func() counters { return counters{b.MovingTeam, b.CurrentTurn, b.SubMoves, b.FullMoves} }
	want := []counters{
		{0, 1, 0, 1},
		{1, 0, 1, 1},
		{1, 1, 1, 1},
		{2, 0, 2, 1},
		{2, 1, 2, 1},
		{0, 0, 3, 2},
		{0, 1, 3, 2},
	}

	var seen []counters
	for range want {
		b.MakeMove(PassMove(b.MovingTeam))
		seen = append(seen, read())
	}
	is.Equal(seen, want)

	for i := len(want) - 1; i > 0; i-- {
		b.UndoMove()
		is.Equal(read(), want[i-1])
	}
	b.UndoMove()
	is.Equal(read(), counters{0, 0, 0, 1})
}

func TestUndoWithoutHistoryPanics(t *testing.T) {
	b := NewBoard(newTestGame[bitboard.W1](4, 4, 2, 1))
	assert.Panics(t, b.UndoMove)
}

func TestDropWithoutRulePanics(t *testing.T) {
	b := NewBoard(newTestGame[bitboard.W1](4, 4, 2, 1))
	assert.Panics(t, func() {
		b.MakeMove(NewMove(NoSquare, 3, 1, 0))
	})
}

func snapshot[L bitboard.Limbs](b *Board[L]) State[L] {
	s := b.State
	s.Pieces = append([]bitboard.BitBoard[L](nil), b.Pieces...)
	s.Teams = append([]bitboard.BitBoard[L](nil), b.Teams...)
	return s
}

func checkRoundTrip[L bitboard.Limbs](t *testing.T, game *Game[L], fen string) {
	b := mustLoad(t, game, fen)
	for round := 0; round < 20; round++ {
		var played []State[L]
		for ply := 0; ply < 30; ply++ {
			moves := b.GenerateLegalMoves()
			if len(moves) == 0 {
				break
			}
			for _, m := range moves {
				before := snapshot(b)
				hash := b.Hash()
				b.MakeMove(m)
				require.NoError(t, b.Validate())
				b.UndoMove()
				require.Equal(t, before, snapshot(b), "undo of %s", b.EncodeMove(m))
				require.Equal(t, hash, b.Hash())
			}
			played = append(played, snapshot(b))
			b.MakeMove(moves[frand.Intn(len(moves))])
		}
		for i := len(played) - 1; i >= 0; i-- {
			b.UndoMove()
			require.Equal(t, played[i], snapshot(b))
		}
	}
}

func TestMakeUndoRoundTrip(t *testing.T) {
	t.Run("W1", func(t *testing.T) {
		checkRoundTrip(t, newTestGame[bitboard.W1](6, 6, 2, 1), "rnbk2/6/2-3/6/6/2KBNR a 0 1")
	})
	t.Run("W2", func(t *testing.T) {
		checkRoundTrip(t, newTestGame[bitboard.W2](10, 10, 2, 1), "rnbk6/10/10/4-5/10/10/5-4/10/10/6KBNR a 0 1")
	})
	t.Run("three teams", func(t *testing.T) {
		checkRoundTrip(t, newTestGame[bitboard.W1](6, 6, 3, 2), "k{0}4r{1}/6/2k{1}3/6/r{2}5/5k{2} c 0 1")
	})
}

func TestLegalMovesKeepRoyalSafe(t *testing.T) {
	is := is.New(t)
	game := newTestGame[bitboard.W1](5, 5, 2, 1)
	b := mustLoad(t, game, "4k/5/5/5/K2r1 a")

	legal := b.GenerateLegalMoves()
	pseudo := b.GenerateMoves(ModeNormal)
	is.True(len(legal) < len(pseudo))
	for _, m := range pseudo {
		b.MakeMove(m)
		attacked := b.Attacked(0, b.Pieces[0].And(b.Teams[0]))
		b.UndoMove()

		found := false
		for _, l := range legal {
			found = found || l == m
		}
		is.Equal(found, !attacked)
	}
	// Only the king moves to a2 and b2 are left; b1 is on the rook's rank.
	is.Equal(len(legal), 2)
}

func TestHash(t *testing.T) {
	game := newTestGame[bitboard.W1](5, 5, 2, 1)
	base := mustLoad(t, game, "4k/5/5/5/K3r a 0 1")

	t.Run("same position two ways", func(t *testing.T) {
		b := base.Clone()
		a1, _ := b.DecodeSquare("a1")
		a2, _ := b.DecodeSquare("a2")
		e5, _ := b.DecodeSquare("e5")
		e4, _ := b.DecodeSquare("e4")
		b.MakeMove(NewMove(a1, a2, 0, 0))
		b.MakeMove(NewMove(e5, e4, 0, 1))

		c := mustLoad(t, game, "5/4k!/5/K!4/4r a 2 2")
		assert.Equal(t, c.Hash(), b.Hash())
	})

	variants := map[string]string{
		"side to move": "4k/5/5/5/K3r b 0 1",
		"first move":   "4k!/5/5/5/K3r a 0 1",
		"gap":          "4k/5/-4/5/K3r a 0 1",
		"piece":        "4k/5/5/5/K3n a 0 1",
		"team":         "4k/5/5/5/K3R a 0 1",
		"square":       "4k/5/5/5/K2r1 a 0 1",
	}
	for name, fen := range variants {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, base.Hash(), mustLoad(t, game, fen).Hash())
		})
	}

	t.Run("counters are not hashed", func(t *testing.T) {
		assert.Equal(t, base.Hash(), mustLoad(t, game, "4k/5/5/5/K3r a 9 12").Hash())
	})
}

func TestZobristIsReproducible(t *testing.T) {
	is := is.New(t)
	a := NewZobrist("chess", 64, 6, 2, 1, 65)
	b := NewZobrist("chess", 64, 6, 2, 1, 65)
	c := NewZobrist("ataxx", 64, 6, 2, 1, 65)
	is.Equal(a.keys, b.keys)
	is.True(a.Piece(3, 1, 1) != c.Piece(3, 1, 1))
	is.True(a.Extra(64) != 0)
}

func TestFENRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		game *Game[bitboard.W1]
		fen  string
	}{
		{"plain", newTestGame[bitboard.W1](5, 5, 2, 1), "4k/5/5/5/K3r a 0 1"},
		{"moved pieces", newTestGame[bitboard.W1](5, 5, 2, 1), "4k!/5/2-2/5/K!3r b 7 4"},
		{"three teams", newTestGame[bitboard.W1](6, 6, 3, 2), "k{0}4r{1}/6/2k{1}3/6/r{2}5/5k{2} c 0 1"},
		{"wide rows", newTestGame[bitboard.W1](3, 12, 2, 1), "12/k10K/12 a 0 1"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := mustLoad(t, tc.game, tc.fen)
			assert.Equal(t, tc.fen, b.FEN())
		})
	}
}

func TestFENErrors(t *testing.T) {
	game := newTestGame[bitboard.W1](5, 5, 2, 1)
	tests := []struct {
		fen   string
		want  error
		field string
	}{
		{"", ErrInvalidFEN, "fen"},
		{"4k/5/5/5", ErrInvalidFEN, "board"},
		{"4k/5/5/5/K3", ErrInvalidFEN, "board"},
		{"4k/5/5/5/K3rr", ErrInvalidFEN, "board"},
		{"4z/5/5/5/K4", ErrInvalidFEN, "board"},
		{"4k/5/5/5/K3r q", ErrInvalidArgument, "team"},
		{"4k/5/5/5/K3r a x", ErrInvalidArgument, "sub moves"},
		{"4k/5/5/5/K3r a 0 1 extra", ErrInvalidFEN, "fen"},
		{"4k/5/5/5/K3r 'a", ErrInvalidFEN, "fen"},
		{"k99999999999999999999k/5/5/5/5 a", ErrInvalidFEN, "board"},
		{"-99999999999999999999-/5/5/5/5 a", ErrInvalidFEN, "board"},
		{"k0k3/5/5/5/5 a", ErrInvalidFEN, "board"},
		{"6/5/5/5/5 a", ErrInvalidFEN, "board"},
		{"k5/5/5/5/5 a", ErrInvalidFEN, "board"},
		{"5k/5/5/5/5 a", ErrInvalidFEN, "board"},
		{"5-/5/5/5/5 a", ErrInvalidFEN, "board"},
	}
	for _, tc := range tests {
		t.Run(tc.fen, func(t *testing.T) {
			_, err := game.Load(tc.fen)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)

			var fenErr *FenDecodeError
			require.True(t, errors.As(err, &fenErr))
			assert.Equal(t, tc.field, fenErr.Field)
		})
	}

	t.Run("board left untouched", func(t *testing.T) {
		b := mustLoad(t, game, "4k/5/5/5/K3r a 0 1")
		before := b.FEN()
		require.Error(t, b.Load("4k/5/5/5/K3r z"))
		assert.Equal(t, before, b.FEN())
	})
}

func TestSquareCoordinates(t *testing.T) {
	is := is.New(t)
	geo := newTestGame[bitboard.W1](5, 5, 2, 1).Geometry()

	is.Equal(geo.EncodeSquare(0), "a5")
	is.Equal(geo.EncodeSquare(24), "e1")
	is.Equal(geo.EncodeSquare(NoSquare), "-")
	for sq := Square(0); sq < 25; sq++ {
		got, err := geo.DecodeSquare(geo.EncodeSquare(sq))
		is.NoErr(err)
		is.Equal(got, sq)
	}

	for _, bad := range []string{"", "a", "f1", "a0", "a6", "1a"} {
		_, err := geo.DecodeSquare(bad)
		is.True(errors.Is(err, ErrInvalidSquare))
	}

	wide := newTestGame[bitboard.W2](2, 60, 2, 1)
	assert.Panics(t, func() { wide.Geometry() })
}

func TestPerftAgreesWithPseudo(t *testing.T) {
	is := is.New(t)
	b := mustLoad(t, newTestGame[bitboard.W1](5, 5, 2, 1), "r3k/5/1-3/5/K2BR a 0 1")
	for depth := 1; depth <= 3; depth++ {
		is.Equal(b.Perft(depth), b.PerftPseudo(depth))
	}

	var total uint64
	for _, br := range b.Divide(3) {
		total += br.Nodes
	}
	is.Equal(total, b.Perft(3))
	is.Equal(b.Perft(0), uint64(1))
}
