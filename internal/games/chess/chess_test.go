package chess

import (
	"errors"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"

	"github.com/hailam/gridplay/internal/board"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want board.Result
	}{
		{"start", StartFEN, board.Result{Kind: board.Ongoing}},
		{"back rank mate", "R6k/6pp/8/8/8/8/8/K7 b - - 0 1", board.Result{Kind: board.Win, Winner: White}},
		{"stalemate", "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", board.Result{Kind: board.Draw}},
		{"fool's mate", "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3", board.Result{Kind: board.Win, Winner: Black}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := load(t, tc.fen)
			assert.Equal(t, tc.want, b.Resolve())
		})
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
		"8/8/8/8/k2Pp2R/8/8/4K3 b - d3 0 1",
		"4k3/8/8/8/8/8/8/4K2R w K - 5 40",
	}
	for _, fen := range fens {
		t.Run(fen, func(t *testing.T) {
			b := load(t, fen)
			assert.Equal(t, fen, b.FEN())
		})
	}
}

func TestFENAfterMoves(t *testing.T) {
	is := is.New(t)
	b := load(t, StartFEN)

	m, err := b.DecodeMove("e2e4")
	is.NoErr(err)
	b.MakeMove(m)
	is.Equal(b.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 1 1")

	_, err = b.DecodeMove("e8e7")
	is.True(errors.Is(err, board.ErrIllegalMove))

	m, err = b.DecodeMove("g8f6")
	is.NoErr(err)
	b.MakeMove(m)
	is.Equal(b.FEN(), "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 2 2")

	m, err = b.DecodeMove("e1e2")
	is.NoErr(err)
	b.MakeMove(m)
	is.Equal(b.FEN(), "rnbqkb1r/pppppppp/5n2/8/4P3/8/PPPPKPPP/RNBQ1BNR b kq - 3 2")

	b.UndoMove()
	b.UndoMove()
	b.UndoMove()
	is.Equal(b.FEN(), StartFEN)
}

func TestFENErrors(t *testing.T) {
	game := New()
	bad := []string{
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkz - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN1 w K - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e6 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq z9 0 1",
	}
	for _, fen := range bad {
		_, err := game.Load(fen)
		require.ErrorIs(t, err, board.ErrInvalidArgument, fen)

		var fe *board.FenDecodeError
		require.ErrorAs(t, err, &fe, fen)
	}
}

func TestSpecialMoves(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		move  string
		kind  board.MoveKind
		after string
	}{
		{
			"short castle",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "e1g1", board.Castle,
			"r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1",
		},
		{
			"long castle",
			"r3k2r/8/8/8/8/8/8/R3K2R b KQkq - 0 1", "e8c8", board.Castle,
			"2kr3r/8/8/8/8/8/8/R3K2R w KQ - 1 2",
		},
		{
			"en passant",
			"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "e5d6", board.EnPassant,
			"rnbqkbnr/ppp1pppp/3P4/8/8/8/PPPP1PPP/RNBQKBNR b KQkq - 1 3",
		},
		{
			"promotion",
			"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8n", board.Promotion,
			"1N2k3/8/8/8/8/8/8/4K3 b - - 1 1",
		},
		{
			"rook capture drops castling",
			"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", "a1a8", board.Capture,
			"R3k2r/8/8/8/8/8/8/4K2R b Kk - 1 1",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := load(t, tc.fen)
			m, err := b.DecodeMove(tc.move)
			require.NoError(t, err)
			assert.Equal(t, tc.kind, m.Kind)

			hash := b.Hash()
			b.MakeMove(m)
			assert.Equal(t, tc.after, b.FEN())
			require.NoError(t, b.Validate())

			b.UndoMove()
			assert.Equal(t, tc.fen, b.FEN())
			assert.Equal(t, hash, b.Hash())
		})
	}
}

func TestCastlingThroughCheck(t *testing.T) {
	is := is.New(t)
	// The bishop on c4 covers f1.
	b := load(t, "4k3/8/8/8/2b5/8/8/4K2R w K - 0 1")
	_, err := b.DecodeMove("e1g1")
	is.True(errors.Is(err, board.ErrIllegalMove))

	// In check.
	b = load(t, "4k3/8/8/8/8/8/4r3/R3K3 w Q - 0 1")
	_, err = b.DecodeMove("e1c1")
	is.True(errors.Is(err, board.ErrIllegalMove))

	// b1 may be attacked on the long side.
	b = load(t, "4k3/8/8/8/8/8/1r6/R3K3 w Q - 0 1")
	_, err = b.DecodeMove("e1c1")
	is.NoErr(err)
}

func TestHashEnPassant(t *testing.T) {
	is := is.New(t)
	// A double push with no pawn able to take hashes like the plain position.
	with := load(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	without := load(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	is.Equal(with.Hash(), without.Hash())

	with = load(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	without = load(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	is.True(with.Hash() != without.Hash())
}

func TestSAN(t *testing.T) {
	tests := []struct {
		fen string
		uci string
		san string
	}{
		{StartFEN, "e2e4", "e4"},
		{StartFEN, "g1f3", "Nf3"},
		{"2k5/8/8/8/8/8/4K3/R6R w - - 0 1", "a1d1", "Rad1"},
		{"2k5/8/8/8/8/8/4K3/R6R w - - 0 1", "h1d1", "Rhd1"},
		{"2k5/8/8/8/R7/8/4K3/R7 w - - 0 1", "a4a3", "R4a3"},
		{"6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1", "a1a8", "Ra8#"},
		{"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1g1", "O-O"},
		{"4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1", "e1c1", "O-O-O"},
		{"rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3", "e5d6", "exd6"},
		{"4k3/1P6/8/8/8/8/8/4K3 w - - 0 1", "b7b8q", "b8=Q+"},
		{"4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "b1d2", "Nbd2"},
		{"4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1", "f1d2", "Nfd2"},
	}
	for _, tc := range tests {
		t.Run(tc.san, func(t *testing.T) {
			b := load(t, tc.fen)
			m, err := b.DecodeMove(tc.uci)
			require.NoError(t, err)
			assert.Equal(t, tc.san, ToSAN(b, m))

			parsed, err := ParseSAN(b, tc.san)
			require.NoError(t, err)
			assert.Equal(t, m, parsed)
		})
	}

	b := load(t, StartFEN)
	_, err := ParseSAN(b, "Ke2")
	assert.ErrorIs(t, err, board.ErrIllegalMove)

	b = load(t, "4k3/8/8/8/8/8/8/1N2KN2 w - - 0 1")
	_, err = ParseSAN(b, "Nd2")
	assert.ErrorIs(t, err, ErrAmbiguousMove)

	// Without its file a pawn capture reads as a push.
	b = load(t, "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3")
	_, err = ParseSAN(b, "d6")
	assert.ErrorIs(t, err, board.ErrIllegalMove)
}

func TestMovesToSAN(t *testing.T) {
	b := load(t, StartFEN)
	var line []board.Move
	c := b.Clone()
	for _, s := range []string{"f2f3", "e7e5", "g2g4", "d8h4"} {
		m, err := c.DecodeMove(s)
		require.NoError(t, err)
		line = append(line, m)
		c.MakeMove(m)
	}
	assert.Equal(t, []string{"f3", "e5", "g4", "Qh4#"}, MovesToSAN(b, line))
	assert.Equal(t, StartFEN, b.FEN())
}

func TestMakeUndoRoundTrip(t *testing.T) {
	for round := 0; round < 20; round++ {
		b := load(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
		var fens []string
		var hashes []uint64
		for ply := 0; ply < 60; ply++ {
			moves := b.GenerateLegalMoves()
			if len(moves) == 0 {
				break
			}
			fens = append(fens, b.FEN())
			hashes = append(hashes, b.Hash())
			b.MakeMove(moves[frand.Intn(len(moves))])
			require.NoError(t, b.Validate())
		}
		for i := len(fens) - 1; i >= 0; i-- {
			b.UndoMove()
			require.Equal(t, fens[i], b.FEN())
			require.Equal(t, hashes[i], b.Hash())
		}
	}
}
