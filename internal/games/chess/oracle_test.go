package chess

import (
	"slices"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
	"lukechampine.com/frand"
)

// TestAgainstDragontooth plays random games and compares the legal moves
// with an independent 8x8 move generator at every ply.
func TestAgainstDragontooth(t *testing.T) {
	starts := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8",
	}
	games := 8
	if testing.Short() {
		games = 2
	}

	for _, fen := range starts {
		for round := 0; round < games; round++ {
			b := load(t, fen)
			ref := dragontoothmg.ParseFen(fen)

			for ply := 0; ply < 120; ply++ {
				moves := b.GenerateLegalMoves()
				got := make([]string, len(moves))
				for i, m := range moves {
					got[i] = b.EncodeMove(m)
				}

				refMoves := ref.GenerateLegalMoves()
				want := make([]string, len(refMoves))
				for i := range refMoves {
					want[i] = refMoves[i].String()
				}

				require.ElementsMatch(t, want, got, "position %s", b.FEN())
				if len(moves) == 0 {
					break
				}

				i := frand.Intn(len(moves))
				b.MakeMove(moves[i])
				ref.Apply(refMoves[slices.Index(want, got[i])])
			}
		}
	}
}
