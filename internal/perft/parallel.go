package perft

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/hailam/gridplay/internal/bitboard"
	"github.com/hailam/gridplay/internal/board"
)

// Divide counts the subtree below each legal root move. Root moves are
// shared out to workers goroutines, each playing them on its own copy of
// b. The branches come back in move generation order.
func Divide[L bitboard.Limbs](ctx context.Context, b *board.Board[L], depth, workers int) ([]board.Branch, error) {
	if depth < 1 {
		return nil, nil
	}
	moves := b.GenerateLegalMoves()
	branches := make([]board.Branch, len(moves))
	for i, m := range moves {
		branches[i] = board.Branch{Move: m, Notation: b.EncodeMove(m)}
	}
	workers = max(1, min(workers, len(moves)))

	jobs := make(chan int)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(jobs)
		for i := range moves {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})
	for range workers {
		c := b.Clone()
		g.Go(func() error {
			for i := range jobs {
				if err := ctx.Err(); err != nil {
					return err
				}
				c.MakeMove(moves[i])
				branches[i].Nodes = c.Perft(depth - 1)
				c.UndoMove()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return branches, nil
}

// Parallel counts the leaves at depth using workers goroutines.
func Parallel[L bitboard.Limbs](ctx context.Context, b *board.Board[L], depth, workers int) (uint64, error) {
	if depth < 2 || workers < 2 {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return b.Perft(depth), nil
	}
	branches, err := Divide(ctx, b, depth, workers)
	if err != nil {
		return 0, err
	}
	return Total(branches), nil
}

// Total sums the node counts of branches.
func Total(branches []board.Branch) uint64 {
	return lo.SumBy(branches, func(br board.Branch) uint64 { return br.Nodes })
}
