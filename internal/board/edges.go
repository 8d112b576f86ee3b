package board

import "github.com/hailam/gridplay/internal/bitboard"

// Edges marks the outer rows and columns of a board at one thickness.
type Edges[L bitboard.Limbs] struct {
	Top    bitboard.BitBoard[L]
	Bottom bitboard.BitBoard[L]
	Left   bitboard.BitBoard[L]
	Right  bitboard.BitBoard[L]
	All    bitboard.BitBoard[L]
}

// makeEdges builds the masks for the outer n rows/columns, clamped to
// the board.
func makeEdges[L bitboard.Limbs](rows, cols, n int) Edges[L] {
	tr, tc := min(n, rows), min(n, cols)
	full := bitboard.LowBits[L](rows * cols)

	var e Edges[L]
	e.Top = bitboard.LowBits[L](tr * cols)
	e.Bottom = full.AndNot(bitboard.LowBits[L]((rows - tr) * cols))

	seed := bitboard.LowBits[L](tc)
	for row := 0; row < rows; row++ {
		e.Left = e.Left.Or(seed.Down(row, cols))
	}
	e.Right = e.Left.Right(cols - tc)

	e.All = e.Top.Or(e.Bottom).Or(e.Left).Or(e.Right)
	return e
}

// generateEdges returns one record per thickness 1..max(2, min(rows,cols)/2).
func generateEdges[L bitboard.Limbs](rows, cols int) []Edges[L] {
	n := max(2, min(rows, cols)/2)
	edges := make([]Edges[L], n)
	for i := range edges {
		edges[i] = makeEdges[L](rows, cols, i+1)
	}
	return edges
}

// EdgesAt returns the edge masks of thickness n (n >= 1).
func (g *Geometry[L]) EdgesAt(n int) Edges[L] {
	if n <= len(g.Edges) {
		return g.Edges[n-1]
	}
	return makeEdges[L](g.Rows, g.Cols, n)
}
