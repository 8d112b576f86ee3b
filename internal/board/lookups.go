package board

import "github.com/hailam/gridplay/internal/bitboard"

// Lookup is the precomputed attack data of one piece type on one square.
// Leapers only use All. Sliders keep one unblocked ray per direction in
// Rays and their union in All.
type Lookup[L bitboard.Limbs] struct {
	All  bitboard.BitBoard[L]
	Rays []bitboard.BitBoard[L]
}

// Direction is a step of Rows rows (positive is down) and Cols columns
// (positive is right).
type Direction struct {
	Rows, Cols int
}

var (
	Up        = Direction{-1, 0}
	Down      = Direction{1, 0}
	Left      = Direction{0, -1}
	Right     = Direction{0, 1}
	UpLeft    = Direction{-1, -1}
	UpRight   = Direction{-1, 1}
	DownLeft  = Direction{1, -1}
	DownRight = Direction{1, 1}
)

var (
	Orthogonal = []Direction{Left, Right, Up, Down}
	Diagonal   = []Direction{UpLeft, UpRight, DownLeft, DownRight}
	AllAround  = []Direction{Left, Right, Up, Down, UpLeft, UpRight, DownLeft, DownRight}

	KnightJumps = []Direction{
		{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2},
		{1, -2}, {1, 2}, {2, -1}, {2, 1},
	}
)

// Offset moves every square in set by (dr, dc). Squares that would leave
// the board are dropped instead of wrapping to the next row.
func (g *Geometry[L]) Offset(set bitboard.BitBoard[L], dr, dc int) bitboard.BitBoard[L] {
	switch {
	case dr < 0:
		set = set.AndNot(g.EdgesAt(-dr).Top).Up(-dr, g.Cols)
	case dr > 0:
		set = set.AndNot(g.EdgesAt(dr).Bottom).Down(dr, g.Cols)
	}
	switch {
	case dc < 0:
		set = set.AndNot(g.EdgesAt(-dc).Left).Left(-dc)
	case dc > 0:
		set = set.AndNot(g.EdgesAt(dc).Right).Right(dc)
	}
	return set
}

// Step is Offset by a Direction.
func (g *Geometry[L]) Step(set bitboard.BitBoard[L], d Direction) bitboard.BitBoard[L] {
	return g.Offset(set, d.Rows, d.Cols)
}

// LeaperLookup returns the squares reachable from sq by any of the deltas.
func (g *Geometry[L]) LeaperLookup(sq Square, deltas []Direction) Lookup[L] {
	from := g.Bit(sq)
	var moves bitboard.BitBoard[L]
	for _, d := range deltas {
		moves = moves.Or(g.Step(from, d))
	}
	return Lookup[L]{All: moves}
}

// KingLookup returns the one-step neighbourhood of sq.
func (g *Geometry[L]) KingLookup(sq Square) Lookup[L] {
	return g.LeaperLookup(sq, AllAround)
}

// KnightLookup returns the knight jumps from sq.
func (g *Geometry[L]) KnightLookup(sq Square) Lookup[L] {
	return g.LeaperLookup(sq, KnightJumps)
}

// RayLookup returns the unblocked rays from sq to the board edge, one per
// direction, in the order given.
func (g *Geometry[L]) RayLookup(sq Square, dirs []Direction) Lookup[L] {
	lookup := Lookup[L]{Rays: make([]bitboard.BitBoard[L], len(dirs))}
	from := g.Bit(sq)
	for i, d := range dirs {
		var ray bitboard.BitBoard[L]
		for cur := g.Step(from, d); cur.More(); cur = g.Step(cur, d) {
			ray = ray.Or(cur)
		}
		lookup.Rays[i] = ray
		lookup.All = lookup.All.Or(ray)
	}
	return lookup
}

// RayAttacks resolves the precomputed rays of a slider on sq against the
// occupied squares. Each ray keeps its nearest blocker and drops every
// square beyond it.
func RayAttacks[L bitboard.Limbs](table []Lookup[L], sq Square, occupied bitboard.BitBoard[L]) bitboard.BitBoard[L] {
	lookup := table[sq]
	if !lookup.All.Intersects(occupied) {
		return lookup.All
	}

	var attacks bitboard.BitBoard[L]
	for dir, ray := range lookup.Rays {
		blockers := ray.And(occupied)
		if blockers.More() {
			// A ray lies entirely above or entirely below its origin, so
			// the nearest blocker is the lowest bit above and the highest
			// bit below.
			nearest := blockers.LSB()
			if nearest < int(sq) {
				nearest = blockers.MSB()
			}
			ray = ray.Xor(table[nearest].Rays[dir])
		}
		attacks = attacks.Or(ray)
	}
	return attacks
}
