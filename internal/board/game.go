package board

import (
	"fmt"
	"sync"

	"github.com/hailam/gridplay/internal/bitboard"
)

// Game describes a rule set: board size, teams, pieces, move policy and
// notation. A Game is immutable once its first board has been created.
type Game[L bitboard.Limbs] struct {
	Name  string
	Rows  int
	Cols  int
	Teams int
	// Turns is the number of sub-turns a team plays before the team
	// changes. Zero means one.
	Turns int

	Pieces     []Piece[L]
	Controller Controller[L]
	FEN        FenOptions[L]

	once     sync.Once
	geometry *Geometry[L]
}

// Geometry holds the data derived from a Game that never changes during
// play. It is shared read-only between every board of the game.
type Geometry[L bitboard.Limbs] struct {
	Rows    int
	Cols    int
	Squares int
	// Full has one bit per square on the board.
	Full  bitboard.BitBoard[L]
	Edges []Edges[L]
	// Lookups is indexed by piece, then square. Pieces without a
	// precomputed table have a nil entry.
	Lookups [][]Lookup[L]
	Zobrist *Zobrist

	teams, turns       int
	turnNext, turnPrev []int
	teamNext, teamPrev []int
}

// Geometry builds the derived tables on first use.
func (g *Game[L]) Geometry() *Geometry[L] {
	g.once.Do(func() {
		if g.Turns <= 0 {
			g.Turns = 1
		}
		if g.Teams <= 0 {
			g.Teams = 2
		}
		if g.Controller == nil {
			g.Controller = DefaultController[L]{}
		}
		g.geometry = newGeometry(g)
	})
	return g.geometry
}

func newGeometry[L bitboard.Limbs](g *Game[L]) *Geometry[L] {
	squares := g.Rows * g.Cols
	if g.Rows <= 0 || g.Cols <= 0 || squares > bitboard.Width[L]() {
		panic(fmt.Sprintf("board: %dx%d board does not fit in %d bits", g.Rows, g.Cols, bitboard.Width[L]()))
	}
	if g.Cols > 52 {
		panic(fmt.Sprintf("board: %d columns cannot be named", g.Cols))
	}

	geo := &Geometry[L]{
		Rows:    g.Rows,
		Cols:    g.Cols,
		Squares: squares,
		Full:    bitboard.LowBits[L](squares),
		Edges:   generateEdges[L](g.Rows, g.Cols),
		teams:   g.Teams,
		turns:   g.Turns,
	}
	geo.turnNext, geo.turnPrev = cycle(g.Turns)
	geo.teamNext, geo.teamPrev = cycle(g.Teams)

	geo.Lookups = make([][]Lookup[L], len(g.Pieces))
	for i, p := range g.Pieces {
		gen, ok := p.(LookupGenerator[L])
		if !ok {
			continue
		}
		table := make([]Lookup[L], squares)
		for sq := range table {
			table[sq] = gen.GenerateLookup(geo, Square(sq))
		}
		geo.Lookups[i] = table
	}

	geo.Zobrist = NewZobrist(g.Name, squares, len(g.Pieces), g.Teams, g.Turns,
		g.Controller.ZobristExtras(g.Rows, g.Cols))
	return geo
}

// cycle returns the forward and reverse successor tables of 0..n-1.
func cycle(n int) (next, prev []int) {
	next = make([]int, n)
	prev = make([]int, n)
	for i := 0; i < n; i++ {
		next[i] = i + 1
		if next[i] >= n {
			next[i] = 0
		}
		prev[i] = i - 1
		if prev[i] < 0 {
			prev[i] = n - 1
		}
	}
	return next, prev
}

// Bit returns the single-square mask of sq.
func (g *Geometry[L]) Bit(sq Square) bitboard.BitBoard[L] {
	return bitboard.FromIndex[L](int(sq))
}

// Row returns the row of sq, counted from the top.
func (g *Geometry[L]) Row(sq Square) int {
	return int(sq) / g.Cols
}

// Col returns the column of sq, counted from the left.
func (g *Geometry[L]) Col(sq Square) int {
	return int(sq) % g.Cols
}

// At returns the square at row and col, both counted from the top left.
func (g *Geometry[L]) At(row, col int) Square {
	return Square(row*g.Cols + col)
}

// RowMask returns every square of one row.
func (g *Geometry[L]) RowMask(row int) bitboard.BitBoard[L] {
	return bitboard.LowBits[L](g.Cols).Down(row, g.Cols)
}

// Teams returns the number of teams.
func (g *Geometry[L]) Teams() int { return g.teams }

// Turns returns the number of sub-turns per team.
func (g *Geometry[L]) Turns() int { return g.turns }

// NextTeam returns the team that moves after team.
func (g *Geometry[L]) NextTeam(team int) int { return g.teamNext[team] }

// PrevTeam returns the team that moved before team.
func (g *Geometry[L]) PrevTeam(team int) int { return g.teamPrev[team] }
