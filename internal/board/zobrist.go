package board

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
	"lukechampine.com/frand"
)

const bignum = 1<<63 - 2

// Zobrist holds the random keys of one board geometry. Each square owns a
// gap key, a first-move key and one key per piece and team. The keys of
// the side to move and the controller extras follow.
//
// https://en.wikipedia.org/wiki/Zobrist_hashing
type Zobrist struct {
	squares, pieces, teams, turns, extras int
	stride                                int

	keys []uint64
}

// NewZobrist fills a table from a generator seeded by seed, so the same
// game always hashes the same way.
func NewZobrist(seed string, squares, pieces, teams, turns, extras int) *Zobrist {
	z := &Zobrist{
		squares: squares,
		pieces:  pieces,
		teams:   teams,
		turns:   turns,
		extras:  extras,
		stride:  2 + pieces*teams,
	}

	var key [32]byte
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(key[i*8:], xxhash.Sum64String(fmt.Sprintf("%s/%d", seed, i)))
	}
	rng := frand.NewCustom(key[:], 1024, 12)

	z.keys = make([]uint64, squares*z.stride+teams*turns+extras)
	for i := range z.keys {
		z.keys[i] = rng.Uint64n(bignum) + 1
	}
	return z
}

// Gap is the key of a gap on sq.
func (z *Zobrist) Gap(sq int) uint64 {
	return z.keys[sq*z.stride]
}

// FirstMove is the key of an unmoved piece on sq.
func (z *Zobrist) FirstMove(sq int) uint64 {
	return z.keys[sq*z.stride+1]
}

// Piece is the key of piece of team on sq.
func (z *Zobrist) Piece(sq, piece, team int) uint64 {
	return z.keys[sq*z.stride+2+piece*z.teams+team]
}

// Turn is the key of team being on move in sub-turn turn.
func (z *Zobrist) Turn(team, turn int) uint64 {
	return z.keys[z.squares*z.stride+team*z.turns+turn]
}

// Extra is the i-th controller key.
func (z *Zobrist) Extra(i int) uint64 {
	if i < 0 || i >= z.extras {
		panic(fmt.Sprintf("zobrist: extra key %d out of %d", i, z.extras))
	}
	return z.keys[z.squares*z.stride+z.teams*z.turns+i]
}

// Hash computes the position hash from scratch.
func (b *Board[L]) Hash() uint64 {
	z := b.Geometry.Zobrist
	n := b.Geometry.Squares
	key := uint64(0)

	for sq := range b.Gaps.Indices(n) {
		key ^= z.Gap(sq)
	}
	for sq := range b.FirstMove.Indices(n) {
		key ^= z.FirstMove(sq)
	}
	for piece, pieces := range b.Pieces {
		for team, own := range b.Teams {
			for sq := range pieces.And(own).Indices(n) {
				key ^= z.Piece(sq, piece, team)
			}
		}
	}
	key ^= z.Turn(b.MovingTeam, b.CurrentTurn)
	key ^= b.Game.Controller.HashExtras(b, z)
	return key
}
