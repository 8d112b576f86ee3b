package bitboard

import (
	"iter"
	"math/bits"
)

// LSB returns the index of the least significant set bit.
// It panics on an empty bitboard; check More first.
func (b BitBoard[L]) LSB() int {
	k := len(b.l)
	for i := k - 1; i >= 0; i-- {
		if b.l[i] != 0 {
			return (k-1-i)*limbBits + bits.TrailingZeros64(b.l[i])
		}
	}
	panic("bitboard: LSB of empty bitboard")
}

// MSB returns the index of the most significant set bit.
// It panics on an empty bitboard; check More first.
func (b BitBoard[L]) MSB() int {
	k := len(b.l)
	for i := 0; i < k; i++ {
		if b.l[i] != 0 {
			return (k-1-i)*limbBits + limbBits - 1 - bits.LeadingZeros64(b.l[i])
		}
	}
	panic("bitboard: MSB of empty bitboard")
}

// PopLSB removes and returns the least significant bit.
func (b *BitBoard[L]) PopLSB() int {
	k := len(b.l)
	for i := k - 1; i >= 0; i-- {
		if w := b.l[i]; w != 0 {
			b.l[i] = w & (w - 1) // Clear the LSB
			return (k-1-i)*limbBits + bits.TrailingZeros64(w)
		}
	}
	panic("bitboard: PopLSB of empty bitboard")
}

// Indices yields the indices of set bits below bound in ascending order.
// The sequence is lazy and may be ranged over more than once.
func (b BitBoard[L]) Indices(bound int) iter.Seq[int] {
	return func(yield func(int) bool) {
		v := b
		for v.More() {
			i := v.PopLSB()
			if i >= bound || !yield(i) {
				return
			}
		}
	}
}

// ForEach calls the function for each set bit.
func (b BitBoard[L]) ForEach(f func(int)) {
	for b.More() {
		f(b.PopLSB())
	}
}

// Squares returns a slice of all set bits below bound.
func (b BitBoard[L]) Squares(bound int) []int {
	squares := make([]int, 0, b.PopCount())
	for i := range b.Indices(bound) {
		squares = append(squares, i)
	}
	return squares
}
