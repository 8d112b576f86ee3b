// Package bitboard implements fixed-width bit vectors used as square sets.
package bitboard

import (
	"fmt"
	"math/bits"
	"strings"
)

// Limbs lists the supported storage widths. Limbs are stored most
// significant first: bit 0 is the least significant bit of the last limb.
type Limbs interface {
	[1]uint64 | [2]uint64 | [4]uint64 | [8]uint64
}

// Storage widths, by limb count.
type (
	W1 = [1]uint64 // up to 64 squares
	W2 = [2]uint64 // up to 128 squares
	W4 = [4]uint64 // up to 256 squares
	W8 = [8]uint64 // up to 512 squares
)

const limbBits = 64

// BitBoard is a set of square indices. It can also be read as a single
// unsigned integer of 64·K bits, where K is the limb count of L.
type BitBoard[L Limbs] struct {
	l L
}

// New returns an empty bitboard.
func New[L Limbs]() BitBoard[L] {
	return BitBoard[L]{}
}

// FromLimbs wraps raw limbs, most significant first.
func FromLimbs[L Limbs](l L) BitBoard[L] {
	return BitBoard[L]{l: l}
}

// FromIndex returns a bitboard with only bit i set.
func FromIndex[L Limbs](i int) BitBoard[L] {
	var b BitBoard[L]
	k := len(b.l)
	b.l[k-1-i/limbBits] = uint64(1) << uint(i%limbBits)
	return b
}

// LowBits returns a bitboard with bits 0..n-1 set.
func LowBits[L Limbs](n int) BitBoard[L] {
	var b BitBoard[L]
	for i := len(b.l) - 1; i >= 0 && n > 0; i-- {
		if n >= limbBits {
			b.l[i] = ^uint64(0)
		} else {
			b.l[i] = uint64(1)<<uint(n) - 1
		}
		n -= limbBits
	}
	return b
}

// Width returns the number of bits a BitBoard[L] holds.
func Width[L Limbs]() int {
	var l L
	return len(l) * limbBits
}

// Limbs returns the raw limbs, most significant first.
func (b BitBoard[L]) Limbs() L {
	return b.l
}

// Width returns the number of bits b holds.
func (b BitBoard[L]) Width() int {
	return len(b.l) * limbBits
}

func (b BitBoard[L]) locate(i int) (int, uint64) {
	return len(b.l) - 1 - i/limbBits, uint64(1) << uint(i%limbBits)
}

// Set sets bit i.
func (b BitBoard[L]) Set(i int) BitBoard[L] {
	limb, mask := b.locate(i)
	b.l[limb] |= mask
	return b
}

// Clear clears bit i.
func (b BitBoard[L]) Clear(i int) BitBoard[L] {
	limb, mask := b.locate(i)
	b.l[limb] &^= mask
	return b
}

// Toggle flips bit i.
func (b BitBoard[L]) Toggle(i int) BitBoard[L] {
	limb, mask := b.locate(i)
	b.l[limb] ^= mask
	return b
}

// IsSet returns true if bit i is set.
func (b BitBoard[L]) IsSet(i int) bool {
	limb, mask := b.locate(i)
	return b.l[limb]&mask != 0
}

// More returns true if there are any bits set.
func (b BitBoard[L]) More() bool {
	if len(b.l) == 1 {
		return b.l[0] != 0
	}
	for i := 0; i < len(b.l); i++ {
		if b.l[i] != 0 {
			return true
		}
	}
	return false
}

// Empty returns true if no bits are set.
func (b BitBoard[L]) Empty() bool {
	return !b.More()
}

// PopCount returns the number of set bits (population count).
func (b BitBoard[L]) PopCount() int {
	if len(b.l) == 1 {
		return bits.OnesCount64(b.l[0])
	}
	n := 0
	for i := 0; i < len(b.l); i++ {
		n += bits.OnesCount64(b.l[i])
	}
	return n
}

// String returns the limbs in hex, most significant first.
func (b BitBoard[L]) String() string {
	parts := make([]string, len(b.l))
	for i := 0; i < len(b.l); i++ {
		parts[i] = fmt.Sprintf("%016x", b.l[i])
	}
	return "0x" + strings.Join(parts, "_")
}

// Grid returns a visual representation of the bitboard laid out as a
// rows x cols board, square 0 in the top-left corner.
func (b BitBoard[L]) Grid(rows, cols int) string {
	var sb strings.Builder
	for row := 0; row < rows; row++ {
		fmt.Fprintf(&sb, "%2d ", rows-row)
		for col := 0; col < cols; col++ {
			if b.IsSet(row*cols + col) {
				sb.WriteString("1 ")
			} else {
				sb.WriteString(". ")
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("   ")
	for col := 0; col < cols; col++ {
		sb.WriteByte(ColumnLetter(col))
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')
	return sb.String()
}

const columnLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// ColumnLetter returns the file letter for a 0-based column.
func ColumnLetter(col int) byte {
	return columnLetters[col]
}

// ColumnIndex returns the 0-based column for a file letter, or -1.
func ColumnIndex(c byte) int {
	return strings.IndexByte(columnLetters, c)
}
