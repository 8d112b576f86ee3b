package bitboard

// Shl shifts b toward the most significant bit by n. Shifting by the full
// width or more yields an empty bitboard.
func (b BitBoard[L]) Shl(n int) BitBoard[L] {
	if n < 0 {
		panic("bitboard: negative shift")
	}
	k := len(b.l)
	if k == 1 {
		b.l[0] <<= uint(n)
		return b
	}

	var r BitBoard[L]
	limb, bit := n/limbBits, uint(n%limbBits)
	for i := 0; i+limb < k; i++ {
		src := i + limb
		v := b.l[src] << bit
		// Spill from the next less significant limb.
		if bit != 0 && src+1 < k {
			v |= b.l[src+1] >> (limbBits - bit)
		}
		r.l[i] = v
	}
	return r
}

// Shr shifts b toward the least significant bit by n. Shifting by the full
// width or more yields an empty bitboard.
func (b BitBoard[L]) Shr(n int) BitBoard[L] {
	if n < 0 {
		panic("bitboard: negative shift")
	}
	k := len(b.l)
	if k == 1 {
		b.l[0] >>= uint(n)
		return b
	}

	var r BitBoard[L]
	limb, bit := n/limbBits, uint(n%limbBits)
	for i := k - 1; i-limb >= 0; i-- {
		src := i - limb
		v := b.l[src] >> bit
		if bit != 0 && src > 0 {
			v |= b.l[src-1] << (limbBits - bit)
		}
		r.l[i] = v
	}
	return r
}

// Board shifts. Square 0 is the top-left corner and indices grow to the
// right, then downward, so one row is a shift by cols.

// Up moves every square n rows toward the top edge.
func (b BitBoard[L]) Up(n, cols int) BitBoard[L] {
	return b.Shr(n * cols)
}

// Down moves every square n rows toward the bottom edge.
func (b BitBoard[L]) Down(n, cols int) BitBoard[L] {
	return b.Shl(n * cols)
}

// Left moves every square n columns toward the left edge.
func (b BitBoard[L]) Left(n int) BitBoard[L] {
	return b.Shr(n)
}

// Right moves every square n columns toward the right edge.
func (b BitBoard[L]) Right(n int) BitBoard[L] {
	return b.Shl(n)
}
