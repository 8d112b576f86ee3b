package bitboard

// And returns b & o.
func (b BitBoard[L]) And(o BitBoard[L]) BitBoard[L] {
	for i := 0; i < len(b.l); i++ {
		b.l[i] &= o.l[i]
	}
	return b
}

// Or returns b | o.
func (b BitBoard[L]) Or(o BitBoard[L]) BitBoard[L] {
	for i := 0; i < len(b.l); i++ {
		b.l[i] |= o.l[i]
	}
	return b
}

// Xor returns b ^ o.
func (b BitBoard[L]) Xor(o BitBoard[L]) BitBoard[L] {
	for i := 0; i < len(b.l); i++ {
		b.l[i] ^= o.l[i]
	}
	return b
}

// AndNot returns b &^ o.
func (b BitBoard[L]) AndNot(o BitBoard[L]) BitBoard[L] {
	for i := 0; i < len(b.l); i++ {
		b.l[i] &^= o.l[i]
	}
	return b
}

// Not returns ^b over the full width.
func (b BitBoard[L]) Not() BitBoard[L] {
	for i := 0; i < len(b.l); i++ {
		b.l[i] = ^b.l[i]
	}
	return b
}

// Intersects returns true if b and o share any bit.
func (b BitBoard[L]) Intersects(o BitBoard[L]) bool {
	for i := 0; i < len(b.l); i++ {
		if b.l[i]&o.l[i] != 0 {
			return true
		}
	}
	return false
}
