package bitboard

// Add returns b + o modulo 2^Width. Carries ripple through AND/XOR/shift
// passes until none remain.
func (b BitBoard[L]) Add(o BitBoard[L]) BitBoard[L] {
	if len(b.l) == 1 {
		b.l[0] += o.l[0]
		return b
	}
	for o.More() {
		carry := b.And(o)
		b = b.Xor(o)
		o = carry.Shl(1)
	}
	return b
}

// Sub returns b - o modulo 2^Width.
func (b BitBoard[L]) Sub(o BitBoard[L]) BitBoard[L] {
	if len(b.l) == 1 {
		b.l[0] -= o.l[0]
		return b
	}
	for o.More() {
		borrow := b.Not().And(o)
		b = b.Xor(o)
		o = borrow.Shl(1)
	}
	return b
}

// Neg returns the two's complement of b.
func (b BitBoard[L]) Neg() BitBoard[L] {
	return b.Not().Add(FromIndex[L](0))
}

// Cmp compares b and o as unsigned integers and returns -1, 0 or +1.
func (b BitBoard[L]) Cmp(o BitBoard[L]) int {
	for i := 0; i < len(b.l); i++ {
		switch {
		case b.l[i] < o.l[i]:
			return -1
		case b.l[i] > o.l[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether b < o as unsigned integers.
func (b BitBoard[L]) Less(o BitBoard[L]) bool {
	return b.Cmp(o) < 0
}
