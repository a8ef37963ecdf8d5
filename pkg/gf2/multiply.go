package gf2

// Multiply returns the product of p1 and p2 as polynomials over GF(2).
//
// Both inputs are normalized first, and the result has no leading zeros.
// An empty or zero factor yields the single bit 0.
func Multiply(p1, p2 Bits) Bits {
	a := p1.TrimLeadingZeros()
	b := p2.TrimLeadingZeros()
	if a.IsZero() || b.IsZero() {
		return Bits{0}
	}

	n := a.Len() + b.Len() - 1
	prod := make(Bits, n)
	for i, x := range a {
		if x == 0 {
			continue
		}
		for j, y := range b {
			if y == 0 {
				continue
			}
			// a[i] is x^(len(a)-1-i) and b[j] is x^(len(b)-1-j); their
			// product lands at index i+j counting from the top power.
			prod[i+j] ^= 1
		}
	}
	return prod.TrimLeadingZeros()
}

// Add returns the sum of a and b as polynomials over GF(2): the shorter
// operand is aligned to the low-order end before the XOR. The result has
// no leading zeros.
func Add(a, b Bits) Bits {
	n := a.Len()
	if b.Len() > n {
		n = b.Len()
	}
	return Xor(a.PadLeft(n), b.PadLeft(n)).TrimLeadingZeros()
}
