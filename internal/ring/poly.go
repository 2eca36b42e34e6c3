package ring

// Poly is an element of R_q = Z_q[X]/(X^N+1): 256 coefficients in time
// domain. Poly and PolyNTT are kept as distinct types so that a value from
// one domain cannot be silently used as the other; convert explicitly with
// NTT / InverseNTT.
type Poly [N]Element

// Add returns the coefficient-wise sum of p and o.
func (p Poly) Add(o Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = Add(p[i], o[i])
	}
	return r
}

// Sub returns the coefficient-wise difference p - o.
func (p Poly) Sub(o Poly) Poly {
	var r Poly
	for i := range r {
		r[i] = Sub(p[i], o[i])
	}
	return r
}

// Mul returns p*o reduced modulo X^N+1, computed by schoolbook
// convolution. This is a reference-only operation: the production
// multiplication path always goes through the NTT domain.
func (p Poly) Mul(o Poly) Poly {
	var acc [2 * N]Element
	for i := 0; i < N; i++ {
		if p[i] == 0 {
			continue
		}
		for j := 0; j < N; j++ {
			acc[i+j] = Add(acc[i+j], Mul(p[i], o[j]))
		}
	}
	var r Poly
	for i := 0; i < N; i++ {
		// X^N = -1, so the upper half folds back with negation.
		r[i] = Sub(acc[i], acc[i+N])
	}
	return r
}

// Equal reports whether p and o hold the same coefficients. It compares in
// constant time: every coefficient pair is examined regardless of earlier
// mismatches, matching the ct_eq discipline used for ciphertext comparison
// elsewhere in this module.
func (p Poly) Equal(o Poly) bool {
	var diff Element
	for i := range p {
		diff |= p[i] ^ o[i]
	}
	return diff == 0
}
