package ring

// PolyNTT is an element of T_q, the NTT domain: 256 coefficients
// interpreted as 128 pairs, the i-th pair being the coefficients of a
// degree-1 element of Z_q[X]/(X^2-GAMMAS[i]). Convert to and from Poly
// only through NTT / InverseNTT.
type PolyNTT [N]Element

// NTT computes the forward number-theoretic transform of p, mapping R_q
// into T_q. The algorithm is the Gentleman-Sande butterfly network over
// seven layers, consuming ZETAS in order.
func NTT(p Poly) PolyNTT {
	a := PolyNTT(p)
	k := 1
	for length := 128; length > 1; length /= 2 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k++
			for j := start; j < start+length; j++ {
				t := Mul(zeta, a[j+length])
				a[j+length] = Sub(a[j], t)
				a[j] = Add(a[j], t)
			}
		}
	}
	return a
}

// InverseNTT computes the inverse number-theoretic transform, mapping T_q
// back into R_q. It runs the butterfly network in reverse, consuming
// ZETAS in descending order, then renormalizes every coefficient by
// Inv128 = 128^-1 mod Q.
func InverseNTT(a PolyNTT) Poly {
	f := a
	k := 127
	for length := 2; length <= 128; length *= 2 {
		for start := 0; start < N; start += 2 * length {
			zeta := zetas[k]
			k--
			for j := start; j < start+length; j++ {
				t := f[j]
				f[j] = Add(t, f[j+length])
				f[j+length] = Mul(zeta, Sub(f[j+length], t))
			}
		}
	}
	for i := range f {
		f[i] = Mul(f[i], Inv128)
	}
	return Poly(f)
}

// Add returns the coefficient-wise sum of a and b in T_q.
func (a PolyNTT) Add(b PolyNTT) PolyNTT {
	var r PolyNTT
	for i := range r {
		r[i] = Add(a[i], b[i])
	}
	return r
}

// Sub returns the coefficient-wise difference a - b in T_q.
func (a PolyNTT) Sub(b PolyNTT) PolyNTT {
	var r PolyNTT
	for i := range r {
		r[i] = Sub(a[i], b[i])
	}
	return r
}

// BaseCaseMultiply multiplies two degree-1 polynomials (a0 + a1*X) and
// (b0 + b1*X) modulo X^2 - gamma, returning the coefficients (c0, c1) of
// the degree-1 product.
func BaseCaseMultiply(a0, a1, b0, b1, gamma Element) (c0, c1 Element) {
	c0 = Add(Mul(a0, b0), Mul(gamma, Mul(a1, b1)))
	c1 = Add(Mul(a0, b1), Mul(a1, b0))
	return c0, c1
}

// MultiplyNTTs returns the pointwise product of f and g in T_q, applying
// BaseCaseMultiply to each of the 128 coefficient pairs with its
// corresponding GAMMAS value.
func MultiplyNTTs(f, g PolyNTT) PolyNTT {
	var h PolyNTT
	for i := 0; i < N/2; i++ {
		c0, c1 := BaseCaseMultiply(f[2*i], f[2*i+1], g[2*i], g[2*i+1], gammas[i])
		h[2*i] = c0
		h[2*i+1] = c1
	}
	return h
}
