package ring

// Vector is a length-k sequence of R_q polynomials.
type Vector []Poly

// VectorNTT is a length-k sequence of T_q polynomials.
type VectorNTT []PolyNTT

// Matrix is a k x k array of T_q polynomials, stored row-major as
// Matrix[i][j]. It is never persisted across calls: both K-PKE.KeyGen and
// K-PKE.Encrypt regenerate it deterministically from rho via SampleNTT.
type Matrix [][]PolyNTT

// NewMatrix allocates a k x k matrix of zeroed T_q polynomials.
func NewMatrix(k int) Matrix {
	m := make(Matrix, k)
	for i := range m {
		m[i] = make([]PolyNTT, k)
	}
	return m
}

// NTTVector applies NTT coefficient-wise across v.
func NTTVector(v Vector) VectorNTT {
	out := make(VectorNTT, len(v))
	for i, p := range v {
		out[i] = NTT(p)
	}
	return out
}

// InverseNTTVector applies InverseNTT coefficient-wise across v.
func InverseNTTVector(v VectorNTT) Vector {
	out := make(Vector, len(v))
	for i, p := range v {
		out[i] = InverseNTT(p)
	}
	return out
}

// dot returns the T_q dot product of row and v: sum_j row[j] * v[j].
func dot(row []PolyNTT, v VectorNTT) PolyNTT {
	var acc PolyNTT
	for j := range row {
		acc = acc.Add(MultiplyNTTs(row[j], v[j]))
	}
	return acc
}

// MulVector computes A*v in T_q: row i of the result is
// sum_j A[i][j]*v[j].
func (a Matrix) MulVector(v VectorNTT) VectorNTT {
	out := make(VectorNTT, len(a))
	for i := range a {
		out[i] = dot(a[i], v)
	}
	return out
}

// MulVectorTranspose computes A^T*v in T_q: row i of the result is
// sum_j A[j][i]*v[j]. K-PKE.Encrypt requires this transposed product when
// computing u from y; do not conflate it with MulVector.
func (a Matrix) MulVectorTranspose(v VectorNTT) VectorNTT {
	k := len(a)
	out := make(VectorNTT, k)
	for i := 0; i < k; i++ {
		col := make([]PolyNTT, k)
		for j := 0; j < k; j++ {
			col[j] = a[j][i]
		}
		out[i] = dot(col, v)
	}
	return out
}

// DotVector returns the T_q dot product of two vectors:
// sum_i v[i]*w[i].
func DotVector(v, w VectorNTT) PolyNTT {
	return dot(v, w)
}

// AddVector returns the coefficient-wise sum of two Vectors.
func AddVector(v, w Vector) Vector {
	out := make(Vector, len(v))
	for i := range v {
		out[i] = v[i].Add(w[i])
	}
	return out
}

// AddVectorNTT returns the coefficient-wise sum of two VectorNTTs.
func AddVectorNTT(v, w VectorNTT) VectorNTT {
	out := make(VectorNTT, len(v))
	for i := range v {
		out[i] = v[i].Add(w[i])
	}
	return out
}
