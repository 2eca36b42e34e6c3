package ring

import mlerrors "github.com/latticeforge/mlkem-go/internal/errors"

// SampleNTT performs rejection sampling of a uniform element of T_q from a
// 34-byte seed (typically rho concatenated with two index bytes). It
// streams 3-byte chunks from a SHAKE128 XOF, deriving two 12-bit
// candidates per chunk and accepting each iff it is less than Q, until 256
// coefficients have been accepted.
func SampleNTT(seed []byte) PolyNTT {
	xof := NewXOF()
	xof.Absorb(seed)

	var a PolyNTT
	i := 0
	for i < N {
		c := xof.Squeeze(3)
		d1 := uint32(c[0]) + 256*(uint32(c[1])%16)
		d2 := uint32(c[1])/16 + 16*uint32(c[2])
		if d1 < Q {
			a[i] = Element(d1)
			i++
		}
		if d2 < Q && i < N {
			a[i] = Element(d2)
			i++
		}
	}
	return a
}

// SamplePolyCBD draws a polynomial from the centered binomial distribution
// of parameter eta (support [-eta, eta]) from 64*eta bytes of PRF output.
// eta must be 2 or 3 and b must be exactly 64*eta bytes.
func SamplePolyCBD(eta int, b []byte) (Poly, error) {
	var f Poly
	if eta != 2 && eta != 3 {
		return f, mlerrors.InvalidParameter("SamplePolyCBD")
	}
	if len(b) != 64*eta {
		return f, mlerrors.InvalidLength("SamplePolyCBD")
	}

	bits := BytesToBits(b)
	for i := 0; i < N; i++ {
		var x, y int
		base := 2 * i * eta
		for j := 0; j < eta; j++ {
			x += int(bits[base+j])
		}
		for j := 0; j < eta; j++ {
			y += int(bits[base+eta+j])
		}
		f[i] = Element((x - y + Q) % Q)
	}
	return f, nil
}
