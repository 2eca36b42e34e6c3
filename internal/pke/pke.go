// Package pke implements K-PKE, the IND-CPA-secure public-key encryption
// scheme at the core of ML-KEM. The ML-KEM wrapper in pkg/mlkem composes
// this scheme with a Fujisaki-Okamoto implicit-rejection transform to
// reach IND-CCA2 security; K-PKE itself offers no chosen-ciphertext
// protection and must never be used directly by callers outside that
// wrapper.
package pke

import (
	"github.com/latticeforge/mlkem-go/internal/constants"
	mlerrors "github.com/latticeforge/mlkem-go/internal/errors"
	"github.com/latticeforge/mlkem-go/internal/ring"
)

// KeyGen derives an encapsulation key and a K-PKE decapsulation key from a
// 32-byte seed d, per FIPS 203 K-PKE.KeyGen. ek has length 384*k+32;
// dkPKE has length 384*k.
func KeyGen(ps constants.ParameterSet, d [32]byte) (ek, dkPKE []byte, err error) {
	rho, sigma := ring.G(append(d[:], byte(ps.K)))

	a := sampleMatrix(rho, ps.K)

	n := 0
	s := make(ring.Vector, ps.K)
	for i := 0; i < ps.K; i++ {
		buf := ring.PRF(ps.Eta1, sigma, byte(n))
		n++
		s[i], err = ring.SamplePolyCBD(ps.Eta1, buf)
		if err != nil {
			return nil, nil, mlerrors.NewCryptoError("PKE.KeyGen", err)
		}
	}
	e := make(ring.Vector, ps.K)
	for i := 0; i < ps.K; i++ {
		buf := ring.PRF(ps.Eta1, sigma, byte(n))
		n++
		e[i], err = ring.SamplePolyCBD(ps.Eta1, buf)
		if err != nil {
			return nil, nil, mlerrors.NewCryptoError("PKE.KeyGen", err)
		}
	}

	sHat := ring.NTTVector(s)
	eHat := ring.NTTVector(e)
	tHat := ring.AddVectorNTT(a.MulVector(sHat), eHat)

	tEnc, err := encodeVector12(tHat)
	if err != nil {
		return nil, nil, mlerrors.NewCryptoError("PKE.KeyGen", err)
	}
	sEnc, err := encodeVector12(sHat)
	if err != nil {
		return nil, nil, mlerrors.NewCryptoError("PKE.KeyGen", err)
	}

	ek = append(append([]byte{}, tEnc...), rho[:]...)
	dkPKE = sEnc
	return ek, dkPKE, nil
}

// Encrypt produces a ciphertext encrypting the 32-byte message m under ek,
// using r as the encryption randomness. The ciphertext has length
// 32*(du*k+dv).
func Encrypt(ps constants.ParameterSet, ek []byte, m, r [32]byte) ([]byte, error) {
	if len(ek) != ps.EKSize {
		return nil, mlerrors.InvalidLength("PKE.Encrypt")
	}

	tHat, err := decodeVector12(ek[:384*ps.K], ps.K)
	if err != nil {
		return nil, mlerrors.NewCryptoError("PKE.Encrypt", err)
	}
	var rho [32]byte
	copy(rho[:], ek[384*ps.K:])

	a := sampleMatrix(rho, ps.K)

	n := 0
	y := make(ring.Vector, ps.K)
	for i := 0; i < ps.K; i++ {
		buf := ring.PRF(ps.Eta1, r, byte(n))
		n++
		y[i], err = ring.SamplePolyCBD(ps.Eta1, buf)
		if err != nil {
			return nil, mlerrors.NewCryptoError("PKE.Encrypt", err)
		}
	}
	e1 := make(ring.Vector, ps.K)
	for i := 0; i < ps.K; i++ {
		buf := ring.PRF(ps.Eta2, r, byte(n))
		n++
		e1[i], err = ring.SamplePolyCBD(ps.Eta2, buf)
		if err != nil {
			return nil, mlerrors.NewCryptoError("PKE.Encrypt", err)
		}
	}
	e2buf := ring.PRF(ps.Eta2, r, byte(n))
	e2, err := ring.SamplePolyCBD(ps.Eta2, e2buf)
	if err != nil {
		return nil, mlerrors.NewCryptoError("PKE.Encrypt", err)
	}

	yHat := ring.NTTVector(y)

	// u = InverseNTT(A^T * yHat) + e1. The transpose is spec-required: A
	// was generated the same way as in KeyGen, but Encrypt consumes it
	// transposed here.
	u := ring.AddVector(ring.InverseNTTVector(a.MulVectorTranspose(yHat)), e1)

	mu := msgToPoly(m)
	v := ring.InverseNTT(ring.DotVector(tHat, yHat)).Add(e2).Add(mu)

	c1, err := encodeCompressedVector(u, ps.Du)
	if err != nil {
		return nil, mlerrors.NewCryptoError("PKE.Encrypt", err)
	}
	c2, err := ring.ByteEncode(compressPolyTo256(v, ps.Dv), ps.Dv)
	if err != nil {
		return nil, mlerrors.NewCryptoError("PKE.Encrypt", err)
	}

	return append(c1, c2...), nil
}

// Decrypt recovers the 32-byte message encrypted in ct under the secret
// dkPKE.
func Decrypt(ps constants.ParameterSet, dkPKE, ct []byte) ([32]byte, error) {
	var zero [32]byte
	if len(dkPKE) != 384*ps.K {
		return zero, mlerrors.InvalidLength("PKE.Decrypt")
	}
	if len(ct) != ps.CTSize {
		return zero, mlerrors.InvalidLength("PKE.Decrypt")
	}

	split := 32 * ps.Du * ps.K
	c1, c2 := ct[:split], ct[split:]

	u, err := decodeCompressedVector(c1, ps.K, ps.Du)
	if err != nil {
		return zero, mlerrors.NewCryptoError("PKE.Decrypt", err)
	}
	vCoeffs, err := ring.ByteDecode(c2, ps.Dv)
	if err != nil {
		return zero, mlerrors.NewCryptoError("PKE.Decrypt", err)
	}
	v := decompressPolyFrom256(vCoeffs, ps.Dv)

	sHat, err := decodeVector12(dkPKE, ps.K)
	if err != nil {
		return zero, mlerrors.NewCryptoError("PKE.Decrypt", err)
	}

	uHat := ring.NTTVector(u)
	w := v.Sub(ring.InverseNTT(ring.DotVector(sHat, uHat)))

	return polyToMsg(w), nil
}

// sampleMatrix regenerates A-hat[i][j] = SampleNTT(rho || byte(j) || byte(i))
// deterministically from rho. Never stored between calls.
func sampleMatrix(rho [32]byte, k int) ring.Matrix {
	a := ring.NewMatrix(k)
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			seed := make([]byte, 0, 34)
			seed = append(seed, rho[:]...)
			seed = append(seed, byte(j), byte(i))
			a[i][j] = ring.SampleNTT(seed)
		}
	}
	return a
}

func encodeVector12(v ring.VectorNTT) ([]byte, error) {
	out := make([]byte, 0, 384*len(v))
	for _, p := range v {
		enc, err := ring.ByteEncode(ring.Poly(p), 12)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

func decodeVector12(b []byte, k int) (ring.VectorNTT, error) {
	if len(b) != 384*k {
		return nil, mlerrors.ErrInvalidLength
	}
	out := make(ring.VectorNTT, k)
	for i := 0; i < k; i++ {
		chunk := b[384*i : 384*(i+1)]
		coeffs, err := ring.ByteDecode(chunk, 12)
		if err != nil {
			return nil, err
		}
		out[i] = ring.PolyNTT(coeffs)
	}
	return out, nil
}

func encodeCompressedVector(v ring.Vector, d int) ([]byte, error) {
	out := make([]byte, 0, 32*d*len(v))
	for _, p := range v {
		enc, err := ring.ByteEncode(compressPolyTo256(p, d), d)
		if err != nil {
			return nil, err
		}
		out = append(out, enc...)
	}
	return out, nil
}

func decodeCompressedVector(b []byte, k, d int) (ring.Vector, error) {
	if len(b) != 32*d*k {
		return nil, mlerrors.ErrInvalidLength
	}
	out := make(ring.Vector, k)
	for i := 0; i < k; i++ {
		chunk := b[32*d*i : 32*d*(i+1)]
		coeffs, err := ring.ByteDecode(chunk, d)
		if err != nil {
			return nil, err
		}
		out[i] = decompressPolyFrom256(coeffs, d)
	}
	return out, nil
}

// compressPolyTo256 applies Compress_d coefficient-wise and returns the
// result as a [256]Element so it can be passed straight to ByteEncode.
func compressPolyTo256(p ring.Poly, d int) [ring.N]ring.Element {
	var out [ring.N]ring.Element
	for i, x := range p {
		out[i] = ring.Element(ring.Compress(x, d))
	}
	return out
}

func decompressPolyFrom256(f [ring.N]ring.Element, d int) ring.Poly {
	var out ring.Poly
	for i, y := range f {
		out[i] = ring.Decompress(uint32(y), d)
	}
	return out
}

// msgToPoly expands a 32-byte message into its polynomial representation:
// ByteDecode_1 followed by Decompress_1, coefficient by coefficient.
func msgToPoly(m [32]byte) ring.Poly {
	bits := ring.BytesToBits(m[:])
	var p ring.Poly
	for i, b := range bits {
		p[i] = ring.Decompress(uint32(b), 1)
	}
	return p
}

// polyToMsg compresses a polynomial back into a 32-byte message:
// Compress_1 followed by ByteEncode_1, coefficient by coefficient.
func polyToMsg(p ring.Poly) [32]byte {
	bits := make([]byte, ring.N)
	for i, c := range p {
		bits[i] = byte(ring.Compress(c, 1))
	}
	b, _ := ring.BitsToBytes(bits)
	var out [32]byte
	copy(out[:], b)
	return out
}
