package mlkem

import (
	"crypto/rand"
	"io"

	mlerrors "github.com/latticeforge/mlkem-go/internal/errors"
)

// Reader is the default source of randomness for the randomized drivers
// (GenerateKeyPair, Encapsulate). It wraps crypto/rand.Reader.
var Reader = rand.Reader

// secureRandom reads len(b) cryptographically secure random bytes into b.
func secureRandom(rnd io.Reader, b []byte) error {
	if _, err := io.ReadFull(rnd, b); err != nil {
		return mlerrors.NewCryptoError("secureRandom", err)
	}
	return nil
}

// ctEq compares two byte slices in constant time, examining every byte
// regardless of earlier mismatches. It returns false immediately only on
// a length mismatch, which is public information for well-formed ML-KEM
// inputs (lengths are fixed by the parameter set) and is not a secret.
func ctEq(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	return diff == 0
}

// ctSelect returns a copy of x if mask selects x, else a copy of y. mask
// must be 0x00 (select y) or 0xFF (select x); the two inputs must have
// equal length. The selection is a byte-wise mask blend, not a branch on
// secret data.
func ctSelect(mask byte, x, y []byte) []byte {
	out := make([]byte, len(x))
	for i := range out {
		out[i] = (x[i] & mask) | (y[i] & ^mask)
	}
	return out
}

// eqMask returns 0xFF if a equals b (constant time, as in ctEq) and 0x00
// otherwise.
func eqMask(a, b []byte) byte {
	if len(a) != len(b) {
		return 0x00
	}
	var diff byte
	for i := range a {
		diff |= a[i] ^ b[i]
	}
	// uint16(diff)-1 has its high byte set only when diff is zero, so the
	// mask is derived without branching on the comparison result.
	return byte((uint16(diff) - 1) >> 8)
}

// Zeroize overwrites b with zeros. The Go runtime may have already copied
// the backing data elsewhere and the compiler may in principle elide the
// write in dead code, but this is the best-effort scrubbing discipline
// applied throughout this package to secret buffers that have gone out of
// use within an operation.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

// ZeroizeMultiple zeroizes every slice passed to it.
func ZeroizeMultiple(slices ...[]byte) {
	for _, s := range slices {
		Zeroize(s)
	}
}
