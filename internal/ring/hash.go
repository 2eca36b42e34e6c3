package ring

import (
	"golang.org/x/crypto/sha3"
)

// H is SHA3-256: bytes -> 32 bytes.
func H(data []byte) [32]byte {
	digest := sha3.Sum256(data)
	return digest
}

// G is SHA3-512: bytes -> (32, 32) bytes, the two halves of the 64-byte
// digest.
func G(data []byte) (a, b [32]byte) {
	digest := sha3.Sum512(data)
	copy(a[:], digest[:32])
	copy(b[:], digest[32:])
	return a, b
}

// J is SHAKE256 squeezed to exactly 32 bytes, used to derive the
// implicit-rejection shared secret.
func J(data []byte) [32]byte {
	var out [32]byte
	shake := sha3.NewShake256()
	shake.Write(data)
	shake.Read(out[:])
	return out
}

// PRF is SHAKE256 squeezed to 64*eta bytes, seeded with a 32-byte secret
// and a 1-byte domain separator. eta must be 2 or 3.
func PRF(eta int, s [32]byte, b byte) []byte {
	out := make([]byte, 64*eta)
	shake := sha3.NewShake256()
	shake.Write(s[:])
	shake.Write([]byte{b})
	shake.Read(out)
	return out
}

// XOF is a resumable SHAKE128 sponge: Absorb may be called any number of
// times before the first Squeeze, and Squeeze calls continue the output
// stream across calls.
type XOF struct {
	sponge sha3.ShakeHash
}

// NewXOF returns a freshly initialized SHAKE128 sponge.
func NewXOF() *XOF {
	return &XOF{sponge: sha3.NewShake128()}
}

// Absorb writes data into the sponge.
func (x *XOF) Absorb(data []byte) {
	x.sponge.Write(data)
}

// Squeeze reads n bytes from the sponge, continuing from wherever the
// previous Squeeze call left off.
func (x *XOF) Squeeze(n int) []byte {
	out := make([]byte, n)
	x.sponge.Read(out)
	return out
}
