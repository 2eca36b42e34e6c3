// Package mlkem implements the ML-KEM key encapsulation mechanism (FIPS
// 203) at the three standardized parameter sets. It wraps the IND-CPA
// K-PKE scheme in internal/pke with a Fujisaki-Okamoto implicit-rejection
// transform to reach IND-CCA2 security.
package mlkem

import (
	"io"

	"github.com/latticeforge/mlkem-go/internal/constants"
	mlerrors "github.com/latticeforge/mlkem-go/internal/errors"
	"github.com/latticeforge/mlkem-go/internal/pke"
	"github.com/latticeforge/mlkem-go/internal/ring"
)

// KeyPair holds an ML-KEM encapsulation key and its matching decapsulation
// key for a given variant.
type KeyPair struct {
	Variant          constants.Variant
	EncapsulationKey []byte
	DecapsulationKey []byte
}

// Zeroize scrubs the decapsulation key. The encapsulation key is public
// and is left untouched.
func (kp *KeyPair) Zeroize() {
	Zeroize(kp.DecapsulationKey)
}

// GenerateKeyPair draws fresh randomness from Reader and runs
// KeyGenInternal. This is the randomized ML-KEM.KeyGen driver.
func GenerateKeyPair(variant constants.Variant) (*KeyPair, error) {
	return GenerateKeyPairWithRand(variant, Reader)
}

// GenerateKeyPairWithRand is GenerateKeyPair with an injected randomness
// source, primarily for testing.
func GenerateKeyPairWithRand(variant constants.Variant, rnd io.Reader) (*KeyPair, error) {
	var d, z [32]byte
	if err := secureRandom(rnd, d[:]); err != nil {
		return nil, mlerrors.NewCryptoError("GenerateKeyPair", err)
	}
	if err := secureRandom(rnd, z[:]); err != nil {
		return nil, mlerrors.NewCryptoError("GenerateKeyPair", err)
	}
	return KeyGenInternal(variant, d, z)
}

// KeyGenInternal is the deterministic ML-KEM.KeyGen_internal driver: it
// derives a K-PKE key pair from d, then assembles the decapsulation key as
// dk_pke || ek_pke || H(ek_pke) || z.
func KeyGenInternal(variant constants.Variant, d, z [32]byte) (*KeyPair, error) {
	ps, ok := constants.Params(variant)
	if !ok {
		return nil, mlerrors.InvalidParameter("KeyGenInternal")
	}

	ekPKE, dkPKE, err := pke.KeyGen(ps, d)
	if err != nil {
		return nil, mlerrors.NewCryptoError("KeyGenInternal", err)
	}

	h := ring.H(ekPKE)
	dk := make([]byte, 0, ps.DKSize)
	dk = append(dk, dkPKE...)
	dk = append(dk, ekPKE...)
	dk = append(dk, h[:]...)
	dk = append(dk, z[:]...)

	return &KeyPair{Variant: variant, EncapsulationKey: ekPKE, DecapsulationKey: dk}, nil
}

// Encapsulate draws a fresh 32-byte message from Reader and runs
// EncapsulateInternal. This is the randomized ML-KEM.Encaps driver.
func Encapsulate(variant constants.Variant, ek []byte) (ciphertext, sharedSecret []byte, err error) {
	return EncapsulateWithRand(variant, ek, Reader)
}

// EncapsulateWithRand is Encapsulate with an injected randomness source.
func EncapsulateWithRand(variant constants.Variant, ek []byte, rnd io.Reader) (ciphertext, sharedSecret []byte, err error) {
	var m [32]byte
	if err := secureRandom(rnd, m[:]); err != nil {
		return nil, nil, mlerrors.NewCryptoError("Encapsulate", err)
	}
	return EncapsulateInternal(variant, ek, m)
}

// EncapsulateInternal is the deterministic ML-KEM.Encaps_internal driver:
// (K, r) = G(m || H(ek)); c = K-PKE.Encrypt(ek, m, r).
func EncapsulateInternal(variant constants.Variant, ek []byte, m [32]byte) (ciphertext, sharedSecret []byte, err error) {
	ps, ok := constants.Params(variant)
	if !ok {
		return nil, nil, mlerrors.InvalidParameter("EncapsulateInternal")
	}
	if len(ek) != ps.EKSize {
		return nil, nil, mlerrors.InvalidLength("EncapsulateInternal")
	}

	h := ring.H(ek)
	K, r := ring.G(append(append([]byte{}, m[:]...), h[:]...))

	c, err := pke.Encrypt(ps, ek, m, r)
	if err != nil {
		return nil, nil, mlerrors.NewCryptoError("EncapsulateInternal", err)
	}

	out := make([]byte, 32)
	copy(out, K[:])
	return c, out, nil
}

// Decapsulate recovers the shared secret from ciphertext under dk. It is
// the deterministic ML-KEM.Decaps driver: there is no randomized variant
// to wrap, so Decapsulate and DecapsulateInternal coincide.
//
// On a malformed dk or ciphertext (wrong length), it returns
// ErrInvalidLength. On a well-formed but incorrect ciphertext it does NOT
// error: per FIPS 203, it returns the pseudorandom implicit-rejection
// secret K-bar, indistinguishable from a valid shared secret to anyone
// without z. Callers must not branch on success/failure of the internal
// re-encryption check; this function does not expose it.
func Decapsulate(variant constants.Variant, dk, ciphertext []byte) ([]byte, error) {
	ps, ok := constants.Params(variant)
	if !ok {
		return nil, mlerrors.InvalidParameter("Decapsulate")
	}
	if len(dk) != ps.DKSize {
		return nil, mlerrors.InvalidLength("Decapsulate")
	}
	if len(ciphertext) != ps.CTSize {
		return nil, mlerrors.InvalidLength("Decapsulate")
	}

	dkPKE := dk[:384*ps.K]
	ekPKE := dk[384*ps.K : 768*ps.K+32]
	h := dk[768*ps.K+32 : 768*ps.K+64]
	z := dk[768*ps.K+64 : 768*ps.K+96]

	mPrime, err := pke.Decrypt(ps, dkPKE, ciphertext)
	if err != nil {
		return nil, mlerrors.NewCryptoError("Decapsulate", err)
	}

	KPrime, rPrime := ring.G(append(append([]byte{}, mPrime[:]...), h...))
	KBar := ring.J(append(append([]byte{}, z...), ciphertext...))

	cPrime, err := pke.Encrypt(ps, ekPKE, mPrime, rPrime)
	if err != nil {
		return nil, mlerrors.NewCryptoError("Decapsulate", err)
	}

	mask := eqMask(ciphertext, cPrime)
	result := ctSelect(mask, KPrime[:], KBar[:])

	Zeroize(mPrime[:])
	return result, nil
}
