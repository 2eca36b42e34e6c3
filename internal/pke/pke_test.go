package pke

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"testing"

	"github.com/latticeforge/mlkem-go/internal/constants"
)

func seed32(s string) [32]byte {
	var out [32]byte
	copy(out[:], s)
	return out
}

func TestKPKE768KnownAnswerVector(t *testing.T) {
	ps, _ := constants.Params(constants.MLKEM768)
	seed := seed32("Salut de la part de moi meme lee")
	m := seed32("Ce message est tres confidentiel")
	r := seed

	ek, dk, err := KeyGen(ps, seed)
	if err != nil {
		t.Fatalf("KeyGen: %v", err)
	}
	if len(ek) != ps.EKSize {
		t.Fatalf("len(ek) = %d, want %d", len(ek), ps.EKSize)
	}

	ct, err := Encrypt(ps, ek, m, r)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if len(ct) != ps.CTSize {
		t.Fatalf("len(ct) = %d, want %d", len(ct), ps.CTSize)
	}

	wantPrefix, _ := hex.DecodeString("012ac1758bc94772b397ca25074f4a21")
	if !bytes.Equal(ct[:len(wantPrefix)], wantPrefix) {
		t.Fatalf("ciphertext prefix = %x, want %x", ct[:len(wantPrefix)], wantPrefix)
	}

	got, err := Decrypt(ps, dk, ct)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if got != m {
		t.Fatalf("Decrypt(dk, c) = %x, want %x", got, m)
	}
}

func TestKeyGenEncryptDecryptRoundTrip(t *testing.T) {
	for _, v := range []constants.Variant{constants.MLKEM512, constants.MLKEM768, constants.MLKEM1024} {
		ps, _ := constants.Params(v)
		t.Run(v.String(), func(t *testing.T) {
			var d, m, r [32]byte
			rand.Read(d[:])
			rand.Read(m[:])
			rand.Read(r[:])

			ek, dk, err := KeyGen(ps, d)
			if err != nil {
				t.Fatalf("KeyGen: %v", err)
			}
			ct, err := Encrypt(ps, ek, m, r)
			if err != nil {
				t.Fatalf("Encrypt: %v", err)
			}
			got, err := Decrypt(ps, dk, ct)
			if err != nil {
				t.Fatalf("Decrypt: %v", err)
			}
			if got != m {
				t.Fatalf("round trip mismatch: got %x want %x", got, m)
			}
		})
	}
}

func TestEncryptRejectsWrongEKLength(t *testing.T) {
	ps, _ := constants.Params(constants.MLKEM768)
	var m, r [32]byte
	if _, err := Encrypt(ps, make([]byte, 10), m, r); err == nil {
		t.Error("Encrypt should reject a wrong-length ek")
	}
}

func TestDecryptRejectsWrongLengths(t *testing.T) {
	ps, _ := constants.Params(constants.MLKEM768)
	if _, err := Decrypt(ps, make([]byte, 10), make([]byte, ps.CTSize)); err == nil {
		t.Error("Decrypt should reject a wrong-length dkPKE")
	}
	if _, err := Decrypt(ps, make([]byte, 384*ps.K), make([]byte, 3)); err == nil {
		t.Error("Decrypt should reject a wrong-length ciphertext")
	}
}

func TestDifferentSeedsProduceDifferentKeys(t *testing.T) {
	ps, _ := constants.Params(constants.MLKEM512)
	d1 := seed32("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	d2 := seed32("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

	ek1, _, _ := KeyGen(ps, d1)
	ek2, _, _ := KeyGen(ps, d2)
	if bytes.Equal(ek1, ek2) {
		t.Error("different seeds produced identical encapsulation keys")
	}
}
