// Power-On Self-Tests (POST) support FIPS 140-3 compliance alongside the
// key encapsulation API.
//
// IMPORTANT: POST is production code, not test code. FIPS 140-3 requires
// self-tests to run at module load time, not just during development
// testing, to verify the cryptographic implementation before any
// operation is performed. This catches issues like corrupted binaries or
// tampered code.
//
// POST runs automatically when this package is loaded and verifies
// ML-KEM-768 end to end against a Known Answer Test (KAT) fixed at
// build time.
//
// In FIPS mode, POST failures panic to prevent use of a potentially
// compromised implementation. In standard mode, failures are recorded
// but do not prevent operation.
package mlkem

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/latticeforge/mlkem-go/internal/constants"
)

var (
	postKATD, _            = hex.DecodeString("61ebe0203ce9fd310b95844a2b751809c65d36d94a8dc9b7b63c36a3981f30d6")
	postKATZ, _            = hex.DecodeString("fc0f1340ceee2e3338c594646dff2225a85c5ec25571292159e1398b1e420ef8")
	postKATM, _            = hex.DecodeString("70f653ac5bdd06eb28bd7d4d80560f74b9f1d179414845ff3fe0df3e73d957ab")
	postKATCTPrefix, _     = hex.DecodeString("aaaae490a2820e03d5252fb685d64e3b")
	postKATSharedSecret, _ = hex.DecodeString("21f7dde8cc805ed2ba5eceef5db3f9000b63eead083111e0941f84f33d7b481c")
)

// POSTResult contains the results of the Power-On Self-Test.
type POSTResult struct {
	Passed      bool
	MLKEMPassed bool
	Errors      []string
}

var (
	postResult     *POSTResult
	postResultOnce sync.Once
	postRan        bool
)

// RunPOST executes the Power-On Self-Test and returns its result. It is
// safe to call multiple times; the test only runs once.
func RunPOST() *POSTResult {
	postResultOnce.Do(func() {
		postResult = &POSTResult{Passed: true}

		if err := runMLKEMKAT(); err != nil {
			postResult.MLKEMPassed = false
			postResult.Passed = false
			postResult.Errors = append(postResult.Errors, fmt.Sprintf("ML-KEM KAT failed: %v", err))
		} else {
			postResult.MLKEMPassed = true
		}

		postRan = true

		if FIPSMode() && !postResult.Passed {
			panic(fmt.Sprintf("FIPS POST failed: %v", postResult.Errors))
		}
	})

	return postResult
}

// POSTRan reports whether POST has executed.
func POSTRan() bool { return postRan }

// POSTPassed reports whether POST has run and all tests passed.
func POSTPassed() bool {
	if postResult == nil {
		return false
	}
	return postResult.Passed
}

// runMLKEMKAT reproduces ML-KEM-768's deterministic internal API against
// a fixed known-answer vector: ciphertext prefix and shared secret must
// match exactly.
func runMLKEMKAT() error {
	var d, z, m [32]byte
	copy(d[:], postKATD)
	copy(z[:], postKATZ)
	copy(m[:], postKATM)

	ps, _ := constants.Params(constants.MLKEM768)

	kp, err := KeyGenInternal(constants.MLKEM768, d, z)
	if err != nil {
		return fmt.Errorf("KeyGenInternal failed: %w", err)
	}
	if len(kp.EncapsulationKey) != ps.EKSize {
		return fmt.Errorf("encapsulation key size mismatch: got %d, want %d", len(kp.EncapsulationKey), ps.EKSize)
	}

	ct, sharedSecret1, err := EncapsulateInternal(constants.MLKEM768, kp.EncapsulationKey, m)
	if err != nil {
		return fmt.Errorf("EncapsulateInternal failed: %w", err)
	}
	if len(ct) != ps.CTSize {
		return fmt.Errorf("ciphertext size mismatch: got %d, want %d", len(ct), ps.CTSize)
	}
	if !bytes.Equal(ct[:len(postKATCTPrefix)], postKATCTPrefix) {
		return fmt.Errorf("ciphertext prefix mismatch: got %x, want %x", ct[:len(postKATCTPrefix)], postKATCTPrefix)
	}
	if !bytes.Equal(sharedSecret1, postKATSharedSecret) {
		return fmt.Errorf("shared secret mismatch: got %x, want %x", sharedSecret1, postKATSharedSecret)
	}

	sharedSecret2, err := Decapsulate(constants.MLKEM768, kp.DecapsulationKey, ct)
	if err != nil {
		return fmt.Errorf("Decapsulate failed: %w", err)
	}
	if !bytes.Equal(sharedSecret1, sharedSecret2) {
		return fmt.Errorf("shared secret mismatch after decapsulation")
	}

	return nil
}

// ModuleIntegrity reports whether the embedded KAT fixtures match their
// expected hash, guarding against accidental or malicious modification
// of the constants this file relies on.
type ModuleIntegrity struct {
	ExpectedHash string
	ActualHash   string
	Verified     bool
}

var (
	postIntegrity     *ModuleIntegrity
	postIntegrityOnce sync.Once
)

// CheckModuleIntegrity hashes the embedded KAT fixtures and compares the
// result against the hash recorded when they were last verified against
// the specification.
func CheckModuleIntegrity() *ModuleIntegrity {
	postIntegrityOnce.Do(func() {
		h := sha256.New()
		h.Write(postKATD)
		h.Write(postKATZ)
		h.Write(postKATM)
		h.Write(postKATCTPrefix)
		h.Write(postKATSharedSecret)
		actualHash := hex.EncodeToString(h.Sum(nil))

		const expectedHash = "13534e285744201c7b373975adabfcfe0f5dbaa5641b030340afc369bbe7ca89"

		postIntegrity = &ModuleIntegrity{
			ExpectedHash: expectedHash,
			ActualHash:   actualHash,
			Verified:     actualHash == expectedHash,
		}
	})

	return postIntegrity
}

func init() {
	RunPOST()
}
