// Package mlkemgo implements the ML-KEM key encapsulation mechanism
// standardized in NIST FIPS 203.
//
// ML-KEM is a lattice-based post-quantum key encapsulation mechanism
// built from a CPA-secure public-key encryption scheme (K-PKE) wrapped
// with a Fujisaki-Okamoto-style transform that provides IND-CCA2
// security through implicit rejection.
//
// # Quick Start
//
//	import "github.com/latticeforge/mlkem-go/pkg/mlkem"
//	import "github.com/latticeforge/mlkem-go/internal/constants"
//
//	keyPair, _ := mlkem.GenerateKeyPair(constants.MLKEM768)
//	ciphertext, sharedSecret, _ := mlkem.Encapsulate(constants.MLKEM768, keyPair.EncapsulationKey)
//	recovered, _ := mlkem.Decapsulate(constants.MLKEM768, keyPair.DecapsulationKey, ciphertext)
//
// # Package Structure
//
//   - pkg/mlkem: Public KEM API (KeyGen, Encapsulate, Decapsulate), FIPS
//     self-test machinery, and buffer pooling
//   - pkg/telemetry: Metrics, tracing, and structured logging
//   - internal/pke: K-PKE encryption scheme underlying the KEM
//   - internal/ring: Polynomial ring arithmetic, NTT, sampling, and
//     byte encoding over R_q = Z_q[X]/(X^256+1)
//   - internal/constants: Parameter sets for ML-KEM-512/768/1024
//   - internal/errors: Error types
//
// # Security Properties
//
//   - Three standardized parameter sets: ML-KEM-512 (Category 1),
//     ML-KEM-768 (Category 3), ML-KEM-1024 (Category 5)
//   - IND-CCA2 security via implicit rejection: a malformed or
//     tampered ciphertext never produces an error from Decapsulate,
//     only a pseudorandom shared secret indistinguishable from a
//     genuine one
//   - Constant-time ciphertext comparison and secret selection in the
//     decapsulation path; neither the re-encryption check nor the choice
//     between the real and the implicit-rejection secret branches on
//     secret data (modular reduction uses a conditional subtraction of q)
//
// # Testing
//
//	go test ./...                                  # All tests
//	go test -fuzz=FuzzDecapsulate768 ./test/fuzz/  # Fuzz tests
//	go test -run KnownAnswer ./pkg/mlkem           # Known Answer Tests
//	go test -bench=. ./test/benchmark              # Benchmarks
//
// # References
//
//   - NIST FIPS 203: Module-Lattice-Based Key-Encapsulation Mechanism
//     Standard
//   - NIST FIPS 202: SHA-3 Standard (SHAKE-128/256, used for sampling
//     and the G/H/J hash functions)
package mlkemgo
