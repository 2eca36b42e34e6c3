// Conditional Self-Tests (CST) differ from Power-On Self-Tests (POST) in
// that they run during specific cryptographic operations rather than at
// module initialization. FIPS 140-3 requires two kinds relevant here:
//
//  1. Pairwise Consistency Test: verifies that a newly generated key pair
//     is consistent (encapsulating and decapsulating against it recovers
//     the same shared secret).
//
//  2. DRBG Health Check: verifies that the random number generator
//     produces non-repeating, non-zero output.
//
// In FIPS mode, CST failures panic to prevent use of a potentially
// compromised key or random draw. In standard mode, failures return
// errors.
package mlkem

import (
	"bytes"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/latticeforge/mlkem-go/internal/constants"
)

// CSTConfig configures Conditional Self-Test behavior.
type CSTConfig struct {
	// EnablePairwiseTest enables the pairwise consistency test on key
	// generation.
	EnablePairwiseTest bool

	// EnableRNGHealthCheck enables health checks on RNG output.
	EnableRNGHealthCheck bool

	// RNGHealthCheckInterval is how often to run a full RNG health check
	// (number of SecureRandomWithCST calls between checks).
	RNGHealthCheckInterval uint64
}

// DefaultCSTConfig returns the default CST configuration. In FIPS mode
// all tests are enabled; in standard mode they are disabled by default.
func DefaultCSTConfig() CSTConfig {
	return CSTConfig{
		EnablePairwiseTest:     FIPSMode(),
		EnableRNGHealthCheck:   FIPSMode(),
		RNGHealthCheckInterval: 1000,
	}
}

var (
	cstConfig     CSTConfig
	cstConfigOnce sync.Once
	rngCallCount  atomic.Uint64
	lastRNGOutput []byte
	lastRNGMutex  sync.Mutex
)

// InitCST initializes Conditional Self-Tests with the given
// configuration. Must be called before any cryptographic operation if a
// non-default configuration is needed; otherwise DefaultCSTConfig
// applies.
func InitCST(config CSTConfig) {
	cstConfigOnce.Do(func() {
		cstConfig = config
	})
}

func getCSTConfig() CSTConfig {
	cstConfigOnce.Do(func() {
		cstConfig = DefaultCSTConfig()
	})
	return cstConfig
}

// CSTResult is the outcome of a Conditional Self-Test.
type CSTResult struct {
	Passed bool
	Error  error
}

// PairwiseConsistencyTest verifies that kp is internally consistent by
// encapsulating against its encapsulation key and decapsulating with its
// decapsulation key, then checking the two shared secrets match and are
// non-zero.
func PairwiseConsistencyTest(kp *KeyPair) *CSTResult {
	if kp == nil || kp.EncapsulationKey == nil || kp.DecapsulationKey == nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("invalid key pair")}
	}

	ct, secret1, err := Encapsulate(kp.Variant, kp.EncapsulationKey)
	if err != nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("encapsulation failed: %w", err)}
	}

	secret2, err := Decapsulate(kp.Variant, kp.DecapsulationKey, ct)
	if err != nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("decapsulation failed: %w", err)}
	}

	if !ctEq(secret1, secret2) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("shared secrets do not match")}
	}
	if isAllZero(secret1) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("shared secret is all zeros")}
	}

	return &CSTResult{Passed: true}
}

func isAllZero(b []byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}

func runPairwiseTest(kp *KeyPair) error {
	config := getCSTConfig()
	if !config.EnablePairwiseTest {
		return nil
	}

	result := PairwiseConsistencyTest(kp)
	if !result.Passed {
		if FIPSMode() {
			panic(fmt.Sprintf("FIPS CST failed: ML-KEM pairwise consistency test: %v", result.Error))
		}
		return result.Error
	}
	return nil
}

// RNGHealthCheck draws two 32-byte samples from Reader and verifies they
// are non-zero, non-constant, and distinct from each other.
func RNGHealthCheck() *CSTResult {
	sample1 := make([]byte, 32)
	sample2 := make([]byte, 32)

	if err := secureRandom(Reader, sample1); err != nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG read 1 failed: %w", err)}
	}
	if err := secureRandom(Reader, sample2); err != nil {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG read 2 failed: %w", err)}
	}

	if isAllZero(sample1) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG produced an all-zero sample")}
	}
	if isAllZero(sample2) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG produced an all-zero sample")}
	}
	if bytes.Equal(sample1, sample2) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG produced identical consecutive samples")}
	}
	if isConstantByte(sample1) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG sample has no variation")}
	}
	if isConstantByte(sample2) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG sample has no variation")}
	}

	return &CSTResult{Passed: true}
}

func isConstantByte(b []byte) bool {
	for i := 1; i < len(b); i++ {
		if b[i] != b[0] {
			return false
		}
	}
	return true
}

// ContinuousRNGTest compares output against the previous call's output
// and fails if they match, per the FIPS 140-3 continuous RNG test.
func ContinuousRNGTest(output []byte) *CSTResult {
	lastRNGMutex.Lock()
	defer lastRNGMutex.Unlock()

	if lastRNGOutput == nil {
		lastRNGOutput = append([]byte{}, output...)
		return &CSTResult{Passed: true}
	}

	if len(output) == len(lastRNGOutput) && bytes.Equal(output, lastRNGOutput) {
		return &CSTResult{Passed: false, Error: fmt.Errorf("RNG produced repeated output")}
	}

	if len(lastRNGOutput) != len(output) {
		lastRNGOutput = make([]byte, len(output))
	}
	copy(lastRNGOutput, output)

	return &CSTResult{Passed: true}
}

func runRNGHealthCheck() error {
	config := getCSTConfig()
	if !config.EnableRNGHealthCheck {
		return nil
	}

	count := rngCallCount.Add(1)
	if count%config.RNGHealthCheckInterval == 0 {
		result := RNGHealthCheck()
		if !result.Passed {
			if FIPSMode() {
				panic(fmt.Sprintf("FIPS CST failed: RNG health check: %v", result.Error))
			}
			return result.Error
		}
	}
	return nil
}

// GenerateKeyPairWithCST generates a key pair and runs the pairwise
// consistency test before returning it.
func GenerateKeyPairWithCST(variant constants.Variant) (*KeyPair, error) {
	kp, err := GenerateKeyPair(variant)
	if err != nil {
		return nil, err
	}
	if err := runPairwiseTest(kp); err != nil {
		return nil, fmt.Errorf("pairwise consistency test failed: %w", err)
	}
	return kp, nil
}

// SecureRandomWithCST reads cryptographically secure random bytes and
// runs the continuous RNG test in FIPS mode, then the periodic health
// check.
func SecureRandomWithCST(b []byte) error {
	if err := secureRandom(Reader, b); err != nil {
		return err
	}

	if FIPSMode() {
		result := ContinuousRNGTest(b)
		if !result.Passed {
			panic(fmt.Sprintf("FIPS CST failed: continuous RNG test: %v", result.Error))
		}
	}

	return runRNGHealthCheck()
}

// CSTEnabled reports whether any Conditional Self-Test is currently
// enabled.
func CSTEnabled() bool {
	config := getCSTConfig()
	return config.EnablePairwiseTest || config.EnableRNGHealthCheck
}

// GetCSTConfig returns the current CST configuration.
func GetCSTConfig() CSTConfig {
	return getCSTConfig()
}
