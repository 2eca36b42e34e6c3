package mlkem

import (
	"sync"
	"testing"

	"github.com/latticeforge/mlkem-go/internal/constants"
)

func TestPairwiseConsistencyTestPasses(t *testing.T) {
	kp, err := GenerateKeyPair(constants.MLKEM768)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	result := PairwiseConsistencyTest(kp)
	if !result.Passed {
		t.Fatalf("PairwiseConsistencyTest failed: %v", result.Error)
	}
}

func TestPairwiseConsistencyTestRejectsNilKeyPair(t *testing.T) {
	if result := PairwiseConsistencyTest(nil); result.Passed {
		t.Fatal("PairwiseConsistencyTest should fail on a nil key pair")
	}
	if result := PairwiseConsistencyTest(&KeyPair{}); result.Passed {
		t.Fatal("PairwiseConsistencyTest should fail on an empty key pair")
	}
}

func TestRNGHealthCheckPasses(t *testing.T) {
	result := RNGHealthCheck()
	if !result.Passed {
		t.Fatalf("RNGHealthCheck failed: %v", result.Error)
	}
}

func TestContinuousRNGTestDetectsRepeat(t *testing.T) {
	sample := make([]byte, 32)
	for i := range sample {
		sample[i] = byte(i)
	}

	lastRNGMutex.Lock()
	lastRNGOutput = nil
	lastRNGMutex.Unlock()

	first := ContinuousRNGTest(sample)
	if !first.Passed {
		t.Fatalf("first ContinuousRNGTest call should pass, got: %v", first.Error)
	}

	second := ContinuousRNGTest(sample)
	if second.Passed {
		t.Fatal("ContinuousRNGTest should fail on a repeated sample")
	}
}

func TestGenerateKeyPairWithCST(t *testing.T) {
	InitCSTForTest(CSTConfig{EnablePairwiseTest: true, EnableRNGHealthCheck: false, RNGHealthCheckInterval: 1})
	kp, err := GenerateKeyPairWithCST(constants.MLKEM512)
	if err != nil {
		t.Fatalf("GenerateKeyPairWithCST: %v", err)
	}
	if kp == nil {
		t.Fatal("GenerateKeyPairWithCST returned a nil key pair")
	}
}

func TestCSTEnabledReflectsConfig(t *testing.T) {
	InitCSTForTest(CSTConfig{EnablePairwiseTest: true})
	if !CSTEnabled() {
		t.Fatal("CSTEnabled should report true when EnablePairwiseTest is set")
	}
}

// InitCSTForTest resets the package-level CST configuration for test
// isolation. sync.Once normally makes InitCST a one-shot call; tests
// need to exercise several configurations in one run.
func InitCSTForTest(config CSTConfig) {
	cstConfigOnce = sync.Once{}
	InitCST(config)
}
