package mlkem

import "testing"

func TestRunPOSTPasses(t *testing.T) {
	result := RunPOST()
	if !result.Passed {
		t.Fatalf("RunPOST failed: %v", result.Errors)
	}
	if !result.MLKEMPassed {
		t.Fatal("RunPOST should report MLKEMPassed")
	}
}

func TestPOSTRanAndPassedAfterInit(t *testing.T) {
	// init() already ran RunPOST once at package load.
	if !POSTRan() {
		t.Fatal("POSTRan should be true once this package has loaded")
	}
	if !POSTPassed() {
		t.Fatal("POSTPassed should be true after a successful POST")
	}
}

func TestCheckModuleIntegrityVerifies(t *testing.T) {
	integrity := CheckModuleIntegrity()
	if !integrity.Verified {
		t.Fatalf("module integrity check failed: got %s, want %s", integrity.ActualHash, integrity.ExpectedHash)
	}
}
