//go:build fips
// +build fips

// This file is compiled when the "fips" build tag is specified. In FIPS
// mode, the default CST configuration enables the pairwise consistency
// test, which GenerateKeyPairWithCST runs before returning (GenerateKeyPair
// does not run it), and a failed power-on or conditional self-test panics
// instead of returning an error.
package mlkem

// FIPSMode reports whether the binary was built in FIPS mode.
func FIPSMode() bool { return true }
