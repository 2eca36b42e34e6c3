//go:build !fips
// +build !fips

// This file is compiled when the "fips" build tag is NOT specified. In
// standard mode, self-test failures return errors rather than panicking.
package mlkem

// FIPSMode reports whether the binary was built in FIPS mode.
func FIPSMode() bool { return false }
