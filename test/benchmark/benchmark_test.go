// Package benchmark provides performance benchmarks for the mlkem-go
// module.
//
// Run benchmarks with:
//
//	go test -bench=. -benchmem ./test/benchmark/
//
// For profiling:
//
//	go test -bench=. -cpuprofile=cpu.prof -memprofile=mem.prof ./test/benchmark/
package benchmark

import (
	"testing"

	"github.com/latticeforge/mlkem-go/internal/constants"
	"github.com/latticeforge/mlkem-go/internal/ring"
	"github.com/latticeforge/mlkem-go/pkg/mlkem"
)

// --- Ring Primitive Benchmarks ---

func BenchmarkNTTForward(b *testing.B) {
	var p ring.Poly
	for i := range p {
		p[i] = ring.Element(i % 3329)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ring.NTT(p)
	}
}

func BenchmarkNTTInverse(b *testing.B) {
	var p ring.Poly
	for i := range p {
		p[i] = ring.Element(i % 3329)
	}
	a := ring.NTT(p)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ring.InverseNTT(a)
	}
}

func BenchmarkMultiplyNTTs(b *testing.B) {
	var p, q ring.Poly
	for i := range p {
		p[i] = ring.Element(i % 3329)
		q[i] = ring.Element((2 * i) % 3329)
	}
	f, g := ring.NTT(p), ring.NTT(q)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ring.MultiplyNTTs(f, g)
	}
}

func BenchmarkSampleNTT(b *testing.B) {
	seed := make([]byte, 34)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ring.SampleNTT(seed)
	}
}

func BenchmarkByteEncode12(b *testing.B) {
	var f [ring.N]ring.Element
	for i := range f {
		f[i] = ring.Element(i % 3329)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := ring.ByteEncode(f, 12)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// --- ML-KEM-512 Benchmarks ---

func BenchmarkMLKEM512KeyGeneration(b *testing.B) {
	benchmarkKeyGen(b, constants.MLKEM512)
}

func BenchmarkMLKEM512Encapsulation(b *testing.B) {
	benchmarkEncapsulate(b, constants.MLKEM512)
}

func BenchmarkMLKEM512Decapsulation(b *testing.B) {
	benchmarkDecapsulate(b, constants.MLKEM512)
}

// --- ML-KEM-768 Benchmarks ---

func BenchmarkMLKEM768KeyGeneration(b *testing.B) {
	benchmarkKeyGen(b, constants.MLKEM768)
}

func BenchmarkMLKEM768Encapsulation(b *testing.B) {
	benchmarkEncapsulate(b, constants.MLKEM768)
}

func BenchmarkMLKEM768Decapsulation(b *testing.B) {
	benchmarkDecapsulate(b, constants.MLKEM768)
}

// --- ML-KEM-1024 Benchmarks ---

func BenchmarkMLKEM1024KeyGeneration(b *testing.B) {
	benchmarkKeyGen(b, constants.MLKEM1024)
}

func BenchmarkMLKEM1024Encapsulation(b *testing.B) {
	benchmarkEncapsulate(b, constants.MLKEM1024)
}

func BenchmarkMLKEM1024Decapsulation(b *testing.B) {
	benchmarkDecapsulate(b, constants.MLKEM1024)
}

func benchmarkKeyGen(b *testing.B, variant constants.Variant) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := mlkem.GenerateKeyPair(variant)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkEncapsulate(b *testing.B, variant constants.Variant) {
	kp, err := mlkem.GenerateKeyPair(variant)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, err := mlkem.Encapsulate(variant, kp.EncapsulationKey)
		if err != nil {
			b.Fatal(err)
		}
	}
}

func benchmarkDecapsulate(b *testing.B, variant constants.Variant) {
	kp, err := mlkem.GenerateKeyPair(variant)
	if err != nil {
		b.Fatal(err)
	}
	ct, _, err := mlkem.Encapsulate(variant, kp.EncapsulationKey)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := mlkem.Decapsulate(variant, kp.DecapsulationKey, ct)
		if err != nil {
			b.Fatal(err)
		}
	}
}

// --- Full Exchange Benchmark ---

func BenchmarkMLKEM768FullExchange(b *testing.B) {
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		kp, _ := mlkem.GenerateKeyPair(constants.MLKEM768)
		ct, k1, _ := mlkem.Encapsulate(constants.MLKEM768, kp.EncapsulationKey)
		_, _ = mlkem.Decapsulate(constants.MLKEM768, kp.DecapsulationKey, ct)
		_ = k1
	}
}

// --- Parallel Benchmarks ---

func BenchmarkMLKEM768EncapsulationParallel(b *testing.B) {
	kp, err := mlkem.GenerateKeyPair(constants.MLKEM768)
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _, _ = mlkem.Encapsulate(constants.MLKEM768, kp.EncapsulationKey)
		}
	})
}

func BenchmarkMLKEM768DecapsulationParallel(b *testing.B) {
	kp, err := mlkem.GenerateKeyPair(constants.MLKEM768)
	if err != nil {
		b.Fatal(err)
	}
	ct, _, err := mlkem.Encapsulate(constants.MLKEM768, kp.EncapsulationKey)
	if err != nil {
		b.Fatal(err)
	}

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = mlkem.Decapsulate(constants.MLKEM768, kp.DecapsulationKey, ct)
		}
	})
}

// --- Memory Allocation Benchmarks ---

func BenchmarkMLKEM768KeyGenerationAllocs(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = mlkem.GenerateKeyPair(constants.MLKEM768)
	}
}

func BenchmarkMLKEM768EncapsulationAllocs(b *testing.B) {
	kp, _ := mlkem.GenerateKeyPair(constants.MLKEM768)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = mlkem.Encapsulate(constants.MLKEM768, kp.EncapsulationKey)
	}
}
