package ring

import (
	"math/rand"
	"testing"
)

func TestPolyAddSub(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	f := randPoly(rng)
	g := randPoly(rng)

	sum := f.Add(g)
	back := sum.Sub(g)
	if back != f {
		t.Fatal("f.Add(g).Sub(g) != f")
	}
}

func TestPolyEqual(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	f := randPoly(rng)
	g := f
	if !f.Equal(g) {
		t.Error("identical polynomials should be Equal")
	}
	g[0] = Add(g[0], 1)
	if f.Equal(g) {
		t.Error("polynomials differing in one coefficient should not be Equal")
	}
}

func TestPolyMulIdentity(t *testing.T) {
	var one Poly
	one[0] = 1
	rng := rand.New(rand.NewSource(21))
	f := randPoly(rng)
	if got := f.Mul(one); got != f {
		t.Fatal("f * 1 != f under schoolbook multiplication")
	}
}
