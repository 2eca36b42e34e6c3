package ring

import "testing"

func TestAddSubInverse(t *testing.T) {
	for a := Element(0); a < Q; a += 37 {
		for b := Element(0); b < Q; b += 53 {
			if got := Sub(Add(a, b), b); got != a {
				t.Fatalf("Sub(Add(%d,%d),%d) = %d, want %d", a, b, b, got, a)
			}
		}
	}
}

func TestMulByZeroAndOne(t *testing.T) {
	for a := Element(0); a < Q; a += 11 {
		if got := Mul(a, 0); got != 0 {
			t.Fatalf("Mul(%d, 0) = %d, want 0", a, got)
		}
		if got := Mul(a, 1); got != a {
			t.Fatalf("Mul(%d, 1) = %d, want %d", a, got, a)
		}
	}
}

func TestNegIsAdditiveInverse(t *testing.T) {
	for a := Element(0); a < Q; a += 13 {
		if got := Add(a, Neg(a)); got != 0 {
			t.Fatalf("Add(%d, Neg(%d)) = %d, want 0", a, a, got)
		}
	}
}

func TestCondSubQ(t *testing.T) {
	if got := CondSubQ(Q); got != 0 {
		t.Errorf("CondSubQ(Q) = %d, want 0", got)
	}
	if got := CondSubQ(Q - 1); got != Q-1 {
		t.Errorf("CondSubQ(Q-1) = %d, want %d", got, Q-1)
	}
}

func TestAllResultsReduced(t *testing.T) {
	for a := Element(0); a < Q; a += 29 {
		for b := Element(0); b < Q; b += 31 {
			if r := Add(a, b); r >= Q {
				t.Fatalf("Add(%d,%d) = %d not reduced", a, b, r)
			}
			if r := Sub(a, b); r >= Q {
				t.Fatalf("Sub(%d,%d) = %d not reduced", a, b, r)
			}
			if r := Mul(a, b); r >= Q {
				t.Fatalf("Mul(%d,%d) = %d not reduced", a, b, r)
			}
		}
	}
}
