package ring

import "testing"

func TestCompressDecompressVectors(t *testing.T) {
	if got := Compress(1933, 11); got != 1189 {
		t.Errorf("Compress(1933, 11) = %d, want 1189", got)
	}
	if got := Decompress(1189, 11); got != 1933 {
		t.Errorf("Decompress(1189, 11) = %d, want 1933", got)
	}
	if got := Decompress(2001, 11); got != 3253 {
		t.Errorf("Decompress(2001, 11) = %d, want 3253", got)
	}
}

func TestCompressDecompressRoundTripBound(t *testing.T) {
	for d := 1; d <= 11; d++ {
		bound := (Q + (1 << uint(d+1)) - 1) / (1 << uint(d+1))
		if bound == 0 {
			bound = 1
		}
		for x := Element(0); x < Q; x++ {
			y := Decompress(Compress(x, d), d)
			diff := int(x) - int(y)
			if diff < 0 {
				diff = -diff
			}
			wrapped := Q - diff
			if wrapped < diff {
				diff = wrapped
			}
			if diff > bound {
				t.Fatalf("d=%d x=%d: |x-Decompress(Compress(x))|=%d exceeds bound %d", d, x, diff, bound)
			}
		}
	}
}
