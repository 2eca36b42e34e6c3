package ring

import mlerrors "github.com/latticeforge/mlkem-go/internal/errors"

// BitsToBytes packs a bit array (one byte per bit, each 0 or 1) into a byte
// string. Bit j of byte i is bits[8*i+j] (little-endian within each byte).
// len(bits) must be a multiple of 8.
func BitsToBytes(bits []byte) ([]byte, error) {
	if len(bits)%8 != 0 {
		return nil, mlerrors.InvalidLength("BitsToBytes")
	}
	out := make([]byte, len(bits)/8)
	for i := range out {
		var b byte
		for j := 0; j < 8; j++ {
			b |= bits[8*i+j] << uint(j)
		}
		out[i] = b
	}
	return out, nil
}

// BytesToBits is the inverse of BitsToBytes: it expands each byte into 8
// bits, least-significant bit first.
func BytesToBits(b []byte) []byte {
	out := make([]byte, len(b)*8)
	for i, v := range b {
		for j := 0; j < 8; j++ {
			out[8*i+j] = (v >> uint(j)) & 1
		}
	}
	return out
}

// ByteEncode encodes 256 coefficients as a byte string, d bits per
// coefficient, little-endian within the d-bit group, packed into 32*d
// bytes. d must be in [1, 12].
func ByteEncode(f [N]Element, d int) ([]byte, error) {
	if d < 1 || d > 12 {
		return nil, mlerrors.InvalidParameter("ByteEncode")
	}
	bits := make([]byte, N*d)
	for i, x := range f {
		v := uint32(x)
		for j := 0; j < d; j++ {
			bits[i*d+j] = byte((v >> uint(j)) & 1)
		}
	}
	return BitsToBytes(bits)
}

// ByteDecode decodes a 32*d-byte string into 256 coefficients, d bits each.
// For d=12 the decoded value is reduced mod Q, tolerating non-canonical
// 12-bit encodings as FIPS 203 permits. d must be in [1, 12] and b must be
// exactly 32*d bytes.
func ByteDecode(b []byte, d int) ([N]Element, error) {
	var f [N]Element
	if d < 1 || d > 12 {
		return f, mlerrors.InvalidParameter("ByteDecode")
	}
	if len(b) != 32*d {
		return f, mlerrors.InvalidLength("ByteDecode")
	}
	bits := BytesToBits(b)
	for i := 0; i < N; i++ {
		var v uint32
		for j := 0; j < d; j++ {
			v |= uint32(bits[i*d+j]) << uint(j)
		}
		if d == 12 {
			v %= Q
		}
		f[i] = Element(v)
	}
	return f, nil
}
