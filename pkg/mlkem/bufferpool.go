// Buffer pooling reduces allocations when repeatedly generating key pairs
// or encapsulating/decapsulating at a fixed variant, which matters in
// high-throughput handshake scenarios. The pool uses size classes matched
// to the three standardized parameter sets' encapsulation-key,
// decapsulation-key, and ciphertext sizes.
package mlkem

import (
	"sync"

	"github.com/latticeforge/mlkem-go/internal/constants"
)

// BufferPool provides pooled byte slices sized for ML-KEM encapsulation
// keys, decapsulation keys, and ciphertexts at each parameter set.
type BufferPool struct {
	ek sync.Pool
	dk sync.Pool
	ct sync.Pool
}

var globalPools = [3]*BufferPool{
	constants.MLKEM512:  newBufferPool(constants.MLKEM512),
	constants.MLKEM768:  newBufferPool(constants.MLKEM768),
	constants.MLKEM1024: newBufferPool(constants.MLKEM1024),
}

func newBufferPool(variant constants.Variant) *BufferPool {
	ps, _ := constants.Params(variant)
	return &BufferPool{
		ek: sync.Pool{New: func() any { buf := make([]byte, ps.EKSize); return &buf }},
		dk: sync.Pool{New: func() any { buf := make([]byte, ps.DKSize); return &buf }},
		ct: sync.Pool{New: func() any { buf := make([]byte, ps.CTSize); return &buf }},
	}
}

// poolFor returns the global pool for variant, or nil for an invalid
// variant.
func poolFor(variant constants.Variant) *BufferPool {
	if !variant.IsValid() {
		return nil
	}
	return globalPools[variant]
}

// GetEncapsulationKeyBuffer returns a zeroed buffer sized for variant's
// encapsulation key.
func GetEncapsulationKeyBuffer(variant constants.Variant) []byte {
	p := poolFor(variant)
	if p == nil {
		return nil
	}
	bufPtr := p.ek.Get().(*[]byte)
	buf := *bufPtr
	Zeroize(buf)
	return buf
}

// PutEncapsulationKeyBuffer zeroes buf and returns it to variant's pool.
// Buffers of the wrong length for variant are discarded rather than
// pooled.
func PutEncapsulationKeyBuffer(variant constants.Variant, buf []byte) {
	p := poolFor(variant)
	ps, ok := constants.Params(variant)
	if p == nil || !ok || buf == nil || cap(buf) != ps.EKSize {
		return
	}
	buf = buf[:cap(buf)]
	Zeroize(buf)
	p.ek.Put(&buf)
}

// GetDecapsulationKeyBuffer returns a zeroed buffer sized for variant's
// decapsulation key.
func GetDecapsulationKeyBuffer(variant constants.Variant) []byte {
	p := poolFor(variant)
	if p == nil {
		return nil
	}
	bufPtr := p.dk.Get().(*[]byte)
	buf := *bufPtr
	Zeroize(buf)
	return buf
}

// PutDecapsulationKeyBuffer zeroes buf and returns it to variant's pool.
// Decapsulation keys are secret; this is scrubbed unconditionally before
// the buffer becomes reachable again through Get.
func PutDecapsulationKeyBuffer(variant constants.Variant, buf []byte) {
	p := poolFor(variant)
	ps, ok := constants.Params(variant)
	if p == nil || !ok || buf == nil || cap(buf) != ps.DKSize {
		return
	}
	buf = buf[:cap(buf)]
	Zeroize(buf)
	p.dk.Put(&buf)
}

// GetCiphertextBuffer returns a zeroed buffer sized for variant's
// ciphertext.
func GetCiphertextBuffer(variant constants.Variant) []byte {
	p := poolFor(variant)
	if p == nil {
		return nil
	}
	bufPtr := p.ct.Get().(*[]byte)
	buf := *bufPtr
	Zeroize(buf)
	return buf
}

// PutCiphertextBuffer zeroes buf and returns it to variant's pool.
func PutCiphertextBuffer(variant constants.Variant, buf []byte) {
	p := poolFor(variant)
	ps, ok := constants.Params(variant)
	if p == nil || !ok || buf == nil || cap(buf) != ps.CTSize {
		return
	}
	buf = buf[:cap(buf)]
	Zeroize(buf)
	p.ct.Put(&buf)
}
