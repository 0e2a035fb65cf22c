package sha3

import (
	"github.com/coldforge/sponge/hazmat/keccakp"
	"github.com/coldforge/sponge/hazmat/sponge"
)

func laneBits[T keccakp.Lane]() int {
	switch any(T(0)).(type) {
	case uint8:
		return 8
	case uint16:
		return 16
	case uint32:
		return 32
	case uint64:
		return 64
	default:
		panic("sha3: invalid lane type")
	}
}

// TinyHash is a fixed-output hash built on a Keccak-p permutation narrower
// than the standard 1600-bit state, for targets where a 200-byte state is
// too large. Its rate is derived the same way keccak_hash.c derives
// KECCAK_HASH_RATE: state size minus twice the output length, falling back
// to state size minus output length only for the narrowest (8-bit) lane,
// where twice the output would leave no rate at all.
type TinyHash[T keccakp.Lane] struct {
	s         *sponge.State[T]
	rate      int
	rounds    int
	outputLen int
}

// NewTinyHash returns a TinyHash over lane type T with the given output
// length in bytes. It panics if outputLen leaves no valid rate.
func NewTinyHash[T keccakp.Lane](outputLen int) *TinyHash[T] {
	widthBits := laneBits[T]()
	stateSize := 25 * widthBits / 8

	rate := stateSize - 2*outputLen
	if widthBits == 8 && rate <= 0 {
		rate = stateSize - outputLen
	}
	if rate <= 0 || rate >= stateSize {
		panic("sha3: invalid TinyHash output length for this lane width")
	}

	return &TinyHash[T]{
		s:         sponge.New[T](),
		rate:      rate,
		rounds:    keccakp.NR(widthBits),
		outputLen: outputLen,
	}
}

func (h *TinyHash[T]) Write(p []byte) (int, error) {
	h.s.Absorb(h.rate, h.rounds, p)
	return len(p), nil
}

func (h *TinyHash[T]) Sum(b []byte) []byte {
	clone := h.s.Clone()
	clone.Finish(h.rate, h.rounds, padSHA3)
	out := make([]byte, h.outputLen)
	clone.Squeeze(h.rate, h.rounds, out)
	return append(b, out...)
}

func (h *TinyHash[T]) Reset()         { h.s.Reset() }
func (h *TinyHash[T]) Size() int      { return h.outputLen }
func (h *TinyHash[T]) BlockSize() int { return h.rate }

// TinyXOF is an extendable-output function over a narrow Keccak-p
// permutation, grounded on keccak_hash.c's KECCAK_XOF construction
// (KECCAK_XOF_RATE = state size - 2*security).
type TinyXOF[T keccakp.Lane] struct {
	s         *sponge.State[T]
	rate      int
	rounds    int
	squeezing bool
}

// NewTinyXOF returns a TinyXOF over lane type T with the given security
// parameter in bytes (half the capacity).
func NewTinyXOF[T keccakp.Lane](security int) *TinyXOF[T] {
	widthBits := laneBits[T]()
	stateSize := 25 * widthBits / 8
	rate := stateSize - 2*security
	if rate <= 0 || rate >= stateSize {
		panic("sha3: invalid TinyXOF security parameter for this lane width")
	}
	return &TinyXOF[T]{s: sponge.New[T](), rate: rate, rounds: keccakp.NR(widthBits)}
}

// Domain absorbs a domain-separation string and finalizes that string's
// absorb phase, mirroring keccak_hash.c's KeccakXofDomain. Message data may
// be written afterwards; the first Read finalizes it in turn.
func (x *TinyXOF[T]) Domain(domain []byte) {
	x.s.Absorb(x.rate, x.rounds, domain)
	x.s.Finish(x.rate, x.rounds, padShake)
}

func (x *TinyXOF[T]) Write(p []byte) (int, error) {
	if x.squeezing {
		panic("sha3: Write after squeezing has started")
	}
	x.s.Absorb(x.rate, x.rounds, p)
	return len(p), nil
}

func (x *TinyXOF[T]) Read(p []byte) (int, error) {
	if !x.squeezing {
		x.s.Finish(x.rate, x.rounds, padShake)
		x.squeezing = true
	}
	x.s.Squeeze(x.rate, x.rounds, p)
	return len(p), nil
}

func (x *TinyXOF[T]) Reset() {
	x.s.Reset()
	x.squeezing = false
}
