// Package sponge implements the generic Keccak sponge/duplex construction
// described in spec.md §4.2: absorb, squeeze, encrypt, decrypt and finish,
// built on top of hazmat/keccakp's parameterized permutation. One State
// value is reused by every higher-level construction (SHA-3/SHAKE, the
// Ketje-style AEAD phase machine, the Keccak PRNG), each supplying its own
// rate and round count per call rather than fixing them on the type.
package sponge

import (
	"github.com/coldforge/sponge/hazmat/keccakp"
	"github.com/coldforge/sponge/internal/xorutil"
)

// PadEnd is the fixed final padding bit (*01) appended at the top of the
// rate during Finish, shared by every domain-separated pad byte.
const PadEnd byte = 0x80

// State is a Keccak state of 25 lanes of width W bits, plus a byte cursor
// into the portion of the state last absorbed into or squeezed from.
type State[T keccakp.Lane] struct {
	a   []byte
	num int
}

// New returns a freshly zeroed sponge state for lane type T.
func New[T keccakp.Lane]() *State[T] {
	var zero T
	width := widthBytes(zero)
	return &State[T]{a: make([]byte, 25*width)}
}

func widthBytes[T keccakp.Lane](_ T) int {
	switch any(T(0)).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	case uint64:
		return 8
	default:
		panic("sponge: invalid lane type")
	}
}

// Reset zeroes the state and cursor, equivalent to constructing a fresh State.
func (s *State[T]) Reset() {
	clear(s.a)
	s.num = 0
}

// Clone returns an independent copy of s.
func (s *State[T]) Clone() *State[T] {
	cp := &State[T]{a: make([]byte, len(s.a)), num: s.num}
	copy(cp.a, s.a)
	return cp
}

type transform func(state, buf []byte)

func absorbByte(state, buf []byte) { xorutil.Into(state, buf) }

func squeezeByte(state, buf []byte) { buf[0] = state[0] }

func encryptByte(state, buf []byte) { xorutil.EncryptInto(state, state, buf) }

func decryptByte(state, buf []byte) { xorutil.DecryptInto(buf, buf, state) }

// processData runs fn byte-by-byte over buf against the state starting at
// the current cursor, invoking the permutation every time the cursor
// reaches rate.
func (s *State[T]) processData(rate, rounds int, buf []byte, fn transform) {
	num := s.num
	for i := range buf {
		fn(s.a[num:num+1], buf[i:i+1])
		num++
		if num >= rate {
			keccakp.Permute[T](s.a, rounds)
			num = 0
		}
	}
	s.num = num
}

// Absorb XORs buf into the state at the current rate window, permuting
// whenever the window fills.
func (s *State[T]) Absorb(rate, rounds int, buf []byte) {
	s.processData(rate, rounds, buf, absorbByte)
}

// Squeeze copies bytes out of the state at the current rate window into
// buf, permuting whenever the window empties.
func (s *State[T]) Squeeze(rate, rounds int, buf []byte) {
	s.processData(rate, rounds, buf, squeezeByte)
}

// Encrypt XORs buf into the state (producing ciphertext in buf) and leaves
// the ciphertext byte as the new state byte, i.e. the keystream and
// plaintext are folded together the way Ketje's duplex encryption needs.
func (s *State[T]) Encrypt(rate, rounds int, buf []byte) {
	s.processData(rate, rounds, buf, encryptByte)
}

// Decrypt is Encrypt's inverse: buf holds ciphertext on entry, plaintext on
// exit, and the ciphertext byte (not the plaintext) becomes the new state byte.
func (s *State[T]) Decrypt(rate, rounds int, buf []byte) {
	s.processData(rate, rounds, buf, decryptByte)
}

// Finish pads the current rate window with padByte at the cursor and PadEnd
// at the top of the rate, then permutes. This both closes a domain
// (absorb phase) and prepares the state for a fresh phase transition.
func (s *State[T]) Finish(rate, rounds int, padByte byte) {
	s.a[s.num] ^= padByte
	s.a[rate-1] ^= PadEnd
	keccakp.Permute[T](s.a, rounds)
	s.num = 0
}
