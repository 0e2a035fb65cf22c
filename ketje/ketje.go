// Package ketje implements the Ketje-style Keccak authenticated-encryption
// phase state machine from spec.md §4.4, grounded directly on
// original_source/source/keccak_secret.c: a four-phase duplex (key, then
// associated data, then plaintext/ciphertext, then tag) where switching
// phases seals the previous one with a phase-specific pad byte and a
// possibly-reduced round count.
package ketje

import (
	"errors"

	"github.com/coldforge/sponge/hazmat/keccakp"
	"github.com/coldforge/sponge/hazmat/sponge"
)

// Phase pad bytes, applied at the cursor of the previous phase's rate window
// when transitioning. The low 6 bits are the domain-separation pattern; bit
// 7 (0x40, never set here) and PadEnd (0x80) are reserved for the
// multirate padding's own bits.
const (
	padK  byte = 0x3f
	padA  byte = 0x3e
	padBC byte = 0x3d
	padD  byte = 0x3c
)

const (
	nrStart  = 12
	nrStep   = 8
	nrStride = 12
)

// ErrInvalidKeySize is returned by New when the key does not match the
// lane width's required key size.
var ErrInvalidKeySize = errors.New("ketje: invalid key size")

// Params gives the per-lane-width key/nonce/tag/rate parameters from
// spec.md §6.3's table (itself the KECCAK_SECRET_CONFIG enum in
// keccak_secret.h, generalized by lane width instead of a preprocessor switch).
type Params struct {
	KeySize   int
	NonceSize int
	TagSize   int
	Rate      int
}

func paramsForWidth(widthBits int) Params {
	switch widthBits {
	case 8:
		return Params{KeySize: 12, NonceSize: 12, TagSize: 12, Rate: 13}
	case 16:
		return Params{KeySize: 24, NonceSize: 16, TagSize: 16, Rate: 26}
	case 32:
		return Params{KeySize: 32, NonceSize: 16, TagSize: 16, Rate: 68}
	case 64:
		return Params{KeySize: 32, NonceSize: 16, TagSize: 16, Rate: 168}
	default:
		panic("ketje: invalid lane width")
	}
}

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
		panic("ketje: invalid lane type")
	}
}

// ParamsFor returns the key/nonce/tag/rate parameters for lane type T.
func ParamsFor[T keccakp.Lane]() Params { return paramsForWidth(laneBits[T]()) }

// AEAD is a keyed Ketje-style duplex object. Its phases are normally driven
// in the order Absorb* -> Encrypt/Decrypt* -> Squeeze/Verify*; calling an
// earlier phase's method after a later phase has started seals the current
// phase and switches back, like any other transition.
type AEAD[T keccakp.Lane] struct {
	s      *sponge.State[T]
	pad    byte
	params Params
}

// New keys a fresh AEAD instance. The key is absorbed and sealed with
// nrStart rounds, exactly as KeccakSecretInit does.
func New[T keccakp.Lane](key []byte) (*AEAD[T], error) {
	params := ParamsFor[T]()
	if len(key) != params.KeySize {
		return nil, ErrInvalidKeySize
	}

	a := &AEAD[T]{s: sponge.New[T](), pad: padA, params: params}
	a.s.Absorb(params.Rate, nrStart, key)
	a.finish(nrStart, padK)
	a.pad = padA
	return a, nil
}

func (a *AEAD[T]) finish(rounds int, pad byte) {
	a.s.Finish(a.params.Rate, rounds, pad)
}

func (a *AEAD[T]) transition(target byte, sealRounds int) {
	if a.pad != target {
		old := a.pad
		a.finish(sealRounds, old)
		a.pad = target
	}
}

// AbsorbAD folds associated data (including, conventionally, the nonce) into
// the duplex. It may be called multiple times.
func (a *AEAD[T]) AbsorbAD(data []byte) {
	a.transition(padA, nrStep)
	a.s.Absorb(a.params.Rate, nrStep, data)
}

// EncryptInPlace turns plaintext in buf into ciphertext in place.
func (a *AEAD[T]) EncryptInPlace(buf []byte) {
	a.transition(padBC, nrStep)
	a.s.Encrypt(a.params.Rate, nrStep, buf)
}

// DecryptInPlace turns ciphertext in buf into plaintext in place.
func (a *AEAD[T]) DecryptInPlace(buf []byte) {
	a.transition(padBC, nrStep)
	a.s.Decrypt(a.params.Rate, nrStep, buf)
}

// SqueezeTag produces len(buf) bytes of authentication tag.
func (a *AEAD[T]) SqueezeTag(buf []byte) {
	a.transition(padD, nrStride)
	a.s.Squeeze(a.params.Rate, nrStep, buf)
}

// VerifyTag checks buf (the received tag) against the duplex's own tag
// stream by decrypting buf in place, OR-folding every resulting byte and
// checking the fold is zero, never short-circuiting on the first mismatch —
// the same non-early-out verification keccak_secret.c's
// KeccakSecretVerifyD performs.
func (a *AEAD[T]) VerifyTag(buf []byte) bool {
	a.transition(padD, nrStride)
	a.s.Decrypt(a.params.Rate, nrStep, buf)

	var diff byte
	for _, b := range buf {
		diff |= b
	}
	return diff == 0
}
