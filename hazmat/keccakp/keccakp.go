// Package keccakp implements the Keccak-p permutation family, parameterized
// by lane width w via a Go generic type parameter rather than a build-time
// preprocessor macro.
package keccakp

import "github.com/klauspost/cpuid/v2"

// Lane is the set of integer types that can stand in for a Keccak-p lane.
// The permutation's behavior (round count, rotation amounts, round
// constants) is entirely determined by the bit width of T.
type Lane interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// NR returns the number of rounds of Keccak-f for a lane width of widthBits
// bits (8, 16, 32, or 64), computed as 12 + 2*log2(widthBits) per the
// Keccak-p family definition.
func NR(widthBits int) int {
	switch widthBits {
	case 8:
		return 18
	case 16:
		return 20
	case 32:
		return 22
	case 64:
		return 24
	default:
		panic("keccakp: invalid lane width")
	}
}

func rotl[T Lane](x T, n uint) T {
	var zero T
	width := uint(sizeofBits(zero))
	n %= width
	if n == 0 {
		return x
	}
	return (x << n) | (x >> (width - n))
}

func sizeofBits[T Lane](_ T) int {
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
		panic("keccakp: invalid lane type")
	}
}

// applyRound runs one Keccak-f round (theta/rho/pi folded into one pass,
// then chi, then iota) over the 25-lane state, using round constant index
// absolute into the 24-entry rc table.
func applyRound[T Lane](a *[25]T, round int) {
	var b [25]T
	var c [5]T

	for i := 0; i < 5; i++ {
		c[i] = a[i] ^ a[5+i] ^ a[10+i] ^ a[15+i] ^ a[20+i]
	}

	im1, ip1 := 4, 1
	for i := 0; i < 5; i++ {
		d := c[im1] ^ rotl(c[ip1], 1)

		for row := 0; row < 25; row += 5 {
			k := row + i
			b[pi[k]] = rotl(a[k]^d, uint(rho[k]))
		}

		im1 = (im1 + 1) % 5
		ip1 = (ip1 + 1) % 5
	}

	for i := 0; i < 25; i++ {
		a[i] = b[i] ^ (^b[iip1[i]] & b[iip2[i]])
	}

	a[0] ^= T(rc[round])
}

// F runs the last `rounds` rounds of Keccak-f[25w] over a, where w is T's
// bit width. Running fewer than NR(w) rounds reproduces the Ketje-style
// reduced-round step used by the AEAD phase machine and the PRNG.
func F[T Lane](a *[25]T, rounds int) {
	var zero T
	nr := NR(sizeofBits(zero))
	if rounds > nr {
		rounds = nr
	}
	for round := nr - rounds; round < nr; round++ {
		applyRound(a, round)
	}
}

func packLane[T Lane](b []byte) T {
	var v T
	for i := len(b) - 1; i >= 0; i-- {
		v = (v << 8) | T(b[i])
	}
	return v
}

func unpackLane[T Lane](v T, b []byte) {
	for i := range b {
		b[i] = byte(v)
		v >>= 8
	}
}

// Permute runs the last `rounds` rounds of Keccak-f[25w] (as F does) over a
// little-endian byte-serialized 25-lane state, where w is T's bit width and
// len(state) == 25*sizeof(T).
func Permute[T Lane](state []byte, rounds int) {
	var zero T
	width := sizeofBits(zero) / 8
	if len(state) != 25*width {
		panic("keccakp: state has wrong length for lane width")
	}

	var a [25]T
	for i := 0; i < 25; i++ {
		a[i] = packLane[T](state[i*width : (i+1)*width])
	}

	F(&a, rounds)

	for i := 0; i < 25; i++ {
		unpackLane(a[i], state[i*width:(i+1)*width])
	}
}

// Lanes reports how many independent Keccak-p states this build can
// plausibly advance per call without falling outside L1 cache working set,
// based on detected CPU vector width. It does not change Permute's output;
// it is informational, used by kprng and ketje to size their batch-advance
// loops the way the SIMD-dispatching reference implementation sizes
// P1600x2/P1600x4.
func Lanes() int {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		return 4
	case cpuid.CPU.Supports(cpuid.AVX2), cpuid.CPU.Supports(cpuid.SSE2), cpuid.CPU.Supports(cpuid.ASIMD):
		return 2
	default:
		return 1
	}
}
