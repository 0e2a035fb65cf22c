// Package kprng implements the Keccak-duplex pseudo-random generator from
// spec.md §4.5, grounded on original_source/source/keccak_prng.c. Seeding
// absorbs new entropy across the entire permutation state rather than just
// the rate (deliberately mixing what would otherwise be the sponge's
// capacity), then reduces the accumulated pool with a 12-round
// permutation; drawing random bytes runs the duplex at a 1-round step,
// consistent with a fast-reseed generator rather than a general-purpose
// sponge hash.
package kprng

import (
	"io"
	"sync"

	"github.com/coldforge/sponge/hazmat/keccakp"
	"github.com/coldforge/sponge/hazmat/sponge"
)

const padMultirate byte = 0x01

const nrStep = 1

// nrStart is KECCAK_PRNG_NR_START: the fixed round count Seed's finish step
// runs, independent of lane width.
const nrStart = 12

// rateForWidth mirrors KECCAK_PRNG_RATE's per-lane-width default.
func rateForWidth(widthBits int) int {
	switch widthBits {
	case 8:
		return 2
	case 16:
		return 4
	case 32:
		return 16
	case 64:
		return 32
	default:
		panic("kprng: invalid lane width")
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
		panic("kprng: invalid lane type")
	}
}

// Generator is a Keccak-duplex PRNG over lane type T. It is not safe for
// concurrent use; System provides a mutex-guarded process-wide instance for
// callers that need one.
type Generator[T keccakp.Lane] struct {
	s          *sponge.State[T]
	stateBytes int
	rate       int
	debug      bool
}

// New returns a fresh, unseeded Generator over lane type T.
func New[T keccakp.Lane]() *Generator[T] {
	widthBits := laneBits[T]()
	return &Generator[T]{
		s:          sponge.New[T](),
		stateBytes: 25 * widthBits / 8,
		rate:       rateForWidth(widthBits),
	}
}

// NewDeterministic returns a Generator in deterministic-debug mode: Seed
// resets the duplex to all-zero before absorbing, so the same sequence of
// Seed/Random calls always reproduces the same output stream. This matches
// KECCAK_PRNG_DEBUG and exists for reproducible tests, never for production
// entropy.
func NewDeterministic[T keccakp.Lane]() *Generator[T] {
	g := New[T]()
	g.debug = true
	return g
}

// Seed mixes buf into the generator's entropy pool. Unlike Absorb on a
// plain sponge, the absorb step here runs at a rate equal to the entire
// permutation state (not the PRNG's output rate), so every seed byte
// perturbs the full state, not just what would ordinarily be the sponge's
// rate portion; the pool is then reduced with an nrStart-round (12-round)
// permutation, whatever the lane width. Seed may be called repeatedly to add more entropy over
// time.
func (g *Generator[T]) Seed(buf []byte) {
	if g.debug {
		g.s.Reset()
	}
	g.s.Absorb(g.stateBytes, nrStep, buf)
	g.s.Finish(g.stateBytes, nrStart, padMultirate)
}

// Random draws len(buf) pseudo-random bytes from the generator, encrypting
// buf in place against the duplex's keystream at a 1-round step between
// each rate-sized block. Seed must be called at least once first.
func (g *Generator[T]) Random(buf []byte) {
	g.s.Encrypt(g.rate, nrStep, buf)
}

// SeedFrom reads n bytes from r and mixes them in via Seed, one Seed call per
// batch of up to rate*keccakp.Lanes() bytes, so that a caller backed by a batching entropy source (e.g. a hardware RNG reading
// several lanes per call) isn't forced into single-byte reads.
func (g *Generator[T]) SeedFrom(r io.Reader, n int) error {
	batch := g.rate * keccakp.Lanes()
	buf := make([]byte, 0, batch)
	for n > 0 {
		chunk := batch
		if chunk > n {
			chunk = n
		}
		buf = buf[:chunk]
		if _, err := io.ReadFull(r, buf); err != nil {
			return err
		}
		g.Seed(buf)
		n -= chunk
	}
	return nil
}

// systemSeedBytes is how much entropy System reads from its seed source the
// first time it is used.
const systemSeedBytes = 64

var (
	systemMu     sync.Mutex
	systemGen    = New[uint64]()
	systemSeeded bool
)

// System returns len(buf) bytes from a process-wide, mutex-guarded
// Generator[uint64]. On its first call it seeds the generator by reading
// systemSeedBytes from seed (typically crypto/rand.Reader); seed is ignored
// on later calls, since the generator reseeds itself implicitly by ratcheting
// forward through Random. Most callers that only need occasional random
// bytes rather than a dedicated generator should use this instead of
// constructing their own.
func System(buf []byte, seed io.Reader) error {
	systemMu.Lock()
	defer systemMu.Unlock()
	if !systemSeeded {
		if err := systemGen.SeedFrom(seed, systemSeedBytes); err != nil {
			return err
		}
		systemSeeded = true
	}
	systemGen.Random(buf)
	return nil
}

// ReseedSystem mixes additional entropy from r into the process-wide
// generator, reading n bytes. It may be called at any time, including
// before System's first use.
func ReseedSystem(r io.Reader, n int) error {
	systemMu.Lock()
	defer systemMu.Unlock()
	if err := systemGen.SeedFrom(r, n); err != nil {
		return err
	}
	systemSeeded = true
	return nil
}
