package sha3

import "github.com/coldforge/sponge/hazmat/sponge"

// Shake is a SHAKE128 or SHAKE256 extendable-output function. It implements
// io.Writer for absorbing input and io.Reader for squeezing output; once
// Read has been called, Write and further domain-separation calls panic,
// matching the one-shot absorb-then-squeeze discipline used throughout the
// sponge constructions in this package.
type Shake struct {
	s         *sponge.State[uint64]
	rate      int
	squeezing bool
}

// NewShake128 returns a new SHAKE128 instance.
func NewShake128() *Shake { return &Shake{s: sponge.New[uint64](), rate: rateShake128} }

// NewShake256 returns a new SHAKE256 instance.
func NewShake256() *Shake { return &Shake{s: sponge.New[uint64](), rate: rateShake256} }

// Write absorbs p. It panics if called after Read.
func (sh *Shake) Write(p []byte) (int, error) {
	if sh.squeezing {
		panic("sha3: Write after Read")
	}
	sh.s.Absorb(sh.rate, rounds, p)
	return len(p), nil
}

// Domain absorbs a customization/domain-separation string and immediately
// finalizes the absorb phase, so that subsequently-absorbed message data
// cannot be confused with differently-domain-separated data that happens to
// share a prefix. This mirrors keccak_hash.c's KeccakXofDomain helper.
func (sh *Shake) Domain(domain []byte) {
	if sh.squeezing {
		panic("sha3: Domain after Read")
	}
	sh.s.Absorb(sh.rate, rounds, domain)
	sh.s.Finish(sh.rate, rounds, padShake)
}

// Read squeezes len(p) bytes of output. The first call to Read finalizes
// the absorb phase, including after Domain (whose own finish closes only the
// domain string).
func (sh *Shake) Read(p []byte) (int, error) {
	if !sh.squeezing {
		sh.s.Finish(sh.rate, rounds, padShake)
		sh.squeezing = true
	}
	sh.s.Squeeze(sh.rate, rounds, p)
	return len(p), nil
}

// Reset returns sh to its initial, pre-absorb state.
func (sh *Shake) Reset() {
	sh.s.Reset()
	sh.squeezing = false
}

// Clone returns an independent copy of sh's current state.
func (sh *Shake) Clone() *Shake {
	return &Shake{s: sh.s.Clone(), rate: sh.rate, squeezing: sh.squeezing}
}

// SumShake128 returns n bytes of SHAKE128(data).
func SumShake128(data []byte, n int) []byte {
	sh := NewShake128()
	_, _ = sh.Write(data)
	out := make([]byte, n)
	_, _ = sh.Read(out)
	return out
}

// SumShake256 returns n bytes of SHAKE256(data).
func SumShake256(data []byte, n int) []byte {
	sh := NewShake256()
	_, _ = sh.Write(data)
	out := make([]byte, n)
	_, _ = sh.Read(out)
	return out
}
