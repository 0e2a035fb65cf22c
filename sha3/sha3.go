// Package sha3 implements the SHA-3 and SHAKE hash/XOF functions on top of
// hazmat/sponge, plus the embedded-oriented small-lane-width hash and XOF
// variants from spec.md §4.3 that have no standard-committee equivalent.
package sha3

import (
	"hash"

	"github.com/coldforge/sponge/hazmat/sponge"
)

const (
	padSHA3  byte = 0x06
	padShake byte = 0x1f

	rounds = 24 // Keccak-f[1600], the full NR for 64-bit lanes.
)

// rate/output pairs per spec.md §4.3's fixed-parameter table.
const (
	rate224, output224 = 144, 28
	rate256, output256 = 136, 32
	rate384, output384 = 104, 48
	rate512, output512 = 72, 64

	rateShake128 = 168
	rateShake256 = 136
)

type digest struct {
	s         *sponge.State[uint64]
	rate      int
	outputLen int
}

// New224 returns a new hash.Hash computing the SHA3-224 checksum.
func New224() hash.Hash { return &digest{s: sponge.New[uint64](), rate: rate224, outputLen: output224} }

// New256 returns a new hash.Hash computing the SHA3-256 checksum.
func New256() hash.Hash { return &digest{s: sponge.New[uint64](), rate: rate256, outputLen: output256} }

// New384 returns a new hash.Hash computing the SHA3-384 checksum.
func New384() hash.Hash { return &digest{s: sponge.New[uint64](), rate: rate384, outputLen: output384} }

// New512 returns a new hash.Hash computing the SHA3-512 checksum.
func New512() hash.Hash { return &digest{s: sponge.New[uint64](), rate: rate512, outputLen: output512} }

func (d *digest) Write(p []byte) (int, error) {
	d.s.Absorb(d.rate, rounds, p)
	return len(p), nil
}

func (d *digest) Sum(b []byte) []byte {
	clone := d.s.Clone()
	clone.Finish(d.rate, rounds, padSHA3)
	out := make([]byte, d.outputLen)
	clone.Squeeze(d.rate, rounds, out)
	return append(b, out...)
}

func (d *digest) Reset()         { d.s.Reset() }
func (d *digest) Size() int      { return d.outputLen }
func (d *digest) BlockSize() int { return d.rate }

// Sum224 returns the SHA3-224 checksum of data.
func Sum224(data []byte) (out [28]byte) {
	copy(out[:], sumN(data, rate224, output224, padSHA3))
	return out
}

// Sum256 returns the SHA3-256 checksum of data.
func Sum256(data []byte) (out [32]byte) {
	copy(out[:], sumN(data, rate256, output256, padSHA3))
	return out
}

// Sum384 returns the SHA3-384 checksum of data.
func Sum384(data []byte) (out [48]byte) {
	copy(out[:], sumN(data, rate384, output384, padSHA3))
	return out
}

// Sum512 returns the SHA3-512 checksum of data.
func Sum512(data []byte) (out [64]byte) {
	copy(out[:], sumN(data, rate512, output512, padSHA3))
	return out
}

func sumN(data []byte, rate, outputLen int, padByte byte) []byte {
	s := sponge.New[uint64]()
	s.Absorb(rate, rounds, data)
	s.Finish(rate, rounds, padByte)
	out := make([]byte, outputLen)
	s.Squeeze(rate, rounds, out)
	return out
}
