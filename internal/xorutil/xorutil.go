// Package xorutil holds the small byte-XOR helpers shared by the sponge and
// Ketje phase-machine implementations.
package xorutil

// Into sets dst[i] ^= src[i] for each i, where len(src) >= len(dst).
func Into(dst, src []byte) {
	for i, s := range src[:len(dst)] {
		dst[i] ^= s
	}
}

// EncryptInto computes e[i] = a[i] ^ b[i] and writes it into both dst and b,
// mirroring the sponge's "encrypt" byte transform: the keystream byte XORed
// with plaintext becomes both the ciphertext output and the new state byte.
// dst may alias a (as sponge.Encrypt does, folding the result back into the
// state slice it read from).
func EncryptInto(dst, a, b []byte) {
	for i := range dst {
		e := a[i] ^ b[i]
		dst[i] = e
		b[i] = e
	}
}

// DecryptInto computes dst[i] = src[i] ^ state[i] and replaces state[i] with
// src[i]'s original value, mirroring the sponge's "decrypt" byte transform:
// the ciphertext byte becomes the new state byte, and the plaintext is what
// gets produced. dst may alias src (as sponge.Decrypt does, overwriting a
// ciphertext buffer with its own plaintext in place); the ciphertext byte is
// captured before dst is written so aliasing never loses it.
func DecryptInto(dst, src, state []byte) {
	for i := range dst {
		c := src[i]
		dst[i] = c ^ state[i]
		state[i] = c
	}
}
