package ketje

import (
	"errors"
	"sync"

	"github.com/coldforge/sponge/hazmat/keccakp"
)

// ErrInvalidNonceSize is returned by Seal and Open when the nonce does not
// match the lane width's required nonce size.
var ErrInvalidNonceSize = errors.New("ketje: invalid nonce size")

// ErrCiphertextTooShort is returned by Open when the input is shorter than
// the lane width's tag size.
var ErrCiphertextTooShort = errors.New("ketje: ciphertext too short")

// ErrAuthenticationFailed is returned by Open when the tag does not verify.
var ErrAuthenticationFailed = errors.New("ketje: authentication failed")

// Seal encrypts and authenticates plaintext under key and nonce, binding ad
// as associated data, and appends the tag to the returned ciphertext. dst
// may be nil; the result is appended to dst.
func Seal[T keccakp.Lane](dst, key, nonce, ad, plaintext []byte) ([]byte, error) {
	a, err := New[T](key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.params.NonceSize {
		return nil, ErrInvalidNonceSize
	}

	a.AbsorbAD(nonce)
	a.AbsorbAD(ad)

	ciphertext := append(dst, plaintext...)
	body := ciphertext[len(dst):]
	a.EncryptInPlace(body)

	tag := make([]byte, a.params.TagSize)
	a.SqueezeTag(tag)

	return append(ciphertext, tag...), nil
}

// Open verifies and decrypts a ciphertext produced by Seal under the same
// key, nonce and associated data. dst may be nil; the plaintext is
// appended to dst. On authentication failure, it returns
// ErrAuthenticationFailed and no plaintext.
func Open[T keccakp.Lane](dst, key, nonce, ad, ciphertextAndTag []byte) ([]byte, error) {
	a, err := New[T](key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != a.params.NonceSize {
		return nil, ErrInvalidNonceSize
	}
	if len(ciphertextAndTag) < a.params.TagSize {
		return nil, ErrCiphertextTooShort
	}

	split := len(ciphertextAndTag) - a.params.TagSize
	ciphertext := ciphertextAndTag[:split]
	tag := make([]byte, a.params.TagSize)
	copy(tag, ciphertextAndTag[split:])

	a.AbsorbAD(nonce)
	a.AbsorbAD(ad)

	plaintext := append(dst, ciphertext...)
	body := plaintext[len(dst):]
	a.DecryptInPlace(body)

	if !a.VerifyTag(tag) {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}

// Message is one independent plaintext to seal in SealBatch, or ciphertext
// to open in OpenBatch.
type Message struct {
	Key, Nonce, AD, Data []byte
}

// SealBatch seals each message independently, in parallel. Each AEAD
// instance in a batch is entirely independent duplex state, so unlike a
// single multi-round sponge call there is no cross-message data dependency
// to serialize on; the batch is split into keccakp.Lanes() worker goroutines
// as a concurrency hint sized the same way the permutation package's own
// capability probe would size a SIMD lane count, since both are answering
// "how many independent Keccak-shaped computations can usefully run at
// once" for this process.
func SealBatch[T keccakp.Lane](msgs []Message) ([][]byte, []error) {
	out := make([][]byte, len(msgs))
	errs := make([]error, len(msgs))

	workers := keccakp.Lanes()
	if workers > len(msgs) {
		workers = len(msgs)
	}
	if workers == 0 {
		return out, errs
	}

	var wg sync.WaitGroup
	next := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				out[i], errs[i] = Seal[T](nil, msgs[i].Key, msgs[i].Nonce, msgs[i].AD, msgs[i].Data)
			}
		}()
	}
	for i := range msgs {
		next <- i
	}
	close(next)
	wg.Wait()

	return out, errs
}

// OpenBatch mirrors SealBatch for verification/decryption.
func OpenBatch[T keccakp.Lane](msgs []Message) ([][]byte, []error) {
	out := make([][]byte, len(msgs))
	errs := make([]error, len(msgs))

	workers := keccakp.Lanes()
	if workers > len(msgs) {
		workers = len(msgs)
	}
	if workers == 0 {
		return out, errs
	}

	var wg sync.WaitGroup
	next := make(chan int)
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range next {
				out[i], errs[i] = Open[T](nil, msgs[i].Key, msgs[i].Nonce, msgs[i].AD, msgs[i].Data)
			}
		}()
	}
	for i := range msgs {
		next <- i
	}
	close(next)
	wg.Wait()

	return out, errs
}
