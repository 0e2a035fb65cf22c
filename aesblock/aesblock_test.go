package aesblock

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/coldforge/sponge/internal/testdrbg"
)

func mustHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestECBEncryptKAT(t *testing.T) {
	key := mustHex("2b7e151628aed2a6abf7158809cf4f3c")[:16]
	plain := mustHex("6bc1bee22e409f96e93d7e117393172a")
	want := mustHex("3ad77bb40d7a3660a89ecaf32466ef97")

	cipher := make([]byte, BlockLen)
	if err := ECBEncrypt(key, plain, cipher); err != nil {
		t.Fatalf("ECBEncrypt: %v", err)
	}
	if !bytes.Equal(cipher, want) {
		t.Errorf("ECBEncrypt = %x, want %x", cipher, want)
	}
}

func TestECBRoundTrip(t *testing.T) {
	sizes := []int{16, 24, 32}
	for _, ks := range sizes {
		key := make([]byte, ks)
		for i := range key {
			key[i] = byte(i * 13)
		}
		plain := []byte("0123456789abcdef0123456789ABCDEF")[:32]

		cipher := make([]byte, len(plain))
		if err := ECBEncrypt(key, plain, cipher); err != nil {
			t.Fatalf("key len %d: ECBEncrypt: %v", ks, err)
		}
		recovered := make([]byte, len(plain))
		if err := ECBDecrypt(key, cipher, recovered); err != nil {
			t.Fatalf("key len %d: ECBDecrypt: %v", ks, err)
		}
		if !bytes.Equal(recovered, plain) {
			t.Errorf("key len %d: round trip = %x, want %x", ks, recovered, plain)
		}
	}
}

func TestECBRejectsBadKeyLength(t *testing.T) {
	if err := ECBEncrypt(make([]byte, 20), make([]byte, 16), make([]byte, 16)); err != ErrInvalidKeyLength {
		t.Errorf("err = %v, want %v", err, ErrInvalidKeyLength)
	}
}

func TestECBRejectsUnalignedLength(t *testing.T) {
	key := make([]byte, 16)
	if err := ECBEncrypt(key, make([]byte, 20), make([]byte, 20)); err != ErrInvalidBlockLength {
		t.Errorf("err = %v, want %v", err, ErrInvalidBlockLength)
	}
}

func TestCBCRoundTrip(t *testing.T) {
	key := mustHex("000102030405060708090a0b0c0d0e0f")
	iv := mustHex("101112131415161718191a1b1c1d1e1f")
	plain := []byte("this message spans multiple 16-byte blocks!!!!!!")

	cipher := make([]byte, len(plain))
	if err := CBCEncrypt(key, iv, plain, cipher); err != nil {
		t.Fatalf("CBCEncrypt: %v", err)
	}
	recovered := make([]byte, len(plain))
	if err := CBCDecrypt(key, iv, cipher, recovered); err != nil {
		t.Fatalf("CBCDecrypt: %v", err)
	}
	if !bytes.Equal(recovered, plain) {
		t.Errorf("CBC round trip = %q, want %q", recovered, plain)
	}
}

func TestCBCChainingProducesDistinctBlocks(t *testing.T) {
	key := mustHex("000102030405060708090a0b0c0d0e0f")
	iv := mustHex("101112131415161718191a1b1c1d1e1f")
	plain := bytes.Repeat([]byte{0x41}, 48) // three identical blocks

	cipher := make([]byte, len(plain))
	if err := CBCEncrypt(key, iv, plain, cipher); err != nil {
		t.Fatalf("CBCEncrypt: %v", err)
	}

	b0, b1, b2 := cipher[0:16], cipher[16:32], cipher[32:48]
	if bytes.Equal(b0, b1) || bytes.Equal(b1, b2) || bytes.Equal(b0, b2) {
		t.Error("CBC produced identical ciphertext blocks for identical plaintext blocks")
	}
}

func TestCBCStdDiffersFromQuirkyVariant(t *testing.T) {
	key := mustHex("000102030405060708090a0b0c0d0e0f")
	iv := mustHex("101112131415161718191a1b1c1d1e1f")
	plain := bytes.Repeat([]byte{0x11}, 16)

	quirky := make([]byte, 16)
	_ = CBCEncrypt(key, iv, plain, quirky)

	std := make([]byte, 16)
	_ = CBCEncryptStd(key, iv, plain, std)

	if bytes.Equal(quirky, std) {
		t.Error("IV-pre-encryption CBC and standard CBC produced identical ciphertext")
	}

	recovered := make([]byte, 16)
	_ = CBCDecryptStd(key, iv, std, recovered)
	if !bytes.Equal(recovered, plain) {
		t.Errorf("CBCDecryptStd = %x, want %x", recovered, plain)
	}
}

func TestHashWithoutFeedForward(t *testing.T) {
	h := NewHash(16)
	_, _ = h.Write([]byte("short message"))
	sum1 := h.Sum()

	h2 := NewHash(16)
	_, _ = h2.Write([]byte("different message"))
	sum2 := h2.Sum()

	if sum1 == sum2 {
		t.Error("AES hash produced identical output for different inputs")
	}
}

func TestHashInitIv(t *testing.T) {
	iv := mustHex("00112233445566778899aabbccddeeff")[:16]

	h1 := NewHashIv(16, iv)
	_, _ = h1.Write([]byte("message"))
	sum1 := h1.Sum()

	h2 := NewHash(16)
	_, _ = h2.Write([]byte("message"))
	sum2 := h2.Sum()

	if sum1 == sum2 {
		t.Error("NewHashIv with a non-zero IV produced the same digest as a zero-IV hash")
	}
}

func TestHashMultiBlockUpdate(t *testing.T) {
	h := NewHash(16)
	_, _ = h.Write([]byte("first 16 bytes!!"))
	_, _ = h.Write([]byte("second 16 bytes!"))
	sumA := h.Sum()

	h2 := NewHash(16)
	_, _ = h2.Write([]byte("first 16 bytes!!second 16 bytes!"))
	sumB := h2.Sum()

	if sumA != sumB {
		t.Error("splitting Write calls across a block boundary changed the digest")
	}
}

func BenchmarkECBEncrypt(b *testing.B) {
	drbg := testdrbg.New("aesblock-ecb-bench")
	key := drbg.Data(16)

	for _, sz := range testdrbg.Sizes {
		aligned := sz.N - sz.N%BlockLen
		if aligned == 0 {
			aligned = BlockLen
		}
		plain := drbg.Data(aligned)
		cipher := make([]byte, aligned)

		b.Run(sz.Name, func(b *testing.B) {
			b.SetBytes(int64(aligned))
			for i := 0; i < b.N; i++ {
				if err := ECBEncrypt(key, plain, cipher); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkHash(b *testing.B) {
	drbg := testdrbg.New("aesblock-hash-bench")

	for _, sz := range testdrbg.Sizes {
		msg := drbg.Data(sz.N)

		b.Run(sz.Name, func(b *testing.B) {
			b.SetBytes(int64(sz.N))
			for i := 0; i < b.N; i++ {
				h := NewHash(16)
				_, _ = h.Write(msg)
				h.Sum()
			}
		})
	}
}
