package ketje

import (
	"bytes"
	"testing"

	"github.com/coldforge/sponge/internal/testdrbg"
	fuzz "github.com/trailofbits/go-fuzz-utils"
)

func testKey[T any](size int) []byte {
	key := make([]byte, size)
	for i := range key {
		key[i] = byte(i * 7 % 251)
	}
	return key
}

func TestSealOpenRoundTrip(t *testing.T) {
	runWidth := func(t *testing.T, seal func([]byte, []byte, []byte, []byte, []byte) ([]byte, error), open func([]byte, []byte, []byte, []byte, []byte) ([]byte, error), params Params) {
		key := testKey[uint64](params.KeySize)
		nonce := testKey[uint64](params.NonceSize)
		ad := []byte("associated data")
		plaintext := []byte("the quick brown fox jumps over the lazy dog")

		sealed, err := seal(nil, key, nonce, ad, plaintext)
		if err != nil {
			t.Fatalf("Seal: %v", err)
		}
		if len(sealed) != len(plaintext)+params.TagSize {
			t.Fatalf("sealed length = %d, want %d", len(sealed), len(plaintext)+params.TagSize)
		}

		opened, err := open(nil, key, nonce, ad, sealed)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if !bytes.Equal(opened, plaintext) {
			t.Fatalf("Open recovered %q, want %q", opened, plaintext)
		}
	}

	t.Run("uint64", func(t *testing.T) {
		runWidth(t, Seal[uint64], Open[uint64], ParamsFor[uint64]())
	})
	t.Run("uint32", func(t *testing.T) {
		runWidth(t, Seal[uint32], Open[uint32], ParamsFor[uint32]())
	})
	t.Run("uint16", func(t *testing.T) {
		runWidth(t, Seal[uint16], Open[uint16], ParamsFor[uint16]())
	})
	t.Run("uint8", func(t *testing.T) {
		runWidth(t, Seal[uint8], Open[uint8], ParamsFor[uint8]())
	})
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	params := ParamsFor[uint64]()
	key := testKey[uint64](params.KeySize)
	nonce := testKey[uint64](params.NonceSize)
	ad := []byte("header")
	plaintext := []byte("do not tamper with this message")

	sealed, err := Seal[uint64](nil, key, nonce, ad, plaintext)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	for i := range sealed {
		tampered := append([]byte(nil), sealed...)
		tampered[i] ^= 0x01
		if _, err := Open[uint64](nil, key, nonce, ad, tampered); err == nil {
			t.Fatalf("Open accepted ciphertext tampered at byte %d", i)
		}
	}
}

func TestOpenRejectsWrongAssociatedData(t *testing.T) {
	params := ParamsFor[uint64]()
	key := testKey[uint64](params.KeySize)
	nonce := testKey[uint64](params.NonceSize)

	sealed, err := Seal[uint64](nil, key, nonce, []byte("correct header"), []byte("message"))
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if _, err := Open[uint64](nil, key, nonce, []byte("wrong header"), sealed); err == nil {
		t.Fatal("Open accepted a ciphertext under the wrong associated data")
	}
}

func TestNewRejectsWrongKeySize(t *testing.T) {
	widths := []struct {
		name    string
		mk      func(key []byte) error
		keySize int
	}{
		{"uint8", func(key []byte) error { _, err := New[uint8](key); return err }, ParamsFor[uint8]().KeySize},
		{"uint16", func(key []byte) error { _, err := New[uint16](key); return err }, ParamsFor[uint16]().KeySize},
		{"uint32", func(key []byte) error { _, err := New[uint32](key); return err }, ParamsFor[uint32]().KeySize},
		{"uint64", func(key []byte) error { _, err := New[uint64](key); return err }, ParamsFor[uint64]().KeySize},
	}

	for _, w := range widths {
		t.Run(w.name, func(t *testing.T) {
			if err := w.mk(make([]byte, w.keySize+1)); err != ErrInvalidKeySize {
				t.Errorf("New with oversize key: err = %v, want %v", err, ErrInvalidKeySize)
			}
			if err := w.mk(make([]byte, w.keySize)); err != nil {
				t.Errorf("New with correctly-sized key: err = %v, want nil", err)
			}
		})
	}
}

func TestSealBatchOpenBatchRoundTrip(t *testing.T) {
	params := ParamsFor[uint64]()
	msgs := make([]Message, 5)
	for i := range msgs {
		msgs[i] = Message{
			Key:   testKey[uint64](params.KeySize),
			Nonce: append(testKey[uint64](params.NonceSize-1), byte(i)),
			AD:    []byte("batch"),
			Data:  []byte("message number in the batch"),
		}
	}

	sealed, errs := SealBatch[uint64](msgs)
	for i, err := range errs {
		if err != nil {
			t.Fatalf("SealBatch[%d]: %v", i, err)
		}
	}

	openMsgs := make([]Message, len(msgs))
	for i, m := range msgs {
		openMsgs[i] = Message{Key: m.Key, Nonce: m.Nonce, AD: m.AD, Data: sealed[i]}
	}

	opened, errs := OpenBatch[uint64](openMsgs)
	for i, err := range errs {
		if err != nil {
			t.Fatalf("OpenBatch[%d]: %v", i, err)
		}
		if !bytes.Equal(opened[i], msgs[i].Data) {
			t.Errorf("OpenBatch[%d] = %q, want %q", i, opened[i], msgs[i].Data)
		}
	}
}

func BenchmarkSeal(b *testing.B) {
	drbg := testdrbg.New("ketje-seal-bench")
	params := ParamsFor[uint64]()
	key := drbg.Data(params.KeySize)
	nonce := drbg.Data(params.NonceSize)
	ad := drbg.Data(16)

	for _, sz := range testdrbg.Sizes {
		plaintext := drbg.Data(sz.N)
		b.Run(sz.Name, func(b *testing.B) {
			b.SetBytes(int64(sz.N))
			for i := 0; i < b.N; i++ {
				if _, err := Seal[uint64](nil, key, nonce, ad, plaintext); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func TestOpenRejectsShortCiphertext(t *testing.T) {
	params := ParamsFor[uint64]()
	key := testKey[uint64](params.KeySize)
	nonce := testKey[uint64](params.NonceSize)

	_, err := Open[uint64](nil, key, nonce, nil, make([]byte, params.TagSize-1))
	if err != ErrCiphertextTooShort {
		t.Errorf("Open with short ciphertext: err = %v, want %v", err, ErrCiphertextTooShort)
	}
}

// FuzzPhaseTranscript drives an AEAD instance through a random sequence of
// phase-transitioning operations, mirroring the teacher's
// fuzz_transcripts_test.go approach of replaying an opaque byte stream as a
// sequence of protocol operations rather than as raw message bytes.
func FuzzPhaseTranscript(f *testing.F) {
	f.Add([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	f.Fuzz(func(t *testing.T, data []byte) {
		tp, err := fuzz.NewTypeProvider(data)
		if err != nil {
			return
		}

		key := testKey[uint64](ParamsFor[uint64]().KeySize)
		a, err := New[uint64](key)
		if err != nil {
			t.Fatalf("New: %v", err)
		}

		for i := 0; i < 16; i++ {
			op, err := tp.GetByte()
			if err != nil {
				return
			}
			n, err := tp.GetByte()
			if err != nil {
				return
			}
			buf := make([]byte, int(n)%64)
			for j := range buf {
				b, err := tp.GetByte()
				if err != nil {
					return
				}
				buf[j] = b
			}

			switch op % 4 {
			case 0:
				a.AbsorbAD(buf)
			case 1:
				a.EncryptInPlace(buf)
			case 2:
				a.DecryptInPlace(buf)
			case 3:
				a.VerifyTag(buf)
			}
		}
	})
}
