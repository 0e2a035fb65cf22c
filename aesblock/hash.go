package aesblock

// Hash is a Davies-Meyer-style compression chain built on the AES block
// cipher itself, grounded on AESHashInit/AESHashUpdate/AESHashFinish. Each
// full key-length block of input is treated as an AES key, and the current
// chaining value as the plaintext to encrypt; deliberately, the result is
// NOT XORed with the input block (no feed-forward), and no message-length
// encoding is appended at Finish, so the construction remains vulnerable to
// length-extension — exactly as the source leaves it.
type Hash struct {
	hash   [BlockLen]byte
	plain  []byte
	length int
	keyLen int
}

// NewHash returns a Hash with a zero chaining value, compressing
// keyLen-byte blocks (16, 24, or 32, matching the supported AES key sizes).
func NewHash(keyLen int) *Hash {
	h := &Hash{keyLen: keyLen, plain: make([]byte, keyLen)}
	return h
}

// NewHashIv returns a Hash seeded with an explicit 16-byte initial chaining
// value instead of zero.
func NewHashIv(keyLen int, iv []byte) *Hash {
	h := NewHash(keyLen)
	copy(h.hash[:], iv[:BlockLen])
	return h
}

// Write absorbs p, compressing every full keyLen-byte block as it fills.
func (h *Hash) Write(p []byte) (int, error) {
	n := len(p)
	for len(p) > 0 {
		room := h.keyLen - h.length
		take := room
		if take > len(p) {
			take = len(p)
		}
		copy(h.plain[h.length:h.length+take], p[:take])
		h.length += take
		p = p[take:]

		if h.length == h.keyLen {
			ks, err := NewKeySchedule(h.plain)
			if err != nil {
				return n, err
			}
			ks.EncryptBlock(h.hash[:], h.hash[:])
			h.length = 0
		}
	}
	return n, nil
}

// Sum appends 0x80 then zero-pads the remaining partial block, compresses
// it once more, and returns the resulting 16-byte chaining value. It does
// not mutate h's absorbed length beyond this final compression, matching
// AESHashFinish's one-shot padding (callers that want to keep hashing after
// Sum should use a fresh Hash or save state beforehand, as the source
// does not support un-finishing).
func (h *Hash) Sum() [BlockLen]byte {
	h.plain[h.length] = 0x80
	for i := h.length + 1; i < h.keyLen; i++ {
		h.plain[i] = 0x00
	}

	ks, _ := NewKeySchedule(h.plain) // keyLen is always valid here.
	ks.EncryptBlock(h.hash[:], h.hash[:])

	return h.hash
}
