// Package kdf implements the keyed sampling pipeline: an Argon2id key
// derivation followed by a ChaCha20-seeded CSPRNG that feeds
// bigint256.SampleUniform.
//
// The stream cipher's nonce and counter are pinned to zero, so only the
// 32-byte Argon2id output is needed as key material, not a derived nonce.
package kdf

import (
	"fmt"
	"io"

	"github.com/dsbarlow/seedpass/zero"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20"
)

// Params holds the Argon2id cost parameters. Default returns the values
// documented as the recommended Argon2id configuration in the argon2
// package's own IDKey doc comment, used here as the library default rather
// than a bespoke cost.
type Params struct {
	Time        uint32
	Memory      uint32 // KiB
	Parallelism uint8
}

// Default returns the recommended Argon2id parameters.
func Default() Params {
	return Params{Time: 1, Memory: 64 * 1024, Parallelism: 4}
}

const keyLen = 32 // chacha20.KeySize

// DeriveKey runs Argon2id over seed and salt, returning a zeroizable
// 32-byte key. The caller owns the returned key and must call Wipe on it
// once the CSPRNG built from it is no longer needed.
func DeriveKey(seed zero.Bytes, salt []byte, params Params) zero.Bytes {
	raw := argon2.IDKey(seed, salt, params.Time, params.Memory, params.Parallelism, keyLen)
	return zero.Bytes(raw)
}

// CSPRNG is a keystream reader whose internal state is itself derived key
// material and must be wiped once no more draws are needed, the same as the
// key it was built from.
type CSPRNG interface {
	io.Reader

	// Wipe overwrites the CSPRNG's internal state in place. It is safe to
	// call more than once.
	Wipe()
}

// NewCSPRNG wraps key in a ChaCha20 keystream reader run in counter mode
// with a zero nonce and zero initial counter. Reads return successive
// windows of the keystream; it never returns an error or a short read.
func NewCSPRNG(key zero.Bytes) (CSPRNG, error) {
	var zeroNonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key, zeroNonce[:])
	if err != nil {
		return nil, fmt.Errorf("kdf: initializing CSPRNG: %w", err)
	}
	return &keystreamReader{cipher: c}, nil
}

// keystreamReader exposes a chacha20.Cipher's keystream as an io.Reader by
// XOR-ing it against zero bytes, which is the keystream itself.
type keystreamReader struct {
	cipher *chacha20.Cipher
}

func (r *keystreamReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}

// Wipe overwrites the wrapped cipher's state, which holds the expanded
// 32-byte key, the block counter, and cached round results, all derived
// directly from the Argon2id key.
func (r *keystreamReader) Wipe() {
	if r.cipher == nil {
		return
	}
	*r.cipher = chacha20.Cipher{}
}
