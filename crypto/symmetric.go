package crypto

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/nacl/secretbox"
)

// NonceSize is the size of the random nonce prefixed to symmetric blobs.
const NonceSize = 24

// SymmetricOverhead is the fixed overhead of a symmetric blob over its
// plaintext: nonce prefix plus AEAD tag.
const SymmetricOverhead = NonceSize + secretbox.Overhead

// SymmetricEncrypt encrypts plaintext under a 32-byte symmetric key with
// NaCl secretbox and a fresh random nonce.
//
// Blob layout: nonce(24) || ciphertext || tag(16). The format deliberately
// shares nothing with ECIES blobs so the two schemes cannot be confused.
func SymmetricEncrypt(key [32]byte, plaintext []byte) ([]byte, error) {
	var nonce [NonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	blob := make([]byte, 0, SymmetricOverhead+len(plaintext))
	blob = append(blob, nonce[:]...)
	blob = secretbox.Seal(blob, plaintext, &nonce, &key)
	return blob, nil
}

// SymmetricDecrypt reverses SymmetricEncrypt. Returns ErrInvalidBlob when the
// blob is too short to contain a nonce and tag, and ErrDecryptionFailed when
// authentication fails.
func SymmetricDecrypt(key [32]byte, blob []byte) ([]byte, error) {
	if len(blob) < SymmetricOverhead {
		return nil, fmt.Errorf("%w: symmetric blob too short (%d bytes)", ErrInvalidBlob, len(blob))
	}

	var nonce [NonceSize]byte
	copy(nonce[:], blob[:NonceSize])

	plaintext, ok := secretbox.Open(nil, blob[NonceSize:], &nonce, &key)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}
