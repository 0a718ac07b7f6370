package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/nacl/box"
)

const (
	// EciesVersion is the version byte every ECIES blob starts with.
	EciesVersion = 0x01

	// EciesOverhead is the fixed overhead of an ECIES blob over its
	// plaintext: version byte, ephemeral public key, and AEAD tag.
	EciesOverhead = 1 + 32 + box.Overhead
)

// EciesEncrypt encrypts plaintext for the holder of recipientPublic using
// hybrid encryption: a fresh ephemeral Curve25519 key pair, X25519 key
// agreement, and NaCl box AEAD. Every call generates a new ephemeral key, so
// identical plaintexts never produce identical blobs.
//
// Blob layout: version(1) || ephemeralPublicKey(32) || ciphertext || tag(16).
func EciesEncrypt(recipientPublic [32]byte, plaintext []byte) ([]byte, error) {
	ephPublic, ephPrivate, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral key: %w", err)
	}
	defer ZeroBytes(ephPrivate[:])

	nonce := eciesNonce(ephPublic, &recipientPublic)

	blob := make([]byte, 0, EciesOverhead+len(plaintext))
	blob = append(blob, EciesVersion)
	blob = append(blob, ephPublic[:]...)
	blob = box.Seal(blob, plaintext, &nonce, &recipientPublic, ephPrivate)

	logrus.WithFields(logrus.Fields{
		"function":         "EciesEncrypt",
		"recipient_prefix": fmt.Sprintf("%x", recipientPublic[:8]),
		"plaintext_len":    len(plaintext),
	}).Debug("Encrypted plaintext to ECIES blob")

	return blob, nil
}

// EciesDecrypt reverses EciesEncrypt with the recipient's private key.
// Returns ErrInvalidBlob for structural failures (truncation, unknown
// version) and ErrDecryptionFailed when authentication fails.
func EciesDecrypt(recipientPrivate [32]byte, blob []byte) ([]byte, error) {
	if len(blob) < EciesOverhead {
		return nil, fmt.Errorf("%w: ECIES blob too short (%d bytes)", ErrInvalidBlob, len(blob))
	}
	if blob[0] != EciesVersion {
		return nil, fmt.Errorf("%w: unknown ECIES version 0x%02x", ErrInvalidBlob, blob[0])
	}

	var ephPublic [32]byte
	copy(ephPublic[:], blob[1:33])

	recipient, err := FromSecretKey(recipientPrivate)
	if err != nil {
		return nil, err
	}
	defer WipeKeyPair(recipient)

	nonce := eciesNonce(&ephPublic, &recipient.Public)

	plaintext, ok := box.Open(nil, blob[33:], &nonce, &ephPublic, &recipientPrivate)
	if !ok {
		return nil, ErrDecryptionFailed
	}
	return plaintext, nil
}

// eciesNonce derives the AEAD nonce from the two public keys involved, as in
// the sealed-box construction. The ephemeral key is unique per blob, so the
// nonce never repeats for a given key.
func eciesNonce(ephPublic, recipientPublic *[32]byte) [24]byte {
	h := sha256.New()
	h.Write(ephPublic[:])
	h.Write(recipientPublic[:])
	var nonce [24]byte
	copy(nonce[:], h.Sum(nil))
	return nonce
}
