package crypto

import (
	"crypto/rand"
	"crypto/sha256"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"
	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/box"
)

// KeyPair represents a Curve25519 key pair. The public key is always
// recomputable from the private key.
type KeyPair struct {
	Public  [32]byte
	Private [32]byte
}

// KeySize is the size in bytes of public keys, private keys, seeds, and
// derived symmetric keys.
const KeySize = 32

// GenerateKeyPair creates a new random Curve25519 key pair.
func GenerateKeyPair() (*KeyPair, error) {
	publicKey, privateKey, err := box.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate key pair: %w", err)
	}

	return &KeyPair{
		Public:  *publicKey,
		Private: *privateKey,
	}, nil
}

// FromSecretKey rebuilds a key pair from an existing private key by
// recomputing the public key on the curve.
func FromSecretKey(secretKey [32]byte) (*KeyPair, error) {
	if isZeroKey(secretKey) {
		return nil, fmt.Errorf("%w: all-zero secret key", ErrKeyDerivation)
	}

	public, err := curve25519.X25519(secretKey[:], curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	kp := &KeyPair{Private: secretKey}
	copy(kp.Public[:], public)
	return kp, nil
}

// DeriveKeyPairFromSeed deterministically derives a key pair from a 32-byte
// seed. The same (seed, info) always yields the same pair; different info
// strings yield unrelated pairs from the same seed.
//
// Shared links derive their key pair from the link secret this way, and the
// OPAQUE server derives its long-term AKE key pair from the master secret.
func DeriveKeyPairFromSeed(seed []byte, info string) (*KeyPair, error) {
	if len(seed) != KeySize {
		return nil, fmt.Errorf("%w: seed must be %d bytes, got %d", ErrKeyDerivation, KeySize, len(seed))
	}

	var private [32]byte
	reader := hkdf.New(sha256.New, seed, nil, []byte(info))
	if _, err := io.ReadFull(reader, private[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}

	// Clamp per RFC 7748 so the scalar is a valid Curve25519 private key.
	private[0] &= 248
	private[31] &= 127
	private[31] |= 64

	return FromSecretKey(private)
}

// DeriveKey deterministically derives a 32-byte symmetric key from a secret
// with HKDF-SHA-256 under a domain-separation info string.
func DeriveKey(secret []byte, info string) ([32]byte, error) {
	var key [32]byte
	if len(secret) == 0 {
		return key, fmt.Errorf("%w: empty secret", ErrKeyDerivation)
	}

	reader := hkdf.New(sha256.New, secret, nil, []byte(info))
	if _, err := io.ReadFull(reader, key[:]); err != nil {
		return [32]byte{}, fmt.Errorf("%w: %v", ErrKeyDerivation, err)
	}
	return key, nil
}

// GenerateSecret produces 32 bytes of fresh system randomness, used for link
// secrets and message-share secrets.
func GenerateSecret() ([32]byte, error) {
	var secret [32]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return [32]byte{}, fmt.Errorf("failed to generate secret: %w", err)
	}
	return secret, nil
}

// isZeroKey checks if a key consists of all zeros.
func isZeroKey(key [32]byte) bool {
	for _, b := range key {
		if b != 0 {
			return false
		}
	}
	return true
}
