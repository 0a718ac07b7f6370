package crypto

import "errors"

var (
	// ErrInvalidBlob is returned when a blob is malformed, truncated, or
	// carries an unknown version byte. Structural validation happens before
	// any cryptographic operation.
	ErrInvalidBlob = errors.New("invalid blob")

	// ErrDecryptionFailed is returned when AEAD authentication fails. The
	// caller cannot distinguish a wrong key from tampered ciphertext, and
	// must not try.
	ErrDecryptionFailed = errors.New("decryption failed")

	// ErrKeyDerivation is returned when a derivation function receives an
	// invalid seed or input.
	ErrKeyDerivation = errors.New("key derivation failed")
)
