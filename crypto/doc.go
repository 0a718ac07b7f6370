// Package crypto implements the cryptographic primitives for the HushBox
// key-management core.
//
// This package provides the foundation the higher-level packages build on:
// Curve25519 key pairs, deterministic HKDF-based key derivation, hybrid
// public-key encryption (ECIES), symmetric authenticated encryption, key
// confirmation hashing, and memory-safe handling of secret material.
//
// # Core Types
//
//   - [KeyPair]: Curve25519 key pair for ECIES and key agreement
//   - ECIES blobs: versioned byte blobs produced by [EciesEncrypt]
//   - Symmetric blobs: nonce-prefixed byte blobs produced by [SymmetricEncrypt]
//
// # Encryption
//
// ECIES is used wherever a recipient is identified by a public key (message
// storage, epoch member wraps, shared-link wraps):
//
//	blob, err := crypto.EciesEncrypt(recipientPublic, plaintext)
//	plaintext, err := crypto.EciesDecrypt(recipientPrivate, blob)
//
// Symmetric encryption is used wherever both sides hold the same secret
// (chain links, account wraps, TOTP secrets, message shares). Keys for
// symmetric encryption are always derived with [DeriveKey], never raw
// secrets:
//
//	key, _ := crypto.DeriveKey(secret, "hushbox/share-key/v1")
//	blob, err := crypto.SymmetricEncrypt(key, plaintext)
//
// # Determinism and Domain Separation
//
// [DeriveKeyPairFromSeed] and [DeriveKey] are deterministic: the same
// (seed, info) input always yields the same output, and different info
// strings yield unrelated outputs from the same seed. Shared links and the
// OPAQUE server rely on this to re-derive keys across processes with no
// shared state.
//
// # Errors
//
// All failures surface as one of three sentinels, matched with errors.Is:
//
//   - [ErrInvalidBlob]: structural validation failed before any cryptography
//   - [ErrDecryptionFailed]: AEAD authentication failed (wrong key or tamper)
//   - [ErrKeyDerivation]: invalid seed or input to a derivation function
//
// The package never degrades to returning unauthenticated plaintext; a
// single flipped bit anywhere in a blob fails decryption outright.
//
// # Secure Memory Handling
//
// Intermediate secret material is wiped after use:
//
//	defer crypto.SecureWipe(sharedSecret)
//	defer crypto.WipeKeyPair(keyPair)
//
// # Thread Safety
//
// Every function in this package is a pure function over byte buffers (plus
// system randomness) and is safe for unrestricted concurrent use.
package crypto
