package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
)

const confirmationDomain = "hushbox/epoch-confirm/v1"

// ConfirmationHash computes a one-way confirmation hash over a private key.
// A party that has unwrapped the key can verify it got the right bytes
// without re-running any public-key operation, and a corrupted rotation is
// detectable before the key is trusted for decryption.
func ConfirmationHash(privateKey [32]byte) [32]byte {
	h := sha256.New()
	h.Write([]byte(confirmationDomain))
	h.Write(privateKey[:])
	var sum [32]byte
	copy(sum[:], h.Sum(nil))
	return sum
}

// VerifyConfirmationHash recomputes the confirmation hash and compares it in
// constant time.
func VerifyConfirmationHash(privateKey [32]byte, expected [32]byte) bool {
	actual := ConfirmationHash(privateKey)
	return subtle.ConstantTimeCompare(actual[:], expected[:]) == 1
}
