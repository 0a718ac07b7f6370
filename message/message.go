// Package message encrypts conversation messages for storage and provides
// isolated single-message shares.
//
// Stored messages are encrypted to the conversation's current epoch public
// key via ECIES, with codec framing underneath, so any holder of the epoch
// private key (directly unwrapped or recovered through chain traversal) can
// decrypt. Shares use a deliberately different, symmetric-only format so the
// two schemes can never decrypt each other's blobs.
package message

import (
	"fmt"

	"github.com/LOME-AI/hushbox-keycore/codec"
	"github.com/LOME-AI/hushbox-keycore/crypto"
)

// EncryptForStorage encrypts message text to an epoch public key for
// at-rest storage. The resulting blob is opaque to the persistence layer.
func EncryptForStorage(epochPublic [32]byte, text string) ([]byte, error) {
	payload := codec.EncodeForEncryption(text)
	blob, err := crypto.EciesEncrypt(epochPublic, payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt message: %w", err)
	}
	return blob, nil
}

// Decrypt reverses EncryptForStorage with the epoch private key.
func Decrypt(epochPrivate [32]byte, blob []byte) (string, error) {
	payload, err := crypto.EciesDecrypt(epochPrivate, blob)
	if err != nil {
		return "", err
	}
	defer crypto.ZeroBytes(payload)

	text, err := codec.DecodeFromDecryption(payload)
	if err != nil {
		return "", err
	}
	return text, nil
}
