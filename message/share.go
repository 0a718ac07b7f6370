package message

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LOME-AI/hushbox-keycore/codec"
	"github.com/LOME-AI/hushbox-keycore/crypto"
)

// shareKeyInfo domain-separates share keys from every other derived key, so
// a share secret can never unwrap epoch material and an epoch key can never
// open a share blob.
const shareKeyInfo = "hushbox/share-key/v1"

// Share is an exported copy of a single message, encrypted under a fresh
// random secret with no relation to any epoch or account key. The secret
// travels in a URL fragment; the blob is stored server-side.
type Share struct {
	Secret [32]byte
	Blob   []byte
}

// CreateShare encrypts message text under a fresh 32-byte share secret.
// The blob uses the symmetric format, not ECIES, as an isolation boundary
// between the sharing scheme and the conversation scheme.
func CreateShare(text string) (*Share, error) {
	secret, err := crypto.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share secret: %w", err)
	}

	key, err := crypto.DeriveKey(secret[:], shareKeyInfo)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(key[:])

	blob, err := crypto.SymmetricEncrypt(key, codec.EncodeForEncryption(text))
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt share: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "CreateShare",
		"blob_len": len(blob),
	}).Debug("Created single-message share")

	return &Share{Secret: secret, Blob: blob}, nil
}

// DecryptShare reverses CreateShare given the share secret. A wrong secret
// or a blob from any other scheme fails with crypto.ErrDecryptionFailed.
func DecryptShare(secret [32]byte, blob []byte) (string, error) {
	key, err := crypto.DeriveKey(secret[:], shareKeyInfo)
	if err != nil {
		return "", err
	}
	defer crypto.ZeroBytes(key[:])

	payload, err := crypto.SymmetricDecrypt(key, blob)
	if err != nil {
		return "", err
	}
	defer crypto.ZeroBytes(payload)

	return codec.DecodeFromDecryption(payload)
}
