// Package account manages custody of the long-term account key pair.
//
// The account private key is generated once and never stored in cleartext:
// it exists only transiently in memory after an unwrap. Two independent
// symmetric wraps protect the same key, one under a key derived from the
// password export key (produced by the OPAQUE login, opaque to this
// package) and one under a key derived from the 12-word recovery phrase.
// Either wrap alone recovers the key, and replacing one never touches the
// other.
package account

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LOME-AI/hushbox-keycore/crypto"
	"github.com/LOME-AI/hushbox-keycore/recovery"
)

const (
	passwordWrapInfo = "hushbox/wrap/password/v1"
	recoveryWrapInfo = "hushbox/wrap/recovery/v1"
)

// Account holds the public key and the two independently decryptable wraps
// of the private key produced at creation. RecoveryPhrase is surfaced once
// for the user to write down; the caller must not persist it.
type Account struct {
	PublicKey                 [32]byte
	PasswordWrappedPrivateKey []byte
	RecoveryWrappedPrivateKey []byte
	RecoveryPhrase            string
}

// Create generates a new account key pair and wraps its private key twice:
// under the password export key and under a freshly generated recovery
// phrase.
func Create(passwordExportKey []byte) (*Account, error) {
	keyPair, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account key: %w", err)
	}
	defer crypto.WipeKeyPair(keyPair)

	passwordWrap, err := wrapUnderSecret(keyPair.Private, passwordExportKey, passwordWrapInfo)
	if err != nil {
		return nil, err
	}

	phrase, recoveryWrap, err := wrapUnderNewPhrase(keyPair.Private)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":       "Create",
		"account_prefix": fmt.Sprintf("%x", keyPair.Public[:8]),
	}).Info("Created account key pair with password and recovery wraps")

	return &Account{
		PublicKey:                 keyPair.Public,
		PasswordWrappedPrivateKey: passwordWrap,
		RecoveryWrappedPrivateKey: recoveryWrap,
		RecoveryPhrase:            phrase,
	}, nil
}

// UnwrapWithPassword recovers the account private key from its password
// wrap. A wrong export key fails with crypto.ErrDecryptionFailed.
func UnwrapWithPassword(passwordExportKey []byte, wrappedBlob []byte) ([32]byte, error) {
	return unwrapUnderSecret(passwordExportKey, passwordWrapInfo, wrappedBlob)
}

// RecoverFromMnemonic recovers the account private key from its recovery
// wrap using the phrase. An invalid phrase fails before any decryption; a
// valid but wrong phrase fails with crypto.ErrDecryptionFailed.
func RecoverFromMnemonic(phrase string, wrappedBlob []byte) ([32]byte, error) {
	seed, err := recovery.SeedFromPhrase(phrase)
	if err != nil {
		return [32]byte{}, err
	}
	defer crypto.ZeroBytes(seed)

	return unwrapUnderSecret(seed, recoveryWrapInfo, wrappedBlob)
}

// RewrapForPasswordChange re-encrypts the private key under a new password
// export key. The recovery wrap is untouched; the old password wrap becomes
// unusable only because the caller overwrites it with the returned blob.
func RewrapForPasswordChange(privateKey [32]byte, newExportKey []byte) ([]byte, error) {
	wrap, err := wrapUnderSecret(privateKey, newExportKey, passwordWrapInfo)
	if err != nil {
		return nil, err
	}

	logrus.WithField("function", "RewrapForPasswordChange").Info("Re-wrapped account key for password change")
	return wrap, nil
}

// RegenerateRecoveryPhrase mints a new phrase and a matching recovery wrap
// of the private key. The password wrap is untouched.
func RegenerateRecoveryPhrase(privateKey [32]byte) (phrase string, wrappedBlob []byte, err error) {
	phrase, wrappedBlob, err = wrapUnderNewPhrase(privateKey)
	if err != nil {
		return "", nil, err
	}

	logrus.WithField("function", "RegenerateRecoveryPhrase").Info("Regenerated recovery phrase and wrap")
	return phrase, wrappedBlob, nil
}

func wrapUnderNewPhrase(privateKey [32]byte) (string, []byte, error) {
	phrase, err := recovery.GeneratePhrase()
	if err != nil {
		return "", nil, err
	}

	seed, err := recovery.SeedFromPhrase(phrase)
	if err != nil {
		return "", nil, err
	}
	defer crypto.ZeroBytes(seed)

	wrap, err := wrapUnderSecret(privateKey, seed, recoveryWrapInfo)
	if err != nil {
		return "", nil, err
	}
	return phrase, wrap, nil
}

func wrapUnderSecret(privateKey [32]byte, secret []byte, info string) ([]byte, error) {
	wrapKey, err := crypto.DeriveKey(secret, info)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(wrapKey[:])

	wrap, err := crypto.SymmetricEncrypt(wrapKey, privateKey[:])
	if err != nil {
		return nil, fmt.Errorf("failed to wrap account key: %w", err)
	}
	return wrap, nil
}

func unwrapUnderSecret(secret []byte, info string, wrappedBlob []byte) ([32]byte, error) {
	wrapKey, err := crypto.DeriveKey(secret, info)
	if err != nil {
		return [32]byte{}, err
	}
	defer crypto.ZeroBytes(wrapKey[:])

	plaintext, err := crypto.SymmetricDecrypt(wrapKey, wrappedBlob)
	if err != nil {
		return [32]byte{}, err
	}
	defer crypto.ZeroBytes(plaintext)

	if len(plaintext) != crypto.KeySize {
		return [32]byte{}, fmt.Errorf("%w: wrapped key has length %d", crypto.ErrInvalidBlob, len(plaintext))
	}

	var key [32]byte
	copy(key[:], plaintext)
	return key, nil
}
