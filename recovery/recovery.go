// Package recovery generates and validates 12-word BIP-39 recovery phrases
// and derives wrap-key seeds from them.
//
// The phrase is the user's offline fallback credential: it protects a second,
// independent wrap of the account private key, so losing the password never
// means losing the account. Phrases are only ever handled client-side.
package recovery

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// PhraseWords is the number of words in a recovery phrase (128-bit entropy).
const PhraseWords = 12

// ErrInvalidPhrase is returned when a mnemonic fails checksum or word-list
// validation.
var ErrInvalidPhrase = errors.New("invalid recovery phrase")

// GeneratePhrase creates a fresh 12-word English mnemonic from system
// randomness.
func GeneratePhrase() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}

	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("failed to build mnemonic: %w", err)
	}
	return mnemonic, nil
}

// ValidatePhrase reports whether a phrase is a well-formed BIP-39 mnemonic.
// Surrounding whitespace and repeated separators are tolerated.
func ValidatePhrase(phrase string) bool {
	return bip39.IsMnemonicValid(normalize(phrase))
}

// SeedFromPhrase deterministically derives the 64-byte BIP-39 seed for a
// phrase. The same phrase always yields the same seed, which is what makes
// the recovery wrap re-derivable on any device.
func SeedFromPhrase(phrase string) ([]byte, error) {
	normalized := normalize(phrase)
	if !bip39.IsMnemonicValid(normalized) {
		return nil, ErrInvalidPhrase
	}
	return bip39.NewSeed(normalized, ""), nil
}

func normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}
