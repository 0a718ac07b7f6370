// Package totp implements the time-based one-time password second factor:
// secret generation, encrypted at-rest storage of the secret, otpauth://
// provisioning URIs, and code generation/verification.
//
// Codes follow RFC 6238 with the common parameter set (SHA-1, 6 digits,
// 30-second step). Verification accepts one step of clock drift in either
// direction. Time is taken from an injectable crypto.TimeProvider so tests
// are deterministic.
package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/LOME-AI/hushbox-keycore/crypto"
)

const (
	// Step is the code validity window.
	Step = 30 * time.Second
	// Digits is the number of digits in a code.
	Digits = 6
	// secretSize is 160 bits per RFC 4226's recommendation for HMAC-SHA-1.
	secretSize = 20

	secretStorageInfo = "hushbox/totp-key/v1"
)

var b32 = base32.StdEncoding.WithPadding(base32.NoPadding)

// GenerateSecret creates a fresh base32-encoded TOTP secret.
func GenerateSecret() (string, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return "", fmt.Errorf("failed to generate TOTP secret: %w", err)
	}
	return b32.EncodeToString(secret), nil
}

// EncryptSecret encrypts a TOTP secret for storage under a key derived from
// the account private key, so the stored second factor is unreadable
// without the account key.
func EncryptSecret(accountPrivate [32]byte, secret string) ([]byte, error) {
	key, err := crypto.DeriveKey(accountPrivate[:], secretStorageInfo)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(key[:])

	return crypto.SymmetricEncrypt(key, []byte(secret))
}

// DecryptSecret reverses EncryptSecret.
func DecryptSecret(accountPrivate [32]byte, blob []byte) (string, error) {
	key, err := crypto.DeriveKey(accountPrivate[:], secretStorageInfo)
	if err != nil {
		return "", err
	}
	defer crypto.ZeroBytes(key[:])

	plaintext, err := crypto.SymmetricDecrypt(key, blob)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// ProvisionURI builds the otpauth:// URI an authenticator app enrolls from.
func ProvisionURI(account, issuer, secret string) string {
	label := url.PathEscape(issuer + ":" + account)
	params := url.Values{}
	params.Set("secret", secret)
	params.Set("issuer", issuer)
	params.Set("algorithm", "SHA1")
	params.Set("digits", fmt.Sprintf("%d", Digits))
	params.Set("period", fmt.Sprintf("%d", int(Step/time.Second)))
	return "otpauth://totp/" + label + "?" + params.Encode()
}

// GenerateCode computes the code for a secret at a given time.
func GenerateCode(secret string, when time.Time) (string, error) {
	secretBytes, err := decodeSecret(secret)
	if err != nil {
		return "", fmt.Errorf("invalid TOTP secret: %w", err)
	}
	defer crypto.ZeroBytes(secretBytes)

	counter := uint64(when.Unix() / int64(Step/time.Second))
	return hotp(secretBytes, counter), nil
}

// Verify checks a submitted code against the secret, allowing one step of
// drift in either direction. The comparison is constant-time per candidate.
func Verify(code, secret string, tp crypto.TimeProvider) bool {
	if tp == nil {
		tp = crypto.DefaultTimeProvider{}
	}

	code = strings.TrimSpace(code)
	if len(code) != Digits {
		return false
	}

	secretBytes, err := decodeSecret(secret)
	if err != nil {
		return false
	}
	defer crypto.ZeroBytes(secretBytes)

	counter := tp.Now().Unix() / int64(Step/time.Second)
	matched := false
	for offset := int64(-1); offset <= 1; offset++ {
		candidate := counter + offset
		if candidate < 0 {
			continue
		}
		expected := hotp(secretBytes, uint64(candidate))
		if subtle.ConstantTimeCompare([]byte(expected), []byte(code)) == 1 {
			matched = true
		}
	}
	return matched
}

// hotp implements RFC 4226 dynamic truncation over an 8-byte counter.
func hotp(secret []byte, counter uint64) string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0x0f
	trunc := binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff
	return fmt.Sprintf("%0*d", Digits, trunc%1000000)
}

func decodeSecret(secret string) ([]byte, error) {
	return b32.DecodeString(strings.ToUpper(strings.TrimSpace(secret)))
}
