package totp

import (
	"encoding/base32"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LOME-AI/hushbox-keycore/crypto"
)

func TestGenerateSecret(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	decoded, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, decoded, secretSize)

	other, err := GenerateSecret()
	require.NoError(t, err)
	assert.NotEqual(t, secret, other)
}

// RFC 6238 appendix B test vectors, truncated to 6 digits with the SHA-1
// 20-byte ASCII secret.
func TestGenerateCodeKnownVectors(t *testing.T) {
	secret := b32.EncodeToString([]byte("12345678901234567890"))

	cases := []struct {
		unix int64
		code string
	}{
		{unix: 59, code: "287082"},
		{unix: 1111111109, code: "081804"},
		{unix: 1234567890, code: "005924"},
		{unix: 2000000000, code: "279037"},
	}

	for _, tc := range cases {
		code, err := GenerateCode(secret, time.Unix(tc.unix, 0))
		require.NoError(t, err)
		assert.Equal(t, tc.code, code, "t=%d", tc.unix)
	}
}

func TestVerifyWindow(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	now := time.Unix(1700000000, 0)
	tp := crypto.FixedTimeProvider{Time: now}

	current, err := GenerateCode(secret, now)
	require.NoError(t, err)
	previous, err := GenerateCode(secret, now.Add(-Step))
	require.NoError(t, err)
	next, err := GenerateCode(secret, now.Add(Step))
	require.NoError(t, err)
	stale, err := GenerateCode(secret, now.Add(-2*Step))
	require.NoError(t, err)

	assert.True(t, Verify(current, secret, tp), "current step")
	assert.True(t, Verify(previous, secret, tp), "one step behind")
	assert.True(t, Verify(next, secret, tp), "one step ahead")
	if stale != current && stale != previous && stale != next {
		assert.False(t, Verify(stale, secret, tp), "two steps behind")
	}
}

func TestVerifyRejectsBadInput(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)
	tp := crypto.FixedTimeProvider{Time: time.Unix(1700000000, 0)}

	assert.False(t, Verify("12345", secret, tp), "short code")
	assert.False(t, Verify("1234567", secret, tp), "long code")
	assert.False(t, Verify("000000", "!!not-base32!!", tp), "bad secret")
}

func TestSecretEncryptionRoundTrip(t *testing.T) {
	accountKey, err := crypto.GenerateKeyPair()
	require.NoError(t, err)

	secret, err := GenerateSecret()
	require.NoError(t, err)

	blob, err := EncryptSecret(accountKey.Private, secret)
	require.NoError(t, err)

	decrypted, err := DecryptSecret(accountKey.Private, blob)
	require.NoError(t, err)
	assert.Equal(t, secret, decrypted)

	other, err := crypto.GenerateKeyPair()
	require.NoError(t, err)
	_, err = DecryptSecret(other.Private, blob)
	assert.ErrorIs(t, err, crypto.ErrDecryptionFailed)
}

func TestProvisionURI(t *testing.T) {
	secret, err := GenerateSecret()
	require.NoError(t, err)

	uri := ProvisionURI("user@hushbox.example", "HushBox", secret)

	wantPrefix := "otpauth://totp/" + url.PathEscape("HushBox:user@hushbox.example") + "?"
	assert.True(t, strings.HasPrefix(uri, wantPrefix))
	assert.Contains(t, uri, "secret="+secret)
	assert.Contains(t, uri, "issuer=HushBox")
	assert.Contains(t, uri, "digits=6")
	assert.Contains(t, uri, "period=30")
}
