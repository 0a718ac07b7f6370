package crypto

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T, info string) [32]byte {
	t.Helper()
	key, err := DeriveKey([]byte("test secret material"), info)
	require.NoError(t, err)
	return key
}

func TestSymmetricRoundTrip(t *testing.T) {
	key := testKey(t, "hushbox/test/symmetric")

	cases := []struct {
		name      string
		plaintext []byte
	}{
		{name: "short", plaintext: []byte("hello")},
		{name: "empty", plaintext: []byte{}},
		{name: "large", plaintext: bytes.Repeat([]byte{0xab}, 150000)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			blob, err := SymmetricEncrypt(key, tc.plaintext)
			require.NoError(t, err)
			assert.Equal(t, len(tc.plaintext)+SymmetricOverhead, len(blob))

			plaintext, err := SymmetricDecrypt(key, blob)
			require.NoError(t, err)
			assert.Equal(t, tc.plaintext, plaintext)
		})
	}
}

func TestSymmetricWrongKey(t *testing.T) {
	key := testKey(t, "hushbox/test/symmetric")
	otherKey := testKey(t, "hushbox/test/other")

	blob, err := SymmetricEncrypt(key, []byte("secret"))
	require.NoError(t, err)

	_, err = SymmetricDecrypt(otherKey, blob)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestSymmetricTamperDetection(t *testing.T) {
	key := testKey(t, "hushbox/test/symmetric")

	blob, err := SymmetricEncrypt(key, []byte("integrity matters"))
	require.NoError(t, err)

	for i := range blob {
		tampered := make([]byte, len(blob))
		copy(tampered, blob)
		tampered[i] ^= 0x01

		_, err := SymmetricDecrypt(key, tampered)
		require.ErrorIs(t, err, ErrDecryptionFailed, "byte %d", i)
	}
}

func TestSymmetricDecryptTruncated(t *testing.T) {
	key := testKey(t, "hushbox/test/symmetric")

	_, err := SymmetricDecrypt(key, make([]byte, SymmetricOverhead-1))
	assert.ErrorIs(t, err, ErrInvalidBlob)
}

func TestConfirmationHash(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	require.NoError(t, err)

	hash := ConfirmationHash(keyPair.Private)
	assert.True(t, VerifyConfirmationHash(keyPair.Private, hash))

	var wrong [32]byte
	copy(wrong[:], hash[:])
	wrong[0] ^= 0x01
	assert.False(t, VerifyConfirmationHash(keyPair.Private, wrong))

	other, err := GenerateKeyPair()
	require.NoError(t, err)
	assert.False(t, VerifyConfirmationHash(other.Private, hash))
}
