package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestGenerateKeyPair(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	if keyPair == nil {
		t.Fatal("GenerateKeyPair() returned nil key pair")
	}

	if isZeroKey(keyPair.Public) {
		t.Error("GenerateKeyPair() returned zero public key")
	}

	if isZeroKey(keyPair.Private) {
		t.Error("GenerateKeyPair() returned zero private key")
	}

	keyPair2, _ := GenerateKeyPair()
	if bytes.Equal(keyPair.Public[:], keyPair2.Public[:]) {
		t.Error("Multiple GenerateKeyPair() calls produced identical public keys")
	}
}

func TestFromSecretKeyRecomputesPublicKey(t *testing.T) {
	keyPair, err := GenerateKeyPair()
	if err != nil {
		t.Fatalf("GenerateKeyPair() error: %v", err)
	}

	rebuilt, err := FromSecretKey(keyPair.Private)
	if err != nil {
		t.Fatalf("FromSecretKey() error: %v", err)
	}

	if rebuilt.Public != keyPair.Public {
		t.Error("FromSecretKey() did not recompute the original public key")
	}
}

func TestFromSecretKeyRejectsZeroKey(t *testing.T) {
	_, err := FromSecretKey([32]byte{})
	if !errors.Is(err, ErrKeyDerivation) {
		t.Fatalf("FromSecretKey(zero) error = %v, want ErrKeyDerivation", err)
	}
}

func TestDeriveKeyPairFromSeed(t *testing.T) {
	seed := make([]byte, 32)
	for i := range seed {
		seed[i] = byte(i + 1)
	}

	cases := []struct {
		name  string
		seed  []byte
		info  string
		valid bool
	}{
		{name: "valid seed", seed: seed, info: "test/v1", valid: true},
		{name: "short seed", seed: seed[:16], info: "test/v1", valid: false},
		{name: "empty seed", seed: nil, info: "test/v1", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			kp, err := DeriveKeyPairFromSeed(tc.seed, tc.info)

			if !tc.valid {
				if !errors.Is(err, ErrKeyDerivation) {
					t.Fatalf("DeriveKeyPairFromSeed() error = %v, want ErrKeyDerivation", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("DeriveKeyPairFromSeed() unexpected error: %v", err)
			}

			// Deterministic: same inputs, same pair.
			again, err := DeriveKeyPairFromSeed(tc.seed, tc.info)
			if err != nil {
				t.Fatalf("DeriveKeyPairFromSeed() second call error: %v", err)
			}
			if kp.Private != again.Private || kp.Public != again.Public {
				t.Error("DeriveKeyPairFromSeed() is not deterministic")
			}

			// Domain separation: different info, unrelated pair.
			other, err := DeriveKeyPairFromSeed(tc.seed, "test/v2")
			if err != nil {
				t.Fatalf("DeriveKeyPairFromSeed() with other info error: %v", err)
			}
			if kp.Private == other.Private {
				t.Error("different info strings produced the same private key")
			}
		})
	}
}

func TestDeriveKeyDomainSeparation(t *testing.T) {
	secret := []byte("shared input keying material")

	key1, err := DeriveKey(secret, "hushbox/test/a")
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}
	key2, err := DeriveKey(secret, "hushbox/test/b")
	if err != nil {
		t.Fatalf("DeriveKey() error: %v", err)
	}

	if key1 == key2 {
		t.Error("different info strings produced the same key")
	}

	key1Again, _ := DeriveKey(secret, "hushbox/test/a")
	if key1 != key1Again {
		t.Error("DeriveKey() is not deterministic")
	}
}

func TestDeriveKeyRejectsEmptySecret(t *testing.T) {
	_, err := DeriveKey(nil, "hushbox/test")
	if !errors.Is(err, ErrKeyDerivation) {
		t.Fatalf("DeriveKey(nil) error = %v, want ErrKeyDerivation", err)
	}
}

func TestGenerateSecret(t *testing.T) {
	s1, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error: %v", err)
	}
	s2, err := GenerateSecret()
	if err != nil {
		t.Fatalf("GenerateSecret() error: %v", err)
	}
	if s1 == s2 {
		t.Error("two GenerateSecret() calls produced identical secrets")
	}
}
