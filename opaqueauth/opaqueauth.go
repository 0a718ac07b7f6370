// Package opaqueauth derives the server-side OPAQUE credential material.
//
// Every server process must present identical PAKE parameters without any
// shared mutable state or out-of-band key distribution, so everything here
// is a deterministic, domain-separated HKDF derivation from a single master
// secret. The wire handshake itself (registration and login message
// exchange) lives in the HTTP layer; this package only supplies the
// deterministic derivations and the enumeration-resistant fake registration
// path.
package opaqueauth

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LOME-AI/hushbox-keycore/crypto"
)

const (
	oprfSeedInfo   = "hushbox/opaque/oprf-seed/v1"
	akeSeedInfo    = "hushbox/opaque/ake-seed/v1"
	akeKeyPairInfo = "hushbox/opaque/server-ake/v1"
)

// ErrEmptyMasterSecret is returned when credential derivation is attempted
// without a master secret.
var ErrEmptyMasterSecret = errors.New("opaque master secret is empty")

// ServerCredentials is the long-lived OPAQUE material a server instance
// reconstructs at startup: the OPRF seed and the authenticated-key-exchange
// key pair.
type ServerCredentials struct {
	OPRFSeed [32]byte
	KeyPair  crypto.KeyPair
}

// DeriveServerCredentials deterministically derives the server's OPAQUE
// credentials from the master secret. Every process derives identical
// values; the OPRF seed and AKE key pair are domain-separated so neither
// leaks anything about the other.
func DeriveServerCredentials(masterSecret []byte) (*ServerCredentials, error) {
	if len(masterSecret) == 0 {
		return nil, ErrEmptyMasterSecret
	}

	oprfSeed, err := crypto.DeriveKey(masterSecret, oprfSeedInfo)
	if err != nil {
		return nil, err
	}

	akeSeed, err := crypto.DeriveKey(masterSecret, akeSeedInfo)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(akeSeed[:])

	keyPair, err := crypto.DeriveKeyPairFromSeed(akeSeed[:], akeKeyPairInfo)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":      "DeriveServerCredentials",
		"server_prefix": fmt.Sprintf("%x", keyPair.Public[:8]),
	}).Info("Derived OPAQUE server credentials")

	return &ServerCredentials{
		OPRFSeed: oprfSeed,
		KeyPair:  *keyPair,
	}, nil
}
