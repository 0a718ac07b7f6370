package epoch

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LOME-AI/hushbox-keycore/crypto"
)

// linkKeyInfo derives a shared link's key pair from its secret.
const linkKeyInfo = "link-keypair-v1"

// SharedLink is a read capability for a conversation, carried entirely in
// Secret. The key pair is deterministically re-derivable from the secret, so
// a link holder needs nothing else to unwrap the epoch key. The secret is
// meant to travel in a URL fragment and never reach a server.
type SharedLink struct {
	Secret    [32]byte
	PublicKey [32]byte

	// Wrap is the epoch private key encrypted to the link's derived public
	// key, same format as any member wrap.
	Wrap []byte
}

// CreateSharedLink mints a fresh link capability for the epoch whose private
// key is given. Revocation is structural: exclude the link's public key from
// the member set of the next rotation. A revoked link keeps access to epochs
// issued before revocation, the same contract as a removed member.
func CreateSharedLink(epochPrivate [32]byte) (*SharedLink, error) {
	secret, err := crypto.GenerateSecret()
	if err != nil {
		return nil, fmt.Errorf("failed to generate link secret: %w", err)
	}

	keyPair, err := DeriveKeysFromLinkSecret(secret)
	if err != nil {
		return nil, err
	}
	defer crypto.WipeKeyPair(keyPair)

	wrap, err := crypto.EciesEncrypt(keyPair.Public, epochPrivate[:])
	if err != nil {
		return nil, fmt.Errorf("failed to wrap epoch key for link: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":    "CreateSharedLink",
		"link_prefix": fmt.Sprintf("%x", keyPair.Public[:8]),
	}).Info("Created shared link")

	return &SharedLink{
		Secret:    secret,
		PublicKey: keyPair.Public,
		Wrap:      wrap,
	}, nil
}

// DeriveKeysFromLinkSecret re-derives a link's key pair from its secret.
// This is the entry point a link holder uses with only the URL fragment.
func DeriveKeysFromLinkSecret(secret [32]byte) (*crypto.KeyPair, error) {
	return crypto.DeriveKeyPairFromSeed(secret[:], linkKeyInfo)
}
