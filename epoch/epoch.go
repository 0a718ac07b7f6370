package epoch

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/LOME-AI/hushbox-keycore/crypto"
)

// chainKeyInfo derives the symmetric key protecting a chain link from the
// enclosing epoch's private key.
const chainKeyInfo = "hushbox/chain-key/v1"

// Member identifies one party to wrap an epoch key for. VisibleFrom is
// informational metadata for the calling layer's message filtering; the
// crypto layer stamps it onto the wrap and never interprets it.
type Member struct {
	PublicKey   [32]byte
	VisibleFrom uint64
}

// MemberWrap is one recipient's encrypted copy of an epoch private key.
type MemberWrap struct {
	MemberPublicKey [32]byte
	Wrap            []byte
	VisibleFrom     uint64
}

// Epoch is one generation of a conversation's message-encryption key.
// Epochs are immutable once created; rotation always builds a new one.
type Epoch struct {
	PublicKey        [32]byte
	PrivateKey       [32]byte
	ConfirmationHash [32]byte

	// ChainLink is the previous epoch's private key encrypted under this
	// epoch's key. Nil on the first epoch.
	ChainLink []byte

	MemberWraps []MemberWrap
}

// ErrNoMembers is returned when an epoch would be created with nobody able
// to read it.
var ErrNoMembers = errors.New("epoch requires at least one member")

// CreateFirstEpoch generates a conversation's initial epoch and wraps its
// private key for every listed member. The first epoch has no chain link.
func CreateFirstEpoch(members []Member) (*Epoch, error) {
	ep, err := newEpoch(members)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"function":     "CreateFirstEpoch",
		"member_count": len(members),
		"epoch_prefix": fmt.Sprintf("%x", ep.PublicKey[:8]),
	}).Info("Created first conversation epoch")

	return ep, nil
}

// Rotate creates the next epoch after previousPrivate's and wraps the new
// key for exactly the given members. Members omitted here receive no wrap
// and lose all forward access; their historical keys stay valid for content
// from before the rotation. The new epoch's chain link encrypts
// previousPrivate under the new key, preserving backward traversal.
func Rotate(previousPrivate [32]byte, members []Member) (*Epoch, error) {
	ep, err := newEpoch(members)
	if err != nil {
		return nil, err
	}

	chainKey, err := crypto.DeriveKey(ep.PrivateKey[:], chainKeyInfo)
	if err != nil {
		return nil, err
	}
	defer crypto.ZeroBytes(chainKey[:])

	ep.ChainLink, err = crypto.SymmetricEncrypt(chainKey, previousPrivate[:])
	if err != nil {
		return nil, fmt.Errorf("failed to build chain link: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"function":     "Rotate",
		"member_count": len(members),
		"epoch_prefix": fmt.Sprintf("%x", ep.PublicKey[:8]),
	}).Info("Rotated conversation epoch")

	return ep, nil
}

// newEpoch generates a key pair, its confirmation hash, and a wrap per
// member.
func newEpoch(members []Member) (*Epoch, error) {
	if len(members) == 0 {
		return nil, ErrNoMembers
	}

	keyPair, err := crypto.GenerateKeyPair()
	if err != nil {
		return nil, fmt.Errorf("failed to generate epoch key: %w", err)
	}

	ep := &Epoch{
		PublicKey:        keyPair.Public,
		PrivateKey:       keyPair.Private,
		ConfirmationHash: crypto.ConfirmationHash(keyPair.Private),
		MemberWraps:      make([]MemberWrap, 0, len(members)),
	}

	for _, member := range members {
		wrap, err := WrapForMember(ep.PrivateKey, member.PublicKey, member.VisibleFrom)
		if err != nil {
			return nil, err
		}
		ep.MemberWraps = append(ep.MemberWraps, wrap)
	}

	return ep, nil
}

// WrapForMember issues a wrap of the current epoch's private key for one
// member. Used during epoch creation and for late joiners; once a wrap
// exists there is no crypto-level distinction between original and
// late-joined members.
func WrapForMember(currentPrivate [32]byte, memberPublic [32]byte, visibleFrom uint64) (MemberWrap, error) {
	wrap, err := crypto.EciesEncrypt(memberPublic, currentPrivate[:])
	if err != nil {
		return MemberWrap{}, fmt.Errorf("failed to wrap epoch key: %w", err)
	}

	return MemberWrap{
		MemberPublicKey: memberPublic,
		Wrap:            wrap,
		VisibleFrom:     visibleFrom,
	}, nil
}

// UnwrapKey recovers an epoch private key from a member wrap using the
// member's private key. Fails with crypto.ErrDecryptionFailed if the wrap
// was issued to a different key.
func UnwrapKey(memberPrivate [32]byte, wrap []byte) ([32]byte, error) {
	plaintext, err := crypto.EciesDecrypt(memberPrivate, wrap)
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

// TraverseChainLink decrypts a chain link with the current epoch's private
// key, yielding the immediately preceding epoch's private key. Repeated
// application walks arbitrarily far back; callers stop at the first epoch's
// nil link. Access policy for how far back a client may look lives in the
// calling layer.
func TraverseChainLink(currentPrivate [32]byte, chainLink []byte) ([32]byte, error) {
	chainKey, err := crypto.DeriveKey(currentPrivate[:], chainKeyInfo)
	if err != nil {
		return [32]byte{}, err
	}
	defer crypto.ZeroBytes(chainKey[:])

	plaintext, err := crypto.SymmetricDecrypt(chainKey, chainLink)
	if err != nil {
		return [32]byte{}, err
	}
	defer crypto.ZeroBytes(plaintext)

	if len(plaintext) != crypto.KeySize {
		return [32]byte{}, fmt.Errorf("%w: chain link payload has length %d", crypto.ErrInvalidBlob, len(plaintext))
	}

	var key [32]byte
	copy(key[:], plaintext)
	return key, nil
}

// VerifyConfirmation checks an epoch private key against its confirmation
// hash, detecting a misderived or tampered key before it is trusted for
// decryption attempts.
func VerifyConfirmation(privateKey [32]byte, confirmationHash [32]byte) bool {
	return crypto.VerifyConfirmationHash(privateKey, confirmationHash)
}
