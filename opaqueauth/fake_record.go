package opaqueauth

import (
	"crypto/sha256"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/hkdf"

	"github.com/LOME-AI/hushbox-keycore/crypto"
)

const (
	fakeRecordInfo = "hushbox/opaque/fake-record/v1"
	fakeClientInfo = "hushbox/opaque/fake-client/v1"

	// envelopeSize matches the envelope length of a real registration
	// record, so fake and real records are indistinguishable in shape.
	envelopeSize = 96
)

// RegistrationRecord is the server-stored shape of an OPAQUE registration:
// the client's public key, the masking key, and the sealed envelope. Fake
// records produced here are structurally identical to real ones.
type RegistrationRecord struct {
	ClientPublicKey [32]byte
	MaskingKey      [32]byte
	Envelope        []byte
}

// FakeRecordCache memoizes fake registration records per
// (masterSecret, serverIdentifier). The derivation is pure, so concurrent
// first-time computation is safe; the cache only avoids repeating the work.
// Construct one at process startup and inject it wherever authentication
// attempts for unknown accounts are answered.
type FakeRecordCache struct {
	mu      sync.RWMutex
	records map[[32]byte]*RegistrationRecord
}

// NewFakeRecordCache creates an empty cache.
func NewFakeRecordCache() *FakeRecordCache {
	return &FakeRecordCache{
		records: make(map[[32]byte]*RegistrationRecord),
	}
}

// FakeRegistrationRecord returns a stable fake registration record for a
// non-existent account, so authentication attempts can be answered in
// constant shape and account existence never leaks through response
// structure. The record depends only on (masterSecret, serverIdentifier)
// and is identical across processes and restarts.
func (c *FakeRecordCache) FakeRegistrationRecord(masterSecret, serverIdentifier []byte) (*RegistrationRecord, error) {
	if len(masterSecret) == 0 {
		return nil, ErrEmptyMasterSecret
	}

	key := cacheKey(masterSecret, serverIdentifier)

	c.mu.RLock()
	record, ok := c.records[key]
	c.mu.RUnlock()
	if ok {
		return record, nil
	}

	record, err := deriveFakeRecord(masterSecret, serverIdentifier)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	// A concurrent caller may have derived the same record; both results
	// are identical, so either may win.
	if existing, ok := c.records[key]; ok {
		record = existing
	} else {
		c.records[key] = record
	}
	c.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":   "FakeRegistrationRecord",
		"identifier": string(serverIdentifier),
	}).Debug("Derived fake registration record")

	return record, nil
}

// Len reports the number of memoized records, for tests and metrics.
func (c *FakeRecordCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

func deriveFakeRecord(masterSecret, serverIdentifier []byte) (*RegistrationRecord, error) {
	info := append([]byte(fakeRecordInfo), serverIdentifier...)
	reader := hkdf.New(sha256.New, masterSecret, nil, info)

	var clientSeed [32]byte
	record := &RegistrationRecord{Envelope: make([]byte, envelopeSize)}

	if _, err := io.ReadFull(reader, clientSeed[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrKeyDerivation, err)
	}
	if _, err := io.ReadFull(reader, record.MaskingKey[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrKeyDerivation, err)
	}
	if _, err := io.ReadFull(reader, record.Envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", crypto.ErrKeyDerivation, err)
	}

	// The fake client public key must be a valid curve point, not raw hash
	// output.
	clientKeyPair, err := crypto.DeriveKeyPairFromSeed(clientSeed[:], fakeClientInfo)
	if err != nil {
		return nil, err
	}
	crypto.ZeroBytes(clientSeed[:])
	record.ClientPublicKey = clientKeyPair.Public
	crypto.WipeKeyPair(clientKeyPair)

	return record, nil
}

// cacheKey hashes the inputs with length framing so distinct
// (masterSecret, serverIdentifier) pairs can never collide by
// concatenation.
func cacheKey(masterSecret, serverIdentifier []byte) [32]byte {
	h := sha256.New()
	var lenBuf [8]byte
	for _, part := range [][]byte{masterSecret, serverIdentifier} {
		for i := 0; i < 8; i++ {
			lenBuf[i] = byte(uint64(len(part)) >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write(part)
	}
	var key [32]byte
	copy(key[:], h.Sum(nil))
	return key
}
