// Package codec frames message plaintext for encryption.
//
// Every payload starts with a one-byte flag: 0x00 for raw UTF-8, 0x01 for
// zstd-compressed UTF-8. Text is compressed only when its UTF-8 encoding
// exceeds a size threshold; short messages gain nothing from compression and
// skip the CPU cost. Round-trips are lossless for both branches, including
// empty strings and multi-byte text.
package codec

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

const (
	// FlagRaw marks an uncompressed UTF-8 payload.
	FlagRaw = 0x00
	// FlagCompressed marks a zstd-compressed UTF-8 payload.
	FlagCompressed = 0x01

	// CompressionThreshold is the UTF-8 byte length above which payloads are
	// compressed.
	CompressionThreshold = 512
)

// ErrInvalidPayload is returned when a payload is empty or carries an
// unknown flag byte.
var ErrInvalidPayload = errors.New("invalid codec payload")

// The zstd encoder and decoder are stateless for the EncodeAll/DecodeAll
// calls used here and safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil)
	if err != nil {
		panic(fmt.Sprintf("codec: failed to initialize zstd encoder: %v", err))
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic(fmt.Sprintf("codec: failed to initialize zstd decoder: %v", err))
	}
}

// EncodeForEncryption converts message text into the framed payload that
// gets encrypted: flag byte followed by raw or compressed UTF-8.
func EncodeForEncryption(text string) []byte {
	encoded := []byte(text)

	if len(encoded) > CompressionThreshold {
		compressed := zstdEncoder.EncodeAll(encoded, make([]byte, 1, len(encoded)/2+1))
		compressed[0] = FlagCompressed
		return compressed
	}

	payload := make([]byte, 1+len(encoded))
	payload[0] = FlagRaw
	copy(payload[1:], encoded)
	return payload
}

// DecodeFromDecryption reverses EncodeForEncryption on a decrypted payload.
func DecodeFromDecryption(payload []byte) (string, error) {
	if len(payload) == 0 {
		return "", fmt.Errorf("%w: empty payload", ErrInvalidPayload)
	}

	switch payload[0] {
	case FlagRaw:
		return string(payload[1:]), nil
	case FlagCompressed:
		decoded, err := zstdDecoder.DecodeAll(payload[1:], nil)
		if err != nil {
			return "", fmt.Errorf("%w: zstd: %v", ErrInvalidPayload, err)
		}
		return string(decoded), nil
	default:
		return "", fmt.Errorf("%w: unknown flag 0x%02x", ErrInvalidPayload, payload[0])
	}
}
