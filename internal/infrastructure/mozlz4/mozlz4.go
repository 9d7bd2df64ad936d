// Package mozlz4 reads and writes Mozilla's jsonlz4 framing: an 8-byte
// magic, the uncompressed size as a little-endian uint32, then a raw lz4
// block.
package mozlz4

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/pierrec/lz4/v4"
)

const headerSize = 12

// Magic starts every mozlz4 payload.
var Magic = []byte("mozLz40\x00")

var (
	// ErrBadMagic means the payload does not start with Magic.
	ErrBadMagic = errors.New("mozlz4: invalid header magic")

	// ErrTruncated means the payload is shorter than its header.
	ErrTruncated = errors.New("mozlz4: data too short")
)

// Encode compresses data into a mozlz4 payload.
func Encode(data []byte) ([]byte, error) {
	if len(data) > math.MaxUint32 {
		return nil, fmt.Errorf("mozlz4: payload of %d bytes too large", len(data))
	}

	out := make([]byte, headerSize+lz4.CompressBlockBound(len(data)))
	copy(out, Magic)
	binary.LittleEndian.PutUint32(out[8:headerSize], uint32(len(data)))

	if len(data) == 0 {
		return out[:headerSize], nil
	}
	n, err := lz4.CompressBlock(data, out[headerSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("mozlz4: compress failed: %w", err)
	}
	return out[:headerSize+n], nil
}

// Decode decompresses a mozlz4 payload.
func Decode(data []byte) ([]byte, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w (%d bytes)", ErrTruncated, len(data))
	}
	if !bytes.Equal(data[:len(Magic)], Magic) {
		return nil, ErrBadMagic
	}

	size := binary.LittleEndian.Uint32(data[8:headerSize])
	if size == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, size)
	n, err := lz4.UncompressBlock(data[headerSize:], dst)
	if err != nil {
		return nil, fmt.Errorf("mozlz4: decompress failed: %w", err)
	}
	return dst[:n], nil
}
