package mark

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/zeebo/blake3"
)

// HeaderSize is the length of an encoded Header in bytes.
const HeaderSize = 8

var (
	ErrInvalidHeader    = errors.New("invalid length header")
	ErrChecksumMismatch = errors.New("message checksum mismatch")
)

// Header precedes the payload when the message length is stored in the
// carrier. It holds the message length and the first four bytes of the
// BLAKE3-256 digest of the message.
type Header struct {
	Length   uint32
	Checksum [4]byte
}

func NewHeader(msg []byte) Header {
	return Header{
		Length:   uint32(len(msg)),
		Checksum: checksum(msg),
	}
}

// Bytes encodes h as length (big endian) followed by checksum.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(b[:4], h.Length)
	copy(b[4:], h.Checksum[:])
	return b
}

func ParseHeader(b []byte) (Header, error) {
	var h Header
	if len(b) != HeaderSize {
		return h, fmt.Errorf("%w: %d bytes", ErrInvalidHeader, len(b))
	}
	h.Length = binary.BigEndian.Uint32(b[:4])
	copy(h.Checksum[:], b[4:])
	return h, nil
}

// Verify reports whether msg is the message h was built from.
func (h Header) Verify(msg []byte) error {
	if int(h.Length) != len(msg) {
		return fmt.Errorf("%w: length %d, header says %d", ErrChecksumMismatch, len(msg), h.Length)
	}
	if sum := checksum(msg); !bytes.Equal(sum[:], h.Checksum[:]) {
		return fmt.Errorf("%w: got %x, want %x", ErrChecksumMismatch, sum, h.Checksum)
	}
	return nil
}

func checksum(msg []byte) [4]byte {
	var c [4]byte
	sum := blake3.Sum256(msg)
	copy(c[:], sum[:4])
	return c
}
