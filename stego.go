package stego

import (
	"fmt"

	"github.com/yyyoichi/lsb_zero/internal/analysis"
	"github.com/yyyoichi/lsb_zero/internal/lsb"
	"github.com/yyyoichi/lsb_zero/internal/sniff"
	"github.com/yyyoichi/lsb_zero/mark"
)

var (
	ErrMessageTooLarge  = lsb.ErrMessageTooLarge
	ErrBufferTooShort   = lsb.ErrBufferTooShort
	ErrInvalidLength    = lsb.ErrInvalidLength
	ErrInvalidHeader    = mark.ErrInvalidHeader
	ErrChecksumMismatch = mark.ErrChecksumMismatch
)

type (
	// CapacityError is returned by Hide when the message does not fit.
	CapacityError = lsb.CapacityError
	// Kind is the carrier type detected from its signature.
	Kind = sniff.Kind
	// Report is the result of Inspect.
	Report = analysis.Report
)

// MaxFindLength bounds the length accepted by Find, leaving room for
// codec expansion without overflow.
const MaxFindLength = lsb.MaxLength / 8

const (
	Unknown = sniff.Unknown
	BMP     = sniff.BMP
	JPG     = sniff.JPG
	PNG     = sniff.PNG
)

// Detect classifies carrier as BMP, JPG, PNG or Unknown by its leading bytes.
func Detect(carrier []byte) Kind {
	return sniff.Detect(carrier)
}

// HeaderOffset returns the number of leading bytes left untouched for kind:
// 54 for BMP, 8 for PNG and 1024 for JPG and Unknown.
func HeaderOffset(kind Kind) int {
	return lsb.Offset(kind)
}

// Hide embeds message into carrier with the specified options.
// This is a convenience function that creates a Stego instance and calls its Hide method.
func Hide(carrier, message []byte, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Hide(carrier, message)
}

// Find extracts a length byte message from carrier with the specified options.
// This is a convenience function that creates a Stego instance and calls its Find method.
func Find(carrier []byte, length int, opts ...Option) ([]byte, error) {
	s, err := New(opts...)
	if err != nil {
		return nil, err
	}
	return s.Find(carrier, length)
}

type Stego struct {
	codec        mark.Codec
	offset       int
	fixedOffset  bool
	lengthHeader bool
	lenient      bool
}

// New initializes a steganography processor.
// Without options a message is embedded as-is, one bit per carrier byte,
// after the header offset of the detected carrier kind.
func New(opts ...Option) (*Stego, error) {
	s := new(Stego)
	if err := s.init(opts...); err != nil {
		return nil, err
	}
	return s, nil
}

// Offset returns the number of leading carrier bytes that are skipped.
func (s *Stego) Offset(carrier []byte) int {
	if s.fixedOffset {
		return s.offset
	}
	return lsb.Offset(sniff.Detect(carrier))
}

// Codec returns the payload codec used by Hide and Find.
func (s *Stego) Codec() mark.Codec {
	return s.codec
}

// Capacity returns the longest message in bytes that Hide can embed into carrier.
func (s *Stego) Capacity(carrier []byte) int {
	room := lsb.Capacity(len(carrier), s.Offset(carrier))
	if s.lengthHeader {
		room -= mark.HeaderSize
	}
	if room <= 0 {
		return 0
	}
	// largest n with EncodedLen(n) <= room
	lo, hi := 0, room
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		if s.codec.EncodedLen(mid) <= room {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// Hide returns a copy of carrier with message embedded in the least
// significant bits of the bytes past the header offset.
//
// Process:
//  1. Detects the carrier kind and its header offset.
//  2. Checks the message against the carrier capacity.
//  3. Encodes the message with the codec, prefixed by the length header if enabled.
//  4. Writes the payload bits, bit 0 of each byte first, one bit per carrier byte.
//
// Returns a *CapacityError matching ErrMessageTooLarge if the message does not fit.
// The carrier is never modified.
func (s *Stego) Hide(carrier, message []byte) ([]byte, error) {
	if capacity := s.Capacity(carrier); len(message) > capacity {
		return nil, &CapacityError{Capacity: capacity, Length: len(message)}
	}
	payload, err := s.codec.Encode(message)
	if err != nil {
		return nil, err
	}
	if s.lengthHeader {
		payload = append(mark.NewHeader(message).Bytes(), payload...)
	}
	return lsb.Embed(carrier, s.Offset(carrier), payload)
}

// Find extracts a message hidden by Hide.
//
// The carrier does not record the message length unless the length header
// is enabled, so length must be the length passed to Hide. With the length
// header, length is ignored and the message is verified against its checksum.
//
// Returns ErrBufferTooShort if the carrier cannot hold length bytes,
// unless WithLenientFind is set, in which case missing bits read as zero.
func (s *Stego) Find(carrier []byte, length int) ([]byte, error) {
	offset := s.Offset(carrier)
	if !s.lengthHeader {
		if length < 0 || length > MaxFindLength {
			return nil, fmt.Errorf("%w: %d", ErrInvalidLength, length)
		}
		payload, err := s.extract(carrier, offset, s.codec.EncodedLen(length))
		if err != nil {
			return nil, err
		}
		return s.codec.Decode(payload, length)
	}

	b, err := s.extract(carrier, offset, mark.HeaderSize)
	if err != nil {
		return nil, err
	}
	h, err := mark.ParseHeader(b)
	if err != nil {
		return nil, err
	}
	n := int(h.Length)
	if capacity := s.Capacity(carrier); n > capacity {
		return nil, fmt.Errorf("%w: length %d exceeds capacity %d", ErrInvalidHeader, n, capacity)
	}
	payload, err := s.extract(carrier, offset+mark.HeaderSize*8, s.codec.EncodedLen(n))
	if err != nil {
		return nil, err
	}
	message, err := s.codec.Decode(payload, n)
	if err != nil {
		return nil, err
	}
	if err := h.Verify(message); err != nil {
		return nil, err
	}
	return message, nil
}

// Inspect reports the carrier kind, offset, capacity and least significant bit statistics.
func (s *Stego) Inspect(carrier []byte) Report {
	r := analysis.Inspect(carrier, sniff.Detect(carrier), s.Offset(carrier))
	r.Capacity = s.Capacity(carrier)
	r.Codec = s.codec.Name()
	return r
}

func (s *Stego) extract(carrier []byte, offset, n int) ([]byte, error) {
	if s.lenient {
		return lsb.ExtractLenient(carrier, offset, n)
	}
	return lsb.Extract(carrier, offset, n)
}

func (s *Stego) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return err
		}
	}
	if s.codec == nil {
		s.codec = mark.New()
	}
	return nil
}
