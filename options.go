package stego

import (
	"errors"
	"fmt"

	"github.com/yyyoichi/lsb_zero/mark"
)

var ErrInvalidOption = errors.New("invalid option")

type Option func(*Stego) error

// WithCodec transforms the message with codec before embedding,
// for example mark.New(mark.WithGolay(seed)) for error correction.
// Hide and Find must use the same codec.
func WithCodec(codec mark.Codec) Option {
	return func(s *Stego) error {
		if codec == nil {
			return fmt.Errorf("%w: nil codec", ErrInvalidOption)
		}
		s.codec = codec
		return nil
	}
}

// WithOffset skips offset leading bytes regardless of the detected carrier kind.
// Carriers written with a fixed offset can only be read with the same offset.
func WithOffset(offset int) Option {
	return func(s *Stego) error {
		if offset < 0 {
			return fmt.Errorf("%w: negative offset %d", ErrInvalidOption, offset)
		}
		s.offset = offset
		s.fixedOffset = true
		return nil
	}
}

// WithLengthHeader stores the message length and a checksum in front of the payload,
// so Find no longer needs the length. It reduces capacity by 8 bytes.
func WithLengthHeader() Option {
	return func(s *Stego) error {
		s.lengthHeader = true
		return nil
	}
}

// WithLenientFind makes Find read bits past the end of the carrier as zero
// instead of failing with ErrBufferTooShort.
func WithLenientFind() Option {
	return func(s *Stego) error {
		s.lenient = true
		return nil
	}
}
