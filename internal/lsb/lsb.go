package lsb

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/yyyoichi/lsb_zero/internal/bitconv"
)

var (
	ErrMessageTooLarge = errors.New("message too large for carrier")
	ErrBufferTooShort  = errors.New("carrier too short for requested length")
	ErrInvalidOffset   = errors.New("invalid offset")
	ErrInvalidLength   = errors.New("invalid message length")
)

// MaxLength is the largest n accepted by Extract and ExtractLenient;
// n*8 carrier bytes must be addressable.
const MaxLength = math.MaxInt / 8

// CapacityError reports a payload that does not fit. It matches
// ErrMessageTooLarge with errors.Is.
type CapacityError struct {
	Capacity int
	Length   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %d bytes, maximum %d bytes", ErrMessageTooLarge, e.Length, e.Capacity)
}

func (e *CapacityError) Unwrap() error {
	return ErrMessageTooLarge
}

// Capacity returns how many payload bytes fit in a carrier of size bytes
// when the first offset bytes are skipped. Each payload byte takes eight
// carrier bytes. An offset past the end yields zero.
func Capacity(size, offset int) int {
	if offset < 0 || offset > size {
		return 0
	}
	return (size - offset) / 8
}

// Embed returns a copy of carrier whose bytes from offset on carry payload
// in their least significant bit, bit 0 of each payload byte first.
// The carrier itself is never modified.
func Embed(carrier []byte, offset int, payload []byte) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}
	if capacity := Capacity(len(carrier), offset); len(payload) > capacity {
		return nil, &CapacityError{Capacity: capacity, Length: len(payload)}
	}

	out := slices.Clone(carrier)
	for k, bit := range bitconv.BytesToBools(payload) {
		at := offset + k
		if at >= len(out) {
			break
		}
		out[at] &= 0xFE
		if bit {
			out[at] |= 1
		}
	}
	return out, nil
}

// Extract reads n bytes embedded from offset on. It fails with
// ErrBufferTooShort instead of inventing bits the carrier does not have.
func Extract(carrier []byte, offset, n int) ([]byte, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidOffset, offset)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if capacity := Capacity(len(carrier), offset); n > capacity {
		return nil, fmt.Errorf("%w: %d bytes requested at offset %d, carrier holds %d", ErrBufferTooShort, n, offset, capacity)
	}
	return ExtractLenient(carrier, offset, n)
}

// ExtractLenient reads n bytes embedded from offset on. Bits past the end
// of carrier read as zero, so the result always has length n.
func ExtractLenient(carrier []byte, offset, n int) ([]byte, error) {
	if n < 0 || n > MaxLength {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	if n == 0 {
		return []byte{}, nil
	}
	bits := make([]bool, n*8)
	for k := range bits {
		at := offset + k
		if at < 0 || at >= len(carrier) {
			continue
		}
		bits[k] = carrier[at]&1 == 1
	}
	return bitconv.BoolsToBytes(bits), nil
}
