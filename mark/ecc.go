package mark

import (
	"fmt"
	"math/rand"
	"slices"

	"github.com/yyyoichi/bitstream-go"
	"github.com/yyyoichi/golay"
	"github.com/yyyoichi/lsb_zero/internal/bitconv"
)

var _ Codec = (*shuffledgolay)(nil)

type shuffledgolay int64

func (sg shuffledgolay) Name() string {
	return "golay"
}

func (sg shuffledgolay) Encode(msg []byte) ([]byte, error) {
	if len(msg) == 0 {
		return []byte{}, nil
	}
	w := bitstream.NewBitWriter[uint64](0, 0)
	for _, v := range msg {
		for i := 7; i >= 0; i-- {
			w.WriteBool((v>>uint(i))&1 == 1)
		}
	}

	var encoded []uint64
	enc := golay.NewEncoder(&encoded)
	if err := enc.Encode(w.Data(), w.Bits()); err != nil {
		return nil, fmt.Errorf("golay encode: %w", err)
	}
	encodedLen := enc.Bits()

	// shuffle
	index := sg.generatePermutation(encodedLen)
	r := bitstream.NewBitReader(encoded, 0, 0)
	bits := make([]bool, sg.EncodedLen(len(msg))*8)
	for i := range encodedLen {
		bits[i], _ = r.ReadBitAt(index[i])
	}
	return bitconv.BoolsToBytes(bits), nil
}

func (sg shuffledgolay) Decode(payload []byte, n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if len(payload) < sg.EncodedLen(n) {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortPayload, len(payload), sg.EncodedLen(n))
	}
	encodedLen := golay.EncodedBits(n * 8)
	bits := bitconv.BytesToBools(payload)

	// reverse shuffle
	index := sg.generatePermutation(encodedLen)
	w := bitstream.NewBitWriter[uint64](0, 0)
	for i := range encodedLen {
		w.WriteBitAt(index[i], bits[i])
	}

	var decoded []uint64
	dec := golay.NewDecoder(w.Data(), w.Bits())
	if err := dec.Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	r := bitstream.NewBitReader(decoded, 0, 0)
	msg := make([]byte, n)
	for i := range n * 8 {
		if bit, _ := r.ReadBitAt(i); bit {
			msg[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return msg, nil
}

func (sg shuffledgolay) EncodedLen(n int) int {
	if n <= 0 {
		return 0
	}
	return (golay.EncodedBits(n*8) + 7) / 8
}

func (sg shuffledgolay) generatePermutation(length int) []int {
	index := make([]int, length)
	for i := range index {
		index[i] = i
	}
	rd := rand.New(rand.NewSource(int64(sg)))
	rd.Shuffle(length, func(i, j int) {
		index[i], index[j] = index[j], index[i]
	})
	return index
}

var _ Codec = (*withoutecc)(nil)

type withoutecc struct{}

func (we withoutecc) Name() string {
	return "raw"
}

func (we withoutecc) Encode(msg []byte) ([]byte, error) {
	if msg == nil {
		return []byte{}, nil
	}
	return slices.Clone(msg), nil
}

func (we withoutecc) Decode(payload []byte, n int) ([]byte, error) {
	if len(payload) < n {
		return nil, fmt.Errorf("%w: %d < %d", ErrShortPayload, len(payload), n)
	}
	return slices.Clone(payload[:n]), nil
}

func (we withoutecc) EncodedLen(n int) int {
	return max(n, 0)
}
