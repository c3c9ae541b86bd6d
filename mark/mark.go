package mark

import (
	"errors"
)

var (
	ErrShortPayload = errors.New("payload shorter than encoded length")
	ErrDecode       = errors.New("failed to decode payload")
)

// Codec transforms a message into the payload bytes that are embedded in
// a carrier and back.
type Codec interface {
	// Encode returns the payload for msg. Its length is EncodedLen(len(msg)).
	Encode(msg []byte) ([]byte, error)
	// Decode recovers an n byte message from payload.
	Decode(payload []byte, n int) ([]byte, error)
	// EncodedLen is the payload length in bytes for an n byte message.
	EncodedLen(n int) int
	// Name identifies the codec in logs and reports.
	Name() string
}

// New returns a Codec selected by opts.
// By default the message is embedded as-is, without error correction.
func New(opts ...Option) Codec {
	var mf markFactory
	for _, opt := range opts {
		opt(&mf)
	}
	if mf.codec == nil {
		mf.codec = withoutecc{}
	}
	return mf.codec
}
