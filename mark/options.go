package mark

var (
	DefaultShuffleSeed int64 = 1234567890
)

type (
	// Option is a function for selecting the payload codec.
	// It allows choosing whether to use error correction codes (ECC) and which type.
	Option      func(*markFactory)
	markFactory struct {
		codec Codec
	}
)

// WithoutECC is an option that does not use error correction codes.
// The payload is the message itself.
func WithoutECC() Option {
	return func(mf *markFactory) {
		mf.codec = withoutecc{}
	}
}

// WithGolay is an option that uses Golay code for error correction.
// seed is the seed value for shuffling the encoded bits, so that a run of
// damaged carrier bytes is spread over many codewords.
// Hide and Find must use the same seed.
func WithGolay(seed int64) Option {
	return func(mf *markFactory) {
		mf.codec = shuffledgolay(seed)
	}
}
