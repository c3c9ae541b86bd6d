package sniff

import "bytes"

// Kind is the carrier classification derived from its leading bytes.
type Kind int

const (
	Unknown Kind = iota
	BMP
	JPG
	PNG
)

var (
	bmpSignature = []byte{0x42, 0x4D}
	jpgSignature = []byte{0xFF, 0xD8}
	pngSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// Detect classifies data by signature prefix. Inputs shorter than a
// signature never match it, so empty data is Unknown.
func Detect(data []byte) Kind {
	switch {
	case bytes.HasPrefix(data, bmpSignature):
		return BMP
	case bytes.HasPrefix(data, jpgSignature):
		return JPG
	case bytes.HasPrefix(data, pngSignature):
		return PNG
	default:
		return Unknown
	}
}

func (k Kind) String() string {
	switch k {
	case BMP:
		return "BMP"
	case JPG:
		return "JPG"
	case PNG:
		return "PNG"
	default:
		return "UNKNOWN"
	}
}
