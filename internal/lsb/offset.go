package lsb

import "github.com/yyyoichi/lsb_zero/internal/sniff"

// Leading bytes skipped per carrier kind. JPG headers are segment based
// and variable in length, so JPG shares the conservative default.
const (
	BMPHeaderSize = 54
	PNGHeaderSize = 8
	DefaultOffset = 1024
)

// Offset returns the number of leading carrier bytes left untouched for kind.
func Offset(kind sniff.Kind) int {
	switch kind {
	case sniff.BMP:
		return BMPHeaderSize
	case sniff.PNG:
		return PNGHeaderSize
	case sniff.JPG:
		return DefaultOffset
	default:
		return DefaultOffset
	}
}
