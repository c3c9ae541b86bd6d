package bitconv

// BytesToBools expands b into bits, least significant bit of each byte first.
func BytesToBools(b []byte) []bool {
	bits := make([]bool, 0, len(b)*8)
	for _, bb := range b {
		for i := 0; i < 8; i++ {
			bits = append(bits, ((bb>>uint(i))&1) == 1)
		}
	}
	return bits
}

// BoolsToBytes packs bits produced by BytesToBools. A trailing partial
// byte is zero-padded in its high bits.
func BoolsToBytes(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}
