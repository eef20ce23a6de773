package qoi

// Pixel is a single RGBA sample. Three-channel inputs are represented with
// A fixed at 255; the distinction never reaches the wire.
type Pixel struct {
	R, G, B, A uint8
}

var startPixel = Pixel{R: 0, G: 0, B: 0, A: 255}

// Hash is the QOI running-index hash: (3r + 5g + 7b + 11a) mod 64.
func (p Pixel) Hash() uint8 {
	return (p.R*3 + p.G*5 + p.B*7 + p.A*11) % 64
}

// Equals compares all four channels. Kept as a named method (rather than
// relying on == on the struct) so callers read intent at call sites.
func (p Pixel) Equals(other Pixel) bool {
	return p == other
}

// hashTable is the fixed 64-slot running cache of recently seen pixels.
// Zero value is the correctly zero-initialized table.
type hashTable [64]Pixel

func readPixel(buf []byte, index int, channels int) Pixel {
	off := index * channels
	if channels == 4 {
		return Pixel{R: buf[off], G: buf[off+1], B: buf[off+2], A: buf[off+3]}
	}
	return Pixel{R: buf[off], G: buf[off+1], B: buf[off+2], A: 255}
}

func writePixel(buf []byte, index int, channels int, p Pixel) {
	off := index * channels
	buf[off] = p.R
	buf[off+1] = p.G
	buf[off+2] = p.B
	if channels == 4 {
		buf[off+3] = p.A
	}
}
