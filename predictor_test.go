package qoi_test

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/qoiparallel/qoi"
)

// TestNoConsecutiveIndexOpcodes checks that a conforming encoder never
// emits two consecutive INDEX opcodes hashed to the same slot (the
// second occurrence must be a RUN).
func TestNoConsecutiveIndexOpcodes(t *testing.T) {
	desc := qoi.ImageDescriptor{Width: 8, Height: 1, Channels: 4, Colorspace: 0}
	// A, B, A, B, A, B... forces repeated index hits without ever being
	// an exact repeat of the immediately preceding pixel.
	a := []byte{10, 20, 30, 255}
	b := []byte{40, 50, 60, 255}
	pixels := make([]byte, 0, 32)
	for i := 0; i < 8; i++ {
		if i%2 == 0 {
			pixels = append(pixels, a...)
		} else {
			pixels = append(pixels, b...)
		}
	}

	encoded, err := qoi.Encode(pixels, desc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	chunk := encoded[14 : len(encoded)-8]

	prevWasIndex := false
	prevIndexValue := byte(0)
	for i := 0; i < len(chunk); {
		tag := chunk[i]
		switch {
		case tag == 0xFF:
			i += 5
			prevWasIndex = false
		case tag == 0xFE:
			i += 4
			prevWasIndex = false
		case tag>>6 == 0:
			if prevWasIndex && prevIndexValue == tag {
				t.Fatalf("two consecutive INDEX opcodes at the same slot %d", tag)
			}
			prevWasIndex = true
			prevIndexValue = tag
			i++
		case tag>>6 == 1:
			i++
			prevWasIndex = false
		case tag>>6 == 2:
			i += 2
			prevWasIndex = false
		case tag>>6 == 3:
			run := int(tag&0x3F) + 1
			if run < 1 || run > 62 {
				t.Fatalf("run length %d outside [1,62]", run)
			}
			i++
			prevWasIndex = false
		}
	}

	decoded, _, err := qoi.Decode(encoded, 0)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !bytes.Equal(decoded, pixels) {
		t.Fatal("round trip mismatch for the alternating A/B pattern")
	}
}

// TestRandomImagesRoundTrip round-trips seeded pseudo-random images of
// several sizes in both channel counts. Uniform random bytes encode almost
// entirely as RGB (3 channels) and RGBA (4 channels) opcodes.
func TestRandomImagesRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, dims := range [][2]int{{1, 1}, {3, 5}, {17, 13}, {64, 64}, {65, 65}} {
		w, h := dims[0], dims[1]
		for _, channels := range []uint8{3, 4} {
			pixels := make([]byte, w*h*int(channels))
			rng.Read(pixels)
			desc := qoi.ImageDescriptor{Width: uint32(w), Height: uint32(h), Channels: channels, Colorspace: 0}

			encoded, err := qoi.Encode(pixels, desc)
			if err != nil {
				t.Fatalf("w=%d h=%d ch=%d: Encode: %v", w, h, channels, err)
			}
			decoded, gotDesc, err := qoi.Decode(encoded, 0)
			if err != nil {
				t.Fatalf("w=%d h=%d ch=%d: Decode: %v", w, h, channels, err)
			}
			if gotDesc != desc {
				t.Fatalf("w=%d h=%d ch=%d: descriptor mismatch", w, h, channels)
			}
			if !bytes.Equal(decoded, pixels) {
				t.Fatalf("w=%d h=%d ch=%d: round trip mismatch", w, h, channels)
			}
		}
	}
}
