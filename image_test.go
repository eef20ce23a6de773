package qoi_test

import (
	"bytes"
	"image"
	"image/color"
	"testing"

	"github.com/qoiparallel/qoi"
)

func TestImageEncodeDecodeRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 12, 9))
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			src.Set(x, y, color.NRGBA{R: uint8(x * 10), G: uint8(y * 10), B: uint8(x + y), A: 255})
		}
	}

	var buf bytes.Buffer
	if err := qoi.ImageEncode(&buf, src); err != nil {
		t.Fatalf("ImageEncode: %v", err)
	}

	cfg, err := qoi.DecodeConfig(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("DecodeConfig: %v", err)
	}
	if cfg.Width != 12 || cfg.Height != 9 {
		t.Fatalf("config = %dx%d, want 12x9", cfg.Width, cfg.Height)
	}

	decoded, err := qoi.ImageDecode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ImageDecode: %v", err)
	}
	if !decoded.Bounds().Eq(src.Bounds()) {
		t.Fatalf("bounds mismatch: got %v want %v", decoded.Bounds(), src.Bounds())
	}
	for y := 0; y < 9; y++ {
		for x := 0; x < 12; x++ {
			want := src.NRGBAAt(x, y)
			got := decoded.At(x, y)
			r, g, b, a := got.RGBA()
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || uint8(a>>8) != want.A {
				t.Fatalf("pixel (%d,%d) mismatch: got %v want %v", x, y, got, want)
			}
		}
	}
}

func TestImageFormatRegistered(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := qoi.ImageEncode(&buf, src); err != nil {
		t.Fatalf("ImageEncode: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("image.Decode: %v", err)
	}
	if format != "qoi" {
		t.Fatalf("format = %q, want qoi", format)
	}
}
