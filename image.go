package qoi

import (
	"image"
	"image/color"
	"image/draw"
	"io"
)

// ImageDecode, DecodeConfig, and ImageEncode adapt the Encode/Decode pair
// in serial.go to Go's image.Image conventions, so a caller already working in
// image.Image terms never touches raw byte buffers. Canonical-format
// only: the image.Image registration contract
// (io.Reader in, one image out) has no natural slot for a worker count,
// so it always goes through the serial codec.

// ImageDecode decodes a canonical QOI stream from r into an image.Image,
// suitable for registration with image.RegisterFormat.
func ImageDecode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, wrapError(InvalidInput, err, "reading QOI stream")
	}
	pixels, desc, err := Decode(data, 4)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, int(desc.Width), int(desc.Height)))
	copy(img.Pix, pixels)
	return img, nil
}

// DecodeConfig reads just enough of r to report image dimensions, without
// decoding the pixel data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	buf := make([]byte, headerSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return image.Config{}, wrapError(InvalidInput, err, "reading QOI header")
	}
	desc, err := readHeader(newReader(buf))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{
		Width:      int(desc.Width),
		Height:     int(desc.Height),
		ColorModel: color.NRGBAModel,
	}, nil
}

// ImageEncode encodes m as a canonical QOI stream and writes it to w.
func ImageEncode(w io.Writer, m image.Image) error {
	nrgba := asNRGBA(m)
	bounds := nrgba.Bounds()
	desc := ImageDescriptor{
		Width:    uint32(bounds.Dx()),
		Height:   uint32(bounds.Dy()),
		Channels: 4,
	}
	data, err := Encode(nrgba.Pix, desc)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func asNRGBA(m image.Image) *image.NRGBA {
	if nrgba, ok := m.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) {
		return nrgba
	}
	dst := image.NewNRGBA(image.Rect(0, 0, m.Bounds().Dx(), m.Bounds().Dy()))
	draw.Draw(dst, dst.Bounds(), m, m.Bounds().Min, draw.Src)
	return dst
}

func init() {
	image.RegisterFormat("qoi", string(magicBytes[:]), ImageDecode, DecodeConfig)
}
