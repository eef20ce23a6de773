package qoi

// ImageDescriptor is the immutable shape of one encode/decode call.
// Colorspace is informative only; it never affects encoding.
type ImageDescriptor struct {
	Width      uint32
	Height     uint32
	Channels   uint8 // 3 or 4
	Colorspace uint8 // 0 = sRGB, 1 = linear
}

const maxPixelBudget = 400_000_000

// Validate enforces the invariant that width >= 1, height >= 1, and
// width*height stays under maxPixelBudget (checked without overflow).
func (d ImageDescriptor) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return newError(InvalidArgument, "width and height must be >= 1, got %dx%d", d.Width, d.Height)
	}
	if d.Channels != 3 && d.Channels != 4 {
		return newError(InvalidArgument, "channels must be 3 or 4, got %d", d.Channels)
	}
	if d.Colorspace != 0 && d.Colorspace != 1 {
		return newError(InvalidArgument, "colorspace must be 0 or 1, got %d", d.Colorspace)
	}
	if uint64(d.Height) >= maxPixelBudget/uint64(d.Width) {
		return newError(InvalidArgument, "width*height exceeds pixel budget: %dx%d", d.Width, d.Height)
	}
	return nil
}

func (d ImageDescriptor) pixelCount() int {
	return int(d.Width) * int(d.Height)
}

// worstCaseOutputSize bounds the encoder's output allocation:
// width*height*(channels+1) for the chunk stream, plus the fixed header
// and padding. blockTableBytes is 0 for the canonical path.
func worstCaseOutputSize(d ImageDescriptor, blockTableBytes int) int {
	return d.pixelCount()*(int(d.Channels)+1) + headerSize + paddingSize + blockTableBytes
}

func writeHeader(w *writer, d ImageDescriptor) {
	w.raw(magicBytes[:])
	w.u32(d.Width)
	w.u32(d.Height)
	w.bytes(d.Channels, d.Colorspace)
}

func readHeader(r *reader) (ImageDescriptor, error) {
	if r.remaining() < headerSize {
		return ImageDescriptor{}, newError(InvalidInput, "header is %d bytes, got %d", headerSize, r.remaining())
	}
	var magic [4]byte
	for i := range magic {
		b, _ := r.byte()
		magic[i] = b
	}
	if magic != magicBytes {
		return ImageDescriptor{}, newError(InvalidInput, "bad magic: expected %q, got %q", magicBytes, magic)
	}
	width, _ := r.u32()
	height, _ := r.u32()
	channels, _ := r.byte()
	colorspace, _ := r.byte()

	d := ImageDescriptor{Width: width, Height: height, Channels: channels, Colorspace: colorspace}
	if err := d.Validate(); err != nil {
		return ImageDescriptor{}, wrapError(InvalidInput, err, "invalid header")
	}
	return d, nil
}
