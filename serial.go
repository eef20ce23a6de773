package qoi

// Encode drives encodeRange over the whole image and produces a canonical,
// bit-compatible QOI stream: header, chunk stream, padding. This is the
// single-threaded reference path.
func Encode(pixels []byte, desc ImageDescriptor) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	want := desc.pixelCount() * int(desc.Channels)
	if len(pixels) != want {
		return nil, newError(InvalidArgument, "pixel buffer is %d bytes, need %d for %dx%d at %d channels", len(pixels), want, desc.Width, desc.Height, desc.Channels)
	}

	w := newWriter(worstCaseOutputSize(desc, 0))
	writeHeader(w, desc)

	var s encoderState
	s.reset()
	encodeRange(w, &s, pixels, 0, desc.pixelCount(), int(desc.Channels))

	w.raw(padding[:])
	return w.Bytes(), nil
}

// encodeRange drives the predictor over pixels [start, start+count) of a
// channels-wide contiguous buffer, in row-major order, using the supplied
// (already-reset) state. Shared by the serial and parallel paths.
func encodeRange(w *writer, s *encoderState, pixels []byte, start, count, channels int) {
	for i := 0; i < count; i++ {
		cur := readPixel(pixels, start+i, channels)
		s.step(w, cur, i == count-1)
	}
}

// Decode parses a canonical QOI stream and returns a raw pixel buffer with
// channelsWanted channels (0 means "use the descriptor's channel count"),
// plus the descriptor read from the header. Channel conversion synthesizes
// alpha=255 for 3->4 and drops alpha for 4->3.
func Decode(data []byte, channelsWanted uint8) ([]byte, ImageDescriptor, error) {
	if len(data) < headerSize+paddingSize {
		return nil, ImageDescriptor{}, newError(InvalidInput, "stream is %d bytes, need at least %d", len(data), headerSize+paddingSize)
	}

	r := newReader(data)
	desc, err := readHeader(r)
	if err != nil {
		return nil, ImageDescriptor{}, err
	}

	outChannels := channelsWanted
	if outChannels == 0 {
		outChannels = desc.Channels
	}
	if outChannels != 3 && outChannels != 4 {
		return nil, ImageDescriptor{}, newError(InvalidArgument, "channelsWanted must be 0, 3, or 4, got %d", channelsWanted)
	}

	chunkEnd := len(data) - paddingSize
	if chunkEnd < r.pos {
		return nil, ImageDescriptor{}, newError(InvalidInput, "chunk region is negative length")
	}
	if [paddingSize]byte(data[chunkEnd:]) != padding {
		return nil, ImageDescriptor{}, newError(InvalidInput, "stream does not end with the padding sentinel")
	}
	chunkReader := newReader(data[r.pos:chunkEnd])

	out := make([]byte, desc.pixelCount()*int(outChannels))
	var s decoderState
	s.reset()
	if err := decodeRange(chunkReader, &s, out, 0, desc.pixelCount(), int(outChannels)); err != nil {
		return nil, ImageDescriptor{}, err
	}

	return out, desc, nil
}

// decodeRange mirrors encodeRange: it decodes count pixels starting at
// pixel index start into the channels-wide out buffer.
func decodeRange(r *reader, s *decoderState, out []byte, start, count, channels int) error {
	for i := 0; i < count; i++ {
		p, err := s.step(r)
		if err != nil {
			return err
		}
		writePixel(out, start+i, channels, p)
	}
	return nil
}
