// Package qoi implements the QOI ("Quite OK Image") lossless codec, plus
// a block-table extension that lets the encoder and decoder parallelize
// across independent row-block segments. This file is the thin
// orchestrator: it validates the descriptor, picks serial vs. parallel,
// and delegates.
package qoi

// MagicBytes is the four ASCII bytes every canonical or extended stream
// starts with, exported for callers that want to sniff a buffer before
// calling Decode (e.g. image.RegisterFormat, see image.go).
var MagicBytes = magicBytes

// EncodeAuto validates desc, picks the serial or parallel encoder based
// on opts' pixel-count threshold, and returns the resulting stream. Below
// the threshold it produces a canonical QOI stream; at or above it, the
// extended parallel format.
func EncodeAuto(pixels []byte, desc ImageDescriptor, opts Options) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	log := opts.logger.With().Uint32("width", desc.Width).Uint32("height", desc.Height).Logger()
	if desc.pixelCount() >= opts.threshold {
		log.Debug().Int("workers", opts.workers).Msg("encoding with the parallel codec")
		out, err := EncodeParallel(pixels, desc, opts.workers)
		if err != nil {
			return nil, err
		}
		log.Info().Int("bytes", len(out)).Msg("parallel encode complete")
		return out, nil
	}

	log.Debug().Msg("encoding with the serial codec")
	out, err := Encode(pixels, desc)
	if err != nil {
		return nil, err
	}
	log.Info().Int("bytes", len(out)).Msg("serial encode complete")
	return out, nil
}

// DecodeAuto inspects the stream past the standard header to decide
// whether it is canonical or extended (the extended format's block-table
// count field occupies the same offset a canonical chunk stream would
// start at, so the two are distinguished structurally: an extended
// stream's block table is internally consistent against the header's
// width/height, a canonical chunk stream generally is not), then
// delegates to Decode or DecodeParallel.
func DecodeAuto(data []byte, channelsWanted uint8, opts Options) ([]byte, ImageDescriptor, error) {
	if isExtended(data) {
		opts.logger.Debug().Msg("decoding with the parallel codec")
		out, desc, err := DecodeParallel(data, channelsWanted, opts.workers)
		if err != nil {
			return nil, ImageDescriptor{}, err
		}
		opts.logger.Info().Int("bytes", len(out)).Msg("parallel decode complete")
		return out, desc, nil
	}

	opts.logger.Debug().Msg("decoding with the serial codec")
	out, desc, err := Decode(data, channelsWanted)
	if err != nil {
		return nil, ImageDescriptor{}, err
	}
	opts.logger.Info().Int("bytes", len(out)).Msg("serial decode complete")
	return out, desc, nil
}

// isExtended reports whether data looks like the extended parallel
// format: a valid header followed by a block table whose entry count
// matches the fixed-height partition of the header's own dimensions.
func isExtended(data []byte) bool {
	if len(data) < headerSize+paddingSize {
		return false
	}
	r := newReader(data)
	desc, err := readHeader(r)
	if err != nil {
		return false
	}
	table, err := readBlockTable(newReader(data[r.pos:]))
	if err != nil {
		return false
	}
	return len(table.offsets) == len(planFixedBlock(desc))
}
