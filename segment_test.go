package qoi

import "testing"

func TestPlanFixedBlockCoversImageExactly(t *testing.T) {
	desc := ImageDescriptor{Width: 10, Height: 257, Channels: 4}
	segments := planFixedBlock(desc)

	wantBlocks := (257 + blockHeight - 1) / blockHeight
	if len(segments) != wantBlocks {
		t.Fatalf("got %d segments, want %d", len(segments), wantBlocks)
	}

	total := 0
	for i, seg := range segments {
		if seg.Start != total {
			t.Fatalf("segment %d starts at %d, want %d", i, seg.Start, total)
		}
		total += seg.Count
	}
	if total != desc.pixelCount() {
		t.Fatalf("segments cover %d pixels, want %d", total, desc.pixelCount())
	}
}

func TestPlanRowStripedOneSegmentPerRow(t *testing.T) {
	desc := ImageDescriptor{Width: 12, Height: 9, Channels: 3}
	segments := planRowStriped(desc)

	if len(segments) != 9 {
		t.Fatalf("got %d segments, want 9", len(segments))
	}
	for i, seg := range segments {
		if seg.Count != 12 {
			t.Fatalf("segment %d has %d pixels, want 12", i, seg.Count)
		}
		if seg.Start != i*12 {
			t.Fatalf("segment %d starts at %d, want %d", i, seg.Start, i*12)
		}
	}
}

func TestPlanCoarseDistributesRemainder(t *testing.T) {
	desc := ImageDescriptor{Width: 10, Height: 10, Channels: 4} // 100 pixels
	segments := planCoarse(desc, 7)

	total := 0
	for _, seg := range segments {
		total += seg.Count
	}
	if total != 100 {
		t.Fatalf("segments cover %d pixels, want 100", total)
	}
	if len(segments) != 7 {
		t.Fatalf("got %d segments, want 7", len(segments))
	}
}

func TestPlanCoarseHandlesMoreWorkersThanPixels(t *testing.T) {
	desc := ImageDescriptor{Width: 2, Height: 1, Channels: 4} // 2 pixels
	segments := planCoarse(desc, 16)

	total := 0
	for _, seg := range segments {
		total += seg.Count
	}
	if total != 2 {
		t.Fatalf("segments cover %d pixels, want 2", total)
	}
}

// TestStrategyAAndCRoundTripIndependently exercises the two internal
// strategies end to end (encode each segment, decode each segment with a
// freshly reset state, reassemble) without going through the public
// block-table wire format, per DESIGN.md's open-question resolution.
func TestStrategyAAndCRoundTripIndependently(t *testing.T) {
	desc := ImageDescriptor{Width: 20, Height: 15, Channels: 4}
	pixels := make([]byte, desc.pixelCount()*4)
	for i := range pixels {
		pixels[i] = byte(i * 7)
	}

	for name, plan := range map[string][]Segment{
		"row-striped": planRowStriped(desc),
		"coarse":      planCoarse(desc, 4),
	} {
		out := make([]byte, len(pixels))
		for _, seg := range plan {
			w := newWriter(seg.Count*5 + 8)
			var enc encoderState
			enc.reset()
			encodeRange(w, &enc, pixels, seg.Start, seg.Count, 4)

			r := newReader(w.Bytes())
			var dec decoderState
			dec.reset()
			if err := decodeRange(r, &dec, out, seg.Start, seg.Count, 4); err != nil {
				t.Fatalf("%s: decodeRange: %v", name, err)
			}
		}
		for i := range pixels {
			if out[i] != pixels[i] {
				t.Fatalf("%s: byte %d = %d, want %d", name, i, out[i], pixels[i])
			}
		}
	}
}
