package qoi

// Segment is an independently encoded contiguous pixel range, in
// row-major order. Segments never overlap and cover the image exactly
// once.
type Segment struct {
	Start int // pixel index
	Count int
}

const blockHeight = 64 // fixed block height used by the parallel wire format

// planFixedBlock is Strategy B: segment i covers rows [i*H, min((i+1)*H,
// height)). This is the only strategy the public wire format uses,
// because the decoder can recompute it from (width, height) alone with no
// side channel — grounded on original_source/QOI(OpenMPI)/qoiMPI.h's
// BLOCK_HEIGHT=64 constant, used identically on both ends.
func planFixedBlock(desc ImageDescriptor) []Segment {
	width := int(desc.Width)
	height := int(desc.Height)
	numBlocks := (height + blockHeight - 1) / blockHeight

	segments := make([]Segment, 0, numBlocks)
	for block := 0; block < numBlocks; block++ {
		startRow := block * blockHeight
		endRow := min(startRow+blockHeight, height)
		segments = append(segments, Segment{
			Start: startRow * width,
			Count: (endRow - startRow) * width,
		})
	}
	return segments
}

// planRowStriped is Strategy A: one segment per row. Best for wide
// images; highest per-segment overhead on tall, narrow ones. Internal
// only — exercised by unit tests, never by the public wire format (see
// DESIGN.md's open-question resolution).
func planRowStriped(desc ImageDescriptor) []Segment {
	width := int(desc.Width)
	height := int(desc.Height)

	segments := make([]Segment, height)
	for row := 0; row < height; row++ {
		segments[row] = Segment{Start: row * width, Count: width}
	}
	return segments
}

// planCoarse is Strategy C: segment count equals the worker-pool size;
// each segment is a contiguous pixel range sized by totalPixels/workers.
// Internal only, same reason as planRowStriped.
func planCoarse(desc ImageDescriptor, workers int) []Segment {
	total := desc.pixelCount()
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	base := total / workers
	remainder := total % workers

	segments := make([]Segment, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		count := base
		if i < remainder {
			count++
		}
		if count == 0 {
			continue
		}
		segments = append(segments, Segment{Start: start, Count: count})
		start += count
	}
	return segments
}
