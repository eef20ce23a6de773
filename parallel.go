package qoi

import (
	"context"
	"runtime"
	"sync"
)

// runWorkerPool is the shared concurrency shape for every fan-out phase in
// this file (segment encode, segment decode, channel conversion). It is
// grounded on other_examples/.../andresmejia3-Hide/stego.go's `dct`
// worker pool: a bounded pool drains a job channel, the first error wins
// and cancels the rest via context, and wg.Wait() is the join barrier.
// No partial results are kept on failure — the caller discards `work`'s
// side effects once an error is returned.
func runWorkerPool(workers, jobCount int, work func(ctx context.Context, job int) error) error {
	if jobCount == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers > jobCount {
		workers = jobCount
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	jobs := make(chan int, jobCount)
	for i := 0; i < jobCount; i++ {
		jobs <- i
	}
	close(jobs)

	errCh := make(chan error, 1)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				if err := work(ctx, job); err != nil {
					select {
					case errCh <- segmentError(job, err):
						cancel()
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

func defaultWorkers() int {
	return runtime.NumCPU()
}

// EncodeParallel partitions the image into fixed-height blocks, encodes
// each segment independently with a freshly reset predictor, and
// concatenates the results behind a big-endian block table. The output
// is NOT bit-compatible with canonical QOI.
func EncodeParallel(pixels []byte, desc ImageDescriptor, workers int) ([]byte, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	want := desc.pixelCount() * int(desc.Channels)
	if len(pixels) != want {
		return nil, newError(InvalidArgument, "pixel buffer is %d bytes, need %d for %dx%d at %d channels", len(pixels), want, desc.Width, desc.Height, desc.Channels)
	}
	if workers <= 0 {
		workers = defaultWorkers()
	}

	segments := planFixedBlock(desc)
	channels := int(desc.Channels)

	scratch := make([][]byte, len(segments))
	encodeOne := func(_ context.Context, i int) error {
		seg := segments[i]
		w := newWriter(seg.Count*(channels+1) + 8)
		var s encoderState
		s.reset()
		encodeRange(w, &s, pixels, seg.Start, seg.Count, channels)
		scratch[i] = w.Bytes()
		return nil
	}
	if err := runWorkerPool(workers, len(segments), encodeOne); err != nil {
		return nil, err
	}

	sizes := make([]int, len(scratch))
	total := 0
	for i, b := range scratch {
		sizes[i] = len(b)
		total += len(b)
	}

	blockTableBytes := 4 + 4*len(segments)
	out := newWriter(headerSize + blockTableBytes + total + paddingSize)
	writeHeader(out, desc)
	writeBlockTable(out, sizes)
	for _, b := range scratch {
		out.raw(b)
	}
	out.raw(padding[:])

	return out.Bytes(), nil
}

// DecodeParallel reads the extended header and block table, recomputes
// the same fixed-height segment plan the encoder used (a pure function of
// width/height, see DESIGN.md), and decodes each segment independently
// into its slice of the output buffer.
func DecodeParallel(data []byte, channelsWanted uint8, workers int) ([]byte, ImageDescriptor, error) {
	if len(data) < headerSize+paddingSize {
		return nil, ImageDescriptor{}, newError(InvalidInput, "stream is %d bytes, need at least %d", len(data), headerSize+paddingSize)
	}

	r := newReader(data)
	desc, err := readHeader(r)
	if err != nil {
		return nil, ImageDescriptor{}, err
	}

	table, err := readBlockTable(r)
	if err != nil {
		return nil, ImageDescriptor{}, err
	}

	segments := planFixedBlock(desc)
	if len(table.offsets) != len(segments) {
		return nil, ImageDescriptor{}, newError(InvalidInput, "block table has %d entries, expected %d for a %dx%d image", len(table.offsets), len(segments), desc.Width, desc.Height)
	}

	chunkEnd := len(data) - paddingSize
	if chunkEnd < r.pos {
		return nil, ImageDescriptor{}, newError(InvalidInput, "chunk region is negative length")
	}
	if [paddingSize]byte(data[chunkEnd:]) != padding {
		return nil, ImageDescriptor{}, newError(InvalidInput, "stream does not end with the padding sentinel")
	}
	segmentBase := r.pos
	segmentRegion := data[segmentBase:chunkEnd]

	if workers <= 0 {
		workers = defaultWorkers()
	}

	channels := int(desc.Channels)
	native := make([]byte, desc.pixelCount()*channels)

	decodeOne := func(_ context.Context, i int) error {
		seg := segments[i]
		start := table.offsets[i]
		end := uint32(len(segmentRegion))
		if i+1 < len(table.offsets) {
			end = table.offsets[i+1]
		}
		if end < start || int(end) > len(segmentRegion) {
			return newError(InvalidInput, "malformed block table entry %d: [%d,%d) outside %d-byte region", i, start, end, len(segmentRegion))
		}
		cr := newReader(segmentRegion[start:end])
		var s decoderState
		s.reset()
		return decodeRange(cr, &s, native, seg.Start, seg.Count, channels)
	}
	if err := runWorkerPool(workers, len(segments), decodeOne); err != nil {
		return nil, ImageDescriptor{}, err
	}

	outChannels := channelsWanted
	if outChannels == 0 {
		outChannels = desc.Channels
	}
	if outChannels != 3 && outChannels != 4 {
		return nil, ImageDescriptor{}, newError(InvalidArgument, "channelsWanted must be 0, 3, or 4, got %d", channelsWanted)
	}
	if outChannels == desc.Channels {
		return native, desc, nil
	}

	converted, err := convertChannelsParallel(native, channels, int(outChannels), desc.pixelCount(), workers)
	if err != nil {
		return nil, ImageDescriptor{}, err
	}
	return converted, desc, nil
}

// convertChannelsParallel runs the optional channel-conversion pass
// (dropping or synthesizing alpha) split into cache-sized pixel blocks
// and run through the same worker pool.
func convertChannelsParallel(src []byte, srcChannels, dstChannels, pixelCount, workers int) ([]byte, error) {
	const blockPixels = 4096 // cache-sized block of pixels
	numBlocks := (pixelCount + blockPixels - 1) / blockPixels
	if numBlocks == 0 {
		return make([]byte, 0), nil
	}

	dst := make([]byte, pixelCount*dstChannels)
	convertOne := func(_ context.Context, i int) error {
		start := i * blockPixels
		end := min(start+blockPixels, pixelCount)
		for p := start; p < end; p++ {
			px := readPixel(src, p, srcChannels)
			writePixel(dst, p, dstChannels, px)
		}
		return nil
	}
	if err := runWorkerPool(workers, numBlocks, convertOne); err != nil {
		return nil, err
	}
	return dst, nil
}
