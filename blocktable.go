package qoi

// blockTable is the {count, offsets[count]} structure written immediately
// after the standard QOI header in the extended parallel format.
// offsets[i] is the byte offset of segment i relative to the first byte
// after the block table.
//
// qoiMPI.h writes these as native-endian ints, which breaks portability
// between little- and big-endian hosts; this implementation always
// writes and reads big-endian, matching the rest of the QOI header.
type blockTable struct {
	offsets []uint32
}

func writeBlockTable(w *writer, sizes []int) {
	w.u32(uint32(len(sizes)))
	offset := uint32(0)
	for _, size := range sizes {
		w.u32(offset)
		offset += uint32(size)
	}
}

func readBlockTable(r *reader) (blockTable, error) {
	count, ok := r.u32()
	if !ok {
		return blockTable{}, newError(InvalidInput, "truncated block table count")
	}
	offsets := make([]uint32, count)
	for i := range offsets {
		v, ok := r.u32()
		if !ok {
			return blockTable{}, newError(InvalidInput, "truncated block table: expected %d offsets", count)
		}
		offsets[i] = v
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return blockTable{}, newError(InvalidInput, "malformed block table: offset %d (%d) precedes offset %d (%d)", i, offsets[i], i-1, offsets[i-1])
		}
	}
	return blockTable{offsets: offsets}, nil
}
