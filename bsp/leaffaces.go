package bsp

const leafFaceEntrySize = 2

// LeafFaceEntry is lump 9: an index into the Faces table.
type LeafFaceEntry uint16

func decodeLeafFaces(raw []byte) ([]LeafFaceEntry, error) {
	if len(raw)%leafFaceEntrySize != 0 {
		return nil, newError(KindShortLump, LumpLeafFaceTable, 0, "length %d not a multiple of %d", len(raw), leafFaceEntrySize)
	}
	n := len(raw) / leafFaceEntrySize
	out := make([]LeafFaceEntry, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		val, ok := v.u16(i * leafFaceEntrySize)
		if !ok {
			return nil, newError(KindBadRecord, LumpLeafFaceTable, i*leafFaceEntrySize, "record %d truncated", i)
		}
		out[i] = LeafFaceEntry(val)
	}
	return out, nil
}

func encodeLeafFaces(entries []LeafFaceEntry) []byte {
	out := make([]byte, len(entries)*leafFaceEntrySize)
	v := newByteView(out)
	for i, e := range entries {
		v.putU16(i*leafFaceEntrySize, uint16(e))
	}
	return out
}
