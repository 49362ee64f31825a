package bsp

import "fmt"

// visHeaderEntrySize is the size of one (pvs_offset, phs_offset) pair.
const visHeaderEntrySize = 8

// Cluster holds one row of the PVS/PHS table: the RLE-compressed bit
// vectors for what this cluster can see and hear, each of length
// ceil(N/8) bytes when decompressed, N being the cluster count.
type Cluster struct {
	CompressedPVS []byte
	CompressedPHS []byte
}

// visDecodeState models the RLE decoder's two states (spec.md §4.8):
// Normal reads a literal or starts a zero run; AwaitZeroCount consumes
// the run-length byte that follows a 0x00.
type visDecodeState int

const (
	visStateNormal visDecodeState = iota
	visStateAwaitZeroCount
)

// decodeVisRLE expands one cluster's compressed bit vector. A trailing
// 0x00 with no following count byte is tolerated: it is treated as a
// truncated zero run and simply stops (consume-and-stop) rather than
// failing, per spec.md §4.4's edge-case contract, but truncated reports
// it so the caller can surface a warning.
func decodeVisRLE(compressed []byte) (out []byte, truncated bool) {
	out = make([]byte, 0, len(compressed))
	state := visStateNormal
	for i := 0; i < len(compressed); i++ {
		b := compressed[i]
		switch state {
		case visStateNormal:
			if b == 0 {
				state = visStateAwaitZeroCount
				continue
			}
			out = append(out, b)
		case visStateAwaitZeroCount:
			for c := uint8(0); c < b; c++ {
				out = append(out, 0)
			}
			state = visStateNormal
		}
	}
	// Truncated: stream ended while awaiting a count byte. Tolerated as
	// a hard stop; nothing further is appended.
	return out, state == visStateAwaitZeroCount
}

// encodeVisRLE compresses an uncompressed bit vector: every zero run is
// coalesced into (0x00, count) groups, each count in [1, 255].
func encodeVisRLE(data []byte) []byte {
	out := make([]byte, 0, len(data))
	i := 0
	for i < len(data) {
		if data[i] != 0 {
			out = append(out, data[i])
			i++
			continue
		}
		j := i
		for j < len(data) && data[j] == 0 {
			j++
		}
		remaining := j - i
		for remaining > 0 {
			chunk := remaining
			if chunk > 255 {
				chunk = 255
			}
			out = append(out, 0x00, byte(chunk))
			remaining -= chunk
		}
		i = j
	}
	return out
}

// PVS returns the decompressed PVS bit vector. Consumers must treat
// bits beyond the returned length as zero (the decoder does not pad to
// ceil(N/8)).
func (c Cluster) PVS() []byte { out, _ := decodeVisRLE(c.CompressedPVS); return out }

// PHS returns the decompressed PHS bit vector, with the same
// not-padded contract as PVS.
func (c Cluster) PHS() []byte { out, _ := decodeVisRLE(c.CompressedPHS); return out }

// SetPVS re-compresses an uncompressed PVS vector and assigns it.
func (c *Cluster) SetPVS(uncompressed []byte) { c.CompressedPVS = encodeVisRLE(uncompressed) }

// SetPHS re-compresses an uncompressed PHS vector and assigns it.
func (c *Cluster) SetPHS(uncompressed []byte) { c.CompressedPHS = encodeVisRLE(uncompressed) }

// visBit computes the byte index and bit mask for cluster index i.
func visBit(i int) (byteIndex int, mask byte) {
	return i / 8, 1 << uint(i%8)
}

// SetVisible marks cluster `index` visible (bit 1) in either the PVS
// ("pvs") or PHS ("phs") vector. This restores the intent of the
// original implementation's set_visible, which computed the new vector
// but then compared instead of assigned when writing it back
// (spec.md §9): here the re-compressed result is actually stored.
func (c *Cluster) SetVisible(which string, index int) {
	c.setBit(which, index, true)
}

// SetInvisible clears cluster `index` (bit 0) in the named vector.
func (c *Cluster) SetInvisible(which string, index int) {
	c.setBit(which, index, false)
}

func (c *Cluster) setBit(which string, index int, on bool) {
	var vec []byte
	if which == "phs" {
		vec = c.PHS()
	} else {
		vec = c.PVS()
	}
	byteIdx, mask := visBit(index)
	for byteIdx >= len(vec) {
		vec = append(vec, 0)
	}
	if on {
		vec[byteIdx] |= mask
	} else {
		vec[byteIdx] &^= mask
	}
	if which == "phs" {
		c.SetPHS(vec)
	} else {
		c.SetPVS(vec)
	}
}

// decodeClusters parses lump 3: a u32 cluster count, 2N u32 offsets,
// then the compressed PVS/PHS streams those offsets index into. Each
// cluster's compressed streams are eagerly probed for a truncated RLE
// zero-count (spec.md §7): a warning is reported per occurrence, but
// the stored CompressedPVS/CompressedPHS keep their original
// (possibly-truncated) compressed bytes unchanged.
func decodeClusters(raw []byte) ([]Cluster, []Warning, error) {
	if len(raw) == 0 {
		return nil, nil, nil
	}
	v := newByteView(raw)
	n32, ok := v.u32(0)
	if !ok {
		return nil, nil, newError(KindShortLump, LumpVisibility, 0, "cluster count truncated")
	}
	n := int(n32)

	pvsOffsets := make([]int, n)
	phsOffsets := make([]int, n)
	for i := 0; i < n; i++ {
		base := 4 + i*visHeaderEntrySize
		pvsOff, ok1 := v.u32(base)
		phsOff, ok2 := v.u32(base + 4)
		if !ok1 || !ok2 {
			return nil, nil, newError(KindShortLump, LumpVisibility, base, "offset table entry %d truncated", i)
		}
		pvsOffsets[i] = int(pvsOff)
		phsOffsets[i] = int(phsOff)
	}

	var warnings []Warning
	clusters := make([]Cluster, n)
	for i := 0; i < n; i++ {
		pvsEnd := len(raw)
		if i+1 < n {
			pvsEnd = pvsOffsets[i+1]
		} else if n > 0 {
			pvsEnd = phsOffsets[0]
		}
		phsEnd := len(raw)
		if i+1 < n {
			phsEnd = phsOffsets[i+1]
		}
		pvsSlice, ok1 := v.slice(pvsOffsets[i], clampLen(pvsEnd-pvsOffsets[i], len(raw)-pvsOffsets[i]))
		phsSlice, ok2 := v.slice(phsOffsets[i], clampLen(phsEnd-phsOffsets[i], len(raw)-phsOffsets[i]))
		if !ok1 || !ok2 {
			return nil, nil, newError(KindIndexOutOfRange, LumpVisibility, 0, "cluster %d offsets out of range", i)
		}
		clusters[i] = Cluster{
			CompressedPVS: append([]byte(nil), pvsSlice...),
			CompressedPHS: append([]byte(nil), phsSlice...),
		}
		if _, truncated := decodeVisRLE(clusters[i].CompressedPVS); truncated {
			warnings = append(warnings, Warning{Kind: KindTruncated, Lump: LumpVisibility, Msg: fmt.Sprintf("cluster %d PVS: truncated RLE zero-count", i)})
		}
		if _, truncated := decodeVisRLE(clusters[i].CompressedPHS); truncated {
			warnings = append(warnings, Warning{Kind: KindTruncated, Lump: LumpVisibility, Msg: fmt.Sprintf("cluster %d PHS: truncated RLE zero-count", i)})
		}
	}
	return clusters, warnings, nil
}

func clampLen(n, max int) int {
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// encodeClusters rebuilds lump 3 with PVS blocks laid out before PHS
// blocks, each in cluster index order (spec.md §4.4 save-back layout).
// An unvised map (no clusters) emits an empty lump with no count
// prefix at all.
func encodeClusters(clusters []Cluster) []byte {
	if len(clusters) == 0 {
		return nil
	}
	n := len(clusters)
	headerLen := 4 + n*visHeaderEntrySize

	pvsOffsets := make([]int, n)
	phsOffsets := make([]int, n)
	offset := headerLen
	for i, c := range clusters {
		pvsOffsets[i] = offset
		offset += len(c.CompressedPVS)
	}
	for i, c := range clusters {
		phsOffsets[i] = offset
		offset += len(c.CompressedPHS)
	}

	out := make([]byte, offset)
	v := newByteView(out)
	v.putU32(0, uint32(n))
	for i := 0; i < n; i++ {
		base := 4 + i*visHeaderEntrySize
		v.putU32(base, uint32(pvsOffsets[i]))
		v.putU32(base+4, uint32(phsOffsets[i]))
	}
	for i, c := range clusters {
		v.putSlice(pvsOffsets[i], c.CompressedPVS)
	}
	for i, c := range clusters {
		v.putSlice(phsOffsets[i], c.CompressedPHS)
	}
	return out
}
