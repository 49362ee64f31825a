package bsp

const faceSize = 20

// Face is lump 6: a polygon surface described indirectly via a run of
// face-edges, plus its plane and texture reference.
type Face struct {
	Plane             uint16
	PlaneSide         uint16
	FirstEdge         uint32
	NumEdges          uint16
	TextureInfo       uint16
	LightmapStyles    uint32
	LightmapOffsets   uint32
}

func decodeFaces(raw []byte) ([]Face, error) {
	if len(raw)%faceSize != 0 {
		return nil, newError(KindShortLump, LumpFaces, 0, "length %d not a multiple of %d", len(raw), faceSize)
	}
	n := len(raw) / faceSize
	out := make([]Face, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * faceSize
		plane, ok1 := v.u16(base)
		side, ok2 := v.u16(base + 2)
		firstEdge, ok3 := v.u32(base + 4)
		numEdges, ok4 := v.u16(base + 8)
		texInfo, ok5 := v.u16(base + 10)
		lmStyles, ok6 := v.u32(base + 12)
		lmOffsets, ok7 := v.u32(base + 16)
		if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 || !ok7 {
			return nil, newError(KindBadRecord, LumpFaces, base, "record %d truncated", i)
		}
		out[i] = Face{
			Plane:           plane,
			PlaneSide:       side,
			FirstEdge:       firstEdge,
			NumEdges:        numEdges,
			TextureInfo:     texInfo,
			LightmapStyles:  lmStyles,
			LightmapOffsets: lmOffsets,
		}
	}
	return out, nil
}

func encodeFaces(faces []Face) []byte {
	out := make([]byte, len(faces)*faceSize)
	v := newByteView(out)
	for i, f := range faces {
		base := i * faceSize
		v.putU16(base, f.Plane)
		v.putU16(base+2, f.PlaneSide)
		v.putU32(base+4, f.FirstEdge)
		v.putU16(base+8, f.NumEdges)
		v.putU16(base+10, f.TextureInfo)
		v.putU32(base+12, f.LightmapStyles)
		v.putU32(base+16, f.LightmapOffsets)
	}
	return out
}
