package bsp

const edgeSize = 4

// Edge is lump 11: a pair of vertex indices.
type Edge struct {
	V0, V1 uint16
}

func decodeEdges(raw []byte) ([]Edge, error) {
	if len(raw)%edgeSize != 0 {
		return nil, newError(KindShortLump, LumpEdges, 0, "length %d not a multiple of %d", len(raw), edgeSize)
	}
	n := len(raw) / edgeSize
	out := make([]Edge, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * edgeSize
		v0, ok1 := v.u16(base)
		v1, ok2 := v.u16(base + 2)
		if !ok1 || !ok2 {
			return nil, newError(KindBadRecord, LumpEdges, base, "record %d truncated", i)
		}
		out[i] = Edge{V0: v0, V1: v1}
	}
	return out, nil
}

func encodeEdges(edges []Edge) []byte {
	out := make([]byte, len(edges)*edgeSize)
	v := newByteView(out)
	for i, e := range edges {
		base := i * edgeSize
		v.putU16(base, e.V0)
		v.putU16(base+2, e.V1)
	}
	return out
}

const faceEdgeSize = 4

// FaceEdge is lump 12: a signed edge index. The sign selects the
// direction the edge is walked in when building a face polygon.
type FaceEdge struct {
	Value int32
}

func decodeFaceEdges(raw []byte) ([]FaceEdge, error) {
	if len(raw)%faceEdgeSize != 0 {
		return nil, newError(KindShortLump, LumpFaceEdgeTable, 0, "length %d not a multiple of %d", len(raw), faceEdgeSize)
	}
	n := len(raw) / faceEdgeSize
	out := make([]FaceEdge, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * faceEdgeSize
		val, ok := v.i32(base)
		if !ok {
			return nil, newError(KindBadRecord, LumpFaceEdgeTable, base, "record %d truncated", i)
		}
		out[i] = FaceEdge{Value: val}
	}
	return out, nil
}

func encodeFaceEdges(faceEdges []FaceEdge) []byte {
	out := make([]byte, len(faceEdges)*faceEdgeSize)
	v := newByteView(out)
	for i, fe := range faceEdges {
		v.putI32(i*faceEdgeSize, fe.Value)
	}
	return out
}
