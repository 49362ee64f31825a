package bsp

const vertexSize = 12

// Vertex is lump 2: a point in 3D space.
type Vertex struct {
	X, Y, Z float32
}

func decodeVertices(raw []byte) ([]Vertex, error) {
	if len(raw)%vertexSize != 0 {
		return nil, newError(KindShortLump, LumpVertices, 0, "length %d not a multiple of %d", len(raw), vertexSize)
	}
	n := len(raw) / vertexSize
	out := make([]Vertex, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * vertexSize
		x, ok1 := v.f32(base)
		y, ok2 := v.f32(base + 4)
		z, ok3 := v.f32(base + 8)
		if !ok1 || !ok2 || !ok3 {
			return nil, newError(KindBadRecord, LumpVertices, base, "record %d truncated", i)
		}
		out[i] = Vertex{X: x, Y: y, Z: z}
	}
	return out, nil
}

func encodeVertices(verts []Vertex) []byte {
	out := make([]byte, len(verts)*vertexSize)
	v := newByteView(out)
	for i, vert := range verts {
		base := i * vertexSize
		v.putF32(base, vert.X)
		v.putF32(base+4, vert.Y)
		v.putF32(base+8, vert.Z)
	}
	return out
}
