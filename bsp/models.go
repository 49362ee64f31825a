package bsp

const modelSize = 48

// Model is lump 13: a brush model's bounding box, origin, and the
// range of Faces it owns. Bytes [36:40] are opaque (the original head
// field set aside for a clip-node root the spec does not name) and are
// preserved verbatim.
type Model struct {
	BBoxMin, BBoxMax, Origin [3]float32
	Opaque                   [4]byte
	FirstFace                uint32
	NumFaces                 uint32
}

func decodeModels(raw []byte) ([]Model, error) {
	if len(raw)%modelSize != 0 {
		return nil, newError(KindShortLump, LumpModels, 0, "length %d not a multiple of %d", len(raw), modelSize)
	}
	n := len(raw) / modelSize
	out := make([]Model, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * modelSize
		var m Model
		ok := true
		for axis := 0; axis < 3; axis++ {
			var fv bool
			m.BBoxMin[axis], fv = v.f32(base + axis*4)
			ok = ok && fv
		}
		for axis := 0; axis < 3; axis++ {
			var fv bool
			m.BBoxMax[axis], fv = v.f32(base + 12 + axis*4)
			ok = ok && fv
		}
		for axis := 0; axis < 3; axis++ {
			var fv bool
			m.Origin[axis], fv = v.f32(base + 24 + axis*4)
			ok = ok && fv
		}
		opaque, fv := v.slice(base+36, 4)
		ok = ok && fv
		firstFace, fv2 := v.u32(base + 40)
		ok = ok && fv2
		numFaces, fv3 := v.u32(base + 44)
		ok = ok && fv3
		if !ok {
			return nil, newError(KindBadRecord, LumpModels, base, "record %d truncated", i)
		}
		copy(m.Opaque[:], opaque)
		m.FirstFace = firstFace
		m.NumFaces = numFaces
		out[i] = m
	}
	return out, nil
}

func encodeModels(models []Model) []byte {
	out := make([]byte, len(models)*modelSize)
	v := newByteView(out)
	for i, m := range models {
		base := i * modelSize
		for axis := 0; axis < 3; axis++ {
			v.putF32(base+axis*4, m.BBoxMin[axis])
		}
		for axis := 0; axis < 3; axis++ {
			v.putF32(base+12+axis*4, m.BBoxMax[axis])
		}
		for axis := 0; axis < 3; axis++ {
			v.putF32(base+24+axis*4, m.Origin[axis])
		}
		v.putSlice(base+36, m.Opaque[:])
		v.putU32(base+40, m.FirstFace)
		v.putU32(base+44, m.NumFaces)
	}
	return out
}
