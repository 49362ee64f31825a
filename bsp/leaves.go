package bsp

const leafSize = 28

// BspLeaf is lump 8. Byte ranges [0:4], [6:8] and [24:28] are not interpreted
// by this codec (they hold the brush-or/area/leaf-brush fields the
// spec leaves opaque); they are preserved verbatim across edits.
type BspLeaf struct {
	Opaque0       [4]byte
	Cluster       uint16
	Opaque1       [2]byte
	BBoxMin       [3]int16
	BBoxMax       [3]int16
	FirstLeafFace uint16
	NumLeafFaces  uint16
	Opaque2       [4]byte
}

func decodeBspLeaves(raw []byte) ([]BspLeaf, error) {
	if len(raw)%leafSize != 0 {
		return nil, newError(KindShortLump, LumpLeaves, 0, "length %d not a multiple of %d", len(raw), leafSize)
	}
	n := len(raw) / leafSize
	out := make([]BspLeaf, n)
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * leafSize
		var l BspLeaf
		op0, ok1 := v.slice(base, 4)
		cluster, ok2 := v.u16(base + 4)
		op1, ok3 := v.slice(base+6, 2)
		if !ok1 || !ok2 || !ok3 {
			return nil, newError(KindBadRecord, LumpLeaves, base, "record %d truncated", i)
		}
		copy(l.Opaque0[:], op0)
		l.Cluster = cluster
		copy(l.Opaque1[:], op1)
		ok := true
		for axis := 0; axis < 3; axis++ {
			var fv bool
			l.BBoxMin[axis], fv = v.i16(base + 8 + axis*2)
			ok = ok && fv
		}
		for axis := 0; axis < 3; axis++ {
			var fv bool
			l.BBoxMax[axis], fv = v.i16(base + 14 + axis*2)
			ok = ok && fv
		}
		first, fv := v.u16(base + 20)
		ok = ok && fv
		num, fv2 := v.u16(base + 22)
		ok = ok && fv2
		op2, fv3 := v.slice(base+24, 4)
		ok = ok && fv3
		if !ok {
			return nil, newError(KindBadRecord, LumpLeaves, base, "record %d truncated", i)
		}
		l.FirstLeafFace = first
		l.NumLeafFaces = num
		copy(l.Opaque2[:], op2)
		out[i] = l
	}
	return out, nil
}

func encodeBspLeaves(leaves []BspLeaf) []byte {
	out := make([]byte, len(leaves)*leafSize)
	v := newByteView(out)
	for i, l := range leaves {
		base := i * leafSize
		v.putSlice(base, l.Opaque0[:])
		v.putU16(base+4, l.Cluster)
		v.putSlice(base+6, l.Opaque1[:])
		for axis := 0; axis < 3; axis++ {
			v.putI16(base+8+axis*2, l.BBoxMin[axis])
		}
		for axis := 0; axis < 3; axis++ {
			v.putI16(base+14+axis*2, l.BBoxMax[axis])
		}
		v.putU16(base+20, l.FirstLeafFace)
		v.putU16(base+22, l.NumLeafFaces)
		v.putSlice(base+24, l.Opaque2[:])
	}
	return out
}
