package bsp

import "fmt"

const texInfoSize = 76

// SurfaceFlags is the named low 10 bits of a TexInfo's flags word, in
// the order the spec lists them. Bits 10..31 are preserved but not
// named here.
type SurfaceFlags struct {
	Light    bool
	Slick    bool
	Sky      bool
	Warp     bool
	Trans33  bool
	Trans66  bool
	Flowing  bool
	Nodraw   bool
	Hint     bool
	Skip     bool
}

func surfaceFlagsFromBits(bits uint32) SurfaceFlags {
	return SurfaceFlags{
		Light:   bits&(1<<0) != 0,
		Slick:   bits&(1<<1) != 0,
		Sky:     bits&(1<<2) != 0,
		Warp:    bits&(1<<3) != 0,
		Trans33: bits&(1<<4) != 0,
		Trans66: bits&(1<<5) != 0,
		Flowing: bits&(1<<6) != 0,
		Nodraw:  bits&(1<<7) != 0,
		Hint:    bits&(1<<8) != 0,
		Skip:    bits&(1<<9) != 0,
	}
}

func (f SurfaceFlags) bits() uint32 {
	var b uint32
	set := func(n uint, on bool) {
		if on {
			b |= 1 << n
		}
	}
	set(0, f.Light)
	set(1, f.Slick)
	set(2, f.Sky)
	set(3, f.Warp)
	set(4, f.Trans33)
	set(5, f.Trans66)
	set(6, f.Flowing)
	set(7, f.Nodraw)
	set(8, f.Hint)
	set(9, f.Skip)
	return b
}

// TexInfo is lump 5: texture axis/offset, surface flags, and the
// 32-byte zero-padded texture name.
type TexInfo struct {
	UAxis, VAxis   [3]float32
	UOffset, VOffset float32
	Flags          SurfaceFlags
	// HighBits preserves flag bits 10..31 verbatim, alongside the named
	// SurfaceFlags, so unknown bits survive a decode/encode round trip.
	HighBits    uint32
	Value       uint32
	TextureName [32]byte
	NextTexInfo uint32
}

// FlagsWord reconstructs the full 32-bit flags value: named bits 0..9
// plus the preserved high bits.
func (t TexInfo) FlagsWord() uint32 {
	return t.Flags.bits() | t.HighBits
}

// ListSetFlagBits enumerates every set bit position (0..31) of the full
// flags word, named or not.
func (t TexInfo) ListSetFlagBits() []int {
	word := t.FlagsWord()
	var bits []int
	for i := 0; i < 32; i++ {
		if word&(1<<uint(i)) != 0 {
			bits = append(bits, i)
		}
	}
	return bits
}

// TextureNameString trims the zero padding from the 32-byte name field.
func (t TexInfo) TextureNameString() string {
	n := 0
	for n < len(t.TextureName) && t.TextureName[n] != 0 {
		n++
	}
	return string(t.TextureName[:n])
}

// SetTextureName replaces the texture name, zero-padding to 32 bytes.
// It refuses names that don't fit.
func (t *TexInfo) SetTextureName(name string) error {
	if len(name) > len(t.TextureName) {
		return newError(KindBadRecord, LumpTexInfo, 0, "texture name %q longer than %d bytes", name, len(t.TextureName))
	}
	var buf [32]byte
	copy(buf[:], name)
	t.TextureName = buf
	return nil
}

func decodeTexInfos(raw []byte) ([]TexInfo, []Warning, error) {
	if len(raw)%texInfoSize != 0 {
		return nil, nil, newError(KindShortLump, LumpTexInfo, 0, "length %d not a multiple of %d", len(raw), texInfoSize)
	}
	n := len(raw) / texInfoSize
	out := make([]TexInfo, n)
	var warnings []Warning
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * texInfoSize
		var t TexInfo
		ok := true
		for axis := 0; axis < 3; axis++ {
			var fv bool
			t.UAxis[axis], fv = v.f32(base + axis*4)
			ok = ok && fv
		}
		var fv bool
		t.UOffset, fv = v.f32(base + 12)
		ok = ok && fv
		for axis := 0; axis < 3; axis++ {
			var fv2 bool
			t.VAxis[axis], fv2 = v.f32(base + 16 + axis*4)
			ok = ok && fv2
		}
		t.VOffset, fv = v.f32(base + 28)
		ok = ok && fv
		flagsWord, fv2 := v.u32(base + 32)
		ok = ok && fv2
		value, fv3 := v.u32(base + 36)
		ok = ok && fv3
		name, fv4 := v.slice(base+40, 32)
		ok = ok && fv4
		next, fv5 := v.u32(base + 72)
		ok = ok && fv5
		if !ok {
			return nil, nil, newError(KindBadRecord, LumpTexInfo, base, "record %d truncated", i)
		}
		t.Flags = surfaceFlagsFromBits(flagsWord)
		t.HighBits = flagsWord &^ 0x3FF
		t.Value = value
		copy(t.TextureName[:], name)
		t.NextTexInfo = next
		out[i] = t
		if t.HighBits != 0 {
			warnings = append(warnings, Warning{Kind: KindUnknownBits, Lump: LumpTexInfo, Msg: fmt.Sprintf("record %d: unknown surface flag bits 0x%X", i, t.HighBits)})
		}
	}
	return out, warnings, nil
}

func encodeTexInfos(infos []TexInfo) []byte {
	out := make([]byte, len(infos)*texInfoSize)
	v := newByteView(out)
	for i, t := range infos {
		base := i * texInfoSize
		for axis := 0; axis < 3; axis++ {
			v.putF32(base+axis*4, t.UAxis[axis])
		}
		v.putF32(base+12, t.UOffset)
		for axis := 0; axis < 3; axis++ {
			v.putF32(base+16+axis*4, t.VAxis[axis])
		}
		v.putF32(base+28, t.VOffset)
		v.putU32(base+32, t.FlagsWord())
		v.putU32(base+36, t.Value)
		v.putSlice(base+40, t.TextureName[:])
		v.putU32(base+72, t.NextTexInfo)
	}
	return out
}
