package bsp

import "fmt"

const brushSize = 12

// ContentFlags is the named subset of a Brush's content bits: bits
// 0..6 and 15..29, in the order the spec lists them. Bits 7..14 and
// >=30 are preserved opaquely alongside the named set.
type ContentFlags struct {
	Solid, Window, Aux, Lava, Slime, Water, Mist bool

	AreaPortal, PlayerClip, MonsterClip                     bool
	Current0, Current90, Current180, Current270             bool
	CurrentUp, CurrentDown                                  bool
	Origin, Monster, DeadMonster, Detail, Translucent, Ladder bool
}

func contentFlagsFromBits(bits uint32) ContentFlags {
	has := func(n uint) bool { return bits&(1<<n) != 0 }
	return ContentFlags{
		Solid: has(0), Window: has(1), Aux: has(2), Lava: has(3), Slime: has(4), Water: has(5), Mist: has(6),
		AreaPortal: has(15), PlayerClip: has(16), MonsterClip: has(17),
		Current0: has(18), Current90: has(19), Current180: has(20), Current270: has(21),
		CurrentUp: has(22), CurrentDown: has(23),
		Origin: has(24), Monster: has(25), DeadMonster: has(26), Detail: has(27), Translucent: has(28), Ladder: has(29),
	}
}

func (c ContentFlags) bits() uint32 {
	var b uint32
	set := func(n uint, on bool) {
		if on {
			b |= 1 << n
		}
	}
	set(0, c.Solid)
	set(1, c.Window)
	set(2, c.Aux)
	set(3, c.Lava)
	set(4, c.Slime)
	set(5, c.Water)
	set(6, c.Mist)
	set(15, c.AreaPortal)
	set(16, c.PlayerClip)
	set(17, c.MonsterClip)
	set(18, c.Current0)
	set(19, c.Current90)
	set(20, c.Current180)
	set(21, c.Current270)
	set(22, c.CurrentUp)
	set(23, c.CurrentDown)
	set(24, c.Origin)
	set(25, c.Monster)
	set(26, c.DeadMonster)
	set(27, c.Detail)
	set(28, c.Translucent)
	set(29, c.Ladder)
	return b
}

const namedContentMask = 0x7F | (0x7FFF << 15)

// Brush is lump 14.
type Brush struct {
	FirstBrushSide uint32
	NumBrushSides  uint32
	Contents       ContentFlags
	// OpaqueContentBits preserves content bits outside the named set
	// (7..14, >=30) verbatim.
	OpaqueContentBits uint32
}

// ContentsWord reconstructs the full 32-bit contents value.
func (b Brush) ContentsWord() uint32 {
	return b.Contents.bits() | b.OpaqueContentBits
}

func decodeBrushes(raw []byte) ([]Brush, []Warning, error) {
	if len(raw)%brushSize != 0 {
		return nil, nil, newError(KindShortLump, LumpBrushes, 0, "length %d not a multiple of %d", len(raw), brushSize)
	}
	n := len(raw) / brushSize
	out := make([]Brush, n)
	var warnings []Warning
	v := newByteView(raw)
	for i := 0; i < n; i++ {
		base := i * brushSize
		firstSide, ok1 := v.u32(base)
		numSides, ok2 := v.u32(base + 4)
		contents, ok3 := v.u32(base + 8)
		if !ok1 || !ok2 || !ok3 {
			return nil, nil, newError(KindBadRecord, LumpBrushes, base, "record %d truncated", i)
		}
		opaque := contents &^ namedContentMask
		out[i] = Brush{
			FirstBrushSide:    firstSide,
			NumBrushSides:     numSides,
			Contents:          contentFlagsFromBits(contents),
			OpaqueContentBits: opaque,
		}
		if opaque != 0 {
			warnings = append(warnings, Warning{Kind: KindUnknownBits, Lump: LumpBrushes, Msg: fmt.Sprintf("record %d: unknown content bits 0x%X", i, opaque)})
		}
	}
	return out, warnings, nil
}

func encodeBrushes(brushes []Brush) []byte {
	out := make([]byte, len(brushes)*brushSize)
	v := newByteView(out)
	for i, b := range brushes {
		base := i * brushSize
		v.putU32(base, b.FirstBrushSide)
		v.putU32(base+4, b.NumBrushSides)
		v.putU32(base+8, b.ContentsWord())
	}
	return out
}
