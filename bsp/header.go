package bsp

import (
	"bytes"
	"sort"
)

const (
	headerMagic         = "IBSP"
	headerVersion       = 38
	numLumps            = 19
	headerSize          = 8
	lumpEntrySize       = 8
	directoryBase       = headerSize + numLumps*lumpEntrySize // 160
)

// LumpRole names the fixed role order of the 19 lumps, per the file
// format table in the spec.
type LumpRole int

const (
	LumpEntities LumpRole = iota
	LumpPlanes
	LumpVertices
	LumpVisibility
	LumpNodes
	LumpTexInfo
	LumpFaces
	LumpLightmaps
	LumpLeaves
	LumpLeafFaceTable
	LumpLeafBrushTable
	LumpEdges
	LumpFaceEdgeTable
	LumpModels
	LumpBrushes
	LumpBrushSides
	LumpPop
	LumpAreas
	LumpAreaPortals
)

var lumpRoleNames = [numLumps]string{
	"Entities",
	"Planes",
	"Vertices",
	"Visibility",
	"Nodes",
	"TextureInformation",
	"Faces",
	"Lightmaps",
	"Leaves",
	"LeafFaceTable",
	"LeafBrushTable",
	"Edges",
	"FaceEdgeTable",
	"Models",
	"Brushes",
	"BrushSides",
	"Pop",
	"Areas",
	"AreaPortals",
}

func (r LumpRole) String() string {
	if r < 0 || int(r) >= len(lumpRoleNames) {
		return "Unknown"
	}
	return lumpRoleNames[r]
}

// LumpEntry is one (offset, length) directory entry.
type LumpEntry struct {
	Offset uint32
	Length uint32
}

// Header is the 8-byte IBSP file header.
type Header struct {
	Magic   [4]byte
	Version uint32
}

// LumpDirectory is the 19-entry lump table plus the derived emission
// order (lump_order in the original implementation): a permutation of
// 0..18 sorted by ascending on-disk offset, preserved so an unmodified
// file round-trips with lumps emitted in their original file order
// rather than a canonicalized role order (spec.md §9 Open Question).
type LumpDirectory struct {
	Entries [numLumps]LumpEntry
	Order   []int
}

// decodeHeader reads the 8-byte magic/version header and the 19-entry
// directory starting at byte 0. Strict mode rejects unknown magic or
// version; non-strict mode surfaces them as warnings and continues.
func decodeHeader(v *byteView, strict bool) (Header, LumpDirectory, []Warning, error) {
	var warnings []Warning
	var hdr Header

	magic, ok := v.slice(0, 4)
	if !ok {
		return hdr, LumpDirectory{}, nil, newError(KindShortLump, noLump, 0, "file shorter than header")
	}
	copy(hdr.Magic[:], magic)

	version, ok := v.u32(4)
	if !ok {
		return hdr, LumpDirectory{}, nil, newError(KindShortLump, noLump, 4, "file shorter than header")
	}
	hdr.Version = version

	if !bytes.Equal(hdr.Magic[:], []byte(headerMagic)) {
		if strict {
			return hdr, LumpDirectory{}, nil, newError(KindBadMagic, noLump, 0, "got %q want %q", hdr.Magic[:], headerMagic)
		}
		warnings = append(warnings, Warning{Kind: KindBadMagic, Lump: noLump, Msg: "unexpected magic " + string(hdr.Magic[:])})
	}
	if hdr.Version != headerVersion {
		if strict {
			return hdr, LumpDirectory{}, nil, newError(KindBadVersion, noLump, 4, "got %d want %d", hdr.Version, headerVersion)
		}
		warnings = append(warnings, Warning{Kind: KindBadVersion, Lump: noLump, Msg: "unexpected version"})
	}

	var dir LumpDirectory
	for i := 0; i < numLumps; i++ {
		base := headerSize + i*lumpEntrySize
		offset, ok1 := v.u32(base)
		length, ok2 := v.u32(base + 4)
		if !ok1 || !ok2 {
			return hdr, LumpDirectory{}, nil, newError(KindShortLump, LumpRole(i), base, "directory entry truncated")
		}
		dir.Entries[i] = LumpEntry{Offset: offset, Length: length}
	}
	dir.Order = computeLumpOrder(dir.Entries)

	return hdr, dir, warnings, nil
}

// computeLumpOrder sorts lump indices ascending by on-disk offset.
func computeLumpOrder(entries [numLumps]LumpEntry) []int {
	order := make([]int, numLumps)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].Offset < entries[order[b]].Offset
	})
	return order
}

func encodeHeader(hdr Header, dir LumpDirectory) []byte {
	out := make([]byte, directoryBase)
	v := newByteView(out)
	v.putSlice(0, hdr.Magic[:])
	v.putU32(4, hdr.Version)
	for i := 0; i < numLumps; i++ {
		base := headerSize + i*lumpEntrySize
		v.putU32(base, dir.Entries[i].Offset)
		v.putU32(base+4, dir.Entries[i].Length)
	}
	return out
}
