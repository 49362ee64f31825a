package bsp

import (
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// LoadOptions controls header tolerance when loading a file.
type LoadOptions struct {
	// Strict rejects unrecognized magic/version instead of warning and
	// continuing.
	Strict bool
}

// BspModel is the fully decoded, editable in-memory form of one IBSP
// file: typed records for every lump this codec names a record shape
// for, and raw bytes for the rest.
type BspModel struct {
	Header    Header
	Directory LumpDirectory

	Planes    []Plane
	Vertices  []Vertex
	Clusters  []Cluster
	Nodes     []Node
	TexInfos  []TexInfo
	Faces     []Face
	Leaves    []BspLeaf
	LeafFaces []LeafFaceEntry
	Edges     []Edge
	FaceEdges []FaceEdge
	Models    []Model
	Brushes   []Brush

	Worldspawn Entity
	Entities   []Entity

	// raw holds the untyped bytes of lumps this codec does not name a
	// record type for, plus Lightmaps (kept raw by default, spec.md §9).
	raw map[LumpRole][]byte

	Warnings []Warning
}

// rawLumpRoles are the lumps BspModel keeps as opaque byte slices.
var rawLumpRoles = []LumpRole{
	LumpLightmaps, LumpLeafBrushTable, LumpBrushSides, LumpPop, LumpAreas, LumpAreaPortals,
}

// Load reads and decodes an IBSP file from disk.
func Load(path string, opts LoadOptions) (*BspModel, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapError(KindIO, noLump, 0, err, "reading %s", path)
	}
	return Decode(data, opts)
}

// Decode parses an in-memory IBSP image into a BspModel.
func Decode(data []byte, opts LoadOptions) (*BspModel, error) {
	v := newByteView(data)
	hdr, dir, warnings, err := decodeHeader(v, opts.Strict)
	if err != nil {
		return nil, err
	}

	m := &BspModel{Header: hdr, Directory: dir, raw: make(map[LumpRole][]byte), Warnings: warnings}

	lump := func(role LumpRole) ([]byte, error) {
		e := dir.Entries[role]
		b, ok := v.slice(int(e.Offset), int(e.Length))
		if !ok {
			return nil, newError(KindShortLump, role, int(e.Offset), "lump out of file bounds")
		}
		return b, nil
	}

	type typedLump struct {
		role LumpRole
		fn   func([]byte) ([]Warning, error)
	}
	noWarnings := func(err error) ([]Warning, error) { return nil, err }
	typed := []typedLump{
		{LumpPlanes, func(b []byte) ([]Warning, error) { var err error; m.Planes, err = decodePlanes(b); return noWarnings(err) }},
		{LumpVertices, func(b []byte) ([]Warning, error) { var err error; m.Vertices, err = decodeVertices(b); return noWarnings(err) }},
		{LumpVisibility, func(b []byte) (w []Warning, err error) { m.Clusters, w, err = decodeClusters(b); return }},
		{LumpNodes, func(b []byte) ([]Warning, error) { var err error; m.Nodes, err = decodeNodes(b); return noWarnings(err) }},
		{LumpTexInfo, func(b []byte) (w []Warning, err error) { m.TexInfos, w, err = decodeTexInfos(b); return }},
		{LumpFaces, func(b []byte) ([]Warning, error) { var err error; m.Faces, err = decodeFaces(b); return noWarnings(err) }},
		{LumpLeaves, func(b []byte) ([]Warning, error) { var err error; m.Leaves, err = decodeBspLeaves(b); return noWarnings(err) }},
		{LumpLeafFaceTable, func(b []byte) ([]Warning, error) { var err error; m.LeafFaces, err = decodeLeafFaces(b); return noWarnings(err) }},
		{LumpEdges, func(b []byte) ([]Warning, error) { var err error; m.Edges, err = decodeEdges(b); return noWarnings(err) }},
		{LumpFaceEdgeTable, func(b []byte) ([]Warning, error) { var err error; m.FaceEdges, err = decodeFaceEdges(b); return noWarnings(err) }},
		{LumpModels, func(b []byte) ([]Warning, error) { var err error; m.Models, err = decodeModels(b); return noWarnings(err) }},
		{LumpBrushes, func(b []byte) (w []Warning, err error) { m.Brushes, w, err = decodeBrushes(b); return }},
	}
	for _, tl := range typed {
		raw, err := lump(tl.role)
		if err != nil {
			return nil, err
		}
		w, err := tl.fn(raw)
		if err != nil {
			return nil, err
		}
		m.Warnings = append(m.Warnings, w...)
	}

	entRaw, err := lump(LumpEntities)
	if err != nil {
		return nil, err
	}
	ws, ents, entWarnings, err := decodeEntities(entRaw)
	if err != nil {
		return nil, err
	}
	m.Worldspawn = ws
	m.Entities = ents
	m.Warnings = append(m.Warnings, entWarnings...)

	for _, role := range rawLumpRoles {
		b, err := lump(role)
		if err != nil {
			return nil, err
		}
		m.raw[role] = append([]byte(nil), b...)
	}

	return m, nil
}

// RawLump returns the opaque bytes of a lump this codec doesn't decode
// into a record type (or Lightmaps, which is kept raw by default).
func (m *BspModel) RawLump(role LumpRole) []byte { return m.raw[role] }

// SetRawLump replaces the opaque bytes of one of those lumps.
func (m *BspModel) SetRawLump(role LumpRole, data []byte) {
	if m.raw == nil {
		m.raw = make(map[LumpRole][]byte)
	}
	m.raw[role] = data
}

// IsVised reports whether the map has a visibility lump (a non-empty
// cluster table).
func (m *BspModel) IsVised() bool { return len(m.Clusters) > 0 }

// IsLit reports whether the map carries lightmap data.
func (m *BspModel) IsLit() bool { return len(m.raw[LumpLightmaps]) > 0 }

// Lightmaps decodes the raw lightmap lump into RGB texels. Unlike the
// other typed accessors, this is done on demand rather than at Decode
// time, since BspModel otherwise keeps Lightmaps as opaque bytes
// (spec.md §9).
func (m *BspModel) Lightmaps() ([]LightmapTexel, error) {
	return decodeLightmapTexels(m.raw[LumpLightmaps])
}

// SetLightmaps re-encodes texels and replaces the raw lightmap lump.
// Callers must invoke SaveLightmaps (or SaveMap) afterward to persist
// it; UpdateLumpSizes never rebuilds this lump on its own.
func (m *BspModel) SetLightmaps(texels []LightmapTexel) {
	m.SetRawLump(LumpLightmaps, encodeLightmapTexels(texels))
}

// SaveLightmaps writes only the lightmap lump's current bytes back
// into path in place, leaving every other lump's on-disk bytes
// untouched. SaveMap also writes the current lightmap bytes, as part of
// its full rebuild of every lump; SaveLightmaps is the narrower path that
// rewrites this one lump only, and requires its length to be unchanged.
func (m *BspModel) SaveLightmaps(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return wrapError(KindIO, LumpLightmaps, 0, err, "opening %s", path)
	}
	defer f.Close()

	entry := m.Directory.Entries[LumpLightmaps]
	data := m.raw[LumpLightmaps]
	if uint32(len(data)) != entry.Length {
		return newError(KindShortLump, LumpLightmaps, int(entry.Offset), "lightmap data is %d bytes, directory entry reserves %d", len(data), entry.Length)
	}
	if _, err := f.WriteAt(data, int64(entry.Offset)); err != nil {
		return wrapError(KindIO, LumpLightmaps, int(entry.Offset), err, "writing lightmap lump to %s", path)
	}
	return nil
}

// FacePolygon materializes a face's vertex loop by walking its
// face-edge run: each FaceEdge's sign selects which endpoint of the
// referenced Edge starts the winding (spec.md §4.6) — positive walks
// from Edges[k].V0, negative from Edges[-k].V1.
func (m *BspModel) FacePolygon(f Face) ([]Vertex, error) {
	verts := make([]Vertex, 0, f.NumEdges)
	for i := uint32(0); i < uint32(f.NumEdges); i++ {
		idx := int(f.FirstEdge) + int(i)
		if idx < 0 || idx >= len(m.FaceEdges) {
			return nil, newError(KindIndexOutOfRange, LumpFaceEdgeTable, idx, "face-edge index out of range")
		}
		fe := m.FaceEdges[idx].Value

		var edgeIdx int
		var vertIdx uint16
		if fe >= 0 {
			edgeIdx = int(fe)
			if edgeIdx >= len(m.Edges) {
				return nil, newError(KindIndexOutOfRange, LumpEdges, edgeIdx, "edge index out of range")
			}
			vertIdx = m.Edges[edgeIdx].V0
		} else {
			edgeIdx = int(-fe)
			if edgeIdx >= len(m.Edges) {
				return nil, newError(KindIndexOutOfRange, LumpEdges, edgeIdx, "edge index out of range")
			}
			vertIdx = m.Edges[edgeIdx].V1
		}
		if int(vertIdx) >= len(m.Vertices) {
			return nil, newError(KindIndexOutOfRange, LumpVertices, int(vertIdx), "vertex index out of range")
		}
		verts = append(verts, m.Vertices[vertIdx])
	}
	return verts, nil
}

func centerOf(verts []Vertex) mgl32.Vec3 {
	if len(verts) == 0 {
		return mgl32.Vec3{}
	}
	var sum mgl32.Vec3
	for _, vx := range verts {
		sum = sum.Add(mgl32.Vec3{vx.X, vx.Y, vx.Z})
	}
	return sum.Mul(1 / float32(len(verts)))
}

// LeafCenter returns the arithmetic mean over every vertex reachable
// from leaf's face range, via its leaf-face table entries.
func (m *BspModel) LeafCenter(leaf BspLeaf) (mgl32.Vec3, error) {
	var all []Vertex
	for i := uint32(0); i < uint32(leaf.NumLeafFaces); i++ {
		lfIdx := int(leaf.FirstLeafFace) + int(i)
		if lfIdx < 0 || lfIdx >= len(m.LeafFaces) {
			return mgl32.Vec3{}, newError(KindIndexOutOfRange, LumpLeafFaceTable, lfIdx, "leaf-face index out of range")
		}
		faceIdx := int(m.LeafFaces[lfIdx])
		if faceIdx >= len(m.Faces) {
			return mgl32.Vec3{}, newError(KindIndexOutOfRange, LumpFaces, faceIdx, "face index out of range")
		}
		verts, err := m.FacePolygon(m.Faces[faceIdx])
		if err != nil {
			return mgl32.Vec3{}, err
		}
		all = append(all, verts...)
	}
	return centerOf(all), nil
}

// ModelCenter returns the arithmetic mean over every vertex reachable
// from model's face range.
func (m *BspModel) ModelCenter(model Model) (mgl32.Vec3, error) {
	var all []Vertex
	for i := uint32(0); i < model.NumFaces; i++ {
		faceIdx := int(model.FirstFace) + int(i)
		if faceIdx < 0 || faceIdx >= len(m.Faces) {
			return mgl32.Vec3{}, newError(KindIndexOutOfRange, LumpFaces, faceIdx, "face index out of range")
		}
		verts, err := m.FacePolygon(m.Faces[faceIdx])
		if err != nil {
			return mgl32.Vec3{}, err
		}
		all = append(all, verts...)
	}
	return centerOf(all), nil
}
