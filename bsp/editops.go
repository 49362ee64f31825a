package bsp

import (
	"os"
	"path/filepath"
	"strings"
)

// InsertLeafFaces splices faces into the leaf-face table at index,
// then fixes up every leaf's range: a leaf whose range spans the
// insertion point grows NumLeafFaces by len(faces); a leaf entirely
// past the insertion point has FirstLeafFace shifted by len(faces)
// (spec.md §4.7, Testable Property S5).
func (m *BspModel) InsertLeafFaces(faces []LeafFaceEntry, index int) error {
	if index < 0 || index > len(m.LeafFaces) {
		return newError(KindIndexOutOfRange, LumpLeafFaceTable, index, "insertion point out of range")
	}

	n := len(faces)
	updated := make([]LeafFaceEntry, 0, len(m.LeafFaces)+n)
	updated = append(updated, m.LeafFaces[:index]...)
	updated = append(updated, faces...)
	updated = append(updated, m.LeafFaces[index:]...)
	m.LeafFaces = updated

	for i := range m.Leaves {
		first := int(m.Leaves[i].FirstLeafFace)
		num := int(m.Leaves[i].NumLeafFaces)
		switch {
		case first >= index:
			m.Leaves[i].FirstLeafFace += uint16(n)
		case first+num >= index:
			m.Leaves[i].NumLeafFaces += uint16(n)
		}
	}
	return nil
}

// encodedLump re-serializes one lump's current in-memory contents. For
// lumps with no named record type (and for Lightmaps, kept raw by
// default) this is just the stored raw bytes.
func (m *BspModel) encodedLump(role LumpRole) []byte {
	switch role {
	case LumpEntities:
		return encodeEntities(m.Worldspawn, m.Entities)
	case LumpPlanes:
		return encodePlanes(m.Planes)
	case LumpVertices:
		return encodeVertices(m.Vertices)
	case LumpVisibility:
		return encodeClusters(m.Clusters)
	case LumpNodes:
		return encodeNodes(m.Nodes)
	case LumpTexInfo:
		return encodeTexInfos(m.TexInfos)
	case LumpFaces:
		return encodeFaces(m.Faces)
	case LumpLeaves:
		return encodeBspLeaves(m.Leaves)
	case LumpLeafFaceTable:
		return encodeLeafFaces(m.LeafFaces)
	case LumpEdges:
		return encodeEdges(m.Edges)
	case LumpFaceEdgeTable:
		return encodeFaceEdges(m.FaceEdges)
	case LumpModels:
		return encodeModels(m.Models)
	case LumpBrushes:
		return encodeBrushes(m.Brushes)
	default:
		return m.raw[role]
	}
}

// UpdateLumpSizes re-encodes every lump and recomputes the directory's
// (offset, length) pairs, walking lumps in Directory.Order (the file's
// original on-disk order) and 4-byte-aligning each lump start,
// beginning at byte 160 just past the fixed header+directory
// (spec.md §4.7).
func (m *BspModel) UpdateLumpSizes() {
	var entries [numLumps]LumpEntry
	cursor := directoryBase
	for _, role := range m.Directory.Order {
		data := m.encodedLump(LumpRole(role))
		entries[role] = LumpEntry{Offset: uint32(cursor), Length: uint32(len(data))}
		cursor += ceil4(len(data))
	}
	m.Directory.Entries = entries
}

// SaveMap recomputes lump sizes and writes the header, directory, and
// every lump body (in the file's original lump order, 4-byte padded)
// to a sibling file: path with suffix inserted before its extension.
// The write is all-or-nothing — the whole image is built in memory,
// written to a temporary sibling file, and renamed over the output path,
// so a partial write never lands on disk (spec.md §7).
func (m *BspModel) SaveMap(path, suffix string) error {
	m.UpdateLumpSizes()

	out := encodeHeader(m.Header, m.Directory)
	for _, role := range m.Directory.Order {
		out = append(out, pad4(m.encodedLump(LumpRole(role)))...)
	}

	outPath := path
	if suffix != "" {
		ext := filepath.Ext(path)
		outPath = strings.TrimSuffix(path, ext) + suffix + ext
	}
	tmpPath := outPath + ".tmp"
	if err := os.WriteFile(tmpPath, out, 0o644); err != nil {
		os.Remove(tmpPath)
		return wrapError(KindIO, noLump, 0, err, "writing %s", outPath)
	}
	if err := os.Rename(tmpPath, outPath); err != nil {
		os.Remove(tmpPath)
		return wrapError(KindIO, noLump, 0, err, "writing %s", outPath)
	}
	return nil
}
