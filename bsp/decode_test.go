package bsp

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

// buildMinimalImage assembles a tiny but structurally complete IBSP v38
// image: one plane, one vertex, and a worldspawn-only entity lump,
// every other lump empty. It mirrors the byte layout save_map emits so
// round-tripping it through Load/SaveMap exercises the whole pipeline.
func buildMinimalImage(t *testing.T) []byte {
	t.Helper()

	planes := encodePlanes([]Plane{{Normal: [3]float32{0, 0, 1}, Distance: 0, Type: 2}})
	vertices := encodeVertices([]Vertex{{X: 1, Y: 2, Z: 3}})
	entities := encodeEntities(Entity{Pairs: []KeyValue{{Key: "classname", Value: "worldspawn"}}}, nil)

	lumpBytes := make([][]byte, numLumps)
	lumpBytes[LumpEntities] = entities
	lumpBytes[LumpPlanes] = planes
	lumpBytes[LumpVertices] = vertices
	for i := range lumpBytes {
		if lumpBytes[i] == nil {
			lumpBytes[i] = []byte{}
		}
	}

	var dir LumpDirectory
	cursor := directoryBase
	order := make([]int, numLumps)
	for i := range order {
		order[i] = i
	}
	for _, role := range order {
		data := lumpBytes[role]
		dir.Entries[role] = LumpEntry{Offset: uint32(cursor), Length: uint32(len(data))}
		cursor += ceil4(len(data))
	}
	dir.Order = order

	var hdr Header
	copy(hdr.Magic[:], headerMagic)
	hdr.Version = headerVersion

	out := encodeHeader(hdr, dir)
	for _, role := range order {
		out = append(out, pad4(lumpBytes[role])...)
	}
	return out
}

func TestDecodeMinimalImage(t *testing.T) {
	img := buildMinimalImage(t)
	m, err := Decode(img, LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(m.Planes) != 1 || m.Planes[0].Distance != 0 {
		t.Errorf("planes = %+v", m.Planes)
	}
	if len(m.Vertices) != 1 || m.Vertices[0].X != 1 {
		t.Errorf("vertices = %+v", m.Vertices)
	}
	if m.Worldspawn.ClassName() != "worldspawn" {
		t.Errorf("worldspawn classname = %q", m.Worldspawn.ClassName())
	}
	if m.IsVised() {
		t.Error("IsVised() = true for a map with no clusters")
	}
}

func TestSaveMapRoundTripNoEdits(t *testing.T) {
	img := buildMinimalImage(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bsp")
	if err := os.WriteFile(path, img, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := Load(path, LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.SaveMap(path, ""); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(got, img) {
		t.Errorf("round trip changed bytes: got %d bytes, want %d bytes", len(got), len(img))
	}
}

func TestSaveMapWritesSiblingFileWithSuffix(t *testing.T) {
	img := buildMinimalImage(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "test.bsp")
	if err := os.WriteFile(path, img, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	m, err := Load(path, LoadOptions{Strict: true})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.SaveMap(path, "_edit"); err != nil {
		t.Fatalf("SaveMap: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "test_edit.bsp")); err != nil {
		t.Errorf("expected sibling file test_edit.bsp: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("original file should be untouched: %v", err)
	}
}
