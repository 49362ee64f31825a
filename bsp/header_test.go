package bsp

import (
	"bytes"
	"testing"
)

func TestDecodeHeaderRoundTrip(t *testing.T) {
	var hdr Header
	copy(hdr.Magic[:], headerMagic)
	hdr.Version = headerVersion
	var dir LumpDirectory
	dir.Entries[LumpPlanes] = LumpEntry{Offset: 160, Length: 40}
	dir.Entries[LumpVertices] = LumpEntry{Offset: 200, Length: 24}
	dir.Order = computeLumpOrder(dir.Entries)

	raw := encodeHeader(hdr, dir)
	if len(raw) != directoryBase {
		t.Fatalf("encodeHeader length = %d, want %d", len(raw), directoryBase)
	}

	v := newByteView(raw)
	gotHdr, gotDir, warnings, err := decodeHeader(v, true)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if !bytes.Equal(gotHdr.Magic[:], hdr.Magic[:]) || gotHdr.Version != hdr.Version {
		t.Errorf("header = %+v, want %+v", gotHdr, hdr)
	}
	if gotDir.Entries[LumpPlanes] != dir.Entries[LumpPlanes] {
		t.Errorf("planes entry = %+v, want %+v", gotDir.Entries[LumpPlanes], dir.Entries[LumpPlanes])
	}
}

func TestDecodeHeaderStrictRejectsBadMagic(t *testing.T) {
	raw := make([]byte, directoryBase)
	copy(raw, "BAD\x00")
	v := newByteView(raw)
	if _, _, _, err := decodeHeader(v, true); err == nil {
		t.Fatal("expected an error in strict mode for bad magic, got nil")
	}
}

func TestDecodeHeaderNonStrictWarnsOnBadMagic(t *testing.T) {
	raw := make([]byte, directoryBase)
	copy(raw, "BAD\x00")
	v := newByteView(raw)
	_, _, warnings, err := decodeHeader(v, false)
	if err != nil {
		t.Fatalf("decodeHeader: %v", err)
	}
	if len(warnings) == 0 {
		t.Fatal("expected a warning for bad magic in non-strict mode")
	}
}

func TestComputeLumpOrderSortsByOffset(t *testing.T) {
	var entries [numLumps]LumpEntry
	entries[LumpPlanes] = LumpEntry{Offset: 300}
	entries[LumpVertices] = LumpEntry{Offset: 160}
	order := computeLumpOrder(entries)
	// The 17 other lumps sit at offset 0 and sort first, so Vertices (160)
	// lands just before Planes (300) at the end of the order.
	if order[numLumps-2] != int(LumpVertices) {
		t.Errorf("order[%d] = %d, want LumpVertices (%d)", numLumps-2, order[numLumps-2], LumpVertices)
	}
}
