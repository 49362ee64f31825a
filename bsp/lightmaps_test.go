package bsp

import "testing"

func TestLightmapTexelRoundTrip(t *testing.T) {
	texels := []LightmapTexel{{R: 1, G: 2, B: 3}, {R: 255, G: 0, B: 128}}
	raw := encodeLightmapTexels(texels)
	back, err := decodeLightmapTexels(raw)
	if err != nil {
		t.Fatalf("decodeLightmapTexels: %v", err)
	}
	if len(back) != len(texels) {
		t.Fatalf("decoded %d texels, want %d", len(back), len(texels))
	}
	for i := range texels {
		if back[i] != texels[i] {
			t.Errorf("texel %d = %+v, want %+v", i, back[i], texels[i])
		}
	}
}

func TestDecodeLightmapTexelsRejectsShortLump(t *testing.T) {
	if _, err := decodeLightmapTexels(make([]byte, lightmapTexelSize+1)); err == nil {
		t.Error("expected a ShortLump error for a non-multiple-of-3 length")
	}
}

func TestBspModelLightmapsAccessors(t *testing.T) {
	m := &BspModel{raw: make(map[LumpRole][]byte)}
	if m.IsLit() {
		t.Fatal("IsLit() = true before any lightmap data is set")
	}

	texels := []LightmapTexel{{R: 9, G: 8, B: 7}}
	m.SetLightmaps(texels)
	if !m.IsLit() {
		t.Error("IsLit() = false after SetLightmaps")
	}

	got, err := m.Lightmaps()
	if err != nil {
		t.Fatalf("Lightmaps: %v", err)
	}
	if len(got) != 1 || got[0] != texels[0] {
		t.Errorf("Lightmaps() = %+v, want %+v", got, texels)
	}
}
