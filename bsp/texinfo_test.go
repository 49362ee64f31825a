package bsp

import "testing"

func TestTexInfoFlagsPreservationS6(t *testing.T) {
	const word = 0x000F0001
	flags := surfaceFlagsFromBits(word)
	if !flags.Light {
		t.Fatalf("Light bit not decoded from 0x%08X", word)
	}
	t1 := TexInfo{Flags: flags, HighBits: word &^ 0x3FF}

	if got := t1.FlagsWord(); got != word {
		t.Errorf("FlagsWord() = 0x%08X, want 0x%08X", got, word)
	}

	raw := encodeTexInfos([]TexInfo{t1})
	back, warnings, err := decodeTexInfos(raw)
	if err != nil {
		t.Fatalf("decodeTexInfos: %v", err)
	}
	if len(back) != 1 {
		t.Fatalf("decoded %d records, want 1", len(back))
	}
	if !back[0].Flags.Light {
		t.Errorf("round-tripped Light = false, want true")
	}
	if got := back[0].FlagsWord(); got != word {
		t.Errorf("round-tripped FlagsWord() = 0x%08X, want 0x%08X", got, word)
	}
	if len(warnings) != 1 || warnings[0].Kind != KindUnknownBits {
		t.Errorf("warnings = %+v, want one KindUnknownBits warning for the high bits", warnings)
	}
}

func TestDecodeTexInfosNoWarningForNamedFlagsOnly(t *testing.T) {
	t1 := TexInfo{Flags: SurfaceFlags{Light: true, Sky: true}}
	raw := encodeTexInfos([]TexInfo{t1})
	_, warnings, err := decodeTexInfos(raw)
	if err != nil {
		t.Fatalf("decodeTexInfos: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %+v, want none for an all-named flags word", warnings)
	}
}

func TestTexInfoSetTextureName(t *testing.T) {
	var t1 TexInfo
	if err := t1.SetTextureName("e1u1/metal1"); err != nil {
		t.Fatalf("SetTextureName: %v", err)
	}
	if got := t1.TextureNameString(); got != "e1u1/metal1" {
		t.Errorf("TextureNameString() = %q, want %q", got, "e1u1/metal1")
	}

	tooLong := make([]byte, 33)
	for i := range tooLong {
		tooLong[i] = 'a'
	}
	if err := t1.SetTextureName(string(tooLong)); err == nil {
		t.Errorf("SetTextureName with 33-byte name: expected error, got nil")
	}
}
