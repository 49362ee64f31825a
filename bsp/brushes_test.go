package bsp

import "testing"

func TestBrushContentFlagsRoundTrip(t *testing.T) {
	const word = uint32(1<<0 | 1<<5 | 1<<27 | 1<<10) // solid, water, detail, and an unnamed bit (10)
	flags := contentFlagsFromBits(word)
	if !flags.Solid || !flags.Water || !flags.Detail {
		t.Fatalf("expected Solid, Water, Detail set from 0x%X: %+v", word, flags)
	}

	b := Brush{Contents: flags, OpaqueContentBits: word &^ namedContentMask}
	if got := b.ContentsWord(); got != word {
		t.Errorf("ContentsWord() = 0x%X, want 0x%X", got, word)
	}

	raw := encodeBrushes([]Brush{b})
	back, warnings, err := decodeBrushes(raw)
	if err != nil {
		t.Fatalf("decodeBrushes: %v", err)
	}
	if back[0].ContentsWord() != word {
		t.Errorf("round-tripped ContentsWord() = 0x%X, want 0x%X", back[0].ContentsWord(), word)
	}
	if len(warnings) != 1 || warnings[0].Kind != KindUnknownBits {
		t.Errorf("warnings = %+v, want one KindUnknownBits warning for bit 10", warnings)
	}
}

func TestDecodeBrushesRejectsShortLump(t *testing.T) {
	if _, _, err := decodeBrushes(make([]byte, brushSize+1)); err == nil {
		t.Error("expected a ShortLump error for a non-multiple-of-record-size length")
	}
}

func TestDecodeBrushesNoWarningForNamedBitsOnly(t *testing.T) {
	b := Brush{Contents: ContentFlags{Solid: true}}
	raw := encodeBrushes([]Brush{b})
	_, warnings, err := decodeBrushes(raw)
	if err != nil {
		t.Fatalf("decodeBrushes: %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %+v, want none for an all-named contents word", warnings)
	}
}
