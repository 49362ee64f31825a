package bsp

const lightmapTexelSize = 3

// LightmapTexel is one RGB sample of lump 7.
type LightmapTexel struct {
	R, G, B uint8
}

// decodeLightmapTexels materializes the raw lightmap lump as RGB
// triples. This is only done on demand (e.g. for a host accessor);
// BspModel otherwise keeps the lump as raw bytes, since rebuilding it
// on every edit is costly (spec.md §9).
func decodeLightmapTexels(raw []byte) ([]LightmapTexel, error) {
	if len(raw)%lightmapTexelSize != 0 {
		return nil, newError(KindShortLump, LumpLightmaps, 0, "length %d not a multiple of %d", len(raw), lightmapTexelSize)
	}
	n := len(raw) / lightmapTexelSize
	out := make([]LightmapTexel, n)
	for i := 0; i < n; i++ {
		base := i * lightmapTexelSize
		out[i] = LightmapTexel{R: raw[base], G: raw[base+1], B: raw[base+2]}
	}
	return out, nil
}

func encodeLightmapTexels(texels []LightmapTexel) []byte {
	out := make([]byte, len(texels)*lightmapTexelSize)
	for i, t := range texels {
		base := i * lightmapTexelSize
		out[base] = t.R
		out[base+1] = t.G
		out[base+2] = t.B
	}
	return out
}
