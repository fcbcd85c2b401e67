package main

// gammaLevels mirrors the shape of a DOOM-family engine's gammatable: a
// small number of gamma-correction curves selectable at runtime, each
// mapping a raw byte [0,255] to a corrected byte. Index 0 is identity
// (no correction); the others darken progressively, matching
// original_source/src/i_video.c's I_SetPalette, which looks up
// gammatable[usegamma][byte] and masks off the low two bits before
// handing the corrected triplets to PreparePalette.
var gammaLevels = buildGammaLevels()

const gammaLevelCount = 5

func buildGammaLevels() [gammaLevelCount][256]byte {
	var levels [gammaLevelCount][256]byte
	for lvl := 0; lvl < gammaLevelCount; lvl++ {
		// factor 1.0 at level 0, darkening towards ~0.6 at the highest
		// level -- a simple stand-in for DOOM's precomputed gamma
		// curves, which this repository has no WAD-sourced table for.
		factor := 1.0 - float64(lvl)*0.1
		for b := 0; b < 256; b++ {
			v := float64(b) * factor
			if v > 255 {
				v = 255
			}
			levels[lvl][b] = byte(v)
		}
	}
	return levels
}

// ApplyGamma applies gammaLevels[level] to every byte of a 768-byte
// (256 RGB triplet) palette and masks off the low two bits of each
// corrected channel, exactly as I_SetPalette does.
func ApplyGamma(doomPalette []byte, level int) []byte {
	if level < 0 || level >= gammaLevelCount {
		level = 0
	}
	out := make([]byte, len(doomPalette))
	table := gammaLevels[level]
	for i, b := range doomPalette {
		out[i] = table[b] &^ 3
	}
	return out
}
