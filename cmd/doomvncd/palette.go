package main

// NearestPaletteIndex finds the palette entry nearest (r, g, b) by
// squared Euclidean distance, short-circuiting on an exact match. This
// mirrors original_source/src/i_video.c's I_GetPaletteIndex, used by
// the real engine to map arbitrary RGB requests (font glyphs, HUD
// elements) onto the fixed 256-color palette VNC_PreparePalette was
// given. main.go uses it to resolve the white/black indices for the
// FPS-dot and disk-icon overlays against whatever palette SetPalette
// actually sent, rather than assuming fixed index values.
func NearestPaletteIndex(pal []byte, r, g, b byte) byte {
	best := 0
	bestDist := -1
	for i := 0; i < 256; i++ {
		pr, pg, pb := pal[i*3], pal[i*3+1], pal[i*3+2]
		if pr == r && pg == g && pb == b {
			return byte(i)
		}
		dr := int(pr) - int(r)
		dg := int(pg) - int(g)
		db := int(pb) - int(b)
		dist := dr*dr + dg*dg + db*db
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	return byte(best)
}
