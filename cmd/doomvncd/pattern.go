package main

// buildDemoPalette synthesizes a 768-byte (256 RGB triplet) palette
// standing in for a WAD-sourced PLAYPAL lump -- palette/WAD I/O is out
// of this repository's domain (spec.md §1 Non-goals), so the demo uses
// a deterministic ramp instead of loading game data.
func buildDemoPalette() []byte {
	pal := make([]byte, 768)
	for i := 0; i < 256; i++ {
		pal[i*3+0] = byte(i)
		pal[i*3+1] = byte((i * 3) % 256)
		pal[i*3+2] = byte((255 - i))
	}
	return pal
}

// drawPattern fills an 8-bit paletted framebuffer with a moving bar
// pattern, analogous to the teacher's drawImage but emitting palette
// indices instead of RGBA quads -- the renderer itself is an
// out-of-scope collaborator (spec.md §1), so this is only ever a
// stand-in for exercising SendFrame end-to-end.
func drawPattern(frame []byte, width, height, tic int) {
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := byte((x + y + tic) % 256)
			if x < tic%width {
				idx = 255
			}
			frame[y*width+x] = idx
		}
	}
}

// fpsDotsMaxTics caps the dot row at 20 dots, matching
// original_source/src/i_video.c's I_FinishUpdate ("if (tics > 20) tics
// = 20;").
const fpsDotsMaxTics = 20

// drawFPSDots lights one dot per tic elapsed since the previous call
// (capped at fpsDotsMaxTics), spaced 4 pixels apart along the bottom
// row, and darkens the remaining dot slots -- the same per-tic pixel
// writes original_source/src/i_video.c's I_FinishUpdate makes directly
// into I_VideoBuffer when display_fps_dots is set; no font rendering is
// involved. litIdx/darkIdx are the caller's current palette indices for
// white and black, since this demo's palette is not the real PLAYPAL.
func drawFPSDots(frame []byte, width, height, tics int, litIdx, darkIdx byte) {
	if tics > fpsDotsMaxTics {
		tics = fpsDotsMaxTics
	}
	row := (height - 1) * width
	i := 0
	for ; i < tics*4 && i < width; i += 4 {
		frame[row+i] = litIdx
	}
	for ; i < fpsDotsMaxTics*4 && i < width; i += 4 {
		frame[row+i] = darkIdx
	}
}

const diskIconSize = 8

// drawDiskIcon overlays a small solid block in the bottom-right corner
// for one frame, the way original_source/src/i_video.c's
// I_FinishUpdate briefly shows a disk-activity icon. restoreDiskIcon
// copies the saved pixels back afterward so the overlay never persists
// in the framebuffer the renderer continues to draw into. fillIdx is
// the caller's current palette index for white, resolved once via
// NearestPaletteIndex rather than assumed to be 0xff.
func drawDiskIcon(frame []byte, width, height int, saved []byte, fillIdx byte) {
	x0, y0 := width-diskIconSize, height-diskIconSize
	pos := 0
	for y := y0; y < height; y++ {
		for x := x0; x < width; x++ {
			saved[pos] = frame[y*width+x]
			frame[y*width+x] = fillIdx
			pos++
		}
	}
}

func restoreDiskIcon(frame []byte, width, height int, saved []byte) {
	x0, y0 := width-diskIconSize, height-diskIconSize
	pos := 0
	for y := y0; y < height; y++ {
		for x := x0; x < width; x++ {
			frame[y*width+x] = saved[pos]
			pos++
		}
	}
}
