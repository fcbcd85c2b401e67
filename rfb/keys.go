package rfb

// Engine key codes. These mirror a DOOM-family engine's doomkeys.h
// constants closely enough for the translator's purposes; a real
// integration would import the engine's own key-code package instead.
const (
	KeyRightArrow = 0xae
	KeyLeftArrow  = 0xac
	KeyUpArrow    = 0xad
	KeyDownArrow  = 0xaf
	KeyEscape     = 0x1b
	KeyEnter      = 0x0d
	KeyTab        = 0x09
	KeyF1         = 0x80 + 0x3b
	KeyF2         = 0x80 + 0x3c
	KeyF3         = 0x80 + 0x3d
	KeyF4         = 0x80 + 0x3e
	KeyF5         = 0x80 + 0x3f
	KeyF6         = 0x80 + 0x40
	KeyF7         = 0x80 + 0x41
	KeyF8         = 0x80 + 0x42
	KeyF9         = 0x80 + 0x43
	KeyF10        = 0x80 + 0x44
	KeyF11        = 0x80 + 0x57
	KeyF12        = 0x80 + 0x58
	KeyBackspace  = 0x08
	KeyPause      = 0xff
	KeyRShift     = 0x80 + 0x36
	KeyRCtrl      = 0x80 + 0x1d
	KeyRAlt       = 0x80 + 0x38
	KeyCapsLock   = 0xba
	KeyScrollLock = 0x86
	KeyNumLock    = 0x90
	KeyPrtScr     = 0x7fff // no standard DOOM key; reserved sentinel
	KeyHome       = 0x80 + 0x47
	KeyEnd        = 0x80 + 0x4f
	KeyPageUp     = 0x80 + 0x49
	KeyPageDown   = 0x80 + 0x51
	KeyInsert     = 0x80 + 0x52
)

// keysymMap translates X11 keysyms that have no direct ASCII encoding
// to engine key codes. Keys not present here and > 0x7f are dropped
// (spec.md §4.D): an unrecognized named keysym produces no event.
//
// Delete (0xffff) is deliberately mapped to the Escape key code, not a
// dedicated "delete" key. This matches the one existing reference this
// module is grounded on (original_source/src/i_vnc.c) and is almost
// certainly an upstream copy-paste artifact, not an intentional design
// choice — see SPEC_FULL.md §10, decision 1. Preserved rather than
// silently "fixed".
var keysymMap = map[uint32]int32{
	0xff1b: KeyEscape,
	0xff08: KeyBackspace,
	0xff09: KeyTab,
	0xff0d: KeyEnter,
	0xffff: KeyEscape, // Delete -> Escape's code; see doc comment above.
	0xffbe: KeyF1,
	0xffbf: KeyF2,
	0xffc0: KeyF3,
	0xffc1: KeyF4,
	0xffc2: KeyF5,
	0xffc3: KeyF6,
	0xffc4: KeyF7,
	0xffc5: KeyF8,
	0xffc6: KeyF9,
	0xffc7: KeyF10,
	0xffc8: KeyF11,
	0xffc9: KeyF12,
	0xff51: KeyLeftArrow,
	0xff52: KeyUpArrow,
	0xff53: KeyRightArrow,
	0xff54: KeyDownArrow,
	0xff13: KeyPause,
	0xffe1: KeyRShift,
	0xffe2: KeyRShift,
	0xffe3: KeyRCtrl,
	0xffe4: KeyRCtrl,
	0xffe9: KeyRAlt,
	0xffea: KeyRAlt,
	0xffe5: KeyCapsLock,
	0xff14: KeyScrollLock,
	0xff7f: KeyNumLock,
	0xff61: KeyPrtScr,
	0xff50: KeyHome,
	0xff57: KeyEnd,
	0xff55: KeyPageUp,
	0xff56: KeyPageDown,
	0xff63: KeyInsert,
}

// unshiftTable maps a printable keysym in [0, 0x7f] that a US keyboard
// produces only with Shift held to the unshifted key that would have
// produced it, e.g. '!' (0x21) -> '1' (0x31), 'A' (0x41) -> 'a' (0x61).
// A zero entry means the keysym is not shift-produced and maps to
// itself.
var unshiftTable = buildUnshiftTable()

func buildUnshiftTable() [128]byte {
	var t [128]byte
	shiftPairs := map[byte]byte{
		'!': '1', '@': '2', '#': '3', '$': '4', '%': '5',
		'^': '6', '&': '7', '*': '8', '(': '9', ')': '0',
		'"': '\'', ':': ';', '<': ',', '>': '.', '?': '/',
		'_': '-', '+': '=', '{': '[', '}': ']', '|': '\\', '~': '`',
	}
	for k, v := range shiftPairs {
		t[k] = v
	}
	for c := byte('A'); c <= 'Z'; c++ {
		t[c] = c + 0x20
	}
	return t
}

// unshift returns the unshifted ("localized") key for a printable
// keysym k in [0, 0x7f]. Non-shifted printables (including lowercase
// letters, digits, space, and control characters) map to themselves.
func unshift(k uint32) uint32 {
	if k >= 128 {
		return k
	}
	if mapped := unshiftTable[k]; mapped != 0 {
		return uint32(mapped)
	}
	return k
}

// translateKey maps an RFB keysym to (localized key, ok). ok is false
// when the keysym is a named symbol this module does not recognize and
// is > 0x7f — spec.md §4.D requires such keys to be dropped with no
// emitted event.
func translateKey(keysym uint32) (localized uint32, ok bool) {
	if mapped, known := keysymMap[keysym]; known {
		return uint32(mapped), true
	}
	if keysym > 0x7f {
		return 0, false
	}
	return unshift(keysym), true
}
