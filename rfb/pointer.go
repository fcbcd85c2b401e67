package rfb

// pointerStage accumulates pointer events seen during a single Pump call.
// Only the final position and button mask matter: many PointerEvent
// messages can arrive in one batch (e.g. a fast mouse sweep), and
// spec.md §4.D requires them to coalesce into exactly one `mouse` event
// posted after all key events from that Pump call.
type pointerStage struct {
	seen    bool
	x, y    int32
	buttons int32
}

// repackButtons turns an RFB PointerEvent button-mask byte (bit 0 left,
// bit 1 middle, bit 2 right, bit 3 scroll-up, bit 4 scroll-down) into
// the engine's bit order: left | right<<1 | middle<<2 | scrollUp<<3 |
// scrollDown<<4.
func repackButtons(mask byte) int32 {
	left := int32(mask & 0x01)
	middle := int32(mask&0x02) >> 1
	right := int32(mask&0x04) >> 2
	scrollUp := int32(mask&0x08) >> 3
	scrollDown := int32(mask&0x10) >> 4
	return left | (right << 1) | (middle << 2) | (scrollUp << 3) | (scrollDown << 4)
}

func (p *pointerStage) record(x, y int32, mask byte) {
	p.seen = true
	p.x = x
	p.y = y
	p.buttons = repackButtons(mask)
}

// flush posts one coalesced mouse event carrying the delta from the
// server's last known cursor position, then updates that position. It
// is a no-op if no PointerEvent was seen this Pump call.
func (p *pointerStage) flush(s *Server) {
	if !p.seen {
		return
	}
	dx := p.x - s.mouseX
	dy := p.y - s.mouseY
	s.postEvent(Event{Type: EventMouse, Data1: p.buttons, Data2: dx, Data3: dy})
	s.mouseX = p.x
	s.mouseY = p.y
}
