package rfb

import (
	"encoding/binary"
	"errors"
	"time"
)

// Client -> server message type bytes (spec.md §4.C).
const (
	msgSetPixelFormat           = 0
	msgSetEncodings             = 2
	msgFramebufferUpdateRequest = 3
	msgKeyEvent                 = 4
	msgPointerEvent             = 5
	msgClientCutText            = 6
)

// dispatch results from parsing the message at scan_pos. A non-negative
// value is the next scan position; -1 means "not enough bytes yet";
// -2 means the byte at scan_pos is not a recognized message type.
const (
	needMoreBytes = -1
	desync        = -2
)

func (s *Server) postEvent(e Event) {
	if s.sink != nil {
		s.sink.PostEvent(e)
	}
}

// Pump services whatever is waiting on the peer socket, without ever
// blocking for data that hasn't arrived: exactly component C of
// spec.md §4. It polls readiness with a zero timeout, pulls any
// available bytes into the ring buffer, parses as many whole messages
// as are present, and posts events for KeyEvent/PointerEvent as it goes
// (pointer events coalesce into one `mouse` event, posted after all key
// events, once the socket has gone quiet for this call).
func (s *Server) Pump() {
	if s.peer == nil {
		return
	}

	var mouse pointerStage
	for {
		switch pollReadable(s.peer, &s.peekBuf) {
		case notReady:
			mouse.flush(s)
			return
		case pollError:
			s.log().Error("pump: poll failed")
			mouse.flush(s)
			return
		}

		if !s.recvAvailable() {
			s.closeFatal()
			mouse.flush(s)
			return
		}

		scanPos := 0
		for {
			next := s.handleMessage(scanPos, &mouse)
			if next == needMoreBytes {
				if scanPos == 0 && s.packetCursor == packetSize {
					// The pending message can never fit in the buffer:
					// drop it and resynchronize on later bytes.
					s.log().Warn("pump: message larger than buffer, dropping buffer")
					s.packetCursor = 0
					break
				}
				s.compact(scanPos)
				break
			}
			if next == desync {
				if s.peer == nil {
					// A handler (e.g. an unsupported pixel format)
					// already closed the peer and posted quit; this
					// desync sentinel is just unwinding the loop.
					mouse.flush(s)
					return
				}
				s.log().Warn("pump: unknown message type, dropping buffer")
				s.packetCursor = 0
				break
			}
			scanPos = next
		}
	}
}

// recvAvailable reads whatever is immediately available (the peekBuf
// byte, if any, plus anything else already buffered by the kernel)
// into the tail of client_packet. It returns false on a fatal
// transport failure (recv <= 0), matching spec.md §4.C step 2.
func (s *Server) recvAvailable() bool {
	tail := s.clientPacket[s.packetCursor:]
	if len(tail) == 0 {
		return true
	}

	n := 0
	if len(s.peekBuf) > 0 {
		n = copy(tail, s.peekBuf)
		s.peekBuf = s.peekBuf[n:]
		if len(s.peekBuf) > 0 {
			// shouldn't happen: peekBuf is at most one byte.
			s.peekBuf = nil
		}
	}
	if n < len(tail) {
		if n > 0 {
			// The peeked byte already makes this read non-empty: take
			// only what else is buffered, without blocking for more.
			_ = s.peer.SetReadDeadline(time.Now().Add(pollTimeout))
			defer s.peer.SetReadDeadline(time.Time{})
		}
		m, err := s.peer.Read(tail[n:])
		var netErr interface{ Timeout() bool }
		peekedOnly := n > 0 && m == 0 && errors.As(err, &netErr) && netErr.Timeout()
		if !peekedOnly {
			if m <= 0 || err != nil {
				return false
			}
			n += m
		}
	}
	s.packetCursor += n
	return true
}

// handleMessage parses exactly one message at scanPos, the way
// original_source/src/i_vnc.c's HandleVNCMessage does: return the next
// scan position, needMoreBytes, or desync.
func (s *Server) handleMessage(scanPos int, mouse *pointerStage) int {
	base := s.clientPacket[scanPos:s.packetCursor]
	if len(base) == 0 {
		return needMoreBytes
	}

	switch base[0] {
	case msgSetPixelFormat:
		return s.parseSetPixelFormat(scanPos, base)
	case msgSetEncodings:
		return s.parseSetEncodings(scanPos, base)
	case msgFramebufferUpdateRequest:
		return s.parseFramebufferUpdateRequest(scanPos, base)
	case msgKeyEvent:
		return s.parseKeyEvent(scanPos, base)
	case msgPointerEvent:
		return s.parsePointerEvent(scanPos, base, mouse)
	case msgClientCutText:
		return s.parseClientCutText(scanPos, base)
	default:
		return desync
	}
}

func (s *Server) parseSetPixelFormat(scanPos int, base []byte) int {
	const length = 20
	if len(base) < length {
		return needMoreBytes
	}
	bpp := base[4]
	trueColor := base[7]
	if bpp != 32 || trueColor == 0 {
		s.log().Error("unsupported pixel format", "bpp", bpp, "trueColor", trueColor)
		s.closeFatal()
		return desync
	}
	return scanPos + length
}

func (s *Server) parseSetEncodings(scanPos int, base []byte) int {
	if len(base) < 4 {
		return needMoreBytes
	}
	count := int(binary.BigEndian.Uint16(base[2:4]))
	length := 4 + 4*count
	if len(base) < length {
		return needMoreBytes
	}

	hasTight := false
	for i := 0; i < count; i++ {
		off := 4 + 4*i
		enc := binary.BigEndian.Uint32(base[off : off+4])
		if enc == uint32(EncodingTight) {
			hasTight = true
			break
		}
	}
	if hasTight {
		s.encoding = EncodingTight
	} else {
		s.encoding = EncodingRaw
	}
	return scanPos + length
}

func (s *Server) parseFramebufferUpdateRequest(scanPos int, base []byte) int {
	const length = 10
	if len(base) < length {
		return needMoreBytes
	}
	s.sendFrame = true
	return scanPos + length
}

func (s *Server) parseKeyEvent(scanPos int, base []byte) int {
	const length = 8
	if len(base) < length {
		return needMoreBytes
	}
	downFlag := base[1]
	keysym := binary.BigEndian.Uint32(base[4:8])

	localized, ok := translateKey(keysym)
	if !ok {
		return scanPos + length
	}

	ev := Event{Data1: int32(localized)}
	if downFlag != 0 {
		ev.Type = EventKeyDown
		ev.Data2 = int32(localized)
		if s.textInput {
			ev.Data3 = int32(keysym)
		}
	} else {
		ev.Type = EventKeyUp
	}
	s.postEvent(ev)
	return scanPos + length
}

func (s *Server) parsePointerEvent(scanPos int, base []byte, mouse *pointerStage) int {
	const length = 6
	if len(base) < length {
		return needMoreBytes
	}
	mask := base[1]
	x := int32(binary.BigEndian.Uint16(base[2:4]))
	y := int32(binary.BigEndian.Uint16(base[4:6]))
	mouse.record(x, y, mask)
	return scanPos + length
}

func (s *Server) parseClientCutText(scanPos int, base []byte) int {
	const headerLen = 8
	if len(base) < headerLen {
		return needMoreBytes
	}
	textLen := int(binary.BigEndian.Uint32(base[4:8]))
	length := headerLen + textLen
	if len(base) < length {
		return needMoreBytes
	}
	// Discarded: clipboard synchronization is a spec.md Non-goal. If
	// textLen overruns packetSize, the message can never fully fit in
	// the ring buffer and the caller will eventually desync and
	// resynchronize on a later message boundary (spec.md §4.C, §7).
	return scanPos + length
}

// compact shifts the unparsed tail starting at offset down to position
// 0, the way FinalizeVNCMessages does in original_source/src/i_vnc.c,
// and updates packetCursor to the length of that tail.
func (s *Server) compact(offset int) {
	if offset <= 0 {
		return
	}
	tail := s.packetCursor - offset
	if tail > 0 {
		copy(s.clientPacket[0:], s.clientPacket[offset:s.packetCursor])
	}
	s.packetCursor = tail
}

func (s *Server) closeFatal() {
	if s.peer != nil {
		_ = s.peer.Close()
		s.peer = nil
	}
	s.postEvent(Event{Type: EventQuit})
}
