package rfb

import "encoding/binary"

const msgFramebufferUpdate = 0

// rectHeader appends a FramebufferUpdate message header (message type,
// padding, rect count 1) followed by one rectangle header covering the
// whole screen with the given encoding.
func appendRectHeader(buf []byte, width, height int, encoding Encoding) []byte {
	buf = append(buf, msgFramebufferUpdate, 0)
	buf = binary.BigEndian.AppendUint16(buf, 1) // one rectangle
	buf = binary.BigEndian.AppendUint16(buf, 0) // x
	buf = binary.BigEndian.AppendUint16(buf, 0) // y
	buf = binary.BigEndian.AppendUint16(buf, uint16(width))
	buf = binary.BigEndian.AppendUint16(buf, uint16(height))
	buf = binary.BigEndian.AppendUint32(buf, uint32(encoding))
	return buf
}

// sendRawFrame implements component E (spec.md §4.E): one Raw rectangle
// covering the whole screen, each palette-indexed pixel expanded to a
// BGRX quad (B, G, R, 0) using the current palette.
func (s *Server) sendRawFrame(frame []byte) error {
	buf := s.serverPacket[:0]
	buf = appendRectHeader(buf, s.width, s.height, EncodingRaw)

	for _, idx := range frame {
		off := int(idx) * 3
		buf = append(buf, s.palette[off+2], s.palette[off+1], s.palette[off], 0)
	}
	return sendAll(s.peer, buf)
}
