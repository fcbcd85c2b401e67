package rfb

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPalette() []byte {
	pal := make([]byte, 768)
	for i := 0; i < 256; i++ {
		pal[i*3+0] = byte(i)
		pal[i*3+1] = byte(i * 2)
		pal[i*3+2] = byte(i * 3)
	}
	return pal
}

// Round-trip law: a Raw-capable viewer decoding the wire output
// reconstructs R(x,y) = (P[3F], P[3F+1], P[3F+2]).
func TestSendRawFrameProducesBGRXQuads(t *testing.T) {
	s := &Server{width: 2, height: 1, serverPacket: make([]byte, 0, 256)}
	s.palette = testPalette()

	frame := []byte{5, 9}
	require.NoError(t, buildRawPacket(s, frame))

	buf := s.serverPacket
	require.Equal(t, 16+2*4, len(buf))

	pix0 := buf[16:20]
	assert.Equal(t, s.palette[5*3+2], pix0[0]) // B
	assert.Equal(t, s.palette[5*3+1], pix0[1]) // G
	assert.Equal(t, s.palette[5*3+0], pix0[2]) // R
	assert.Equal(t, byte(0), pix0[3])

	pix1 := buf[20:24]
	assert.Equal(t, s.palette[9*3+2], pix1[0])
	assert.Equal(t, s.palette[9*3+1], pix1[1])
	assert.Equal(t, s.palette[9*3+0], pix1[2])
}

// buildRawPacket drives the Raw encoder over an in-memory pipe and
// leaves the bytes it sent in s.serverPacket.
func buildRawPacket(s *Server, frame []byte) error {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()
	s.peer = server

	errc := make(chan error, 1)
	go func() { errc <- s.sendRawFrame(frame) }()

	out := make([]byte, 16+4*len(frame))
	if err := recvAll(client, out); err != nil {
		return err
	}
	s.serverPacket = out
	return <-errc
}

// Concrete scenario 6: small Tight frame body layout.
func TestTightFrameBodyLayout(t *testing.T) {
	s := &Server{width: 2, height: 1, serverPacket: make([]byte, 0, 4096)}
	pal := make([]byte, 768)
	pal[0], pal[1], pal[2] = 0xAA, 0xBB, 0xCC
	pal[3], pal[4], pal[5] = 0x11, 0x22, 0x33
	s.palette = pal

	frame := []byte{0, 1}
	buf := s.serverPacket[:0]
	buf = appendRectHeader(buf, s.width, s.height, EncodingTight)
	buf = append(buf, tightCompressionCtl, tightFilterPalette, 255)
	buf = append(buf, s.palette...)
	compactLen := storedZlibSize(len(frame))
	buf = appendTightLength(buf, compactLen)
	buf = appendStoredZlib(buf, frame)

	// rect header (16) + ctl (1) + filter (1) + count (1) + palette (768)
	paletteStart := 16 + 3
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0x11, 0x22, 0x33}, buf[paletteStart:paletteStart+6])

	zlibStart := paletteStart + 768 + 1 // +1 for the one-byte compact length
	assert.Equal(t, byte(zlibCMF), buf[zlibStart])
	assert.Equal(t, byte(zlibFLG), buf[zlibStart+1])

	trailer := buf[len(buf)-4:]
	assert.Equal(t, []byte{0x00, 0x03, 0x00, 0x02}, trailer)
}
