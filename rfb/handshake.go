package rfb

import (
	"encoding/binary"
	"net"
)

const (
	protocolVersion = "RFB 003.008\n"
	securityNone    = 1

	securityResultOK     uint32 = 0
	securityResultFailed uint32 = 1
)

// handshakeError marks a handshake that was refused (bad version,
// unsupported security choice). The caller retries accept(); it is not
// a fatal transport error.
type handshakeError struct{ reason string }

func (e *handshakeError) Error() string { return "rfb: handshake rejected: " + e.reason }

// doHandshake executes the RFB 3.8 handshake (spec.md §4.B) over a freshly
// accepted connection: version exchange, security negotiation (None
// only), and ServerInit emission. On success the connection is left
// positioned at the start of the serving phase. On any rejection the
// peer is informed where the protocol allows it, and a *handshakeError
// is returned so the caller can close the connection and accept again.
func doHandshake(conn net.Conn, width, height int) error {
	if err := sendAll(conn, []byte(protocolVersion)); err != nil {
		return err
	}

	clientVersion := make([]byte, 12)
	if err := recvAll(conn, clientVersion); err != nil {
		return err
	}
	if string(clientVersion) != protocolVersion {
		reason := "Unsupported version"
		rejectMsg := append(encodeU32(0), encodeCutText(reason)...)
		_ = sendAll(conn, rejectMsg)
		return &handshakeError{reason: "bad version " + string(clientVersion)}
	}

	// Security-types advertisement: one type, None.
	if err := sendAll(conn, []byte{1, securityNone}); err != nil {
		return err
	}

	secType := make([]byte, 1)
	if err := recvAll(conn, secType); err != nil {
		return err
	}
	if secType[0] != securityNone {
		reason := "Illegal auth type"
		rejectMsg := append(encodeU32(securityResultFailed), encodeCutText(reason)...)
		_ = sendAll(conn, rejectMsg)
		return &handshakeError{reason: "bad security type"}
	}

	if err := sendAll(conn, encodeU32(securityResultOK)); err != nil {
		return err
	}

	// ClientInit: one byte, shared-flag, value ignored (only one client
	// is ever served).
	shared := make([]byte, 1)
	if err := recvAll(conn, shared); err != nil {
		return err
	}

	return sendServerInit(conn, width, height)
}

func sendServerInit(conn net.Conn, width, height int) error {
	buf := make([]byte, 0, 28)
	buf = binary.BigEndian.AppendUint16(buf, uint16(width))
	buf = binary.BigEndian.AppendUint16(buf, uint16(height))
	buf = append(buf,
		32, // bits-per-pixel
		24, // depth
		0,  // big-endian flag
		1,  // true-color flag
	)
	buf = binary.BigEndian.AppendUint16(buf, 255) // red max
	buf = binary.BigEndian.AppendUint16(buf, 255) // green max
	buf = binary.BigEndian.AppendUint16(buf, 255) // blue max
	buf = append(buf,
		16, // red shift
		8,  // green shift
		0,  // blue shift
		0, 0, 0, // padding
	)
	name := []byte("DOOM")
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(name)))
	buf = append(buf, name...)
	return sendAll(conn, buf)
}

func encodeU32(v uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, v)
	return b
}

// encodeCutText packs a best-effort ASCII failure reason the way the
// handshake's reject paths do: a big-endian 32-bit length followed by
// the raw bytes.
func encodeCutText(s string) []byte {
	b := make([]byte, 4, 4+len(s))
	binary.BigEndian.PutUint32(b, uint32(len(s)))
	return append(b, s...)
}
