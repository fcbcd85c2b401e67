package rfb

import (
	"fmt"
	"net"
)

// DefaultPort is the fixed TCP port the core listens on (spec.md §6).
// The protocol supports exactly one client and closes the listener once
// that client's handshake succeeds.
const DefaultPort = 5902

// Options configures a Server at construction time. Width and Height
// are fixed for the process lifetime; ListenAddr defaults to
// ":5902" (all interfaces, DefaultPort) when empty.
type Options struct {
	Width, Height int
	ListenAddr    string
	Sink          EventSink
	Logger        Logger
}

// NewServer allocates a Server and its scratch buffers but does not yet
// open any socket; call Init to start listening and accept the one
// client this core serves.
func NewServer(opts Options) *Server {
	addr := opts.ListenAddr
	if addr == "" {
		addr = fmt.Sprintf(":%d", DefaultPort)
	}
	// server_packet must hold one full Raw frame (width*height*4 bytes)
	// plus rectangle/Tight framing overhead; spec.md §3 only requires
	// the payload size, the header slack here just avoids a reallocation
	// on every SendFrame call.
	scratch := make([]byte, 0, opts.Width*opts.Height*4+4096)
	return &Server{
		listenAddr:   addr,
		width:        opts.Width,
		height:       opts.Height,
		serverPacket: scratch,
		sink:         opts.Sink,
		logger:       opts.Logger,
	}
}

// Init opens a listening socket, accepts connections until one
// completes the RFB handshake (spec.md §4.B), then closes the listener
// — this core ever serves exactly one client for its process lifetime.
func (s *Server) Init() error {
	ln, err := net.Listen("tcp", s.listenAddr)
	if err != nil {
		return fmt.Errorf("rfb: listen %s: %w", s.listenAddr, err)
	}
	defer ln.Close()

	for {
		conn, err := ln.Accept()
		if err != nil {
			s.log().Error("init: accept failed", "err", err)
			continue
		}

		if err := doHandshake(conn, s.width, s.height); err != nil {
			s.log().Warn("init: handshake rejected", "err", err)
			conn.Close()
			continue
		}

		s.peer = conn
		s.log().Info("init: client connected", "remote", conn.RemoteAddr())
		return nil
	}
}

// PreparePalette copies the caller's 256 RGB triplets (768 bytes) into
// the server's own palette buffer, lazily allocating it on first call.
// The buffer is always copied, never aliased — spec.md §9/SPEC_FULL.md
// §10 decision 4: the caller's buffer may be reused or evicted after
// this call returns.
func (s *Server) PreparePalette(rgb []byte) {
	if len(rgb) != 768 {
		panic("rfb: PreparePalette requires exactly 768 bytes (256 RGB triplets)")
	}
	if s.palette == nil {
		s.palette = make([]byte, 768)
	}
	copy(s.palette, rgb)
}

// SendFrame sends the current framebuffer to the client if, and only
// if, the client has an outstanding FramebufferUpdateRequest and a
// palette has been supplied. frame must contain width*height
// palette-index bytes in row-major order. Any transport failure closes
// the peer and posts a quit event; the caller's next Pump call will
// then observe Connected() == false.
func (s *Server) SendFrame(frame []byte) {
	if !s.sendFrame || s.palette == nil {
		return
	}
	if s.peer == nil {
		return
	}

	var err error
	switch s.encoding {
	case EncodingTight:
		err = s.sendTightFrame(frame)
	default:
		err = s.sendRawFrame(frame)
	}
	if err != nil {
		s.log().Error("sendframe: transport failure", "encoding", s.encoding)
		s.closeFatal()
		return
	}
	s.sendFrame = false
}

// SetTextInput toggles whether KeyEvent down-events also carry the raw
// (shifted) keysym in Data3.
func (s *Server) SetTextInput(enabled bool) {
	s.textInput = enabled
}

// Exit releases the palette and scratch buffers and closes the peer
// connection, if any. It is safe to call more than once.
func (s *Server) Exit() {
	s.palette = nil
	s.serverPacket = nil
	if s.peer != nil {
		_ = s.peer.Close()
		s.peer = nil
	}
}
