package rfb

import "net"

// Encoding is the framebuffer encoding the client has negotiated via
// SetEncodings. Only the two values below are ever produced.
type Encoding uint8

const (
	EncodingRaw   Encoding = 0
	EncodingTight Encoding = 7
)

// packetSize is VNC_PACKET_SIZE: the fixed capacity of the incoming ring
// buffer that holds not-yet-parsed client bytes.
const packetSize = 1024

// EventType tags an Event posted to the engine's event sink.
type EventType int

const (
	EventKeyDown EventType = iota
	EventKeyUp
	EventMouse
	EventQuit
)

// Event is the tagged record the core posts to the (out-of-scope) game
// event queue. For key events, Data1 is the translated key, Data2 the
// localized (unshifted) key, Data3 the typed character (only set when
// text input is enabled). For mouse events, Data1 is the button mask,
// Data2/Data3 the relative X/Y deltas.
type Event struct {
	Type  EventType
	Data1 int32
	Data2 int32
	Data3 int32
}

// EventSink receives events posted by the core. The game's event queue
// implements this; the core never inspects what it posts.
type EventSink interface {
	PostEvent(Event)
}

// Server holds all per-process state for the RFB core: one accepted
// peer, the incremental client-message ring buffer, scratch output
// buffers, the client's negotiated encoding, and the engine's palette
// and framebuffer dimensions. There is exactly one Server per process;
// it is created by NewServer, connected by Init and torn down by Exit.
type Server struct {
	listenAddr string
	width      int
	height     int

	peer net.Conn

	sendFrame  bool
	encoding   Encoding
	textInput  bool

	clientPacket [packetSize]byte
	packetCursor int
	serverPacket []byte

	palette []byte // 768 bytes, lazily allocated on first PreparePalette

	mouseX, mouseY int32

	peekBuf []byte // 0 or 1 byte pulled ahead by pollReadable

	sink   EventSink
	logger Logger
}

// Width and Height report the framebuffer dimensions fixed by NewServer.
func (s *Server) Width() int  { return s.width }
func (s *Server) Height() int { return s.height }

// Connected reports whether a client is currently attached.
func (s *Server) Connected() bool { return s.peer != nil }
