// Package rfb implements a single-client RFB (RFC 6143) server core for a
// DOOM-family engine: a TCP-based VNC server that streams an 8-bit
// paletted framebuffer to a remote viewer and turns the viewer's keyboard
// and pointer traffic into engine input events.
//
// The package is deliberately narrow: one listening socket, one client,
// the "None" security type, and two framebuffer encodings (Raw and a
// palette-filtered Tight variant built on a hand-rolled stored-block
// zlib stream so no compression library is required). See SPEC_FULL.md
// at the repository root for the full protocol contract.
package rfb
