package rfb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreparePaletteCopiesNotAliases(t *testing.T) {
	s := &Server{}
	caller := make([]byte, 768)
	caller[0] = 0x42

	s.PreparePalette(caller)
	require.NotNil(t, s.palette)
	assert.Equal(t, byte(0x42), s.palette[0])

	caller[0] = 0x99 // mutate caller's buffer after the call
	assert.Equal(t, byte(0x42), s.palette[0], "PreparePalette must copy, not alias")
}

func TestSendFrameNoopWithoutPendingRequest(t *testing.T) {
	s := &Server{width: 1, height: 1, serverPacket: make([]byte, 0, 64)}
	s.PreparePalette(make([]byte, 768))
	s.sendFrame = false

	s.SendFrame([]byte{0})
	assert.False(t, s.sendFrame)
}

func TestSendFrameDefersWithoutPalette(t *testing.T) {
	s := &Server{width: 1, height: 1, serverPacket: make([]byte, 0, 64)}
	s.sendFrame = true

	s.SendFrame([]byte{0})
	assert.True(t, s.sendFrame, "SendFrame must defer, not clear the flag, until a palette exists")
}

func TestExitReleasesBuffers(t *testing.T) {
	s := &Server{}
	s.PreparePalette(make([]byte, 768))
	s.serverPacket = make([]byte, 16)

	s.Exit()
	assert.Nil(t, s.palette)
	assert.Nil(t, s.serverPacket)
	assert.False(t, s.Connected())
}
