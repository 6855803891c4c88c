package protocol

import (
	"bytes"
	"encoding/binary"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrame_RoundTrip(t *testing.T) {
	var pipe bytes.Buffer
	fw := NewFrameWriter(&pipe)
	fr := NewFrameReader(&pipe)

	body := []byte("hello cloudvault")
	require.NoError(t, fw.WriteFrame(body))

	got, err := fr.ReadFrame()
	require.NoError(t, err)
	assert.Equal(t, body, got)
}

func TestFrameReader_RejectsOversizeFrame(t *testing.T) {
	var pipe bytes.Buffer
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], MaxFrameSize+1)
	pipe.Write(lenBuf[:])

	fr := NewFrameReader(&pipe)
	_, err := fr.ReadFrame()
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

func TestFrameReader_RejectsZeroLengthFrame(t *testing.T) {
	var pipe bytes.Buffer
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], 0)
	pipe.Write(lenBuf[:])

	fr := NewFrameReader(&pipe)
	_, err := fr.ReadFrame()
	assert.ErrorIs(t, err, ErrFrameEmpty)
}

func TestFrameReader_ShortLengthReadIsConnectionClosed(t *testing.T) {
	pipe := bytes.NewReader([]byte{1, 2})
	fr := NewFrameReader(pipe)
	_, err := fr.ReadFrame()
	assert.ErrorIs(t, err, ErrConnectionClosed)
}

func TestFrameReader_EOFBeforeAnyBytesIsConnectionClosed(t *testing.T) {
	fr := NewFrameReader(bytes.NewReader(nil))
	_, err := fr.ReadFrame()
	assert.ErrorIs(t, err, ErrConnectionClosed)
}

func TestFrame_WritePacketThenReadPacket(t *testing.T) {
	var pipe bytes.Buffer
	fw := NewFrameWriter(&pipe)
	fr := NewFrameReader(&pipe)

	p := NewPacket(CmdLoginRequest, "", map[string]string{"Username": "alice"}, nil)
	require.NoError(t, fw.WritePacket(p))

	decoded, err := fr.ReadPacket()
	require.NoError(t, err)
	assert.Equal(t, p.PacketID, decoded.PacketID)
	assert.Equal(t, p.Command, decoded.Command)
}

var _ io.Writer = (*byteSliceWriter)(nil)
