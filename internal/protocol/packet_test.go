package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacket_RoundTrip(t *testing.T) {
	cases := []*Packet{
		NewPacket(CmdLoginRequest, "", map[string]string{"Username": "alice"}, nil),
		NewPacket(CmdUploadChunkRequest, "user-123", map[string]string{
			"FileId":      "f1",
			"ChunkIndex":  "0",
			"IsLastChunk": "false",
		}, []byte{1, 2, 3, 4, 5}),
		NewPacket(CmdSuccess, "u", nil, nil),
	}

	for _, p := range cases {
		var buf bytes.Buffer
		require.NoError(t, p.Encode(&buf))

		decoded, err := DecodePacket(buf.Bytes())
		require.NoError(t, err)

		assert.Equal(t, p.Command, decoded.Command)
		assert.Equal(t, p.PacketID, decoded.PacketID)
		assert.Equal(t, p.UserID, decoded.UserID)
		assert.Equal(t, p.Timestamp, decoded.Timestamp)
		assert.Equal(t, p.Metadata, decoded.Metadata)
		assert.Equal(t, p.Payload, decoded.Payload)
	}
}

func TestDecodePacket_RejectsBadVersion(t *testing.T) {
	p := NewPacket(CmdLoginRequest, "", nil, nil)
	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	body := buf.Bytes()
	body[0] = 9 // corrupt version byte

	_, err := DecodePacket(body)
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodePacket_RejectsTruncatedBody(t *testing.T) {
	p := NewPacket(CmdUploadChunkRequest, "u", map[string]string{"k": "v"}, []byte{1, 2, 3})
	var buf bytes.Buffer
	require.NoError(t, p.Encode(&buf))

	truncated := buf.Bytes()[:buf.Len()-2]
	_, err := DecodePacket(truncated)
	assert.Error(t, err)
}

func TestResponseCommandCode(t *testing.T) {
	pairs := map[Command]Command{
		CmdLoginRequest:             CmdLoginResponse,
		CmdLogoutRequest:            CmdLogoutResponse,
		CmdCreateAccountRequest:     CmdCreateAccountResponse,
		CmdFileListRequest:          CmdFileListResponse,
		CmdUploadInitRequest:        CmdUploadInitResponse,
		CmdUploadChunkRequest:       CmdUploadChunkResponse,
		CmdUploadCompleteRequest:    CmdUploadCompleteResponse,
		CmdDownloadInitRequest:      CmdDownloadInitResponse,
		CmdDownloadChunkRequest:     CmdDownloadChunkResponse,
		CmdDownloadCompleteRequest:  CmdDownloadCompleteResponse,
		CmdFileDeleteRequest:        CmdFileDeleteResponse,
		CmdDirectoryCreateRequest:   CmdDirectoryCreateResponse,
		CmdDirectoryListRequest:     CmdDirectoryListResponse,
		CmdDirectoryRenameRequest:   CmdDirectoryRenameResponse,
		CmdDirectoryDeleteRequest:   CmdDirectoryDeleteResponse,
		CmdFileMoveRequest:          CmdFileMoveResponse,
		CmdDirectoryContentsRequest: CmdDirectoryContentsResponse,
	}
	for req, want := range pairs {
		assert.Equal(t, want, ResponseCommandCode(req))
		assert.Equal(t, req+1, ResponseCommandCode(req))
	}
}

func TestResponseCommandCode_PanicsOnUnknownCode(t *testing.T) {
	assert.Panics(t, func() {
		ResponseCommandCode(Command(9999))
	})
}
