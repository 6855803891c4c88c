package session

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxlmons/cloudvault/internal/protocol"
)

func pipeSession(t *testing.T) (*Session, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	t.Cleanup(func() { client.Close(); server.Close() })
	return New(context.Background(), server), client
}

func TestSession_AuthRequiredOnlyAcceptsAuthCommands(t *testing.T) {
	s, _ := pipeSession(t)

	require.NoError(t, s.Authorize(protocol.CmdLoginRequest, ""))
	require.NoError(t, s.Authorize(protocol.CmdCreateAccountRequest, ""))

	err := s.Authorize(protocol.CmdFileListRequest, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, StateAuthRequired, s.State())
}

func TestSession_LoginTransitionsToAuthenticated(t *testing.T) {
	s, _ := pipeSession(t)
	s.MarkAuthenticated("user-1")

	assert.Equal(t, StateAuthenticated, s.State())
	assert.Equal(t, "user-1", s.UserID())

	assert.NoError(t, s.Authorize(protocol.CmdFileListRequest, ""))
	assert.NoError(t, s.Authorize(protocol.CmdFileListRequest, "user-1"))
}

func TestSession_AuthenticatedRejectsAuthCommandsAgain(t *testing.T) {
	s, _ := pipeSession(t)
	s.MarkAuthenticated("user-1")

	err := s.Authorize(protocol.CmdLoginRequest, "")
	assert.ErrorIs(t, err, ErrAlreadyAuthenticated)
}

func TestSession_AuthorizationMismatch(t *testing.T) {
	s, _ := pipeSession(t)
	s.MarkAuthenticated("user-1")

	err := s.Authorize(protocol.CmdFileListRequest, "someone-else")
	assert.ErrorIs(t, err, ErrAuthorizationMismatch)
}

func TestSession_DisconnectingAcceptsNothing(t *testing.T) {
	s, _ := pipeSession(t)
	s.MarkAuthenticated("user-1")
	s.MarkDisconnecting()

	err := s.Authorize(protocol.CmdFileListRequest, "")
	assert.ErrorIs(t, err, ErrDisconnecting)
}
