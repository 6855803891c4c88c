// Package session implements the per-connection session state machine and
// its lifecycle manager.
package session

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sxlmons/cloudvault/internal/protocol"
)

// Session represents one TCP connection and its authentication state.
// Commands receive a borrowed reference for the duration of one packet.
type Session struct {
	ID   string
	Conn net.Conn

	Reader *protocol.FrameReader
	Writer *protocol.FrameWriter

	mu           sync.Mutex
	state        State
	userID       string
	lastActivity time.Time

	ctx    context.Context
	cancel context.CancelFunc
}

// New constructs a Session wrapping conn, in the initial AuthRequired state.
func New(parent context.Context, conn net.Conn) *Session {
	ctx, cancel := context.WithCancel(parent)
	return &Session{
		ID:           uuid.NewString(),
		Conn:         conn,
		Reader:       protocol.NewFrameReader(conn),
		Writer:       protocol.NewFrameWriter(conn),
		state:        StateAuthRequired,
		lastActivity: time.Now(),
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Context returns the session's cancellation context.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Cancel triggers the session's cancellation signal, aborting any
// in-flight read/write promptly.
func (s *Session) Cancel() {
	s.cancel()
}

// State returns the session's current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// UserID returns the session's authenticated user id, or "" if none.
func (s *Session) UserID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

// Touch records activity, resetting the inactivity timer.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActivity = time.Now()
}

// IdleFor returns how long the session has gone without traffic.
func (s *Session) IdleFor() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Since(s.lastActivity)
}

// Authorize enforces the per-command authorization rule: an AuthRequired
// session may only receive LoginRequest/CreateAccountRequest;
// an Authenticated session may receive anything else, but not the auth
// handshake again; Disconnecting sessions accept nothing. Beyond state, a
// non-empty packet user id must equal the session's authenticated user id.
func (s *Session) Authorize(cmd protocol.Command, packetUserID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case StateDisconnecting:
		return ErrDisconnecting
	case StateAuthRequired:
		if !protocol.IsAuthCommand(cmd) {
			return ErrUnauthorized
		}
		return nil
	case StateAuthenticated:
		if protocol.IsAuthCommand(cmd) {
			return ErrAlreadyAuthenticated
		}
		if packetUserID != "" && packetUserID != s.userID {
			return ErrAuthorizationMismatch
		}
		return nil
	default:
		return ErrUnauthorized
	}
}

// MarkAuthenticated transitions AuthRequired -> Authenticated on successful
// login/account creation, binding the session to userID.
func (s *Session) MarkAuthenticated(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateAuthRequired {
		s.userID = userID
		s.state = StateAuthenticated
	}
}

// MarkDisconnecting transitions Authenticated -> Disconnecting, called after
// a successful LogoutRequest.
func (s *Session) MarkDisconnecting() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateDisconnecting
}

// Close cancels the session and closes its connection. Safe to call more
// than once.
func (s *Session) Close() error {
	s.cancel()
	return s.Conn.Close()
}
