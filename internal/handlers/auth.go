package handlers

import (
	"context"

	"github.com/sxlmons/cloudvault/internal/protocol"
	"github.com/sxlmons/cloudvault/internal/session"
)

// Login verifies credentials against the user store and, on success,
// transitions the session to Authenticated.
func (d *Deps) Login(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	var body loginRequestBody
	if err := decodeJSON(p.Payload, &body); err != nil {
		return nil, err
	}

	user, err := d.Users.Authenticate(body.Username, body.Password)
	if err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}

	s.MarkAuthenticated(user.ID)
	return domainResponse(p, loginResponseBody{Success: true, UserId: user.ID}, nil)
}

// Logout acknowledges the request and transitions the session to
// Disconnecting. The send-flush-close sequence that follows is
// the session loop's responsibility once it observes the Disconnecting
// state.
func (d *Deps) Logout(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	s.MarkDisconnecting()
	return domainResponse(p, statusBody{Success: true}, nil)
}

// CreateAccount registers a new user but does not itself authenticate the
// session.
func (d *Deps) CreateAccount(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	var body createAccountRequestBody
	if err := decodeJSON(p.Payload, &body); err != nil {
		return nil, err
	}

	user, err := d.Users.CreateAccount(body.Username, body.Password, body.Email)
	if err != nil {
		if isDomainError(err) {
			return failureResponse(p, err)
		}
		return nil, err
	}

	return domainResponse(p, createAccountResponseBody{Success: true, UserId: user.ID}, nil)
}
