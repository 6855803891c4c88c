package session

import "errors"

// Errors returned by the session state machine.
var (
	// ErrUnauthorized is returned when an unauthenticated session receives a
	// command other than the auth handshake.
	ErrUnauthorized = errors.New("session: authentication required")

	// ErrAlreadyAuthenticated is returned when an authenticated session
	// receives LoginRequest/CreateAccountRequest again.
	ErrAlreadyAuthenticated = errors.New("session: already authenticated")

	// ErrAuthorizationMismatch is returned when a packet's user id differs
	// from the session's authenticated user id.
	ErrAuthorizationMismatch = errors.New("session: packet user id does not match session")

	// ErrDisconnecting is returned for any command received after logout.
	ErrDisconnecting = errors.New("session: session is disconnecting")
)
