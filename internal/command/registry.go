// Package command implements the command dispatcher: a
// mapping from request command code to at most one handler.
package command

import (
	"context"
	"fmt"

	"github.com/sxlmons/cloudvault/internal/protocol"
	"github.com/sxlmons/cloudvault/internal/session"
)

// Handler processes one request packet for one session and returns the
// response packet. Handlers must not retain s past Handle's completion.
type Handler interface {
	Handle(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, s *session.Session, p *protocol.Packet) (*protocol.Packet, error) {
	return f(ctx, s, p)
}

// Registry maps command codes to handlers. Registration is explicit at
// startup.
type Registry struct {
	handlers map[protocol.Command]Handler
}

// NewRegistry constructs an empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[protocol.Command]Handler)}
}

// Register maps cmd to handler. Registering the same code twice is a
// programming error and panics.
func (r *Registry) Register(cmd protocol.Command, handler Handler) {
	if _, exists := r.handlers[cmd]; exists {
		panic(fmt.Sprintf("command: handler already registered for code %d", cmd))
	}
	r.handlers[cmd] = handler
}

// Lookup returns the handler for cmd, or false if none is registered.
func (r *Registry) Lookup(cmd protocol.Command) (Handler, bool) {
	h, ok := r.handlers[cmd]
	return h, ok
}
