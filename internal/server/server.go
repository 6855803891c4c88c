// Package server implements the TCP acceptor and per-connection request
// loop: accept, frame, dispatch,
// respond, until the peer disconnects or the server shuts down.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/sxlmons/cloudvault/internal/command"
	"github.com/sxlmons/cloudvault/internal/logger"
	"github.com/sxlmons/cloudvault/internal/protocol"
	"github.com/sxlmons/cloudvault/internal/session"
)

// Server owns the TCP listener, the session manager, and the command
// registry used to dispatch every accepted connection's requests.
type Server struct {
	Manager  *session.Manager
	Registry *command.Registry

	mu       sync.Mutex
	listener net.Listener
	wg       sync.WaitGroup
	ready    chan struct{}
}

// New constructs a Server. Call Serve to start accepting connections.
func New(manager *session.Manager, registry *command.Registry) *Server {
	return &Server{Manager: manager, Registry: registry, ready: make(chan struct{})}
}

// Ready is closed once the listener is bound, e.g. after Serve was called
// with an ephemeral port ("127.0.0.1:0") and the caller needs Addr.
func (srv *Server) Ready() <-chan struct{} {
	return srv.ready
}

// Addr returns the bound listener address. Only valid after Ready is closed.
func (srv *Server) Addr() net.Addr {
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.listener == nil {
		return nil
	}
	return srv.listener.Addr()
}

// Serve listens on address and accepts connections until ctx is cancelled
// or the listener fails. It blocks until the accept loop exits.
func (srv *Server) Serve(ctx context.Context, address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("server: listen on %s: %w", address, err)
	}

	srv.mu.Lock()
	srv.listener = listener
	srv.mu.Unlock()
	close(srv.ready)

	go func() {
		<-ctx.Done()
		_ = listener.Close()
	}()

	logger.Info("server listening", "address", listener.Addr().String())

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				srv.wg.Wait()
				return nil
			default:
				return fmt.Errorf("server: accept: %w", err)
			}
		}

		srv.wg.Add(1)
		go func() {
			defer srv.wg.Done()
			srv.handleConn(ctx, conn)
		}()
	}
}

// Shutdown closes the listener and cancels every tracked session, then
// waits for their connection loops to exit.
func (srv *Server) Shutdown() {
	srv.mu.Lock()
	l := srv.listener
	srv.mu.Unlock()
	if l != nil {
		_ = l.Close()
	}
	srv.Manager.Shutdown()
	srv.wg.Wait()
}

// handleConn runs one connection's request loop until it disconnects,
// the session is cancelled, or an unrecoverable protocol error occurs.
func (srv *Server) handleConn(ctx context.Context, conn net.Conn) {
	sess := session.New(ctx, conn)
	defer sess.Close()

	if err := srv.Manager.Admit(sess); err != nil {
		logger.Warn("rejecting connection at capacity", "address", conn.RemoteAddr().String())
		return
	}
	defer srv.Manager.Remove(sess.ID)

	// Unblock a pending read/write promptly on cancellation.
	go func() {
		<-sess.Context().Done()
		_ = conn.Close()
	}()

	logger.Info("session established", "session_id", sess.ID, "address", conn.RemoteAddr().String())

	for {
		req, err := sess.Reader.ReadPacket()
		if err != nil {
			if !errors.Is(err, protocol.ErrConnectionClosed) {
				logger.Warn("closing connection after protocol error", "session_id", sess.ID, "error", err)
			}
			return
		}
		sess.Touch()

		resp := srv.dispatch(ctx, sess, req)
		if resp == nil {
			return
		}
		if err := sess.Writer.WritePacket(resp); err != nil {
			logger.Warn("failed to write response", "session_id", sess.ID, "error", err)
			return
		}

		if sess.State() == session.StateDisconnecting {
			// Logout protocol rule: the
			// response has been sent and flushed above; close immediately,
			// no fixed delay.
			return
		}
	}
}

// dispatch authorizes and routes one request packet, returning the
// response packet to send. Authorization failures, unknown commands and
// handler errors all yield an ERROR response. A nil return (a handler that
// returned neither a packet nor an error) means the connection closes
// without a further response.
func (srv *Server) dispatch(ctx context.Context, sess *session.Session, req *protocol.Packet) *protocol.Packet {
	if err := sess.Authorize(req.Command, req.UserID); err != nil {
		return protocol.NewErrorResponse(req, err.Error())
	}

	handler, ok := srv.Registry.Lookup(req.Command)
	if !ok {
		return protocol.NewErrorResponse(req, "unrecognized command")
	}

	resp, err := handler.Handle(ctx, sess, req)
	if err != nil {
		logger.Error("handler failed", "session_id", sess.ID, "command", req.Command, "error", err)
		return protocol.NewErrorResponse(req, "internal error")
	}
	return resp
}
