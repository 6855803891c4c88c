// Package client provides a reference client for the cloudvault wire
// protocol: typed request/response methods carried over a framed TCP
// connection.
package client

import (
	"encoding/json"
	"fmt"
	"net"

	"github.com/sxlmons/cloudvault/internal/protocol"
)

// Client is a cloudvault protocol client bound to one TCP connection.
type Client struct {
	conn   net.Conn
	reader *protocol.FrameReader
	writer *protocol.FrameWriter
	userID string
}

// Dial connects to address and returns an unauthenticated Client.
func Dial(address string) (*Client, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", address, err)
	}
	return &Client{
		conn:   conn,
		reader: protocol.NewFrameReader(conn),
		writer: protocol.NewFrameWriter(conn),
	}, nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// UserID returns the authenticated user id, or "" before Login succeeds.
func (c *Client) UserID() string {
	return c.userID
}

// APIError reports a domain-level failure surfaced by the server, either as
// a {Success:false, Message} response body or a generic ERROR packet.
type APIError struct {
	Command protocol.Command
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloudvault: command %d: %s", e.Command, e.Message)
}

// call sends req and returns the decoded response, returning an APIError if
// the server replied with a generic ERROR packet.
func (c *Client) call(req *protocol.Packet) (*protocol.Packet, error) {
	if err := c.writer.WritePacket(req); err != nil {
		return nil, fmt.Errorf("client: write: %w", err)
	}
	resp, err := c.reader.ReadPacket()
	if err != nil {
		return nil, fmt.Errorf("client: read: %w", err)
	}
	if resp.Command == protocol.CmdError {
		return resp, &APIError{Command: req.Command, Message: resp.Metadata["Message"]}
	}
	return resp, nil
}

func (c *Client) request(cmd protocol.Command, metadata map[string]string, body any) (*protocol.Packet, error) {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		payload = b
	}
	return c.call(protocol.NewPacket(cmd, c.userID, metadata, payload))
}

// statusResult decodes the common {Success, Message} response shape,
// returning an APIError when Success is false.
func statusResult(cmd protocol.Command, resp *protocol.Packet, into any) error {
	var envelope struct {
		Success bool
		Message string
	}
	if err := json.Unmarshal(resp.Payload, &envelope); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	if !envelope.Success {
		return &APIError{Command: cmd, Message: envelope.Message}
	}
	if into != nil {
		return json.Unmarshal(resp.Payload, into)
	}
	return nil
}
