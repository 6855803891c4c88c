package protocol

import "strconv"

// NewResponse builds a response packet for req, deriving its command code
// via ResponseCommandCode. JSON-encoded bodies are supplied by
// the caller as payload.
func NewResponse(req *Packet, payload []byte) *Packet {
	return &Packet{
		Command:   ResponseCommandCode(req.Command),
		PacketID:  req.PacketID,
		UserID:    req.UserID,
		Timestamp: NowTicks(),
		Metadata:  map[string]string{},
		Payload:   payload,
	}
}

// NewErrorResponse builds a generic ERROR response (command 301) carrying
// message and the original request's command code in metadata.
func NewErrorResponse(req *Packet, message string) *Packet {
	return &Packet{
		Command:  CmdError,
		PacketID: req.PacketID,
		UserID:   req.UserID,
		Metadata: map[string]string{
			"OriginalCommand": strconv.Itoa(int(req.Command)),
			"Message":         message,
		},
		Timestamp: NowTicks(),
	}
}
