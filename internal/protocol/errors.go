package protocol

import "errors"

// Sentinel errors for the frame and packet layer.
var (
	// ErrConnectionClosed indicates the peer closed the connection mid-read.
	ErrConnectionClosed = errors.New("protocol: connection closed")

	// ErrFrameTooLarge indicates a declared frame length exceeds MaxFrameSize.
	ErrFrameTooLarge = errors.New("protocol: frame exceeds maximum size")

	// ErrFrameEmpty indicates a declared frame length of zero or less.
	ErrFrameEmpty = errors.New("protocol: frame length must be positive")

	// ErrUnsupportedVersion indicates a packet's protocol version byte is not 1.
	ErrUnsupportedVersion = errors.New("protocol: unsupported protocol version")

	// ErrMalformedPacket indicates the packet body could not be decoded.
	ErrMalformedPacket = errors.New("protocol: malformed packet")
)
