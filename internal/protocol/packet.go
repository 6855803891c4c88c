package protocol

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
)

// ProtocolVersion is the only wire version this codec accepts.
const ProtocolVersion uint8 = 1

// TicksPerSecond is the number of 100-nanosecond ticks in one second. Packet
// timestamps are a signed 64-bit count of such ticks since the Unix epoch.
const TicksPerSecond = int64(time.Second / 100)

// Packet is the decoded wire message, immutable after construction.
type Packet struct {
	Command   Command
	PacketID  uuid.UUID
	UserID    string
	Timestamp int64 // 100-ns ticks since the Unix epoch
	Metadata  map[string]string
	Payload   []byte
}

// NewPacket constructs a Packet with a fresh packet id and current timestamp.
func NewPacket(cmd Command, userID string, metadata map[string]string, payload []byte) *Packet {
	if metadata == nil {
		metadata = map[string]string{}
	}
	return &Packet{
		Command:   cmd,
		PacketID:  uuid.New(),
		UserID:    userID,
		Timestamp: NowTicks(),
		Metadata:  metadata,
		Payload:   payload,
	}
}

// NowTicks returns the current time as 100-ns ticks since the Unix epoch.
func NowTicks() int64 {
	return time.Now().UnixNano() / 100
}

// TicksToTime converts a packet timestamp back to a time.Time.
func TicksToTime(ticks int64) time.Time {
	return time.Unix(0, ticks*100)
}

// Encode serializes p in its wire layout. It never partially writes to w:
// the full packet is built in memory first.
func (p *Packet) Encode(w io.Writer) error {
	var buf bytes.Buffer

	buf.WriteByte(ProtocolVersion)

	if err := binary.Write(&buf, binary.LittleEndian, int32(p.Command)); err != nil {
		return err
	}

	idBytes, err := p.PacketID.MarshalBinary()
	if err != nil {
		return fmt.Errorf("%w: packet id: %v", ErrMalformedPacket, err)
	}
	buf.Write(idBytes)

	if err := writeString(&buf, p.UserID); err != nil {
		return err
	}

	if err := binary.Write(&buf, binary.LittleEndian, p.Timestamp); err != nil {
		return err
	}

	if err := binary.Write(&buf, binary.LittleEndian, int32(len(p.Metadata))); err != nil {
		return err
	}
	for k, v := range p.Metadata {
		if err := writeString(&buf, k); err != nil {
			return err
		}
		if err := writeString(&buf, v); err != nil {
			return err
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, int32(len(p.Payload))); err != nil {
		return err
	}
	if len(p.Payload) > 0 {
		buf.Write(p.Payload)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// DecodePacket parses a packet body (the bytes after the frame's length
// prefix).
func DecodePacket(body []byte) (*Packet, error) {
	r := bytes.NewReader(body)

	version, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPacket, err)
	}
	if version != ProtocolVersion {
		return nil, ErrUnsupportedVersion
	}

	var cmd int32
	if err := binary.Read(r, binary.LittleEndian, &cmd); err != nil {
		return nil, fmt.Errorf("%w: command code: %v", ErrMalformedPacket, err)
	}

	idBytes := make([]byte, 16)
	if _, err := io.ReadFull(r, idBytes); err != nil {
		return nil, fmt.Errorf("%w: packet id: %v", ErrMalformedPacket, err)
	}
	var packetID uuid.UUID
	if err := packetID.UnmarshalBinary(idBytes); err != nil {
		return nil, fmt.Errorf("%w: packet id: %v", ErrMalformedPacket, err)
	}

	userID, err := readString(r)
	if err != nil {
		return nil, fmt.Errorf("%w: user id: %v", ErrMalformedPacket, err)
	}

	var ts int64
	if err := binary.Read(r, binary.LittleEndian, &ts); err != nil {
		return nil, fmt.Errorf("%w: timestamp: %v", ErrMalformedPacket, err)
	}

	var metaCount int32
	if err := binary.Read(r, binary.LittleEndian, &metaCount); err != nil {
		return nil, fmt.Errorf("%w: metadata count: %v", ErrMalformedPacket, err)
	}
	if metaCount < 0 {
		return nil, fmt.Errorf("%w: negative metadata count", ErrMalformedPacket)
	}
	metadata := make(map[string]string, metaCount)
	for i := int32(0); i < metaCount; i++ {
		key, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata key: %v", ErrMalformedPacket, err)
		}
		val, err := readString(r)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata value: %v", ErrMalformedPacket, err)
		}
		metadata[key] = val
	}

	var payloadLen int32
	if err := binary.Read(r, binary.LittleEndian, &payloadLen); err != nil {
		return nil, fmt.Errorf("%w: payload length: %v", ErrMalformedPacket, err)
	}
	if payloadLen < 0 {
		return nil, fmt.Errorf("%w: negative payload length", ErrMalformedPacket)
	}
	var payload []byte
	if payloadLen > 0 {
		payload = make([]byte, payloadLen)
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, fmt.Errorf("%w: payload: %v", ErrMalformedPacket, err)
		}
	}

	return &Packet{
		Command:   Command(cmd),
		PacketID:  packetID,
		UserID:    userID,
		Timestamp: ts,
		Metadata:  metadata,
		Payload:   payload,
	}, nil
}

func writeString(buf *bytes.Buffer, s string) error {
	if err := binary.Write(buf, binary.LittleEndian, int32(len(s))); err != nil {
		return err
	}
	buf.WriteString(s)
	return nil
}

func readString(r *bytes.Reader) (string, error) {
	var n int32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return "", err
	}
	if n < 0 {
		return "", fmt.Errorf("%w: negative string length", ErrMalformedPacket)
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}
