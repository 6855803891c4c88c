package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"
)

// MaxFrameSize is the largest frame the codec accepts.
const MaxFrameSize = 25 * 1024 * 1024 // 25 MiB

// FrameReader reads length-prefixed frames from a byte stream. Reads are
// serialized by an internal mutex so that a single FrameReader can be
// driven safely even if future work pipelines reads.
type FrameReader struct {
	mu sync.Mutex
	r  io.Reader
}

// NewFrameReader wraps r for framed reads.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// ReadFrame reads exactly one frame: a 4-byte little-endian length prefix
// followed by that many bytes. A short or failed read of either the length
// prefix or the body is reported as ErrConnectionClosed; a zero length is
// ErrFrameEmpty and a length above MaxFrameSize is ErrFrameTooLarge.
func (f *FrameReader) ReadFrame() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var lenBuf [4]byte
	if _, err := io.ReadFull(f.r, lenBuf[:]); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrConnectionClosed
		}
		return nil, fmt.Errorf("%w: reading frame length: %v", ErrConnectionClosed, err)
	}

	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n == 0 {
		return nil, ErrFrameEmpty
	}
	if n > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}

	body := make([]byte, n)
	if _, err := io.ReadFull(f.r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrConnectionClosed
		}
		return nil, fmt.Errorf("%w: reading frame body: %v", ErrConnectionClosed, err)
	}
	return body, nil
}

// FrameWriter writes length-prefixed frames to a byte stream. Writes are
// serialized by an internal mutex.
type FrameWriter struct {
	mu sync.Mutex
	w  io.Writer
}

// NewFrameWriter wraps w for framed writes.
func NewFrameWriter(w io.Writer) *FrameWriter {
	return &FrameWriter{w: w}
}

// WriteFrame writes a 4-byte little-endian length prefix followed by body,
// then flushes if w implements an explicit Flush method via flusher.
func (f *FrameWriter) WriteFrame(body []byte) error {
	if len(body) == 0 {
		return ErrFrameEmpty
	}
	if len(body) > MaxFrameSize {
		return ErrFrameTooLarge
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(body)))

	if _, err := f.w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("writing frame length: %w", err)
	}
	if _, err := f.w.Write(body); err != nil {
		return fmt.Errorf("writing frame body: %w", err)
	}
	if fl, ok := f.w.(flusher); ok {
		return fl.Flush()
	}
	return nil
}

type flusher interface {
	Flush() error
}

// WritePacket encodes p and writes it as a single frame.
func (f *FrameWriter) WritePacket(p *Packet) error {
	var buf []byte
	bw := &byteSliceWriter{}
	if err := p.Encode(bw); err != nil {
		return err
	}
	buf = bw.buf
	return f.WriteFrame(buf)
}

// ReadPacket reads one frame and decodes it as a Packet.
func (f *FrameReader) ReadPacket() (*Packet, error) {
	body, err := f.ReadFrame()
	if err != nil {
		return nil, err
	}
	return DecodePacket(body)
}

// byteSliceWriter is a minimal io.Writer accumulating into a slice, used to
// encode a packet before handing it to WriteFrame as a single frame body.
type byteSliceWriter struct {
	buf []byte
}

func (b *byteSliceWriter) Write(p []byte) (int, error) {
	b.buf = append(b.buf, p...)
	return len(p), nil
}
