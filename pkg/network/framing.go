package network

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/cbodonnell/torchlight/pkg/messages"
)

// FrameHeaderSize is the size of the big-endian length prefix of a stream frame
const FrameHeaderSize = 2

// ErrConnectionClosed is returned when the peer closed the stream
type ErrConnectionClosed struct{}

func (e *ErrConnectionClosed) Error() string {
	return "connection closed"
}

// IsConnectionClosed reports whether err means the stream was closed
func IsConnectionClosed(err error) bool {
	var closed *ErrConnectionClosed
	return errors.As(err, &closed)
}

// WriteMessageToTCP writes a length-prefixed Message to a stream
func WriteMessageToTCP(w io.Writer, msg *messages.Message) error {
	b, err := messages.SerializeMessage(msg)
	if err != nil {
		return fmt.Errorf("failed to serialize message: %v", err)
	}

	if len(b) > messages.MaxFrameSize {
		return fmt.Errorf("message of %d bytes exceeds maximum frame size", len(b))
	}

	frame := make([]byte, FrameHeaderSize+len(b))
	binary.BigEndian.PutUint16(frame, uint16(len(b)))
	copy(frame[FrameHeaderSize:], b)

	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("failed to write message to TCP connection: %v", err)
	}

	return nil
}

// ReadMessageFromTCP reads a length-prefixed Message from a stream
func ReadMessageFromTCP(r io.Reader) (*messages.Message, error) {
	header := make([]byte, FrameHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if isClosed(err) {
			return nil, &ErrConnectionClosed{}
		}
		return nil, fmt.Errorf("failed to read frame header: %v", err)
	}

	size := binary.BigEndian.Uint16(header)
	if size == 0 {
		return nil, fmt.Errorf("received empty frame")
	}

	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		if isClosed(err) {
			return nil, &ErrConnectionClosed{}
		}
		return nil, fmt.Errorf("failed to read frame body: %v", err)
	}

	msg, err := messages.DeserializeMessage(buf)
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize message: %v", err)
	}

	return msg, nil
}

func isClosed(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}
