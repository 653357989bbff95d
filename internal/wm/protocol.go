package wm

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MessageType identifies an i3-ipc request or reply.
type MessageType uint32

const (
	MsgRunCommand MessageType = 0
	MsgGetTree    MessageType = 4
	MsgGetVersion MessageType = 7
)

const headerLen = 14

// MaxPayload bounds the size of a reply we are willing to buffer.
const MaxPayload = 64 << 20

var magic = []byte("i3-ipc")

// ErrBadMagic is returned when a reply does not start with the i3-ipc magic.
var ErrBadMagic = errors.New("invalid i3-ipc magic")

// WriteMessage frames payload and writes it to w.
func WriteMessage(w io.Writer, typ MessageType, payload []byte) error {
	msg := make([]byte, headerLen+len(payload))
	copy(msg, magic)
	binary.LittleEndian.PutUint32(msg[6:10], uint32(len(payload)))
	binary.LittleEndian.PutUint32(msg[10:14], uint32(typ))
	copy(msg[headerLen:], payload)
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("failed to write %s message: %w", typ, err)
	}
	return nil
}

// ReadMessage reads one framed message from r.
func ReadMessage(r io.Reader) (MessageType, []byte, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return 0, nil, fmt.Errorf("failed to read header: %w", err)
	}
	if !bytes.Equal(header[:6], magic) {
		return 0, nil, ErrBadMagic
	}
	size := binary.LittleEndian.Uint32(header[6:10])
	typ := MessageType(binary.LittleEndian.Uint32(header[10:14]))
	if size > MaxPayload {
		return typ, nil, fmt.Errorf("reply of %d bytes exceeds limit of %d", size, MaxPayload)
	}
	payload := make([]byte, size)
	if _, err := io.ReadFull(r, payload); err != nil {
		return typ, nil, fmt.Errorf("failed to read %d byte payload: %w", size, err)
	}
	return typ, payload, nil
}

func (t MessageType) String() string {
	switch t {
	case MsgRunCommand:
		return "RUN_COMMAND"
	case MsgGetTree:
		return "GET_TREE"
	case MsgGetVersion:
		return "GET_VERSION"
	default:
		return fmt.Sprintf("MessageType(%d)", uint32(t))
	}
}
