package protocol

import "fmt"

// Frame sizes.
const (
	HeaderSize     = 3
	MaxPayloadSize = 0xff - 1
	MaxFrameSize   = HeaderSize + MaxPayloadSize
)

// Message is a decoded frame. Data borrows the receive buffer and is only
// valid until that buffer is handed back to the transport.
type Message struct {
	Type      MsgType
	Operation byte
	Data      []byte
}

// LedOp interprets Operation for MsgTypeLed frames.
func (m *Message) LedOp() LedOp {
	return LedOp(m.Operation)
}

// String implements fmt.Stringer.
func (m *Message) String() string {
	op := fmt.Sprintf("%#02x", m.Operation)
	if m.Type == MsgTypeLed {
		op = m.LedOp().String()
	}
	return fmt.Sprintf("%s %s %v", m.Type, op, m.Data)
}

// FrameSize returns the encoded size of a frame carrying n payload bytes.
func FrameSize(n int) int {
	return HeaderSize + n
}

// EncodeTo writes a frame into dst and returns the number of bytes used.
func EncodeTo(dst []byte, t MsgType, op byte, payload []byte) (int, error) {
	if len(payload) > MaxPayloadSize {
		return 0, ErrPayloadTooLarge
	}
	n := FrameSize(len(payload))
	if len(dst) < n {
		return 0, ErrPayloadTooLarge
	}
	dst[0], dst[1], dst[2] = byte(t), byte(1+len(payload)), op
	copy(dst[HeaderSize:], payload)
	return n, nil
}

// Encode returns the encoded frame.
func Encode(t MsgType, op byte, payload []byte) ([]byte, error) {
	b := make([]byte, FrameSize(len(payload)))
	if _, err := EncodeTo(b, t, op, payload); err != nil {
		return nil, err
	}
	return b, nil
}

// Parse decodes the frame at the start of buf. The returned Message
// references buf.
func Parse(buf []byte) (Message, error) {
	if len(buf) < HeaderSize {
		return Message{}, ErrShortFrame
	}
	length := int(buf[1])
	if length == 0 {
		return Message{}, ErrZeroLength
	}
	end := HeaderSize + length - 1
	if end > len(buf) {
		return Message{}, &LengthError{Declared: end, Capacity: len(buf)}
	}
	return Message{
		Type:      MsgType(buf[0]),
		Operation: buf[2],
		Data:      buf[HeaderSize:end:end],
	}, nil
}
