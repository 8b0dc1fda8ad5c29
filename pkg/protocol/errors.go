package protocol

import (
	"errors"
	"fmt"
)

var (
	// ErrShortFrame indicates the buffer cannot hold a frame header.
	ErrShortFrame = errors.New("short frame")
	// ErrZeroLength indicates a length byte of 0, which has no operation.
	ErrZeroLength = errors.New("zero length frame")
	// ErrPayloadTooLarge indicates the payload cannot be expressed by the
	// length byte or does not fit the destination buffer.
	ErrPayloadTooLarge = errors.New("payload too large")
)

// LengthError reports a frame whose length byte reaches past the end of
// the received buffer.
type LengthError struct {
	Declared int
	Capacity int
}

// Error implements error.
func (e *LengthError) Error() string {
	return fmt.Sprintf("declared frame size %d exceeds buffer capacity %d", e.Declared, e.Capacity)
}
