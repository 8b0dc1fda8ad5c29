// Package protocol defines the frames exchanged with the LED controller MCU.
package protocol

// Each frame has a fixed layout:
//
//	byte 0: message type (channel)
//	byte 1: length, counting the operation byte and the payload
//	byte 2: operation
//	byte 3: payload...
//
// There is no checksum and no escaping, the link is expected to deliver
// bytes intact. Each receive transfer is sized to capture exactly one frame.
