package protocol

import "fmt"

// MsgType identifies the subsystem a frame belongs to.
type MsgType byte

// Message types.
const (
	MsgTypeReserved MsgType = 0
	MsgTypeError    MsgType = 1
	MsgTypeSystem   MsgType = 2
	MsgTypeBle      MsgType = 6
	MsgTypeKeyboard MsgType = 7
	MsgTypeLed      MsgType = 9
	MsgTypeFw       MsgType = 10
	MsgTypeMacro    MsgType = 11
)

var msgTypeNames = map[MsgType]string{
	MsgTypeReserved: "reserved",
	MsgTypeError:    "error",
	MsgTypeSystem:   "system",
	MsgTypeBle:      "ble",
	MsgTypeKeyboard: "keyboard",
	MsgTypeLed:      "led",
	MsgTypeFw:       "fw",
	MsgTypeMacro:    "macro",
}

// IsKnown indicates t is one of the defined message types.
func (t MsgType) IsKnown() bool {
	_, ok := msgTypeNames[t]
	return ok
}

// String implements fmt.Stringer.
func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MsgType(%d)", byte(t))
}

// LedOp is the operation code of a MsgTypeLed frame.
type LedOp byte

// AckMask marks the acknowledgement of an operation.
const AckMask LedOp = 0x80

// LED operations.
const (
	LedOpThemeMode         LedOp = 0x01
	LedOpGetThemeID        LedOp = 0x02
	LedOpConfigCmd         LedOp = 0x03
	LedOpKey               LedOp = 0x04
	LedOpMusic             LedOp = 0x05
	LedOpSetIndividualKeys LedOp = 0x06

	LedOpAckThemeMode         = AckMask | LedOpThemeMode
	LedOpAckGetThemeID        = AckMask | LedOpGetThemeID
	LedOpAckConfigCmd         = AckMask | LedOpConfigCmd
	LedOpAckKey               = AckMask | LedOpKey
	LedOpAckMusic             = AckMask | LedOpMusic
	LedOpAckSetIndividualKeys = AckMask | LedOpSetIndividualKeys
)

var ledOpNames = map[LedOp]string{
	LedOpThemeMode:         "theme-mode",
	LedOpGetThemeID:        "get-theme-id",
	LedOpConfigCmd:         "config-cmd",
	LedOpKey:               "key",
	LedOpMusic:             "music",
	LedOpSetIndividualKeys: "set-individual-keys",
}

// IsKnown indicates the operation, or the one it acknowledges, is defined.
func (op LedOp) IsKnown() bool {
	_, ok := ledOpNames[op.Request()]
	return ok
}

// IsAck indicates the operation acknowledges a previous one.
func (op LedOp) IsAck() bool {
	return op&AckMask != 0
}

// Request strips the acknowledgement bit.
func (op LedOp) Request() LedOp {
	return op &^ AckMask
}

// String implements fmt.Stringer.
func (op LedOp) String() string {
	name, ok := ledOpNames[op.Request()]
	if !ok {
		return fmt.Sprintf("LedOp(%#02x)", byte(op))
	}
	if op.IsAck() {
		return "ack-" + name
	}
	return name
}
