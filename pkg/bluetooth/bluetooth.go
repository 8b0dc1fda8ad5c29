// Package bluetooth describes the Bluetooth connection mode reported by the
// Bluetooth module.
package bluetooth

import "fmt"

// Mode is the Bluetooth connection mode.
type Mode uint8

// Connection modes.
const (
	ModeUnknown Mode = iota
	ModeBle
	ModeLegacy
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeUnknown:
		return "unknown"
	case ModeBle:
		return "ble"
	case ModeLegacy:
		return "legacy"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// ParseMode parses the name returned by String.
func ParseMode(s string) (Mode, error) {
	for m := ModeUnknown; m <= ModeLegacy; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeUnknown, fmt.Errorf("unknown bluetooth mode %q", s)
}
