package led

import (
	"github.com/robotalks/kbd.go/pkg/bluetooth"
	"github.com/robotalks/kbd.go/pkg/keycodes"
)

// Mode is the lighting mode of an individual key.
type Mode byte

// Key modes.
const (
	ModeOff Mode = iota
	ModeOn
	ModeFlash
)

// Color is an RGB color.
type Color struct {
	R, G, B byte
}

// Predefined colors.
var (
	Red    = Color{0xff, 0x00, 0x00}
	Green  = Color{0x00, 0xff, 0x00}
	Blue   = Color{0x00, 0x00, 0xff}
	Yellow = Color{0xff, 0xff, 0x00}
)

// KeyColor overrides the color of a single key.
type KeyColor struct {
	Key   keycodes.KeyIndex
	Color Color
	Mode  Mode
}

const keysMagic = 0xca

// KeyColorsPayloadSize returns the SetKeys payload size for n keys.
func KeyColorsPayloadSize(n int) int {
	return 2 + 5*n
}

// AppendKeyColors appends the SetKeys payload for keys to dst.
func AppendKeyColors(dst []byte, keys ...KeyColor) []byte {
	dst = append(dst, keysMagic, byte(len(keys)))
	for _, k := range keys {
		dst = append(dst, byte(k.Key), k.Color.R, k.Color.G, k.Color.B, byte(k.Mode))
	}
	return dst
}

// ModeColor is the color showing a bluetooth connection mode.
func ModeColor(mode bluetooth.Mode) Color {
	switch mode {
	case bluetooth.ModeBle:
		return Green
	case bluetooth.ModeLegacy:
		return Yellow
	default:
		return Blue
	}
}

// BluetoothKeys is the key pattern shown while configuring bluetooth. The
// N0 key carries the connection mode color.
func BluetoothKeys(mode bluetooth.Mode) [10]KeyColor {
	return [10]KeyColor{
		{keycodes.Escape, Yellow, ModeOn},
		{keycodes.N1, Red, ModeFlash},
		{keycodes.N2, Red, ModeOn},
		{keycodes.N3, Red, ModeOn},
		{keycodes.N4, Red, ModeOn},
		{keycodes.Equal, Green, ModeOn},
		{keycodes.B, Green, ModeFlash},
		{keycodes.Minus, Green, ModeOn},
		{keycodes.N0, ModeColor(mode), ModeOn},
		{keycodes.A, Green, ModeOn},
	}
}

// BluetoothMode lights the bluetooth key pattern for the connection mode.
func (l *Led) BluetoothMode(mode bluetooth.Mode) error {
	keys := BluetoothKeys(mode)
	var buf [52]byte
	return l.SetKeys(AppendKeyColors(buf[:0], keys[:]...))
}
