// Package keymatrix holds the pressed state of the key matrix.
package keymatrix

import "github.com/robotalks/kbd.go/pkg/keycodes"

// PackedSize is the number of bytes of a packed KeyState.
const PackedSize = (keycodes.Count + 7) / 8

// KeyState is the pressed state of every key, indexed by keycodes.KeyIndex.
type KeyState [keycodes.Count]bool

// Set marks a key pressed or released. Invalid indexes are ignored.
func (s *KeyState) Set(k keycodes.KeyIndex, pressed bool) {
	if k.IsValid() {
		s[k] = pressed
	}
}

// Pressed reports whether a key is pressed.
func (s *KeyState) Pressed(k keycodes.KeyIndex) bool {
	return k.IsValid() && s[k]
}

// PackedBits is the dense encoding of a KeyState, bit i of the stream is key
// index i, least significant bit first.
type PackedBits struct {
	Bytes [PackedSize]byte
}

// Pack encodes a KeyState.
func Pack(s *KeyState) PackedBits {
	var p PackedBits
	for i, pressed := range s {
		if pressed {
			p.Bytes[i/8] |= 1 << uint(i%8)
		}
	}
	return p
}

// Unpack decodes packed bits back into a KeyState.
func (p *PackedBits) Unpack() KeyState {
	var s KeyState
	for i := range s {
		s[i] = p.Bytes[i/8]&(1<<uint(i%8)) != 0
	}
	return s
}
