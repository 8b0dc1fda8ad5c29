// Package keycodes maps keys to the indexes used on the wire.
package keycodes

// Matrix dimensions.
const (
	Rows    = 5
	Columns = 14
	Count   = Rows * Columns
)

// KeyIndex is the position of a key in the scan matrix, row-major.
// Unpopulated positions have no name.
type KeyIndex uint8

// Row 0.
const (
	Escape KeyIndex = iota
	N1
	N2
	N3
	N4
	N5
	N6
	N7
	N8
	N9
	N0
	Minus
	Equal
	Backspace
)

// Row 1.
const (
	Tab KeyIndex = iota + Columns
	Q
	W
	E
	R
	T
	Y
	U
	I
	O
	P
	LBracket
	RBracket
	Backslash
)

// Row 2.
const (
	Capslock KeyIndex = iota + 2*Columns
	A
	S
	D
	F
	G
	H
	J
	K
	L
	Semicolon
	Quote
	_
	Enter
)

// Row 3.
const (
	LShift KeyIndex = iota + 3*Columns
	_
	Z
	X
	C
	V
	B
	N
	M
	Comma
	Dot
	Slash
	_
	RShift
)

// Row 4.
const (
	LCtrl KeyIndex = iota + 4*Columns
	LMeta
	LAlt
	_
	_
	Space
	_
	_
	_
	_
	RAlt
	FN
	Anne
	RCtrl
)

// Row returns the matrix row of the key.
func (k KeyIndex) Row() int {
	return int(k) / Columns
}

// Column returns the matrix column of the key.
func (k KeyIndex) Column() int {
	return int(k) % Columns
}

// IsValid indicates the index is inside the matrix.
func (k KeyIndex) IsValid() bool {
	return int(k) < Count
}
