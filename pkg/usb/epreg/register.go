package epreg

import "fmt"

// Register bit layout (EPnR).
const (
	BitCTRRX   uint32 = 0x8000
	BitDTOGRX  uint32 = 0x4000
	MaskSTATRX uint32 = 0x3000
	BitSETUP   uint32 = 0x0800
	MaskType   uint32 = 0x0600
	BitKind    uint32 = 0x0100
	BitCTRTX   uint32 = 0x0080
	BitDTOGTX  uint32 = 0x0040
	MaskSTATTX uint32 = 0x0030
	MaskEA     uint32 = 0x000f

	// MaskPreserve selects the bits a status write must carry over
	// unchanged: CTR_RX|SETUP|EP_TYPE|EP_KIND|CTR_TX|EA.
	MaskPreserve = BitCTRRX | BitSETUP | MaskType | BitKind | BitCTRTX | MaskEA

	shiftSTATTX = 4
	shiftSTATRX = 12
)

// Status is the 2-bit endpoint status of one direction.
type Status uint8

// Endpoint status values.
const (
	StatusDisabled Status = 0
	StatusStall    Status = 1
	StatusNak      Status = 2
	StatusValid    Status = 3
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusDisabled:
		return "disabled"
	case StatusStall:
		return "stall"
	case StatusNak:
		return "nak"
	case StatusValid:
		return "valid"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// Direction selects the TX (IN) or RX (OUT) half of an endpoint register.
type Direction uint8

// Directions.
const (
	TX Direction = iota
	RX
)

// String implements fmt.Stringer.
func (d Direction) String() string {
	if d == RX {
		return "rx"
	}
	return "tx"
}

// field describes the bits of one direction.
type field struct {
	stat  uint32
	shift uint
	dtog  uint32
	ctr   uint32
}

var fields = [...]field{
	TX: {stat: MaskSTATTX, shift: shiftSTATTX, dtog: BitDTOGTX, ctr: BitCTRTX},
	RX: {stat: MaskSTATRX, shift: shiftSTATRX, dtog: BitDTOGRX, ctr: BitCTRRX},
}

// DataToggle selects what a status write does with the DTOG bit of the
// same direction.
type DataToggle uint8

// Data toggle operations.
const (
	// DataToggleKeep leaves DTOG unchanged.
	DataToggleKeep DataToggle = iota
	// DataToggleFlip flips DTOG.
	DataToggleFlip
	// DataToggle0 forces DATA0.
	DataToggle0
	// DataToggle1 forces DATA1.
	DataToggle1
)

// ComputeToggleWrite returns the value to write into a toggle-on-write
// field so that it moves from current to target. Only bits inside mask are
// considered: for each bit a 1 is written where current and target differ.
func ComputeToggleWrite(current, target, mask uint32) uint32 {
	return (current ^ target) & mask
}

// StatusWrite computes the register value that moves the status field of
// dir to target, applies dtog to the DTOG bit of the same direction and
// leaves every other field (including both CTR flags) untouched.
func StatusWrite(reg uint32, dir Direction, target Status, dtog DataToggle) uint32 {
	f := fields[dir]
	w := reg & (MaskPreserve | f.stat)
	w ^= (uint32(target) << f.shift) & f.stat
	switch dtog {
	case DataToggleFlip:
		w |= f.dtog
	case DataToggle0:
		w |= ComputeToggleWrite(reg, 0, f.dtog)
	case DataToggle1:
		w |= ComputeToggleWrite(reg, f.dtog, f.dtog)
	}
	return w | BitCTRTX | BitCTRRX
}

// ClearCTRWrite computes the register value that clears the CTR flag of dir
// and nothing else.
func ClearCTRWrite(reg uint32, dir Direction) uint32 {
	w := reg&MaskPreserve | BitCTRTX | BitCTRRX
	return w &^ fields[dir].ctr
}

// StatusOf decodes the status field of dir from a register value.
func StatusOf(reg uint32, dir Direction) Status {
	f := fields[dir]
	return Status((reg & f.stat) >> f.shift)
}
