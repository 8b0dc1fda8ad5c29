package epreg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var allStatus = []Status{StatusDisabled, StatusStall, StatusNak, StatusValid}

// applyToggle simulates write-1-flips over mask.
func applyToggle(current, w, mask uint32) uint32 {
	return (current ^ w) & mask
}

func TestComputeToggleWrite(t *testing.T) {
	for c := uint32(0); c < 4; c++ {
		for tgt := uint32(0); tgt < 4; tgt++ {
			for _, shift := range []uint{shiftSTATTX, shiftSTATRX} {
				mask := uint32(3) << shift
				cur, want := c<<shift, tgt<<shift
				w := ComputeToggleWrite(cur, want, mask)
				require.Equal(t, want, applyToggle(cur, w, mask), "c=%d t=%d shift=%d", c, tgt, shift)
				require.Zero(t, w&^mask)
			}
		}
	}
}

func TestStatusWriteReachesTarget(t *testing.T) {
	// a spread of register contents with unrelated fields populated
	bases := []uint32{0x0000, 0x0201, 0x8080, 0x8f8f, 0x4040, 0xffff, 0x0805}
	for _, dir := range []Direction{TX, RX} {
		for _, base := range bases {
			for _, from := range allStatus {
				for _, to := range allStatus {
					f := fields[dir]
					reg := base&^f.stat | uint32(from)<<f.shift
					hw := NewEmulated(reg)
					hw.Set(StatusWrite(reg, dir, to, DataToggleKeep))
					got := hw.Get()
					require.Equal(t, to, StatusOf(got, dir), "%s base=%04x %s->%s", dir, base, from, to)
					// everything outside the targeted field is unchanged
					require.Equal(t, reg&^f.stat, got&^f.stat, "%s base=%04x %s->%s", dir, base, from, to)
				}
			}
		}
	}
}

func TestStatusWritePreservesCTR(t *testing.T) {
	for _, dir := range []Direction{TX, RX} {
		for _, to := range allStatus {
			for _, dtog := range []DataToggle{DataToggleKeep, DataToggleFlip, DataToggle0, DataToggle1} {
				for _, ctr := range []uint32{0, BitCTRTX, BitCTRRX, BitCTRTX | BitCTRRX} {
					w := StatusWrite(ctr|0x0220, dir, to, dtog)
					require.Equal(t, BitCTRTX|BitCTRRX, w&(BitCTRTX|BitCTRRX))
					hw := NewEmulated(ctr | 0x0220)
					hw.Set(w)
					require.Equal(t, ctr, hw.Get()&(BitCTRTX|BitCTRRX))
				}
			}
		}
	}
}

func TestStatusWriteDataToggle(t *testing.T) {
	testCases := []struct {
		name   string
		dir    Direction
		reg    uint32
		dtog   DataToggle
		expect bool
	}{
		{"tx keep 0", TX, 0, DataToggleKeep, false},
		{"tx keep 1", TX, BitDTOGTX, DataToggleKeep, true},
		{"tx flip 0", TX, 0, DataToggleFlip, true},
		{"tx flip 1", TX, BitDTOGTX, DataToggleFlip, false},
		{"tx data0 from 1", TX, BitDTOGTX, DataToggle0, false},
		{"tx data1 from 1", TX, BitDTOGTX, DataToggle1, true},
		{"rx data1 from 0", RX, 0, DataToggle1, true},
		{"rx data0 from 0", RX, 0, DataToggle0, false},
		{"rx flip 1", RX, BitDTOGRX, DataToggleFlip, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			hw := NewEmulated(tc.reg)
			hw.Set(StatusWrite(tc.reg, tc.dir, StatusValid, tc.dtog))
			require.Equal(t, tc.expect, hw.Get()&fields[tc.dir].dtog != 0)
			// the other direction's toggle is never touched
			other := fields[1-tc.dir].dtog
			require.Equal(t, tc.reg&other, hw.Get()&other)
		})
	}
}

func TestClearCTRWrite(t *testing.T) {
	both := BitCTRTX | BitCTRRX
	hw := NewEmulated(both | 0x3030)
	hw.Set(ClearCTRWrite(hw.Get(), TX))
	require.Equal(t, BitCTRRX, hw.Get()&both)
	require.Equal(t, uint32(0x3030), hw.Get()&(MaskSTATTX|MaskSTATRX))

	hw = NewEmulated(both)
	hw.Set(ClearCTRWrite(hw.Get(), RX))
	require.Equal(t, BitCTRTX, hw.Get()&both)
}

func TestStatusString(t *testing.T) {
	require.Equal(t, "valid", StatusValid.String())
	require.Equal(t, "Status(7)", Status(7).String())
	require.Equal(t, "rx", RX.String())
}
