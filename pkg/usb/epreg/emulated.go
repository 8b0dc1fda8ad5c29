package epreg

import "sync"

const (
	toggleBits = MaskSTATTX | MaskSTATRX | BitDTOGTX | BitDTOGRX
	clearBits  = BitCTRTX | BitCTRRX
	plainBits  = MaskEA | MaskType | BitKind
)

// Emulated models the write semantics of an endpoint register in software.
// It implements Register and stands in for the peripheral on hosts.
type Emulated struct {
	lock  sync.Mutex
	value uint32
	sets  int
}

// NewEmulated creates an Emulated register holding value.
func NewEmulated(value uint32) *Emulated {
	return &Emulated{value: value}
}

// Get implements Register.
func (r *Emulated) Get() uint32 {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.value
}

// Set implements Register with hardware semantics: toggle bits flip on 1,
// CTR flags clear on 0, SETUP is read only and the rest is stored as-is.
func (r *Emulated) Set(w uint32) {
	r.lock.Lock()
	defer r.lock.Unlock()
	v := r.value
	next := (v ^ w) & toggleBits
	next |= v & w & clearBits
	next |= w & plainBits
	next |= v & BitSETUP
	r.value = next
	r.sets++
}

// Writes returns the number of Set calls so far.
func (r *Emulated) Writes() int {
	r.lock.Lock()
	defer r.lock.Unlock()
	return r.sets
}

// Latch raises flags from the hardware side, as the peripheral does when a
// transaction completes. It bypasses write semantics.
func (r *Emulated) Latch(flags uint32) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.value |= flags & (clearBits | BitSETUP)
}

// Load replaces the whole register content, bypassing write semantics.
func (r *Emulated) Load(value uint32) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.value = value
}
