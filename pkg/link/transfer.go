package link

// State is the state of a Transfer.
type State int

// Transfer states.
const (
	// Idle means the buffer is back in software hands.
	Idle State = iota
	// InFlight means the channel owns the buffer.
	InFlight
)

// String implements fmt.Stringer.
func (s State) String() string {
	if s == InFlight {
		return "in-flight"
	}
	return "idle"
}

// Transfer is an armed receive. The buffer moves into the Transfer when it
// is armed and is moved back out by Finish.
type Transfer struct {
	serial *Serial
	buf    []byte
	state  State
}

// State returns the current state.
func (t *Transfer) State() State {
	return t.state
}

// Poll checks for completion. It returns ErrWouldBlock until every expected
// byte has arrived, then nil.
func (t *Transfer) Poll() error {
	if t.state == Idle {
		return nil
	}
	ch := t.serial.ch
	if ch.ReceiveRemaining() > 0 {
		return ErrWouldBlock
	}
	ch.AckReceive()
	t.state = Idle
	t.serial.received.Add(1)
	return nil
}

// Finish hands the buffer back. It must only be called after Poll returned
// nil; the Transfer is unusable afterwards.
func (t *Transfer) Finish() []byte {
	if t.state != Idle {
		panic("link: Finish on in-flight transfer")
	}
	if t.buf == nil {
		panic("link: transfer already finished")
	}
	buf := t.buf
	t.buf = nil
	return buf
}
