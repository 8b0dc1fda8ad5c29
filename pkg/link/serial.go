package link

import (
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/protocol"
)

// Serial frames messages onto a Channel.
type Serial struct {
	ch      Channel
	tx      []byte
	pending []byte
	busy    bool

	sent     atomic.Uint64
	rejected atomic.Uint64
	received atomic.Uint64
}

// Stats counts transport activity.
type Stats struct {
	Sent     uint64
	Rejected uint64
	Received uint64
}

// NewSerial creates a Serial owning txBuf for outgoing frames. txBuf bounds
// the largest frame that can be sent.
func NewSerial(ch Channel, txBuf []byte) *Serial {
	return &Serial{ch: ch, tx: txBuf}
}

// Channel returns the underlying channel.
func (s *Serial) Channel() Channel {
	return s.ch
}

// Send encodes a frame and starts transmitting it. It returns ErrWouldBlock
// while the previous frame is still going out; the frame is not queued.
func (s *Serial) Send(t protocol.MsgType, op byte, payload []byte) error {
	if s.busy {
		s.rejected.Add(1)
		return ErrWouldBlock
	}
	n, err := protocol.EncodeTo(s.tx, t, op, payload)
	if err != nil {
		return err
	}
	s.busy, s.pending = true, s.tx[:n]
	if glog.V(2) {
		glog.Infof("lsend: %s %#02x %v", t, op, payload)
	}
	s.feed()
	return nil
}

// TxBusy indicates a frame is being transmitted.
func (s *Serial) TxBusy() bool {
	return s.busy
}

// TxInterrupt continues the transmission from the transmit-complete
// interrupt: remaining bytes are fed to the channel, or the transmit slot is
// released once the whole frame is out.
func (s *Serial) TxInterrupt() {
	s.ch.AckTransmit()
	if !s.busy {
		return
	}
	if len(s.pending) > 0 {
		s.feed()
		return
	}
	s.busy = false
	s.sent.Add(1)
}

func (s *Serial) feed() {
	n := s.ch.StartTransmit(s.pending)
	s.pending = s.pending[n:]
}

// Receive arms a receive into buf and returns the in-flight Transfer.
func (s *Serial) Receive(buf []byte) *Transfer {
	s.ch.StartReceive(buf)
	return &Transfer{serial: s, buf: buf, state: InFlight}
}

// Stats returns a snapshot of the counters.
func (s *Serial) Stats() Stats {
	return Stats{
		Sent:     s.sent.Load(),
		Rejected: s.rejected.Load(),
		Received: s.received.Load(),
	}
}
