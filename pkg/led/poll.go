package led

import (
	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/link"
	"github.com/robotalks/kbd.go/pkg/protocol"
)

// Poll drives the receive transfer. A completed frame is decoded and
// dispatched, then the same buffer is re-armed before Poll returns.
func (l *Led) Poll() {
	if err := l.rx.Poll(); err == link.ErrWouldBlock {
		return
	}
	buf := l.rx.Finish()
	if msg, err := protocol.Parse(buf); err != nil {
		glog.Warningf("led: drop frame % x: %v", buf, err)
	} else {
		l.HandleMessage(&msg)
	}
	l.rx = l.serial.Receive(buf)
}

// Armed reports whether a receive is in flight.
func (l *Led) Armed() bool {
	return l.rx != nil && l.rx.State() == link.InFlight
}

// TxInterrupt continues the outgoing frame.
func (l *Led) TxInterrupt() {
	l.serial.TxInterrupt()
}
