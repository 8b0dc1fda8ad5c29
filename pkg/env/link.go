package env

import (
	"fmt"

	"github.com/robotalks/kbd.go/pkg/framework"
	"github.com/robotalks/kbd.go/pkg/led"
	"github.com/robotalks/kbd.go/pkg/link"
	"github.com/robotalks/kbd.go/pkg/link/stream"
	"github.com/robotalks/kbd.go/pkg/protocol"
)

// Link is an opened LED link with the controller bound to a dispatcher.
type Link struct {
	Channel *stream.Channel
	Led     *led.Shared
}

// OpenLed opens the link, creates the LED controller and binds its
// interrupt handlers to d. d and Link.Channel must both be run.
func (c *Config) OpenLed(d *framework.Dispatcher) (*Link, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	pin, err := c.OpenIndicator()
	if err != nil {
		return nil, err
	}
	rw, err := c.OpenLink()
	if err != nil {
		return nil, fmt.Errorf("open %s: %v", c.Port, err)
	}

	ch := stream.New(rw)
	ch.MaxTransfer = c.MaxTransfer
	ch.Pender = d
	ch.TxVector, ch.RxVector = led.DefaultTxVector, led.DefaultRxVector

	serial := link.NewSerial(ch, make([]byte, protocol.MaxFrameSize))
	l, err := led.New(serial, make([]byte, c.RxFrameSize), pin)
	if err != nil {
		rw.Close()
		return nil, err
	}
	shared := led.NewShared(l, framework.PrLvLink)
	d.Add(shared)
	return &Link{Channel: ch, Led: shared}, nil
}
