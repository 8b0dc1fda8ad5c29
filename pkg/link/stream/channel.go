// Package stream implements link.Channel over a byte stream such as a
// serial port device or a websocket bridge.
package stream

import (
	"context"
	"io"
	"sync"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/robotalks/kbd.go/pkg/framework"
)

// DefaultMaxTransfer is the default largest chunk handed to the writer at a
// time, mirroring the DMA count limit.
const DefaultMaxTransfer = 64

// Channel implements link.Channel. The writer and reader goroutines stand in
// for the DMA engine: completions pend the configured vectors on the
// Pender.
type Channel struct {
	MaxTransfer int
	Pender      framework.Pender
	TxVector    framework.Vector
	RxVector    framework.Vector

	rw   io.ReadWriter
	txCh chan []byte

	lock  sync.Mutex
	rxBuf []byte
	rxPos int

	dropped atomic.Uint64
}

// New creates a Channel on rw.
func New(rw io.ReadWriter) *Channel {
	return &Channel{
		MaxTransfer: DefaultMaxTransfer,
		rw:          rw,
		txCh:        make(chan []byte, 1),
	}
}

// StartTransmit implements link.Channel.
func (c *Channel) StartTransmit(p []byte) int {
	n := len(p)
	if c.MaxTransfer > 0 && n > c.MaxTransfer {
		n = c.MaxTransfer
	}
	c.txCh <- p[:n]
	return n
}

// AckTransmit implements link.Channel.
func (c *Channel) AckTransmit() {}

// StartReceive implements link.Channel.
func (c *Channel) StartReceive(p []byte) {
	c.lock.Lock()
	c.rxBuf, c.rxPos = p, 0
	c.lock.Unlock()
}

// ReceiveRemaining implements link.Channel.
func (c *Channel) ReceiveRemaining() int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.rxBuf) - c.rxPos
}

// AckReceive implements link.Channel.
func (c *Channel) AckReceive() {}

// Dropped returns the number of bytes which arrived with no receive armed.
func (c *Channel) Dropped() uint64 {
	return c.dropped.Load()
}

// Run implements framework.Runnable. It pumps bytes until the stream fails
// or the context is canceled. A chunk already handed to StartTransmit is
// written before Run returns. If the stream is an io.Closer it is closed on
// exit, otherwise canceling only takes effect once the stream ends.
func (c *Channel) Run(ctx context.Context) error {
	w := &writer{
		ch:     c,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go w.loop()
	return framework.RunWithContextCloser(ctx, w, c.readLoop)
}

// writer drains transmit chunks until closed. Close writes a pending chunk
// before closing the stream.
type writer struct {
	ch     *Channel
	stopCh chan struct{}
	doneCh chan struct{}
}

func (w *writer) loop() {
	defer close(w.doneCh)
	for {
		select {
		case p := <-w.ch.txCh:
			w.ch.write(p)
		case <-w.stopCh:
			select {
			case p := <-w.ch.txCh:
				w.ch.write(p)
			default:
			}
			return
		}
	}
}

func (w *writer) Close() error {
	close(w.stopCh)
	<-w.doneCh
	if closer, ok := w.ch.rw.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Channel) write(p []byte) {
	if _, err := c.rw.Write(p); err != nil {
		glog.Errorf("stream write error: %v", err)
	}
	c.pend(c.TxVector)
}

func (c *Channel) readLoop() error {
	var buf [64]byte
	for {
		n, err := c.rw.Read(buf[:])
		if n > 0 {
			c.received(buf[:n])
		}
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
	}
}

func (c *Channel) received(data []byte) {
	c.lock.Lock()
	wasArmed := c.rxPos < len(c.rxBuf)
	n := copy(c.rxBuf[c.rxPos:], data)
	c.rxPos += n
	complete := wasArmed && c.rxPos == len(c.rxBuf)
	c.lock.Unlock()

	if dropped := len(data) - n; dropped > 0 {
		c.dropped.Add(uint64(dropped))
		glog.V(2).Infof("stream dropped %d bytes", dropped)
	}
	if complete {
		c.pend(c.RxVector)
	}
}

func (c *Channel) pend(v framework.Vector) {
	if c.Pender != nil {
		c.Pender.Pend(v)
	}
}
