package epreg

import (
	"errors"

	"github.com/golang/glog"
)

// ErrInvalidEndpoint indicates the endpoint has no register bound.
var ErrInvalidEndpoint = errors.New("invalid endpoint")

// Register is a 32-bit hardware register. It matches the method set of
// TinyGo's volatile.Register32 so peripheral registers can be used directly.
type Register interface {
	Get() uint32
	Set(uint32)
}

// Controller addresses the endpoint registers of one USB peripheral.
// Callers must serialize access to the same endpoint: the read-modify-write
// sequence is not atomic.
type Controller struct {
	endpoints []Endpoint
}

// NewController creates a Controller, regs[n] is the register of endpoint n.
func NewController(regs ...Register) *Controller {
	c := &Controller{endpoints: make([]Endpoint, len(regs))}
	for n, reg := range regs {
		c.endpoints[n] = Endpoint{num: uint8(n), reg: reg}
	}
	return c
}

// Endpoint returns the endpoint with number n.
func (c *Controller) Endpoint(n uint8) (*Endpoint, error) {
	if int(n) >= len(c.endpoints) || c.endpoints[n].reg == nil {
		return nil, ErrInvalidEndpoint
	}
	return &c.endpoints[n], nil
}

// Endpoint exposes the semantic operations on one endpoint register.
type Endpoint struct {
	num uint8
	reg Register
}

// Number returns the endpoint number.
func (e *Endpoint) Number() uint8 {
	return e.num
}

// SetTxStatus moves the TX status to target.
func (e *Endpoint) SetTxStatus(target Status, dtog DataToggle) {
	e.setStatus(TX, target, dtog)
}

// SetRxStatus moves the RX status to target.
func (e *Endpoint) SetRxStatus(target Status, dtog DataToggle) {
	e.setStatus(RX, target, dtog)
}

// ClearTxInterruptFlag clears CTR_TX.
func (e *Endpoint) ClearTxInterruptFlag() {
	e.reg.Set(ClearCTRWrite(e.reg.Get(), TX))
}

// ClearRxInterruptFlag clears CTR_RX.
func (e *Endpoint) ClearRxInterruptFlag() {
	e.reg.Set(ClearCTRWrite(e.reg.Get(), RX))
}

// TxStatus reads the current TX status.
func (e *Endpoint) TxStatus() Status {
	return StatusOf(e.reg.Get(), TX)
}

// RxStatus reads the current RX status.
func (e *Endpoint) RxStatus() Status {
	return StatusOf(e.reg.Get(), RX)
}

// TxComplete reports whether CTR_TX is set.
func (e *Endpoint) TxComplete() bool {
	return e.reg.Get()&BitCTRTX != 0
}

// RxComplete reports whether CTR_RX is set.
func (e *Endpoint) RxComplete() bool {
	return e.reg.Get()&BitCTRRX != 0
}

// IsSetup reports whether the last completed OUT transaction was a SETUP.
func (e *Endpoint) IsSetup() bool {
	return e.reg.Get()&BitSETUP != 0
}

func (e *Endpoint) setStatus(dir Direction, target Status, dtog DataToggle) {
	cur := e.reg.Get()
	w := StatusWrite(cur, dir, target, dtog)
	if glog.V(3) {
		glog.Infof("EP%d %s %s -> %s (reg=%04x write=%04x)",
			e.num, dir, StatusOf(cur, dir), target, cur, w)
	}
	e.reg.Set(w)
}
